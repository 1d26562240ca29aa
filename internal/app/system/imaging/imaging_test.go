package imaging_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/kcmcclub/clubsite/internal/app/system/imaging"
)

// testImage renders a w×h PNG with enough variation that JPEG re-encoding
// has real work to do.
func testImage(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x * 7) % 256),
				G: uint8((y * 13) % 256),
				B: uint8((x*y + x) % 256),
				A: 255,
			})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return &buf
}

func TestCompress_CapsLongerSide(t *testing.T) {
	src := testImage(t, 2400, 1600)

	res, err := imaging.Compress(src, 0)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	if res.Width != 1200 {
		t.Errorf("width: got %d, want 1200", res.Width)
	}
	// 1600/2400 of 1200 = 800; allow one pixel of rounding.
	if res.Height < 799 || res.Height > 801 {
		t.Errorf("height: got %d, want ~800", res.Height)
	}
}

func TestCompress_PortraitCap(t *testing.T) {
	src := testImage(t, 900, 1800)

	res, err := imaging.Compress(src, 0)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	if res.Height != 1200 {
		t.Errorf("height: got %d, want 1200", res.Height)
	}
	if res.Width < 599 || res.Width > 601 {
		t.Errorf("width: got %d, want ~600", res.Width)
	}
}

func TestCompress_NeverUpsamples(t *testing.T) {
	src := testImage(t, 320, 240)

	res, err := imaging.Compress(src, 0)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	if res.Width != 320 || res.Height != 240 {
		t.Errorf("dimensions: got %dx%d, want 320x240 unchanged", res.Width, res.Height)
	}
}

func TestCompress_ReturnsDataURI(t *testing.T) {
	src := testImage(t, 100, 100)

	res, err := imaging.Compress(src, 0)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	if !strings.HasPrefix(res.DataURI, "data:image/jpeg;base64,") {
		t.Errorf("DataURI prefix: got %q", res.DataURI[:min(40, len(res.DataURI))])
	}
	if res.Size != len(res.DataURI) {
		t.Errorf("Size: got %d, want %d", res.Size, len(res.DataURI))
	}
}

func TestCompress_SmallInputExitsAtFirstQuality(t *testing.T) {
	src := testImage(t, 64, 64)

	res, err := imaging.Compress(src, imaging.DefaultTargetBytes)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if res.Quality != 85 {
		t.Errorf("quality: got %d, want first attempt 85", res.Quality)
	}
	if res.Size > imaging.DefaultTargetBytes {
		t.Errorf("size %d exceeds target for tiny input", res.Size)
	}
}

func TestCompress_StepsDownForTightTarget(t *testing.T) {
	src := testImage(t, 1600, 1200)

	// A target small enough to force quality reduction.
	res, err := imaging.Compress(src, 40*1024)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if res.Quality >= 85 {
		t.Errorf("quality: got %d, want below the starting quality", res.Quality)
	}
	// Best effort: quality never drops below the floor even if the target
	// was missed.
	if res.Quality < 25 {
		t.Errorf("quality %d below floor", res.Quality)
	}
}

func TestCompress_RejectsNonImage(t *testing.T) {
	_, err := imaging.Compress(strings.NewReader("this is not an image"), 0)
	if err == nil {
		t.Fatal("expected error for non-image input")
	}
	if !errors.Is(err, imaging.ErrNotImage) {
		t.Errorf("unexpected error: %v", err)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
