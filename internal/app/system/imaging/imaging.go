// internal/app/system/imaging/imaging.go

// Package imaging compresses uploaded raster images into inline data URIs
// that fit the storage budget of a document field.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	// Register the decoders uploads arrive in.
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

// ErrNotImage is returned when the input cannot be decoded as a raster
// image. It is distinct from a merely oversized input, which is compressed
// rather than rejected.
var ErrNotImage = errors.New("imaging: input is not a decodable image")

const (
	// MaxDimension caps the longer side before any quality reduction.
	MaxDimension = 1200

	// DefaultTargetBytes is the default encoded-size budget.
	DefaultTargetBytes = 2 * 1024 * 1024

	startQuality = 85
	qualityStep  = 10
	floorQuality = 25
)

// Result is a compressed image ready to store inline.
type Result struct {
	DataURI string // base64 JPEG data URI, directly displayable
	Size    int    // encoded size of DataURI in bytes
	Width   int
	Height  int
	Quality int // JPEG quality of the final encode
}

// Compress decodes r, scales the longer side down to MaxDimension if it
// exceeds it (aspect ratio preserved, never upsampled), then re-encodes as
// JPEG at decreasing quality until the encoded size fits targetBytes or the
// quality floor is reached. Best effort: when the floor is hit first the
// oversized result is returned without error.
//
// targetBytes <= 0 selects DefaultTargetBytes.
func Compress(r io.Reader, targetBytes int) (Result, error) {
	if targetBytes <= 0 {
		targetBytes = DefaultTargetBytes
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	src = scaleDown(src)
	b := src.Bounds()

	var buf bytes.Buffer
	quality := startQuality
	for {
		buf.Reset()
		if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
			return Result{}, err
		}
		if encodedLen(buf.Len()) <= targetBytes || quality-qualityStep < floorQuality {
			break
		}
		quality -= qualityStep
	}

	uri := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	return Result{
		DataURI: uri,
		Size:    len(uri),
		Width:   b.Dx(),
		Height:  b.Dy(),
		Quality: quality,
	}, nil
}

// scaleDown resizes src so that max(width, height) <= MaxDimension,
// preserving aspect ratio. Images already within the cap pass through.
func scaleDown(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	longer := w
	if h > longer {
		longer = h
	}
	if longer <= MaxDimension {
		return src
	}

	scale := float64(MaxDimension) / float64(longer)
	nw := int(float64(w)*scale + 0.5)
	nh := int(float64(h)*scale + 0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// encodedLen is the data-URI length for raw JPEG bytes: the base64
// expansion plus the fixed prefix.
func encodedLen(raw int) int {
	return len("data:image/jpeg;base64,") + base64.StdEncoding.EncodedLen(raw)
}
