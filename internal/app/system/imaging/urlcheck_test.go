package imaging_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kcmcclub/clubsite/internal/app/system/imaging"
)

func TestCheckImageURL_ValidImage(t *testing.T) {
	img := testImage(t, 40, 30) // PNG bytes
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(img.Bytes())
	}))
	defer srv.Close()

	if err := imaging.CheckImageURL(context.Background(), srv.Client(), srv.URL); err != nil {
		t.Errorf("expected valid image URL to pass, got %v", err)
	}
}

func TestCheckImageURL_NonImageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer srv.Close()

	err := imaging.CheckImageURL(context.Background(), srv.Client(), srv.URL)
	if !errors.Is(err, imaging.ErrURLNotImage) {
		t.Errorf("expected ErrURLNotImage, got %v", err)
	}
}

func TestCheckImageURL_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	err := imaging.CheckImageURL(context.Background(), srv.Client(), srv.URL)
	if !errors.Is(err, imaging.ErrURLNotImage) {
		t.Errorf("expected ErrURLNotImage for 404, got %v", err)
	}
}

func TestCheckImageURL_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := imaging.CheckImageURL(context.Background(), nil, url)
	if !errors.Is(err, imaging.ErrURLNotImage) {
		t.Errorf("expected ErrURLNotImage for dead server, got %v", err)
	}
}
