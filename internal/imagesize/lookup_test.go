package imagesize

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func encodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func writeJPEG(t *testing.T, name string, width, height int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, encodeJPEG(t, width, height), 0o600); err != nil {
		t.Fatalf("write image: %v", err)
	}
	return path
}

func TestFileLookupPathAndURI(t *testing.T) {
	path := writeJPEG(t, "photo.jpg", 120, 80)

	for _, uri := range []string{path, "file://" + path} {
		w, h, err := FileLookup{}.Dimensions(context.Background(), uri)
		if err != nil {
			t.Fatalf("Dimensions(%q): %v", uri, err)
		}
		if w != 120 || h != 80 {
			t.Fatalf("Dimensions(%q) = %dx%d, want 120x80", uri, w, h)
		}
	}
}

func TestFileLookupMissingFile(t *testing.T) {
	_, _, err := FileLookup{}.Dimensions(context.Background(), filepath.Join(t.TempDir(), "missing.jpg"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFileLookupNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.jpg")
	if err := os.WriteFile(path, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := (FileLookup{}).Dimensions(context.Background(), path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFileLookupEmptyURI(t *testing.T) {
	if _, _, err := (FileLookup{}).Dimensions(context.Background(), " "); !errors.Is(err, ErrEmptyURI) {
		t.Fatalf("expected ErrEmptyURI, got %v", err)
	}
}

func TestHTTPLookup(t *testing.T) {
	body := encodeJPEG(t, 64, 64)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/photo.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	lookup := HTTPLookup{Client: srv.Client()}
	w, h, err := lookup.Dimensions(context.Background(), srv.URL+"/photo.jpg")
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	if w != 64 || h != 64 {
		t.Fatalf("got %dx%d, want 64x64", w, h)
	}

	if _, _, err := lookup.Dimensions(context.Background(), srv.URL+"/missing.jpg"); err == nil {
		t.Fatal("expected error on 404")
	}
}

func TestResolverDispatch(t *testing.T) {
	path := writeJPEG(t, "square.jpeg", 10, 10)
	r := NewResolver(nil)

	w, h, err := r.Dimensions(context.Background(), "file://"+path)
	if err != nil || w != 10 || h != 10 {
		t.Fatalf("file dispatch: %dx%d err=%v", w, h, err)
	}

	_, _, err = r.Dimensions(context.Background(), "content://media/external/images/1.jpg")
	if !errors.Is(err, ErrUnsupportedScheme) {
		t.Fatalf("expected ErrUnsupportedScheme, got %v", err)
	}
}
