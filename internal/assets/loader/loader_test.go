package loader

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-dresscode/pkg/assets"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func assertSize(t *testing.T, img image.Image, w, h int) {
	t.Helper()
	if img == nil {
		t.Fatalf("expected image, got nil")
	}
	if got := img.Bounds().Size(); got.X != w || got.Y != h {
		t.Fatalf("expected %dx%d image, got %v", w, h, got)
	}
}

func TestLoader_EmptySourceIsNoImage(t *testing.T) {
	t.Parallel()

	l := New(assets.NewLoaderOptions())
	img, err := l.Load(context.Background(), "")
	if err != nil || img != nil {
		t.Fatalf("Load(\"\") = (%v, %v), want (nil, nil)", img, err)
	}

	if _, err := l.Load(context.Background(), "   "); !errors.Is(err, assets.ErrUnsupportedSource) {
		t.Fatalf("blank src should fail as unsupported, got %v", err)
	}
}

func TestLoader_HTTP(t *testing.T) {
	t.Parallel()

	data := pngBytes(t, 3, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer server.Close()

	l := New(assets.NewLoaderOptions(assets.WithHTTPFallback(0)))
	img, err := l.Load(context.Background(), server.URL+"/a.png")
	if err != nil {
		t.Fatalf("load http: %v", err)
	}
	assertSize(t, img, 3, 2)

	if _, err := l.Load(context.Background(), server.URL+"/missing.png"); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status error, got %v", err)
	}

	disabled := New(assets.NewLoaderOptions())
	if _, err := disabled.Load(context.Background(), server.URL+"/a.png"); err == nil {
		t.Fatalf("expected http to be disabled by default")
	}
}

func TestLoader_HTTPRespectsCancelledContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(pngBytes(t, 1, 1))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(assets.NewLoaderOptions(assets.WithDefaultSources()))
	if _, err := l.Load(ctx, server.URL); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoader_DataURL(t *testing.T) {
	t.Parallel()

	l := New(assets.NewLoaderOptions())
	src := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 4, 4))
	img, err := l.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load data url: %v", err)
	}
	assertSize(t, img, 4, 4)

	if _, err := l.Load(context.Background(), "data:application/json,{}"); err == nil {
		t.Fatalf("expected non-image media type to be rejected")
	}
}

func TestLoader_FileAndBaseDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "logo.png"), pngBytes(t, 5, 1), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := New(assets.NewLoaderOptions(assets.WithBaseDir(dir)))
	img, err := l.Load(context.Background(), "logo.png")
	if err != nil {
		t.Fatalf("load relative file: %v", err)
	}
	assertSize(t, img, 5, 1)

	img, err = l.Load(context.Background(), "file://"+filepath.ToSlash(filepath.Join(dir, "logo.png")))
	if err != nil {
		t.Fatalf("load file url: %v", err)
	}
	assertSize(t, img, 5, 1)

	noFiles := New(assets.NewLoaderOptions(assets.WithBaseDir(dir), assets.WithoutFiles()))
	if _, err := noFiles.Load(context.Background(), "logo.png"); err == nil {
		t.Fatalf("expected file access to be disabled")
	}
}

func TestLoader_FileSystem(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"img/bg.png":  &fstest.MapFile{Data: pngBytes(t, 2, 2)},
		"img/bad.png": &fstest.MapFile{Data: []byte("not an image")},
	}
	l := New(assets.NewLoaderOptions(assets.WithFileSystem(files)))

	img, err := l.Load(context.Background(), "./img/bg.png")
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	assertSize(t, img, 2, 2)

	if _, err := l.Load(context.Background(), "img/bad.png"); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestLoader_MaxBytes(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{"big.png": &fstest.MapFile{Data: pngBytes(t, 64, 64)}}
	l := New(assets.NewLoaderOptions(assets.WithFileSystem(files), assets.WithMaxBytes(16)))
	if _, err := l.Load(context.Background(), "big.png"); err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Fatalf("expected size limit error, got %v", err)
	}
}

func TestLoader_UnsupportedScheme(t *testing.T) {
	t.Parallel()

	l := New(assets.NewLoaderOptions())
	if _, err := l.Load(context.Background(), "ftp://example.com/a.png"); !errors.Is(err, assets.ErrUnsupportedSource) {
		t.Fatalf("expected ErrUnsupportedSource, got %v", err)
	}
}
