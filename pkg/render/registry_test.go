package render

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stubEncoder struct {
	name string
	exts []string
}

func (s stubEncoder) Name() string         { return s.name }
func (s stubEncoder) ContentType() string  { return "application/octet-stream" }
func (s stubEncoder) Extensions() []string { return s.exts }
func (s stubEncoder) Encode(w io.Writer, _ image.Image, _ EncodeOptions) error {
	_, err := w.Write([]byte(s.name))
	return err
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	t.Parallel()

	r := DefaultEncoders()
	if diff := cmp.Diff([]string{"jpeg", "png"}, r.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !r.Has("PNG") {
		t.Fatalf("lookups should ignore case")
	}

	for path, want := range map[string]string{"out/badge.png": "png", "a.JPG": "jpeg", "b.jpeg": "jpeg"} {
		enc, err := r.ForPath(path)
		if err != nil {
			t.Fatalf("ForPath(%q): %v", path, err)
		}
		if enc.Name() != want {
			t.Fatalf("ForPath(%q) = %q, want %q", path, enc.Name(), want)
		}
	}
	if _, err := r.ForPath("badge.svg"); err == nil {
		t.Fatalf("expected error for unknown extension")
	}
	if _, err := r.Get("webp"); err == nil {
		t.Fatalf("expected error for unknown encoder")
	}
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	r := DefaultEncoders()
	if err := r.Register(stubEncoder{name: "png", exts: []string{".raw"}}); err == nil {
		t.Fatalf("expected duplicate name error")
	}
	if err := r.Register(stubEncoder{name: "raw", exts: []string{".PNG"}}); err == nil {
		t.Fatalf("expected duplicate extension error")
	}
	if err := r.Register(nil); err == nil {
		t.Fatalf("expected nil encoder error")
	}
	if err := r.Register(stubEncoder{name: "raw", exts: []string{".raw"}}); err != nil {
		t.Fatalf("register raw: %v", err)
	}
	enc, err := r.ForPath("dump.raw")
	if err != nil {
		t.Fatalf("ForPath: %v", err)
	}
	data, err := Encode(enc, solid(1, 1, color.White), EncodeOptions{})
	if err != nil || string(data) != "raw" {
		t.Fatalf("unexpected encode result %q, %v", data, err)
	}
}

func TestEncode_JPEG(t *testing.T) {
	t.Parallel()

	data, err := Encode(JPEG, solid(8, 4, color.RGBA{R: 200, A: 255}), EncodeOptions{Quality: 500})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 8, 4) {
		t.Fatalf("unexpected bounds %v", got)
	}
}

func TestEncodeOptions_Quality(t *testing.T) {
	t.Parallel()

	cases := map[int]int{0: DefaultJPEGQuality, -3: 1, 50: 50, 101: 100}
	for in, want := range cases {
		if got := (EncodeOptions{Quality: in}).quality(); got != want {
			t.Fatalf("quality(%d) = %d, want %d", in, got, want)
		}
	}
}
