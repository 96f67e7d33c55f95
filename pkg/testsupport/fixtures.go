package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dresscode/pkg/assets"
	"github.com/goliatone/go-dresscode/pkg/document"
	"github.com/goliatone/go-dresscode/pkg/model"
)

// LoadBundle reads a document file or directory fixture. Testing helpers fail
// the test on error to keep call sites concise.
func LoadBundle(t *testing.T, path string) document.Bundle {
	t.Helper()

	bundle, err := LoadBundleFromPath(path)
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	return bundle
}

// LoadBundleFromPath returns a Bundle without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadBundleFromPath(path string) (document.Bundle, error) {
	if path == "" {
		return document.Bundle{}, errors.New("testsupport: bundle path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return document.Bundle{}, fmt.Errorf("testsupport: stat bundle: %w", err)
	}
	if info.IsDir() {
		return document.LoadFS(os.DirFS(path))
	}
	return document.LoadFile(path)
}

// MustTemplate returns the template with id from bundle.
func MustTemplate(t *testing.T, bundle document.Bundle, id string) model.Template {
	t.Helper()

	tpl, err := bundle.Template(context.Background(), id)
	if err != nil {
		t.Fatalf("template fixture: %v", err)
	}
	return tpl
}

// MustEnvironment returns the environment with id from bundle.
func MustEnvironment(t *testing.T, bundle document.Bundle, id string) model.Environment {
	t.Helper()

	env, err := bundle.Environment(context.Background(), id)
	if err != nil {
		t.Fatalf("environment fixture: %v", err)
	}
	return env
}

// DecodeDataURL decodes a PNG data URL produced by the composer.
func DecodeDataURL(t *testing.T, url string) image.Image {
	t.Helper()

	parsed, err := assets.ParseDataURL(url)
	if err != nil {
		t.Fatalf("parse data url: %v", err)
	}
	if parsed.MediaType != "image/png" {
		t.Fatalf("expected image/png, got %q", parsed.MediaType)
	}
	img, err := png.Decode(bytes.NewReader(parsed.Data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return img
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// CompareGoldenJSON decodes the golden at path into a value shaped like got
// and returns a diff, empty when they match.
func CompareGoldenJSON[T any](t *testing.T, path string, got T) string {
	t.Helper()

	var want T
	if err := json.Unmarshal(MustReadGolden(t, path), &want); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
