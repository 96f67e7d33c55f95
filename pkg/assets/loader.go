package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"net/http"
	"strings"
	"time"

	// Decoders for every format accepted at the asset boundary.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedSource is returned for URLs no strategy can serve.
var ErrUnsupportedSource = errors.New("assets: unsupported source")

// Loader fetches and decodes a raster image. An empty src is not an error:
// implementations return (nil, nil) meaning "no image".
type Loader interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

// LoaderFunc adapts a function into a Loader.
type LoaderFunc func(ctx context.Context, src string) (image.Image, error)

// Load delegates to the underlying function.
func (fn LoaderFunc) Load(ctx context.Context, src string) (image.Image, error) {
	return fn(ctx, src)
}

// LoaderOptions configures how a Loader resolves asset URLs. Local files are
// readable by default; remote fetches must be enabled explicitly.
type LoaderOptions struct {
	// FileSystem, when set, serves relative paths instead of the local disk.
	FileSystem fs.FS

	// BaseDir resolves relative paths on the local disk.
	BaseDir string

	// HTTPClient allows callers to inject custom HTTP behaviour. Nil means
	// remote sources are disabled unless AllowHTTPFallback is set.
	HTTPClient *http.Client

	// AllowHTTPFallback enables remote fetches through a default client.
	AllowHTTPFallback bool

	// RequestTimeout bounds each remote fetch. Zero means no timeout.
	RequestTimeout time.Duration

	// DisableFiles rejects file:// URLs and bare paths.
	DisableFiles bool

	// MaxBytes caps the size of a fetched asset.
	MaxBytes int64
}

// DefaultMaxBytes caps fetched assets at 32 MiB.
const DefaultMaxBytes int64 = 32 << 20

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem serves relative paths from files.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithBaseDir resolves relative paths against dir on the local disk.
func WithBaseDir(dir string) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.BaseDir = dir
	}
}

// WithHTTPClient injects a custom HTTP client for remote assets.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables remote assets through a default client with an
// optional timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithDefaultSources enables remote assets when no client was configured.
func WithDefaultSources() LoaderOption {
	return func(opts *LoaderOptions) {
		if !opts.AllowHTTPFallback && opts.HTTPClient == nil {
			opts.AllowHTTPFallback = true
		}
	}
}

// WithoutFiles disables reads from the local disk and fs.FS.
func WithoutFiles() LoaderOption {
	return func(opts *LoaderOptions) {
		opts.DisableFiles = true
	}
}

// WithMaxBytes caps the size of a fetched asset.
func WithMaxBytes(limit int64) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.MaxBytes = limit
	}
}

// NewLoaderOptions applies a set of LoaderOption values over the defaults.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{MaxBytes: DefaultMaxBytes}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	return cfg
}

// SourceKind identifies how an asset URL is served.
type SourceKind string

const (
	SourceKindNone SourceKind = ""
	SourceKindHTTP SourceKind = "http"
	SourceKindData SourceKind = "data"
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
)

// Classify reports which strategy serves src. hasFS indicates whether an
// fs.FS is configured for relative paths.
func Classify(src string, hasFS bool) SourceKind {
	trimmed := strings.TrimSpace(src)
	lower := strings.ToLower(trimmed)
	switch {
	case trimmed == "":
		return SourceKindNone
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return SourceKindHTTP
	case strings.HasPrefix(lower, "data:"):
		return SourceKindData
	case strings.HasPrefix(lower, "file://"):
		return SourceKindFile
	case strings.Contains(trimmed, "://"):
		return SourceKindNone
	case hasFS && !strings.HasPrefix(trimmed, "/"):
		return SourceKindFS
	default:
		return SourceKindFile
	}
}

// Decode turns encoded bytes into an image using the registered decoders.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("assets: decode image: %w", err)
	}
	return img, nil
}
