package loader

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-dresscode/pkg/assets"
)

// Loader implements assets.Loader by delegating to data URL, file, fs.FS, or
// HTTP strategies. Construction helpers live in the top-level package.
type Loader struct {
	fs         fs.FS
	baseDir    string
	http       *http.Client
	allowHTTP  bool
	allowFiles bool
	timeout    time.Duration
	maxBytes   int64
}

// Ensure the implementation satisfies the public interface.
var _ assets.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options assets.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	maxBytes := options.MaxBytes
	if maxBytes <= 0 {
		maxBytes = assets.DefaultMaxBytes
	}

	return &Loader{
		fs:         options.FileSystem,
		baseDir:    options.BaseDir,
		http:       httpClient,
		allowHTTP:  httpClient != nil,
		allowFiles: !options.DisableFiles,
		timeout:    timeout,
		maxBytes:   maxBytes,
	}
}

// Load fetches src and decodes it. An empty src yields (nil, nil).
func (l *Loader) Load(ctx context.Context, src string) (image.Image, error) {
	data, err := l.fetch(ctx, src)
	if err != nil || data == nil {
		return nil, err
	}
	img, err := assets.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, describe(src))
	}
	return img, nil
}

func (l *Loader) fetch(ctx context.Context, src string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	switch kind := assets.Classify(src, l.fs != nil); kind {
	case assets.SourceKindNone:
		if src == "" {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s", assets.ErrUnsupportedSource, describe(src))
	case assets.SourceKindData:
		return loadData(ctx, src)
	case assets.SourceKindHTTP:
		if !l.allowHTTP {
			return nil, errors.New("assets loader: http support disabled")
		}
		return loadHTTP(ctx, l.http, src, l.timeout, l.maxBytes)
	case assets.SourceKindFS:
		if !l.allowFiles {
			return nil, errors.New("assets loader: file support disabled")
		}
		return loadFromFS(ctx, l.fs, src, l.maxBytes)
	case assets.SourceKindFile:
		if !l.allowFiles {
			return nil, errors.New("assets loader: file support disabled")
		}
		return loadFile(ctx, l.baseDir, src, l.maxBytes)
	default:
		return nil, fmt.Errorf("%w: %s", assets.ErrUnsupportedSource, kind)
	}
}

// describe shortens data URLs so they stay readable in errors and logs.
func describe(src string) string {
	const limit = 64
	if len(src) <= limit {
		return src
	}
	return src[:limit] + "..."
}
