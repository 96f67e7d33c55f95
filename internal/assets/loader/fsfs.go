package loader

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"strings"
)

func loadFromFS(ctx context.Context, files fs.FS, name string, maxBytes int64) ([]byte, error) {
	name = path.Clean(strings.TrimPrefix(strings.TrimSpace(name), "./"))
	if name == "" || name == "." {
		return nil, errors.New("assets loader: fs path is required")
	}
	if files == nil {
		return nil, errors.New("assets loader: fs is nil")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	f, err := files.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return readLimited(f, maxBytes)
}
