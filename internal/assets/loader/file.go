package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

func loadFile(ctx context.Context, baseDir, src string, maxBytes int64) ([]byte, error) {
	path, err := filePath(src)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.New("assets loader: file path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return readLimited(f, maxBytes)
}

func filePath(src string) (string, error) {
	trimmed := strings.TrimSpace(src)
	if !strings.HasPrefix(strings.ToLower(trimmed), "file://") {
		return trimmed, nil
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("assets loader: parse file url: %w", err)
	}
	if parsed.Host != "" && parsed.Host != "localhost" {
		return "", fmt.Errorf("assets loader: remote file host %q not supported", parsed.Host)
	}
	return filepath.FromSlash(parsed.Path), nil
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("assets loader: asset exceeds %d bytes", maxBytes)
	}
	return data, nil
}
