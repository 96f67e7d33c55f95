package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-dresscode/pkg/assets"
)

func loadData(ctx context.Context, src string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	parsed, err := assets.ParseDataURL(src)
	if err != nil {
		return nil, err
	}
	if parsed.MediaType != "" && !strings.HasPrefix(parsed.MediaType, "image/") && parsed.MediaType != "text/plain" {
		return nil, fmt.Errorf("assets loader: data url media type %q is not an image", parsed.MediaType)
	}
	return parsed.Data, nil
}
