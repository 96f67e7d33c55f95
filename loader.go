package dresscode

import (
	internalLoader "github.com/goliatone/go-dresscode/internal/assets/loader"
	"github.com/goliatone/go-dresscode/pkg/assets"
)

// NewLoader constructs an asset loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...assets.LoaderOption) assets.Loader {
	cfg := assets.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}
