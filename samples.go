package dresscode

import (
	"embed"
	"io/fs"
)

//go:embed samples/*.yaml
var embeddedSamples embed.FS

// SamplesFS exposes a small set of sample documents (a badge template, a
// staff environment and three profiles at different privacy levels) that can
// be imported with document.LoadFS.
//
// Typical use:
//
//	bundle, err := document.LoadFS(dresscode.SamplesFS())
//	url, err := dresscode.RenderProfile(ctx, bundle, "badge-public")
func SamplesFS() fs.FS {
	sub, err := fs.Sub(embeddedSamples, "samples")
	if err != nil {
		return embeddedSamples
	}
	return sub
}
