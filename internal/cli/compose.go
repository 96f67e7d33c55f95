package cli

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/goliatone/go-dresscode"
	"github.com/goliatone/go-dresscode/pkg/assets"
	"github.com/goliatone/go-dresscode/pkg/composer"
	"github.com/goliatone/go-dresscode/pkg/document"
	"github.com/goliatone/go-dresscode/pkg/render"
)

// newComposer builds a composer wired to the configured loader and logger.
func (a *App) newComposer() *composer.Composer {
	loaderOptions := []assets.LoaderOption{assets.WithDefaultSources()}
	if a.cfg.Assets.Timeout > 0 {
		loaderOptions = append(loaderOptions, assets.WithHTTPFallback(a.cfg.Assets.Timeout))
	}
	if a.cfg.Assets.BaseDir != "" {
		loaderOptions = append(loaderOptions, assets.WithBaseDir(a.cfg.Assets.BaseDir))
	}
	options := []composer.Option{
		composer.WithLoader(dresscode.NewLoader(loaderOptions...)),
		composer.WithLogger(a.logger),
	}
	if a.cfg.Text.StripMarkup {
		options = append(options, composer.WithTextSanitizer(render.SanitizeText))
	}
	return dresscode.NewComposer(options...)
}

// loadBundle reads a document file or every document under a directory.
func loadBundle(path string) (document.Bundle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return document.Bundle{}, err
	}
	if info.IsDir() {
		return document.LoadFS(os.DirFS(path))
	}
	return document.LoadFile(path)
}

// writeImage writes the image behind a PNG data URL to out, re-encoding when
// the extension of out names another format. An empty out or "-" prints the
// data URL itself.
func (a *App) writeImage(url, out string) error {
	if out == "" || out == "-" {
		a.printf("%s\n", url)
		return nil
	}
	parsed, err := assets.ParseDataURL(url)
	if err != nil {
		return err
	}
	encoder, err := render.DefaultEncoders().ForPath(out)
	if err != nil {
		return err
	}
	data := parsed.Data
	if encoder.Name() != render.PNG.Name() {
		img, err := png.Decode(bytes.NewReader(parsed.Data))
		if err != nil {
			return fmt.Errorf("decode rendered png: %w", err)
		}
		data, err = render.Encode(encoder, img, render.EncodeOptions{Quality: a.cfg.Output.JPEGQuality})
		if err != nil {
			return err
		}
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.printf("wrote %s (%d bytes)\n", out, len(data))
	return nil
}
