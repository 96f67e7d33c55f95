package render

import (
	"image"
	"image/jpeg"
	"io"
)

// Encoder turns a rasterised surface into a file format.
type Encoder interface {
	Name() string
	ContentType() string
	Extensions() []string
	Encode(w io.Writer, img image.Image, options EncodeOptions) error
}

type pngFormat struct{}

func (pngFormat) Name() string         { return "png" }
func (pngFormat) ContentType() string  { return MIMETypePNG }
func (pngFormat) Extensions() []string { return []string{".png"} }

func (pngFormat) Encode(w io.Writer, img image.Image, _ EncodeOptions) error {
	return pngEncoder.Encode(w, img)
}

type jpegFormat struct{}

func (jpegFormat) Name() string         { return "jpeg" }
func (jpegFormat) ContentType() string  { return MIMETypeJPEG }
func (jpegFormat) Extensions() []string { return []string{".jpg", ".jpeg"} }

func (jpegFormat) Encode(w io.Writer, img image.Image, options EncodeOptions) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: options.quality()})
}

// PNG is the lossless encoder used for data URLs.
var PNG Encoder = pngFormat{}

// JPEG encodes with EncodeOptions.Quality. Transparency is flattened onto
// black by the stdlib encoder.
var JPEG Encoder = jpegFormat{}
