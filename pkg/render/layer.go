package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// LayerKind tags a drawable layer.
type LayerKind string

const (
	LayerBackground LayerKind = "background"
	LayerText       LayerKind = "text"
	LayerImage      LayerKind = "image"
)

// Layer is one drawable unit on a Surface.
type Layer interface {
	Kind() LayerKind
	Draw(dst *image.RGBA) error
}

// ImageLayer draws a decoded raster image scaled into Box. Background layers
// are image layers spanning the whole surface.
type ImageLayer struct {
	Source     string
	Image      image.Image
	Box        Box
	Background bool
}

func (l ImageLayer) Kind() LayerKind {
	if l.Background {
		return LayerBackground
	}
	return LayerImage
}

func (l ImageLayer) Draw(dst *image.RGBA) error {
	if l.Image == nil {
		return fmt.Errorf("render: image layer %q has no image", l.Source)
	}
	src := l.Image.Bounds()
	if src.Empty() {
		return nil
	}

	width, height := l.Box.Width, l.Box.Height
	if width <= 0 {
		width = float64(src.Dx())
	}
	if height <= 0 {
		height = float64(src.Dy())
	}
	x0 := int(math.Round(l.Box.X))
	y0 := int(math.Round(l.Box.Y))
	target := image.Rect(x0, y0, x0+int(math.Round(width)), y0+int(math.Round(height)))
	if target.Empty() || !target.Overlaps(dst.Bounds()) {
		return nil
	}

	var opts *xdraw.Options
	if l.Box.Opacity < 1 {
		opts = &xdraw.Options{
			DstMask: image.NewUniform(color.Alpha16{A: uint16(clamp01(l.Box.Opacity)*0xffff + 0.5)}),
		}
	}
	xdraw.CatmullRom.Scale(dst, target, l.Image, src, xdraw.Over, opts)
	return nil
}

// TextLayer draws a block of text. Text holds the final, already hydrated
// string so callers can inspect layers without rasterising them.
type TextLayer struct {
	Text  string
	Style TextStyle
	Box   Box
	Fonts *FontBook
}

func (TextLayer) Kind() LayerKind { return LayerText }

func (l TextLayer) Draw(dst *image.RGBA) error {
	if l.Text == "" {
		return nil
	}
	fill, err := ParseColor(l.Style.Fill)
	if err != nil {
		fill, _ = ParseColor(DefaultTextStyle.Fill)
	}
	fonts := l.Fonts
	if fonts == nil {
		fonts = DefaultFontBook()
	}
	size := l.Style.FontSize
	if size <= 0 {
		size = DefaultTextStyle.FontSize
	}
	face, err := fonts.Face(l.Style.FontFamily, l.Style.FontStyle, size)
	if err != nil {
		return err
	}
	defer face.Close()

	block := layoutText(face, l.Text, l.Style, l.Box)
	block.draw(dst, face, withOpacity(fill, l.Box.Opacity))
	return nil
}
