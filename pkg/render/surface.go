package render

import (
	"errors"
	"fmt"
	"image"
)

// ErrReleased is returned when a released surface is used again.
var ErrReleased = errors.New("render: surface released")

// Surface is an offscreen, layered drawing target. Layers are recorded in
// order and only rasterised on demand, so the first layer added ends up at
// the bottom. A Surface belongs to a single composition and is not safe for
// concurrent use.
type Surface struct {
	width    int
	height   int
	layers   []Layer
	released bool
}

// NewSurface allocates a surface of width x height pixels.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid surface size %dx%d", width, height)
	}
	return &Surface{width: width, height: height}, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// Add appends a layer on top of the existing ones.
func (s *Surface) Add(layer Layer) error {
	if s.released {
		return ErrReleased
	}
	if layer == nil {
		return errors.New("render: layer is required")
	}
	s.layers = append(s.layers, layer)
	return nil
}

// Layers returns the recorded layers bottom to top.
func (s *Surface) Layers() []Layer {
	out := make([]Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// Texts returns the text of every text layer in draw order.
func (s *Surface) Texts() []string {
	var out []string
	for _, layer := range s.layers {
		if text, ok := layer.(TextLayer); ok {
			out = append(out, text.Text)
		}
	}
	return out
}

// Rasterize draws every layer onto a transparent canvas at a pixel ratio of 1.
func (s *Surface) Rasterize() (*image.RGBA, error) {
	if s.released {
		return nil, ErrReleased
	}
	canvas := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for i, layer := range s.layers {
		if err := layer.Draw(canvas); err != nil {
			return nil, fmt.Errorf("render: draw layer %d (%s): %w", i, layer.Kind(), err)
		}
	}
	return canvas, nil
}

// Release drops every layer reference. The surface cannot be reused.
func (s *Surface) Release() {
	for i := range s.layers {
		s.layers[i] = nil
	}
	s.layers = nil
	s.released = true
}
