package render

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Text alignment values accepted in element props.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// TextStyle controls how a text layer is typeset.
type TextStyle struct {
	FontSize   float64
	FontFamily string
	FontStyle  string
	Fill       string
	Align      string
	LineHeight float64
	Padding    float64
}

// DefaultTextStyle is applied beneath every text element's own props.
var DefaultTextStyle = TextStyle{
	FontSize:   24,
	FontFamily: FamilyGo,
	FontStyle:  "normal",
	Fill:       "#ffffff",
	Align:      AlignLeft,
	LineHeight: 1,
}

// Merge overlays element props on top of s. Props win; keys that are absent
// or of the wrong type leave the base value in place.
func (s TextStyle) Merge(props map[string]any) TextStyle {
	out := s
	if v, ok := number(props, "fontSize"); ok && v > 0 {
		out.FontSize = v
	}
	if v, ok := text(props, "fontFamily"); ok {
		out.FontFamily = v
	}
	if v, ok := text(props, "fontStyle"); ok {
		out.FontStyle = v
	}
	if v, ok := text(props, "fill"); ok {
		out.Fill = v
	}
	if v, ok := text(props, "align"); ok {
		out.Align = strings.ToLower(v)
	}
	if v, ok := number(props, "lineHeight"); ok && v > 0 {
		out.LineHeight = v
	}
	if v, ok := number(props, "padding"); ok && v >= 0 {
		out.Padding = v
	}
	return out
}

// Box positions a layer on the surface. Zero Width/Height mean "natural
// size" (the decoded image size, or the measured text size).
type Box struct {
	X, Y          float64
	Width, Height float64
	Opacity       float64
}

// BoxFromProps reads x, y, width, height and opacity from element props.
func BoxFromProps(props map[string]any) Box {
	box := Box{Opacity: 1}
	box.X, _ = number(props, "x")
	box.Y, _ = number(props, "y")
	if v, ok := number(props, "width"); ok && v > 0 {
		box.Width = v
	}
	if v, ok := number(props, "height"); ok && v > 0 {
		box.Height = v
	}
	if v, ok := number(props, "opacity"); ok {
		box.Opacity = clamp01(v)
	}
	return box
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func number(props map[string]any, key string) (float64, bool) {
	raw, ok := props[key]
	if !ok {
		return 0, false
	}
	switch typed := raw.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	case json.Number:
		f, err := typed.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func text(props map[string]any, key string) (string, bool) {
	raw, ok := props[key]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
