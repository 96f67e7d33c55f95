package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor understands #rgb, #rgba, #rrggbb, #rrggbbaa, "transparent" and
// the SVG colour keywords.
func ParseColor(raw string) (color.NRGBA, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return color.NRGBA{}, fmt.Errorf("render: empty colour")
	}
	if value == "transparent" {
		return color.NRGBA{}, nil
	}
	if named, ok := colornames.Map[value]; ok {
		return color.NRGBA{R: named.R, G: named.G, B: named.B, A: named.A}, nil
	}
	if !strings.HasPrefix(value, "#") {
		return color.NRGBA{}, fmt.Errorf("render: unsupported colour %q", raw)
	}

	hex := value[1:]
	switch len(hex) {
	case 3, 4:
		expanded := make([]byte, 0, len(hex)*2)
		for i := 0; i < len(hex); i++ {
			expanded = append(expanded, hex[i], hex[i])
		}
		hex = string(expanded)
	case 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("render: unsupported colour %q", raw)
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("render: parse colour %q: %w", raw, err)
	}
	return color.NRGBA{
		R: uint8(n >> 24),
		G: uint8(n >> 16),
		B: uint8(n >> 8),
		A: uint8(n),
	}, nil
}

func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(float64(c.A)*clamp01(opacity) + 0.5)
	return c
}
