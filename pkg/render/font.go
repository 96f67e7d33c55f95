package render

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Built-in font families. Unknown family names fall back to FamilyGo.
const (
	FamilyGo     = "Go"
	FamilyGoMono = "Go Mono"
)

// FontBook parses font data on first use and hands out sized faces. Faces
// are not safe for concurrent use, so each text layer asks for its own and
// closes it after drawing.
type FontBook struct {
	mu     sync.Mutex
	data   map[string][]byte
	parsed map[string]*opentype.Font
}

// NewFontBook returns a book preloaded with the Go font families.
func NewFontBook() *FontBook {
	return &FontBook{
		data: map[string][]byte{
			fontKey(FamilyGo, false, false):     goregular.TTF,
			fontKey(FamilyGo, true, false):      gobold.TTF,
			fontKey(FamilyGo, false, true):      goitalic.TTF,
			fontKey(FamilyGo, true, true):       gobolditalic.TTF,
			fontKey(FamilyGoMono, false, false): gomono.TTF,
			fontKey(FamilyGoMono, true, false):  gomonobold.TTF,
			fontKey(FamilyGoMono, false, true):  gomonoitalic.TTF,
			fontKey(FamilyGoMono, true, true):   gomonobolditalic.TTF,
		},
		parsed: make(map[string]*opentype.Font),
	}
}

var (
	defaultFontsOnce sync.Once
	defaultFonts     *FontBook
)

// DefaultFontBook returns the process-wide book used when a layer has none.
func DefaultFontBook() *FontBook {
	defaultFontsOnce.Do(func() { defaultFonts = NewFontBook() })
	return defaultFonts
}

// Register adds TrueType/OpenType data for a family and style.
func (b *FontBook) Register(family string, bold, italic bool, ttf []byte) error {
	if _, err := opentype.Parse(ttf); err != nil {
		return fmt.Errorf("render: parse font %q: %w", family, err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	key := fontKey(family, bold, italic)
	b.data[key] = ttf
	delete(b.parsed, key)
	return nil
}

// Face returns a face for the family/style at size pixels. The caller owns
// the face and must Close it.
func (b *FontBook) Face(family, style string, size float64) (font.Face, error) {
	bold, italic := parseFontStyle(style)
	f, err := b.font(family, bold, italic)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("render: new face: %w", err)
	}
	return face, nil
}

func (b *FontBook) font(family string, bold, italic bool) (*opentype.Font, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := b.resolveKey(family, bold, italic)
	if f, ok := b.parsed[key]; ok {
		return f, nil
	}
	f, err := opentype.Parse(b.data[key])
	if err != nil {
		return nil, fmt.Errorf("render: parse font %q: %w", key, err)
	}
	b.parsed[key] = f
	return f, nil
}

// resolveKey picks the closest registered entry: exact family and style,
// then the family's regular style, then the Go family.
func (b *FontBook) resolveKey(family string, bold, italic bool) string {
	candidates := []string{
		fontKey(family, bold, italic),
		fontKey(family, false, false),
	}
	if isMonospace(family) {
		candidates = append(candidates, fontKey(FamilyGoMono, bold, italic))
	}
	candidates = append(candidates, fontKey(FamilyGo, bold, italic), fontKey(FamilyGo, false, false))
	for _, key := range candidates {
		if _, ok := b.data[key]; ok {
			return key
		}
	}
	return fontKey(FamilyGo, false, false)
}

func fontKey(family string, bold, italic bool) string {
	key := strings.ToLower(strings.TrimSpace(family))
	if bold {
		key += "|bold"
	}
	if italic {
		key += "|italic"
	}
	return key
}

func isMonospace(family string) bool {
	lower := strings.ToLower(family)
	return strings.Contains(lower, "mono") || strings.Contains(lower, "courier")
}

func parseFontStyle(style string) (bold, italic bool) {
	for _, part := range strings.Fields(strings.ToLower(style)) {
		switch part {
		case "bold", "700", "800", "900":
			bold = true
		case "italic", "oblique":
			italic = true
		}
	}
	return bold, italic
}
