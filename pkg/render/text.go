package render

import (
	"image"
	"image/color"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type textLine struct {
	text  string
	width fixed.Int26_6
}

type textBlock struct {
	lines      []textLine
	originX    fixed.Int26_6
	originY    fixed.Int26_6
	boxWidth   fixed.Int26_6
	padding    fixed.Int26_6
	lineHeight fixed.Int26_6
	ascent     fixed.Int26_6
	descent    fixed.Int26_6
	align      string
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// layoutText breaks text into lines. Explicit newlines always break; when the
// box has a width, words wrap to fit inside it (minus padding). When the box
// has a height, lines that would overflow it are dropped.
func layoutText(face font.Face, text string, style TextStyle, box Box) textBlock {
	metrics := face.Metrics()
	lineHeight := style.LineHeight
	if lineHeight <= 0 {
		lineHeight = 1
	}
	size := style.FontSize
	if size <= 0 {
		size = DefaultTextStyle.FontSize
	}

	block := textBlock{
		originX:    toFixed(box.X),
		originY:    toFixed(box.Y),
		padding:    toFixed(style.Padding),
		lineHeight: toFixed(size * lineHeight),
		ascent:     metrics.Ascent,
		descent:    metrics.Descent,
		align:      style.Align,
	}

	maxWidth := fixed.Int26_6(0)
	if box.Width > 0 {
		maxWidth = toFixed(box.Width) - 2*block.padding
		if maxWidth < 0 {
			maxWidth = 0
		}
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, paragraph := range strings.Split(text, "\n") {
		for _, line := range wrapLine(face, paragraph, maxWidth) {
			block.lines = append(block.lines, textLine{text: line, width: font.MeasureString(face, line)})
		}
	}

	if box.Height > 0 {
		available := toFixed(box.Height) - 2*block.padding
		keep := 0
		for keep < len(block.lines) && fixed.Int26_6(keep+1)*block.lineHeight <= available {
			keep++
		}
		block.lines = block.lines[:keep]
	}

	if box.Width > 0 {
		block.boxWidth = toFixed(box.Width)
	} else {
		widest := fixed.Int26_6(0)
		for _, line := range block.lines {
			if line.width > widest {
				widest = line.width
			}
		}
		block.boxWidth = widest + 2*block.padding
	}
	return block
}

func wrapLine(face font.Face, paragraph string, maxWidth fixed.Int26_6) []string {
	if maxWidth <= 0 || font.MeasureString(face, paragraph) <= maxWidth {
		return []string{paragraph}
	}

	var (
		lines   []string
		current string
	)
	for _, word := range strings.Fields(paragraph) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if font.MeasureString(face, candidate) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if font.MeasureString(face, word) <= maxWidth {
			current = word
			continue
		}
		// Break words that do not fit on a line of their own.
		pieces := breakWord(face, word, maxWidth)
		lines = append(lines, pieces[:len(pieces)-1]...)
		current = pieces[len(pieces)-1]
	}
	if current != "" || len(lines) == 0 {
		lines = append(lines, current)
	}
	return lines
}

func breakWord(face font.Face, word string, maxWidth fixed.Int26_6) []string {
	var (
		pieces []string
		start  int
	)
	for i := 0; i < len(word); {
		_, size := utf8.DecodeRuneInString(word[i:])
		next := i + size
		if next-start > size && font.MeasureString(face, word[start:next]) > maxWidth {
			pieces = append(pieces, word[start:i])
			start = i
		}
		i = next
	}
	return append(pieces, word[start:])
}

func (b textBlock) draw(dst *image.RGBA, face font.Face, fill color.NRGBA) {
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fill),
		Face: face,
	}
	inner := b.boxWidth - 2*b.padding
	for i, line := range b.lines {
		x := b.originX + b.padding
		switch b.align {
		case AlignCenter:
			x += (inner - line.width) / 2
		case AlignRight:
			x += inner - line.width
		}
		// Lines are vertically centred in their line box.
		top := b.originY + b.padding + fixed.Int26_6(i)*b.lineHeight
		baseline := top + (b.lineHeight+b.ascent-b.descent)/2
		drawer.Dot = fixed.Point26_6{X: x, Y: baseline}
		drawer.DrawString(line.text)
	}
}
