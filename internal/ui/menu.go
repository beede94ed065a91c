package ui

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph cell of basicfont.Face7x13 before FontSize scaling.
const (
	glyphW = 7
	glyphH = 13
)

// Menu describes a bordered list of text entries drawn at (X, Y).
// FontSize is an integer glyph scale; BorderSize and Padding are pixels.
type Menu struct {
	X, Y    int
	Entries []Text

	FontSize   int
	BorderSize int
	Padding    int

	Background color.RGBA
	Foreground color.RGBA
	Border     color.RGBA
}

// Dynamic reports whether any entry reads a live value, in which case the
// menu is recompiled every frame.
func (m *Menu) Dynamic() bool {
	for _, e := range m.Entries {
		if e.IsDynamic() {
			return true
		}
	}
	return false
}

// CompileMenu renders the menu to a bitmap. Entries are stacked vertically,
// separated by border-coloured gaps; each entry box is padded on all sides.
func CompileMenu(m *Menu) *image.RGBA {
	fs := m.FontSize
	if fs <= 0 {
		fs = 1
	}
	face := basicfont.Face7x13
	texts := make([]string, len(m.Entries))
	textW := 0
	for i, e := range m.Entries {
		texts[i] = e.Resolve()
		if w := font.MeasureString(face, texts[i]).Ceil() * fs; w > textW {
			textW = w
		}
	}
	n := len(m.Entries)
	rowH := glyphH*fs + 2*m.Padding
	w := textW + 2*m.BorderSize + 2*m.Padding
	h := n*rowH + (n+1)*m.BorderSize
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	fillRect(img, img.Bounds(), m.Border)

	for i, s := range texts {
		x := m.BorderSize
		y := i*rowH + (i+1)*m.BorderSize
		fillRect(img, image.Rect(x, y, w-m.BorderSize, y+rowH), m.Background)
		drawText(img, x+m.Padding, y+m.Padding, s, fs, m.Foreground)
	}
	return img
}

// drawText rasterizes s at scale 1 and blits it scaled by fs with its
// top-left corner at (x, y).
func drawText(dst *image.RGBA, x, y int, s string, fs int, c color.RGBA) {
	if s == "" {
		return
	}
	face := basicfont.Face7x13
	w := font.MeasureString(face, s).Ceil()
	glyphs := image.NewRGBA(image.Rect(0, 0, w, glyphH))
	d := font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(s)
	r := image.Rect(x, y, x+w*fs, y+glyphH*fs)
	xdraw.NearestNeighbor.Scale(dst, r, glyphs, glyphs.Bounds(), xdraw.Over, nil)
}
