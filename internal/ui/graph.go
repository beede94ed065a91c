package ui

import (
	"image"
	"image/color"
)

// Series is a numeric sample sequence a graph plots.
type Series interface {
	Values() []float64
}

// Graph describes a W×H line plot of Samples drawn at (X, Y).
type Graph struct {
	X, Y, W, H int
	Samples    Series

	Background color.RGBA
	Line       color.RGBA
	Border     color.RGBA
}

// CompileGraph renders the graph. The series is scaled to fill the inner
// area vertically between its minimum and maximum; a flat series is drawn
// through the middle.
func CompileGraph(g *Graph) *image.RGBA {
	w, h := max(g.W, 3), max(g.H, 3)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(img, img.Bounds(), g.Border)
	inner := image.Rect(1, 1, w-1, h-1)
	fillRect(img, inner, g.Background)

	if g.Samples == nil {
		return img
	}
	vals := g.Samples.Values()
	if len(vals) == 0 {
		return img
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	iw, ih := inner.Dx()-1, inner.Dy()-1
	point := func(i int) (int, int) {
		x := inner.Min.X
		if len(vals) > 1 {
			x += i * iw / (len(vals) - 1)
		}
		y := inner.Min.Y + ih/2
		if hi > lo {
			y = inner.Max.Y - 1 - int((vals[i]-lo)/(hi-lo)*float64(ih)+0.5)
		}
		return x, y
	}
	px, py := point(0)
	img.SetRGBA(px, py, g.Line)
	for i := 1; i < len(vals); i++ {
		x, y := point(i)
		DrawLine(img, px, py, x, y, g.Line)
		px, py = x, y
	}
	return img
}
