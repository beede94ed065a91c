package render

import (
	"image"
	"image/color"
)

// fillRect paints r in img with a solid colour.
func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		base := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Pix[base+0] = c.R
			img.Pix[base+1] = c.G
			img.Pix[base+2] = c.B
			img.Pix[base+3] = c.A
			base += 4
		}
	}
}

// shade scales the RGB channels of c by factor, clamping to [0,255].
func shade(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: scaleComponent(c.R, factor),
		G: scaleComponent(c.G, factor),
		B: scaleComponent(c.B, factor),
		A: c.A,
	}
}

func scaleComponent(value uint8, factor float64) uint8 {
	scaled := float64(value)*factor + 0.5
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

func blendColors(base, overlay color.RGBA, overlayWeight float64) color.RGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	w := overlayWeight
	inv := 1 - w
	return color.RGBA{
		R: uint8(float64(base.R)*inv + float64(overlay.R)*w + 0.5),
		G: uint8(float64(base.G)*inv + float64(overlay.G)*w + 0.5),
		B: uint8(float64(base.B)*inv + float64(overlay.B)*w + 0.5),
		A: uint8(float64(base.A)*inv + float64(overlay.A)*w + 0.5),
	}
}
