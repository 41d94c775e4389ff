package render

import "image/color"

// Color is a non-premultiplied RGBA colour with channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
)

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	alpha := clamp01(c.A)
	a = uint32(alpha * 0xffff)
	r = uint32(clamp01(c.R) * alpha * 0xffff)
	g = uint32(clamp01(c.G) * alpha * 0xffff)
	b = uint32(clamp01(c.B) * alpha * 0xffff)
	return
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

var _ color.Color = Color{}
