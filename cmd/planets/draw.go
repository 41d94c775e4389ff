package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/planets/render"
	"golang.org/x/image/font/basicfont"
)

// labelFace is a fixed bitmap face scaled to the configured label size.
type labelFace struct {
	face   text.Face
	height float64
}

func newLabelFace() *labelFace {
	return &labelFace{
		face:   text.NewGoXFace(basicfont.Face7x13),
		height: float64(basicfont.Face7x13.Height),
	}
}

func (f *labelFace) scale(size float64) float64 {
	return size / f.height
}

// MeasureText reports the advance of s at the given size.
func (f *labelFace) MeasureText(s string, size float64) (float64, error) {
	return text.Advance(s, f.face) * f.scale(size), nil
}

func (f *labelFace) draw(dst *ebiten.Image, s string, x, y, size float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(f.scale(size), f.scale(size))
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, f.face, op)
}

// textures loads sprite images on first use. A texture that fails to load is logged
// once and reported as nil from then on.
type textures struct {
	path   func(name string) string
	images map[string]*ebiten.Image
}

func newTextures(path func(string) string) *textures {
	return &textures{path: path, images: make(map[string]*ebiten.Image)}
}

func (t *textures) get(name string) *ebiten.Image {
	if img, ok := t.images[name]; ok {
		return img
	}
	img, _, err := ebitenutil.NewImageFromFile(t.path(name))
	if err != nil {
		log.Printf("Texture %q unavailable, drawing a circle instead: %v", name, err)
		img = nil
	}
	t.images[name] = img
	return img
}

type frameDrawer struct {
	textures *textures
	labels   *labelFace
}

func (d *frameDrawer) draw(screen *ebiten.Image, frame *render.Frame) {
	for _, drawable := range frame.Drawables {
		switch drawable.Kind {
		case render.DrawImage:
			if img := d.textures.get(drawable.Image); img != nil {
				drawTexture(screen, img, drawable.Bounds)
				continue
			}
			// Body boxes are square; a missing background is left black.
			if drawable.Bounds.W == drawable.Bounds.H {
				drawCircle(screen, drawable.Bounds, drawable.Color)
			}
		case render.DrawCircle:
			drawCircle(screen, drawable.Bounds, drawable.Color)
		}
	}

	for _, label := range frame.Labels {
		d.labels.draw(screen, label.Text, label.Position.X, label.Position.Y, label.Size, render.White)
	}
}

// drawLoading centres "Loading... (N%)" on the screen.
func (d *frameDrawer) drawLoading(screen *ebiten.Image, percent int, size float64) {
	msg := fmt.Sprintf("Loading... (%d%%)", percent)
	width := render.LabelWidth(d.labels, msg, size)
	bounds := screen.Bounds()
	x := (float64(bounds.Dx()) - width) / 2
	y := (float64(bounds.Dy()) - size) / 2
	d.labels.draw(screen, msg, x, y, size, render.White)
}

func drawCircle(dst *ebiten.Image, bounds render.Rect, clr render.Color) {
	radius := bounds.W / 2
	vector.DrawFilledCircle(dst,
		float32(bounds.X+radius), float32(bounds.Y+radius), float32(radius),
		clr, true)
}

func drawTexture(dst, img *ebiten.Image, bounds render.Rect) {
	size := img.Bounds()
	if size.Dx() == 0 || size.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(bounds.W/float64(size.Dx()), bounds.H/float64(size.Dy()))
	op.GeoM.Translate(bounds.X, bounds.Y)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}
