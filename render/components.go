package render

import (
	"github.com/plus3/planets/ecs"
	"github.com/plus3/planets/physics"
)

// Rect is an axis aligned rectangle in render space.
type Rect struct {
	X, Y, W, H float64
}

// Offset returns r translated by d.
func (r Rect) Offset(d physics.Vec2) Rect {
	return Rect{r.X + d.X, r.Y + d.Y, r.W, r.H}
}

// DefaultRadius is the visible radius of a body that does not declare one.
const DefaultRadius = 25.0

// RenderBox is the render space position of an entity and the square bounding its
// visible radius. It is derived from Motion every render tick and never written back.
type RenderBox struct {
	Position physics.Vec2
	Radius   float64
	Bounds   Rect
}

// NewRenderBox returns a box of the given radius centred on the origin.
func NewRenderBox(radius float64) RenderBox {
	box := RenderBox{Radius: radius}
	box.MoveTo(physics.Vec2{})
	return box
}

// MoveTo centres the box on p.
func (b *RenderBox) MoveTo(p physics.Vec2) {
	b.Position = p
	size := b.Radius * 2
	b.Bounds = Rect{p.X - b.Radius, p.Y - b.Radius, size, size}
}

type SpriteKind int

const (
	SpriteCircle SpriteKind = iota
	SpriteImage
)

func (k SpriteKind) String() string {
	switch k {
	case SpriteCircle:
		return "circle"
	case SpriteImage:
		return "image"
	default:
		return "unknown"
	}
}

// Sprite is how a body looks. Circles are filled with Color; image sprites show the
// named texture and use Color only for the traces they leave.
type Sprite struct {
	Kind  SpriteKind
	Color Color
	Image string
}

func CircleSprite(c Color) Sprite {
	return Sprite{Kind: SpriteCircle, Color: c}
}

func ImageSprite(image string, traceColor Color) Sprite {
	return Sprite{Kind: SpriteImage, Color: traceColor, Image: image}
}

// Name is the label drawn under a body.
type Name string

// Background is an image stretched over the whole viewport, drawn before anything else.
type Background struct {
	Image string
}

// Tracked marks the entity the camera follows. At most one entity carries it.
type Tracked struct{}

// LeavesTraces marks bodies that periodically drop trace ghosts.
type LeavesTraces struct{}

// RegisterComponents registers every render component with registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[RenderBox](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Background](registry)
	ecs.RegisterComponent[Tracked](registry)
	ecs.RegisterComponent[LeavesTraces](registry)
	ecs.RegisterComponent[Trace](registry)
}
