// Package scene describes the initial state of a simulation and loads it into the
// entity store.
package scene

import (
	"fmt"
	"io"
	"os"

	"github.com/plus3/planets/physics"
	"github.com/plus3/planets/render"
	"gopkg.in/yaml.v3"
)

// Scene is an ordered list of bodies and an optional background image.
type Scene struct {
	Background *Background `yaml:"background,omitempty"`
	Bodies     []Body      `yaml:"bodies"`
}

// Body is a massive object. Exactly one of Color and Image must be set.
type Body struct {
	Name          string     `yaml:"name"`
	Position      [2]float64 `yaml:"position"`
	Velocity      [2]float64 `yaml:"velocity"`
	Mass          float64    `yaml:"mass"`
	VisibleRadius float64    `yaml:"visible_radius,omitempty"`
	Color         string     `yaml:"color,omitempty"`
	Image         string     `yaml:"image,omitempty"`
	TraceColor    string     `yaml:"trace_color,omitempty"`
	LeavesTraces  bool       `yaml:"leaves_traces,omitempty"`
}

// Background is an image stretched over the whole window.
type Background struct {
	Image string `yaml:"image"`
}

// Object is a scene entry that can be turned into entity components.
type Object interface {
	Components() ([]any, error)
	object()
}

func (b Body) object()       {}
func (b Background) object() {}

// Components returns the component bundle of a simulated body.
func (b Body) Components() ([]any, error) {
	if b.Mass <= 0 {
		return nil, fmt.Errorf("body %q mass %g: %w", b.Name, b.Mass, ErrInvalidMass)
	}

	sprite, err := b.sprite()
	if err != nil {
		return nil, fmt.Errorf("body %q: %w", b.Name, err)
	}

	radius := b.VisibleRadius
	if radius <= 0 {
		radius = render.DefaultRadius
	}

	components := []any{
		render.Name(b.Name),
		physics.Mass{Kg: b.Mass},
		physics.Motion{
			Position: physics.Vec2{X: b.Position[0], Y: b.Position[1]},
			Velocity: physics.Vec2{X: b.Velocity[0], Y: b.Velocity[1]},
		},
		physics.Force{},
		render.NewRenderBox(radius),
		sprite,
	}
	if b.LeavesTraces {
		components = append(components, render.LeavesTraces{})
	}
	return components, nil
}

func (b Body) sprite() (render.Sprite, error) {
	switch {
	case b.Color != "" && b.Image != "":
		return render.Sprite{}, fmt.Errorf("both color and image set: %w", ErrInvalidAppearance)
	case b.Color != "":
		c, err := ParseColor(b.Color)
		if err != nil {
			return render.Sprite{}, err
		}
		return render.CircleSprite(c), nil
	case b.Image != "":
		traceColor := render.White
		if b.TraceColor != "" {
			c, err := ParseColor(b.TraceColor)
			if err != nil {
				return render.Sprite{}, err
			}
			traceColor = c
		}
		return render.ImageSprite(b.Image, traceColor), nil
	default:
		return render.Sprite{}, fmt.Errorf("neither color nor image set: %w", ErrInvalidAppearance)
	}
}

// Components returns the component bundle of the background.
func (b Background) Components() ([]any, error) {
	return []any{render.Background{Image: b.Image}}, nil
}

// Objects lists the scene in load order: the background first, then the bodies.
func (s *Scene) Objects() []Object {
	objects := make([]Object, 0, len(s.Bodies)+1)
	if s.Background != nil {
		objects = append(objects, *s.Background)
	}
	for _, body := range s.Bodies {
		objects = append(objects, body)
	}
	return objects
}

// Validate checks every body without touching any storage.
func (s *Scene) Validate() error {
	if len(s.Bodies) == 0 {
		return ErrNoBodies
	}
	for _, body := range s.Bodies {
		if _, err := body.Components(); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads and validates a YAML scene.
func Decode(r io.Reader) (*Scene, error) {
	var s Scene
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load decodes the scene file at path.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
