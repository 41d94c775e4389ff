package render

import (
	"cmp"
	"slices"

	"github.com/plus3/planets/ecs"
	"github.com/plus3/planets/physics"
)

type DrawableKind int

const (
	DrawCircle DrawableKind = iota
	DrawImage
)

// Drawable is one primitive in screen space: a filled circle inscribed in Bounds, or
// the named image stretched over Bounds.
type Drawable struct {
	Kind   DrawableKind
	Bounds Rect
	Color  Color
	Image  string
}

// Label is a text placement in screen space. Position is the top left corner.
type Label struct {
	Text     string
	Position physics.Vec2
	Width    float64
	Size     float64
}

// Frame is everything the host draws for one render tick, back to front: the
// background, traces from oldest to newest, bodies, then labels.
type Frame struct {
	Drawables []Drawable
	Labels    []Label
}

// Options configures a Renderer.
type Options struct {
	Camera   Camera
	Trace    TraceSettings
	FontSize float64
	Measurer TextMeasurer
}

func DefaultOptions() Options {
	return Options{
		Camera:   DefaultCamera(),
		Trace:    DefaultTraceSettings(),
		FontSize: 16,
	}
}

type traceItem struct {
	Trace     *Trace
	RenderBox *RenderBox
}

type bodyItem struct {
	Sprite    *Sprite
	RenderBox *RenderBox
	Name      *Name `ecs:"optional"`
}

// Renderer runs the render pipeline (camera, trace spawn, trace decay) and turns the
// result into a Frame.
type Renderer struct {
	scheduler *ecs.Scheduler
	camera    *ecs.Singleton[Camera]
	viewport  *ecs.Singleton[Viewport]

	backgrounds *ecs.View[struct{ *Background }]
	traces      *ecs.View[traceItem]
	bodies      *ecs.View[bodyItem]

	fontSize float64
	measurer TextMeasurer

	frame      Frame
	traceOrder []traceItem
}

// NewRenderer adds the Camera and Viewport singletons to storage, replacing any
// existing ones, and builds the render pipeline.
func NewRenderer(storage *ecs.Storage, opts Options) *Renderer {
	storage.AddSingleton(opts.Camera)
	storage.AddSingleton(Viewport{})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&CameraSystem{})
	scheduler.Register(NewTraceSpawnSystem(opts.Trace))
	scheduler.Register(&TraceDecaySystem{})

	return &Renderer{
		scheduler:   scheduler,
		camera:      ecs.NewSingleton[Camera](storage),
		viewport:    ecs.NewSingleton[Viewport](storage),
		backgrounds: ecs.NewView[struct{ *Background }](storage),
		traces:      ecs.NewView[traceItem](storage),
		bodies:      ecs.NewView[bodyItem](storage),
		fontSize:    opts.FontSize,
		measurer:    opts.Measurer,
	}
}

// Camera returns the live camera singleton.
func (r *Renderer) Camera() *Camera {
	return r.camera.Get()
}

// SetMeasurer replaces the label measurer; nil selects the fallback estimate.
func (r *Renderer) SetMeasurer(m TextMeasurer) {
	r.measurer = m
}

// Stats reports per-system timings of the render pipeline.
func (r *Renderer) Stats() *ecs.SchedulerStats {
	return r.scheduler.GetStats()
}

// Render runs one render tick for a window of the given size. The returned Frame is
// reused by the next call.
func (r *Renderer) Render(viewport Viewport) (*Frame, error) {
	*r.viewport.Get() = viewport
	if err := r.scheduler.Once(0); err != nil {
		return nil, err
	}

	focus := r.camera.Get().Focus
	frame := &r.frame
	frame.Drawables = frame.Drawables[:0]
	frame.Labels = frame.Labels[:0]

	full := Rect{0, 0, viewport.Width, viewport.Height}
	for item := range r.backgrounds.Values() {
		frame.Drawables = append(frame.Drawables, Drawable{
			Kind:   DrawImage,
			Bounds: full,
			Color:  White,
			Image:  item.Background.Image,
		})
	}

	r.traceOrder = r.traceOrder[:0]
	for item := range r.traces.Values() {
		r.traceOrder = append(r.traceOrder, item)
	}
	slices.SortFunc(r.traceOrder, func(a, b traceItem) int {
		return cmp.Compare(a.Trace.Seq, b.Trace.Seq)
	})
	for _, item := range r.traceOrder {
		frame.Drawables = append(frame.Drawables, Drawable{
			Kind:   DrawCircle,
			Bounds: item.RenderBox.Bounds.Offset(focus),
			Color:  item.Trace.Color,
		})
	}

	for item := range r.bodies.Values() {
		drawable := Drawable{
			Bounds: item.RenderBox.Bounds.Offset(focus),
			Color:  item.Sprite.Color,
		}
		if item.Sprite.Kind == SpriteImage {
			drawable.Kind = DrawImage
			drawable.Image = item.Sprite.Image
			drawable.Color = White
		}
		frame.Drawables = append(frame.Drawables, drawable)

		if item.Name == nil || *item.Name == "" {
			continue
		}
		text := string(*item.Name)
		width := LabelWidth(r.measurer, text, r.fontSize)
		bounds := item.RenderBox.Bounds
		frame.Labels = append(frame.Labels, Label{
			Text: text,
			Position: physics.Vec2{
				X: item.RenderBox.Position.X + focus.X - width/2,
				Y: bounds.Y + bounds.H + focus.Y,
			},
			Width: width,
			Size:  r.fontSize,
		})
	}

	return frame, nil
}
