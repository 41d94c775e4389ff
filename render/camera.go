package render

import (
	"fmt"

	"github.com/plus3/planets/ecs"
	"github.com/plus3/planets/physics"
)

// Reference camera settings: a zoom in pixels per metre that fits the inner solar
// system on a 1080p screen, stepped by a quarter of itself over 16 render ticks.
const (
	DefaultZoom      = 400.0 / 47.0 * 1e-6
	DefaultZoomStep  = DefaultZoom / 4
	DefaultZoomSteps = 16
)

// ZoomAnimation linearly interpolates Current from Start to Target over Total steps.
// Once the last step is taken Current equals Target exactly.
type ZoomAnimation struct {
	Current   float64
	Start     float64
	Target    float64
	Total     int
	Remaining int
}

// Animate starts a new interpolation from the current value to target.
// A non-positive step count jumps straight to target.
func (z *ZoomAnimation) Animate(target float64, steps int) {
	z.Start = z.Current
	z.Target = target
	if steps <= 0 {
		z.Current = target
		z.Total, z.Remaining = 0, 0
		return
	}
	z.Total = steps
	z.Remaining = steps
}

// Step advances the interpolation by one tick.
func (z *ZoomAnimation) Step() {
	if z.Remaining == 0 {
		return
	}
	z.Remaining--
	if z.Remaining == 0 {
		z.Current = z.Target
		return
	}
	k := float64(z.Total - z.Remaining)
	z.Current = z.Start + (z.Target-z.Start)*k/float64(z.Total)
}

// Animating reports whether a zoom change is still in flight.
func (z *ZoomAnimation) Animating() bool {
	return z.Remaining > 0
}

// Camera projects simulation space into render space and decides which point of render
// space lands in the middle of the screen. It lives in the storage as a singleton.
type Camera struct {
	Zoom      ZoomAnimation
	ZoomStep  float64
	ZoomSteps int

	// Focus is the translation from render space to screen space computed by the last
	// render tick.
	Focus physics.Vec2

	target *ecs.EntityRef
}

func NewCamera(zoom, step float64, steps int) Camera {
	return Camera{
		Zoom:      ZoomAnimation{Current: zoom, Start: zoom, Target: zoom},
		ZoomStep:  step,
		ZoomSteps: steps,
	}
}

func DefaultCamera() Camera {
	return NewCamera(DefaultZoom, DefaultZoomStep, DefaultZoomSteps)
}

// Project maps a simulation position to render space.
func (c *Camera) Project(p physics.Vec2) physics.Vec2 {
	return p.Scale(c.Zoom.Current)
}

func (c *Camera) ZoomIn() {
	c.Zoom.Animate(c.Zoom.Current+c.ZoomStep, c.ZoomSteps)
}

// ZoomOut is ignored when it would bring the zoom to zero or below.
func (c *Camera) ZoomOut() {
	target := c.Zoom.Current - c.ZoomStep
	if target <= 0 {
		return
	}
	c.Zoom.Animate(target, c.ZoomSteps)
}

// Track switches the camera to follow the referenced entity.
func (c *Camera) Track(ref *ecs.EntityRef) {
	c.target = ref
}

// Release switches the camera back to a fixed focus on the origin.
func (c *Camera) Release() {
	c.target = nil
}

// Tracking reports whether the camera follows an entity.
func (c *Camera) Tracking() bool {
	return c.target != nil
}

// Target returns the followed entity, or nil when the camera is fixed.
func (c *Camera) Target() *ecs.EntityRef {
	return c.target
}

// Viewport is the size of the window in pixels, set by the host every render tick.
type Viewport struct {
	Width, Height float64
}

func (v Viewport) Center() physics.Vec2 {
	return physics.Vec2{X: v.Width / 2, Y: v.Height / 2}
}

// CameraSystem advances the zoom animation, projects every body into render space and
// resolves the camera focus.
type CameraSystem struct {
	Camera   ecs.Singleton[Camera]
	Viewport ecs.Singleton[Viewport]
	Bodies   ecs.Query[struct {
		ecs.EntityId
		*physics.Motion
		*RenderBox
	}]
}

func (s *CameraSystem) Execute(frame *ecs.UpdateFrame) error {
	camera := s.Camera.Get()
	if camera == nil {
		return nil
	}
	camera.Zoom.Step()

	var target ecs.EntityId
	tracking := camera.Tracking()
	if tracking {
		target, tracking = frame.Storage.ResolveEntityRef(camera.target)
		if !tracking {
			return fmt.Errorf("focus on despawned entity: %w", ErrTrackTargetMissing)
		}
	}

	var (
		targetPosition physics.Vec2
		found          bool
	)
	for body := range s.Bodies.Values() {
		projected := camera.Project(body.Motion.Position)
		body.RenderBox.MoveTo(projected)
		if tracking && body.EntityId == target {
			targetPosition = projected
			found = true
		}
	}

	var center physics.Vec2
	if viewport := s.Viewport.Get(); viewport != nil {
		center = viewport.Center()
	}
	if !tracking {
		camera.Focus = center
		return nil
	}
	if !found {
		return fmt.Errorf("focus on entity %d: %w", target, ErrTrackTargetMissing)
	}
	camera.Focus = center.Sub(targetPosition)
	return nil
}
