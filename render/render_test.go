package render_test

import (
	"testing"

	"github.com/plus3/planets/ecs"
	"github.com/plus3/planets/physics"
	"github.com/plus3/planets/render"
)

func newStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	physics.RegisterComponents(registry)
	render.RegisterComponents(registry)
	return ecs.NewStorage(registry)
}

func spawnBody(storage *ecs.Storage, name string, position physics.Vec2, radius float64, extra ...any) ecs.EntityId {
	components := []any{
		physics.Motion{Position: position},
		render.NewRenderBox(radius),
		render.CircleSprite(render.White),
		render.Name(name),
	}
	return storage.Spawn(append(components, extra...)...)
}

func testOptions(zoom float64) render.Options {
	opts := render.DefaultOptions()
	opts.Camera = render.NewCamera(zoom, zoom/4, 16)
	return opts
}

func mustRender(t *testing.T, r *render.Renderer, viewport render.Viewport) *render.Frame {
	t.Helper()
	frame, err := r.Render(viewport)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return frame
}
