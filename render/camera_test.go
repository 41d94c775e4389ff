package render_test

import (
	"testing"

	"github.com/plus3/planets/ecs"
	"github.com/plus3/planets/physics"
	"github.com/plus3/planets/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoomAnimationConverges(t *testing.T) {
	zoom := render.ZoomAnimation{Current: 512}
	zoom.Animate(1024, 2)
	assert.True(t, zoom.Animating())

	zoom.Step()
	assert.Equal(t, 768.0, zoom.Current)

	zoom.Step()
	assert.Equal(t, 1024.0, zoom.Current)
	assert.False(t, zoom.Animating())

	for i := 0; i < 10; i++ {
		zoom.Step()
	}
	assert.Equal(t, 1024.0, zoom.Current)
}

func TestZoomAnimationLandsExactlyOnTarget(t *testing.T) {
	zoom := render.ZoomAnimation{Current: render.DefaultZoom}
	target := render.DefaultZoom + render.DefaultZoomStep*3
	zoom.Animate(target, 16)

	for i := 0; i < 16; i++ {
		zoom.Step()
	}
	assert.Equal(t, target, zoom.Current)
}

func TestZoomAnimationWithoutSteps(t *testing.T) {
	zoom := render.ZoomAnimation{Current: 1}
	zoom.Animate(3, 0)
	assert.Equal(t, 3.0, zoom.Current)
	assert.False(t, zoom.Animating())
}

func TestCameraZoomInOut(t *testing.T) {
	camera := render.NewCamera(4, 1, 2)

	camera.ZoomIn()
	assert.Equal(t, 5.0, camera.Zoom.Target)
	camera.Zoom.Step()
	camera.Zoom.Step()
	assert.Equal(t, 5.0, camera.Zoom.Current)

	camera.ZoomOut()
	assert.Equal(t, 4.0, camera.Zoom.Target)

	low := render.NewCamera(1, 1, 2)
	low.ZoomOut()
	assert.False(t, low.Zoom.Animating(), "zooming out to zero is ignored")
	assert.Equal(t, 1.0, low.Zoom.Current)
}

func TestCameraProjectsBodies(t *testing.T) {
	storage := newStorage()
	id := spawnBody(storage, "", physics.Vec2{X: 3, Y: -2}, 1)

	r := render.NewRenderer(storage, testOptions(10))
	mustRender(t, r, render.Viewport{Width: 200, Height: 100})

	box := ecs.ReadComponent[render.RenderBox](storage, id)
	assert.Equal(t, physics.Vec2{X: 30, Y: -20}, box.Position)
	assert.Equal(t, render.Rect{X: 29, Y: -21, W: 2, H: 2}, box.Bounds)

	motion := ecs.ReadComponent[physics.Motion](storage, id)
	assert.Equal(t, physics.Vec2{X: 3, Y: -2}, motion.Position, "projection never feeds back")

	assert.Equal(t, physics.Vec2{X: 100, Y: 50}, r.Camera().Focus)
}

func TestCameraZoomAnimatesAcrossRenderTicks(t *testing.T) {
	storage := newStorage()
	id := spawnBody(storage, "", physics.Vec2{X: 1}, 1)

	r := render.NewRenderer(storage, render.Options{Camera: render.NewCamera(512, 512, 2)})
	r.Camera().ZoomIn()

	viewport := render.Viewport{Width: 10, Height: 10}
	mustRender(t, r, viewport)
	assert.Equal(t, 768.0, ecs.ReadComponent[render.RenderBox](storage, id).Position.X)
	mustRender(t, r, viewport)
	assert.Equal(t, 1024.0, ecs.ReadComponent[render.RenderBox](storage, id).Position.X)
}

func TestTrackingFocus(t *testing.T) {
	tests := []struct {
		name     string
		zoom     float64
		viewport render.Viewport
	}{
		{"unit zoom", 1, render.Viewport{Width: 800, Height: 600}},
		{"magnified", 2.5, render.Viewport{Width: 1920, Height: 1080}},
		{"reference zoom", render.DefaultZoom, render.Viewport{Width: 1024, Height: 768}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newStorage()
			spawnBody(storage, "light", physics.Vec2{X: -40, Y: 10}, 1, physics.Mass{Kg: 1})
			heavy := spawnBody(storage, "heavy", physics.Vec2{X: 100, Y: 50}, 1, physics.Mass{Kg: 10})

			r := render.NewRenderer(storage, testOptions(tt.zoom))
			require.NoError(t, render.AssignTracking(storage, r.Camera(), heavy))
			mustRender(t, r, tt.viewport)

			projected := physics.Vec2{X: 100, Y: 50}.Scale(tt.zoom)
			expected := tt.viewport.Center().Sub(projected)
			assert.Equal(t, expected, r.Camera().Focus)
		})
	}
}

func TestTrackingMissingTargetIsFatal(t *testing.T) {
	storage := newStorage()
	id := spawnBody(storage, "doomed", physics.Vec2{}, 1)

	r := render.NewRenderer(storage, testOptions(1))
	require.NoError(t, render.AssignTracking(storage, r.Camera(), id))

	target, ok := storage.ResolveEntityRef(r.Camera().Target())
	require.True(t, ok)
	require.NoError(t, storage.Despawn(target))

	_, err := r.Render(render.Viewport{Width: 10, Height: 10})
	assert.ErrorIs(t, err, render.ErrTrackTargetMissing)
}

func TestTrackingTargetWithoutRenderBox(t *testing.T) {
	storage := newStorage()
	id := storage.Spawn(physics.Motion{}, render.Name("invisible"))

	r := render.NewRenderer(storage, testOptions(1))
	require.NoError(t, render.AssignTracking(storage, r.Camera(), id))

	_, err := r.Render(render.Viewport{Width: 10, Height: 10})
	assert.ErrorIs(t, err, render.ErrTrackTargetMissing)
}

func TestReleaseReturnsToFixedFocus(t *testing.T) {
	storage := newStorage()
	id := spawnBody(storage, "", physics.Vec2{X: 5}, 1)

	r := render.NewRenderer(storage, testOptions(1))
	require.NoError(t, render.AssignTracking(storage, r.Camera(), id))
	assert.True(t, r.Camera().Tracking())

	r.Camera().Release()
	assert.False(t, r.Camera().Tracking())
	mustRender(t, r, render.Viewport{Width: 40, Height: 20})
	assert.Equal(t, physics.Vec2{X: 20, Y: 10}, r.Camera().Focus)
}

func TestAssignTrackingMovesTag(t *testing.T) {
	storage := newStorage()
	first := spawnBody(storage, "first", physics.Vec2{}, 1)
	second := spawnBody(storage, "second", physics.Vec2{X: 1}, 1)

	camera := render.DefaultCamera()
	require.NoError(t, render.AssignTracking(storage, &camera, first))
	require.NoError(t, render.AssignTracking(storage, &camera, second))

	tagged := []string{}
	for item := range ecs.NewView[struct {
		*render.Tracked
		*render.Name
	}](storage).Values() {
		tagged = append(tagged, string(*item.Name))
	}
	assert.Equal(t, []string{"second"}, tagged)

	current, ok := storage.ResolveEntityRef(camera.Target())
	require.True(t, ok)
	assert.Equal(t, render.Name("second"), *ecs.ReadComponent[render.Name](storage, current))

	// Assigning the same entity again keeps a single tag.
	require.NoError(t, render.AssignTracking(storage, &camera, current))
	assert.Equal(t, 1, countTracked(storage))
}

func TestAssignTrackingAbsentEntity(t *testing.T) {
	storage := newStorage()
	camera := render.DefaultCamera()

	err := render.AssignTracking(storage, &camera, ecs.NewEntityId(1, 2))
	assert.ErrorIs(t, err, ecs.ErrEntityNotFound)
	assert.False(t, camera.Tracking())
}

func countTracked(storage *ecs.Storage) int {
	n := 0
	for range ecs.NewView[struct{ *render.Tracked }](storage).Iter() {
		n++
	}
	return n
}
