package main

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/planets/config"
	"github.com/plus3/planets/physics"
	"github.com/plus3/planets/render"
	"github.com/plus3/planets/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputActions(t *testing.T) {
	tests := []struct {
		name  string
		input inputSnapshot
		want  []action
	}{
		{"nothing", inputSnapshot{}, nil},
		{"wheel up", inputSnapshot{wheelY: 1}, []action{actionZoomIn}},
		{"wheel down", inputSnapshot{wheelY: -0.5}, []action{actionZoomOut}},
		{"period", inputSnapshot{justPressed: []ebiten.Key{ebiten.KeyPeriod}}, []action{actionSpeedUp}},
		{"comma", inputSnapshot{justPressed: []ebiten.Key{ebiten.KeyComma}}, []action{actionSlowDown}},
		{"pause", inputSnapshot{justPressed: []ebiten.Key{ebiten.KeyP}}, []action{actionTogglePause}},
		{"unbound keys", inputSnapshot{justPressed: []ebiten.Key{ebiten.KeyA, ebiten.KeySpace}}, nil},
		{
			"wheel before keys",
			inputSnapshot{wheelY: 2, justPressed: []ebiten.Key{ebiten.KeyComma, ebiten.KeyP}},
			[]action{actionZoomIn, actionSlowDown, actionTogglePause},
		},
		{"mouse captured", inputSnapshot{wheelY: 1, mouseCaptured: true}, nil},
		{
			"keyboard captured",
			inputSnapshot{wheelY: -1, justPressed: []ebiten.Key{ebiten.KeyP}, keyboardCaptured: true},
			[]action{actionZoomOut},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.actions())
		})
	}
}

type recordingTime struct {
	calls []string
}

func (r *recordingTime) SpeedUp()     { r.calls = append(r.calls, "speed_up") }
func (r *recordingTime) SlowDown()    { r.calls = append(r.calls, "slow_down") }
func (r *recordingTime) TogglePause() { r.calls = append(r.calls, "toggle_pause") }

func TestApplyActions(t *testing.T) {
	sim := &recordingTime{}
	camera := render.NewCamera(100, 10, 4)

	apply([]action{actionSpeedUp, actionSlowDown, actionTogglePause}, sim, &camera)
	assert.Equal(t, []string{"speed_up", "slow_down", "toggle_pause"}, sim.calls)
	assert.False(t, camera.Zoom.Animating())

	apply([]action{actionZoomIn}, sim, &camera)
	assert.Equal(t, 110.0, camera.Zoom.Target)

	apply([]action{actionZoomOut, actionZoomOut}, sim, &camera)
	assert.Equal(t, 90.0, camera.Zoom.Target)
}

func TestRingScene(t *testing.T) {
	sc := ringScene(12, 7)
	require.Len(t, sc.Bodies, 13)
	require.NoError(t, sc.Validate())

	heaviest := sc.Bodies[0]
	for _, body := range sc.Bodies[1:] {
		assert.Less(t, body.Mass, heaviest.Mass)

		r := math.Hypot(body.Position[0], body.Position[1])
		assert.GreaterOrEqual(t, r, ringInnerRadius)
		assert.LessOrEqual(t, r, ringOuterRadius)

		speed := math.Hypot(body.Velocity[0], body.Velocity[1])
		assert.InDelta(t, math.Sqrt(physics.G*ringCentralMass/r), speed, 1e-6)
		// circular orbit: velocity perpendicular to the radius
		dot := body.Position[0]*body.Velocity[0] + body.Position[1]*body.Velocity[1]
		assert.InDelta(t, 0, dot/(r*speed), 1e-9)

		_, err := scene.ParseColor(body.Color)
		assert.NoError(t, err)
	}

	assert.Equal(t, sc.Bodies, ringScene(12, 7).Bodies)
}

func TestRunBench(t *testing.T) {
	cfg := config.DefaultConfig()
	report, err := runBench(cfg, ringScene(6, 1), 5)
	require.NoError(t, err)

	assert.Equal(t, 7, report.Bodies)
	assert.Len(t, report.TickTime.Samples, 5)
	assert.LessOrEqual(t, report.TickTime.Min, report.TickTime.Avg)
	assert.LessOrEqual(t, report.TickTime.Avg, report.TickTime.Max)
	assert.Equal(t, 7, report.Storage.TotalEntityCount-countTraces(report))
	require.Len(t, report.Pipelines, 2)
	assert.Equal(t, "Update", report.Pipelines[0].Name)
	assert.Equal(t, 5, len(report.Pipelines[0].Stats.Systems))

	var out bytes.Buffer
	report.Plot = true
	require.NoError(t, report.Generate(&out))
	assert.Contains(t, out.String(), "# Simulation Bench Report")
	assert.Contains(t, out.String(), "**Bodies:** 7")
	assert.Contains(t, out.String(), "GravitySystem")
	assert.Contains(t, out.String(), "tick duration")
}

func countTraces(report *Report) int {
	traces := 0
	for _, arch := range report.Storage.ArchetypeBreakdown {
		for _, name := range arch.ComponentTypes {
			if name == "render.Trace" {
				traces += arch.EntityCount
			}
		}
	}
	return traces
}

func TestStatsGraphBuckets(t *testing.T) {
	var stats Stats
	assert.Empty(t, stats.Graph(80))

	for i := range 200 {
		stats.Samples = append(stats.Samples, 1000+1000*time.Duration(i%3))
	}
	stats.Finalize()
	assert.Equal(t, 1000*time.Nanosecond, stats.Min)
	assert.Equal(t, 3000*time.Nanosecond, stats.Max)
	assert.NotEmpty(t, stats.Graph(80))
}

func TestScenePaths(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, filepath.Join("assets", "simulation.yaml"), scenePath(cfg))
	assert.Equal(t, filepath.Join("assets", "textures", "earth.png"), texturePath(cfg, "earth"))

	cfg.Scene = "/tmp/custom.yaml"
	assert.Equal(t, "/tmp/custom.yaml", scenePath(cfg))
}

func TestRootOptionsOverrideConfig(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--scene", "other.yaml", "--resolution", "800x600", "--windowed"}))

	opts := &rootOptions{}
	opts.scene, _ = cmd.Flags().GetString("scene")
	opts.resolution, _ = cmd.Flags().GetString("resolution")
	opts.windowed, _ = cmd.Flags().GetBool("windowed")

	cfg, err := opts.load(cmd)
	require.NoError(t, err)
	assert.Equal(t, "other.yaml", cfg.Scene)
	assert.Equal(t, config.DefaultAssets, cfg.Assets)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.False(t, cfg.Window.Fullscreen)
}

func TestRootOptionsRejectBadResolution(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--resolution", "wide"}))

	opts := &rootOptions{resolution: "wide"}
	_, err := opts.load(cmd)
	assert.ErrorIs(t, err, config.ErrInvalidResolution)
}

func TestSampleSceneLoads(t *testing.T) {
	sc, err := scene.Load(filepath.Join("..", "..", "assets", "simulation.yaml"))
	require.NoError(t, err)
	require.NotNil(t, sc.Background)
	assert.Len(t, sc.Bodies, 4)
}
