package main

import (
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/planets/config"
	"github.com/plus3/planets/ecs"
	"github.com/plus3/planets/physics"
	"github.com/plus3/planets/render"
	"github.com/plus3/planets/scene"
	"github.com/plus3/planets/universe"
	"github.com/spf13/cobra"
)

const (
	ringCentralMass = 5.972e24
	ringInnerRadius = 1.0e7
	ringOuterRadius = 4.5e7
)

type benchOptions struct {
	bodies int
	ticks  int
	seed   uint64
	plot   bool
}

func newBenchCommand(root *rootOptions) *cobra.Command {
	opts := &benchOptions{}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run the simulation headless and report per-tick cost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load(cmd)
			if err != nil {
				return err
			}

			var sc *scene.Scene
			if opts.bodies > 0 {
				sc = ringScene(opts.bodies, opts.seed)
			} else {
				path := scenePath(cfg)
				log.Printf("Loading scene %s...", path)
				if sc, err = scene.Load(path); err != nil {
					return err
				}
			}

			report, err := runBench(cfg, sc, opts.ticks)
			if err != nil {
				return err
			}
			report.Plot = opts.plot
			return report.Generate(os.Stdout)
		},
	}

	benchCmd.Flags().IntVar(&opts.bodies, "bodies", 0, "generate a ring of this many bodies instead of loading the scene")
	benchCmd.Flags().IntVar(&opts.ticks, "ticks", 600, "number of update and render ticks")
	benchCmd.Flags().Uint64Var(&opts.seed, "seed", 1, "random seed for the generated ring")
	benchCmd.Flags().BoolVar(&opts.plot, "plot", true, "include an ASCII plot of tick durations")
	return benchCmd
}

// ringScene builds a planet with n satellites on circular orbits between
// ringInnerRadius and ringOuterRadius, each in its own colour.
func ringScene(n int, seed uint64) *scene.Scene {
	rng := rand.New(rand.NewPCG(seed, seed))

	sc := &scene.Scene{
		Bodies: []scene.Body{{
			Name:          "Planet",
			Mass:          ringCentralMass,
			VisibleRadius: 30,
			Color:         "#3a7bd5",
		}},
	}

	for i := range n {
		radius := ringInnerRadius + rng.Float64()*(ringOuterRadius-ringInnerRadius)
		angle := rng.Float64() * 2 * math.Pi
		speed := math.Sqrt(physics.G * ringCentralMass / radius)

		hue := float64(i) * 360 / float64(n)
		sc.Bodies = append(sc.Bodies, scene.Body{
			Name:          fmt.Sprintf("S%d", i+1),
			Position:      [2]float64{radius * math.Cos(angle), radius * math.Sin(angle)},
			Velocity:      [2]float64{-speed * math.Sin(angle), speed * math.Cos(angle)},
			Mass:          1e3 + rng.Float64()*1e4,
			VisibleRadius: 4,
			Color:         colorful.Hcl(hue, 0.6, 0.7).Clamped().Hex(),
			LeavesTraces:  i%4 == 0,
		})
	}
	return sc
}

// runBench loads sc synchronously, then drives ticks update and render passes at a
// fixed 60 Hz step over a viewport the size of the configured window.
func runBench(cfg *config.Config, sc *scene.Scene, ticks int) (*Report, error) {
	storage := ecs.NewStorage(newRegistry())
	renderer := render.NewRenderer(storage, cfg.RenderOptions())
	sim := universe.New(storage)

	loader := scene.NewLoader(storage, renderer.Camera(), sc.Objects())
	for !loader.State().Done() {
		if err := loader.Update(); err != nil {
			return nil, fmt.Errorf("load scene: %w", err)
		}
	}

	viewport := render.Viewport{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)}
	const dt = 1.0 / 60.0

	report := &Report{
		Bodies:     len(sc.Bodies),
		Ticks:      ticks,
		TimeScale:  sim.TimeScale(),
		Resolution: fmt.Sprintf("%dx%d", cfg.Window.Width, cfg.Window.Height),
		TickTime:   Stats{Samples: make([]time.Duration, 0, ticks)},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running %d ticks over %d bodies...", ticks, len(sc.Bodies))
	start := time.Now()
	for range ticks {
		tickStart := time.Now()
		if err := sim.Tick(dt); err != nil {
			return nil, fmt.Errorf("update: %w", err)
		}
		frame, err := renderer.Render(viewport)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
		report.Drawables = len(frame.Drawables)
	}

	report.TotalTime = time.Since(start)
	report.TickTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Storage = storage.CollectStats()
	report.Pipelines = []PipelineReport{
		{Name: "Update", Stats: sim.Stats()},
		{Name: "Render", Stats: renderer.Stats()},
	}
	log.Println("Bench finished.")
	return report, nil
}
