package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/planets/config"
	"github.com/plus3/planets/debugui"
	debugui_ebiten "github.com/plus3/planets/debugui/ebiten"
	"github.com/plus3/planets/ecs"
	"github.com/plus3/planets/physics"
	"github.com/plus3/planets/render"
	"github.com/plus3/planets/scene"
	"github.com/plus3/planets/universe"
)

type stage int

const (
	stageLoading stage = iota
	stageSimulation
)

// Game implements ebiten.Game. It shows a progress screen while the scene is spawned
// one object per tick, then runs the universe on every update and the renderer on
// every draw.
type Game struct {
	cfg      *config.Config
	storage  *ecs.Storage
	universe *universe.Universe
	renderer *render.Renderer
	loader   *scene.Loader
	drawer   *frameDrawer
	stage    stage

	// Set when debug overlay is enabled.
	ui      *ecs.Scheduler
	imgui   *debugui_ebiten.ImguiBackend
	uiInput *ecs.Singleton[debugui.ImguiInputState]

	// Draw cannot return an error, so render failures are reported by the next Update.
	drawErr error
}

func newRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	physics.RegisterComponents(registry)
	render.RegisterComponents(registry)
	debugui.RegisterComponents(registry)
	return registry
}

// newGame prepares the simulation for sc. The scene objects are spawned later by
// Update.
func newGame(cfg *config.Config, sc *scene.Scene) *Game {
	storage := ecs.NewStorage(newRegistry())
	labels := newLabelFace()

	opts := cfg.RenderOptions()
	opts.Measurer = labels
	renderer := render.NewRenderer(storage, opts)

	return &Game{
		cfg:      cfg,
		storage:  storage,
		universe: universe.New(storage),
		renderer: renderer,
		loader:   scene.NewLoader(storage, renderer.Camera(), sc.Objects()),
		drawer: &frameDrawer{
			textures: newTextures(func(name string) string { return texturePath(cfg, name) }),
			labels:   labels,
		},
	}
}

// enableDebugUI attaches the ImGui overlay. It must be called after the window exists.
func (g *Game) enableDebugUI(backend *debugui_ebiten.ImguiBackend) {
	g.uiInput = ecs.NewSingleton[debugui.ImguiInputState](g.storage)

	g.ui = ecs.NewScheduler(g.storage)
	g.ui.Register(&debugui.ImguiSystem{})
	g.imgui = backend

	debugui.SpawnPanels(g.storage, g.universe,
		debugui.Pipeline{Name: "Update", Stats: g.universe.Stats},
		debugui.Pipeline{Name: "Render", Stats: g.renderer.Stats},
	)
}

func (g *Game) Update() error {
	if g.drawErr != nil {
		return g.drawErr
	}

	switch g.stage {
	case stageLoading:
		if err := g.loader.Update(); err != nil {
			return fmt.Errorf("load scene: %w", err)
		}
		if g.loader.State().Done() {
			log.Println("Scene loaded.")
			g.stage = stageSimulation
		}
		return nil

	case stageSimulation:
		if ebiten.IsKeyPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}

		var mouseCaptured, keyboardCaptured bool
		if g.ui != nil {
			g.imgui.BeginFrame()
			err := g.ui.Once(g.dt())
			g.imgui.EndFrame()
			if err != nil {
				return err
			}
			state := g.uiInput.Get()
			mouseCaptured, keyboardCaptured = state.WantCaptureMouse, state.WantCaptureKeyboard
		}

		input := readInput(mouseCaptured, keyboardCaptured)
		apply(input.actions(), g.universe, g.renderer.Camera())

		if err := g.universe.Tick(g.dt()); err != nil {
			return fmt.Errorf("update: %w", err)
		}
	}
	return nil
}

func (g *Game) dt() float64 {
	return 1 / float64(ebiten.TPS())
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.Black)

	switch g.stage {
	case stageLoading:
		g.drawer.drawLoading(screen, g.loader.State().Percent(), g.cfg.Labels.FontSize*2)

	case stageSimulation:
		bounds := screen.Bounds()
		frame, err := g.renderer.Render(render.Viewport{
			Width:  float64(bounds.Dx()),
			Height: float64(bounds.Dy()),
		})
		if err != nil {
			if g.drawErr == nil {
				g.drawErr = fmt.Errorf("render: %w", err)
			}
			return
		}
		g.drawer.draw(screen, frame)

		if g.imgui != nil {
			g.imgui.Draw(screen)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func runWindow(cfg *config.Config, debug bool) error {
	path := scenePath(cfg)
	log.Printf("Loading scene %s...", path)
	sc, err := scene.Load(path)
	if err != nil {
		return err
	}

	game := newGame(cfg, sc)

	if debug {
		backend := debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		game.enableDebugUI(&backend)
	} else {
		ebiten.SetWindowTitle(cfg.Window.Title)
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)

	log.Printf("Starting simulation with %d bodies.", len(sc.Bodies))
	err = ebiten.RunGame(game)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
