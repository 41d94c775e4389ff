package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/planets/debugui"
	debugui_ebiten "github.com/plus3/planets/debugui/ebiten"
	"github.com/plus3/planets/ecs"
)

// overlay runs the ImGui scheduler between BeginFrame and EndFrame and draws the
// result on top of the frame.
type overlay struct {
	scheduler *ecs.Scheduler
	backend   debugui_ebiten.ImguiBackend
}

func (o *overlay) Update() error {
	o.backend.BeginFrame()
	err := o.scheduler.Once(1.0 / 60.0)
	o.backend.EndFrame()
	return err
}

func (o *overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *overlay) Layout(outsideWidth, outsideHeight int) (int, int) {
	o.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	backend := debugui_ebiten.NewImguiBackend("Overlay Example", 1280, 720)

	registry := ecs.NewComponentRegistry()
	debugui.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from the overlay")
			imgui.End()
		},
	})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&debugui.ImguiSystem{})

	if err := ebiten.RunGame(&overlay{scheduler: scheduler, backend: backend}); err != nil {
		panic(err)
	}
}
