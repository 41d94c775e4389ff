package debugui

import "github.com/plus3/planets/ecs"

// SpawnPanels adds the simulation panel and the body inspector as ImGui windows.
func SpawnPanels(storage *ecs.Storage, sim Simulation, pipelines ...Pipeline) {
	panel := NewSimulationPanel(sim, 120, pipelines...)
	inspector := NewBodyInspector()

	storage.Spawn(ImguiItem{Render: func() { panel.Render(storage) }})
	storage.Spawn(ImguiItem{Render: func() { inspector.Render(storage) }})
}
