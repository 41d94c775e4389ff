package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/planets/ecs"
	"github.com/plus3/planets/render"
)

// Simulation is the time control the panel drives.
type Simulation interface {
	TimeScale() float64
	Paused() bool
	SpeedUp()
	SlowDown()
	TogglePause()
}

// Pipeline names a scheduler whose per-system timings the panel shows.
type Pipeline struct {
	Name  string
	Stats func() *ecs.SchedulerStats
}

// SimulationPanel shows time controls, camera zoom, storage statistics, frame times and
// per-system timings.
type SimulationPanel struct {
	sim       Simulation
	pipelines []Pipeline
	history   *FrameHistory
	lastFrame time.Time
}

func NewSimulationPanel(sim Simulation, historyFrames int, pipelines ...Pipeline) *SimulationPanel {
	return &SimulationPanel{
		sim:       sim,
		pipelines: pipelines,
		history:   NewFrameHistory(historyFrames),
	}
}

func (p *SimulationPanel) Render(storage *ecs.Storage) {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.history.Push(now.Sub(p.lastFrame).Seconds())
	}
	p.lastFrame = now

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("Simulation", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	p.renderTimeControls()
	imgui.Separator()
	p.renderCamera(storage)
	imgui.Separator()

	stats := storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))

	avg := p.history.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}
	samples := p.history.Samples()
	imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))

	for _, pipeline := range p.pipelines {
		if imgui.TreeNodeStr(pipeline.Name) {
			renderSystemTable(pipeline.Name, pipeline.Stats())
			imgui.TreePop()
		}
	}

	if imgui.TreeNodeStr("Archetypes") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchetypeTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entities")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", len(arch.ComponentTypes)))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (p *SimulationPanel) renderTimeControls() {
	if p.sim.Paused() {
		imgui.Text("Time scale: paused")
	} else {
		imgui.Text(fmt.Sprintf("Time scale: x%g", p.sim.TimeScale()))
	}

	if imgui.Button("Slower") {
		p.sim.SlowDown()
	}
	imgui.SameLine()
	label := "Pause"
	if p.sim.Paused() {
		label = "Resume"
	}
	if imgui.Button(label) {
		p.sim.TogglePause()
	}
	imgui.SameLine()
	if imgui.Button("Faster") {
		p.sim.SpeedUp()
	}
}

func (p *SimulationPanel) renderCamera(storage *ecs.Storage) {
	var camera *render.Camera
	if !storage.ReadSingleton(&camera) {
		return
	}

	imgui.Text(fmt.Sprintf("Zoom: %.3e px/m", camera.Zoom.Current))
	if imgui.Button("Zoom in") {
		camera.ZoomIn()
	}
	imgui.SameLine()
	if imgui.Button("Zoom out") {
		camera.ZoomOut()
	}

	if target := camera.Target(); target.Valid() {
		name := "unnamed"
		if n := ecs.ReadComponent[render.Name](storage, target.Id); n != nil {
			name = string(*n)
		}
		imgui.Text(fmt.Sprintf("Tracking: %s", name))
		imgui.SameLine()
		if imgui.Button("Release") {
			camera.Release()
		}
	} else {
		imgui.Text("Tracking: none")
	}
}

func renderSystemTable(id string, stats *ecs.SchedulerStats) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV(id+"Systems", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Last")
	imgui.TableSetupColumn("Avg")
	imgui.TableSetupColumn("Max")
	imgui.TableHeadersRow()

	for _, system := range stats.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(system.Name)
		imgui.TableNextColumn()
		imgui.Text(system.LastDuration.String())
		imgui.TableNextColumn()
		imgui.Text(system.AvgDuration.String())
		imgui.TableNextColumn()
		imgui.Text(system.MaxDuration.String())
	}
	imgui.EndTable()
}
