package render

import (
	"github.com/plus3/planets/ecs"
	"github.com/plus3/planets/physics"
)

// TraceSettings controls how often bodies drop traces and how long the traces last.
type TraceSettings struct {
	SpawnInterval int
	Lifetime      int
	InitialAlpha  float64
}

func DefaultTraceSettings() TraceSettings {
	return TraceSettings{
		SpawnInterval: 16,
		Lifetime:      255,
		InitialAlpha:  0.5,
	}
}

// Fade is the alpha a trace loses per tick.
func (s TraceSettings) Fade() float64 {
	return s.InitialAlpha / float64(s.Lifetime)
}

// Trace is a fading ghost left behind by a moving body. Seq orders traces by spawn
// time so older ghosts are drawn first.
type Trace struct {
	Color     Color
	Remaining int
	Fade      float64
	Seq       uint64
}

// TraceSpawnSystem drops a trace for every body marked with LeavesTraces once every
// SpawnInterval ticks. A trace copies the body's render box and a frozen Motion so it
// is reprojected with the camera but never moves.
type TraceSpawnSystem struct {
	Sources ecs.Query[struct {
		*RenderBox
		*Sprite
		*physics.Motion
		*LeavesTraces
	}]

	settings  TraceSettings
	countdown int
	seq       uint64
}

func NewTraceSpawnSystem(settings TraceSettings) *TraceSpawnSystem {
	return &TraceSpawnSystem{
		settings:  settings,
		countdown: settings.SpawnInterval,
	}
}

func (s *TraceSpawnSystem) Execute(frame *ecs.UpdateFrame) error {
	s.countdown--
	if s.countdown > 0 {
		return nil
	}
	s.countdown = s.settings.SpawnInterval

	for source := range s.Sources.Values() {
		s.seq++
		frame.Commands.Spawn(
			Trace{
				Color:     source.Sprite.Color.WithAlpha(s.settings.InitialAlpha),
				Remaining: s.settings.Lifetime,
				Fade:      s.settings.Fade(),
				Seq:       s.seq,
			},
			*source.RenderBox,
			physics.Motion{Position: source.Motion.Position},
		)
	}
	return nil
}

// TraceDecaySystem ages every trace by one tick and despawns the ones that expired.
// Despawns are queued and applied after the tick.
type TraceDecaySystem struct {
	Traces ecs.Query[struct {
		ecs.EntityId
		*Trace
	}]
}

func (s *TraceDecaySystem) Execute(frame *ecs.UpdateFrame) error {
	for trace := range s.Traces.Values() {
		trace.Remaining--
		trace.Color.A = max(trace.Color.A-trace.Fade, 0)
		if trace.Remaining <= 0 {
			frame.Commands.Despawn(trace.EntityId)
		}
	}
	return nil
}
