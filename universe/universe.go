// Package universe drives the physics pipeline once per host update tick and owns the
// simulation time scale.
package universe

import (
	"github.com/plus3/planets/ecs"
	"github.com/plus3/planets/physics"
)

// Presets lists the selectable time multipliers, slowest first.
var Presets = [...]float64{
	1e1, 1e2, 2.5e2, 5e2, 7.5e2, 1e3, 2.5e3, 5e3, 7.5e3, 1e4, 2.5e4, 5e4, 7.5e4, 1e5,
}

// DefaultPreset is the index into Presets a new Universe starts at.
const DefaultPreset = 9

// Universe runs force reset, gravity, propulsion, force resolution and integration,
// in that order, scaling the wall clock delta by the selected preset.
type Universe struct {
	scheduler *ecs.Scheduler
	selected  int
	scale     float64
}

// New builds the update pipeline over storage.
func New(storage *ecs.Storage) *Universe {
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&physics.ForceResetSystem{})
	scheduler.Register(&physics.GravitySystem{})
	scheduler.Register(&physics.PropulsionSystem{})
	scheduler.Register(&physics.ForceResolveSystem{})
	scheduler.Register(&physics.MotionSystem{})

	return &Universe{
		scheduler: scheduler,
		selected:  DefaultPreset,
		scale:     Presets[DefaultPreset],
	}
}

// Tick advances the simulation by dt wall clock seconds.
func (u *Universe) Tick(dt float64) error {
	return u.scheduler.Once(dt * u.scale)
}

// SpeedUp selects the next faster preset. Changing speed while paused resumes the
// simulation at the new preset.
func (u *Universe) SpeedUp() {
	if u.selected < len(Presets)-1 {
		u.selected++
		u.scale = Presets[u.selected]
	}
}

// SlowDown selects the next slower preset.
func (u *Universe) SlowDown() {
	if u.selected > 0 {
		u.selected--
		u.scale = Presets[u.selected]
	}
}

// TogglePause stops time, or restores the selected preset if time is stopped.
func (u *Universe) TogglePause() {
	if u.scale > 0 {
		u.scale = 0
	} else {
		u.scale = Presets[u.selected]
	}
}

// TimeScale returns the current multiplier, 0 while paused.
func (u *Universe) TimeScale() float64 {
	return u.scale
}

// Paused reports whether time is stopped.
func (u *Universe) Paused() bool {
	return u.scale == 0
}

// Preset returns the selected index into Presets.
func (u *Universe) Preset() int {
	return u.selected
}

// Stats reports per-system timings of the update pipeline.
func (u *Universe) Stats() *ecs.SchedulerStats {
	return u.scheduler.GetStats()
}
