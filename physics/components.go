package physics

import "github.com/plus3/planets/ecs"

// Mass of a body in kilograms. Set once at spawn.
type Mass struct {
	Kg float64
}

// Motion is the kinematic state of a body. Acceleration is derived from Force every
// update tick and never integrated across ticks.
type Motion struct {
	Position     Vec2
	Velocity     Vec2
	Acceleration Vec2
}

// Force accumulates the net force acting on a body during one update tick.
type Force struct {
	Net Vec2
}

// Propulsion is a thrust added to Force every tick.
type Propulsion struct {
	Thrust Vec2
}

// RegisterComponents registers every physics component with registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Mass](registry)
	ecs.RegisterComponent[Motion](registry)
	ecs.RegisterComponent[Force](registry)
	ecs.RegisterComponent[Propulsion](registry)
}
