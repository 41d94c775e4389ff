package physics

import "github.com/plus3/planets/ecs"

// PropulsionSystem adds each body's thrust to its Force. It runs between
// ForceResetSystem and ForceResolveSystem and has no effect when no entity carries
// Propulsion.
type PropulsionSystem struct {
	Engines ecs.Query[struct {
		*Propulsion
		*Force
	}]
}

func (s *PropulsionSystem) Execute(frame *ecs.UpdateFrame) error {
	for engine := range s.Engines.Values() {
		engine.Force.Net = engine.Force.Net.Add(engine.Propulsion.Thrust)
	}
	return nil
}
