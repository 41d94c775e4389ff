package physics

import (
	"fmt"

	"github.com/plus3/planets/ecs"
)

// ForceResetSystem zeroes every Force. It must run before any system adds to Force.
type ForceResetSystem struct {
	Forces ecs.Query[struct {
		*Force
	}]
}

func (s *ForceResetSystem) Execute(frame *ecs.UpdateFrame) error {
	for body := range s.Forces.Values() {
		body.Force.Net = Vec2{}
	}
	return nil
}

// ForceResolveSystem turns the accumulated force into acceleration (a = F/m).
type ForceResolveSystem struct {
	Bodies ecs.Query[struct {
		ecs.EntityId
		*Force
		*Mass
		*Motion
	}]
}

func (s *ForceResolveSystem) Execute(frame *ecs.UpdateFrame) error {
	for body := range s.Bodies.Values() {
		if body.Mass.Kg == 0 {
			return fmt.Errorf("resolve force of entity %d: %w", body.EntityId, ErrZeroMass)
		}
		body.Motion.Acceleration = body.Force.Net.Scale(1 / body.Mass.Kg)
	}
	return nil
}
