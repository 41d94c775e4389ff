package physics

import "github.com/plus3/planets/ecs"

// Advance integrates m over dt with semi-implicit Euler: velocity first, then
// position using the updated velocity.
func (m *Motion) Advance(dt float64) {
	m.Velocity = m.Velocity.Add(m.Acceleration.Scale(dt))
	m.Position = m.Position.Add(m.Velocity.Scale(dt))
}

// MotionSystem advances every Motion by the frame's delta time.
type MotionSystem struct {
	Bodies ecs.Query[struct {
		*Motion
	}]
}

func (s *MotionSystem) Execute(frame *ecs.UpdateFrame) error {
	for body := range s.Bodies.Values() {
		body.Motion.Advance(frame.DeltaTime)
	}
	return nil
}
