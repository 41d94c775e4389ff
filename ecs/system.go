package ecs

// System is one stage of a tick. Systems declare Query and Singleton fields which the
// Scheduler initializes on registration and refreshes before every tick.
// A returned error aborts the remaining systems of the tick.
type System interface {
	Execute(frame *UpdateFrame) error
}

// UpdateFrame carries per-tick state handed to every system.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
