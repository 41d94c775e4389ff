package scene

import (
	"fmt"

	"github.com/plus3/planets/ecs"
	"github.com/plus3/planets/physics"
	"github.com/plus3/planets/render"
)

// LoadingState is the progress of a Loader in [0, 1].
type LoadingState struct {
	Progress float64
}

func (s LoadingState) Done() bool {
	return s.Progress >= 1
}

// Percent is the progress as a whole percentage, rounded down.
func (s LoadingState) Percent() int {
	return int(s.Progress * 100)
}

// Loader spawns one scene object per Update so the host can draw a progress screen
// between objects. After the last object it hands the camera to the heaviest body.
type Loader struct {
	storage *ecs.Storage
	camera  *render.Camera
	objects []Object
	loaded  int
	state   LoadingState
}

func NewLoader(storage *ecs.Storage, camera *render.Camera, objects []Object) *Loader {
	return &Loader{
		storage: storage,
		camera:  camera,
		objects: objects,
	}
}

// Update performs one loading step. Calling it after loading finished is a no-op.
func (l *Loader) Update() error {
	if l.state.Done() {
		return nil
	}

	if l.loaded < len(l.objects) {
		components, err := l.objects[l.loaded].Components()
		if err != nil {
			return err
		}
		l.storage.Spawn(components...)
		l.state.Progress = float64(l.loaded) / float64(len(l.objects))
		l.loaded++
		return nil
	}

	heaviest, err := Heaviest(l.storage)
	if err != nil {
		return err
	}
	if err := render.AssignTracking(l.storage, l.camera, heaviest); err != nil {
		return fmt.Errorf("track heaviest body: %w", err)
	}
	l.state.Progress = 1
	return nil
}

func (l *Loader) State() LoadingState {
	return l.state
}

// Heaviest returns the body with the greatest mass. Ties go to the body seen first.
func Heaviest(storage *ecs.Storage) (ecs.EntityId, error) {
	var (
		best  ecs.EntityId
		mass  float64
		found bool
	)
	for id, body := range ecs.NewView[struct{ *physics.Mass }](storage).Iter() {
		if !found || body.Mass.Kg > mass {
			best, mass, found = id, body.Mass.Kg, true
		}
	}
	if !found {
		return 0, ErrNoBodies
	}
	return best, nil
}
