package render

import (
	"fmt"
	"reflect"

	"github.com/plus3/planets/ecs"
)

var trackedType = reflect.TypeFor[Tracked]()

// AssignTracking moves the Tracked tag to id, removing it from whichever entity held
// it before, and points camera at the entity.
func AssignTracking(storage *ecs.Storage, camera *Camera, id ecs.EntityId) error {
	ref := storage.CreateEntityRef(id)
	if ref == nil {
		return fmt.Errorf("track entity %d: %w", id, ecs.ErrEntityNotFound)
	}

	var previous []ecs.EntityId
	for current := range ecs.NewView[struct{ *Tracked }](storage).Iter() {
		if current != ref.Id {
			previous = append(previous, current)
		}
	}
	for _, current := range previous {
		if _, err := storage.RemoveComponent(current, trackedType); err != nil {
			return err
		}
	}

	if !storage.HasComponent(ref.Id, trackedType) {
		if _, err := storage.AddComponent(ref.Id, Tracked{}); err != nil {
			return err
		}
	}

	camera.Track(ref)
	return nil
}
