package ecs

import (
	"errors"
	"reflect"
)

// Commands buffers structural changes made during a tick. Systems never change the set of
// live entities while queries are being iterated; the Scheduler flushes the buffer after
// the last system has run.
type Commands struct {
	spawns   [][]any
	despawns []EntityId
	adds     []addComponentCommand
	removes  []removeComponentCommand
	defers   []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues a function to run after all structural changes are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Despawn queues an entity removal.
func (c *Commands) Despawn(entity EntityId) {
	c.despawns = append(c.despawns, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.despawns) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies all queued commands to storage in the order despawns, removals,
// additions, spawns, deferred functions, and resets the buffer.
// Despawning an entity that is not alive is reported in the returned error; the rest
// of the buffer is still applied.
func (c *Commands) Flush(storage *Storage) error {
	var errs []error
	despawned := make(map[EntityId]bool, len(c.despawns))

	for _, id := range c.despawns {
		if err := storage.Despawn(id); err != nil {
			errs = append(errs, err)
			continue
		}
		despawned[id] = true
	}

	for _, cmd := range c.removes {
		if despawned[cmd.entity] {
			continue
		}
		if _, err := storage.RemoveComponent(cmd.entity, cmd.compType); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range c.adds {
		if despawned[cmd.entity] {
			continue
		}
		if _, err := storage.AddComponent(cmd.entity, cmd.component); err != nil {
			errs = append(errs, err)
		}
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.despawns = c.despawns[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]

	return errors.Join(errs...)
}
