package ecs

import (
	"reflect"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity sharing one exact combination of component types.
// Each component type gets its own column; a slot index addresses the same entity
// in every column.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []componentStorage
	refs     *intmap.Map[EntityId, weak.Pointer[EntityRef]]

	// generations[i] is the generation of slot i; it is bumped whenever the slot is freed.
	generations []uint32
}

// NewArchetype creates a new archetype with the given ID and sorted component types
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]componentStorage, len(types)),
		refs:     intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// Spawn stores one entity's components and returns its id.
// components must hold exactly one value per archetype type.
func (a *Archetype) Spawn(components []any) EntityId {
	slot := -1
	for _, comp := range components {
		idx := a.columnOf(componentType(comp))
		if idx == -1 {
			continue
		}
		slot = a.storages[idx].Append(comp)
	}
	if slot >= MaxArchetypeEntities {
		panic("archetype is full")
	}
	return a.idAt(slot)
}

// idAt returns the id of whatever currently occupies slot.
func (a *Archetype) idAt(slot int) EntityId {
	var generation uint32
	if slot < len(a.generations) {
		generation = a.generations[slot]
	}
	return newEntityId(a.id, uint32(slot), generation)
}

// GetComponent returns a pointer to the component of the given type for the entity, or
// nil if the archetype lacks the type or the entity is not alive.
func (a *Archetype) GetComponent(id EntityId, compType reflect.Type) any {
	idx := a.columnOf(compType)
	if idx == -1 || !a.Alive(id) {
		return nil
	}
	return a.storages[idx].Get(int(id.Index()))
}

// Alive reports whether id refers to the entity currently occupying its slot.
func (a *Archetype) Alive(id EntityId) bool {
	if len(a.storages) == 0 || id.ArchetypeId() != a.id {
		return false
	}
	return a.storages[0].Has(int(id.Index())) && a.idAt(int(id.Index())) == id
}

// Delete frees an entity's slot and invalidates any EntityRef pointing at it.
// Other slots keep their indices; the freed slot moves to the next generation so id
// never resolves again. Returns false if id is not alive.
func (a *Archetype) Delete(id EntityId) bool {
	if !a.Alive(id) {
		return false
	}

	if weakPtr, ok := a.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}

	slot := int(id.Index())
	for _, storage := range a.storages {
		storage.Delete(slot)
	}
	a.bumpGeneration(slot)
	return true
}

func (a *Archetype) bumpGeneration(slot int) {
	if slot >= len(a.generations) {
		a.generations = append(a.generations, make([]uint32, slot+1-len(a.generations))...)
	}
	a.generations[slot] = (a.generations[slot] + 1) & generationMask
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Compact reorganizes all columns to eliminate empty slots.
// EntityRefs are moved to the new indices; raw EntityIds into this archetype become stale.
func (a *Archetype) Compact() {
	if len(a.storages) == 0 {
		return
	}

	oldIds := make(map[int]EntityId, a.Len())
	for id := range a.Iter() {
		oldIds[int(id.Index())] = id
	}

	indexMap := a.storages[0].Compact()
	for i := 1; i < len(a.storages); i++ {
		a.storages[i].Compact()
	}

	// Every slot that existed moves to its next generation, so no id issued before
	// compaction resolves afterwards.
	slots := len(a.generations)
	for slot := range oldIds {
		slots = max(slots, slot+1)
	}
	for slot := range slots {
		a.bumpGeneration(slot)
	}

	moved := make(map[EntityId]weak.Pointer[EntityRef], a.refs.Len())
	for oldIdx, newIdx := range indexMap {
		weakPtr, ok := a.refs.Get(oldIds[oldIdx])
		if !ok {
			continue
		}
		if ref := weakPtr.Value(); ref != nil {
			newId := a.idAt(newIdx)
			ref.Id = newId
			moved[newId] = weakPtr
		}
	}

	a.refs.Clear()
	for id, weakPtr := range moved {
		a.refs.Put(id, weakPtr)
	}
}

// Iter returns an iterator over all live EntityIds in this archetype, in slot order.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}

		for index := range a.storages[0].Iter() {
			if !yield(a.idAt(index)) {
				return
			}
		}
	}
}

func (a *Archetype) columnOf(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}
