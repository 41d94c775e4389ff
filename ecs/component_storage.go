package ecs

import (
	"iter"
	"reflect"
)

// componentStorage is a type-erased column of one component type inside an archetype.
type componentStorage interface {
	Append(item any) int
	Delete(index int) bool
	Get(index int) any
	Has(index int) bool
	Len() int
	Compact() map[int]int
	Iter() iter.Seq[int]
}

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent worlds to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentStorage),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() componentStorage {
		return &blockStorage[T]{}
	}
}

// Registered reports whether a component type has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() componentStorage {
	return r.factories[t]
}

const blockSize = 64

// blockStorage stores components of type T in fixed-size heap blocks. Blocks are never
// moved once allocated, so pointers handed out by Get stay valid until the slot is deleted
// or the storage is compacted.
type blockStorage[T any] struct {
	blocks    []*[blockSize]T
	filled    []*[blockSize]bool
	freeSlots []int
	nextIndex int
	live      int
}

// Append adds a component to storage and returns its index.
func (cs *blockStorage[T]) Append(item any) int {
	var value T
	if ptr, ok := item.(*T); ok {
		value = *ptr
	} else if val, ok := item.(T); ok {
		value = val
	} else {
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/blockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([blockSize]T))
			cs.filled = append(cs.filled, new([blockSize]bool))
		}
	}

	block, slot := index/blockSize, index%blockSize
	cs.blocks[block][slot] = value
	cs.filled[block][slot] = true
	cs.live++
	return index
}

// Get returns a pointer to the component at the given index, or nil if the slot is empty.
func (cs *blockStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	return &cs.blocks[index/blockSize][index%blockSize]
}

// Delete clears a slot and returns whether it was occupied.
func (cs *blockStorage[T]) Delete(index int) bool {
	if !cs.Has(index) {
		return false
	}

	block, slot := index/blockSize, index%blockSize
	var zero T
	cs.filled[block][slot] = false
	cs.blocks[block][slot] = zero
	cs.freeSlots = append(cs.freeSlots, index)
	cs.live--
	return true
}

// Has checks if a component exists at the given index.
func (cs *blockStorage[T]) Has(index int) bool {
	if index < 0 || index >= cs.nextIndex {
		return false
	}
	return cs.filled[index/blockSize][index%blockSize]
}

// Len returns the number of occupied slots.
func (cs *blockStorage[T]) Len() int {
	return cs.live
}

// Compact moves live components to the front and returns the old->new index mapping.
func (cs *blockStorage[T]) Compact() map[int]int {
	indexMap := make(map[int]int, cs.live)

	blocks := make([]*[blockSize]T, 0, (cs.live+blockSize-1)/blockSize)
	filled := make([]*[blockSize]bool, 0, cap(blocks))

	write := 0
	for read := 0; read < cs.nextIndex; read++ {
		if !cs.filled[read/blockSize][read%blockSize] {
			continue
		}
		if write/blockSize >= len(blocks) {
			blocks = append(blocks, new([blockSize]T))
			filled = append(filled, new([blockSize]bool))
		}
		blocks[write/blockSize][write%blockSize] = cs.blocks[read/blockSize][read%blockSize]
		filled[write/blockSize][write%blockSize] = true
		indexMap[read] = write
		write++
	}

	cs.blocks = blocks
	cs.filled = filled
	cs.freeSlots = nil
	cs.nextIndex = write
	return indexMap
}

// Iter yields occupied indices in ascending order.
func (cs *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if cs.filled[i/blockSize][i%blockSize] {
				if !yield(i) {
					return
				}
			}
		}
	}
}
