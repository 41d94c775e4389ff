package ecs

// EntityId encodes the archetype ID in the upper 32 bits and, in the lower 32 bits, the
// slot index (low 22 bits) and the slot's generation (high 10 bits). The generation
// changes every time a slot is freed, so an id stops resolving once its entity is gone
// even if a later spawn reuses the slot.
//
// An id changes when components are added to or removed from the entity; hold an EntityRef
// to follow an entity across such moves.
type EntityId uint64

const (
	indexBits      = 22
	generationBits = 10

	// MaxArchetypeEntities is the number of slots an archetype can address.
	MaxArchetypeEntities = 1 << indexBits

	indexMask      = MaxArchetypeEntities - 1
	generationMask = 1<<generationBits - 1
)

// NewEntityId creates an EntityId from an archetype ID and slot index, at generation 0.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return newEntityId(archetypeId, index, 0)
}

func newEntityId(archetypeId, index, generation uint32) EntityId {
	low := (generation&generationMask)<<indexBits | index&indexMask
	return EntityId(uint64(archetypeId)<<32 | uint64(low))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e) & indexMask
}

// Generation extracts the slot generation the id was issued at.
func (e EntityId) Generation() uint32 {
	return uint32(e) >> indexBits & generationMask
}

// EntityRef is a stable reference to an entity. Storage keeps it pointing at the entity
// through archetype moves and detaches it when the entity is despawned.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

// Valid reports whether the referenced entity is still alive. A detached ref has no
// archetype; the id alone cannot tell, since any bit pattern is a possible id.
func (r *EntityRef) Valid() bool {
	return r != nil && r.Archetype != nil
}
