package ecs

const (
	indexBits      = 20
	generationBits = 12

	// MaxIndex is the largest slot index an archetype can hand out.
	MaxIndex = 1<<indexBits - 1
	// MaxGeneration is the largest generation before a slot's counter wraps to zero.
	MaxGeneration = 1<<generationBits - 1
)

// EntityId encodes the archetype ID in the upper 32 bits. The lower 32 bits hold
// the slot's generation (12 bits) above the slot index (20 bits). Slots are reused
// after a delete, but the generation is bumped first, so an ID that outlives its
// entity never matches the slot's next occupant.
// The zero EntityId never refers to a live entity.
type EntityId uint64

// NewEntityId packs an archetype ID, slot index and generation into an EntityId.
func NewEntityId(archetypeId uint32, index uint32, generation uint32) EntityId {
	low := (generation&MaxGeneration)<<indexBits | index&MaxIndex
	return EntityId(uint64(archetypeId)<<32 | uint64(low))
}

// ArchetypeId extracts the archetype ID.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index extracts the slot index within the archetype.
func (e EntityId) Index() uint32 {
	return uint32(e) & MaxIndex
}

// Generation extracts the slot generation the ID was issued under.
func (e EntityId) Generation() uint32 {
	return uint32(e) >> indexBits
}

// EntityRef is a handle that survives across frames. It is reset to the zero
// value when the entity it points at is deleted, so holders can detect that
// the entity is gone instead of reading a recycled slot.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}
