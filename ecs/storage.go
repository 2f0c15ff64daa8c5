package ecs

import (
	"iter"
	"reflect"
	"slices"
	"sort"
	"unsafe"
	"weak"
)

// Storage owns every live entity and singleton. Besides the archetype tables it
// keeps the live entity IDs in insertion order, which is the order views and
// queries iterate in.
type Storage struct {
	archetypes map[uint32]*Archetype
	registry   *ComponentRegistry
	order      []EntityId
	singletons map[reflect.Type]*singletonEntry
}

// NewStorage creates an empty storage backed by the given registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Spawn creates an entity from the given components and appends it to the live list.
// Components may be passed by value or by pointer; pointers are copied.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetypeId := hashTypesToUint32(types)

	archetype, exists := s.archetypes[archetypeId]
	if !exists {
		archetype = newArchetype(archetypeId, types, s.registry)
		s.archetypes[archetypeId] = archetype
	}

	id := archetype.spawn(components)
	s.order = append(s.order, id)
	return id
}

// Delete removes the entity. It reports false when the entity was not alive.
func (s *Storage) Delete(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.remove(id) {
		return false
	}
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return true
}

// deleteAll removes a batch of entities with a single pass over the live list.
func (s *Storage) deleteAll(ids map[EntityId]struct{}) {
	removed := 0
	for id := range ids {
		if archetype, ok := s.archetypes[id.ArchetypeId()]; ok && archetype.remove(id) {
			removed++
		}
	}
	if removed == 0 {
		return
	}
	s.order = slices.DeleteFunc(s.order, func(id EntityId) bool {
		_, gone := ids[id]
		return gone
	})
}

// Clear deletes every entity. Singletons and archetype tables are kept, and every
// outstanding EntityRef is invalidated.
func (s *Storage) Clear() {
	for _, id := range s.order {
		if archetype, ok := s.archetypes[id.ArchetypeId()]; ok {
			if weakPtr, ok := archetype.refs.Get(id); ok {
				if ref := weakPtr.Value(); ref != nil {
					ref.Id = 0
					ref.Archetype = nil
				}
			}
		}
	}
	for _, archetype := range s.archetypes {
		archetype.reset()
	}
	s.order = s.order[:0]
}

// Len returns the number of live entities.
func (s *Storage) Len() int {
	return len(s.order)
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.alive(id)
}

// Entities iterates live entity IDs in insertion order. The sequence is a snapshot
// taken when iteration starts, so deleting while iterating is safe.
func (s *Storage) Entities() iter.Seq[EntityId] {
	snapshot := slices.Clone(s.order)
	return func(yield func(EntityId) bool) {
		for _, id := range snapshot {
			if !yield(id) {
				return
			}
		}
	}
}

// Archetype returns the archetype holding id, or nil.
func (s *Storage) Archetype(id EntityId) *Archetype {
	return s.archetypes[id.ArchetypeId()]
}

// Archetypes iterates every archetype table created so far.
func (s *Storage) Archetypes() iter.Seq[*Archetype] {
	return func(yield func(*Archetype) bool) {
		for _, archetype := range s.archetypes {
			if !yield(archetype) {
				return
			}
		}
	}
}

// CreateEntityRef returns the stable reference for a live entity, or nil.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil || !archetype.alive(id) {
		return nil
	}

	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{
		Id:        id,
		Archetype: archetype,
	}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the entity a ref points at, if it is still alive.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if ref == nil || ref.Id == 0 {
		return 0, false
	}
	return ref.Id, true
}

// GetComponent returns a pointer to the component of type compType, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.alive(id) {
		return nil
	}
	return archetype.Component(id.Index(), compType)
}

// HasComponent reports whether the entity's archetype carries compType.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.alive(id) {
		return false
	}
	return archetype.HasComponent(compType)
}

func componentType(comp any) reflect.Type {
	compType := reflect.TypeOf(comp)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}
	return compType
}

// extractComponentTypes returns the sorted component types of a spawn bundle.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)

		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		if slices.Contains(types, compType) {
			panic("duplicate component type " + compType.String())
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// iface mirrors the runtime layout of an interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// hashTypesToUint32 hashes a sorted type list with FNV-1a over the type descriptors.
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		h ^= uint32(ptr) ^ uint32(uint64(ptr)>>32)
		h *= prime
	}

	return h
}

// ComponentReader is anything that can look up a component by entity and type.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
