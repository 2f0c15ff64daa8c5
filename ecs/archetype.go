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

// Archetype groups the entities that carry exactly the same set of component types.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
	refs    *intmap.Map[EntityId, weak.Pointer[EntityRef]]
	live    int

	// generation of every slot ever handed out, bumped when the slot is freed
	generations []uint32
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
		refs:    intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}

	for idx, typ := range types {
		factory := registry.factory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.columns[idx] = factory()
	}

	return a
}

// spawn appends one value per column and returns the new entity's ID. Every
// column hands out the same slot because all of them are appended and freed
// together.
func (a *Archetype) spawn(components []any) EntityId {
	slot := -1
	for _, comp := range components {
		idx := a.columnIndex(componentType(comp))
		if idx < 0 {
			continue
		}
		slot = a.columns[idx].append(comp)
	}
	if slot > MaxIndex {
		panic("archetype slot limit reached")
	}
	for len(a.generations) <= slot {
		a.generations = append(a.generations, 0)
	}
	a.live++
	return NewEntityId(a.id, uint32(slot), a.generations[slot])
}

func (a *Archetype) remove(id EntityId) bool {
	if !a.alive(id) {
		return false
	}

	index := id.Index()
	a.generations[index] = (a.generations[index] + 1) & MaxGeneration
	if weakPtr, ok := a.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}

	for _, col := range a.columns {
		col.remove(int(index))
	}
	a.live--
	return true
}

// reset frees every slot. Generations are bumped rather than cleared, so IDs
// issued before the reset stay dead once their slots are handed out again.
func (a *Archetype) reset() {
	for _, col := range a.columns {
		col.reset()
	}
	for i := range a.generations {
		a.generations[i] = (a.generations[i] + 1) & MaxGeneration
	}
	a.refs.Clear()
	a.live = 0
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	for i, typ := range a.types {
		if typ == t {
			return i
		}
	}
	return -1
}

// alive reports whether id's slot is occupied by the entity id was issued for.
func (a *Archetype) alive(id EntityId) bool {
	index := id.Index()
	return id.ArchetypeId() == a.id &&
		int(index) < len(a.generations) &&
		a.generations[index] == id.Generation() &&
		len(a.columns) > 0 && a.columns[0].has(int(index))
}

// Component returns a pointer to the component of type t stored at index, or nil.
func (a *Archetype) Component(index uint32, t reflect.Type) any {
	idx := a.columnIndex(t)
	if idx < 0 {
		return nil
	}
	return a.columns[idx].get(int(index))
}

// HasComponent reports whether this archetype carries t.
func (a *Archetype) HasComponent(t reflect.Type) bool {
	return slices.Contains(a.types, t)
}

// ID returns the archetype's hash identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the archetype's component types sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype.
func (a *Archetype) Len() int {
	return a.live
}
