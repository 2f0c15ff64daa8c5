package ecs

import (
	"iter"
	"reflect"
	"slices"
	"unsafe"

	"github.com/kamstrup/intmap"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View reads entities through a struct of component pointers.
//
// T must be a struct whose fields are pointers to component types. Embedded
// fields are required; named fields may be tagged `ecs:"optional"` and are set to
// nil when missing. A field of type EntityId receives the entity's ID.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	idOffset    uintptr
	hasId       bool

	// per archetype: column index for each field, or nil when the archetype does not match
	columns *intmap.Map[uint32, []int]
}

// NewView builds a view for T over storage. It panics if T is not a valid view struct.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{
		storage: storage,
		columns: intmap.New[uint32, []int](16),
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.hasId = true
			v.idOffset = field.Offset
			continue
		}
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or ecs.EntityId")
		}

		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	return v
}

// columnsFor resolves the column index of every field in archetype.
// The second result is false when a required component is missing.
func (v *View[T]) columnsFor(archetype *Archetype) ([]int, bool) {
	if cols, ok := v.columns.Get(archetype.id); ok {
		return cols, cols != nil
	}

	cols := make([]int, len(v.types))
	for i, t := range v.types {
		cols[i] = archetype.columnIndex(t)
		if cols[i] < 0 && !v.optional[i] {
			cols = nil
			break
		}
	}
	v.columns.Put(archetype.id, cols)
	return cols, cols != nil
}

func (v *View[T]) populate(result unsafe.Pointer, archetype *Archetype, id EntityId, cols []int) bool {
	index := int(id.Index())
	for i, col := range cols {
		fieldPtr := (*unsafe.Pointer)(unsafe.Add(result, v.fieldOffset[i]))

		var component any
		if col >= 0 {
			component = archetype.columns[col].get(index)
		}
		if component == nil {
			if !v.optional[i] {
				return false
			}
			*fieldPtr = nil
			continue
		}
		*fieldPtr = (*iface)(unsafe.Pointer(&component)).data
	}

	if v.hasId {
		*(*EntityId)(unsafe.Add(result, v.idOffset)) = id
	}
	return true
}

// Fill populates *ptr for the entity. It returns false if the entity is gone or
// lacks a required component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !archetype.alive(id) {
		return false
	}
	cols, ok := v.columnsFor(archetype)
	if !ok {
		return false
	}
	return v.populate(unsafe.Pointer(ptr), archetype, id, cols)
}

// Get returns the populated view for the entity, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// GetRef is Get for an EntityRef. Invalidated refs yield nil.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

func (v *View[T]) each(ids []EntityId, yield func(EntityId, T) bool) {
	var result T
	resultPtr := unsafe.Pointer(&result)

	for _, id := range ids {
		archetype, ok := v.storage.archetypes[id.ArchetypeId()]
		if !ok {
			continue
		}
		cols, ok := v.columnsFor(archetype)
		if !ok || !v.populate(resultPtr, archetype, id, cols) {
			continue
		}
		if !yield(id, result) {
			return
		}
	}
}

// Iter yields every matching entity in insertion order. The ID list is copied
// up front, so the storage may be modified during iteration.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		v.each(slices.Clone(v.storage.order), yield)
	}
}

// Values is Iter without the IDs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}
