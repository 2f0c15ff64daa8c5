package ecs

import "reflect"

// ComponentRegistry maps component types to column factories. Every component type
// must be registered before an entity carrying it can be spawned.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent registers T with the registry. Registering twice is harmless.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() column {
		return &blockColumn[T]{}
	}
}

// Registered reports whether t has a column factory.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) factory(t reflect.Type) func() column {
	return r.factories[t]
}

// column is the type-erased storage for one component type inside an archetype.
type column interface {
	append(item any) int
	remove(index int)
	get(index int) any
	has(index int) bool
	reset()
}

const blockSize = 64

// blockColumn stores values of T in fixed-size blocks so that pointers handed
// out by get stay valid while the column grows. Freed slots are reused LIFO.
type blockColumn[T any] struct {
	blocks    []*[blockSize]T
	filled    []*[blockSize]bool
	freeSlots []int
	nextIndex int
}

func (c *blockColumn[T]) append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(c.freeSlots); n > 0 {
		index = c.freeSlots[n-1]
		c.freeSlots = c.freeSlots[:n-1]
	} else {
		index = c.nextIndex
		c.nextIndex++
		if index/blockSize >= len(c.blocks) {
			c.blocks = append(c.blocks, new([blockSize]T))
			c.filled = append(c.filled, new([blockSize]bool))
		}
	}

	c.blocks[index/blockSize][index%blockSize] = value
	c.filled[index/blockSize][index%blockSize] = true
	return index
}

func (c *blockColumn[T]) get(index int) any {
	if !c.has(index) {
		return nil
	}
	return &c.blocks[index/blockSize][index%blockSize]
}

func (c *blockColumn[T]) has(index int) bool {
	if index < 0 || index >= c.nextIndex {
		return false
	}
	return c.filled[index/blockSize][index%blockSize]
}

func (c *blockColumn[T]) remove(index int) {
	if !c.has(index) {
		return
	}
	var zero T
	c.blocks[index/blockSize][index%blockSize] = zero
	c.filled[index/blockSize][index%blockSize] = false
	c.freeSlots = append(c.freeSlots, index)
}

func (c *blockColumn[T]) reset() {
	c.blocks = nil
	c.filled = nil
	c.freeSlots = nil
	c.nextIndex = 0
}
