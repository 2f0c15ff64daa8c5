package ecs

import (
	"iter"

	"github.com/plus3/vortex/optional"
)

// Query is a View whose results are captured once per system run.
// The Scheduler calls Execute right before the owning system executes, so a
// system sees every structural change flushed by the systems before it.
type Query[T any] struct {
	view    *View[T]
	storage *Storage

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a query over storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage. Called by the Scheduler during registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cacheValid = false
}

// Execute snapshots the matching entities in insertion order.
func (q *Query[T]) Execute() {
	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	q.view.each(q.storage.order, func(id EntityId, item T) bool {
		q.cachedEntities = append(q.cachedEntities, id)
		q.cachedComponents = append(q.cachedComponents, item)
		return true
	})

	q.cacheValid = true
}

// Iter yields the snapshot. Panics if Execute has not run.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values yields the snapshot without IDs. Panics if Execute has not run.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Len returns the snapshot size.
func (q *Query[T]) Len() int {
	return len(q.cachedEntities)
}

// First returns the earliest inserted match, if any.
func (q *Query[T]) First() optional.Option[T] {
	if !q.cacheValid || len(q.cachedComponents) == 0 {
		return optional.None[T]()
	}
	return optional.Some(q.cachedComponents[0])
}
