package ecs

// Commands buffers structural changes made while a system runs. The Scheduler
// flushes the buffer after each system, so the next system in the same step
// already observes them.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion. Deleting the same entity twice is harmless.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Defer queues fn to run once the deletes and spawns of this flush are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending reports whether anything is queued.
func (c *Commands) Pending() bool {
	return len(c.spawns) > 0 || len(c.deletes) > 0 || len(c.defers) > 0
}

// Flush applies deletes, then spawns, then deferred functions, and resets the buffer.
// Deferred functions may queue further commands; those are kept for the next flush.
func (c *Commands) Flush(storage *Storage) {
	if len(c.deletes) > 0 {
		deleted := make(map[EntityId]struct{}, len(c.deletes))
		for _, id := range c.deletes {
			deleted[id] = struct{}{}
		}
		storage.deleteAll(deleted)
		c.deletes = c.deletes[:0]
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}
	c.spawns = c.spawns[:0]

	defers := c.defers
	c.defers = nil
	for _, fn := range defers {
		fn()
	}
}
