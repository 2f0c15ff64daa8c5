package ecs

import "time"

// UpdateFrame is handed to every system during a scheduler step.
type UpdateFrame struct {
	// Now is the step's timestamp, taken once so every system agrees on it.
	Now       time.Time
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(now time.Time, dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		Now:       now,
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
