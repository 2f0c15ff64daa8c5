package ecs

// System is a behavior run once per scheduler step. Query and Singleton fields
// on a system struct are bound to the scheduler's storage on Register.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
