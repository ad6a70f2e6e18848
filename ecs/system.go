package ecs

// System is a behavior that runs once per scheduler frame.
type System interface {
	Execute(frame *UpdateFrame)
}
