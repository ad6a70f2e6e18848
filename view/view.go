package view

import "github.com/plus3/sprout/ecs"

// State is the opaque per-instance state a view returns from Build.
// The runtime hands it back unchanged to Rebuild, Nodes and Raze.
type State = any

// View is a value that can be built into the world, rebuilt against it and razed from it.
//
// Build is called once. Rebuild is called any number of times afterwards and
// reports whether the view's NodeSpan changed. Raze is called last and must
// remove everything Build created. Calling Rebuild or Raze with a state that
// did not come from Build, or after Raze, is a contract violation and panics.
type View interface {
	Nodes(state State) NodeSpan
	Build(cx *Cx) State
	Rebuild(cx *Cx, state State) bool
	Raze(world *ecs.World, state State)
}
