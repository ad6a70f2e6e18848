// Package view defines the lifecycle contracts shared by every reactive view:
// the NodeSpan a view exposes, the Effect hooks attached to entities, the
// View and Views (child tuple) contracts, and Root, the runtime that builds,
// rebuilds and razes a view tree against an ecs.World.
//
// All lifecycle calls are run-to-completion and must happen on the goroutine
// that owns the world.
package view
