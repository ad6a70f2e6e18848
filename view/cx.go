package view

import (
	"io"
	"log"

	"github.com/plus3/sprout/ecs"
)

// Owner marks an entity that represents a view instance in the reactive graph.
type Owner struct{}

// RegisterComponents registers the components used by the view runtime.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Owner](registry)
}

var discardLogger = log.New(io.Discard, "", 0)

// Cx is the context handed to views and effects during build and rebuild.
type Cx struct {
	// Owner is the reactive-graph entity of the view being built.
	Owner ecs.Entity

	world  *ecs.World
	logger *log.Logger
}

// NewCx creates a context for owner. A nil logger discards output.
func NewCx(world *ecs.World, owner ecs.Entity, logger *log.Logger) *Cx {
	if logger == nil {
		logger = discardLogger
	}
	return &Cx{Owner: owner, world: world, logger: logger}
}

// World returns the world the view is being built into
func (cx *Cx) World() *ecs.World {
	return cx.world
}

// Logger returns the diagnostics logger
func (cx *Cx) Logger() *log.Logger {
	return cx.logger
}

// child returns a context for a child view owned by owner.
func (cx *Cx) child(owner ecs.Entity) *Cx {
	return &Cx{Owner: owner, world: cx.world, logger: cx.logger}
}
