package view

import (
	"errors"
	"log"

	"github.com/plus3/sprout/ecs"
)

// ErrNotMounted is returned when a root is used after Unmount or a failed Mount.
var ErrNotMounted = errors.New("view: root is not mounted")

// Root drives the lifecycle of a top-level view: one Build at Mount, any
// number of Rebuilds, and one Raze at Unmount. It is the boundary where panics
// from views and effects are recovered into LifecycleErrors.
type Root struct {
	view    View
	world   *ecs.World
	owner   ecs.Entity
	state   State
	logger  *log.Logger
	mounted bool
}

// MountOption configures a Root.
type MountOption func(*Root)

// WithLogger sets the logger used for lifecycle diagnostics.
func WithLogger(logger *log.Logger) MountOption {
	return func(r *Root) {
		r.logger = logger
	}
}

// Mount spawns an owner entity for v and builds v into the world.
// If the build panics, the owner is despawned and the panic is returned as a
// *LifecycleError; the world may still contain whatever the view created
// before failing.
func Mount(world *ecs.World, v View, opts ...MountOption) (*Root, error) {
	r := &Root{
		view:   v,
		world:  world,
		logger: discardLogger,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.owner = world.Spawn(Owner{})
	err := guard("build", v, func() {
		r.state = v.Build(r.cx())
	})
	if err != nil {
		r.logger.Printf("mount failed: %v", err)
		if world.IsAlive(r.owner) {
			world.Despawn(r.owner)
		}
		return nil, err
	}

	r.mounted = true
	return r, nil
}

func (r *Root) cx() *Cx {
	return NewCx(r.world, r.owner, r.logger)
}

// Owner returns the reactive-graph entity of the root view
func (r *Root) Owner() ecs.Entity {
	return r.owner
}

// Mounted reports whether the root is built and not yet razed
func (r *Root) Mounted() bool {
	return r.mounted
}

// Nodes returns the current span of the root view
func (r *Root) Nodes() NodeSpan {
	if !r.mounted {
		return Empty()
	}
	return r.view.Nodes(r.state)
}

// Rebuild rebuilds the root view and reports whether its span changed.
// A panic during rebuild is returned as a *LifecycleError and leaves the root
// mounted so that it can still be unmounted.
func (r *Root) Rebuild() (changed bool, err error) {
	if !r.mounted {
		return false, ErrNotMounted
	}
	err = guard("rebuild", r.view, func() {
		changed = r.view.Rebuild(r.cx(), r.state)
	})
	if err != nil {
		r.logger.Printf("rebuild failed: %v", err)
	}
	return changed, err
}

// Unmount razes the root view and despawns its owner entity.
func (r *Root) Unmount() error {
	if !r.mounted {
		return ErrNotMounted
	}
	r.mounted = false

	err := guard("raze", r.view, func() {
		r.view.Raze(r.world, r.state)
	})
	r.state = nil
	if r.world.IsAlive(r.owner) {
		r.world.Despawn(r.owner)
	}
	if err != nil {
		r.logger.Printf("unmount failed: %v", err)
	}
	return err
}

// RebuildSystem rebuilds every mounted root once per scheduler frame.
type RebuildSystem struct {
	Roots  []*Root
	Logger *log.Logger
}

// Add registers a root with the system.
func (s *RebuildSystem) Add(r *Root) {
	s.Roots = append(s.Roots, r)
}

// Execute rebuilds the roots in registration order and drops unmounted ones.
func (s *RebuildSystem) Execute(_ *ecs.UpdateFrame) {
	live := s.Roots[:0]
	for _, r := range s.Roots {
		if !r.Mounted() {
			continue
		}
		if _, err := r.Rebuild(); err != nil && s.Logger != nil {
			s.Logger.Printf("rebuild system: %v", err)
		}
		live = append(live, r)
	}
	clear(s.Roots[len(live):])
	s.Roots = live
}
