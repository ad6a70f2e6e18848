package ecs

import "reflect"

// Commands buffers structural changes until the end of a frame, so systems
// can mutate the world while other systems iterate it.
type Commands struct {
	spawns   [][]any
	inserts  []insertCommand
	removes  []removeCommand
	despawns []despawnCommand
	defers   []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type insertCommand struct {
	entity     Entity
	components []any
}

type removeCommand struct {
	entity Entity
	types  []reflect.Type
}

type despawnCommand struct {
	entity    Entity
	recursive bool
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Insert queues a component insertion.
func (c *Commands) Insert(e Entity, components ...any) {
	c.inserts = append(c.inserts, insertCommand{entity: e, components: components})
}

// Remove queues a component removal.
func (c *Commands) Remove(e Entity, types ...reflect.Type) {
	c.removes = append(c.removes, removeCommand{entity: e, types: types})
}

// Despawn queues an entity despawn.
func (c *Commands) Despawn(e Entity) {
	c.despawns = append(c.despawns, despawnCommand{entity: e})
}

// DespawnRecursive queues a despawn of e and its descendants.
func (c *Commands) DespawnRecursive(e Entity) {
	c.despawns = append(c.despawns, despawnCommand{entity: e, recursive: true})
}

// Defer queues a function to run after all structural commands.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush applies all commands to the world and resets the buffer.
// Commands addressed to entities that are no longer alive are dropped.
func (c *Commands) Flush(world *World) {
	for _, cmd := range c.despawns {
		if !world.IsAlive(cmd.entity) {
			continue
		}
		if cmd.recursive {
			world.DespawnRecursive(cmd.entity)
		} else {
			world.Despawn(cmd.entity)
		}
	}

	for _, cmd := range c.removes {
		if world.IsAlive(cmd.entity) {
			world.Remove(cmd.entity, cmd.types...)
		}
	}

	for _, cmd := range c.inserts {
		if world.IsAlive(cmd.entity) {
			world.Insert(cmd.entity, cmd.components...)
		}
	}

	for _, components := range c.spawns {
		world.Spawn(components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.inserts = c.inserts[:0]
	c.removes = c.removes[:0]
	c.despawns = c.despawns[:0]
	c.defers = c.defers[:0]
}
