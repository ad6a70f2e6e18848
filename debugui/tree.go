package debugui

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"github.com/plus3/sprout/ecs"
	"github.com/plus3/sprout/ui"
	"github.com/plus3/sprout/view"
)

// TreeNode is one display entity in a snapshot of the element hierarchy.
type TreeNode struct {
	Entity   ecs.Entity
	Label    string
	Owner    ecs.Entity
	Children []TreeNode
}

// ElementTree returns the display hierarchy of every mounted element tree.
// Roots are display entities without a parent, ordered by entity.
func ElementTree(world *ecs.World) []TreeNode {
	var roots []ecs.Entity
	for e := range world.Entities() {
		if !ecs.HasComponent[ui.Display](world, e) {
			continue
		}
		if _, ok := world.ParentOf(e); ok {
			continue
		}
		roots = append(roots, e)
	}
	slices.SortFunc(roots, func(a, b ecs.Entity) int { return cmp.Compare(a, b) })

	nodes := make([]TreeNode, len(roots))
	for i, e := range roots {
		nodes[i] = treeNode(world, e)
	}
	return nodes
}

func treeNode(world *ecs.World, e ecs.Entity) TreeNode {
	n := TreeNode{Entity: e, Label: label(world, e)}
	if d := ecs.ReadComponent[ui.Display](world, e); d != nil {
		n.Owner = d.Owner
	}
	for _, child := range world.ChildrenOf(e) {
		n.Children = append(n.Children, treeNode(world, child))
	}
	return n
}

func label(world *ecs.World, e ecs.Entity) string {
	name := world.NameOf(e)
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("%s [%s]", name, e)
}

// WorldStats is a summary of the world used by the performance panel.
type WorldStats struct {
	Entities   int
	Archetypes int
	Owners     int
	Displays   int
	ChangeTick uint64
	// Breakdown lists every non-empty archetype, largest first.
	Breakdown []ArchetypeStats
}

type ArchetypeStats struct {
	ID         uint32
	Components []string
	Entities   int
}

var (
	ownerType   = reflect.TypeFor[view.Owner]()
	displayType = reflect.TypeFor[ui.Display]()
)

// CollectStats gathers WorldStats for world.
func CollectStats(world *ecs.World) WorldStats {
	stats := WorldStats{Entities: world.Len(), ChangeTick: world.ChangeTick()}
	for archetype := range world.Archetypes() {
		stats.Archetypes++
		if archetype.Len() == 0 {
			continue
		}
		if archetype.HasComponent(ownerType) {
			stats.Owners += archetype.Len()
		}
		if archetype.HasComponent(displayType) {
			stats.Displays += archetype.Len()
		}

		names := make([]string, 0, len(archetype.Types()))
		for _, t := range archetype.Types() {
			names = append(names, t.String())
		}
		stats.Breakdown = append(stats.Breakdown, ArchetypeStats{
			ID:         archetype.ID(),
			Components: names,
			Entities:   archetype.Len(),
		})
	}
	slices.SortStableFunc(stats.Breakdown, func(a, b ArchetypeStats) int {
		return cmp.Compare(b.Entities, a.Entities)
	})
	return stats
}
