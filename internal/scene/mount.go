package scene

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/plus3/sprout/ecs"
	"github.com/plus3/sprout/style"
	"github.com/plus3/sprout/ui"
	"github.com/plus3/sprout/view"
)

// liveStyles holds the current style of every scene node. Element styles read
// from it, so replacing an entry and rebuilding restyles the node in place.
type liveStyles struct {
	styles map[string]NodeStyle
}

func (l *liveStyles) get(path string) NodeStyle {
	return l.styles[path]
}

// sceneView turns a scene into an element tree.
func sceneView(scene *Scene, live *liveStyles) view.View {
	return nodeView(&scene.Root, "0", live)
}

func nodeView(spec *NodeSpec, path string, live *liveStyles) ui.Element[ui.NodeBundle] {
	children := make([]view.View, len(spec.Children))
	for i := range spec.Children {
		children[i] = nodeView(&spec.Children[i], path+"/"+strconv.Itoa(i), live)
	}
	return ui.NewElement[ui.NodeBundle]().
		Named(spec.Name).
		Style(style.Dynamic(
			func(*view.Cx) NodeStyle { return live.get(path) },
			func(ns NodeStyle, sb *style.Builder) { ns.Apply(sb) },
		)).
		Children(children...)
}

// Mounted is a scene mounted into a world.
type Mounted struct {
	world  *ecs.World
	root   *view.Root
	live   *liveStyles
	shape  string
	logger *log.Logger
}

// Mount builds scene into world. A nil logger discards diagnostics.
func Mount(world *ecs.World, scene *Scene, logger *log.Logger) (*Mounted, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	m := &Mounted{
		world:  world,
		live:   &liveStyles{},
		logger: logger,
	}
	if err := m.mount(scene); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mounted) mount(scene *Scene) error {
	m.live.styles = scene.Styles()
	root, err := view.Mount(m.world, sceneView(scene, m.live), view.WithLogger(m.logger))
	if err != nil {
		return err
	}
	m.root = root
	m.shape = scene.Shape()
	m.logger.Printf("mounted scene with %d entities", m.world.Len())
	return nil
}

// Apply swaps in a newly loaded scene. A scene with the same shape is
// restyled by rebuilding; any other scene is remounted. An invalid scene is
// rejected before anything is unmounted.
func (m *Mounted) Apply(scene *Scene) error {
	if err := scene.Validate(); err != nil {
		return err
	}
	if !m.root.Mounted() {
		return m.mount(scene)
	}
	if scene.Shape() == m.shape {
		m.live.styles = scene.Styles()
		before := m.world.ChangeTick()
		if _, err := m.root.Rebuild(); err != nil {
			return err
		}
		m.logger.Printf("restyled scene in place (%d writes)", m.world.ChangeTick()-before)
		return nil
	}

	m.logger.Printf("scene structure changed, remounting")
	if err := m.root.Unmount(); err != nil {
		return err
	}
	return m.mount(scene)
}

// Root returns the view root of the current scene
func (m *Mounted) Root() *view.Root {
	return m.root
}

// Close unmounts the scene. Closing a scene that is no longer mounted is a no-op.
func (m *Mounted) Close() error {
	if !m.root.Mounted() {
		return nil
	}
	return m.root.Unmount()
}

// Print writes the display hierarchy of the scene.
func (m *Mounted) Print(w io.Writer) {
	if !m.root.Mounted() {
		fmt.Fprintln(w, "(not mounted)")
		return
	}
	printTree(w, m.world, m.root.Nodes().Entity(), 0)
}

func printTree(w io.Writer, world *ecs.World, e ecs.Entity, depth int) {
	name := world.NameOf(e)
	if name == "" {
		name = "<unnamed>"
	}
	fmt.Fprintf(w, "%s%s [%s]%s\n", strings.Repeat("  ", depth), name, e, describe(world, e))
	for _, child := range world.ChildrenOf(e) {
		printTree(w, world, child, depth+1)
	}
}

func describe(world *ecs.World, e ecs.Entity) string {
	var parts []string
	if layout := ecs.ReadComponent[style.Layout](world, e); layout != nil {
		parts = append(parts, "w="+layout.Width.String(), "h="+layout.Height.String())
		if layout.FlexDirection == style.FlexColumn || layout.FlexDirection == style.FlexColumnReverse {
			parts = append(parts, "column")
		}
	}
	if bg := ecs.ReadComponent[style.BackgroundColor](world, e); bg != nil && bg.A != 0 {
		parts = append(parts, fmt.Sprintf("bg=#%02x%02x%02x%02x", bg.R, bg.G, bg.B, bg.A))
	}
	if z := ecs.ReadComponent[style.ZIndex](world, e); z != nil && *z != 0 {
		parts = append(parts, fmt.Sprintf("z=%d", *z))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}
