package debugui

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/sprout/ecs"
)

var entityType = reflect.TypeFor[ecs.Entity]()

// Inspector draws the element tree, component inspector and performance panels.
type Inspector struct {
	world    *ecs.World
	selected ecs.Entity
	filter   string

	lastFrame    time.Time
	frameHistory []float32
	frameIndex   int
}

// Spawn creates an inspector for world and registers its render function as an ImguiItem.
func Spawn(world *ecs.World, historyFrames int) *Inspector {
	in := &Inspector{
		world:        world,
		frameHistory: make([]float32, historyFrames),
		lastFrame:    time.Now(),
	}
	world.Spawn(ImguiItem{Render: in.Render})
	return in
}

// Selected returns the entity shown in the component inspector
func (in *Inspector) Selected() ecs.Entity {
	return in.selected
}

// Select shows e in the component inspector.
func (in *Inspector) Select(e ecs.Entity) {
	in.selected = e
}

func (in *Inspector) Render() {
	now := time.Now()
	in.renderTree()
	in.renderComponents()
	in.renderPerformance(float32(now.Sub(in.lastFrame).Seconds()))
	in.lastFrame = now
}

func (in *Inspector) renderTree() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 420), imgui.CondOnce)
	if !imgui.BeginV("Element Tree", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##filter", "Filter...", &in.filter, imgui.InputTextFlagsNone, nil)
	imgui.Separator()

	roots := ElementTree(in.world)
	if len(roots) == 0 {
		imgui.Text("No mounted elements")
	}
	for _, root := range roots {
		in.renderNode(root)
	}
	imgui.End()
}

func (in *Inspector) renderNode(n TreeNode) {
	visible := in.filter == "" || strings.Contains(strings.ToLower(n.Label), strings.ToLower(in.filter))
	if !visible {
		for _, child := range n.Children {
			in.renderNode(child)
		}
		return
	}

	id := fmt.Sprintf("##%d", n.Entity)
	if len(n.Children) == 0 {
		if imgui.SelectableBoolV(n.Label+id, in.selected == n.Entity, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			in.selected = n.Entity
		}
		return
	}

	open := imgui.TreeNodeStr(n.Label + id)
	imgui.SameLine()
	if imgui.Button("inspect" + id) {
		in.selected = n.Entity
	}
	if open {
		for _, child := range n.Children {
			in.renderNode(child)
		}
		imgui.TreePop()
	}
}

func (in *Inspector) renderComponents() {
	imgui.SetNextWindowPosV(imgui.NewVec2(340, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 420), imgui.CondOnce)
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if in.selected == ecs.NoEntity {
		imgui.Text("No entity selected")
		return
	}
	if !in.world.IsAlive(in.selected) {
		imgui.Text(fmt.Sprintf("Entity %s no longer exists", in.selected))
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %s", in.selected))
	imgui.Text(fmt.Sprintf("Last changed at tick %d", in.world.LastChanged(in.selected)))
	imgui.Separator()

	for _, t := range in.world.Types(in.selected) {
		component := in.world.Get(in.selected, t)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(t.String()) {
			in.renderValue(t, t.Name(), reflect.ValueOf(component).Elem(), nil)
			imgui.TreePop()
		}
	}
}

// renderValue draws an editor for val, the value at path inside the component of type t.
func (in *Inspector) renderValue(t reflect.Type, name string, val reflect.Value, path []int) {
	id := fmt.Sprintf("##%s%v", name, path)

	if val.Type() == entityType {
		e := ecs.Entity(val.Uint())
		if imgui.Button(fmt.Sprintf("%s: %s%s", name, e, id)) && in.world.IsAlive(e) {
			in.selected = e
		}
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) {
			in.write(t, path, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && v >= 0 {
			in.write(t, path, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) {
			in.write(t, path, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+id, &v) {
			in.write(t, path, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) {
			in.write(t, path, v)
		}

	case reflect.Struct:
		fields := Fields(val.Type())
		if len(fields) == 0 {
			imgui.Text(name)
			return
		}
		if imgui.TreeNodeStr(name + id) {
			for _, f := range fields {
				in.renderValue(t, f.Name, val.Field(f.Index), append(path[:len(path):len(path)], f.Index))
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		if val.Type().Elem() == entityType {
			imgui.Text(fmt.Sprintf("%s: [%d entities]", name, val.Len()))
			imgui.Indent()
			for i := range val.Len() {
				e := ecs.Entity(val.Index(i).Uint())
				if imgui.Button(fmt.Sprintf("%s%s/%d", e, id, i)) {
					in.selected = e
				}
			}
			imgui.Unindent()
			return
		}
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

// write stores an edited field back through World.Insert so the change tick advances.
func (in *Inspector) write(t reflect.Type, path []int, value any) {
	component := in.world.Get(in.selected, t)
	if component == nil {
		return
	}
	in.world.Insert(in.selected, SetField(component, path, value))
}

func (in *Inspector) renderPerformance(deltaTime float32) {
	imgui.SetNextWindowPosV(imgui.NewVec2(710, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(340, 300), imgui.CondOnce)
	if !imgui.BeginV("World Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if len(in.frameHistory) > 0 {
		in.frameHistory[in.frameIndex] = deltaTime * 1000.0
		in.frameIndex = (in.frameIndex + 1) % len(in.frameHistory)
	}

	stats := CollectStats(in.world)
	imgui.Text(fmt.Sprintf("Entities: %d", stats.Entities))
	imgui.Text(fmt.Sprintf("Owners: %d  Displays: %d", stats.Owners, stats.Displays))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.Archetypes))
	imgui.Text(fmt.Sprintf("Change tick: %d", stats.ChangeTick))

	if len(in.frameHistory) > 0 {
		var avg float32
		for _, ft := range in.frameHistory {
			avg += ft
		}
		avg /= float32(len(in.frameHistory))
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms", avg))
		imgui.PlotLinesFloatPtr("##frametime", &in.frameHistory[0], int32(len(in.frameHistory)))
	}

	if imgui.TreeNodeStr("Archetypes") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchetypeTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entities")
			imgui.TableHeadersRow()
			for _, arch := range stats.Breakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(strings.Join(arch.Components, ", "))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.Entities))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}
	imgui.End()
}
