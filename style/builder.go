package style

import (
	"image/color"
	"reflect"

	"github.com/plus3/sprout/ecs"
)

// Builder stages style writes for one entity. Nothing reaches the world until
// the builder is committed, and a staged component is only written when it
// differs from the value the entity already carries.
type Builder struct {
	world  *ecs.World
	target ecs.Entity
	layout *Layout
	staged map[reflect.Type]any
	order  []reflect.Type
}

func newBuilder(world *ecs.World, target ecs.Entity) *Builder {
	return &Builder{world: world, target: target}
}

// Target returns the entity being styled
func (b *Builder) Target() ecs.Entity {
	return b.target
}

// Insert stages an arbitrary component write.
func (b *Builder) Insert(component any) *Builder {
	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Ptr {
		component = reflect.ValueOf(component).Elem().Interface()
		t = t.Elem()
	}
	if b.staged == nil {
		b.staged = make(map[reflect.Type]any)
	}
	if _, ok := b.staged[t]; !ok {
		b.order = append(b.order, t)
	}
	b.staged[t] = component
	return b
}

func (b *Builder) edit(fn func(l *Layout)) *Builder {
	if b.layout == nil {
		l := Layout{}
		if cur := ecs.ReadComponent[Layout](b.world, b.target); cur != nil {
			l = *cur
		}
		b.layout = &l
	}
	fn(b.layout)
	return b
}

func (b *Builder) Display(d Display) *Builder {
	return b.edit(func(l *Layout) { l.Display = d })
}

func (b *Builder) Position(p PositionType) *Builder {
	return b.edit(func(l *Layout) { l.Position = p })
}

func (b *Builder) Width(v Val) *Builder {
	return b.edit(func(l *Layout) { l.Width = v })
}

func (b *Builder) Height(v Val) *Builder {
	return b.edit(func(l *Layout) { l.Height = v })
}

func (b *Builder) MinWidth(v Val) *Builder {
	return b.edit(func(l *Layout) { l.MinWidth = v })
}

func (b *Builder) MinHeight(v Val) *Builder {
	return b.edit(func(l *Layout) { l.MinHeight = v })
}

func (b *Builder) MaxWidth(v Val) *Builder {
	return b.edit(func(l *Layout) { l.MaxWidth = v })
}

func (b *Builder) MaxHeight(v Val) *Builder {
	return b.edit(func(l *Layout) { l.MaxHeight = v })
}

func (b *Builder) Padding(r Rect) *Builder {
	return b.edit(func(l *Layout) { l.Padding = r })
}

func (b *Builder) Margin(r Rect) *Builder {
	return b.edit(func(l *Layout) { l.Margin = r })
}

func (b *Builder) Border(r Rect) *Builder {
	return b.edit(func(l *Layout) { l.Border = r })
}

func (b *Builder) FlexDirection(d FlexDirection) *Builder {
	return b.edit(func(l *Layout) { l.FlexDirection = d })
}

func (b *Builder) FlexWrap(wrap bool) *Builder {
	return b.edit(func(l *Layout) { l.FlexWrap = wrap })
}

func (b *Builder) FlexGrow(g float32) *Builder {
	return b.edit(func(l *Layout) { l.FlexGrow = g })
}

func (b *Builder) JustifyContent(j JustifyContent) *Builder {
	return b.edit(func(l *Layout) { l.JustifyContent = j })
}

func (b *Builder) AlignItems(a AlignItems) *Builder {
	return b.edit(func(l *Layout) { l.AlignItems = a })
}

func (b *Builder) Gap(v Val) *Builder {
	return b.edit(func(l *Layout) { l.Gap = v })
}

func (b *Builder) BackgroundColor(c color.Color) *Builder {
	return b.Insert(BackgroundColor{RGBA: toRGBA(c)})
}

func (b *Builder) BorderColor(c color.Color) *Builder {
	return b.Insert(BorderColor{RGBA: toRGBA(c)})
}

func (b *Builder) ZIndex(z int32) *Builder {
	return b.Insert(ZIndex(z))
}

// commit writes every staged component that differs from the world and
// returns the number of writes.
func (b *Builder) commit() int {
	writes := 0
	if b.layout != nil {
		cur := ecs.ReadComponent[Layout](b.world, b.target)
		if cur == nil || *cur != *b.layout {
			b.world.Insert(b.target, *b.layout)
			writes++
		}
		b.layout = nil
	}

	for _, t := range b.order {
		value := b.staged[t]
		cur := b.world.Get(b.target, t)
		if cur != nil && reflect.DeepEqual(reflect.ValueOf(cur).Elem().Interface(), value) {
			continue
		}
		b.world.Insert(b.target, value)
		writes++
	}
	b.staged = nil
	b.order = b.order[:0]
	return writes
}

func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}
