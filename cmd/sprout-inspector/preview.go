package main

import (
	"cmp"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/sprout/ecs"
	"github.com/plus3/sprout/style"
)

// box is the preview rectangle of one display entity.
type box struct {
	entity     ecs.Entity
	x, y, w, h float32
	depth      int
	z          int32
	background color.RGBA
	border     color.RGBA
}

func (b box) contains(x, y float32) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

// layoutBoxes places e and its descendants inside the given rectangle.
// It only approximates flex layout. Fixed and percentage sizes are honoured
// along the main axis and auto children share what is left. Children stretch
// across the cross axis unless they have an explicit size.
func layoutBoxes(world *ecs.World, e ecs.Entity, x, y, w, h float32) []box {
	var boxes []box
	place(world, e, x, y, w, h, 0, &boxes)
	slices.SortStableFunc(boxes, func(a, b box) int {
		if c := cmp.Compare(a.z, b.z); c != 0 {
			return c
		}
		return cmp.Compare(a.depth, b.depth)
	})
	return boxes
}

func place(world *ecs.World, e ecs.Entity, x, y, w, h float32, depth int, out *[]box) {
	layout := style.Layout{}
	if l := ecs.ReadComponent[style.Layout](world, e); l != nil {
		layout = *l
	}
	if layout.Display == style.DisplayNone {
		return
	}

	b := box{entity: e, x: x, y: y, w: w, h: h, depth: depth}
	if bg := ecs.ReadComponent[style.BackgroundColor](world, e); bg != nil {
		b.background = bg.RGBA
	}
	if bc := ecs.ReadComponent[style.BorderColor](world, e); bc != nil {
		b.border = bc.RGBA
	}
	if z := ecs.ReadComponent[style.ZIndex](world, e); z != nil {
		b.z = int32(*z)
	}
	*out = append(*out, b)

	inX := x + resolve(layout.Padding.Left, w)
	inY := y + resolve(layout.Padding.Top, h)
	inW := max(0, w-resolve(layout.Padding.Left, w)-resolve(layout.Padding.Right, w))
	inH := max(0, h-resolve(layout.Padding.Top, h)-resolve(layout.Padding.Bottom, h))

	var children []ecs.Entity
	for _, child := range world.ChildrenOf(e) {
		if l := ecs.ReadComponent[style.Layout](world, child); l != nil && l.Display == style.DisplayNone {
			continue
		}
		children = append(children, child)
	}
	if len(children) == 0 {
		return
	}

	column := layout.FlexDirection == style.FlexColumn || layout.FlexDirection == style.FlexColumnReverse
	if layout.FlexDirection == style.FlexRowReverse || layout.FlexDirection == style.FlexColumnReverse {
		slices.Reverse(children)
	}

	mainLen, crossLen := inW, inH
	if column {
		mainLen, crossLen = inH, inW
	}
	gap := resolve(layout.Gap, mainLen)
	free := mainLen - gap*float32(len(children)-1)

	sizes := make([]float32, len(children))
	autos := 0
	for i, child := range children {
		size := mainSize(world, child, column)
		if size.Kind == style.ValAuto {
			autos++
			continue
		}
		sizes[i] = resolve(size, mainLen)
		free -= sizes[i]
	}
	if autos > 0 {
		share := max(0, free) / float32(autos)
		for i, child := range children {
			if mainSize(world, child, column).Kind == style.ValAuto {
				sizes[i] = share
			}
		}
	}

	offset := float32(0)
	for i, child := range children {
		extent := crossLen
		if v := crossSize(world, child, column); v.Kind != style.ValAuto {
			extent = min(crossLen, resolve(v, crossLen))
		}
		if column {
			place(world, child, inX, inY+offset, extent, sizes[i], depth+1, out)
		} else {
			place(world, child, inX+offset, inY, sizes[i], extent, depth+1, out)
		}
		offset += sizes[i] + gap
	}
}

func mainSize(world *ecs.World, e ecs.Entity, column bool) style.Val {
	l := ecs.ReadComponent[style.Layout](world, e)
	if l == nil {
		return style.Auto
	}
	if column {
		return l.Height
	}
	return l.Width
}

func crossSize(world *ecs.World, e ecs.Entity, column bool) style.Val {
	return mainSize(world, e, !column)
}

func resolve(v style.Val, parent float32) float32 {
	switch v.Kind {
	case style.ValPx:
		return v.Value
	case style.ValPercent:
		return parent * v.Value / 100
	default:
		return 0
	}
}

// hit returns the topmost box under the point.
func hit(boxes []box, x, y float32) (box, bool) {
	for i := len(boxes) - 1; i >= 0; i-- {
		if boxes[i].contains(x, y) {
			return boxes[i], true
		}
	}
	return box{}, false
}

var selectionColor = color.RGBA{R: 0xff, G: 0xd7, A: 0xff}

func drawBoxes(screen *ebiten.Image, boxes []box, selected ecs.Entity) {
	for _, b := range boxes {
		if b.background.A != 0 {
			vector.DrawFilledRect(screen, b.x, b.y, b.w, b.h, b.background, false)
		}
		if b.border.A != 0 {
			vector.StrokeRect(screen, b.x, b.y, b.w, b.h, 1, b.border, false)
		}
	}
	for _, b := range boxes {
		if b.entity == selected {
			vector.StrokeRect(screen, b.x, b.y, b.w, b.h, 2, selectionColor, false)
		}
	}
}
