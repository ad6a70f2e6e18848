package style

import (
	"fmt"
	"image/color"

	"github.com/plus3/sprout/ecs"
)

// ValKind is the unit of a Val.
type ValKind uint8

const (
	ValAuto ValKind = iota
	ValPx
	ValPercent
)

// Val is a length: automatic, in pixels, or a percentage of the parent.
type Val struct {
	Kind  ValKind
	Value float32
}

// Auto is the automatic length. It is the zero Val.
var Auto = Val{}

// Px returns a length in logical pixels.
func Px(v float32) Val {
	return Val{Kind: ValPx, Value: v}
}

// Percent returns a length relative to the parent.
func Percent(v float32) Val {
	return Val{Kind: ValPercent, Value: v}
}

func (v Val) String() string {
	switch v.Kind {
	case ValPx:
		return fmt.Sprintf("%gpx", v.Value)
	case ValPercent:
		return fmt.Sprintf("%g%%", v.Value)
	default:
		return "auto"
	}
}

// Rect holds one length per edge.
type Rect struct {
	Left, Right, Top, Bottom Val
}

// All returns a Rect with every edge set to v.
func All(v Val) Rect {
	return Rect{Left: v, Right: v, Top: v, Bottom: v}
}

// Axes returns a Rect with horizontal edges set to h and vertical edges set to v.
func Axes(h, v Val) Rect {
	return Rect{Left: h, Right: h, Top: v, Bottom: v}
}

type Display uint8

const (
	DisplayFlex Display = iota
	DisplayGrid
	DisplayNone
)

type PositionType uint8

const (
	PositionRelative PositionType = iota
	PositionAbsolute
)

type FlexDirection uint8

const (
	FlexRow FlexDirection = iota
	FlexColumn
	FlexRowReverse
	FlexColumnReverse
)

type JustifyContent uint8

const (
	JustifyDefault JustifyContent = iota
	JustifyStart
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
)

type AlignItems uint8

const (
	AlignDefault AlignItems = iota
	AlignStart
	AlignEnd
	AlignCenter
	AlignStretch
)

// Layout is the layout style of a UI node. The zero value is a relative flex row
// with automatic sizes.
type Layout struct {
	Display        Display
	Position       PositionType
	Width          Val
	Height         Val
	MinWidth       Val
	MinHeight      Val
	MaxWidth       Val
	MaxHeight      Val
	Padding        Rect
	Margin         Rect
	Border         Rect
	FlexDirection  FlexDirection
	FlexWrap       bool
	FlexGrow       float32
	JustifyContent JustifyContent
	AlignItems     AlignItems
	Gap            Val
}

// BackgroundColor fills the node.
type BackgroundColor struct {
	color.RGBA
}

// BorderColor colours the node border.
type BorderColor struct {
	color.RGBA
}

// ZIndex orders siblings when drawing.
type ZIndex int32

// RegisterComponents registers every component a style can write.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Layout](registry)
	ecs.RegisterComponent[BackgroundColor](registry)
	ecs.RegisterComponent[BorderColor](registry)
	ecs.RegisterComponent[ZIndex](registry)
}
