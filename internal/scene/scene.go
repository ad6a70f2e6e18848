// Package scene loads YAML scene files and mounts them as element trees.
package scene

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/plus3/sprout/style"
)

// Length is a YAML length: "auto", "12px", "12" or "50%".
type Length struct {
	style.Val
}

func (l *Length) UnmarshalYAML(node *yaml.Node) error {
	v, err := parseLength(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	l.Val = v
	return nil
}

func parseLength(s string) (style.Val, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == "auto":
		return style.Auto, nil
	case strings.HasSuffix(s, "%"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 32)
		if err != nil {
			return style.Val{}, fmt.Errorf("invalid percentage %q", s)
		}
		return style.Percent(float32(f)), nil
	default:
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 32)
		if err != nil {
			return style.Val{}, fmt.Errorf("invalid length %q", s)
		}
		return style.Px(float32(f)), nil
	}
}

// Color is a YAML colour: "#rgb", "#rrggbb", "#rrggbbaa" or an SVG colour name.
// An unset colour is transparent.
type Color struct {
	color.RGBA
}

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	rgba, err := parseColor(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	c.RGBA = rgba
	return nil
}

func parseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "#") {
		if named, ok := colornames.Map[s]; ok {
			return named, nil
		}
		return color.RGBA{}, fmt.Errorf("unknown colour %q", s)
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	return color.RGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

// NodeSpec is one node of a scene file.
type NodeSpec struct {
	Name        string     `yaml:"name"`
	Display     string     `yaml:"display"`
	Direction   string     `yaml:"direction"`
	Width       Length     `yaml:"width"`
	Height      Length     `yaml:"height"`
	Padding     Length     `yaml:"padding"`
	Margin      Length     `yaml:"margin"`
	Gap         Length     `yaml:"gap"`
	Background  Color      `yaml:"background"`
	BorderColor Color      `yaml:"border_color"`
	Z           int32      `yaml:"z"`
	Children    []NodeSpec `yaml:"children"`
}

// Scene is a parsed scene file.
type Scene struct {
	Root NodeSpec
}

var errEmptyScene = errors.New("scene is empty")

// Load reads and validates the scene at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses a YAML scene document.
func Parse(data []byte) (*Scene, error) {
	var root NodeSpec
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if root.Name == "" && len(root.Children) == 0 {
		return nil, errEmptyScene
	}
	scene := &Scene{Root: root}
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return scene, nil
}

// Validate checks that every node has a known display and direction.
func (s *Scene) Validate() error {
	return s.walk(func(path string, spec *NodeSpec) error {
		if _, err := spec.style(); err != nil {
			return fmt.Errorf("node %s (%q): %w", path, spec.Name, err)
		}
		return nil
	})
}

// walk visits every node depth-first. Paths are child indices joined by "/",
// with "0" for the root.
func (s *Scene) walk(fn func(path string, spec *NodeSpec) error) error {
	var visit func(path string, spec *NodeSpec) error
	visit = func(path string, spec *NodeSpec) error {
		if err := fn(path, spec); err != nil {
			return err
		}
		for i := range spec.Children {
			if err := visit(path+"/"+strconv.Itoa(i), &spec.Children[i]); err != nil {
				return err
			}
		}
		return nil
	}
	return visit("0", &s.Root)
}

// Shape describes the tree structure of the scene. Scenes with equal shapes
// differ only in styling and can be restyled in place.
func (s *Scene) Shape() string {
	var sb strings.Builder
	var visit func(spec *NodeSpec)
	visit = func(spec *NodeSpec) {
		sb.WriteString(strconv.Quote(spec.Name))
		sb.WriteByte('(')
		for i := range spec.Children {
			visit(&spec.Children[i])
		}
		sb.WriteByte(')')
	}
	visit(&s.Root)
	return sb.String()
}

// Styles returns the resolved style of every node keyed by path.
func (s *Scene) Styles() map[string]NodeStyle {
	styles := make(map[string]NodeStyle)
	s.walk(func(path string, spec *NodeSpec) error {
		styles[path], _ = spec.style()
		return nil
	})
	return styles
}

// NodeStyle is the resolved style of a scene node. It is comparable so that
// it can serve as the dependency key of a dynamic style.
type NodeStyle struct {
	Display     style.Display
	Direction   style.FlexDirection
	Width       style.Val
	Height      style.Val
	Padding     style.Rect
	Margin      style.Rect
	Gap         style.Val
	Background  Color
	BorderColor Color
	Z           int32
}

var displays = map[string]style.Display{
	"":     style.DisplayFlex,
	"flex": style.DisplayFlex,
	"grid": style.DisplayGrid,
	"none": style.DisplayNone,
}

var directions = map[string]style.FlexDirection{
	"":               style.FlexRow,
	"row":            style.FlexRow,
	"column":         style.FlexColumn,
	"row-reverse":    style.FlexRowReverse,
	"column-reverse": style.FlexColumnReverse,
}

func (spec *NodeSpec) style() (NodeStyle, error) {
	display, ok := displays[spec.Display]
	if !ok {
		return NodeStyle{}, fmt.Errorf("unknown display %q", spec.Display)
	}
	direction, ok := directions[spec.Direction]
	if !ok {
		return NodeStyle{}, fmt.Errorf("unknown direction %q", spec.Direction)
	}
	return NodeStyle{
		Display:     display,
		Direction:   direction,
		Width:       spec.Width.Val,
		Height:      spec.Height.Val,
		Padding:     style.All(spec.Padding.Val),
		Margin:      style.All(spec.Margin.Val),
		Gap:         spec.Gap.Val,
		Background:  spec.Background,
		BorderColor: spec.BorderColor,
		Z:           spec.Z,
	}, nil
}

// Apply writes the style through sb.
func (ns NodeStyle) Apply(sb *style.Builder) {
	sb.Display(ns.Display).
		FlexDirection(ns.Direction).
		Width(ns.Width).
		Height(ns.Height).
		Padding(ns.Padding).
		Margin(ns.Margin).
		Gap(ns.Gap).
		ZIndex(ns.Z).
		BackgroundColor(ns.Background.RGBA).
		BorderColor(ns.BorderColor.RGBA)
}
