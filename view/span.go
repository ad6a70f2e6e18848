package view

import (
	"slices"
	"strings"

	"github.com/plus3/sprout/ecs"
)

// SpanKind identifies the shape of a NodeSpan.
type SpanKind uint8

const (
	// SpanEmpty is a span with no entities. It is the zero value.
	SpanEmpty SpanKind = iota
	// SpanNode is a span of exactly one entity.
	SpanNode
	// SpanList is an ordered sequence of nested spans.
	SpanList
)

// NodeSpan describes the entities a view currently shows, as a tree of entity ids.
// NodeSpan values are immutable.
type NodeSpan struct {
	kind   SpanKind
	entity ecs.Entity
	list   []NodeSpan
}

// Empty returns a span with no entities.
func Empty() NodeSpan {
	return NodeSpan{}
}

// Node returns a span holding a single entity.
func Node(e ecs.Entity) NodeSpan {
	return NodeSpan{kind: SpanNode, entity: e}
}

// List returns a span made of the given spans, in order.
func List(spans ...NodeSpan) NodeSpan {
	return NodeSpan{kind: SpanList, list: slices.Clone(spans)}
}

// Kind returns the shape of the span
func (s NodeSpan) Kind() SpanKind {
	return s.kind
}

// Entity returns the entity of a SpanNode span, or ecs.NoEntity.
func (s NodeSpan) Entity() ecs.Entity {
	if s.kind != SpanNode {
		return ecs.NoEntity
	}
	return s.entity
}

// Spans returns the nested spans of a SpanList span.
func (s NodeSpan) Spans() []NodeSpan {
	return slices.Clone(s.list)
}

// Flatten returns the entities of the span depth-first, in declaration order.
func (s NodeSpan) Flatten() []ecs.Entity {
	return s.AppendTo(nil)
}

// AppendTo appends the flattened entities of the span to dst.
func (s NodeSpan) AppendTo(dst []ecs.Entity) []ecs.Entity {
	switch s.kind {
	case SpanNode:
		dst = append(dst, s.entity)
	case SpanList:
		for _, child := range s.list {
			dst = child.AppendTo(dst)
		}
	}
	return dst
}

// Equal reports whether two spans have the same shape and entities.
func (s NodeSpan) Equal(o NodeSpan) bool {
	if s.kind != o.kind || s.entity != o.entity || len(s.list) != len(o.list) {
		return false
	}
	for i := range s.list {
		if !s.list[i].Equal(o.list[i]) {
			return false
		}
	}
	return true
}

func (s NodeSpan) String() string {
	var sb strings.Builder
	s.write(&sb)
	return sb.String()
}

func (s NodeSpan) write(sb *strings.Builder) {
	switch s.kind {
	case SpanEmpty:
		sb.WriteString("Empty")
	case SpanNode:
		sb.WriteString("Node(")
		sb.WriteString(s.entity.String())
		sb.WriteString(")")
	case SpanList:
		sb.WriteString("[")
		for i, child := range s.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			child.write(sb)
		}
		sb.WriteString("]")
	}
}
