// Package style writes layout and colour components onto UI entities.
//
// Styles are rules evaluated against a Builder. Static rules run once, when
// the element is first built; dynamic rules carry a comparable dependency key
// and re-run only when that key changes between rebuilds.
package style

import (
	"github.com/plus3/sprout/ecs"
	"github.com/plus3/sprout/view"
)

// Style is a single style rule. Create rules with Func, Dynamic or Styles.
type Style interface {
	// key returns the rule's dependency key; static rules return nil.
	key(cx *view.Cx) any
	dynamic() bool
	apply(cx *view.Cx, key any, sb *Builder)
}

// Tuple is an ordered list of style rules. Later rules override earlier ones.
type Tuple []Style

// Styles groups rules into a Tuple. A Tuple is itself a Style, so tuples nest.
func Styles(rules ...Style) Tuple {
	return Tuple(rules)
}

func (t Tuple) key(*view.Cx) any {
	return nil
}

func (t Tuple) dynamic() bool {
	return false
}

func (t Tuple) apply(cx *view.Cx, _ any, sb *Builder) {
	for _, s := range t.flatten(nil) {
		s.apply(cx, s.key(cx), sb)
	}
}

// flatten returns the leaf rules of the tuple in order.
func (t Tuple) flatten(dst []Style) []Style {
	for _, s := range t {
		if nested, ok := s.(Tuple); ok {
			dst = nested.flatten(dst)
			continue
		}
		if s != nil {
			dst = append(dst, s)
		}
	}
	return dst
}

// Func is a static rule.
type Func func(sb *Builder)

func (f Func) key(*view.Cx) any {
	return nil
}

func (f Func) dynamic() bool {
	return false
}

func (f Func) apply(_ *view.Cx, _ any, sb *Builder) {
	f(sb)
}

type dynamicStyle[D comparable] struct {
	deps func(cx *view.Cx) D
	run  func(deps D, sb *Builder)
}

// Dynamic is a reactive rule. deps is evaluated on build and on every rebuild;
// apply runs on build and whenever deps returns a value different from the last one.
func Dynamic[D comparable](deps func(cx *view.Cx) D, apply func(deps D, sb *Builder)) Style {
	return dynamicStyle[D]{deps: deps, run: apply}
}

func (d dynamicStyle[D]) key(cx *view.Cx) any {
	return d.deps(cx)
}

func (d dynamicStyle[D]) dynamic() bool {
	return true
}

func (d dynamicStyle[D]) apply(_ *view.Cx, key any, sb *Builder) {
	d.run(key.(D), sb)
}

type applyState struct {
	keys []any
}

// ApplyStylesEffect is the effect an element uses to apply its styles.
type ApplyStylesEffect struct {
	Styles Tuple
}

// Apply evaluates every rule against target and writes the result.
func (e ApplyStylesEffect) Apply(cx *view.Cx, target ecs.Entity) any {
	rules := e.Styles.flatten(nil)
	state := &applyState{keys: make([]any, len(rules))}

	sb := newBuilder(cx.World(), target)
	for i, rule := range rules {
		k := rule.key(cx)
		rule.apply(cx, k, sb)
		state.keys[i] = k
	}
	sb.commit()
	return state
}

// Reapply evaluates the dependency keys of the dynamic rules. If any key
// changed since the last call, every rule runs again in declaration order so
// the result matches a fresh Apply with the same inputs. Only components that
// differ from the world are written.
func (e ApplyStylesEffect) Reapply(cx *view.Cx, target ecs.Entity, state any) {
	s, ok := state.(*applyState)
	if !ok {
		panic("style: ApplyStylesEffect given foreign state")
	}
	rules := e.Styles.flatten(nil)
	if len(rules) != len(s.keys) {
		panic("style: style rules changed shape between apply and reapply")
	}

	keys := make([]any, len(rules))
	changed := false
	for i, rule := range rules {
		if !rule.dynamic() {
			continue
		}
		keys[i] = rule.key(cx)
		if keys[i] != s.keys[i] {
			changed = true
		}
	}
	if !changed {
		return
	}

	sb := newBuilder(cx.World(), target)
	for i, rule := range rules {
		rule.apply(cx, keys[i], sb)
	}
	sb.commit()
	s.keys = keys
}
