// Package class implements the framework's class system: a registry of
// named classes with single inheritance, ordered mixins and merged config
// defaults, and the Instance type every framework object is built from.
//
// A class's method table is assembled once, on first instantiation, with
// increasing precedence: parent chain, mixins in declaration order, own
// methods. The constructor and destructor slots (init and destroy) are the
// exception: when neither the parent chain nor the class itself provides
// one, the slot runs every mixin's implementation in turn. Otherwise the
// mixins are reached through CallMixin.
package class

import (
	"maps"
	"slices"
)

// Method is one entry of a class's method table.
type Method func(self *Instance, args ...any) any

// Constructor and destructor method names.
const (
	MethodInit    = "init"
	MethodDestroy = "destroy"
)

// MixinBinding declares a mixin under a key.
type MixinBinding struct {
	Key   string
	Class string
}

// Descriptor is what Define registers.
type Descriptor struct {
	// Extend names the parent class, if any.
	Extend string
	// Mixins are composed in order; a later mixin wins ties.
	Mixins []MixinBinding
	// Configs are default public fields.
	Configs map[string]any
	// Methods is the class's own method table.
	Methods map[string]Method
}

func (d Descriptor) clone() Descriptor {
	return Descriptor{
		Extend:  d.Extend,
		Mixins:  append([]MixinBinding(nil), d.Mixins...),
		Configs: maps.Clone(d.Configs),
		Methods: maps.Clone(d.Methods),
	}
}

// MixinRef is a resolved mixin binding.
type MixinRef struct {
	Key   string
	Class *Class
}

type methodRef struct {
	owner *Class
	fn    Method
}

// Class is a registered descriptor. Its resolution is computed lazily and
// memoized by the owning registry.
type Class struct {
	name string
	desc Descriptor

	resolved bool
	err      error
	parent   *Class
	mixins   []MixinRef
	methods  map[string]methodRef
	configs  map[string]any
}

// Name returns the qualified class name.
func (c *Class) Name() string { return c.name }

// Namespace returns the class name without its last segment.
func (c *Class) Namespace() string { return Namespace(c.name) }

// Parent returns the resolved parent class, or nil. It is only set once
// the class has been instantiated.
func (c *Class) Parent() *Class { return c.parent }

// Descriptor returns a copy of the registered descriptor.
func (c *Class) Descriptor() Descriptor { return c.desc.clone() }

// IsA reports whether c is name or inherits from it.
func (c *Class) IsA(name string) bool {
	for p := c; p != nil; p = p.parent {
		if p.name == name {
			return true
		}
	}
	return false
}

// resolve builds the merged tables. Callers hold the registry write lock.
func (c *Class) resolve(r *Registry, visiting map[*Class]bool) error {
	if c.resolved {
		return c.err
	}
	if visiting[c] {
		return &ResolveError{Class: c.name, Err: ErrCycle}
	}
	visiting[c] = true
	defer delete(visiting, c)

	err := c.build(r, visiting)
	c.resolved = true
	c.err = err
	return err
}

func (c *Class) build(r *Registry, visiting map[*Class]bool) error {
	methods := make(map[string]methodRef)
	configs := make(map[string]any)
	var mixins []MixinRef

	if c.desc.Extend != "" {
		parent, ok := r.classes[c.desc.Extend]
		if !ok {
			return &ResolveError{Class: c.name, Err: notFound(c.desc.Extend)}
		}
		if err := parent.resolve(r, visiting); err != nil {
			return &ResolveError{Class: c.name, Err: err}
		}
		c.parent = parent
		maps.Copy(methods, parent.methods)
		maps.Copy(configs, parent.configs)
		mixins = append(mixins, parent.mixins...)
	}

	for _, b := range c.desc.Mixins {
		mc, ok := r.classes[b.Class]
		if !ok {
			return &ResolveError{Class: c.name, Err: notFound(b.Class)}
		}
		if err := mc.resolve(r, visiting); err != nil {
			return &ResolveError{Class: c.name, Err: err}
		}
		for name, ref := range mc.methods {
			if isLifecycleSlot(name) {
				continue
			}
			methods[name] = ref
		}
		maps.Copy(configs, mc.configs)
		mixins = bindMixin(mixins, MixinRef{Key: b.Key, Class: mc})
	}

	for name, fn := range c.desc.Methods {
		if fn != nil {
			methods[name] = methodRef{owner: c, fn: fn}
		}
	}
	maps.Copy(configs, c.desc.Configs)

	// Constructor and destructor slots left empty by the chain run every
	// mixin's own implementation: init in declaration order, destroy in
	// reverse.
	for _, slot := range []string{MethodInit, MethodDestroy} {
		if _, ok := methods[slot]; ok {
			continue
		}
		var refs []methodRef
		for _, b := range c.desc.Mixins {
			if ref, ok := r.classes[b.Class].methods[slot]; ok {
				refs = append(refs, ref)
			}
		}
		if slot == MethodDestroy {
			slices.Reverse(refs)
		}
		switch len(refs) {
		case 0:
		case 1:
			methods[slot] = refs[0]
		default:
			methods[slot] = chain(slot, refs)
		}
	}

	c.methods = methods
	c.configs = configs
	c.mixins = mixins
	return nil
}

// chain runs refs in order and returns the last result. A ref returning
// false stops the chain.
func chain(name string, refs []methodRef) methodRef {
	return methodRef{owner: refs[0].owner, fn: func(self *Instance, args ...any) any {
		var out any
		for _, ref := range refs {
			out = self.invoke(ref, name, args)
			if ok, isBool := out.(bool); isBool && !ok {
				return false
			}
		}
		return out
	}}
}

func isLifecycleSlot(name string) bool {
	return name == MethodInit || name == MethodDestroy
}

// bindMixin appends ref, replacing an inherited binding with the same key
// in place.
func bindMixin(list []MixinRef, ref MixinRef) []MixinRef {
	for i := range list {
		if list[i].Key == ref.Key {
			list[i] = ref
			return list
		}
	}
	return append(list, ref)
}
