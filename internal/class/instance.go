package class

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/go-viper/mapstructure/v2"

	"github.com/llehouerou/tracklet/internal/events"
)

type absent struct{}

// Absent marks a private field that was declared but holds no value.
var Absent any = absent{}

// IsAbsent reports whether v is the Absent marker.
func IsAbsent(v any) bool {
	_, ok := v.(absent)
	return ok
}

type frame struct {
	owner *Class
	name  string
}

// Instance is a runtime object built from a class. It owns its public
// fields, a private field namespace and an event bus. Instances are not
// safe for concurrent use.
type Instance struct {
	class    *Class
	registry *Registry
	props    map[string]any
	privates map[string]any
	bus      events.Bus
	logger   *slog.Logger
	frames   []frame
}

// Verify Instance can be listened to at compile time.
var _ events.Source = (*Instance)(nil)

func newInstance(r *Registry, c *Class, cfg map[string]any) *Instance {
	props := make(map[string]any, len(c.configs)+len(cfg))
	for k, v := range c.configs {
		props[k] = cloneDefault(v)
	}
	maps.Copy(props, cfg)
	return &Instance{
		class:    c,
		registry: r,
		props:    props,
		privates: make(map[string]any),
		logger:   r.Logger().With("class", c.name),
	}
}

// cloneDefault copies the mutable containers a default may hold so
// instances never share them.
func cloneDefault(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneDefault(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneDefault(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

// Class returns the instance's class.
func (i *Instance) Class() *Class { return i.class }

// ClassName returns the qualified class name.
func (i *Instance) ClassName() string { return i.class.name }

// Registry returns the registry the instance was built from.
func (i *Instance) Registry() *Registry { return i.registry }

// Logger returns the instance logger.
func (i *Instance) Logger() *slog.Logger { return i.logger }

// Has reports whether the method table contains name.
func (i *Instance) Has(name string) bool {
	_, ok := i.class.methods[name]
	return ok
}

// Call invokes a method by name. Unknown methods return nil.
func (i *Instance) Call(name string, args ...any) any {
	out, _ := i.TryCall(name, args...)
	return out
}

// TryCall invokes a method by name and reports whether it exists.
func (i *Instance) TryCall(name string, args ...any) (any, bool) {
	ref, ok := i.class.methods[name]
	if !ok {
		i.logger.Debug("Method not found.", "method", name)
		return nil, false
	}
	return i.invoke(ref, name, args), true
}

// CallParent invokes the implementation that the currently running method
// overrides, one step up the inheritance chain. It returns nil when there
// is none or when called outside a method.
func (i *Instance) CallParent(args ...any) any {
	if len(i.frames) == 0 {
		return nil
	}
	top := i.frames[len(i.frames)-1]
	parent := top.owner.parent
	if parent == nil {
		return nil
	}
	ref, ok := parent.methods[top.name]
	if !ok {
		return nil
	}
	return i.invoke(ref, top.name, args)
}

// CallMixin invokes a mixin's own implementation of name, regardless of
// what the class's table holds for it.
func (i *Instance) CallMixin(key, name string, args ...any) any {
	m, ok := i.Mixin(key)
	if !ok {
		i.logger.Debug("Mixin not found.", "mixin", key)
		return nil
	}
	ref, ok := m.methods[name]
	if !ok {
		return nil
	}
	return i.invoke(ref, name, args)
}

// HasMixin reports whether key is bound, directly or through a parent.
func (i *Instance) HasMixin(key string) bool {
	_, ok := i.Mixin(key)
	return ok
}

// Mixin returns the class bound under key.
func (i *Instance) Mixin(key string) (*Class, bool) {
	for _, m := range i.class.mixins {
		if m.Key == key {
			return m.Class, true
		}
	}
	return nil, false
}

// Mixins returns the resolved mixin bindings, inherited ones first.
func (i *Instance) Mixins() []MixinRef {
	return append([]MixinRef(nil), i.class.mixins...)
}

func (i *Instance) invoke(ref methodRef, name string, args []any) any {
	i.frames = append(i.frames, frame{owner: ref.owner, name: name})
	defer func() { i.frames = i.frames[:len(i.frames)-1] }()
	return ref.fn(i, args...)
}

// Get returns a public field, or nil.
func (i *Instance) Get(key string) any {
	return i.props[key]
}

// Lookup returns a public field and whether it is set.
func (i *Instance) Lookup(key string) (any, bool) {
	v, ok := i.props[key]
	return v, ok
}

// Set assigns a public field.
func (i *Instance) Set(key string, v any) {
	i.props[key] = v
}

// SetConfig merges cfg into the public fields.
func (i *Instance) SetConfig(cfg map[string]any) {
	maps.Copy(i.props, cfg)
}

// Config returns a shallow copy of the public fields.
func (i *Instance) Config() map[string]any {
	return maps.Clone(i.props)
}

// Decode copies the public fields into out, a pointer to a struct tagged
// with `config:"name"`.
func (i *Instance) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "config",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(i.props); err != nil {
		return fmt.Errorf("decode %s config: %w", i.class.name, err)
	}
	return nil
}

// DeclarePrivate creates private fields that are not set yet, holding the
// Absent marker.
func (i *Instance) DeclarePrivate(keys ...string) {
	for _, k := range keys {
		if _, ok := i.privates[k]; !ok {
			i.privates[k] = Absent
		}
	}
}

// Private returns a private field. Absent and unset fields return nil.
func (i *Instance) Private(key string) any {
	v, ok := i.privates[key]
	if !ok || IsAbsent(v) {
		return nil
	}
	return v
}

// LookupPrivate returns the raw private value, which may be Absent, and
// whether the field was declared.
func (i *Instance) LookupPrivate(key string) (any, bool) {
	v, ok := i.privates[key]
	return v, ok
}

// SetPrivate assigns a private field.
func (i *Instance) SetPrivate(key string, v any) {
	i.privates[key] = v
}

// On binds fn to event on this instance.
func (i *Instance) On(event string, fn events.Handler) events.ListenerID {
	return i.bus.On(event, fn)
}

// Off removes handlers bound on this instance.
func (i *Instance) Off(event string, ids ...events.ListenerID) {
	i.bus.Off(event, ids...)
}

// Trigger synchronously calls the handlers bound to event.
func (i *Instance) Trigger(event string, args ...any) {
	i.bus.Trigger(event, args...)
}

// ListenTo binds fn on src and tracks it for StopListening.
func (i *Instance) ListenTo(src events.Source, event string, fn events.Handler) events.ListenerID {
	return i.bus.ListenTo(src, event, fn)
}

// StopListening removes every binding made with ListenTo.
func (i *Instance) StopListening() {
	i.bus.StopListening()
}

// Handlers returns the number of handlers bound on this instance, for
// event or for every event when event is empty.
func (i *Instance) Handlers(event string) int {
	return i.bus.Count(event)
}

// Report logs a diagnostic and triggers it as a "debug" or "error" event
// carrying the message and the Diagnostic.
func (i *Instance) Report(kind Kind, op, format string, args ...any) Diagnostic {
	d := Diagnostic{
		Kind:    kind,
		Class:   i.class.name,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
	i.logger.Log(context.Background(), kind.level(), d.Message, "op", op, "kind", kind.String())
	i.bus.Trigger(kind.Event(), d.Message, d)
	return d
}

// Value returns a public field converted to T.
func Value[T any](i *Instance, key string) (T, bool) {
	v, ok := i.props[key].(T)
	return v, ok
}

// PrivateValue returns a private field converted to T.
func PrivateValue[T any](i *Instance, key string) (T, bool) {
	v, ok := i.privates[key].(T)
	return v, ok
}
