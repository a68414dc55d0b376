package mixin

import (
	"reflect"
	"slices"

	"github.com/llehouerou/tracklet/internal/class"
	"github.com/llehouerou/tracklet/internal/events"
)

const (
	privListeners = "observe.listeners"
	privBound     = "observe.bound"
)

// ListenersConfig is the config key holding listeners bound during init.
const ListenersConfig = "listeners"

type registration struct {
	event string
	id    events.ListenerID
}

type sourceEntry struct {
	src  events.Source
	regs []registration
}

// listenerTable groups registrations by source, in first-seen order.
type listenerTable struct {
	entries []*sourceEntry
}

func (t *listenerTable) entry(src events.Source) *sourceEntry {
	for _, e := range t.entries {
		if e.src == src {
			return e
		}
	}
	e := &sourceEntry{src: src}
	t.entries = append(t.entries, e)
	return e
}

func observerDescriptor() class.Descriptor {
	return class.Descriptor{
		Configs: map[string]any{
			ListenersConfig: map[string]any{},
		},
		Methods: map[string]class.Method{
			class.MethodInit: observerInit,
			"listen": func(self *class.Instance, args ...any) any {
				if len(args) < 3 {
					self.Report(class.KindConfig, "listen", "listen() expects a source, an event and a handler")
					return false
				}
				event, _ := args[1].(string)
				fn, ok := HandlerOf(args[2])
				if !ok {
					self.Report(class.KindConfig, "listen", "invalid handler for event %q", event)
					return false
				}
				return Listen(self, args[0], event, fn)
			},
			class.MethodDestroy: func(self *class.Instance, _ ...any) any {
				Teardown(self)
				return nil
			},
		},
	}
}

// observerInit binds the listeners config on self. Event names are bound
// in sorted order so subscription order is stable. A second call is
// reported and binds nothing.
func observerInit(self *class.Instance, _ ...any) any {
	if bound, _ := class.PrivateValue[bool](self, privBound); bound {
		self.Report(class.KindMisuse, "init", "observer of class %q is initialized twice or more", self.ClassName())
		return false
	}
	self.SetPrivate(privBound, true)
	tableOf(self)

	raw := self.Get(ListenersConfig)
	if raw == nil {
		return true
	}
	listeners, ok := raw.(map[string]any)
	if !ok {
		self.Report(class.KindConfig, "init", "invalid listeners configuration in class %q", self.ClassName())
		return false
	}

	names := make([]string, 0, len(listeners))
	for name := range listeners {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		fn, ok := HandlerOf(listeners[name])
		if !ok {
			self.Report(class.KindConfig, "init", "invalid listener %q in class %q", name, self.ClassName())
			continue
		}
		Listen(self, self, name, fn)
	}
	return true
}

// HandlerOf converts the handler shapes accepted in configs: an
// events.Handler, a func(...any), a func(), or a map with an "fn" entry.
func HandlerOf(v any) (events.Handler, bool) {
	switch fn := v.(type) {
	case events.Handler:
		return fn, fn != nil
	case func(...any):
		return fn, fn != nil
	case func():
		if fn == nil {
			return nil, false
		}
		return func(...any) { fn() }, true
	case map[string]any:
		return HandlerOf(fn["fn"])
	default:
		return nil, false
	}
}

// Listen binds fn to event on src and records the binding on self, so
// Teardown can remove it. It returns false and reports a config
// diagnostic when src cannot be listened to.
func Listen(self *class.Instance, src any, event string, fn events.Handler) bool {
	s, ok := src.(events.Source)
	if !ok || s == nil || isNilPointer(s) {
		self.Report(class.KindConfig, "listen", "invalid object for listening with listen(), event %q", event)
		return false
	}
	if !reflect.TypeOf(s).Comparable() {
		self.Report(class.KindConfig, "listen", "listen() source %T cannot be tracked", s)
		return false
	}
	if fn == nil {
		self.Report(class.KindConfig, "listen", "nil handler for event %q", event)
		return false
	}

	table := tableOf(self)
	id := s.On(event, fn)
	e := table.entry(s)
	e.regs = append(e.regs, registration{event: event, id: id})
	return true
}

func isNilPointer(s events.Source) bool {
	v := reflect.ValueOf(s)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func tableOf(self *class.Instance) *listenerTable {
	if t, ok := class.PrivateValue[*listenerTable](self, privListeners); ok && t != nil {
		return t
	}
	t := &listenerTable{}
	self.SetPrivate(privListeners, t)
	return t
}

// Detach removes every binding made through Listen and every ListenTo
// binding. Handlers other objects bound on self are kept.
func Detach(self *class.Instance) {
	table := tableOf(self)
	entries := table.entries
	table.entries = nil

	for _, e := range entries {
		for _, reg := range e.regs {
			e.src.Off(reg.event, reg.id)
		}
	}
	self.StopListening()
}

// Teardown detaches self and then drops every handler bound directly on
// self. Calling it with no registrations is fine.
func Teardown(self *class.Instance) {
	Detach(self)
	self.Off("")
}

// Sources returns the number of distinct sources self listens to.
func Sources(self *class.Instance) int {
	return len(tableOf(self).entries)
}

// Registrations returns the number of bindings self made through Listen.
func Registrations(self *class.Instance) int {
	n := 0
	for _, e := range tableOf(self).entries {
		n += len(e.regs)
	}
	return n
}
