// Package events provides the publish/subscribe primitive shared by every
// framework object. A Bus is synchronous and single-owner: handlers run on
// the caller's goroutine in subscription order.
package events

import "slices"

// Handler receives the arguments passed to Trigger.
type Handler func(args ...any)

// ListenerID identifies one binding made with On.
type ListenerID uint64

// Source is anything that can be listened to.
type Source interface {
	On(event string, fn Handler) ListenerID
	Off(event string, ids ...ListenerID)
	StopListening()
}

// Verify Bus implements Source at compile time.
var _ Source = (*Bus)(nil)

type binding struct {
	id ListenerID
	fn Handler
}

type remote struct {
	src   Source
	event string
	id    ListenerID
}

// Bus holds handlers by event name. The zero value is ready to use.
type Bus struct {
	nextID   ListenerID
	handlers map[string][]binding
	order    []string // event names in first-subscription order
	remotes  []remote // bindings made on other sources with ListenTo
}

// On binds fn to event and returns its handle.
func (b *Bus) On(event string, fn Handler) ListenerID {
	if fn == nil {
		return 0
	}
	if b.handlers == nil {
		b.handlers = make(map[string][]binding)
	}
	if _, ok := b.handlers[event]; !ok {
		b.order = append(b.order, event)
	}
	b.nextID++
	b.handlers[event] = append(b.handlers[event], binding{id: b.nextID, fn: fn})
	return b.nextID
}

// Off removes handlers. With no ids every handler for event is removed; an
// empty event name removes handlers for every event.
func (b *Bus) Off(event string, ids ...ListenerID) {
	if event == "" {
		if len(ids) == 0 {
			b.handlers = nil
			b.order = nil
			return
		}
		for _, name := range b.Events() {
			b.removeIDs(name, ids)
		}
		return
	}
	if len(ids) == 0 {
		b.drop(event)
		return
	}
	b.removeIDs(event, ids)
}

func (b *Bus) removeIDs(event string, ids []ListenerID) {
	list, ok := b.handlers[event]
	if !ok {
		return
	}
	kept := list[:0:0]
	for _, h := range list {
		if !slices.Contains(ids, h.id) {
			kept = append(kept, h)
		}
	}
	if len(kept) == 0 {
		b.drop(event)
		return
	}
	b.handlers[event] = kept
}

func (b *Bus) drop(event string) {
	if _, ok := b.handlers[event]; !ok {
		return
	}
	delete(b.handlers, event)
	if i := slices.Index(b.order, event); i >= 0 {
		b.order = slices.Delete(b.order, i, i+1)
	}
}

// Trigger calls every handler bound to event. Handlers added or removed
// while triggering take effect on the next Trigger.
func (b *Bus) Trigger(event string, args ...any) {
	list := b.handlers[event]
	if len(list) == 0 {
		return
	}
	snapshot := make([]binding, len(list))
	copy(snapshot, list)
	for _, h := range snapshot {
		h.fn(args...)
	}
}

// ListenTo binds fn on src and remembers the binding so StopListening can
// remove it later.
func (b *Bus) ListenTo(src Source, event string, fn Handler) ListenerID {
	if src == nil || fn == nil {
		return 0
	}
	id := src.On(event, fn)
	b.remotes = append(b.remotes, remote{src: src, event: event, id: id})
	return id
}

// StopListening removes every binding made with ListenTo.
func (b *Bus) StopListening() {
	remotes := b.remotes
	b.remotes = nil
	for _, r := range remotes {
		r.src.Off(r.event, r.id)
	}
}

// Count returns the number of handlers bound to event, or to every event
// when event is empty.
func (b *Bus) Count(event string) int {
	if event != "" {
		return len(b.handlers[event])
	}
	n := 0
	for _, list := range b.handlers {
		n += len(list)
	}
	return n
}

// Events returns the event names that currently have handlers.
func (b *Bus) Events() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}
