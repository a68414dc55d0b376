package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_TriggerCallsHandlersInSubscriptionOrder(t *testing.T) {
	var b Bus
	var got []string

	b.On("ping", func(...any) { got = append(got, "first") })
	b.On("ping", func(...any) { got = append(got, "second") })
	b.On("pong", func(...any) { got = append(got, "other") })

	b.Trigger("ping")

	assert.Equal(t, []string{"first", "second"}, got)
}

func TestBus_TriggerPassesArguments(t *testing.T) {
	var b Bus
	var got []any

	b.On("selected", func(args ...any) { got = args })
	b.Trigger("selected", 3, "track.mp3")

	assert.Equal(t, []any{3, "track.mp3"}, got)
}

func TestBus_TriggerWithoutHandlersIsNoop(t *testing.T) {
	var b Bus
	assert.NotPanics(t, func() { b.Trigger("nothing") })
}

func TestBus_OnNilHandlerIgnored(t *testing.T) {
	var b Bus
	id := b.On("ping", nil)

	assert.Equal(t, ListenerID(0), id)
	assert.Equal(t, 0, b.Count("ping"))
}

func TestBus_OffByID(t *testing.T) {
	var b Bus
	calls := 0
	keep := b.On("ping", func(...any) { calls++ })
	drop := b.On("ping", func(...any) { calls += 10 })

	b.Off("ping", drop)
	b.Trigger("ping")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, b.Count("ping"))

	b.Off("ping", keep)
	assert.Equal(t, 0, b.Count("ping"))
	assert.Empty(t, b.Events())
}

func TestBus_OffByName(t *testing.T) {
	var b Bus
	b.On("ping", func(...any) {})
	b.On("ping", func(...any) {})
	b.On("pong", func(...any) {})

	b.Off("ping")

	assert.Equal(t, 0, b.Count("ping"))
	assert.Equal(t, 1, b.Count("pong"))
	assert.Equal(t, []string{"pong"}, b.Events())
}

func TestBus_OffAll(t *testing.T) {
	var b Bus
	b.On("ping", func(...any) {})
	b.On("pong", func(...any) {})

	b.Off("")

	assert.Equal(t, 0, b.Count(""))
}

func TestBus_OffIDsAcrossEvents(t *testing.T) {
	var b Bus
	a := b.On("ping", func(...any) {})
	b.On("ping", func(...any) {})
	c := b.On("pong", func(...any) {})

	b.Off("", a, c)

	assert.Equal(t, 1, b.Count(""))
	assert.Equal(t, []string{"ping"}, b.Events())
}

func TestBus_HandlerMayUnsubscribeDuringTrigger(t *testing.T) {
	var b Bus
	calls := 0
	var id ListenerID
	id = b.On("ping", func(...any) {
		calls++
		b.Off("ping", id)
	})
	b.On("ping", func(...any) { calls++ })

	b.Trigger("ping")
	b.Trigger("ping")

	assert.Equal(t, 3, calls)
}

func TestBus_ListenToAndStopListening(t *testing.T) {
	var listener, src Bus
	calls := 0
	src.On("click", func(...any) { calls += 100 })
	listener.ListenTo(&src, "click", func(...any) { calls++ })

	src.Trigger("click")
	assert.Equal(t, 101, calls)

	listener.StopListening()
	src.Trigger("click")

	assert.Equal(t, 201, calls, "only the ListenTo binding is removed")
	assert.Equal(t, 1, src.Count("click"))
}

func TestBus_ListenToNilSource(t *testing.T) {
	var b Bus
	assert.Equal(t, ListenerID(0), b.ListenTo(nil, "click", func(...any) {}))
	assert.NotPanics(t, b.StopListening)
}
