package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tracklet/internal/class"
	"github.com/llehouerou/tracklet/internal/events"
	"github.com/llehouerou/tracklet/internal/mixin"
)

func newRegistry(t *testing.T) *class.Registry {
	t.Helper()
	r := class.NewRegistry()
	require.NoError(t, Register(r))
	return r
}

func define(t *testing.T, r *class.Registry, name string, d class.Descriptor) {
	t.Helper()
	_, err := r.Define(name, d)
	require.NoError(t, err)
}

// recorder collects hook and event names in call order.
type recorder struct {
	calls []string
}

func (rec *recorder) hook(name string, out any) class.Method {
	return func(*class.Instance, ...any) any {
		rec.calls = append(rec.calls, name)
		return out
	}
}

func (rec *recorder) watch(inst *class.Instance, names ...string) {
	for _, name := range names {
		inst.On(name, func(...any) { rec.calls = append(rec.calls, "event:"+name) })
	}
}

func newController(t *testing.T, r *class.Registry, cfg map[string]any) *class.Instance {
	t.Helper()
	inst, err := r.New(BaseClass, cfg)
	require.NoError(t, err)
	return inst
}

func TestController_Lifecycle(t *testing.T) {
	r := newRegistry(t)
	inst := newController(t, r, nil)

	assert.Equal(t, StateCreated, StateOf(inst))
	require.True(t, Init(inst))
	assert.Equal(t, StateInitialized, StateOf(inst))
	require.True(t, Run(inst))
	assert.Equal(t, StateRunning, StateOf(inst))
	require.True(t, Stop(inst))
	assert.Equal(t, StateStopped, StateOf(inst))
	require.True(t, Run(inst), "a stopped controller can run again")
	require.True(t, Destroy(inst))
	assert.Equal(t, StateDestroyed, StateOf(inst))
}

func TestController_HookOrder(t *testing.T) {
	r := newRegistry(t)
	rec := &recorder{}
	define(t, r, "app.controller.Widget", class.Descriptor{
		Extend: BaseClass,
		Methods: map[string]class.Method{
			HookBeforeInit:    rec.hook(HookBeforeInit, nil),
			HookInit:          rec.hook(HookInit, nil),
			HookAfterInit:     rec.hook(HookAfterInit, nil),
			HookBeforeRun:     rec.hook(HookBeforeRun, Proceed),
			HookAfterRun:      rec.hook(HookAfterRun, nil),
			HookBeforeStop:    rec.hook(HookBeforeStop, nil),
			HookAfterStop:     rec.hook(HookAfterStop, nil),
			HookBeforeDestroy: rec.hook(HookBeforeDestroy, nil),
			HookDestroy:       rec.hook(HookDestroy, nil),
			HookAfterDestroy:  rec.hook(HookAfterDestroy, nil),
		},
	})
	inst, err := r.New("app.controller.Widget", nil)
	require.NoError(t, err)
	rec.watch(inst, EventBeforeInit, EventInit, EventBeforeRun, EventRun,
		EventBeforeStop, EventStop, EventBeforeDestroy)

	require.True(t, Init(inst))
	require.True(t, Run(inst))
	require.True(t, Stop(inst))
	require.True(t, Destroy(inst))

	assert.Equal(t, []string{
		"event:beforeinit", HookBeforeInit, HookInit, HookAfterInit, "event:init",
		"event:beforerun", HookBeforeRun, HookAfterRun, "event:run",
		"event:beforestop", HookBeforeStop, HookAfterStop, "event:stop",
		"event:beforedestroy", HookBeforeDestroy, HookDestroy, HookAfterDestroy,
	}, rec.calls)
}

func TestController_RunGuards(t *testing.T) {
	r := newRegistry(t)
	inst := newController(t, r, nil)

	var diags []class.Diagnostic
	inst.On(class.EventDebug, func(args ...any) { diags = append(diags, args[1].(class.Diagnostic)) })

	assert.False(t, Run(inst), "run before init")
	assert.Equal(t, StateCreated, StateOf(inst))

	require.True(t, Init(inst))
	require.True(t, Run(inst))
	assert.False(t, Run(inst), "run while running")
	assert.Equal(t, StateRunning, StateOf(inst))

	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, class.KindMisuse, d.Kind)
		assert.Equal(t, MethodRun, d.Op)
	}
}

func TestController_InitTwice(t *testing.T) {
	r := newRegistry(t)
	inits := 0
	define(t, r, "app.controller.Widget", class.Descriptor{
		Extend: BaseClass,
		Methods: map[string]class.Method{
			HookInit: func(*class.Instance, ...any) any {
				inits++
				return nil
			},
		},
	})
	inst, err := r.Create("app.controller.Widget", nil)
	require.NoError(t, err)

	misuse := 0
	inst.On(class.EventDebug, func(...any) { misuse++ })

	assert.False(t, Init(inst))
	assert.Equal(t, 1, inits)
	assert.Equal(t, 1, misuse)
}

func TestController_StopGuards(t *testing.T) {
	r := newRegistry(t)
	inst := newController(t, r, nil)

	assert.False(t, Stop(inst))
	require.True(t, Init(inst))
	assert.False(t, Stop(inst), "stop before run")
	require.True(t, Run(inst))
	require.True(t, Stop(inst))
	assert.False(t, Stop(inst), "stop twice")
	assert.Equal(t, StateStopped, StateOf(inst))
}

func TestController_DestroyIdempotent(t *testing.T) {
	r := newRegistry(t)
	destroys := 0
	define(t, r, "app.controller.Widget", class.Descriptor{
		Extend: BaseClass,
		Methods: map[string]class.Method{
			HookDestroy: func(*class.Instance, ...any) any {
				destroys++
				return nil
			},
		},
	})
	inst, err := r.New("app.controller.Widget", nil)
	require.NoError(t, err)

	assert.False(t, Destroy(inst), "destroy before init")
	assert.Zero(t, destroys)

	require.True(t, Init(inst))
	require.True(t, Destroy(inst))
	assert.False(t, Destroy(inst))
	assert.Equal(t, 1, destroys)
	assert.False(t, Run(inst), "destroyed is terminal")
	assert.False(t, Init(inst), "destroyed is terminal")
	assert.Equal(t, StateDestroyed, StateOf(inst))
}

func TestController_Vetoes(t *testing.T) {
	tests := []struct {
		hook  string
		drive func(inst *class.Instance) bool
		want  State
	}{
		{HookBeforeInit, func(inst *class.Instance) bool { return Init(inst) }, StateCreated},
		{HookBeforeRun, func(inst *class.Instance) bool {
			Init(inst)
			return Run(inst)
		}, StateInitialized},
		{HookBeforeStop, func(inst *class.Instance) bool {
			Init(inst)
			Run(inst)
			return Stop(inst)
		}, StateRunning},
		{HookBeforeDestroy, func(inst *class.Instance) bool {
			Init(inst)
			return Destroy(inst)
		}, StateInitialized},
	}
	for _, tt := range tests {
		t.Run(tt.hook, func(t *testing.T) {
			r := newRegistry(t)
			define(t, r, "app.controller.Vetoing", class.Descriptor{
				Extend: BaseClass,
				Methods: map[string]class.Method{
					tt.hook: func(*class.Instance, ...any) any { return Abort },
				},
			})
			inst, err := r.New("app.controller.Vetoing", nil)
			require.NoError(t, err)

			var vetoes []class.Diagnostic
			inst.On(class.EventDebug, func(args ...any) {
				if d := args[1].(class.Diagnostic); d.Kind == class.KindVeto {
					vetoes = append(vetoes, d)
				}
			})

			assert.False(t, tt.drive(inst))
			assert.Equal(t, tt.want, StateOf(inst))
			assert.Len(t, vetoes, 1)
		})
	}
}

func TestController_VetoedInitCanRetry(t *testing.T) {
	r := newRegistry(t)
	allow := false
	phases := 0
	define(t, r, "app.controller.Widget", class.Descriptor{
		Extend: BaseClass,
		Methods: map[string]class.Method{
			mixin.PhaseInitPublics: func(*class.Instance, ...any) any {
				phases++
				return nil
			},
			HookBeforeInit: func(*class.Instance, ...any) any {
				if allow {
					return Proceed
				}
				return Abort
			},
		},
	})
	inst, err := r.New("app.controller.Widget", nil)
	require.NoError(t, err)

	assert.False(t, Init(inst))
	allow = true
	assert.True(t, Init(inst))
	assert.Equal(t, StateInitialized, StateOf(inst))
	assert.Equal(t, 1, phases)
}

func TestController_AutoRun(t *testing.T) {
	r := newRegistry(t)

	inst, err := r.Create(BaseClass, map[string]any{ConfigAutoRun: true})
	require.NoError(t, err)

	assert.Equal(t, StateRunning, StateOf(inst))
}

func TestController_StopDetachesListeners(t *testing.T) {
	r := newRegistry(t)
	inst := newController(t, r, nil)
	require.True(t, Init(inst))
	require.True(t, Run(inst))

	src := &events.Bus{}
	calls := 0
	require.True(t, mixin.Listen(inst, src, "tick", func(...any) { calls++ }))
	inst.ListenTo(src, "tock", func(...any) { calls++ })

	require.True(t, Stop(inst))
	src.Trigger("tick")
	src.Trigger("tock")

	assert.Zero(t, calls)
	assert.Zero(t, mixin.Sources(inst))
}

func TestController_DestroyTearsDown(t *testing.T) {
	r := newRegistry(t)
	inst := newController(t, r, nil)
	require.True(t, Init(inst))

	src := &events.Bus{}
	mixin.Listen(inst, src, "tick", func(...any) {})
	destroyed := 0
	inst.On(EventDestroy, func(...any) { destroyed++ })

	require.True(t, Destroy(inst))

	assert.Equal(t, 1, destroyed, "the destroy event fires before teardown")
	assert.Zero(t, src.Count(""))
	assert.Zero(t, inst.Handlers(""))
}

func TestController_MixinHooksFilteredByNamespace(t *testing.T) {
	r := newRegistry(t)
	var calls []string
	record := func(name string) class.Method {
		return func(*class.Instance, ...any) any {
			calls = append(calls, name)
			return nil
		}
	}
	define(t, r, "app.mixin.controller.Widget", class.Descriptor{Methods: map[string]class.Method{
		class.MethodInit:    record("ctrl.init"),
		class.MethodDestroy: record("ctrl.destroy"),
	}})
	define(t, r, "app.mixin.other.Widget", class.Descriptor{Methods: map[string]class.Method{
		class.MethodInit:    record("other.init"),
		class.MethodDestroy: record("other.destroy"),
	}})
	define(t, r, "app.controller.Widget", class.Descriptor{
		Extend: BaseClass,
		Mixins: []class.MixinBinding{
			{Key: "widget", Class: "app.mixin.controller.Widget"},
			{Key: "other", Class: "app.mixin.other.Widget"},
		},
		Methods: map[string]class.Method{
			HookInit:    record("onInit"),
			HookDestroy: record("onDestroy"),
		},
	})

	inst, err := r.Create("app.controller.Widget", nil)
	require.NoError(t, err)
	require.True(t, Destroy(inst))

	assert.Equal(t, []string{"ctrl.init", "onInit", "ctrl.destroy", "onDestroy"}, calls)
}

func TestController_OnRunCallParent(t *testing.T) {
	r := newRegistry(t)
	ran := false
	define(t, r, "app.controller.Widget", class.Descriptor{
		Extend: BaseClass,
		Methods: map[string]class.Method{
			HookRun: func(self *class.Instance, _ ...any) any {
				self.CallParent()
				ran = true
				return nil
			},
		},
	})
	inst, err := r.Create("app.controller.Widget", nil)
	require.NoError(t, err)

	require.True(t, Run(inst))
	assert.True(t, ran)
	assert.Equal(t, StateRunning, StateOf(inst))
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateCreated, "Created"},
		{StateInitializing, "Initializing"},
		{StateInitialized, "Initialized"},
		{StateRunning, "Running"},
		{StateStopped, "Stopped"},
		{StateDestroying, "Destroying"},
		{StateDestroyed, "Destroyed"},
		{State(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_Transitions(t *testing.T) {
	assert.True(t, StateInitialized.CanRun())
	assert.True(t, StateStopped.CanRun())
	assert.False(t, StateRunning.CanRun())
	assert.False(t, StateCreated.CanRun())

	assert.True(t, StateRunning.CanDestroy())
	assert.False(t, StateCreated.CanDestroy())
	assert.False(t, StateDestroyed.CanDestroy())
}
