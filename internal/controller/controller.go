// Package controller provides the base controller class with its
// lifecycle state machine, plus the controller mixins for nested
// controllers and owned views.
package controller

import (
	"errors"

	"github.com/llehouerou/tracklet/internal/class"
	"github.com/llehouerou/tracklet/internal/mixin"
)

// Class names.
const (
	BaseClass       = "app.controller.base.Controller"
	ControllerMixin = "app.mixin.controller.Controller"
	ViewMixin       = "app.mixin.controller.View"
)

// Conventional binding keys for the controller mixins.
const (
	CtrlKey = "ctrl"
	ViewKey = "view"
)

// Config keys of the base controller.
const (
	ConfigAutoRun     = "autoRun"
	ConfigCtrlMixinNs = "ctrlMixinNs"
)

// DefaultCtrlMixinNs is the namespace whose mixins take part in init and
// destroy.
const DefaultCtrlMixinNs = "app.mixin.controller"

// Events triggered on transitions.
const (
	EventBeforeInit    = "beforeinit"
	EventInit          = "init"
	EventBeforeRun     = "beforerun"
	EventRun           = "run"
	EventBeforeStop    = "beforestop"
	EventStop          = "stop"
	EventBeforeDestroy = "beforedestroy"
	EventDestroy       = "destroy"
)

// Overridable hooks.
const (
	HookBeforeInit    = "onBeforeInit"
	HookInit          = "onInit"
	HookAfterInit     = "onAfterInit"
	HookBeforeRun     = "onBeforeRun"
	HookRun           = "onRun"
	HookAfterRun      = "onAfterRun"
	HookBeforeStop    = "onBeforeStop"
	HookStop          = "onStop"
	HookAfterStop     = "onAfterStop"
	HookBeforeDestroy = "onBeforeDestroy"
	HookDestroy       = "onDestroy"
	HookAfterDestroy  = "onAfterDestroy"
)

// Method names of the transitions.
const (
	MethodRun  = "run"
	MethodStop = "stop"
)

const privState = "ctrl.state"

// Register defines the base controller and the controller mixins in r.
// The lifecycle mixins must be registered as well; Register does it when
// they are missing.
func Register(r *class.Registry) error {
	var errs []error
	if !r.Has(mixin.InterfaceClass) {
		errs = append(errs, mixin.Register(r))
	}
	for name, d := range map[string]class.Descriptor{
		BaseClass:       baseDescriptor(),
		ControllerMixin: nestedDescriptor(),
		ViewMixin:       viewDescriptor(),
	} {
		if _, err := r.Define(name, d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func noop(*class.Instance, ...any) any { return nil }

func baseDescriptor() class.Descriptor {
	return class.Descriptor{
		Mixins: mixin.Bindings(),
		Configs: map[string]any{
			ConfigAutoRun:     false,
			ConfigCtrlMixinNs: DefaultCtrlMixinNs,
		},
		Methods: map[string]class.Method{
			mixin.PhaseInitPrivates: func(self *class.Instance, _ ...any) any {
				self.SetPrivate(privState, StateCreated)
				return nil
			},
			class.MethodInit:    initController,
			MethodRun:           runController,
			MethodStop:          stopController,
			class.MethodDestroy: destroyController,

			HookBeforeInit: noop,
			HookInit:       noop,
			HookAfterInit:  noop,
			HookBeforeRun:  noop,
			HookRun: func(self *class.Instance, _ ...any) any {
				setState(self, StateRunning)
				return nil
			},
			HookAfterRun:   noop,
			HookBeforeStop: noop,
			HookStop: func(self *class.Instance, _ ...any) any {
				setState(self, StateStopped)
				return nil
			},
			HookAfterStop:     noop,
			HookBeforeDestroy: noop,
			HookDestroy:       noop,
			HookAfterDestroy:  noop,
		},
	}
}

// StateOf returns the controller's state. Instances that never ran init
// are created.
func StateOf(self *class.Instance) State {
	s, ok := class.PrivateValue[State](self, privState)
	if !ok {
		return StateCreated
	}
	return s
}

func setState(self *class.Instance, s State) {
	prev := StateOf(self)
	self.SetPrivate(privState, s)
	if prev != s {
		self.Logger().Debug("Controller state changed.", "from", prev.String(), "to", s.String())
	}
}

func initController(self *class.Instance, _ ...any) any {
	if s := StateOf(self); s != StateCreated {
		self.Report(class.KindMisuse, class.MethodInit,
			"init() is called twice or more in class %q (state %s)", self.ClassName(), s)
		return false
	}

	// The lifecycle phases run once, even when a vetoed init is retried.
	if !mixin.Inited(self) {
		mixin.Init(self)
		self.CallMixin(mixin.ObserverKey, class.MethodInit)
	}
	setState(self, StateInitializing)

	self.Trigger(EventBeforeInit)
	if vetoed(self.Call(HookBeforeInit)) {
		setState(self, StateCreated)
		self.Report(class.KindVeto, class.MethodInit,
			"initialization of controller %q was stopped, because %s() returned Abort", self.ClassName(), HookBeforeInit)
		return false
	}

	callFromMixins(self, class.MethodInit)
	self.Call(HookInit)
	setState(self, StateInitialized)
	self.Call(HookAfterInit)
	self.Trigger(EventInit)

	if auto, _ := class.Value[bool](self, ConfigAutoRun); auto {
		Run(self)
	}
	return true
}

func runController(self *class.Instance, _ ...any) any {
	if s := StateOf(self); !s.CanRun() {
		self.Report(class.KindMisuse, MethodRun,
			"run() was called, but controller %q is %s", self.ClassName(), s)
		return false
	}

	self.Trigger(EventBeforeRun)
	if vetoed(self.Call(HookBeforeRun)) {
		self.Report(class.KindVeto, MethodRun,
			"running of controller %q was stopped, because %s() returned Abort", self.ClassName(), HookBeforeRun)
		return false
	}
	self.Call(HookRun)
	self.Call(HookAfterRun)
	self.Trigger(EventRun)
	return true
}

func stopController(self *class.Instance, _ ...any) any {
	if s := StateOf(self); s != StateRunning {
		self.Report(class.KindMisuse, MethodStop,
			"stop() was called, but controller %q is %s", self.ClassName(), s)
		return false
	}

	self.Trigger(EventBeforeStop)
	if vetoed(self.Call(HookBeforeStop)) {
		self.Report(class.KindVeto, MethodStop,
			"stopping of controller %q was stopped, because %s() returned Abort", self.ClassName(), HookBeforeStop)
		return false
	}
	mixin.Detach(self)
	self.Call(HookStop)
	self.Call(HookAfterStop)
	self.Trigger(EventStop)
	return true
}

func destroyController(self *class.Instance, _ ...any) any {
	s := StateOf(self)
	switch {
	case s == StateDestroyed || s == StateDestroying:
		self.Report(class.KindMisuse, class.MethodDestroy,
			"destroy() is called twice or more in class %q", self.ClassName())
		return false
	case !s.CanDestroy():
		self.Report(class.KindMisuse, class.MethodDestroy,
			"destroy() is called in class %q, which was not initialized", self.ClassName())
		return false
	}

	self.Trigger(EventBeforeDestroy, self)
	if vetoed(self.Call(HookBeforeDestroy)) {
		self.Report(class.KindVeto, class.MethodDestroy,
			"destroying of controller %q was stopped, because %s() returned Abort", self.ClassName(), HookBeforeDestroy)
		return false
	}

	setState(self, StateDestroying)
	callFromMixins(self, class.MethodDestroy)
	self.Call(HookDestroy)
	self.Call(HookAfterDestroy)
	self.Trigger(EventDestroy)
	mixin.Teardown(self)
	setState(self, StateDestroyed)
	self.Logger().Debug("Controller destroyed.")
	return true
}

// callFromMixins runs method on every mixin that lives in the controller
// mixin namespace, in binding order.
func callFromMixins(self *class.Instance, method string) {
	ns, _ := class.Value[string](self, ConfigCtrlMixinNs)
	if ns == "" {
		ns = DefaultCtrlMixinNs
	}
	for _, m := range self.Mixins() {
		if m.Class.Namespace() != ns {
			continue
		}
		self.CallMixin(m.Key, method)
	}
}

func called(out any) bool {
	ok, _ := out.(bool)
	return ok
}

// Init runs the controller's init.
func Init(self *class.Instance) bool { return called(self.Call(class.MethodInit)) }

// Run runs the controller's run.
func Run(self *class.Instance) bool { return called(self.Call(MethodRun)) }

// Stop runs the controller's stop.
func Stop(self *class.Instance) bool { return called(self.Call(MethodStop)) }

// Destroy runs the controller's destroy.
func Destroy(self *class.Instance) bool { return called(self.Call(class.MethodDestroy)) }
