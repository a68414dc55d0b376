// Package mixin holds the two mixins every framework object is built on:
// the four-phase lifecycle Interface and the Observer with tracked
// listener teardown.
package mixin

import (
	"errors"

	"github.com/llehouerou/tracklet/internal/class"
)

// Class names and conventional binding keys.
const (
	InterfaceClass = "app.mixin.Interface"
	ObserverClass  = "app.mixin.Observer"

	InterfaceKey = "iface"
	ObserverKey  = "observe"
)

// Lifecycle phases run by the Interface mixin's init, in order.
const (
	PhaseBeforeInit   = "beforeInit"
	PhaseInitPrivates = "initPrivates"
	PhaseInitPublics  = "initPublics"
	PhaseAfterInit    = "afterInit"
)

// Phases lists the lifecycle phases in execution order.
var Phases = []string{PhaseBeforeInit, PhaseInitPrivates, PhaseInitPublics, PhaseAfterInit}

const privInited = "iface.inited"

// Bindings returns the mixin declarations used by classes that opt into
// both mixins.
func Bindings() []class.MixinBinding {
	return []class.MixinBinding{
		{Key: InterfaceKey, Class: InterfaceClass},
		{Key: ObserverKey, Class: ObserverClass},
	}
}

// Register defines both mixins in r.
func Register(r *class.Registry) error {
	_, err1 := r.Define(InterfaceClass, interfaceDescriptor())
	_, err2 := r.Define(ObserverClass, observerDescriptor())
	return errors.Join(err1, err2)
}

func noop(*class.Instance, ...any) any { return nil }

func interfaceDescriptor() class.Descriptor {
	return class.Descriptor{
		Methods: map[string]class.Method{
			class.MethodInit:  interfaceInit,
			PhaseBeforeInit:   noop,
			PhaseInitPrivates: noop,
			PhaseInitPublics:  noop,
			PhaseAfterInit:    noop,
		},
	}
}

// interfaceInit runs the four phases once. A second call is reported and
// returns false.
func interfaceInit(self *class.Instance, _ ...any) any {
	if done, _ := class.PrivateValue[bool](self, privInited); done {
		self.Report(class.KindMisuse, "init", "init() is called twice or more in class %q", self.ClassName())
		return false
	}
	self.SetPrivate(privInited, true)
	for _, phase := range Phases {
		self.Call(phase)
	}
	return true
}

// Init runs the Interface mixin's init on self.
func Init(self *class.Instance) bool {
	ok, _ := self.CallMixin(InterfaceKey, class.MethodInit).(bool)
	return ok
}

// Inited reports whether the lifecycle phases have run.
func Inited(self *class.Instance) bool {
	done, _ := class.PrivateValue[bool](self, privInited)
	return done
}
