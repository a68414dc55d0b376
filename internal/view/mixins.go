package view

import (
	"github.com/llehouerou/tracklet/internal/class"
)

// ConfigDisableCls is the style class a disabled view renders with.
const ConfigDisableCls = "disableCls"

// toggle describes one guarded, veto-able view transition such as show
// or disable. apply runs on the view itself; the transition is then
// propagated to every child.
type toggle struct {
	method string
	before string
	after  string
	apply  func(self *class.Instance)
}

func (tg toggle) run(self *class.Instance, _ ...any) any {
	if !Rendered(self) {
		self.Report(class.KindMisuse, tg.method,
			"%s() was called, but view %q has not rendered yet", tg.method, self.ClassName())
		return false
	}

	self.Trigger("before"+tg.method, self)
	if vetoed(self.Call(tg.before)) {
		self.Report(class.KindVeto, tg.method,
			"%s of view %q was stopped, because %s() returned Abort", tg.method, self.ClassName(), tg.before)
		return false
	}
	tg.apply(self)
	for _, item := range Items(self) {
		item.Call(tg.method)
	}
	self.Call(tg.after)
	self.Trigger(tg.method, self)
	return true
}

func setFlag(key string, v bool) func(*class.Instance) {
	return func(self *class.Instance) { self.Set(key, v) }
}

func toggleMethods(tgs ...toggle) map[string]class.Method {
	methods := make(map[string]class.Method, len(tgs)*3)
	for _, tg := range tgs {
		methods[tg.method] = tg.run
		methods[tg.before] = noop
		methods[tg.after] = noop
	}
	return methods
}

func showDescriptor() class.Descriptor {
	return class.Descriptor{
		Methods: toggleMethods(
			toggle{method: "show", before: "onBeforeShow", after: "onAfterShow", apply: setFlag(ConfigHidden, false)},
			toggle{method: "hide", before: "onBeforeHide", after: "onAfterHide", apply: setFlag(ConfigHidden, true)},
		),
	}
}

func enableDescriptor() class.Descriptor {
	return class.Descriptor{
		Configs: map[string]any{
			ConfigDisableCls: "disabled",
			ConfigDisabled:   false,
		},
		Methods: toggleMethods(
			toggle{method: "enable", before: "onBeforeEnable", after: "onAfterEnable", apply: setFlag(ConfigDisabled, false)},
			toggle{method: "disable", before: "onBeforeDisable", after: "onAfterDisable", apply: setFlag(ConfigDisabled, true)},
		),
	}
}

func called(out any) bool {
	ok, _ := out.(bool)
	return ok
}

// Show shows a rendered view and its children.
func Show(self *class.Instance) bool { return called(self.Call("show")) }

// Hide hides a rendered view and its children.
func Hide(self *class.Instance) bool { return called(self.Call("hide")) }

// Enable enables a rendered view and its children.
func Enable(self *class.Instance) bool { return called(self.Call("enable")) }

// Disable disables a rendered view and its children.
func Disable(self *class.Instance) bool { return called(self.Call("disable")) }
