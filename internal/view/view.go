// Package view provides the base view class and the view mixins. A view
// owns an ordered list of child views, renders itself to a string through
// its template method and exposes before/after hooks around render and
// destroy that may veto the transition.
package view

import (
	"errors"
	"strings"

	"github.com/llehouerou/tracklet/internal/class"
	"github.com/llehouerou/tracklet/internal/controller"
	"github.com/llehouerou/tracklet/internal/mixin"
)

// Class names.
const (
	BaseClass   = "app.view.base.View"
	ShowMixin   = "app.mixin.view.Show"
	EnableMixin = "app.mixin.view.Enable"
)

// Binding keys for the view mixins.
const (
	ShowKey   = "show"
	EnableKey = "enable"
)

// Config keys of the base view.
const (
	ConfigViewNs     = controller.ConfigViewNs
	ConfigItems      = controller.ItemsKey
	ConfigID         = controller.IDKey
	ConfigAutoRender = "autoRender"
	ConfigHidden     = "hidden"
	ConfigDisabled   = "disabled"
)

// Methods and hooks.
const (
	MethodRender   = "render"
	MethodTemplate = "template"

	HookBeforeRender  = "onBeforeRender"
	HookRender        = "onRender"
	HookAfterRender   = "onAfterRender"
	HookBeforeDestroy = "onBeforeDestroy"
	HookDestroy       = "onDestroy"
)

// Events.
const (
	EventBeforeRender  = "beforerender"
	EventRender        = "render"
	EventBeforeDestroy = "beforedestroy"
	EventDestroy       = "destroy"
)

const (
	privRendered  = "view.rendered"
	privDestroyed = "view.destroyed"
	privOutput    = "view.output"
)

// Register defines the base view and the view mixins in r.
func Register(r *class.Registry) error {
	var errs []error
	if !r.Has(mixin.InterfaceClass) {
		errs = append(errs, mixin.Register(r))
	}
	for _, def := range []struct {
		name string
		desc class.Descriptor
	}{
		{BaseClass, baseDescriptor()},
		{ShowMixin, showDescriptor()},
		{EnableMixin, enableDescriptor()},
	} {
		if _, err := r.Define(def.name, def.desc); err != nil {
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
			ConfigViewNs:     controller.DefaultViewNs,
			ConfigItems:      []any{},
			ConfigID:         "",
			ConfigAutoRender: false,
			ConfigHidden:     false,
		},
		Methods: map[string]class.Method{
			mixin.PhaseInitPrivates: func(self *class.Instance, _ ...any) any {
				self.SetPrivate(privRendered, false)
				self.SetPrivate(privDestroyed, false)
				self.SetPrivate(privOutput, "")
				return nil
			},
			class.MethodInit:    initView,
			MethodRender:        renderView,
			MethodTemplate:      childrenTemplate,
			class.MethodDestroy: destroyView,

			HookBeforeRender: noop,
			HookRender: func(self *class.Instance, _ ...any) any {
				for _, item := range Items(self) {
					item.Call(MethodRender)
				}
				out, _ := self.Call(MethodTemplate).(string)
				self.SetPrivate(privOutput, out)
				return nil
			},
			HookAfterRender:   noop,
			HookBeforeDestroy: noop,
			HookDestroy:       noop,
		},
	}
}

func initView(self *class.Instance, _ ...any) any {
	if !mixin.Init(self) {
		return false
	}
	self.CallMixin(mixin.ObserverKey, class.MethodInit)
	createItems(self)
	if auto, _ := class.Value[bool](self, ConfigAutoRender); auto {
		Render(self)
	}
	return true
}

// createItems replaces the declarative items list with child instances.
// Entries that already are instances are kept as they are.
func createItems(self *class.Instance) {
	ns, _ := class.Value[string](self, ConfigViewNs)
	if ns == "" {
		ns = controller.DefaultViewNs
	}
	items := self.Get(ConfigItems)
	if _, built := items.([]*class.Instance); built {
		return
	}
	entries := class.EntryList(items)

	children := make([]*class.Instance, 0, len(entries))
	for _, entry := range entries {
		if inst, ok := entry.(*class.Instance); ok {
			children = append(children, inst)
			continue
		}
		suffix, cfg, ok := class.ParseEntry(entry)
		if !ok {
			self.Report(class.KindConfig, class.MethodInit,
				"invalid item %v of view %q, skipped", entry, self.ClassName())
			continue
		}
		child, err := self.Registry().Create(class.Join(ns, suffix), cfg)
		if err != nil {
			self.Report(class.KindConfig, class.MethodInit,
				"cannot create item %q of view %q: %v", suffix, self.ClassName(), err)
			continue
		}
		children = append(children, child)
	}
	self.Set(ConfigItems, children)
}

func renderView(self *class.Instance, _ ...any) any {
	if Destroyed(self) {
		self.Report(class.KindMisuse, MethodRender,
			"render() was called, but view %q is destroyed", self.ClassName())
		return false
	}

	self.Trigger(EventBeforeRender, self)
	if vetoed(self.Call(HookBeforeRender)) {
		self.Report(class.KindVeto, MethodRender,
			"rendering of view %q was stopped, because %s() returned Abort", self.ClassName(), HookBeforeRender)
		return false
	}
	self.Call(HookRender)
	self.SetPrivate(privRendered, true)
	self.Call(HookAfterRender)
	self.Trigger(EventRender, self)
	return true
}

// childrenTemplate joins the output of the visible children, one per line.
func childrenTemplate(self *class.Instance, _ ...any) any {
	var parts []string
	for _, item := range Items(self) {
		if Hidden(item) {
			continue
		}
		if out := Output(item); out != "" {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, "\n")
}

func destroyView(self *class.Instance, _ ...any) any {
	if Destroyed(self) {
		self.Report(class.KindMisuse, class.MethodDestroy,
			"destroy() is called twice or more in view %q", self.ClassName())
		return false
	}

	self.Trigger(EventBeforeDestroy, self)
	if vetoed(self.Call(HookBeforeDestroy)) {
		self.Report(class.KindVeto, class.MethodDestroy,
			"destroying of view %q was stopped, because %s() returned Abort", self.ClassName(), HookBeforeDestroy)
		return false
	}

	for _, item := range Items(self) {
		item.Call(class.MethodDestroy)
	}
	self.Call(HookDestroy)
	self.Trigger(EventDestroy, self)
	mixin.Teardown(self)

	self.Set(ConfigItems, nil)
	self.SetPrivate(privDestroyed, true)
	self.SetPrivate(privRendered, false)
	self.SetPrivate(privOutput, "")
	return true
}

func vetoed(out any) bool {
	v, ok := out.(controller.Verdict)
	return ok && v == controller.Abort
}

// Items returns the child views.
func Items(self *class.Instance) []*class.Instance {
	items, _ := class.Value[[]*class.Instance](self, ConfigItems)
	return items
}

// Render renders the view and its children.
func Render(self *class.Instance) bool {
	ok, _ := self.Call(MethodRender).(bool)
	return ok
}

// Output returns the string produced by the last render.
func Output(self *class.Instance) string {
	out, _ := class.PrivateValue[string](self, privOutput)
	return out
}

// Rendered reports whether the view rendered at least once since it was
// created.
func Rendered(self *class.Instance) bool {
	ok, _ := class.PrivateValue[bool](self, privRendered)
	return ok
}

// Destroyed reports whether destroy completed.
func Destroyed(self *class.Instance) bool {
	ok, _ := class.PrivateValue[bool](self, privDestroyed)
	return ok
}

// Hidden reports whether the view is hidden.
func Hidden(self *class.Instance) bool {
	h, _ := class.Value[bool](self, ConfigHidden)
	return h
}

// Disabled reports whether the view is disabled.
func Disabled(self *class.Instance) bool {
	d, _ := class.Value[bool](self, ConfigDisabled)
	return d
}
