package controller

import (
	"github.com/llehouerou/tracklet/internal/class"
)

// Config keys of the nested controller mixin.
const (
	ConfigControllerNs = "controllerNs"
	ConfigControllers  = "controllers"
)

// DefaultControllerNs prefixes nested controller suffixes.
const DefaultControllerNs = "app.controller"

func nestedDescriptor() class.Descriptor {
	return class.Descriptor{
		Configs: map[string]any{
			ConfigControllerNs: DefaultControllerNs,
			ConfigControllers:  []any{},
		},
		Methods: map[string]class.Method{
			class.MethodInit: nestedInit,
			"findController": func(self *class.Instance, args ...any) any {
				if len(args) == 0 {
					return nil
				}
				if c, ok := FindController(self, args[0]); ok {
					return c
				}
				return nil
			},
			"runControllers": func(self *class.Instance, _ ...any) any {
				RunControllers(self)
				return nil
			},
			class.MethodDestroy: nestedDestroy,
		},
	}
}

func controllerNs(self *class.Instance) string {
	if ns, ok := class.Value[string](self, ConfigControllerNs); ok {
		return ns
	}
	return DefaultControllerNs
}

// nestedInit builds the children from the declarative list and stores
// them in place of it. Bad entries are reported and skipped.
func nestedInit(self *class.Instance, _ ...any) any {
	ns := controllerNs(self)
	entries := class.EntryList(self.Get(ConfigControllers))
	children := make([]*class.Instance, 0, len(entries))

	for _, entry := range entries {
		suffix, cfg, ok := class.ParseEntry(entry)
		if !ok {
			self.Report(class.KindConfig, class.MethodInit,
				"invalid nested controller %v of controller %q, skipped", entry, self.ClassName())
			continue
		}
		child, err := self.Registry().Create(class.Join(ns, suffix), cfg)
		if err != nil {
			self.Report(class.KindConfig, class.MethodInit,
				"cannot create nested controller %q of controller %q: %v", suffix, self.ClassName(), err)
			continue
		}
		children = append(children, child)
	}

	self.Set(ConfigControllers, children)
	return nil
}

// Children returns the nested controllers built by init.
func Children(self *class.Instance) []*class.Instance {
	children, _ := class.Value[[]*class.Instance](self, ConfigControllers)
	return children
}

// FindController looks a nested controller up by suffix (relative to
// controllerNs) or by index.
func FindController(self *class.Instance, id any) (*class.Instance, bool) {
	children := Children(self)
	switch key := id.(type) {
	case string:
		ns := controllerNs(self)
		for _, c := range children {
			if class.Suffix(c.ClassName(), ns) == key {
				return c, true
			}
		}
	case int:
		if key >= 0 && key < len(children) {
			return children[key], true
		}
	}
	return nil, false
}

// RunControllers runs every nested controller in declaration order.
func RunControllers(self *class.Instance) {
	for _, c := range Children(self) {
		Run(c)
	}
}

func nestedDestroy(self *class.Instance, _ ...any) any {
	for _, c := range Children(self) {
		Destroy(c)
	}
	self.Set(ConfigControllers, nil)
	return nil
}
