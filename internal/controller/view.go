package controller

import (
	"github.com/llehouerou/tracklet/internal/class"
)

// Config keys of the view mixin.
const (
	ConfigViewNs = "viewNs"
	ConfigView   = "view"
	ConfigNoView = "noView"
)

// DefaultViewNs prefixes view suffixes.
const DefaultViewNs = "app.view"

const privViewCache = "view.cache"

func viewDescriptor() class.Descriptor {
	return class.Descriptor{
		Configs: map[string]any{
			ConfigViewNs: DefaultViewNs,
			ConfigView:   nil,
			ConfigNoView: true,
		},
		Methods: map[string]class.Method{
			class.MethodInit: viewInit,
			"findView": func(self *class.Instance, args ...any) any {
				if len(args) == 0 {
					return nil
				}
				query, _ := args[0].(string)
				skip := false
				if len(args) > 1 {
					skip, _ = args[1].(bool)
				}
				if v, ok := FindView(self, query, skip); ok {
					return v
				}
				return nil
			},
			class.MethodDestroy: viewDestroy,
		},
	}
}

func viewNs(self *class.Instance) string {
	if ns, ok := class.Value[string](self, ConfigViewNs); ok {
		return ns
	}
	return DefaultViewNs
}

func ownsView(self *class.Instance) bool {
	noView, _ := class.Value[bool](self, ConfigNoView)
	return !noView
}

// viewInit creates the controlled view unless noView is set. With noView
// the view is expected to be assigned from outside.
func viewInit(self *class.Instance, _ ...any) any {
	self.SetPrivate(privViewCache, map[string]*class.Instance{})
	if !ownsView(self) {
		return nil
	}

	entry := self.Get(ConfigView)
	if entry == nil {
		return nil
	}
	if _, ok := entry.(*class.Instance); ok {
		return nil
	}
	suffix, cfg, ok := class.ParseEntry(entry)
	if !ok {
		self.Report(class.KindConfig, class.MethodInit,
			"invalid view %v of controller %q", entry, self.ClassName())
		return nil
	}
	v, err := self.Registry().Create(class.Join(viewNs(self), suffix), cfg)
	if err != nil {
		self.Report(class.KindConfig, class.MethodInit,
			"cannot create view %q of controller %q: %v", suffix, self.ClassName(), err)
		return nil
	}
	self.Set(ConfigView, v)
	return nil
}

func viewDestroy(self *class.Instance, _ ...any) any {
	if !ownsView(self) {
		return nil
	}
	v, ok := class.Value[*class.Instance](self, ConfigView)
	if !ok || v == nil {
		return nil
	}
	v.Call(class.MethodDestroy)
	self.Set(ConfigView, nil)
	self.SetPrivate(privViewCache, map[string]*class.Instance{})
	return nil
}

// View returns the controlled view.
func View(self *class.Instance) (*class.Instance, bool) {
	v, ok := class.Value[*class.Instance](self, ConfigView)
	return v, ok && v != nil
}

// FindView resolves query against the controlled view. Successful
// resolutions are cached per query string; skipCache forces a new walk.
// The cache is not invalidated when the view tree changes.
func FindView(self *class.Instance, query string, skipCache bool) (*class.Instance, bool) {
	root, ok := View(self)
	if !ok || query == "" {
		return nil, false
	}

	cache, _ := class.PrivateValue[map[string]*class.Instance](self, privViewCache)
	if cache == nil {
		cache = map[string]*class.Instance{}
		self.SetPrivate(privViewCache, cache)
	}
	if !skipCache {
		if v, ok := cache[query]; ok {
			return v, true
		}
	}

	found := Find(ParseQuery(query), []Node{InstanceNode(root)}, viewNs(self))
	if found == nil {
		return nil, false
	}
	v, ok := Instance(found)
	if !ok {
		return nil, false
	}
	cache[query] = v
	return v, true
}

// RequireView is FindView for wiring code that cannot continue without
// the view. A missing view is reported as a config diagnostic.
func RequireView(self *class.Instance, query string) (*class.Instance, bool) {
	v, ok := FindView(self, query, false)
	if !ok {
		self.Report(class.KindConfig, "findView", "view %q not found in controller %q", query, self.ClassName())
	}
	return v, ok
}
