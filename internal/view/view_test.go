package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tracklet/internal/class"
	"github.com/llehouerou/tracklet/internal/controller"
)

func text(s string) class.Method {
	return func(*class.Instance, ...any) any { return s }
}

func newRegistry(t *testing.T) *class.Registry {
	t.Helper()
	r := class.NewRegistry()
	require.NoError(t, controller.Register(r))
	require.NoError(t, Register(r))

	defs := map[string]class.Descriptor{
		"app.view.Label": {
			Extend: BaseClass,
			Mixins: []class.MixinBinding{{Key: ShowKey, Class: ShowMixin}, {Key: EnableKey, Class: EnableMixin}},
			Methods: map[string]class.Method{
				MethodTemplate: func(self *class.Instance, _ ...any) any {
					s, _ := class.Value[string](self, "text")
					return s
				},
			},
		},
		"app.view.Panel": {
			Extend: BaseClass,
			Mixins: []class.MixinBinding{{Key: ShowKey, Class: ShowMixin}, {Key: EnableKey, Class: EnableMixin}},
			Configs: map[string]any{
				ConfigItems: []any{
					map[string]any{"cl": "Label", "text": "one"},
					map[string]any{"cl": "Label", "text": "two", "id": "second"},
				},
			},
		},
	}
	for name, d := range defs {
		_, err := r.Define(name, d)
		require.NoError(t, err)
	}
	return r
}

func TestView_CreatesItems(t *testing.T) {
	r := newRegistry(t)
	panel, err := r.Create("app.view.Panel", nil)
	require.NoError(t, err)

	items := Items(panel)
	require.Len(t, items, 2)
	assert.Equal(t, "app.view.Label", items[0].ClassName())
	assert.Equal(t, "second", items[1].Get(ConfigID))
}

func TestView_BadItemsAreSkipped(t *testing.T) {
	r := newRegistry(t)
	panel, err := r.New("app.view.Panel", map[string]any{
		ConfigItems: []any{"Nope", 7, "Label"},
	})
	require.NoError(t, err)
	errs := 0
	panel.On(class.EventError, func(...any) { errs++ })

	panel.Call(class.MethodInit)

	assert.Equal(t, 2, errs)
	assert.Len(t, Items(panel), 1)
}

func TestView_RenderJoinsChildren(t *testing.T) {
	r := newRegistry(t)
	panel, err := r.Create("app.view.Panel", nil)
	require.NoError(t, err)

	assert.False(t, Rendered(panel))
	require.True(t, Render(panel))

	assert.True(t, Rendered(panel))
	assert.True(t, Rendered(Items(panel)[0]), "children render first")
	assert.Equal(t, "one\ntwo", Output(panel))
}

func TestView_AutoRender(t *testing.T) {
	r := newRegistry(t)
	label, err := r.Create("app.view.Label", map[string]any{ConfigAutoRender: true, "text": "hi"})
	require.NoError(t, err)

	assert.True(t, Rendered(label))
	assert.Equal(t, "hi", Output(label))
}

func TestView_RenderVeto(t *testing.T) {
	r := newRegistry(t)
	_, err := r.Define("app.view.Shy", class.Descriptor{
		Extend: BaseClass,
		Methods: map[string]class.Method{
			HookBeforeRender: func(*class.Instance, ...any) any { return controller.Abort },
			MethodTemplate:   text("never"),
		},
	})
	require.NoError(t, err)
	shy, err := r.Create("app.view.Shy", nil)
	require.NoError(t, err)

	assert.False(t, Render(shy))
	assert.False(t, Rendered(shy))
	assert.Empty(t, Output(shy))
}

func TestView_RenderEvents(t *testing.T) {
	r := newRegistry(t)
	label, err := r.Create("app.view.Label", map[string]any{"text": "x"})
	require.NoError(t, err)

	var events []string
	label.On(EventBeforeRender, func(...any) { events = append(events, "before") })
	label.On(EventRender, func(...any) { events = append(events, "after") })

	Render(label)
	Render(label)

	assert.Equal(t, []string{"before", "after", "before", "after"}, events)
}

func TestView_DestroyCascades(t *testing.T) {
	r := newRegistry(t)
	panel, err := r.Create("app.view.Panel", nil)
	require.NoError(t, err)
	items := Items(panel)
	Render(panel)

	clicks := 0
	items[0].On("click", func(...any) { clicks++ })

	require.Equal(t, true, panel.Call(class.MethodDestroy))

	for _, item := range items {
		assert.True(t, Destroyed(item))
	}
	items[0].Trigger("click")
	assert.Zero(t, clicks)
	assert.False(t, Rendered(panel))
	assert.Nil(t, Items(panel))

	assert.Equal(t, false, panel.Call(class.MethodDestroy), "second destroy is refused")
	assert.False(t, Render(panel), "destroyed views do not render")
}

func TestView_ShowHide(t *testing.T) {
	r := newRegistry(t)
	panel, err := r.Create("app.view.Panel", nil)
	require.NoError(t, err)

	misuse := 0
	panel.On(class.EventDebug, func(...any) { misuse++ })
	assert.False(t, Hide(panel), "not rendered yet")
	assert.Equal(t, 1, misuse)

	Render(panel)
	require.True(t, Hide(panel))
	assert.True(t, Hidden(panel))
	for _, item := range Items(panel) {
		assert.True(t, Hidden(item))
	}

	Render(panel)
	assert.Empty(t, Output(panel), "hidden children are left out")

	require.True(t, Show(panel))
	Render(panel)
	assert.Equal(t, "one\ntwo", Output(panel))
}

func TestView_HideVeto(t *testing.T) {
	r := newRegistry(t)
	_, err := r.Define("app.view.Sticky", class.Descriptor{
		Extend: BaseClass,
		Mixins: []class.MixinBinding{{Key: ShowKey, Class: ShowMixin}},
		Methods: map[string]class.Method{
			"onBeforeHide": func(*class.Instance, ...any) any { return controller.Abort },
		},
	})
	require.NoError(t, err)
	sticky, err := r.Create("app.view.Sticky", map[string]any{ConfigAutoRender: true})
	require.NoError(t, err)

	assert.False(t, Hide(sticky))
	assert.False(t, Hidden(sticky))
	assert.True(t, Show(sticky))
}

func TestView_EnableDisable(t *testing.T) {
	r := newRegistry(t)
	panel, err := r.Create("app.view.Panel", map[string]any{ConfigAutoRender: true})
	require.NoError(t, err)

	var events []string
	panel.On("beforedisable", func(...any) { events = append(events, "beforedisable") })
	panel.On("disable", func(...any) { events = append(events, "disable") })

	require.True(t, Disable(panel))
	assert.True(t, Disabled(panel))
	assert.True(t, Disabled(Items(panel)[1]))
	assert.Equal(t, []string{"beforedisable", "disable"}, events)
	assert.Equal(t, "disabled", panel.Get(ConfigDisableCls))

	require.True(t, Enable(panel))
	assert.False(t, Disabled(Items(panel)[0]))
}
