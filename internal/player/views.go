package player

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tracklet/internal/class"
	"github.com/llehouerou/tracklet/internal/ui/styles"
	"github.com/llehouerou/tracklet/internal/view"
)

const privToggled = "button.toggled"

func viewMixins() []class.MixinBinding {
	return []class.MixinBinding{
		{Key: view.ShowKey, Class: view.ShowMixin},
		{Key: view.EnableKey, Class: view.EnableMixin},
	}
}

func buttonDescriptor() class.Descriptor {
	return class.Descriptor{
		Extend: view.BaseClass,
		Mixins: viewMixins(),
		Configs: map[string]any{
			ConfigTitle:    "",
			ConfigBtnClass: "button",
		},
		Methods: map[string]class.Method{
			MethodClick: func(self *class.Instance, _ ...any) any {
				if view.Disabled(self) {
					return false
				}
				self.Trigger(EventClick, self)
				return true
			},
			view.MethodTemplate: func(self *class.Instance, _ ...any) any {
				title, _ := class.Value[string](self, ConfigTitle)
				cls, _ := class.Value[string](self, ConfigBtnClass)
				if view.Disabled(self) {
					cls, _ = class.Value[string](self, view.ConfigDisableCls)
				}
				return styles.T().S().Button(cls).Render(title)
			},
		},
	}
}

func addButtonDescriptor() class.Descriptor {
	return class.Descriptor{
		Extend: ButtonClass,
		Configs: map[string]any{
			ConfigTitle:    "+ Add track",
			ConfigBtnClass: "add-button",
		},
	}
}

func toggleButtonDescriptor() class.Descriptor {
	return class.Descriptor{
		Extend: ButtonClass,
		Configs: map[string]any{
			ConfigTitle:    "Rating",
			ConfigBtnClass: "toggle-button",
		},
		Methods: map[string]class.Method{
			MethodClick: func(self *class.Instance, _ ...any) any {
				if view.Disabled(self) {
					return false
				}
				self.SetPrivate(privToggled, !Toggled(self))
				return self.CallParent()
			},
			view.MethodTemplate: func(self *class.Instance, _ ...any) any {
				title, _ := class.Value[string](self, ConfigTitle)
				cls, _ := class.Value[string](self, ConfigBtnClass)
				switch {
				case view.Disabled(self):
					cls, _ = class.Value[string](self, view.ConfigDisableCls)
				case Toggled(self):
					cls += "-on"
				}
				return styles.T().S().Button(cls).Render(title)
			},
		},
	}
}

// Toggled reports whether a toggle button is switched on.
func Toggled(btn *class.Instance) bool {
	on, _ := class.PrivateValue[bool](btn, privToggled)
	return on
}

// Click presses a button. Disabled buttons ignore it.
func Click(btn *class.Instance) bool {
	ok, _ := btn.Call(MethodClick).(bool)
	return ok
}

func containerDescriptor() class.Descriptor {
	return class.Descriptor{
		Extend: view.BaseClass,
		Mixins: viewMixins(),
		Configs: map[string]any{
			ConfigTitle:     "tracklet",
			view.ConfigItems: []any{"player.ControlPanel", "player.PlaylistContainer"},
		},
		Methods: map[string]class.Method{
			view.MethodTemplate: func(self *class.Instance, _ ...any) any {
				title, _ := class.Value[string](self, ConfigTitle)
				body, _ := self.CallParent().(string)
				return lipgloss.JoinVertical(lipgloss.Left, styles.T().Heading(title), body)
			},
		},
	}
}

func playlistContainerDescriptor() class.Descriptor {
	return class.Descriptor{
		Extend: view.BaseClass,
		Mixins: viewMixins(),
		Configs: map[string]any{
			view.ConfigItems: []any{"player.PlaylistGrid", "player.AddButton", "player.ToggleButton"},
		},
		Methods: map[string]class.Method{
			// the grid on top, the buttons in one row below it
			view.MethodTemplate: func(self *class.Instance, _ ...any) any {
				var grid string
				var buttons []string
				for _, item := range view.Items(self) {
					if view.Hidden(item) {
						continue
					}
					if item.Class().IsA(GridClass) {
						grid = view.Output(item)
						continue
					}
					buttons = append(buttons, view.Output(item))
				}
				row := lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
				return styles.T().S().Panel.Render(lipgloss.JoinVertical(lipgloss.Left, grid, row))
			},
		},
	}
}
