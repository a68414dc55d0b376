package app

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tracklet/internal/ui/styles"
)

// Prompt is the one-line text input shown under the player. It
// implements player.Prompter: the answer callback runs when the user
// presses enter, and never when the prompt is dismissed with esc.
type Prompt struct {
	input  textinput.Model
	label  string
	done   func(value string)
	active bool
}

// NewPrompt creates a closed prompt.
func NewPrompt() *Prompt {
	ti := textinput.New()
	ti.Placeholder = "/path/to/track.mp3"
	ti.CharLimit = 1024
	ti.Width = 50
	return &Prompt{input: ti}
}

// Prompt opens the input with an empty value.
func (p *Prompt) Prompt(label string, done func(value string)) {
	p.label = label
	p.done = done
	p.active = true
	p.input.SetValue("")
	p.input.Focus()
}

// Active reports whether the prompt is waiting for an answer.
func (p *Prompt) Active() bool {
	return p.active
}

// Update handles a key while the prompt is open.
func (p *Prompt) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		p.close()
		return nil
	case "enter":
		done, value := p.done, p.input.Value()
		p.close()
		if done != nil {
			done(value)
		}
		return nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *Prompt) close() {
	p.active = false
	p.done = nil
	p.input.Blur()
}

// View renders the prompt, or "" when it is closed.
func (p *Prompt) View() string {
	if !p.active {
		return ""
	}
	return styles.T().S().Title.Render(p.label+":") + " " + p.input.View()
}
