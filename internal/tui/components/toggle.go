package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/vehtax/internal/tui/tuistyles"
)

// Toggle is a focusable choice between a fixed set of options
type Toggle struct {
	Key       string
	Label     string
	Options   []string
	Selected  int
	IsFocused bool
}

// NewToggle creates a toggle with the first option selected
func NewToggle(key, label string, options ...string) *Toggle {
	return &Toggle{Key: key, Label: label, Options: options}
}

// NewSwitch creates a two-state off/on toggle
func NewSwitch(key, label string, on bool) *Toggle {
	t := NewToggle(key, label, "no", "yes")
	t.SetOn(on)
	return t
}

// Next selects the following option, wrapping around
func (t *Toggle) Next() {
	if len(t.Options) == 0 {
		return
	}
	t.Selected = (t.Selected + 1) % len(t.Options)
}

// Prev selects the preceding option, wrapping around
func (t *Toggle) Prev() {
	if len(t.Options) == 0 {
		return
	}
	t.Selected = (t.Selected - 1 + len(t.Options)) % len(t.Options)
}

// Value returns the selected option
func (t *Toggle) Value() string {
	if t.Selected < 0 || t.Selected >= len(t.Options) {
		return ""
	}
	return t.Options[t.Selected]
}

// Select picks the option with the given value; unknown values are ignored
func (t *Toggle) Select(value string) {
	for i, o := range t.Options {
		if o == value {
			t.Selected = i
			return
		}
	}
}

// On reports whether a switch is in its second state
func (t *Toggle) On() bool { return t.Selected == 1 }

// SetOn sets a switch state
func (t *Toggle) SetOn(on bool) {
	if on {
		t.Selected = 1
	} else {
		t.Selected = 0
	}
}

// SetFocused sets the focus state
func (t *Toggle) SetFocused(focused bool) *Toggle {
	t.IsFocused = focused
	return t
}

// Render returns the label and the options, the selected one highlighted
func (t *Toggle) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	if t.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
	}

	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(tuistyles.ColorAccent).
		Background(tuistyles.ColorBorder)
	optionStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(tuistyles.ColorMuted)

	parts := make([]string, len(t.Options))
	for i, o := range t.Options {
		if i == t.Selected {
			parts[i] = selectedStyle.Render(o)
		} else {
			parts[i] = optionStyle.Render(o)
		}
	}

	return labelStyle.Render(t.Label) + "  " + strings.Join(parts, " ")
}
