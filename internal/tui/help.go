package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

var (
	// HelpOverlayStyle frames the key reference.
	HelpOverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		MarginTop(1)
)

// HelpModel wraps the bubbles help component.
type HelpModel struct {
	help   help.Model
	keymap KeyMap
}

// NewHelpModel creates a new help overlay model.
func NewHelpModel(keymap KeyMap) HelpModel {
	h := help.New()
	h.ShowAll = true

	return HelpModel{
		help:   h,
		keymap: keymap,
	}
}

// View renders the full key reference.
func (m HelpModel) View(width int) string {
	m.help.Width = width - 8 // padding and border
	body := TitleStyle.Render("Keys") + "\n" + m.help.View(m.keymap)
	return HelpOverlayStyle.Render(body)
}

// ShortView renders the one-line hint shown under the chart.
func (m HelpModel) ShortView() string {
	m.help.ShowAll = false
	return m.help.View(m.keymap)
}
