package tui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle is used for screen titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")) // Purple

	// SelectedItemStyle is used for highlighted list items.
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")). // Light purple
				Bold(true)

	// NormalItemStyle is used for non-selected items.
	NormalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light gray

	// DimStyle is used for secondary text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")) // Dark gray

	// ErrorStyle is used for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// ToastStyle is used for transient status messages.
	ToastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")) // Green

	// PalaceStyle frames one palace of the grid.
	PalaceStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Width(14).
			Padding(0, 1)

	// SelectedPalaceStyle frames the selected palace.
	SelectedPalaceStyle = PalaceStyle.
				BorderForeground(lipgloss.Color("205")) // Pink

	// LeadPalaceStyle frames the palace holding the lead star.
	LeadPalaceStyle = PalaceStyle.
			BorderForeground(lipgloss.Color("170"))

	// BadgeStyle is used for the method and view badges in the header.
	BadgeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)
)
