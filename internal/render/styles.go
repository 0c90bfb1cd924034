package render

import "github.com/charmbracelet/lipgloss"

var (
	// HeaderStyle is used for the chart summary above the grid.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")) // Purple

	// LabelStyle is used for field names in the summary.
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")) // Dark gray

	// CellStyle frames one palace of the grid.
	CellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Width(14).
			Padding(0, 1)

	// LeadCellStyle frames the palace holding the lead star.
	LeadCellStyle = CellStyle.
			BorderForeground(lipgloss.Color("170")) // Light purple

	// DeityStyle is used for the deity line of a palace.
	DeityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")) // Light blue

	// MarkerStyle is used for the void and horse markers.
	MarkerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // Red

	// TableHeaderStyle is used for the header row of listings.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62")).
				Padding(0, 1)

	// TableCellStyle is used for the body cells of listings.
	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// TableBorderStyle colours the rules between listing cells.
	TableBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("238"))
)
