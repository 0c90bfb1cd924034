// Package render turns charts into text grids and structured encodings.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/qimen/internal/domain"
)

// layout is the Lo Shu arrangement of the palaces, south at the top.
var layout = [3][3]int{
	{4, 9, 2},
	{3, 5, 7},
	{8, 1, 6},
}

// HourText renders an hour or minute chart: a summary followed by the grid.
func HourText(c domain.HourChart) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%s %s  %s", c.Moment, c.Method, c.BureauLabel())))
	b.WriteString("\n")
	b.WriteString(field("干支", c.GanZhi.String()+" "+c.GanZhi.Minute+"刻"))
	b.WriteString(field("節氣", c.SolarTerm.Name))
	b.WriteString(field("旬首", c.DecadHead))
	b.WriteString(field("旬空", c.Void[0]+c.Void[1]))
	b.WriteString(field("局日", c.BureauDay))
	b.WriteString(field("值符", c.LeadStar))
	b.WriteString(field("值使", c.LeadGate))
	b.WriteString(Grid(c.Board, RotatingCell, c.LeadStar))
	return b.String()
}

// DayText renders a 金函玉鏡 day chart.
func DayText(c domain.DayChart) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%s 金函玉鏡  %s", c.Moment, c.BureauLabel())))
	b.WriteString("\n")
	b.WriteString(field("干支", c.GanZhi.String()))
	b.WriteString(field("節氣", c.SolarTerm.Name))
	b.WriteString(field("旬空", c.Void[0]+c.Void[1]))
	b.WriteString(Grid(c.Board, DayCell, ""))
	return b.String()
}

// OverallText renders the three charts one after another.
func OverallText(o domain.Overall) string {
	return strings.Join([]string{
		DayText(o.Day),
		HourText(o.Hour),
		HourText(o.Minute.HourChart),
	}, "\n\n")
}

// Grid lays the nine palaces out in Lo Shu order. The palace whose first
// star matches lead is highlighted.
func Grid(board domain.Board, cell func(domain.PalaceEntry) []string, lead string) string {
	rows := make([]string, 0, len(layout))
	for _, row := range layout {
		cells := make([]string, 0, len(row))
		for _, n := range row {
			e := board.Palace(n)
			style := CellStyle
			if lead != "" && e.Star == lead && n != 5 {
				style = LeadCellStyle
			}
			cells = append(cells, style.Render(strings.Join(cell(e), "\n")))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RotatingCell lists the lines of an hour or minute chart palace.
func RotatingCell(e domain.PalaceEntry) []string {
	return []string{
		DeityStyle.Render(e.Deity),
		strings.TrimSpace(e.Star + " " + e.HeavenStem + e.LodgedStem),
		strings.TrimSpace(e.Gate + " " + e.EarthStem),
		footer(e),
	}
}

// DayCell lists the lines of a day chart palace.
func DayCell(e domain.PalaceEntry) []string {
	return []string{e.Star, e.Gate, footer(e)}
}

func footer(e domain.PalaceEntry) string {
	s := fmt.Sprintf("%s%d", e.Trigram, e.Palace)
	var marks []string
	if e.Void {
		marks = append(marks, "空")
	}
	if e.Horse {
		marks = append(marks, "馬")
	}
	if len(marks) > 0 {
		s += " " + MarkerStyle.Render(strings.Join(marks, ""))
	}
	return s
}

func field(label, value string) string {
	return LabelStyle.Render(label+": ") + value + "\n"
}
