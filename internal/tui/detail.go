package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/qimen/internal/board"
	"github.com/h0rv/qimen/internal/domain"
	"github.com/muesli/reflow/wordwrap"
)

// Layout constants
const (
	headerHeight = 2
	footerHeight = 1
	borderSize   = 2 // Top + bottom border
	minWrapWidth = 30
)

// Detail view styles
var (
	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	detailLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	detailValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	scrollIndicatorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205"))
)

// glossary gives a short reading of every star, gate and deity.
var glossary = map[string]string{
	// 九星
	"蓬": "天蓬, the water star of Kan. Boldness and hidden risk; favours bold ventures, warns against theft.",
	"芮": "天芮, the earth star of Kun. Illness and learning; favours study, unfavourable for the sick.",
	"沖": "天沖, the wood star of Zhen. Swift action and conflict; good for striking first.",
	"輔": "天輔, the wood star of Xun. Culture and assistance; good for study and petitions.",
	"禽": "天禽, the earth star of the centre. Balance; takes on the character of its host palace.",
	"心": "天心, the metal star of Qian. Medicine and planning; good for healing and strategy.",
	"柱": "天柱, the metal star of Dui. Speech and breakage; good for defence, poor for travel.",
	"任": "天任, the earth star of Gen. Steadiness and property; good for building and trade.",
	"英": "天英, the fire star of Li. Brilliance and display; good for publicity, poor for secrecy.",
	// 八門
	"休": "休門, gate of rest. Auspicious: meetings, reconciliation and recuperation.",
	"生": "生門, gate of life. Auspicious: commerce, growth and property.",
	"傷": "傷門, gate of harm. Inauspicious: suited only to hunting and collecting debts.",
	"杜": "杜門, gate of closure. Neutral: hiding, blocking and keeping secrets.",
	"景": "景門, gate of view. Neutral: documents, examinations and display.",
	"死": "死門, gate of death. Inauspicious: suited to funerals and ending affairs.",
	"驚": "驚門, gate of alarm. Inauspicious: lawsuits, rumours and fright.",
	"開": "開門, gate of opening. Auspicious: new ventures, office and travel.",
	// 八神
	"值符": "值符, the chief deity. Authority and protection; the palace carries the lead.",
	"螣蛇": "螣蛇, the soaring serpent. Illusion, anxiety and strange events.",
	"太陰": "太陰, the great yin. Secret help and quiet plans.",
	"六合": "六合, the six harmonies. Partnership, marriage and mediation.",
	"白虎": "白虎, the white tiger. Force, injury and harsh authority.",
	"玄武": "玄武, the dark warrior. Theft, deception and loss.",
	"九地": "九地, the nine earths. Stability, concealment and patience.",
	"九天": "九天, the nine heavens. Advance, display and bold movement.",
}

// DetailModel shows one palace of the chart with a reading of its contents.
type DetailModel struct {
	entry    domain.PalaceEntry
	title    string
	viewport viewport.Model

	// View dimensions
	width  int
	height int
}

// NewDetailModel creates a new detail view for entry.
func NewDetailModel(entry domain.PalaceEntry, title string) DetailModel {
	vp := viewport.New(60, 10) // Will be resized in WindowSizeMsg
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := DetailModel{
		entry:    entry,
		title:    title,
		viewport: vp,
	}
	m.updateViewportContent()
	return m
}

// Init initializes the detail model
func (m DetailModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeComponents()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// resizeComponents fits the viewport to the window and rewraps the text.
func (m *DetailModel) resizeComponents() {
	m.viewport.Width = max(m.width-borderSize-2, minWrapWidth)
	m.viewport.Height = max(m.height-headerHeight-footerHeight-borderSize, 5)
	m.updateViewportContent()
}

// handleKeyPress processes keyboard input
func (m DetailModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc", "enter":
		return m, func() tea.Msg { return closeDetailMsg{} }
	case "j", "down":
		m.viewport.LineDown(1)
	case "k", "up":
		m.viewport.LineUp(1)
	case "g":
		m.viewport.GotoTop()
	case "G":
		m.viewport.GotoBottom()
	}
	return m, nil
}

// View renders the detail screen
func (m DetailModel) View() string {
	var b strings.Builder
	b.WriteString(detailTitleStyle.Render(fmt.Sprintf("%s宮 %d", m.entry.Trigram, m.entry.Palace)))
	b.WriteString(" ")
	b.WriteString(detailLabelStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(panelBorderStyle.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m DetailModel) renderFooter() string {
	hint := ""
	if m.viewport.TotalLineCount() > m.viewport.Height {
		switch {
		case m.viewport.AtTop():
			hint = " ↓"
		case m.viewport.AtBottom():
			hint = " ↑"
		default:
			hint = " ↕"
		}
	}
	return DimStyle.Render("j/k scroll • esc back") + scrollIndicatorStyle.Render(hint)
}

// updateViewportContent formats the palace for the viewport.
func (m *DetailModel) updateViewportContent() {
	wrapWidth := max(m.viewport.Width-4, minWrapWidth)
	e := m.entry

	var b strings.Builder
	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label + ": "))
		b.WriteString(detailValueStyle.Render(value))
		b.WriteString("\n")
	}

	row("方位", board.Direction(e.Palace))
	row("天盤", e.HeavenStem+e.LodgedStem)
	row("地盤", e.EarthStem)
	row("九星", e.Star)
	row("八門", e.Gate)
	row("八神", e.Deity)

	var marks []string
	if e.Void {
		marks = append(marks, "旬空: the palace is empty this decad; its affairs lack substance.")
	}
	if e.Horse {
		marks = append(marks, "驛馬: the post-horse stands here; movement and travel are indicated.")
	}
	for _, s := range marks {
		b.WriteString("\n")
		b.WriteString(wordwrap.String(s, wrapWidth))
		b.WriteString("\n")
	}

	for _, name := range []string{e.Star, e.Gate, e.Deity} {
		reading, ok := glossary[name]
		if !ok {
			continue
		}
		b.WriteString("\n")
		b.WriteString(wordwrap.String(reading, wrapWidth))
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
}
