package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/qimen/internal/calendar"
	"github.com/h0rv/qimen/internal/domain"
	"github.com/h0rv/qimen/internal/persistence"
	"github.com/h0rv/qimen/internal/qimen"
	"github.com/h0rv/qimen/internal/render"
	"github.com/h0rv/qimen/internal/store"
	"github.com/pkg/browser"
	"go.uber.org/zap"
)

// termArticleBase is where the solar term reference articles live.
const termArticleBase = "https://zh.wikipedia.org/wiki/"

// openURL is swapped out in tests.
var openURL = browser.OpenURL

// grid is the Lo Shu layout of the palaces, south at the top.
var grid = [3][3]int{
	{4, 9, 2},
	{3, 5, 7},
	{8, 1, 6},
}

// BoardModel shows the nine palaces of the chart under the cursor.
type BoardModel struct {
	// Dependencies
	store    *store.Store
	provider calendar.Provider
	journal  Journal
	ctx      context.Context
	logger   *zap.Logger
	now      func() time.Time

	// UI components
	keymap  KeyMap
	help    HelpModel
	spinner spinner.Model

	// View state
	width      int
	height     int
	showHelp   bool
	loading    bool
	errorToast string
	toast      string
}

// NewBoardModel creates a new chart board. journal may be nil, in which
// case saving and history are disabled.
func NewBoardModel(s *store.Store, provider calendar.Provider, journal Journal, ctx context.Context, logger *zap.Logger) BoardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	if logger == nil {
		logger = zap.NewNop()
	}

	return BoardModel{
		store:    s,
		provider: provider,
		journal:  journal,
		ctx:      ctx,
		logger:   logger,
		now:      time.Now,
		keymap:   DefaultKeyMap(),
		help:     NewHelpModel(DefaultKeyMap()),
		spinner:  sp,
	}
}

// Init computes the charts of the starting cursor.
func (m BoardModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tea.WindowSize(),
		m.loadCharts(),
	)
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case chartsLoadedMsg:
		if msg.err != nil {
			m.loading = false
			m.errorToast = fmt.Sprintf("Chart failed: %v", msg.err)
			return m, nil
		}
		m.store.CacheCharts(msg.moment, msg.method, msg.overall)
		if msg.moment == m.store.Moment() && msg.method == m.store.Method() {
			m.loading = false
		}
		return m, nil

	case chartSavedMsg:
		if msg.err != nil {
			m.errorToast = fmt.Sprintf("Save failed: %v", msg.err)
			return m, nil
		}
		m.toast = "Saved " + msg.record.Kind + " chart " + msg.record.Moment
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m BoardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Help overlay
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "q" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	m.errorToast = ""
	m.toast = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "h", "left":
		m.store.MoveSelection(0, -1)
	case "l", "right":
		m.store.MoveSelection(0, 1)
	case "k", "up":
		m.store.MoveSelection(-1, 0)
	case "j", "down":
		m.store.MoveSelection(1, 0)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		_ = m.store.SelectPalace(int(msg.Runes[0] - '0'))
	case "+", "=":
		m.store.Step(store.Ke, 1)
		return m.refresh()
	case "-":
		m.store.Step(store.Ke, -1)
		return m.refresh()
	case "]":
		m.store.Step(store.Hour, 1)
		return m.refresh()
	case "[":
		m.store.Step(store.Hour, -1)
		return m.refresh()
	case "}":
		m.store.Step(store.Day, 1)
		return m.refresh()
	case "{":
		m.store.Step(store.Day, -1)
		return m.refresh()
	case ".":
		if err := m.store.SetMoment(domain.MomentOf(m.now())); err != nil {
			m.errorToast = err.Error()
			return m, nil
		}
		return m.refresh()
	case "u":
		if err := m.store.Undo(); err != nil {
			m.errorToast = err.Error()
			return m, nil
		}
		return m.refresh()
	case "m":
		m.store.ToggleMethod()
		return m.refresh()
	case "v", "tab":
		m.store.CycleView()
	case "o":
		if o, err := m.store.Charts(); err == nil {
			_ = openURL(termURL(o.Hour.SolarTerm.Name))
		}
	case "s":
		return m, m.saveChart()
	case "H":
		if m.journal == nil {
			m.errorToast = "Journal is disabled"
			return m, nil
		}
		return m, func() tea.Msg { return openHistoryMsg{} }
	case "enter":
		entry, err := m.store.SelectedEntry()
		if err != nil {
			return m, nil
		}
		return m, func() tea.Msg { return openDetailMsg{entry: entry, title: m.title()} }
	}

	return m, nil
}

// refresh loads the charts of the cursor if they are not cached yet.
func (m BoardModel) refresh() (tea.Model, tea.Cmd) {
	cmd := m.loadCharts()
	m.loading = cmd != nil
	return m, cmd
}

// View renders the chart board
func (m BoardModel) View() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	if m.showHelp {
		return m.help.View(width)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	o, err := m.store.Charts()
	switch {
	case err == nil:
		b.WriteString(m.renderSummary(o))
		b.WriteString("\n")
		b.WriteString(m.renderGrid(o))
	case m.loading:
		b.WriteString(m.spinner.View() + " Casting chart...")
	default:
		b.WriteString(DimStyle.Render("No chart"))
	}
	b.WriteString("\n")

	switch {
	case m.errorToast != "":
		b.WriteString(ErrorStyle.Render(m.errorToast))
	case m.toast != "":
		b.WriteString(ToastStyle.Render(m.toast))
	case m.loading && err == nil:
		b.WriteString(m.spinner.View())
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortView())
	return b.String()
}

func (m BoardModel) renderHeader() string {
	parts := []string{
		TitleStyle.Render("奇門遁甲"),
		m.store.Moment().String(),
		BadgeStyle.Render(m.store.Method().Label()),
		BadgeStyle.Render(m.store.View().String()),
	}
	return strings.Join(parts, " ")
}

func (m BoardModel) renderSummary(o domain.Overall) string {
	if m.store.View() == store.ViewDay {
		c := o.Day
		return fmt.Sprintf("%s  %s  %s  空%s",
			TitleStyle.Render("金函玉鏡 "+c.BureauLabel()),
			c.GanZhi.String(),
			c.SolarTerm.Name,
			c.Void[0]+c.Void[1],
		)
	}
	c := m.rotating(o)
	return fmt.Sprintf("%s  %s %s刻  %s  空%s  值符%s 值使%s",
		TitleStyle.Render(c.BureauLabel()),
		c.GanZhi.String(),
		c.GanZhi.Minute,
		c.SolarTerm.Name,
		c.Void[0]+c.Void[1],
		c.LeadStar,
		c.LeadGate,
	)
}

func (m BoardModel) renderGrid(o domain.Overall) string {
	board, cell, lead := o.Day.Board, render.DayCell, ""
	if m.store.View() != store.ViewDay {
		c := m.rotating(o)
		board, cell, lead = c.Board, render.RotatingCell, c.LeadStar
	}

	rows := make([]string, 0, len(grid))
	for _, row := range grid {
		cells := make([]string, 0, len(row))
		for _, n := range row {
			e := board.Palace(n)
			style := PalaceStyle
			if lead != "" && e.Star == lead && n != 5 {
				style = LeadPalaceStyle
			}
			if n == m.store.Selected() {
				style = SelectedPalaceStyle
			}
			cells = append(cells, style.Render(strings.Join(cell(e), "\n")))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m BoardModel) rotating(o domain.Overall) domain.HourChart {
	if m.store.View() == store.ViewMinute {
		return o.Minute.HourChart
	}
	return o.Hour
}

// title names the chart under the cursor, e.g. "2024-01-14 23:20 時家 陽遁五局下元".
func (m BoardModel) title() string {
	o, err := m.store.Charts()
	if err != nil {
		return m.store.Moment().String()
	}
	label := m.rotating(o).BureauLabel()
	if m.store.View() == store.ViewDay {
		label = o.Day.BureauLabel()
	}
	return fmt.Sprintf("%s %s %s", m.store.Moment(), m.store.View(), label)
}

// loadCharts computes the charts of the cursor. Returns nil when they are
// already cached.
func (m BoardModel) loadCharts() tea.Cmd {
	if _, err := m.store.Charts(); err == nil {
		return nil
	}
	moment, method := m.store.Moment(), m.store.Method()
	return func() tea.Msg {
		e, err := qimen.New(m.ctx, m.provider, moment, qimen.WithLogger(m.logger))
		if err != nil {
			return chartsLoadedMsg{moment: moment, method: method, err: err}
		}
		o, err := e.Overall(method)
		return chartsLoadedMsg{moment: moment, method: method, overall: o, err: err}
	}
}

// saveChart writes the chart of the current view to the journal.
func (m BoardModel) saveChart() tea.Cmd {
	if m.journal == nil {
		return func() tea.Msg { return chartSavedMsg{err: errors.New("journal is disabled")} }
	}
	o, err := m.store.Charts()
	if err != nil {
		return func() tea.Msg { return chartSavedMsg{err: err} }
	}

	moment, method := m.store.Moment(), m.store.Method()
	var (
		kind   string
		bureau string
		chart  any
	)
	switch m.store.View() {
	case store.ViewDay:
		kind, bureau, chart = persistence.KindDay, o.Day.BureauLabel(), o.Day
	case store.ViewMinute:
		kind, bureau, chart = persistence.KindMinute, o.Minute.BureauLabel(), o.Minute
	default:
		kind, bureau, chart = persistence.KindHour, o.Hour.BureauLabel(), o.Hour
	}

	return func() tea.Msg {
		r, err := persistence.NewRecord(moment, method, kind, bureau, chart)
		if err != nil {
			return chartSavedMsg{err: err}
		}
		saved, err := m.journal.Save(m.ctx, r)
		return chartSavedMsg{record: saved, err: err}
	}
}

// termURL returns the reference article of a solar term.
func termURL(name string) string {
	return termArticleBase + url.PathEscape(name)
}
