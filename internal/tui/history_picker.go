package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/qimen/internal/domain"
	"github.com/h0rv/qimen/internal/persistence"
)

// recordItem wraps a journal record for use in bubbles/list.
type recordItem struct {
	record persistence.Record
}

func (i recordItem) FilterValue() string {
	return i.record.Moment + " " + i.record.Bureau
}

func (i recordItem) Title() string {
	return fmt.Sprintf("%s  %s", i.record.Moment, i.record.Bureau)
}

func (i recordItem) Description() string {
	method := domain.Method(i.record.Method).Label()
	return fmt.Sprintf("%s chart, %s, saved %s", i.record.Kind, method, i.record.CreatedAt.Local().Format("2006-01-02 15:04"))
}

// recordDelegate is a custom item delegate for journal records.
type recordDelegate struct{}

func (d recordDelegate) Height() int                             { return 2 }
func (d recordDelegate) Spacing() int                            { return 1 }
func (d recordDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d recordDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(recordItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.Title())
	desc := i.Description()

	if index == m.Index() {
		fmt.Fprint(w, SelectedItemStyle.Render("> "+str))
		fmt.Fprint(w, "\n  "+NormalItemStyle.Render(desc))
	} else {
		fmt.Fprint(w, NormalItemStyle.Render("  "+str))
		fmt.Fprint(w, "\n  "+DimStyle.Render(desc))
	}
}

// HistoryPickerModel lists saved charts for the user to reopen.
type HistoryPickerModel struct {
	list list.Model
	err  error
}

// NewHistoryPickerModel creates a new HistoryPickerModel.
func NewHistoryPickerModel(records []persistence.Record) HistoryPickerModel {
	items := make([]list.Item, len(records))
	for i, r := range records {
		items[i] = recordItem{record: r}
	}

	l := list.New(items, recordDelegate{}, 80, 20)
	l.Title = "Saved Charts"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = TitleStyle

	return HistoryPickerModel{
		list: l,
	}
}

// Init initializes the model.
func (m HistoryPickerModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages and updates the model state.
func (m HistoryPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width - 2)
		m.list.SetHeight(msg.Height - 2)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c":
			return m, func() tea.Msg { return QuitMsg{} }
		case "q", "esc":
			return m, func() tea.Msg { return closeHistoryMsg{} }
		case "enter":
			if item, ok := m.list.SelectedItem().(recordItem); ok {
				return m, func() tea.Msg {
					return HistorySelectedMsg{Record: item.record}
				}
			}
		}

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the model.
func (m HistoryPickerModel) View() string {
	view := m.list.View()

	if m.err != nil {
		view += ErrorStyle.Render(fmt.Sprintf("\nError: %v", m.err))
	}

	return view
}
