package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/qimen/internal/calendar"
	"github.com/h0rv/qimen/internal/domain"
	"github.com/h0rv/qimen/internal/persistence"
	"github.com/h0rv/qimen/internal/store"
	"go.uber.org/zap"
)

// historyLimit caps the number of saved charts offered in the picker.
const historyLimit = 100

// Journal is the chart store the browser saves to and reopens from.
type Journal interface {
	Save(ctx context.Context, r persistence.Record) (persistence.Record, error)
	List(ctx context.Context, limit int) ([]persistence.Record, error)
}

// AppScreen represents the different screens in the application flow.
type AppScreen int

const (
	ScreenBoard AppScreen = iota
	ScreenDetail
	ScreenLoading
	ScreenHistory
)

// AppModel is the root Bubble Tea model that manages screen transitions.
// The chart board is the home screen; palace detail and the history picker
// return to it when closed.
type AppModel struct {
	// Dependencies
	store   *store.Store
	journal Journal
	ctx     context.Context

	// Current state
	currentScreen AppScreen
	currentModel  tea.Model
	err           error
	loadingMsg    string

	// Cached board to preserve state across screen transitions
	boardModel *BoardModel
}

// NewAppModel creates the browser positioned at the store's cursor.
// journal may be nil.
func NewAppModel(s *store.Store, provider calendar.Provider, journal Journal, ctx context.Context, logger *zap.Logger) AppModel {
	// A nil *persistence.Journal must not become a non-nil interface.
	if j, ok := journal.(*persistence.Journal); ok && j == nil {
		journal = nil
	}
	board := NewBoardModel(s, provider, journal, ctx, logger)
	return AppModel{
		store:         s,
		journal:       journal,
		ctx:           ctx,
		currentScreen: ScreenBoard,
		currentModel:  board,
		boardModel:    &board,
	}
}

// Init initializes the app model.
func (m AppModel) Init() tea.Cmd {
	return m.boardModel.Init()
}

// Update handles messages and transitions between screens.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.err != nil {
			m.err = nil
			return m.showBoard()
		}

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case openDetailMsg:
		m.currentScreen = ScreenDetail
		detail := NewDetailModel(msg.entry, msg.title)
		m.currentModel = detail
		return m, detail.Init()

	case closeDetailMsg, closeHistoryMsg:
		return m.showBoard()

	case openHistoryMsg:
		m.currentScreen = ScreenLoading
		m.loadingMsg = "Loading saved charts..."
		m.currentModel = nil
		return m, m.loadHistory()

	case historyLoadedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("failed to load history: %w", msg.err)
			return m, nil
		}
		m.currentScreen = ScreenHistory
		picker := NewHistoryPickerModel(msg.records)
		m.currentModel = picker
		return m, picker.Init()

	case HistorySelectedMsg:
		moment, err := domain.ParseMoment(msg.Record.Moment)
		if err != nil {
			m.err = err
			return m, nil
		}
		if err := m.store.SetMoment(moment); err != nil {
			m.err = err
			return m, nil
		}
		if domain.Method(msg.Record.Method) != m.store.Method() {
			m.store.ToggleMethod()
		}
		m.store.SetView(viewOf(msg.Record.Kind))
		next, load := m.boardModel.refresh()
		bm := next.(BoardModel)
		m.boardModel = &bm
		shown, cmd := m.showBoard()
		return shown, tea.Batch(cmd, load)

	case chartsLoadedMsg, spinner.TickMsg:
		// Chart results and spinner ticks belong to the board whichever screen is up.
		next, cmd := m.boardModel.Update(msg)
		bm := next.(BoardModel)
		m.boardModel = &bm
		if m.currentScreen == ScreenBoard {
			m.currentModel = bm
		}
		return m, cmd
	}

	// Delegate to current screen's model
	if m.currentModel != nil {
		var cmd tea.Cmd
		m.currentModel, cmd = m.currentModel.Update(msg)
		// Keep boardModel in sync when on board screen
		if bm, ok := m.currentModel.(BoardModel); ok {
			m.boardModel = &bm
		}
		return m, cmd
	}

	return m, nil
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("Error: %v\n\nPress any key to return, Ctrl+C to quit", m.err))
	}

	if m.currentModel != nil {
		return m.currentModel.View()
	}

	return m.loadingMsg + "\n\nPress Ctrl+C to quit"
}

// showBoard returns to the cached chart board.
func (m AppModel) showBoard() (tea.Model, tea.Cmd) {
	m.currentScreen = ScreenBoard
	m.currentModel = *m.boardModel
	// Request window size to ensure proper rendering
	return m, tea.WindowSize()
}

// loadHistory creates a command to list the saved charts.
func (m AppModel) loadHistory() tea.Cmd {
	return func() tea.Msg {
		if m.journal == nil {
			return historyLoadedMsg{err: fmt.Errorf("journal is disabled")}
		}
		records, err := m.journal.List(m.ctx, historyLimit)
		return historyLoadedMsg{records: records, err: err}
	}
}

func viewOf(kind string) store.View {
	switch kind {
	case persistence.KindMinute:
		return store.ViewMinute
	case persistence.KindDay:
		return store.ViewDay
	default:
		return store.ViewHour
	}
}
