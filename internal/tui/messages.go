// Package tui provides Bubble Tea models for the interactive chart browser.
package tui

import (
	"github.com/h0rv/qimen/internal/domain"
	"github.com/h0rv/qimen/internal/persistence"
)

// HistorySelectedMsg is emitted when the user picks a saved chart.
type HistorySelectedMsg struct {
	Record persistence.Record
}

// ErrorMsg is emitted when an error occurs.
type ErrorMsg struct {
	Err error
}

// QuitMsg is emitted when the user requests to quit.
type QuitMsg struct{}

// Custom messages for screen transitions.
type (
	chartsLoadedMsg struct {
		moment  domain.Moment
		method  domain.Method
		overall domain.Overall
		err     error
	}

	chartSavedMsg struct {
		record persistence.Record
		err    error
	}

	historyLoadedMsg struct {
		records []persistence.Record
		err     error
	}

	openDetailMsg struct {
		entry domain.PalaceEntry
		title string
	}

	openHistoryMsg  struct{}
	closeHistoryMsg struct{}
	closeDetailMsg  struct{}
)
