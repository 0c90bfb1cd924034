// Package store provides the in-memory session state of the chart browser.
// It tracks the moment cursor, method, view and selected palace, keeps an undo
// stack of cursor moves and caches computed charts, following the "deep
// modules" principle - simple interface hiding the calendar stepping logic.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/h0rv/qimen/internal/domain"
	"github.com/h0rv/qimen/internal/qimen"
)

var (
	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrInvalidPalace indicates a palace number outside 1-9.
	ErrInvalidPalace = errors.New("invalid palace")
	// ErrChartNotCached indicates no chart has been cached for the current cursor.
	ErrChartNotCached = errors.New("chart not cached")
)

// View is the chart variant shown for the cursor.
type View int

const (
	ViewHour View = iota
	ViewMinute
	ViewDay
)

var viewLabels = [3]string{"時家", "刻家", "日家"}

// String returns the traditional name of the view.
func (v View) String() string {
	if v < ViewHour || v > ViewDay {
		return ""
	}
	return viewLabels[v]
}

// Unit is a step size for moving the cursor.
type Unit int

const (
	// Ke steps by ten minutes, the span of one 刻 pillar.
	Ke Unit = iota
	// Hour steps by two hours, the span of one 時 pillar.
	Hour
	Day
)

func (u Unit) duration() time.Duration {
	switch u {
	case Ke:
		return 10 * time.Minute
	case Hour:
		return 2 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// grid is the Lo Shu layout used for palace navigation.
var grid = [3][3]int{
	{4, 9, 2},
	{3, 5, 7},
	{8, 1, 6},
}

type state struct {
	moment domain.Moment
	method domain.Method
}

type cacheKey struct {
	moment domain.Moment
	method domain.Method
}

// Store manages the state of one browsing session.
type Store struct {
	// Cursor
	moment   domain.Moment
	method   domain.Method
	view     View
	selected int

	// Undo stack of previous cursors
	undo []state

	// Chart cache: cursor -> charts
	charts map[cacheKey]domain.Overall
}

// New creates a Store positioned at m with the given method.
// Returns an error if m is not a valid moment or method is unknown.
func New(m domain.Moment, method domain.Method) (*Store, error) {
	if err := qimen.ValidateMoment(m); err != nil {
		return nil, err
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %d", qimen.ErrInvalidMethod, method)
	}
	return &Store{
		moment:   m,
		method:   method,
		selected: 5,
		charts:   make(map[cacheKey]domain.Overall),
	}, nil
}

// Moment returns the cursor moment.
func (s *Store) Moment() domain.Moment {
	return s.moment
}

// Method returns the active bureau method.
func (s *Store) Method() domain.Method {
	return s.method
}

// View returns the active chart view.
func (s *Store) View() View {
	return s.view
}

// SetMoment moves the cursor to m, recording the previous cursor for Undo.
func (s *Store) SetMoment(m domain.Moment) error {
	if err := qimen.ValidateMoment(m); err != nil {
		return err
	}
	if m == s.moment {
		return nil
	}
	s.push()
	s.moment = m
	return nil
}

// Step moves the cursor by n units; negative n moves backwards.
func (s *Store) Step(u Unit, n int) {
	if n == 0 {
		return
	}
	s.push()
	s.moment = domain.MomentOf(s.moment.Time().Add(time.Duration(n) * u.duration()))
}

// ToggleMethod switches between 拆補 and 置閏.
func (s *Store) ToggleMethod() domain.Method {
	s.push()
	if s.method == domain.PatchMethod {
		s.method = domain.IntercalaryMethod
	} else {
		s.method = domain.PatchMethod
	}
	return s.method
}

// CycleView advances to the next view, wrapping after the day chart.
func (s *Store) CycleView() View {
	s.view = (s.view + 1) % 3
	return s.view
}

// SetView selects a view directly.
func (s *Store) SetView(v View) {
	if v >= ViewHour && v <= ViewDay {
		s.view = v
	}
}

// Undo restores the cursor that preceded the last move or method change.
func (s *Store) Undo() error {
	if len(s.undo) == 0 {
		return ErrNothingToUndo
	}
	last := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.moment = last.moment
	s.method = last.method
	return nil
}

// CanUndo reports whether Undo has anything to restore.
func (s *Store) CanUndo() bool {
	return len(s.undo) > 0
}

func (s *Store) push() {
	s.undo = append(s.undo, state{moment: s.moment, method: s.method})
}

// Selected returns the selected palace number.
func (s *Store) Selected() int {
	return s.selected
}

// SelectPalace selects palace n (1-9).
func (s *Store) SelectPalace(n int) error {
	if n < 1 || n > 9 {
		return fmt.Errorf("%w: %d", ErrInvalidPalace, n)
	}
	s.selected = n
	return nil
}

// MoveSelection moves the selection across the Lo Shu grid by the given row
// and column offsets, stopping at the edges.
func (s *Store) MoveSelection(dRow, dCol int) int {
	row, col := position(s.selected)
	row = clamp(row+dRow, 0, 2)
	col = clamp(col+dCol, 0, 2)
	s.selected = grid[row][col]
	return s.selected
}

func position(palace int) (row, col int) {
	for r := range grid {
		for c := range grid[r] {
			if grid[r][c] == palace {
				return r, c
			}
		}
	}
	return 1, 1
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// CacheCharts stores the charts computed for moment m under method.
func (s *Store) CacheCharts(m domain.Moment, method domain.Method, o domain.Overall) {
	s.charts[cacheKey{moment: m, method: method}] = o
}

// Charts returns the cached charts of the current cursor, or
// ErrChartNotCached if they have not been computed yet.
func (s *Store) Charts() (domain.Overall, error) {
	o, ok := s.charts[cacheKey{moment: s.moment, method: s.method}]
	if !ok {
		return domain.Overall{}, fmt.Errorf("%w: %s", ErrChartNotCached, s.moment)
	}
	return o, nil
}

// SelectedEntry returns the selected palace of the current view's board.
func (s *Store) SelectedEntry() (domain.PalaceEntry, error) {
	o, err := s.Charts()
	if err != nil {
		return domain.PalaceEntry{}, err
	}
	switch s.view {
	case ViewMinute:
		return o.Minute.Board.Palace(s.selected), nil
	case ViewDay:
		return o.Day.Board.Palace(s.selected), nil
	default:
		return o.Hour.Board.Palace(s.selected), nil
	}
}

// Clear drops the chart cache and undo history, preserving the cursor.
func (s *Store) Clear() {
	s.charts = make(map[cacheKey]domain.Overall)
	s.undo = nil
}
