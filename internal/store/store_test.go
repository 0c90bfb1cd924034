package store

import (
	"testing"

	"github.com/h0rv/qimen/internal/domain"
	"github.com/h0rv/qimen/internal/qimen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test fixtures
func createTestMoment() domain.Moment {
	return domain.Moment{Year: 2024, Month: 1, Day: 14, Hour: 23, Minute: 20}
}

func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(createTestMoment(), domain.PatchMethod)
	require.NoError(t, err)
	return s
}

func createTestOverall() domain.Overall {
	var o domain.Overall
	for n := 1; n <= 9; n++ {
		o.Hour.Board.Set(n, domain.PalaceEntry{Palace: n, Star: "hour"})
		o.Minute.Board.Set(n, domain.PalaceEntry{Palace: n, Star: "minute"})
		o.Day.Board.Set(n, domain.PalaceEntry{Palace: n, Star: "day"})
	}
	return o
}

func TestNew(t *testing.T) {
	s := createTestStore(t)

	assert.Equal(t, createTestMoment(), s.Moment())
	assert.Equal(t, domain.PatchMethod, s.Method())
	assert.Equal(t, ViewHour, s.View())
	assert.Equal(t, 5, s.Selected())
	assert.False(t, s.CanUndo())
}

func TestNew_Invalid(t *testing.T) {
	t.Run("bad moment", func(t *testing.T) {
		_, err := New(domain.Moment{Year: 2024, Month: 2, Day: 30}, domain.PatchMethod)
		assert.ErrorIs(t, err, qimen.ErrInvalidMoment)
	})

	t.Run("bad method", func(t *testing.T) {
		_, err := New(createTestMoment(), domain.Method(3))
		assert.ErrorIs(t, err, qimen.ErrInvalidMethod)
	})
}

func TestStep(t *testing.T) {
	tests := []struct {
		name string
		unit Unit
		n    int
		want domain.Moment
	}{
		{"ke forward", Ke, 1, domain.Moment{Year: 2024, Month: 1, Day: 14, Hour: 23, Minute: 30}},
		{"ke back", Ke, -3, domain.Moment{Year: 2024, Month: 1, Day: 14, Hour: 22, Minute: 50}},
		{"hour across midnight", Hour, 1, domain.Moment{Year: 2024, Month: 1, Day: 15, Hour: 1, Minute: 20}},
		{"day back across month", Day, -14, domain.Moment{Year: 2023, Month: 12, Day: 31, Hour: 23, Minute: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := createTestStore(t)
			s.Step(tt.unit, tt.n)
			assert.Equal(t, tt.want, s.Moment())
			assert.True(t, s.CanUndo())
		})
	}
}

func TestStep_Zero(t *testing.T) {
	s := createTestStore(t)
	s.Step(Hour, 0)

	assert.Equal(t, createTestMoment(), s.Moment())
	assert.False(t, s.CanUndo())
}

func TestSetMoment(t *testing.T) {
	s := createTestStore(t)
	target := domain.Moment{Year: 2024, Month: 6, Day: 15, Hour: 12}

	require.NoError(t, s.SetMoment(target))
	assert.Equal(t, target, s.Moment())

	err := s.SetMoment(domain.Moment{Year: 2024, Month: 13, Day: 1})
	assert.ErrorIs(t, err, qimen.ErrInvalidMoment)
	assert.Equal(t, target, s.Moment(), "invalid moment leaves the cursor alone")

	// Same moment is not an undoable move.
	require.NoError(t, s.SetMoment(target))
	require.NoError(t, s.Undo())
	assert.False(t, s.CanUndo())
}

func TestToggleMethod(t *testing.T) {
	s := createTestStore(t)

	assert.Equal(t, domain.IntercalaryMethod, s.ToggleMethod())
	assert.Equal(t, domain.PatchMethod, s.ToggleMethod())
	assert.Equal(t, domain.PatchMethod, s.Method())
}

func TestUndo(t *testing.T) {
	s := createTestStore(t)

	s.Step(Hour, 1)
	s.ToggleMethod()
	s.Step(Day, 1)

	require.NoError(t, s.Undo())
	assert.Equal(t, domain.IntercalaryMethod, s.Method())
	assert.Equal(t, 15, s.Moment().Day)

	require.NoError(t, s.Undo())
	assert.Equal(t, domain.PatchMethod, s.Method())

	require.NoError(t, s.Undo())
	assert.Equal(t, createTestMoment(), s.Moment())

	assert.ErrorIs(t, s.Undo(), ErrNothingToUndo)
}

func TestCycleView(t *testing.T) {
	s := createTestStore(t)

	assert.Equal(t, ViewMinute, s.CycleView())
	assert.Equal(t, ViewDay, s.CycleView())
	assert.Equal(t, ViewHour, s.CycleView())

	s.SetView(ViewDay)
	assert.Equal(t, ViewDay, s.View())
	s.SetView(View(7))
	assert.Equal(t, ViewDay, s.View())

	assert.Equal(t, "刻家", ViewMinute.String())
	assert.Empty(t, View(-1).String())
}

func TestSelection(t *testing.T) {
	s := createTestStore(t)

	t.Run("moves across the grid", func(t *testing.T) {
		assert.Equal(t, 9, s.MoveSelection(-1, 0))
		assert.Equal(t, 2, s.MoveSelection(0, 1))
		assert.Equal(t, 7, s.MoveSelection(1, 0))
		assert.Equal(t, 6, s.MoveSelection(1, 0))
	})

	t.Run("stops at the edges", func(t *testing.T) {
		assert.Equal(t, 6, s.MoveSelection(1, 1))
		assert.Equal(t, 8, s.MoveSelection(0, -5))
	})

	t.Run("direct selection", func(t *testing.T) {
		require.NoError(t, s.SelectPalace(3))
		assert.Equal(t, 3, s.Selected())
		assert.ErrorIs(t, s.SelectPalace(0), ErrInvalidPalace)
		assert.ErrorIs(t, s.SelectPalace(10), ErrInvalidPalace)
		assert.Equal(t, 3, s.Selected())
	})
}

func TestCharts(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Charts()
	assert.ErrorIs(t, err, ErrChartNotCached)

	s.CacheCharts(s.Moment(), s.Method(), createTestOverall())
	_, err = s.Charts()
	require.NoError(t, err)

	t.Run("cache is keyed by method", func(t *testing.T) {
		s.ToggleMethod()
		_, err := s.Charts()
		assert.ErrorIs(t, err, ErrChartNotCached)
		require.NoError(t, s.Undo())
	})

	t.Run("selected entry follows the view", func(t *testing.T) {
		require.NoError(t, s.SelectPalace(2))

		e, err := s.SelectedEntry()
		require.NoError(t, err)
		assert.Equal(t, 2, e.Palace)
		assert.Equal(t, "hour", e.Star)

		s.SetView(ViewMinute)
		e, err = s.SelectedEntry()
		require.NoError(t, err)
		assert.Equal(t, "minute", e.Star)

		s.SetView(ViewDay)
		e, err = s.SelectedEntry()
		require.NoError(t, err)
		assert.Equal(t, "day", e.Star)
	})
}

func TestClear(t *testing.T) {
	s := createTestStore(t)
	s.CacheCharts(s.Moment(), s.Method(), createTestOverall())
	s.Step(Hour, 1)

	s.Clear()

	assert.False(t, s.CanUndo())
	assert.Equal(t, 1, s.Moment().Hour)
	s.Step(Hour, -1)
	_, err := s.Charts()
	assert.ErrorIs(t, err, ErrChartNotCached)
}
