package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/qimen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestEntry() domain.PalaceEntry {
	return domain.PalaceEntry{
		Palace:     8,
		Trigram:    "艮",
		HeavenStem: "辛",
		EarthStem:  "辛",
		Star:       "任",
		Gate:       "景",
		Deity:      "玄武",
		Void:       true,
		Horse:      true,
	}
}

func TestDetailModel_Content(t *testing.T) {
	m := NewDetailModel(createTestEntry(), "2024-01-14 23:20 時家 陽遁五局下元")
	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	view := model.View()

	for _, want := range []string{"艮宮 8", "陽遁五局下元", "東北", "辛", "天任", "景門", "玄武", "旬空", "驛馬"} {
		assert.Contains(t, view, want)
	}
}

func TestDetailModel_Wraps(t *testing.T) {
	m := NewDetailModel(createTestEntry(), "")
	model, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 80})
	detail := model.(DetailModel)

	for _, line := range strings.Split(detail.viewport.View(), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), detail.viewport.Width)
	}
}

func TestDetailModel_SkipsEmptyFields(t *testing.T) {
	m := NewDetailModel(domain.PalaceEntry{Palace: 5, Trigram: "中", EarthStem: "戊", Star: "禽"}, "")
	view := m.View()

	assert.Contains(t, view, "地盤")
	assert.NotContains(t, view, "天盤")
	assert.NotContains(t, view, "八門")
	assert.NotContains(t, view, "旬空")
}

func TestDetailModel_Close(t *testing.T) {
	m := NewDetailModel(createTestEntry(), "")

	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyEnter},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
	} {
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd)
		assert.IsType(t, closeDetailMsg{}, cmd())
	}
}
