package qimen

import (
	"github.com/h0rv/qimen/internal/board"
	"github.com/h0rv/qimen/internal/calendar"
	"github.com/h0rv/qimen/internal/domain"
	"github.com/h0rv/qimen/internal/ganzhi"
	"github.com/h0rv/qimen/internal/ju"
)

// nobles holds the day and night 天乙貴人 branch of each day stem:
// 甲戊庚 丑未, 乙己 子申, 丙丁 亥酉, 辛 午寅, 壬癸 卯巳.
var nobles = [10][2]ganzhi.Branch{
	{1, 7},  // 甲
	{0, 8},  // 乙
	{11, 9}, // 丙
	{11, 9}, // 丁
	{1, 7},  // 戊
	{0, 8},  // 己
	{1, 7},  // 庚
	{6, 2},  // 辛
	{3, 5},  // 壬
	{3, 5},  // 癸
}

// cycleEpoch is the first year of the current 180-year 三元 cycle (甲子 1864).
const cycleEpoch = 1864

// Tianyi returns the 天乙貴人 of the moment. The day noble governs the hours
// 卯 through 申; the night noble the rest.
func (e *Engine) Tianyi() domain.Tianyi {
	hb := e.snap.Hour.Branch()
	daytime := hb >= 3 && hb <= 8

	pair := nobles[e.snap.Day.Stem()]
	b := pair[1]
	if daytime {
		b = pair[0]
	}
	palace := board.BranchPalace(b)
	return domain.Tianyi{
		Branch:    b.String(),
		Palace:    palace,
		Direction: board.Direction(palace),
		Daytime:   daytime,
	}
}

// YearOrigin places the moment's solar year (opened by 立春) in the 180-year
// 三元九運 cycle.
func (e *Engine) YearOrigin() domain.YearOrigin {
	year := SolarYear(e.snap)
	idx := (year - cycleEpoch) % 180
	if idx < 0 {
		idx += 180
	}
	return domain.YearOrigin{
		Index:  idx,
		Yuan:   domain.Yuan(idx / 60),
		Period: idx/20 + 1,
		Pillar: e.snap.Year.String(),
	}
}

// BureauDayLabel returns the 符頭 of the day with its yuan, e.g. 甲申中元.
func (e *Engine) BureauDayLabel() string {
	return ju.HeadLabel(e.snap.Day)
}

// SolarYear returns the Gregorian number of the solar year in snap.
func SolarYear(snap calendar.Snapshot) int {
	year := snap.Instant.In(domain.ChinaStandardTime).Year()
	if ganzhi.YearPillar(year) != snap.Year {
		return year - 1
	}
	return year
}
