package ju

import (
	"errors"
	"fmt"

	"github.com/h0rv/qimen/internal/calendar"
	"github.com/h0rv/qimen/internal/domain"
)

// ErrNoAnchor indicates no solstice anchor precedes the requested day.
var ErrNoAnchor = errors.New("no solstice anchor before day")

// Day-chart series: three 60-day blocks after each solstice anchor.
var (
	winterSeries = [3]int{1, 7, 4}
	summerSeries = [3]int{9, 3, 6}
)

// blockDays is the length of one day-chart block, a full sexagenary cycle.
const blockDays = 60

// Anchor is the 甲子 day nearest a solstice.
type Anchor struct {
	DayNum   int
	Polarity domain.Polarity
}

// Anchors returns the day-chart anchors of every solstice in terms, ascending.
func Anchors(terms []calendar.Term) []Anchor {
	var out []Anchor
	for _, t := range terms {
		var pol domain.Polarity
		switch t.Index {
		case calendar.WinterSolstice:
			pol = domain.Yang
		case calendar.SummerSolstice:
			pol = domain.Yin
		default:
			continue
		}
		out = append(out, Anchor{DayNum: nearestJiaZi(calendar.ChartDay(t.Start)), Polarity: pol})
	}
	return out
}

// DayBureau returns the day-chart bureau of the day dayNum. The latest anchor
// at or before the day opens the series; days past the third block repeat it.
func DayBureau(dayNum int, terms []calendar.Term) (domain.Bureau, error) {
	var (
		anchor Anchor
		found  bool
	)
	for _, a := range Anchors(terms) {
		if a.DayNum <= dayNum && (!found || a.DayNum > anchor.DayNum) {
			anchor, found = a, true
		}
	}
	if !found {
		return domain.Bureau{}, fmt.Errorf("%w: day %d", ErrNoAnchor, dayNum)
	}

	block := (dayNum - anchor.DayNum) / blockDays
	if block > 2 {
		block = 2
	}
	series := winterSeries
	if anchor.Polarity == domain.Yin {
		series = summerSeries
	}
	return domain.Bureau{
		Number:   series[block],
		Polarity: anchor.Polarity,
		Yuan:     domain.Yuan(block),
	}, nil
}

// nearestJiaZi returns the 甲子 day closest to dayNum, preferring the earlier
// one on a tie.
func nearestJiaZi(dayNum int) int {
	offset := calendar.DayPillarOf(dayNum).Index()
	if offset <= blockDays/2 {
		return dayNum - offset
	}
	return dayNum + blockDays - offset
}
