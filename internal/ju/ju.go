// Package ju selects the bureau (局) a chart is built on.
//
// Hour and minute charts take their bureau from the governing solar term and
// the yuan of the day; the term is either the calendar term (拆補) or the term
// aligned to the Upper-Yuan head day (置閏). Day charts use a 180-day series
// anchored at the 甲子 day nearest each solstice.
package ju

import (
	"errors"
	"fmt"
	"time"

	"github.com/h0rv/qimen/internal/calendar"
	"github.com/h0rv/qimen/internal/domain"
	"github.com/h0rv/qimen/internal/ganzhi"
)

var (
	// ErrInvalidMethod indicates a method other than 拆補 or 置閏.
	ErrInvalidMethod = errors.New("invalid bureau method")
	// ErrNoTerms indicates the input carries no solar terms to choose from.
	ErrNoTerms = errors.New("no solar terms")
)

// numbers holds the upper, middle and lower bureau of every term, indexed like
// calendar.TermNames.
var numbers = [24][3]int{
	{2, 8, 5}, // 小寒
	{3, 9, 6}, // 大寒
	{8, 5, 2}, // 立春
	{9, 6, 3}, // 雨水
	{1, 7, 4}, // 驚蟄
	{3, 9, 6}, // 春分
	{4, 1, 7}, // 清明
	{5, 2, 8}, // 穀雨
	{4, 1, 7}, // 立夏
	{5, 2, 8}, // 小滿
	{6, 3, 9}, // 芒種
	{9, 3, 6}, // 夏至
	{8, 2, 5}, // 小暑
	{7, 1, 4}, // 大暑
	{2, 5, 8}, // 立秋
	{1, 4, 7}, // 處暑
	{9, 3, 6}, // 白露
	{7, 1, 4}, // 秋分
	{6, 9, 3}, // 寒露
	{5, 8, 2}, // 霜降
	{6, 9, 3}, // 立冬
	{5, 8, 2}, // 小雪
	{4, 7, 1}, // 大雪
	{1, 7, 4}, // 冬至
}

// Input is what bureau selection needs to know about a moment.
type Input struct {
	Day     ganzhi.Pillar   // day pillar
	DayNum  int             // Julian Day Number of the charted day
	Instant time.Time       // the moment itself
	Term    calendar.Term   // calendar term active at Instant
	Terms   []calendar.Term // candidate terms, ascending
}

// InputOf extracts the selection input from a calendar snapshot.
func InputOf(snap calendar.Snapshot) Input {
	return Input{
		Day:     snap.Day,
		DayNum:  calendar.ChartDay(snap.Instant),
		Instant: snap.Instant,
		Term:    snap.Term,
		Terms:   snap.Terms,
	}
}

// Selection is a chosen bureau together with the term that governs it.
type Selection struct {
	Bureau domain.Bureau
	Term   calendar.Term
}

// Select returns the bureau of in under method.
func Select(in Input, method domain.Method) (Selection, error) {
	var term calendar.Term
	switch method {
	case domain.PatchMethod:
		term = in.Term
	case domain.IntercalaryMethod:
		t, err := alignedTerm(in)
		if err != nil {
			return Selection{}, err
		}
		term = t
	default:
		return Selection{}, fmt.Errorf("%w: %d", ErrInvalidMethod, method)
	}

	yuan := YuanOf(in.Day)
	return Selection{
		Bureau: domain.Bureau{
			Number:   numbers[term.Index][yuan],
			Polarity: PolarityOf(term.Index),
			Yuan:     yuan,
		},
		Term: term,
	}, nil
}

// PolarityOf returns 陽遁 for the terms 冬至 through 芒種 and 陰遁 otherwise.
func PolarityOf(termIndex int) domain.Polarity {
	if termIndex == calendar.WinterSolstice || termIndex < calendar.SummerSolstice {
		return domain.Yang
	}
	return domain.Yin
}

// YuanOf returns the yuan of a day: its five-day band in the fifteen-day
// window opened by the 甲子, 甲午, 己卯 and 己酉 heads.
func YuanOf(day ganzhi.Pillar) domain.Yuan {
	return domain.Yuan(day.Index() % 15 / 5)
}

// HeadDay returns the 符頭 of a day: the latest 甲 or 己 day at or before it.
func HeadDay(day ganzhi.Pillar) ganzhi.Pillar {
	return day.Add(-(day.Index() % 5))
}

// HeadLabel formats the 符頭 with the day's yuan, e.g. 甲申中元.
func HeadLabel(day ganzhi.Pillar) string {
	return HeadDay(day).String() + YuanOf(day).Label()
}

// alignedTerm returns the term whose start lies nearest to noon of the
// Upper-Yuan head day of in.Day's window.
func alignedTerm(in Input) (calendar.Term, error) {
	if len(in.Terms) == 0 {
		return calendar.Term{}, ErrNoTerms
	}
	head := calendar.Noon(in.DayNum - in.Day.Index()%15)

	best := in.Terms[0]
	bestGap := absDuration(best.Start.Sub(head))
	for _, t := range in.Terms[1:] {
		if gap := absDuration(t.Start.Sub(head)); gap < bestGap {
			best, bestGap = t, gap
		}
	}
	return best, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
