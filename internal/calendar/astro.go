package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	lunar "github.com/6tail/lunar-go/calendar"
	"github.com/h0rv/qimen/internal/domain"
)

// Supported range of moments. Terms also serves the year on either side,
// since Assemble reads the neighbouring years of every moment.
const (
	MinYear = 1900
	MaxYear = 2100
)

// almanacNames maps the term keys of the lunar-go table to TermNames. The
// table uses simplified characters, and pinyin keys for the terms that spill
// into the neighbouring year.
var almanacNames = map[string]string{
	"小寒": "小寒", "大寒": "大寒", "立春": "立春", "雨水": "雨水",
	"惊蛰": "驚蟄", "春分": "春分", "清明": "清明", "谷雨": "穀雨",
	"立夏": "立夏", "小满": "小滿", "芒种": "芒種", "夏至": "夏至",
	"小暑": "小暑", "大暑": "大暑", "立秋": "立秋", "处暑": "處暑",
	"白露": "白露", "秋分": "秋分", "寒露": "寒露", "霜降": "霜降",
	"立冬": "立冬", "小雪": "小雪", "大雪": "大雪", "冬至": "冬至",
	"DA_XUE": "大雪", "DONG_ZHI": "冬至", "XIAO_HAN": "小寒", "DA_HAN": "大寒",
	"LI_CHUN": "立春", "YU_SHUI": "雨水", "JING_ZHE": "驚蟄",
}

// Astro is a Provider backed by the lunar-go almanac, whose term instants
// come from the 寿星 high-precision solar theory.
type Astro struct {
	mu    sync.Mutex
	cache map[int][]Term
}

// NewAstro returns the built-in astronomical provider.
func NewAstro() *Astro {
	return &Astro{cache: make(map[int][]Term)}
}

// Terms returns the 24 solar terms starting in the given Gregorian year.
func (a *Astro) Terms(ctx context.Context, year int) ([]Term, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if year < MinYear-1 || year > MaxYear+1 {
		return nil, fmt.Errorf("%w: year %d not in [%d, %d]", ErrOutOfRange, year, MinYear-1, MaxYear+1)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if ts, ok := a.cache[year]; ok {
		return append([]Term(nil), ts...), nil
	}

	ts, err := almanacTerms(year)
	if err != nil {
		return nil, err
	}
	a.cache[year] = ts
	return append([]Term(nil), ts...), nil
}

// Pillars returns the calendar snapshot of t.
func (a *Astro) Pillars(ctx context.Context, t time.Time) (Snapshot, error) {
	if y := t.In(domain.ChinaStandardTime).Year(); y < MinYear || y > MaxYear {
		return Snapshot{}, fmt.Errorf("%w: year %d not in [%d, %d]", ErrOutOfRange, y, MinYear, MaxYear)
	}
	return Assemble(ctx, a, t)
}

// almanacTerms collects the terms of year from the term tables of the lunar
// years starting in year and year+1, which together span it.
func almanacTerms(year int) ([]Term, error) {
	starts := make(map[string]time.Time, len(TermNames))
	for _, y := range []int{year, year + 1} {
		table := lunar.NewSolarFromYmd(y, 7, 1).GetLunar().GetJieQiTable()
		for key, s := range table {
			name, ok := almanacNames[key]
			if !ok {
				continue
			}
			at := time.Date(s.GetYear(), time.Month(s.GetMonth()), s.GetDay(),
				s.GetHour(), s.GetMinute(), s.GetSecond(), 0, domain.ChinaStandardTime)
			if at.Year() == year {
				starts[name] = at
			}
		}
	}

	ts := make([]Term, len(TermNames))
	for i, name := range TermNames {
		at, ok := starts[name]
		if !ok {
			return nil, fmt.Errorf("almanac has no %s in %d", name, year)
		}
		ts[i] = Term{Index: i, Name: name, Start: at}
	}
	return ts, nil
}
