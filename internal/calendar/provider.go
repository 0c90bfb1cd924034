// Package calendar supplies the calendar data a chart is built from: the
// sexagesimal pillars of a moment and the 24 solar terms around it.
// Charts only see the Provider interface, so the ephemeris behind it can be
// swapped (built-in astronomy, a static term table, a remote service).
package calendar

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/h0rv/qimen/internal/domain"
	"github.com/h0rv/qimen/internal/ganzhi"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrOutOfRange indicates a date outside the provider's supported range.
	ErrOutOfRange = errors.New("date outside supported calendar range")
	// ErrIncompleteTerms indicates a term table missing terms for a year.
	ErrIncompleteTerms = errors.New("incomplete solar term table")
)

// TermNames lists the 24 solar terms in the order they fall in a Gregorian year.
var TermNames = [24]string{
	"小寒", "大寒", "立春", "雨水", "驚蟄", "春分",
	"清明", "穀雨", "立夏", "小滿", "芒種", "夏至",
	"小暑", "大暑", "立秋", "處暑", "白露", "秋分",
	"寒露", "霜降", "立冬", "小雪", "大雪", "冬至",
}

// Term indexes of the boundaries charts care about.
const (
	LiChun         = 2  // 立春 opens the solar year
	SummerSolstice = 11 // 夏至
	WinterSolstice = 23 // 冬至
)

// TermIndex returns the position of a term name in TermNames.
func TermIndex(name string) (int, bool) {
	for i, n := range TermNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// Term is one solar term occurrence.
type Term struct {
	Index int // position in TermNames
	Name  string
	Start time.Time // instant the sun reaches the term's longitude
}

// Domain converts the term to its domain representation.
func (t Term) Domain() domain.SolarTerm {
	return domain.SolarTerm{Name: t.Name, Start: t.Start.In(domain.ChinaStandardTime)}
}

// Snapshot is everything a chart needs from the calendar for one instant.
type Snapshot struct {
	Instant time.Time
	Year    ganzhi.Pillar // solar year, opened by 立春
	Month   ganzhi.Pillar // solar month, opened by each 節
	Day     ganzhi.Pillar // day; 23:00 opens the next day
	Hour    ganzhi.Pillar
	Ke      ganzhi.Pillar // ten-minute 刻 pillar
	Term    Term          // active term: latest start at or before Instant
	Next    Term          // the following term
	Terms   []Term        // every term of the previous, current and next year, ascending
}

// TermSource yields the 24 terms of a Gregorian year in ascending order.
type TermSource interface {
	Terms(ctx context.Context, year int) ([]Term, error)
}

// Provider is the calendar collaborator charts are built against.
type Provider interface {
	TermSource
	Pillars(ctx context.Context, t time.Time) (Snapshot, error)
}

// Assemble builds a Snapshot for t from the terms of the surrounding years.
// The first error from src is returned unchanged.
func Assemble(ctx context.Context, src TermSource, t time.Time) (Snapshot, error) {
	local := t.In(domain.ChinaStandardTime)
	year := local.Year()

	// Remote sources answer each year with a round trip, so fetch them together.
	var years [3][]Term
	g, gctx := errgroup.WithContext(ctx)
	for i := range years {
		i := i
		y := year - 1 + i
		g.Go(func() error {
			ts, err := src.Terms(gctx, y)
			if err != nil {
				return err
			}
			if len(ts) != len(TermNames) {
				return fmt.Errorf("%w: year %d has %d terms", ErrIncompleteTerms, y, len(ts))
			}
			years[i] = ts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	var terms []Term
	for _, ts := range years {
		terms = append(terms, ts...)
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Start.Before(terms[j].Start) })

	active := -1
	for i, term := range terms {
		if term.Start.After(local) {
			break
		}
		active = i
	}
	if active < 0 || active == len(terms)-1 {
		return Snapshot{}, fmt.Errorf("%w: no active term for %s", ErrOutOfRange, local.Format(time.RFC3339))
	}

	snap := Snapshot{
		Instant: local,
		Term:    terms[active],
		Next:    terms[active+1],
		Terms:   terms,
	}

	solarYear := year
	for _, term := range terms {
		if term.Index == LiChun && term.Start.In(domain.ChinaStandardTime).Year() == year && local.Before(term.Start) {
			solarYear = year - 1
		}
	}
	snap.Year = ganzhi.YearPillar(solarYear)

	jie := snap.Term.Index - snap.Term.Index%2
	snap.Month = ganzhi.MonthPillar(snap.Year.Stem(), ganzhi.Branch((1+jie/2)%12))

	snap.Day = DayPillar(local)
	snap.Hour = ganzhi.HourPillar(snap.Day, local.Hour())
	snap.Ke = KePillar(snap.Hour, local.Hour(), local.Minute())
	return snap, nil
}

// DayPillar returns the day pillar of an instant.
// The 子 hour starting at 23:00 belongs to the next day.
func DayPillar(t time.Time) ganzhi.Pillar {
	return DayPillarOf(ChartDay(t))
}

// ChartDay returns the Julian Day Number of the day an instant is charted
// under: its China Standard Time date, advanced by one from 23:00.
func ChartDay(t time.Time) int {
	local := t.In(domain.ChinaStandardTime)
	jdn := DayNumber(local.Year(), int(local.Month()), local.Day())
	if local.Hour() >= 23 {
		jdn++
	}
	return jdn
}

// Noon returns 12:00 China Standard Time on the given Julian Day Number.
func Noon(jdn int) time.Time {
	y, m, d := DateOf(jdn)
	return time.Date(y, time.Month(m), d, 12, 0, 0, 0, domain.ChinaStandardTime)
}

// DayPillarOf returns the pillar of a Julian Day Number. JDN 2451551
// (2000-01-07) is 甲子.
func DayPillarOf(jdn int) ganzhi.Pillar {
	return ganzhi.New(jdn + 49)
}

// KePillar returns the ten-minute pillar. The twelve 刻 of a two-hour 時辰
// continue the cycle of the hour pillar, so the sequence never breaks.
func KePillar(hour ganzhi.Pillar, clockHour, minute int) ganzhi.Pillar {
	slot := (((clockHour+1)%2)*60 + minute) / 10
	return ganzhi.New(hour.Index()*12 + slot)
}
