// Package qimen builds Qimen Dunjia charts for a moment.
//
// An Engine fetches the calendar snapshot of its moment once, at construction,
// and every chart is computed from that snapshot. Engines are immutable and
// safe for concurrent use.
package qimen

import (
	"context"
	"errors"
	"fmt"

	"github.com/h0rv/qimen/internal/calendar"
	"github.com/h0rv/qimen/internal/domain"
	"go.uber.org/zap"
)

var (
	// ErrInvalidMoment indicates a moment that is not a real calendar instant.
	ErrInvalidMoment = errors.New("invalid moment")
	// ErrInvalidMethod indicates a bureau method other than 1 (拆補) or 2 (置閏).
	ErrInvalidMethod = errors.New("invalid method")
)

// Engine computes the charts of a single moment.
type Engine struct {
	moment domain.Moment
	snap   calendar.Snapshot
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New validates m and fetches its calendar snapshot from provider.
// Provider errors are returned unchanged.
func New(ctx context.Context, provider calendar.Provider, m domain.Moment, opts ...Option) (*Engine, error) {
	e := &Engine{moment: m, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	if err := ValidateMoment(m); err != nil {
		return nil, err
	}

	snap, err := provider.Pillars(ctx, m.Time())
	if err != nil {
		return nil, err
	}
	e.snap = snap

	e.logger.Debug("calendar snapshot loaded",
		zap.Stringer("moment", m),
		zap.String("day", snap.Day.String()),
		zap.String("hour", snap.Hour.String()),
		zap.String("term", snap.Term.Name),
	)
	return e, nil
}

// ValidateMoment reports whether m names a real instant.
func ValidateMoment(m domain.Moment) error {
	if m.Month < 1 || m.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidMoment, m.Month)
	}
	if m.Hour < 0 || m.Hour > 23 {
		return fmt.Errorf("%w: hour %d", ErrInvalidMoment, m.Hour)
	}
	if m.Minute < 0 || m.Minute > 59 {
		return fmt.Errorf("%w: minute %d", ErrInvalidMoment, m.Minute)
	}
	// time.Date normalises out-of-range days, so a round trip catches 2024-02-30.
	if m.Day < 1 || domain.MomentOf(m.Time()) != m {
		return fmt.Errorf("%w: %04d-%02d-%02d is not a calendar date", ErrInvalidMoment, m.Year, m.Month, m.Day)
	}
	return nil
}

// ParseMethod converts the numeric method selector into a Method.
func ParseMethod(n int) (domain.Method, error) {
	m := domain.Method(n)
	if !m.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMethod, n)
	}
	return m, nil
}

// Moment returns the moment the engine was built for.
func (e *Engine) Moment() domain.Moment { return e.moment }

// Snapshot returns the calendar snapshot the charts are computed from.
func (e *Engine) Snapshot() calendar.Snapshot {
	s := e.snap
	s.Terms = append([]calendar.Term(nil), s.Terms...)
	return s
}
