package calendar

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/h0rv/qimen/internal/domain"
	"gopkg.in/yaml.v3"
)

// Static is a Provider backed by a fixed term table. It is used for
// deterministic tests and for users who keep their own almanac.
type Static struct {
	years map[int][]Term
}

// NewStatic returns a provider over the given table. Every year must hold
// all 24 terms.
func NewStatic(years map[int][]Term) (*Static, error) {
	s := &Static{years: make(map[int][]Term, len(years))}
	for y, ts := range years {
		if len(ts) != len(TermNames) {
			return nil, fmt.Errorf("%w: year %d has %d terms", ErrIncompleteTerms, y, len(ts))
		}
		sorted := append([]Term(nil), ts...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })
		s.years[y] = sorted
	}
	return s, nil
}

// LoadStatic reads a YAML term table of the form
//
//	2024:
//	  小寒: 2024-01-06T04:49:00+08:00
//	  大寒: 2024-01-20T22:07:00+08:00
//	  ...
func LoadStatic(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read term table: %w", err)
	}
	return ParseStatic(data)
}

// ParseStatic decodes a YAML term table (see LoadStatic).
func ParseStatic(data []byte) (*Static, error) {
	var raw map[int]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse term table: %w", err)
	}

	years := make(map[int][]Term, len(raw))
	for y, entries := range raw {
		for name, stamp := range entries {
			idx, ok := TermIndex(name)
			if !ok {
				return nil, fmt.Errorf("year %d: unknown solar term %q", y, name)
			}
			start, err := time.Parse(time.RFC3339, stamp)
			if err != nil {
				return nil, fmt.Errorf("year %d %s: %w", y, name, err)
			}
			years[y] = append(years[y], Term{Index: idx, Name: name, Start: start})
		}
	}
	return NewStatic(years)
}

// MarshalStatic encodes terms in the format LoadStatic reads.
func MarshalStatic(terms []Term) ([]byte, error) {
	out := make(map[int]map[string]string)
	for _, t := range terms {
		local := t.Start.In(domain.ChinaStandardTime)
		y := local.Year()
		if out[y] == nil {
			out[y] = make(map[string]string, len(TermNames))
		}
		out[y][t.Name] = local.Format(time.RFC3339)
	}
	return yaml.Marshal(out)
}

// Terms returns the table entry for year.
func (s *Static) Terms(ctx context.Context, year int) ([]Term, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ts, ok := s.years[year]
	if !ok {
		return nil, fmt.Errorf("%w: no terms for %d", ErrOutOfRange, year)
	}
	return append([]Term(nil), ts...), nil
}

// Pillars returns the calendar snapshot of t.
func (s *Static) Pillars(ctx context.Context, t time.Time) (Snapshot, error) {
	return Assemble(ctx, s, t)
}
