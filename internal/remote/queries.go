package remote

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/h0rv/qimen/internal/calendar"
	"github.com/machinebox/graphql"
	"go.uber.org/zap"
)

// ErrBadResponse indicates the service answered with data that is not a
// usable term table.
var ErrBadResponse = errors.New("malformed almanac response")

// Terms fetches the 24 solar terms of a year. Years are cached after the first
// successful fetch.
func (c *Client) Terms(ctx context.Context, year int) ([]calendar.Term, error) {
	c.mu.Lock()
	cached, ok := c.cache[year]
	c.mu.Unlock()
	if ok {
		return append([]calendar.Term(nil), cached...), nil
	}

	req := graphql.NewRequest(`
		query($year: Int!) {
			solarTerms(year: $year) {
				name
				start
			}
		}
	`)
	req.Var("year", year)

	var resp struct {
		SolarTerms []struct {
			Name  string `json:"name"`
			Start string `json:"start"`
		} `json:"solarTerms"`
	}

	if err := c.makeRequest(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch solar terms for %d: %w", year, err)
	}

	terms := make([]calendar.Term, 0, len(resp.SolarTerms))
	for _, node := range resp.SolarTerms {
		idx, ok := calendar.TermIndex(node.Name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown term %q", ErrBadResponse, node.Name)
		}
		start, err := time.Parse(time.RFC3339, node.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: term %s: %v", ErrBadResponse, node.Name, err)
		}
		terms = append(terms, calendar.Term{Index: idx, Name: node.Name, Start: start})
	}
	if len(terms) != len(calendar.TermNames) {
		return nil, fmt.Errorf("%w: year %d has %d terms", calendar.ErrIncompleteTerms, year, len(terms))
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Start.Before(terms[j].Start) })

	c.logger.Debug("fetched solar terms", zap.Int("year", year))

	c.mu.Lock()
	c.cache[year] = terms
	c.mu.Unlock()
	return append([]calendar.Term(nil), terms...), nil
}
