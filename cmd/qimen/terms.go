package main

import (
	"fmt"
	"sort"

	"github.com/h0rv/qimen/internal/calendar"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// termsCmd dumps solar terms in the static provider's table format, so a
// table can be generated once and reused offline.
var termsCmd = &cobra.Command{
	Use:   "terms YEAR [YEAR...]",
	Short: "Print the solar terms of one or more years as a YAML table",
	Long: `Print the 24 solar terms of each year as a YAML table readable by the
static provider (--provider static --terms-file FILE).

Example:
  qimen terms 2023 2024 2025 > terms.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTerms,
}

func runTerms(cmd *cobra.Command, args []string) error {
	years := make([]int, len(args))
	for i, a := range args {
		if _, err := fmt.Sscanf(a, "%d", &years[i]); err != nil {
			return fmt.Errorf("invalid year %q", a)
		}
	}
	sort.Ints(years)

	provider, err := newProvider(cfg, logger)
	if err != nil {
		return err
	}

	results := make([][]calendar.Term, len(years))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, y := range years {
		i, y := i, y
		g.Go(func() error {
			ts, err := provider.Terms(ctx, y)
			if err != nil {
				return fmt.Errorf("year %d: %w", y, err)
			}
			results[i] = ts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var all []calendar.Term
	for _, ts := range results {
		all = append(all, ts...)
	}
	data, err := calendar.MarshalStatic(all)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
