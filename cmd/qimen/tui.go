package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/qimen/internal/persistence"
	"github.com/h0rv/qimen/internal/qimen"
	"github.com/h0rv/qimen/internal/store"
	"github.com/h0rv/qimen/internal/tui"
	"github.com/spf13/cobra"
)

// tuiCmd launches the interactive chart browser.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse charts interactively",
	Long: `Launch the chart browser at a moment (default now). Press ? inside
the browser for key bindings.

Saving and history need journal.enabled in .qimen.yaml.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().String("date", "", "date as YYYY-MM-DD (default today)")
	tuiCmd.Flags().String("time", "", "time as HH:MM (default now)")
}

func runTUI(cmd *cobra.Command, _ []string) error {
	date, _ := cmd.Flags().GetString("date")
	clock, _ := cmd.Flags().GetString("time")

	moment, err := parseMoment(date, clock, now())
	if err != nil {
		return err
	}
	method, err := qimen.ParseMethod(cfg.Method)
	if err != nil {
		return err
	}
	s, err := store.New(moment, method)
	if err != nil {
		return err
	}

	provider, err := newProvider(cfg, logger)
	if err != nil {
		return err
	}

	var journal *persistence.Journal
	if cfg.Journal.Enabled {
		journal, err = openJournal(cfg.Journal.Path, logger)
		if err != nil {
			return err
		}
		defer journal.Close()
	}

	app := tui.NewAppModel(s, provider, journal, cmd.Context(), logger)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
