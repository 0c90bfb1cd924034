package main

import (
	"fmt"

	"github.com/h0rv/qimen/internal/domain"
	"github.com/h0rv/qimen/internal/render"
	"github.com/spf13/cobra"
)

// historyCmd lists the charts saved in the journal.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved charts",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

// historyShowCmd prints one saved chart.
var historyShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print a saved chart",
	Long: `Print a saved chart as it was cast. ID may be the short id shown by
'qimen history' or any unambiguous prefix of the full id.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistoryShow,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "number of charts to list (0 for all)")
	historyCmd.Flags().StringP("format", "f", "text", "output format: text, json, yaml or toml")
	historyShowCmd.Flags().StringP("format", "f", "text", "output format: text, json, yaml or toml")

	historyCmd.AddCommand(historyShowCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	journal, err := openJournal(cfg.Journal.Path, logger)
	if err != nil {
		return err
	}
	defer journal.Close()

	records, err := journal.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format != "text" {
		// Payloads are full charts; listings carry only the summary.
		for i := range records {
			records[i].Payload = ""
		}
		return render.Encode(out, format, map[string]any{"charts": records})
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "no saved charts")
		return nil
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			r.ShortID(), r.Moment, domain.Method(r.Method).Label(), r.Kind, r.Bureau,
			r.CreatedAt.Local().Format(domain.MomentLayout),
		}
	}
	_, err = fmt.Fprintln(out, render.Table([]string{"ID", "MOMENT", "METHOD", "KIND", "BUREAU", "SAVED"}, rows))
	return err
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	journal, err := openJournal(cfg.Journal.Path, logger)
	if err != nil {
		return err
	}
	defer journal.Close()

	r, err := journal.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	chart, err := r.Chart()
	if err != nil {
		return err
	}
	return render.Encode(cmd.OutOrStdout(), format, chart)
}
