package main

import (
	"fmt"
	"io"
	"time"

	"github.com/h0rv/qimen/internal/config"
	"github.com/h0rv/qimen/internal/domain"
	"github.com/h0rv/qimen/internal/persistence"
	"github.com/h0rv/qimen/internal/qimen"
	"github.com/h0rv/qimen/internal/render"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// chartCmd casts a single chart and prints it.
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Cast a chart for a moment",
	Long: `Cast the hour, minute or day chart (or all three) for a moment in China
Standard Time. Date and time default to now.

Examples:
  qimen chart --date 2024-01-14 --time 23:20
  qimen chart --kind overall --format yaml
  qimen chart --method 2 --save`,
	Args: cobra.NoArgs,
	RunE: runChart,
}

// now is swapped out in tests.
var now = time.Now

func init() {
	chartCmd.Flags().String("date", "", "date as YYYY-MM-DD (default today)")
	chartCmd.Flags().String("time", "", "time as HH:MM (default now)")
	chartCmd.Flags().String("kind", persistence.KindHour, "chart kind: hour, minute, day or overall")
	chartCmd.Flags().StringP("format", "f", "text", "output format: text, json, yaml or toml")
	chartCmd.Flags().Bool("save", false, "save the chart to the journal")

	_ = viper.BindPFlag("format", chartCmd.Flags().Lookup("format"))
}

func runChart(cmd *cobra.Command, _ []string) error {
	date, _ := cmd.Flags().GetString("date")
	clock, _ := cmd.Flags().GetString("time")
	kind, _ := cmd.Flags().GetString("kind")
	save, _ := cmd.Flags().GetBool("save")

	moment, err := parseMoment(date, clock, now())
	if err != nil {
		return err
	}
	method, err := qimen.ParseMethod(cfg.Method)
	if err != nil {
		return err
	}

	provider, err := newProvider(cfg, logger)
	if err != nil {
		return err
	}
	engine, err := qimen.New(cmd.Context(), provider, moment, qimen.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to cast chart: %w", err)
	}

	chart, bureau, err := castChart(engine, method, kind)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := render.Encode(out, cfg.Format, chart); err != nil {
		return err
	}
	if cfg.Format == "text" {
		printAuxiliary(out, engine)
	}

	if save {
		return saveChart(cmd, cfg, moment, method, kind, bureau, chart)
	}
	return nil
}

// castChart builds the chart of the requested kind and its bureau label.
func castChart(e *qimen.Engine, method domain.Method, kind string) (any, string, error) {
	switch kind {
	case persistence.KindHour:
		c, err := e.HourChart(method)
		return c, c.BureauLabel(), err
	case persistence.KindMinute:
		c, err := e.MinuteChart(method)
		return c, c.BureauLabel(), err
	case persistence.KindDay:
		c, err := e.DayChart()
		return c, c.BureauLabel(), err
	case persistence.KindOverall:
		o, err := e.Overall(method)
		return o, o.Hour.BureauLabel(), err
	default:
		return nil, "", fmt.Errorf("unknown chart kind %q: want hour, minute, day or overall", kind)
	}
}

func printAuxiliary(w io.Writer, e *qimen.Engine) {
	ty := e.Tianyi()
	noble := "陰貴"
	if ty.Daytime {
		noble = "陽貴"
	}
	origin := e.YearOrigin()
	fmt.Fprintf(w, "天乙%s: %s (%d %s)  三元: %s %s\n",
		noble, ty.Branch, ty.Palace, ty.Direction, origin.Pillar, origin.Label())
}

func saveChart(cmd *cobra.Command, c config.Config, m domain.Moment, method domain.Method, kind, bureau string, chart any) error {
	journal, err := openJournal(c.Journal.Path, logger)
	if err != nil {
		return err
	}
	defer journal.Close()

	r, err := persistence.NewRecord(m, method, kind, bureau, chart)
	if err != nil {
		return err
	}
	saved, err := journal.Save(cmd.Context(), r)
	if err != nil {
		return err
	}
	logger.Info("chart saved", zap.String("id", saved.ID), zap.String("path", c.Journal.Path))
	fmt.Fprintf(cmd.ErrOrStderr(), "saved %s\n", saved.ID)
	return nil
}

// parseMoment combines the --date and --time flags, filling whichever is
// missing from ref in China Standard Time.
func parseMoment(date, clock string, ref time.Time) (domain.Moment, error) {
	ref = ref.In(domain.ChinaStandardTime)
	if date == "" {
		date = ref.Format("2006-01-02")
	}
	if clock == "" {
		clock = ref.Format("15:04")
	}
	m, err := domain.ParseMoment(date + " " + clock)
	if err != nil {
		return domain.Moment{}, fmt.Errorf("%w: %w", qimen.ErrInvalidMoment, err)
	}
	return m, nil
}
