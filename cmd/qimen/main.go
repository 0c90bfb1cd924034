package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/h0rv/qimen/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	cfgFile string

	// Populated by PersistentPreRunE
	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "qimen",
	Short: "Qimen Dunjia chart engine",
	Long: `qimen casts 奇門遁甲 charts for a moment in China Standard Time.

It builds the 時家 (hour), 刻家 (ten-minute) and 金函玉鏡 (day) charts
with either the 拆補 (method 1) or 置閏 (method 2) bureau placement.

Solar terms come from one of three providers:
  astro   built-in almanac, 1900-2100 (default)
  static  a YAML table of term start times (--terms-file)
  remote  a GraphQL almanac service (remote.endpoint in .qimen.yaml)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(cfgFile); err != nil {
			return err
		}
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		// The TUI owns the terminal; it logs nothing unless asked to.
		if cmd.Name() == "tui" && !cfg.Verbose {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if cfg.Verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default .qimen.yaml)")
	flags.BoolP("verbose", "v", false, "debug logging")
	flags.IntP("method", "m", 1, "bureau method: 1 拆補, 2 置閏")
	flags.String("provider", config.ProviderAstro, "solar term provider: astro, static or remote")
	flags.String("terms-file", "", "YAML term table for the static provider")
	flags.String("journal", "", "chart journal database (default ~/.qimen/journal.db)")

	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("method", flags.Lookup("method"))
	_ = viper.BindPFlag("provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("terms_file", flags.Lookup("terms-file"))
	_ = viper.BindPFlag("journal.path", flags.Lookup("journal"))

	rootCmd.AddCommand(chartCmd, tuiCmd, historyCmd, termsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
