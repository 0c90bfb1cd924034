package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/h0rv/qimen/internal/domain"
	"github.com/h0rv/qimen/internal/persistence"
	"github.com/h0rv/qimen/internal/qimen"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTerms = "../../internal/calendar/testdata/terms.yaml"

// executeCommand runs the root command with args and returns its stdout.
// Flag values are reset first since cobra keeps them between executions.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func staticArgs(args ...string) []string {
	return append([]string{"--provider", "static", "--terms-file", testTerms}, args...)
}

func TestChartCommand_JSON(t *testing.T) {
	out, err := executeCommand(t, staticArgs("chart", "--date", "2024-01-14", "--time", "23:20", "--format", "json")...)
	require.NoError(t, err)

	var chart domain.HourChart
	require.NoError(t, json.Unmarshal([]byte(out), &chart))
	assert.Equal(t, "拆補", chart.Method)
	assert.Equal(t, "陽遁五局下元", chart.BureauLabel())
	assert.Equal(t, "壬子", chart.Pillar)
	assert.Equal(t, "甲辰壬", chart.DecadHead)
	assert.Equal(t, "英", chart.LeadStar)
}

func TestChartCommand_Text(t *testing.T) {
	out, err := executeCommand(t, staticArgs("chart", "--date", "2024-01-14", "--time", "23:20")...)
	require.NoError(t, err)

	assert.Contains(t, out, "陽遁五局下元")
	assert.Contains(t, out, "天乙陰貴: 未 (2 西南)")
	assert.Contains(t, out, "三元: 癸卯 下元八運")
}

func TestChartCommand_Kinds(t *testing.T) {
	t.Run("day", func(t *testing.T) {
		out, err := executeCommand(t, staticArgs("chart", "--date", "2024-01-14", "--time", "23:20", "--kind", "day", "--format", "json")...)
		require.NoError(t, err)

		var chart domain.DayChart
		require.NoError(t, json.Unmarshal([]byte(out), &chart))
		assert.Equal(t, "陽遁一局", chart.BureauLabel())
	})

	t.Run("overall under 置閏", func(t *testing.T) {
		out, err := executeCommand(t, staticArgs("--method", "2", "chart", "--date", "2024-01-14", "--time", "23:20", "--kind", "overall", "--format", "json")...)
		require.NoError(t, err)

		var o domain.Overall
		require.NoError(t, json.Unmarshal([]byte(out), &o))
		assert.Equal(t, "置閏", o.Hour.Method)
		assert.Equal(t, "壬寅", o.Minute.Pillar)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := executeCommand(t, staticArgs("chart", "--date", "2024-01-14", "--kind", "year")...)
		assert.ErrorContains(t, err, "unknown chart kind")
	})
}

func TestChartCommand_Errors(t *testing.T) {
	t.Run("bad date", func(t *testing.T) {
		_, err := executeCommand(t, staticArgs("chart", "--date", "2024-02-30")...)
		assert.ErrorIs(t, err, qimen.ErrInvalidMoment)
	})

	t.Run("bad method", func(t *testing.T) {
		_, err := executeCommand(t, staticArgs("--method", "3", "chart")...)
		assert.Error(t, err)
	})

	t.Run("outside the term table", func(t *testing.T) {
		_, err := executeCommand(t, staticArgs("chart", "--date", "1999-05-01")...)
		assert.ErrorContains(t, err, "failed to cast chart")
	})
}

func TestSaveAndHistory(t *testing.T) {
	journal := filepath.Join(t.TempDir(), "nested", "journal.db")

	_, err := executeCommand(t, staticArgs("--journal", journal, "chart", "--date", "2024-01-14", "--time", "23:20", "--save")...)
	require.NoError(t, err)

	out, err := executeCommand(t, "--journal", journal, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-14 23:20")
	assert.Contains(t, out, "陽遁五局下元")
	assert.Contains(t, out, "拆補")
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "SAVED")

	out, err = executeCommand(t, "--journal", journal, "history", "--format", "json")
	require.NoError(t, err)
	var listing struct {
		Charts []struct {
			ID      string `json:"id"`
			Moment  string `json:"moment"`
			Kind    string `json:"kind"`
			Payload string `json:"payload"`
		} `json:"charts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &listing))
	require.Len(t, listing.Charts, 1)
	assert.Equal(t, "hour", listing.Charts[0].Kind)
	assert.Empty(t, listing.Charts[0].Payload)

	id := listing.Charts[0].ID
	require.Len(t, id, 36)

	t.Run("show by short id", func(t *testing.T) {
		out, err := executeCommand(t, "--journal", journal, "history", "show", id[:8], "--format", "json")
		require.NoError(t, err)

		var chart domain.HourChart
		require.NoError(t, json.Unmarshal([]byte(out), &chart))
		assert.Equal(t, "陽遁五局下元", chart.BureauLabel())
		assert.Equal(t, "壬子", chart.Pillar)
	})

	t.Run("show as text", func(t *testing.T) {
		out, err := executeCommand(t, "--journal", journal, "history", "show", id)
		require.NoError(t, err)
		assert.Contains(t, out, "陽遁五局下元")
	})

	t.Run("show missing", func(t *testing.T) {
		_, err := executeCommand(t, "--journal", journal, "history", "show", "ffffffff")
		assert.ErrorIs(t, err, persistence.ErrNotFound)
	})
}

func TestTermsCommand(t *testing.T) {
	out, err := executeCommand(t, staticArgs("terms", "2024")...)
	require.NoError(t, err)
	assert.Contains(t, out, "2024:")
	assert.Contains(t, out, "小寒")
	assert.Contains(t, out, "2024-01-06T04:49:00+08:00")

	_, err = executeCommand(t, staticArgs("terms", "1999")...)
	assert.Error(t, err)

	_, err = executeCommand(t, staticArgs("terms", "next")...)
	assert.ErrorContains(t, err, "invalid year")
}

func TestParseMoment(t *testing.T) {
	ref := time.Date(2024, 6, 15, 4, 5, 0, 0, time.UTC) // 12:05 CST

	tests := []struct {
		name        string
		date, clock string
		want        domain.Moment
	}{
		{"both given", "2024-01-14", "23:20", domain.Moment{Year: 2024, Month: 1, Day: 14, Hour: 23, Minute: 20}},
		{"time defaults to now", "2024-01-14", "", domain.Moment{Year: 2024, Month: 1, Day: 14, Hour: 12, Minute: 5}},
		{"date defaults to today", "", "08:00", domain.Moment{Year: 2024, Month: 6, Day: 15, Hour: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMoment(tt.date, tt.clock, ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseMoment("2024-13-01", "", ref)
	assert.ErrorIs(t, err, qimen.ErrInvalidMoment)
}
