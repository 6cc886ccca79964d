package printer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/wellhub/internal/model"
	"github.com/slok/wellhub/internal/printer"
)

func runFixture() model.TaskRun {
	startedAt := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)
	completedAt := startedAt.Add(4 * time.Second)
	return model.TaskRun{
		ID:              "01J0000000000000000000000",
		TaskID:          model.ToolIDSleepOptimizer,
		AccountID:       "acc",
		Status:          model.TaskStatusCompleted,
		ProgressPercent: 100,
		CreditCost:      15,
		StartedAt:       startedAt,
		CompletedAt:     &completedAt,
		Result: model.SleepOptimizationResult{
			TargetHours: 8,
			Bedtime:     "23:00",
			WakeTime:    "07:00",
			Tips:        []string{"Avoid caffeine after 14:00"},
		},
	}
}

func TestTablePrinterPrintRun(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintRun(runFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Tool:       sleep-optimizer")
	assert.Contains(t, out, "Progress:   100%")
	assert.Contains(t, out, "Duration:   4.0s")
	assert.Contains(t, out, "Target sleep:     8.0 hours")
	assert.Contains(t, out, "  - Avoid caffeine after 14:00")
}

func TestTablePrinterPrintRunWithoutResult(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	run := runFixture()
	run.Status = model.TaskStatusIdle
	run.ProgressPercent = 0
	run.Result = nil
	run.CompletedAt = nil
	run.Error = "not enough credits"

	err := p.PrintRun(run)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Error:      not enough credits")
	assert.NotContains(t, out, "Completed:")
}

func TestTablePrinterPrintTools(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintTools([]model.Tool{
		{ID: "health-assessment", Name: "Health Assessment", Category: "health", CreditCost: 25},
		{ID: "sleep-optimizer", Name: "Sleep Optimizer", Category: "sleep", CreditCost: 15},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "health-assessment")
	assert.Contains(t, lines[1], "25")
}

func TestTablePrinterPrintBalance(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintBalance("acc", 75, []model.CreditTransaction{
		{Amount: 100, ActionType: model.CreditActionTopUp, Description: "initial", CreatedAt: time.Now()},
		{Amount: -25, ActionType: model.CreditActionToolRun, Description: "Ran Health Assessment", CreatedAt: time.Now()},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Balance:    75 credits")
	assert.Contains(t, out, "+100")
	assert.Contains(t, out, "-25")
}

func TestJSONPrinterPrintRun(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintRun(runFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"tool": "sleep-optimizer"`)
	assert.Contains(t, out, `"progress_percent": 100`)
	assert.Contains(t, out, `"bedtime": "23:00"`)
	assert.Contains(t, out, `"completed_at": "2026-01-30T10:00:04Z"`)
}

func TestJSONPrinterPrintRunsWithoutResult(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	run := runFixture()
	run.Status = model.TaskStatusRunning
	run.ProgressPercent = 40
	run.Result = nil
	run.CompletedAt = nil

	err := p.PrintRuns([]model.TaskRun{run})
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, `"result"`)
	assert.Contains(t, out, `"completed_at": null`)
}

func TestJSONPrinterPrintBalance(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintBalance("acc", 75, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"account_id": "acc", "balance": 75}`, buf.String())
}

func TestTablePrinterPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintMessage("ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", strings.TrimSpace(buf.String()))
}

func TestProgressBar(t *testing.T) {
	tests := map[string]struct {
		pct int
		exp string
	}{
		"empty":          {pct: 0, exp: "          "},
		"half":           {pct: 50, exp: "=====     "},
		"full":           {pct: 100, exp: "=========="},
		"over is capped": {pct: 150, exp: "=========="},
		"negative":       {pct: -5, exp: "          "},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.exp, printer.ProgressBar(test.pct, 10))
		})
	}
}

func TestRunProgress(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewRunProgress(&buf)

	p.Update(model.TaskRun{TaskID: "b-tool", ProgressPercent: 50})
	p.Update(model.TaskRun{TaskID: "a-tool", ProgressPercent: 10})
	p.Finish()

	lines := strings.Split(buf.String(), "\r")
	last := lines[len(lines)-1]
	assert.True(t, strings.Index(last, "a-tool") < strings.Index(last, "b-tool"))
	assert.Contains(t, last, " 10%")
	assert.Contains(t, last, " 50%")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}
