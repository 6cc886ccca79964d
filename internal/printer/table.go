package printer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/slok/wellhub/internal/model"
)

// TablePrinter prints wellhub information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintTools prints the tool catalog.
func (t *TablePrinter) PrintTools(tools []model.Tool) error {
	if len(tools) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tCREDITS\tDESCRIPTION")
	for _, tool := range tools {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", tool.ID, tool.Name, tool.Category, tool.CreditCost, tool.Description)
	}

	return nil
}

// PrintRuns prints tool runs.
func (t *TablePrinter) PrintRuns(runs []model.TaskRun) error {
	if len(runs) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tTOOL\tSTATUS\tPROGRESS\tCREDITS\tSTARTED")
	for _, r := range runs {
		status := string(r.Status)
		if r.Error != "" {
			status += " (failed)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d%%\t%d\t%s\n", r.ID, r.TaskID, status, r.ProgressPercent, r.CreditCost, TimeAgo(r.StartedAt))
	}

	return nil
}

// PrintRun prints a run with its result.
func (t *TablePrinter) PrintRun(run model.TaskRun) error {
	fmt.Fprintf(t.writer, "Tool:       %s\n", run.TaskID)
	fmt.Fprintf(t.writer, "ID:         %s\n", run.ID)
	fmt.Fprintf(t.writer, "Status:     %s\n", run.Status)
	fmt.Fprintf(t.writer, "Progress:   %d%%\n", run.ProgressPercent)
	fmt.Fprintf(t.writer, "Credits:    %d\n", run.CreditCost)
	fmt.Fprintf(t.writer, "Started:    %s\n", FormatTimestamp(run.StartedAt))
	if run.CompletedAt != nil {
		fmt.Fprintf(t.writer, "Completed:  %s\n", FormatTimestamp(*run.CompletedAt))
		fmt.Fprintf(t.writer, "Duration:   %s\n", FormatDuration(run.CompletedAt.Sub(run.StartedAt)))
	}
	if run.Error != "" {
		fmt.Fprintf(t.writer, "Error:      %s\n", run.Error)
	}

	if run.Result == nil {
		return nil
	}
	fmt.Fprintln(t.writer)
	t.printResult(run.Result)

	return nil
}

func (t *TablePrinter) printResult(res model.ToolResult) {
	w := t.writer
	switch r := res.(type) {
	case model.HealthAssessmentResult:
		fmt.Fprintf(w, "Overall score:    %d/100\n", r.OverallScore)
		fmt.Fprintf(w, "  Physical:       %d\n", r.SubScores.Physical)
		fmt.Fprintf(w, "  Mental:         %d\n", r.SubScores.Mental)
		fmt.Fprintf(w, "  Nutrition:      %d\n", r.SubScores.Nutrition)
		fmt.Fprintf(w, "  Sleep:          %d\n", r.SubScores.Sleep)
		printList(w, "Strengths", r.Strengths)
		printList(w, "Improvements", r.Improvements)
		printList(w, "Recommendations", r.Recommendations)
	case model.NutritionPlanResult:
		fmt.Fprintf(w, "Daily calories:   %d kcal\n", r.DailyCalories)
		fmt.Fprintf(w, "Macros:           %dg protein, %dg carbs, %dg fat\n", r.Macros.ProteinGrams, r.Macros.CarbsGrams, r.Macros.FatGrams)
		fmt.Fprintln(w, "Meal plan:")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, m := range r.MealPlan {
			fmt.Fprintf(tw, "  %s\t%s\t%d kcal\t%s\n", m.Time, m.Name, m.Calories, strings.Join(m.Items, ", "))
		}
		tw.Flush()
	case model.StressAnalysisResult:
		fmt.Fprintf(w, "Stress score:     %d (%s)\n", r.Score, r.Level)
		printList(w, "Triggers", r.Triggers)
		printList(w, "Techniques", r.Techniques)
	case model.SleepOptimizationResult:
		fmt.Fprintf(w, "Target sleep:     %.1f hours\n", r.TargetHours)
		fmt.Fprintf(w, "Bedtime:          %s\n", r.Bedtime)
		fmt.Fprintf(w, "Wake time:        %s\n", r.WakeTime)
		printList(w, "Tips", r.Tips)
	case model.GenericResult:
		for k, v := range r.Data {
			fmt.Fprintf(w, "%s: %v\n", k, v)
		}
	default:
		fmt.Fprintf(w, "Result:           %v\n", r)
	}
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}

// PrintBalance prints the credit balance and, if any, its transactions.
func (t *TablePrinter) PrintBalance(accountID string, balance int, txs []model.CreditTransaction) error {
	fmt.Fprintf(t.writer, "Account:    %s\n", accountID)
	fmt.Fprintf(t.writer, "Balance:    %d credits\n", balance)

	if len(txs) == 0 {
		return nil
	}

	fmt.Fprintln(t.writer)
	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "AMOUNT\tACTION\tDESCRIPTION\tCREATED")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%+d\t%s\t%s\t%s\n", tx.Amount, tx.ActionType, tx.Description, TimeAgo(tx.CreatedAt))
	}

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}
