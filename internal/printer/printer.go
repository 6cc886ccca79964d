package printer

import "github.com/slok/wellhub/internal/model"

// Printer knows how to print wellhub information in different formats.
type Printer interface {
	PrintTools(tools []model.Tool) error
	PrintRuns(runs []model.TaskRun) error
	PrintRun(run model.TaskRun) error
	PrintBalance(accountID string, balance int, txs []model.CreditTransaction) error
	PrintMessage(msg string) error
}
