package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/slok/wellhub/internal/model"
)

// JSONPrinter prints wellhub information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

type toolOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	CreditCost  int    `json:"credit_cost"`
}

type runOutput struct {
	ID              string           `json:"id"`
	Tool            string           `json:"tool"`
	AccountID       string           `json:"account_id,omitempty"`
	Status          string           `json:"status"`
	ProgressPercent int              `json:"progress_percent"`
	CreditCost      int              `json:"credit_cost"`
	Error           string           `json:"error,omitempty"`
	Result          model.ToolResult `json:"result,omitempty"`
	StartedAt       time.Time        `json:"started_at"`
	CompletedAt     *time.Time       `json:"completed_at"`
}

type transactionOutput struct {
	ID           string    `json:"id"`
	Amount       int       `json:"amount"`
	ActionType   string    `json:"action_type"`
	Description  string    `json:"description"`
	ResourceID   string    `json:"resource_id,omitempty"`
	ResourceType string    `json:"resource_type,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type balanceOutput struct {
	AccountID    string              `json:"account_id"`
	Balance      int                 `json:"balance"`
	Transactions []transactionOutput `json:"transactions,omitempty"`
}

type messageOutput struct {
	Message string `json:"message"`
}

// PrintTools prints the tool catalog in JSON format.
func (j *JSONPrinter) PrintTools(tools []model.Tool) error {
	items := make([]toolOutput, len(tools))
	for i, t := range tools {
		items[i] = toolOutput{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Category:    t.Category,
			CreditCost:  t.CreditCost,
		}
	}
	return j.encode(items)
}

// PrintRuns prints tool runs in JSON format.
func (j *JSONPrinter) PrintRuns(runs []model.TaskRun) error {
	items := make([]runOutput, len(runs))
	for i, r := range runs {
		items[i] = newRunOutput(r)
	}
	return j.encode(items)
}

// PrintRun prints a run with its result in JSON format.
func (j *JSONPrinter) PrintRun(run model.TaskRun) error {
	return j.encode(newRunOutput(run))
}

func newRunOutput(r model.TaskRun) runOutput {
	out := runOutput{
		ID:              r.ID,
		Tool:            r.TaskID,
		AccountID:       r.AccountID,
		Status:          string(r.Status),
		ProgressPercent: r.ProgressPercent,
		CreditCost:      r.CreditCost,
		Error:           r.Error,
		Result:          r.Result,
		StartedAt:       r.StartedAt.UTC(),
	}
	if r.CompletedAt != nil {
		utcTime := r.CompletedAt.UTC()
		out.CompletedAt = &utcTime
	}
	return out
}

// PrintBalance prints the credit balance in JSON format.
func (j *JSONPrinter) PrintBalance(accountID string, balance int, txs []model.CreditTransaction) error {
	out := balanceOutput{AccountID: accountID, Balance: balance}
	for _, tx := range txs {
		out.Transactions = append(out.Transactions, transactionOutput{
			ID:           tx.ID,
			Amount:       tx.Amount,
			ActionType:   tx.ActionType,
			Description:  tx.Description,
			ResourceID:   tx.ResourceID,
			ResourceType: tx.ResourceType,
			CreatedAt:    tx.CreatedAt.UTC(),
		})
	}
	return j.encode(out)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
