package model

import (
	"fmt"
	"time"
)

// Credit action types.
const (
	CreditActionToolRun = "tool_run"
	CreditActionTopUp   = "top_up"
)

// CreditSpend describes a debit on an account balance.
type CreditSpend struct {
	Amount       int
	ActionType   string
	Description  string
	ResourceID   string
	ResourceType string
}

// Validate validates the spend.
func (c CreditSpend) Validate() error {
	if c.Amount <= 0 {
		return fmt.Errorf("amount must be positive: %w", ErrNotValid)
	}
	if c.ActionType == "" {
		return fmt.Errorf("action type is required: %w", ErrNotValid)
	}
	return nil
}

// CreditTransaction is an entry in the credit history of an account. Amount
// is negative for debits.
type CreditTransaction struct {
	ID           string
	AccountID    string
	Amount       int
	ActionType   string
	Description  string
	ResourceID   string
	ResourceType string
	CreatedAt    time.Time
}
