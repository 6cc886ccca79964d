package model

import (
	"fmt"
	"time"
)

// Tool is the static metadata of a smart tool.
type Tool struct {
	ID          string
	Name        string
	Description string
	Category    string
	CreditCost  int
}

// Validate validates the tool metadata.
func (t Tool) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("id is required: %w", ErrNotValid)
	}
	if t.Name == "" {
		return fmt.Errorf("name is required: %w", ErrNotValid)
	}
	if t.CreditCost < 0 {
		return fmt.Errorf("credit cost can't be negative: %w", ErrNotValid)
	}
	return nil
}

// TaskStatus is the state of a tool run.
type TaskStatus string

const (
	TaskStatusIdle      TaskStatus = "idle"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
)

// TaskRun is one execution of a smart tool.
type TaskRun struct {
	ID              string
	TaskID          string
	AccountID       string
	Status          TaskStatus
	ProgressPercent int
	CreditCost      int
	Result          ToolResult
	// Error is set when a run was rolled back to idle after its debit failed.
	Error       string
	StartedAt   time.Time
	CompletedAt *time.Time
}

// Consistent reports if the run honors the completion invariant: completed,
// having a result and being at 100% always go together.
func (t TaskRun) Consistent() bool {
	completed := t.Status == TaskStatusCompleted
	hasResult := t.Result != nil
	full := t.ProgressPercent == 100
	return completed == hasResult && hasResult == full
}
