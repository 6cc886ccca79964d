package storage

import (
	"context"

	"github.com/slok/wellhub/internal/model"
)

// UserRepository is the interface for registered users persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, u model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// CreditRepository is the interface for account credit balances.
type CreditRepository interface {
	// GetBalance returns the balance of an account, unknown accounts have a zero balance.
	GetBalance(ctx context.Context, accountID string) (int, error)
	// AddCredits tops up an account and returns the new balance.
	AddCredits(ctx context.Context, accountID string, amount int, description string) (int, error)
	// SpendCredits debits an account and returns the new balance. It fails with
	// model.ErrInsufficientCredits without debiting when the balance is not enough.
	SpendCredits(ctx context.Context, accountID string, spend model.CreditSpend) (int, error)
	// ListCreditTransactions returns the account history, oldest first.
	ListCreditTransactions(ctx context.Context, accountID string) ([]model.CreditTransaction, error)
}

// TaskRunRepository is the interface for tool runs history.
type TaskRunRepository interface {
	// SaveTaskRun creates or replaces a run.
	SaveTaskRun(ctx context.Context, r model.TaskRun) error
	GetTaskRun(ctx context.Context, id string) (*model.TaskRun, error)
	// ListTaskRuns returns the runs of an account, newest first. An empty account lists all.
	ListTaskRuns(ctx context.Context, accountID string) ([]model.TaskRun, error)
}

// ToolRepository is the interface for the smart tools catalog.
type ToolRepository interface {
	ListTools(ctx context.Context) ([]model.Tool, error)
}

// Repository is the full application persistence.
type Repository interface {
	UserRepository
	CreditRepository
	TaskRunRepository
}
