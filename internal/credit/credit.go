package credit

import (
	"context"
	"errors"
	"fmt"

	"github.com/slok/wellhub/internal/log"
	"github.com/slok/wellhub/internal/model"
	"github.com/slok/wellhub/internal/storage"
)

// Ledger is the credit balance collaborator paid features are checked and
// charged against.
type Ledger interface {
	HasEnoughCredits(ctx context.Context, amount int) (bool, error)
	SpendCredits(ctx context.Context, spend model.CreditSpend) error
}

// AccountConfig is the configuration for an account ledger.
type AccountConfig struct {
	AccountID  string
	Repository storage.CreditRepository
	Logger     log.Logger
}

func (c *AccountConfig) defaults() error {
	if c.AccountID == "" {
		return fmt.Errorf("account id is required")
	}
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "credit.Account", "account": c.AccountID})
	return nil
}

// Account is a Ledger bound to a single account of a credit repository.
type Account struct {
	id     string
	repo   storage.CreditRepository
	logger log.Logger
}

// NewAccount returns a new account ledger.
func NewAccount(cfg AccountConfig) (*Account, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Account{
		id:     cfg.AccountID,
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// ID returns the account ID.
func (a *Account) ID() string { return a.id }

// Balance returns the current balance.
func (a *Account) Balance(ctx context.Context) (int, error) {
	balance, err := a.repo.GetBalance(ctx, a.id)
	if err != nil {
		return 0, fmt.Errorf("could not get balance: %w", err)
	}
	return balance, nil
}

// HasEnoughCredits satisfies Ledger.
func (a *Account) HasEnoughCredits(ctx context.Context, amount int) (bool, error) {
	balance, err := a.Balance(ctx)
	if err != nil {
		return false, err
	}
	return balance >= amount, nil
}

// SpendCredits satisfies Ledger.
func (a *Account) SpendCredits(ctx context.Context, spend model.CreditSpend) error {
	balance, err := a.repo.SpendCredits(ctx, a.id, spend)
	if err != nil {
		if errors.Is(err, model.ErrInsufficientCredits) {
			return fmt.Errorf("you need %d credits and have %d: %w", spend.Amount, balance, model.ErrInsufficientCredits)
		}
		return fmt.Errorf("could not spend credits: %w", err)
	}

	a.logger.Infof("Spent %d credits on %s (%s), balance %d", spend.Amount, spend.ActionType, spend.ResourceID, balance)
	return nil
}
