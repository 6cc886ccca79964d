package creditbalance

import (
	"context"
	"fmt"

	"github.com/slok/wellhub/internal/log"
	"github.com/slok/wellhub/internal/model"
	"github.com/slok/wellhub/internal/storage"
)

// ServiceConfig is the configuration for the credit balance service.
type ServiceConfig struct {
	Repository storage.CreditRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service returns the credit balance of an account.
type Service struct {
	repo   storage.CreditRepository
	logger log.Logger
}

// NewService creates a new credit balance service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the balance request parameters.
type Request struct {
	AccountID string
	// WithHistory also returns the account transactions.
	WithHistory bool
}

// Response is the balance of an account.
type Response struct {
	AccountID    string
	Balance      int
	Transactions []model.CreditTransaction
}

// Run gets the balance.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	if req.AccountID == "" {
		return nil, fmt.Errorf("account id is required: %w", model.ErrNotValid)
	}

	balance, err := s.repo.GetBalance(ctx, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("could not get balance: %w", err)
	}

	resp := &Response{AccountID: req.AccountID, Balance: balance}
	if req.WithHistory {
		txs, err := s.repo.ListCreditTransactions(ctx, req.AccountID)
		if err != nil {
			return nil, fmt.Errorf("could not list transactions: %w", err)
		}
		resp.Transactions = txs
	}

	return resp, nil
}
