package credittopup

import (
	"context"
	"fmt"

	"github.com/slok/wellhub/internal/log"
	"github.com/slok/wellhub/internal/model"
	"github.com/slok/wellhub/internal/storage"
)

const defaultDescription = "Credit top up"

// ServiceConfig is the configuration for the credit top up service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.CreditTopUp"})

	return nil
}

// Service adds credits to an account.
type Service struct {
	repo   storage.CreditRepository
	logger log.Logger
}

// NewService creates a new credit top up service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the top up request parameters.
type Request struct {
	AccountID   string
	Amount      int
	Description string
}

// Run tops up the account and returns the new balance.
func (s *Service) Run(ctx context.Context, req Request) (int, error) {
	if req.AccountID == "" {
		return 0, fmt.Errorf("account id is required: %w", model.ErrNotValid)
	}
	if req.Amount <= 0 {
		return 0, fmt.Errorf("amount must be positive, got: %d: %w", req.Amount, model.ErrNotValid)
	}
	if req.Description == "" {
		req.Description = defaultDescription
	}

	balance, err := s.repo.AddCredits(ctx, req.AccountID, req.Amount, req.Description)
	if err != nil {
		return 0, fmt.Errorf("could not add credits: %w", err)
	}

	s.logger.Infof("Added %d credits to %s, balance %d", req.Amount, req.AccountID, balance)
	return balance, nil
}
