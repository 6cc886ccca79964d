package lib

import (
	"context"
	"fmt"

	"github.com/slok/wellhub/internal/app/creditbalance"
	"github.com/slok/wellhub/internal/app/credittopup"
	"github.com/slok/wellhub/internal/app/runlist"
	"github.com/slok/wellhub/internal/model"
)

// Balance returns the credits of an account. Unknown accounts have zero credits.
func (c *Client) Balance(ctx context.Context, accountID string) (int, error) {
	resp, err := c.creditBalance(ctx, accountID, false)
	if err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

// ListTransactions returns the account history, oldest first.
func (c *Client) ListTransactions(ctx context.Context, accountID string) ([]CreditTransaction, error) {
	resp, err := c.creditBalance(ctx, accountID, true)
	if err != nil {
		return nil, err
	}
	return fromInternalTransactions(resp.Transactions), nil
}

func (c *Client) creditBalance(ctx context.Context, accountID string, history bool) (*creditbalance.Response, error) {
	svc, err := creditbalance.NewService(creditbalance.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, creditbalance.Request{AccountID: accountID, WithHistory: history})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

// AddCredits tops up an account and returns the new balance.
func (c *Client) AddCredits(ctx context.Context, accountID string, amount int, description string) (int, error) {
	svc, err := credittopup.NewService(credittopup.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return 0, fmt.Errorf("could not create service: %w", err)
	}

	balance, err := svc.Run(ctx, credittopup.Request{
		AccountID:   accountID,
		Amount:      amount,
		Description: description,
	})
	if err != nil {
		return 0, mapError(err)
	}
	return balance, nil
}

// ListRunsOpts filters the listed runs.
type ListRunsOpts struct {
	ToolID string
	Status *TaskStatus
}

// ListRuns returns the persisted runs of an account, newest first. An empty
// account lists the runs of every account. Pass nil opts for no filters.
func (c *Client) ListRuns(ctx context.Context, accountID string, opts *ListRunsOpts) ([]TaskRun, error) {
	svc, err := runlist.NewService(runlist.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	req := runlist.Request{AccountID: accountID}
	if opts != nil {
		req.ToolFilter = opts.ToolID
		if opts.Status != nil {
			s := model.TaskStatus(*opts.Status)
			req.StatusFilter = &s
		}
	}

	runs, err := svc.Run(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return fromInternalTaskRuns(runs), nil
}
