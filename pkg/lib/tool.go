package lib

import (
	"context"
	"fmt"

	"github.com/slok/wellhub/internal/app/toollist"
	"github.com/slok/wellhub/internal/credit"
	"github.com/slok/wellhub/internal/model"
	"github.com/slok/wellhub/internal/notify"
	"github.com/slok/wellhub/internal/runner"
)

// ToolSort is the order of the listed tools.
type ToolSort string

const (
	// ToolSortCatalog keeps the catalog order.
	ToolSortCatalog ToolSort = ""
	ToolSortName    ToolSort = ToolSort(toollist.SortByName)
	ToolSortCost    ToolSort = ToolSort(toollist.SortByCost)
)

// ListToolsOpts filters the listed tools.
type ListToolsOpts struct {
	// Search matches name, description and category, case insensitive.
	Search string
	SortBy ToolSort
}

// ListTools returns the tool catalog. Pass nil opts to list everything.
func (c *Client) ListTools(ctx context.Context, opts *ListToolsOpts) ([]Tool, error) {
	svc, err := toollist.NewService(toollist.ServiceConfig{
		Repository: c.tools,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	req := toollist.Request{}
	if opts != nil {
		req.Search = opts.Search
		req.SortBy = toollist.SortBy(opts.SortBy)
	}

	tools, err := svc.Run(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalTools(tools), nil
}

// RunnerOpts configures a tool runner.
type RunnerOpts struct {
	// AccountID pays for the runs. Required.
	AccountID string
	// OnProgress is called on every change of a run.
	OnProgress func(TaskRun)
	// OnNotice receives the insufficient credits, completion and failure notices.
	OnNotice func(Notice)
}

// Runner runs the catalog tools of an account. Every tool has at most one run
// in progress, runs of different tools are concurrent.
type Runner struct {
	r *runner.Runner
}

// NewRunner returns a runner for the account with the current catalog.
func (c *Client) NewRunner(ctx context.Context, opts RunnerOpts) (*Runner, error) {
	tools, err := c.tools.ListTools(ctx)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not load tools: %w", err))
	}

	ledger, err := credit.NewAccount(credit.AccountConfig{
		AccountID:  opts.AccountID,
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create account: %w: %w", err, ErrNotValid)
	}

	var notifier notify.Notifier = notify.Noop
	if opts.OnNotice != nil {
		notifier = notify.NotifierFunc(func(_ context.Context, n model.Notice) { opts.OnNotice(fromInternalNotice(n)) })
	}

	var onProgress func(model.TaskRun)
	if opts.OnProgress != nil {
		onProgress = func(r model.TaskRun) { opts.OnProgress(fromInternalTaskRun(r)) }
	}

	r, err := runner.NewRunner(runner.RunnerConfig{
		Tools:        tools,
		Ledger:       ledger,
		Notifier:     notifier,
		Repository:   c.repo,
		TickInterval: c.tickInterval,
		TickStep:     c.tickStep,
		AccountID:    opts.AccountID,
		OnProgress:   onProgress,
		Logger:       c.logger,
	})
	if err != nil {
		return nil, mapError(fmt.Errorf("could not create runner: %w", err))
	}

	return &Runner{r: r}, nil
}

// Run starts a tool run and returns without waiting for it.
//
// Returns [ErrNotFound] for unknown tools, [ErrTaskAlreadyRunning] when the
// tool is in progress and [ErrInsufficientCredits] when the account can't pay it.
func (r *Runner) Run(ctx context.Context, toolID string) (*TaskRun, error) {
	run, err := r.r.Run(ctx, toolID)
	if err != nil {
		return nil, mapError(err)
	}
	out := fromInternalTaskRun(*run)
	return &out, nil
}

// Wait blocks until the latest run of the tool finishes.
func (r *Runner) Wait(ctx context.Context, toolID string) (*TaskRun, error) {
	run, err := r.r.Wait(ctx, toolID)
	if err != nil {
		return nil, mapError(err)
	}
	out := fromInternalTaskRun(*run)
	return &out, nil
}

// Get returns the latest run of the tool.
func (r *Runner) Get(toolID string) (*TaskRun, error) {
	run, err := r.r.Get(toolID)
	if err != nil {
		return nil, mapError(err)
	}
	out := fromInternalTaskRun(*run)
	return &out, nil
}

// List returns the latest run of every tool started on this runner.
func (r *Runner) List() []TaskRun {
	return fromInternalTaskRuns(r.r.List())
}

// RunTool runs a tool for an account and waits until it finishes.
func (c *Client) RunTool(ctx context.Context, accountID, toolID string) (*TaskRun, error) {
	r, err := c.NewRunner(ctx, RunnerOpts{AccountID: accountID})
	if err != nil {
		return nil, err
	}

	if _, err := r.Run(ctx, toolID); err != nil {
		return nil, err
	}
	return r.Wait(ctx, toolID)
}
