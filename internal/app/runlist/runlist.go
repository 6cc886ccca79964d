package runlist

import (
	"context"
	"fmt"

	"github.com/slok/wellhub/internal/log"
	"github.com/slok/wellhub/internal/model"
	"github.com/slok/wellhub/internal/storage"
)

// ServiceConfig is the configuration for the run list service.
type ServiceConfig struct {
	Repository storage.TaskRunRepository
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

// Service lists the tool runs history.
type Service struct {
	repo   storage.TaskRunRepository
	logger log.Logger
}

// NewService creates a new run list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the list request parameters.
type Request struct {
	AccountID string
	// ToolFilter is an optional filter to only show runs of this tool.
	ToolFilter string
	// StatusFilter is an optional filter to only show runs with this status.
	StatusFilter *model.TaskStatus
}

// Run lists the runs, newest first.
func (s *Service) Run(ctx context.Context, req Request) ([]model.TaskRun, error) {
	s.logger.Debugf("listing runs of account %q with tool filter %q", req.AccountID, req.ToolFilter)

	runs, err := s.repo.ListTaskRuns(ctx, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("could not list runs: %w", err)
	}

	filtered := make([]model.TaskRun, 0, len(runs))
	for _, r := range runs {
		if req.ToolFilter != "" && r.TaskID != req.ToolFilter {
			continue
		}
		if req.StatusFilter != nil && r.Status != *req.StatusFilter {
			continue
		}
		filtered = append(filtered, r)
	}

	s.logger.Debugf("found %d runs", len(filtered))
	return filtered, nil
}
