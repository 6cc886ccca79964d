package toollist

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/slok/wellhub/internal/log"
	"github.com/slok/wellhub/internal/model"
	"github.com/slok/wellhub/internal/storage"
)

// SortBy is the tool list order.
type SortBy string

const (
	// SortByCatalog keeps the catalog order.
	SortByCatalog SortBy = ""
	SortByName    SortBy = "name"
	SortByCost    SortBy = "cost"
)

// ServiceConfig is the configuration for the tool list service.
type ServiceConfig struct {
	Repository storage.ToolRepository
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

// Service lists the smart tools catalog with optional search and sorting.
type Service struct {
	repo   storage.ToolRepository
	logger log.Logger
}

// NewService creates a new tool list service.
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
	// Search is a case insensitive text matched against name, description and category.
	Search string
	SortBy SortBy
}

// Run lists the tools.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Tool, error) {
	switch req.SortBy {
	case SortByCatalog, SortByName, SortByCost:
	default:
		return nil, fmt.Errorf("unknown sort %q: %w", req.SortBy, model.ErrNotValid)
	}

	tools, err := s.repo.ListTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list tools: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(req.Search))
	if search != "" {
		filtered := make([]model.Tool, 0, len(tools))
		for _, t := range tools {
			if matches(t, search) {
				filtered = append(filtered, t)
			}
		}
		tools = filtered
	}

	switch req.SortBy {
	case SortByName:
		slices.SortStableFunc(tools, func(a, b model.Tool) int { return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) })
	case SortByCost:
		slices.SortStableFunc(tools, func(a, b model.Tool) int { return cmp.Compare(a.CreditCost, b.CreditCost) })
	}

	s.logger.Debugf("found %d tools", len(tools))
	return tools, nil
}

func matches(t model.Tool, search string) bool {
	for _, s := range []string{t.Name, t.Description, t.Category} {
		if strings.Contains(strings.ToLower(s), search) {
			return true
		}
	}
	return false
}
