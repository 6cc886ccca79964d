package lib

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/slok/wellhub/internal/conventions"
	"github.com/slok/wellhub/internal/log"
	"github.com/slok/wellhub/internal/model"
	"github.com/slok/wellhub/internal/runner"
	"github.com/slok/wellhub/internal/storage"
	storageio "github.com/slok/wellhub/internal/storage/io"
	"github.com/slok/wellhub/internal/storage/memory"
	"github.com/slok/wellhub/internal/storage/sqlite"
)

// Config configures the SDK client.
//
// All fields are optional and have sensible defaults. At minimum, an empty
// Config{} will use ~/.wellhub/wellhub.db for storage and the built-in tool catalog.
type Config struct {
	// DBPath is the SQLite database path.
	// Default: ~/.wellhub/wellhub.db.
	DBPath string

	// DataDir is the base directory for wellhub data.
	// Default: ~/.wellhub.
	DataDir string

	// InMemory keeps everything in memory instead of SQLite, nothing survives
	// the client. Useful for tests.
	InMemory bool

	// Tools replaces the tool catalog. When empty, DataDir/catalog.yaml is used
	// if present, otherwise the built-in catalog.
	Tools []Tool

	// WelcomeCredits are granted to every registered user account.
	// Default: 100. Use a negative value to disable them.
	WelcomeCredits int

	// TickInterval and TickStep control the simulated tool progress.
	// Default: 200ms and 5%.
	TickInterval time.Duration
	TickStep     int

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not get user home dir: %w", err)
		}
		c.DataDir = filepath.Join(home, conventions.DefaultDataDir)
	}

	if c.DBPath == "" {
		c.DBPath = conventions.DBPath(c.DataDir)
	}

	switch {
	case c.WelcomeCredits == 0:
		c.WelcomeCredits = conventions.DefaultWelcomeCredits
	case c.WelcomeCredits < 0:
		c.WelcomeCredits = 0
	}

	if c.TickInterval < 0 {
		return fmt.Errorf("tick interval can't be negative")
	}
	if c.TickInterval == 0 {
		c.TickInterval = runner.DefaultTickInterval
	}
	if c.TickStep == 0 {
		c.TickStep = runner.DefaultTickStep
	}
	if c.TickStep < 1 || c.TickStep > 100 {
		return fmt.Errorf("tick step must be between 1 and 100")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Client is the main SDK entry point for the wellness platform.
//
// Create a Client with [New] and release its resources with [Client.Close].
// A Client is safe for concurrent use.
type Client struct {
	repo           storage.Repository
	tools          storage.ToolRepository
	logger         log.Logger
	welcomeCredits int
	tickInterval   time.Duration
	tickStep       int
	closeFn        func() error
}

// New creates a new SDK client.
//
// The caller must call [Client.Close] when done to release the database
// connection. Typically used with defer:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &Client{
		logger:         cfg.Logger,
		welcomeCredits: cfg.WelcomeCredits,
		tickInterval:   cfg.TickInterval,
		tickStep:       cfg.TickStep,
		tools:          newToolRepository(cfg),
	}

	if cfg.InMemory {
		repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: cfg.Logger})
		if err != nil {
			return nil, fmt.Errorf("could not create repository: %w", err)
		}
		c.repo = repo
		return c, nil
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: cfg.DBPath,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}
	c.repo = repo
	c.closeFn = repo.Close

	return c, nil
}

// Close releases resources held by the client, including the database connection.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}

func newToolRepository(cfg Config) storage.ToolRepository {
	if len(cfg.Tools) > 0 {
		return staticTools(toInternalTools(cfg.Tools))
	}

	if _, err := os.Stat(conventions.CatalogPath(cfg.DataDir)); err == nil {
		return storageio.NewCatalogYAMLRepository(os.DirFS(cfg.DataDir), conventions.CatalogFile)
	}

	return storageio.NewDefaultCatalogRepository()
}

type staticTools []model.Tool

func (s staticTools) ListTools(_ context.Context) ([]model.Tool, error) {
	for _, t := range s {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("invalid tool %q: %w", t.ID, err)
		}
	}
	return append([]model.Tool(nil), s...), nil
}
