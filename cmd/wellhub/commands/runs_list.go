package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/wellhub/internal/app/runlist"
	"github.com/slok/wellhub/internal/model"
)

// RunsListCommand lists the tool runs history.
type RunsListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	toolFilter   string
	statusFilter string
	allAccounts  bool
	format       string
}

// NewRunsListCommand returns the runs list command.
func NewRunsListCommand(rootCmd *RootCommand, runsCmd *kingpin.CmdClause) *RunsListCommand {
	c := &RunsListCommand{rootCmd: rootCmd}

	c.Cmd = runsCmd.Command("list", "List the tool runs, newest first.")
	c.Cmd.Flag("tool", "Filter by tool ID.").StringVar(&c.toolFilter)
	c.Cmd.Flag("status", "Filter by status (idle, running, completed).").StringVar(&c.statusFilter)
	c.Cmd.Flag("all-accounts", "List the runs of every account.").BoolVar(&c.allAccounts)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c RunsListCommand) Name() string { return c.Cmd.FullCommand() }

func (c RunsListCommand) Run(ctx context.Context) error {
	var statusFilter *model.TaskStatus
	if c.statusFilter != "" {
		status := model.TaskStatus(strings.ToLower(c.statusFilter))
		switch status {
		case model.TaskStatusIdle, model.TaskStatusRunning, model.TaskStatusCompleted:
			statusFilter = &status
		default:
			return fmt.Errorf("invalid status filter: %s (must be: idle, running, completed)", c.statusFilter)
		}
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := runlist.NewService(runlist.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	accountID := c.rootCmd.AccountID
	if c.allAccounts {
		accountID = ""
	}

	runs, err := svc.Run(ctx, runlist.Request{
		AccountID:    accountID,
		ToolFilter:   c.toolFilter,
		StatusFilter: statusFilter,
	})
	if err != nil {
		return fmt.Errorf("could not list runs: %w", err)
	}

	if err := c.rootCmd.newPrinter(c.format).PrintRuns(runs); err != nil {
		return fmt.Errorf("could not print runs: %w", err)
	}

	return nil
}
