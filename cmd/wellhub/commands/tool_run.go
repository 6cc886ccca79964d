package commands

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"golang.org/x/sync/errgroup"

	"github.com/slok/wellhub/internal/credit"
	"github.com/slok/wellhub/internal/model"
	"github.com/slok/wellhub/internal/printer"
	"github.com/slok/wellhub/internal/runner"
)

// ToolRunCommand runs one or more smart tools.
type ToolRunCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	toolIDs      []string
	tickInterval time.Duration
	tickStep     int
	noProgress   bool
	format       string
}

// NewToolRunCommand returns the tool run command.
func NewToolRunCommand(rootCmd *RootCommand, toolCmd *kingpin.CmdClause) *ToolRunCommand {
	c := &ToolRunCommand{rootCmd: rootCmd}

	c.Cmd = toolCmd.Command("run", "Run smart tools, multiple tools run at the same time.")
	c.Cmd.Arg("tool-id", "Tool IDs to run.").Required().StringsVar(&c.toolIDs)
	c.Cmd.Flag("tick-interval", "Time between progress updates.").Default(runner.DefaultTickInterval.String()).DurationVar(&c.tickInterval)
	c.Cmd.Flag("tick-step", "Progress percentage added on every update.").Default(fmt.Sprint(runner.DefaultTickStep)).IntVar(&c.tickStep)
	c.Cmd.Flag("no-progress", "Don't show the progress bar.").BoolVar(&c.noProgress)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c ToolRunCommand) Name() string { return c.Cmd.FullCommand() }

func (c ToolRunCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	toolRepo, err := c.rootCmd.newToolRepository()
	if err != nil {
		return err
	}
	tools, err := toolRepo.ListTools(ctx)
	if err != nil {
		return fmt.Errorf("could not load tools: %w", err)
	}

	account, err := credit.NewAccount(credit.AccountConfig{
		AccountID:  c.rootCmd.AccountID,
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create credit account: %w", err)
	}

	onProgress := func(model.TaskRun) {}
	progress := printer.NewRunProgress(c.rootCmd.Stderr)
	if !c.noProgress {
		onProgress = progress.Update
	}

	r, err := runner.NewRunner(runner.RunnerConfig{
		Tools:        tools,
		Ledger:       account,
		Notifier:     c.rootCmd.newNotifier(),
		Repository:   repo,
		TickInterval: c.tickInterval,
		TickStep:     c.tickStep,
		AccountID:    c.rootCmd.AccountID,
		OnProgress:   onProgress,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("could not create runner: %w", err)
	}

	ids := slices.Compact(slices.Sorted(slices.Values(c.toolIDs)))

	// Every tool runs until it finishes, the first error is returned.
	var (
		eg       errgroup.Group
		mu       sync.Mutex
		finished []model.TaskRun
	)
	for _, id := range ids {
		eg.Go(func() error {
			if _, err := r.Run(ctx, id); err != nil {
				return fmt.Errorf("could not run %s: %w", id, err)
			}

			run, err := r.Wait(ctx, id)
			if err != nil {
				return fmt.Errorf("could not wait for %s: %w", id, err)
			}

			mu.Lock()
			finished = append(finished, *run)
			mu.Unlock()

			if run.Status != model.TaskStatusCompleted {
				return fmt.Errorf("%s did not complete: %s", id, run.Error)
			}
			return nil
		})
	}
	runErr := eg.Wait()

	if !c.noProgress {
		progress.Finish()
	}

	slices.SortFunc(finished, func(a, b model.TaskRun) int { return slices.Index(ids, a.TaskID) - slices.Index(ids, b.TaskID) })
	p := c.rootCmd.newPrinter(c.format)
	if c.format == formatJSON {
		if err := p.PrintRuns(finished); err != nil {
			return fmt.Errorf("could not print runs: %w", err)
		}
		return runErr
	}

	for i, run := range finished {
		if i > 0 {
			_ = p.PrintMessage("")
		}
		if err := p.PrintRun(run); err != nil {
			return fmt.Errorf("could not print run: %w", err)
		}
	}

	return runErr
}
