package runner

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/wellhub/internal/credit"
	"github.com/slok/wellhub/internal/log"
	"github.com/slok/wellhub/internal/model"
	"github.com/slok/wellhub/internal/notify"
	"github.com/slok/wellhub/internal/scheduler"
	"github.com/slok/wellhub/internal/storage"
)

const (
	// DefaultTickInterval is the time between progress increments.
	DefaultTickInterval = 200 * time.Millisecond
	// DefaultTickStep is the progress percentage added on every tick.
	DefaultTickStep = 5

	resourceTypeTaskRun = "task_run"
)

// RunnerConfig is the configuration for the tool runner.
type RunnerConfig struct {
	// Tools is the catalog of runnable tools.
	Tools     []model.Tool
	Ledger    credit.Ledger
	Notifier  notify.Notifier
	Scheduler scheduler.Scheduler
	// Repository is optional, when set the runs are persisted on start and on finish.
	Repository storage.TaskRunRepository
	// Builders by tool ID. Tools without builder get a generic result.
	Builders     map[string]ResultBuilder
	TickInterval time.Duration
	TickStep     int
	// AccountID is set on the created runs.
	AccountID string
	// Rand is the source used by the result builders.
	Rand *rand.Rand
	// OnProgress is called after every change of a run, outside the runner lock.
	OnProgress func(model.TaskRun)
	Logger     log.Logger
}

func (c *RunnerConfig) defaults() error {
	if c.Ledger == nil {
		return fmt.Errorf("ledger is required")
	}

	ids := map[string]bool{}
	for _, t := range c.Tools {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("invalid tool %q: %w", t.ID, err)
		}
		if ids[t.ID] {
			return fmt.Errorf("tool %q is duplicated", t.ID)
		}
		ids[t.ID] = true
	}

	if c.Notifier == nil {
		c.Notifier = notify.Noop
	}
	if c.Scheduler == nil {
		c.Scheduler = scheduler.Clock
	}
	if c.Builders == nil {
		c.Builders = DefaultBuilders()
	}
	if c.TickInterval == 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.TickInterval < 0 {
		return fmt.Errorf("tick interval can't be negative")
	}
	if c.TickStep == 0 {
		c.TickStep = DefaultTickStep
	}
	if c.TickStep < 0 || c.TickStep > 100 {
		return fmt.Errorf("tick step must be between 1 and 100")
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if c.OnProgress == nil {
		c.OnProgress = func(model.TaskRun) {}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "runner.Runner"})

	return nil
}

type entry struct {
	run   model.TaskRun
	tool  model.Tool
	timer scheduler.Timer
	done  chan struct{}
}

// Runner runs smart tools as simulated long running tasks. A run is charged
// once, when it reaches 100% progress, and at that same moment gets its result.
//
// Runner is safe for concurrent use. Different tools run independently.
type Runner struct {
	tools        map[string]model.Tool
	catalog      []model.Tool
	ledger       credit.Ledger
	notifier     notify.Notifier
	scheduler    scheduler.Scheduler
	repo         storage.TaskRunRepository
	builders     map[string]ResultBuilder
	tickInterval time.Duration
	tickStep     int
	accountID    string
	onProgress   func(model.TaskRun)
	logger       log.Logger

	mu   sync.Mutex
	rand *rand.Rand
	runs map[string]*entry
}

// NewRunner returns a new runner.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	tools := make(map[string]model.Tool, len(cfg.Tools))
	for _, t := range cfg.Tools {
		tools[t.ID] = t
	}

	return &Runner{
		tools:        tools,
		catalog:      slices.Clone(cfg.Tools),
		ledger:       cfg.Ledger,
		notifier:     cfg.Notifier,
		scheduler:    cfg.Scheduler,
		repo:         cfg.Repository,
		builders:     cfg.Builders,
		tickInterval: cfg.TickInterval,
		tickStep:     cfg.TickStep,
		accountID:    cfg.AccountID,
		onProgress:   cfg.OnProgress,
		logger:       cfg.Logger,
		rand:         cfg.Rand,
		runs:         map[string]*entry{},
	}, nil
}

// Tools returns the tool catalog.
func (r *Runner) Tools() []model.Tool {
	return slices.Clone(r.catalog)
}

// Run starts a tool. The credit balance is checked before starting, when it's
// not enough a warning notice is sent and nothing else happens. The returned
// run is the state right after starting.
func (r *Runner) Run(ctx context.Context, taskID string) (*model.TaskRun, error) {
	tool, ok := r.tools[taskID]
	if !ok {
		return nil, fmt.Errorf("tool %q: %w", taskID, model.ErrNotFound)
	}

	if r.isRunning(taskID) {
		return nil, fmt.Errorf("tool %q: %w", taskID, model.ErrTaskAlreadyRunning)
	}

	enough, err := r.ledger.HasEnoughCredits(ctx, tool.CreditCost)
	if err != nil {
		return nil, fmt.Errorf("could not check credits: %w", err)
	}
	if !enough {
		r.logger.Warningf("Not enough credits to run %s", taskID)
		r.notifier.Notify(ctx, model.Notice{
			Title:       "Insufficient credits",
			Description: fmt.Sprintf("You need %d credits to run %s.", tool.CreditCost, tool.Name),
			Variant:     model.NoticeVariantWarning,
		})
		return nil, fmt.Errorf("tool %q costs %d: %w", taskID, tool.CreditCost, model.ErrInsufficientCredits)
	}

	// Ticks outlive the caller request.
	bgCtx := context.WithoutCancel(ctx)

	r.mu.Lock()
	if e, ok := r.runs[taskID]; ok && e.run.Status == model.TaskStatusRunning {
		r.mu.Unlock()
		return nil, fmt.Errorf("tool %q: %w", taskID, model.ErrTaskAlreadyRunning)
	}

	e := &entry{
		tool: tool,
		done: make(chan struct{}),
		run: model.TaskRun{
			ID:              ulid.Make().String(),
			TaskID:          taskID,
			AccountID:       r.accountID,
			Status:          model.TaskStatusRunning,
			ProgressPercent: 0,
			CreditCost:      tool.CreditCost,
			StartedAt:       time.Now().UTC(),
		},
	}
	r.runs[taskID] = e
	r.save(bgCtx, e.run)
	e.timer = r.scheduler.Every(r.tickInterval, func() { r.tick(bgCtx, e) })
	run := copyRun(e.run)
	r.mu.Unlock()

	r.logger.Infof("Started %s run %s", taskID, run.ID)
	r.onProgress(run)

	return &run, nil
}

func (r *Runner) tick(ctx context.Context, e *entry) {
	r.mu.Lock()
	if e.run.Status != model.TaskStatusRunning {
		r.mu.Unlock()
		return
	}

	e.run.ProgressPercent += r.tickStep
	if e.run.ProgressPercent < 100 {
		run := copyRun(e.run)
		r.mu.Unlock()
		r.onProgress(run)
		return
	}

	// Completion. Debit, result and status change together.
	e.timer.Stop()
	defer close(e.done)

	if err := r.spend(ctx, e); err != nil {
		e.run.Status = model.TaskStatusIdle
		e.run.ProgressPercent = 0
		e.run.Error = err.Error()
		r.save(ctx, e.run)
		run := copyRun(e.run)
		r.mu.Unlock()

		r.logger.Errorf("Run %s of %s could not be charged: %s", run.ID, run.TaskID, err)
		r.onProgress(run)
		r.notifier.Notify(ctx, model.Notice{
			Title:       fmt.Sprintf("%s failed", e.tool.Name),
			Description: err.Error(),
			Variant:     model.NoticeVariantDestructive,
		})
		return
	}

	now := time.Now().UTC()
	e.run.ProgressPercent = 100
	e.run.Result = r.buildResult(e.tool.ID)
	e.run.Status = model.TaskStatusCompleted
	e.run.CompletedAt = &now
	r.save(ctx, e.run)
	run := copyRun(e.run)
	r.mu.Unlock()

	r.logger.Infof("Completed %s run %s", run.TaskID, run.ID)
	r.onProgress(run)
	r.notifier.Notify(ctx, model.Notice{
		Title:       fmt.Sprintf("%s completed", e.tool.Name),
		Description: fmt.Sprintf("Your results are ready. %d credits were used.", e.tool.CreditCost),
		Variant:     model.NoticeVariantSuccess,
	})
}

func (r *Runner) spend(ctx context.Context, e *entry) error {
	// Free tools are not charged.
	if e.tool.CreditCost == 0 {
		return nil
	}

	return r.ledger.SpendCredits(ctx, model.CreditSpend{
		Amount:       e.tool.CreditCost,
		ActionType:   model.CreditActionToolRun,
		Description:  fmt.Sprintf("Ran %s", e.tool.Name),
		ResourceID:   e.run.ID,
		ResourceType: resourceTypeTaskRun,
	})
}

func (r *Runner) buildResult(toolID string) model.ToolResult {
	b, ok := r.builders[toolID]
	if !ok {
		return GenericResultBuilder(toolID).Build(r.rand)
	}
	return b.Build(r.rand)
}

// save persists the run, storage failures don't affect the run.
func (r *Runner) save(ctx context.Context, run model.TaskRun) {
	if r.repo == nil {
		return
	}
	if err := r.repo.SaveTaskRun(ctx, run); err != nil {
		r.logger.Warningf("Could not persist run %s: %s", run.ID, err)
	}
}

func (r *Runner) isRunning(taskID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.runs[taskID]
	return ok && e.run.Status == model.TaskStatusRunning
}

// Get returns the latest run of a tool.
func (r *Runner) Get(taskID string) (*model.TaskRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.runs[taskID]
	if !ok {
		return nil, fmt.Errorf("run of %q: %w", taskID, model.ErrNotFound)
	}
	run := copyRun(e.run)
	return &run, nil
}

// Wait blocks until the latest run of a tool finishes or the context is done.
func (r *Runner) Wait(ctx context.Context, taskID string) (*model.TaskRun, error) {
	r.mu.Lock()
	e, ok := r.runs[taskID]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("run of %q: %w", taskID, model.ErrNotFound)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-e.done:
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	run := copyRun(e.run)
	return &run, nil
}

// List returns the latest run of every tool sorted by tool ID.
func (r *Runner) List() []model.TaskRun {
	r.mu.Lock()
	defer r.mu.Unlock()

	runs := make([]model.TaskRun, 0, len(r.runs))
	for _, e := range r.runs {
		runs = append(runs, copyRun(e.run))
	}
	slices.SortFunc(runs, func(a, b model.TaskRun) int { return strings.Compare(a.TaskID, b.TaskID) })

	return runs
}

func copyRun(r model.TaskRun) model.TaskRun {
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		r.CompletedAt = &t
	}
	return r
}
