package lib_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/wellhub/pkg/lib"
)

// newTestClient creates a client with a temp SQLite DB for test isolation.
func newTestClient(t *testing.T, cfg lib.Config) *lib.Client {
	t.Helper()

	if cfg.DataDir == "" {
		cfg.DataDir = t.TempDir()
	}
	if cfg.DBPath == "" && !cfg.InMemory {
		cfg.DBPath = filepath.Join(t.TempDir(), "test.db")
	}
	if cfg.TickInterval == 0 {
		cfg.TickInterval = time.Millisecond
	}

	client, err := lib.New(context.Background(), cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func validOpts() lib.RegisterOpts {
	return lib.RegisterOpts{
		Username:    "jdoe",
		Email:       "jdoe@example.com",
		Password:    "Secret123!",
		DisplayName: "John Doe",
		Department:  "Engineering",
	}
}

func TestNew(t *testing.T) {
	tests := map[string]struct {
		cfg    lib.Config
		expErr bool
	}{
		"Default in memory config should work.": {
			cfg: lib.Config{InMemory: true},
		},
		"Negative tick interval should fail.": {
			cfg:    lib.Config{InMemory: true, TickInterval: -1},
			expErr: true,
		},
		"Tick step over 100 should fail.": {
			cfg:    lib.Config{InMemory: true, TickStep: 101},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			test.cfg.DataDir = t.TempDir()
			client, err := lib.New(context.Background(), test.cfg)

			if test.expErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, client.Close())
		})
	}
}

func TestRegister(t *testing.T) {
	tests := map[string]struct {
		cfg        lib.Config
		opts       func() lib.RegisterOpts
		expBalance int
		expIs      error
	}{
		"Valid user should get the welcome credits.": {
			opts:       validOpts,
			expBalance: 100,
		},
		"Custom welcome credits should be granted.": {
			cfg:        lib.Config{WelcomeCredits: 10},
			opts:       validOpts,
			expBalance: 10,
		},
		"Disabled welcome credits should not grant anything.": {
			cfg:        lib.Config{WelcomeCredits: -1},
			opts:       validOpts,
			expBalance: 0,
		},
		"Invalid email should fail.": {
			opts: func() lib.RegisterOpts {
				o := validOpts()
				o.Email = "nope"
				return o
			},
			expIs: lib.ErrNotValid,
		},
		"Unknown role should fail.": {
			opts: func() lib.RegisterOpts {
				o := validOpts()
				o.Role = "root"
				return o
			},
			expIs: lib.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)
			ctx := context.Background()

			client := newTestClient(t, test.cfg)
			u, err := client.Register(ctx, test.opts())

			if test.expIs != nil {
				require.ErrorIs(err, test.expIs)
				return
			}
			require.NoError(err)
			assert.NotEmpty(u.ID)
			assert.Equal("user", u.Role)

			balance, err := client.Balance(ctx, u.Username)
			require.NoError(err)
			assert.Equal(test.expBalance, balance)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, lib.Config{})

	_, err := client.Register(ctx, validOpts())
	require.NoError(t, err)

	_, err = client.Register(ctx, validOpts())
	assert.ErrorIs(t, err, lib.ErrAlreadyExists)
}

func TestWizard(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	ctx := context.Background()

	var mu sync.Mutex
	var notices []lib.Notice
	redirected := make(chan string, 1)

	client := newTestClient(t, lib.Config{InMemory: true})
	w, err := client.NewWizard(lib.WizardOpts{
		OnNotice: func(n lib.Notice) {
			mu.Lock()
			defer mu.Unlock()
			notices = append(notices, n)
		},
		OnRedirect:    func(target string) { redirected <- target },
		RedirectDelay: time.Millisecond,
	})
	require.NoError(err)

	// Invalid account step.
	errs, err := w.Next()
	require.NoError(err)
	assert.Len(errs, 4)
	assert.Equal(1, w.State().Step)

	fields := map[lib.Field]string{
		lib.FieldUsername:        "jdoe",
		lib.FieldEmail:           "jdoe@example.com",
		lib.FieldPassword:        "Secret123!",
		lib.FieldConfirmPassword: "Secret123!",
		lib.FieldDisplayName:     "John Doe",
		lib.FieldDepartment:      "Engineering",
	}
	for f, v := range fields {
		require.NoError(w.SetField(f, v))
	}

	// Submitting before the review step fails.
	assert.ErrorIs(w.Submit(ctx), lib.ErrNotOnReviewStep)

	for i := 0; i < 3; i++ {
		errs, err := w.Next()
		require.NoError(err)
		require.Empty(errs)
	}
	assert.Equal("review", w.State().StepName)

	require.NoError(w.Submit(ctx))
	assert.ErrorIs(w.Submit(ctx), lib.ErrWizardClosed)

	select {
	case target := <-redirected:
		assert.Equal("/login", target)
	case <-time.After(5 * time.Second):
		t.Fatal("redirect not received")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(notices, 1)
	assert.Equal(lib.NoticeVariantSuccess, notices[0].Variant)
}

func TestPasswordStrength(t *testing.T) {
	score, label := lib.PasswordStrength("Secret123!")
	assert.Equal(t, 5, score)
	assert.Equal(t, "Strong", label)
	assert.Contains(t, lib.Departments(), "Engineering")
}

func TestListTools(t *testing.T) {
	tests := map[string]struct {
		cfg    lib.Config
		opts   *lib.ListToolsOpts
		expIDs []string
	}{
		"Default catalog should be listed in order.": {
			expIDs: []string{
				lib.ToolIDHealthAssessment,
				lib.ToolIDNutritionPlanner,
				lib.ToolIDStressAnalyzer,
				lib.ToolIDSleepOptimizer,
			},
		},
		"Sorting by cost should put cheapest first.": {
			opts: &lib.ListToolsOpts{SortBy: lib.ToolSortCost},
			expIDs: []string{
				lib.ToolIDSleepOptimizer,
				lib.ToolIDStressAnalyzer,
				lib.ToolIDHealthAssessment,
				lib.ToolIDNutritionPlanner,
			},
		},
		"Custom tools should replace the catalog.": {
			cfg: lib.Config{Tools: []lib.Tool{
				{ID: "breathing", Name: "Breathing coach", Category: "mental", CreditCost: 5},
			}},
			opts:   &lib.ListToolsOpts{Search: "MENTAL"},
			expIDs: []string{"breathing"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			test.cfg.InMemory = true
			client := newTestClient(t, test.cfg)

			tools, err := client.ListTools(context.Background(), test.opts)
			require.NoError(t, err)

			ids := []string{}
			for _, tool := range tools {
				ids = append(ids, tool.ID)
			}
			assert.Equal(t, test.expIDs, ids)
		})
	}
}

func TestRunTool(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	ctx := context.Background()

	client := newTestClient(t, lib.Config{TickStep: 20})

	_, err := client.AddCredits(ctx, "ana", 20, "")
	require.NoError(err)

	var mu sync.Mutex
	var progress []int
	r, err := client.NewRunner(ctx, lib.RunnerOpts{
		AccountID: "ana",
		OnProgress: func(run lib.TaskRun) {
			mu.Lock()
			defer mu.Unlock()
			progress = append(progress, run.ProgressPercent)
		},
	})
	require.NoError(err)

	_, err = r.Run(ctx, "unknown")
	assert.ErrorIs(err, lib.ErrNotFound)

	// 25 credits needed, only 20 available.
	_, err = r.Run(ctx, lib.ToolIDHealthAssessment)
	assert.ErrorIs(err, lib.ErrInsufficientCredits)

	_, err = r.Run(ctx, lib.ToolIDSleepOptimizer)
	require.NoError(err)
	run, err := r.Wait(ctx, lib.ToolIDSleepOptimizer)
	require.NoError(err)

	assert.Equal(lib.TaskStatusCompleted, run.Status)
	assert.Equal(100, run.ProgressPercent)
	assert.NotNil(run.CompletedAt)
	_, ok := run.Result.(lib.SleepOptimizationResult)
	assert.True(ok)

	mu.Lock()
	assert.Equal([]int{0, 20, 40, 60, 80, 100}, progress)
	mu.Unlock()

	balance, err := client.Balance(ctx, "ana")
	require.NoError(err)
	assert.Equal(5, balance)

	txs, err := client.ListTransactions(ctx, "ana")
	require.NoError(err)
	require.Len(txs, 2)
	assert.Equal(-15, txs[1].Amount)
	assert.Equal(run.ID, txs[1].ResourceID)

	completed := lib.TaskStatusCompleted
	runs, err := client.ListRuns(ctx, "ana", &lib.ListRunsOpts{Status: &completed})
	require.NoError(err)
	require.Len(runs, 1)
	assert.Equal(run.ID, runs[0].ID)
}
