package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/wellhub/internal/log"
	"github.com/slok/wellhub/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository.
type Repository struct {
	users        map[string]model.User
	balances     map[string]int
	transactions map[string][]model.CreditTransaction
	runs         map[string]model.TaskRun
	mu           sync.RWMutex
	logger       log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		users:        make(map[string]model.User),
		balances:     make(map[string]int),
		transactions: make(map[string][]model.CreditTransaction),
		runs:         make(map[string]model.TaskRun),
		logger:       cfg.Logger,
	}, nil
}

// CreateUser creates a new user in the repository.
func (r *Repository) CreateUser(ctx context.Context, u model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; ok {
		return fmt.Errorf("user with id %s: %w", u.ID, model.ErrAlreadyExists)
	}

	for _, existing := range r.users {
		if existing.Username == u.Username {
			return fmt.Errorf("user with username %s: %w", u.Username, model.ErrAlreadyExists)
		}
		if strings.EqualFold(existing.Email, u.Email) {
			return fmt.Errorf("user with email %s: %w", u.Email, model.ErrAlreadyExists)
		}
	}

	r.users[u.ID] = u
	r.logger.Debugf("Created user in repository: %s", u.ID)

	return nil
}

// GetUserByUsername retrieves a user by username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			userCopy := u
			return &userCopy, nil
		}
	}

	return nil, fmt.Errorf("user with username %s: %w", username, model.ErrNotFound)
}

// GetUserByEmail retrieves a user by email, case insensitive.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			userCopy := u
			return &userCopy, nil
		}
	}

	return nil, fmt.Errorf("user with email %s: %w", email, model.ErrNotFound)
}

// GetBalance returns the credit balance of an account.
func (r *Repository) GetBalance(ctx context.Context, accountID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.balances[accountID], nil
}

// AddCredits tops up an account.
func (r *Repository) AddCredits(ctx context.Context, accountID string, amount int, description string) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive: %w", model.ErrNotValid)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.balances[accountID] += amount
	r.transactions[accountID] = append(r.transactions[accountID], model.CreditTransaction{
		ID:          newID(),
		AccountID:   accountID,
		Amount:      amount,
		ActionType:  model.CreditActionTopUp,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	})
	r.logger.Debugf("Added %d credits to account %s", amount, accountID)

	return r.balances[accountID], nil
}

// SpendCredits debits an account.
func (r *Repository) SpendCredits(ctx context.Context, accountID string, spend model.CreditSpend) (int, error) {
	if err := spend.Validate(); err != nil {
		return 0, fmt.Errorf("invalid spend: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	balance := r.balances[accountID]
	if balance < spend.Amount {
		return balance, fmt.Errorf("account %s has %d credits, %d required: %w", accountID, balance, spend.Amount, model.ErrInsufficientCredits)
	}

	r.balances[accountID] = balance - spend.Amount
	r.transactions[accountID] = append(r.transactions[accountID], model.CreditTransaction{
		ID:           newID(),
		AccountID:    accountID,
		Amount:       -spend.Amount,
		ActionType:   spend.ActionType,
		Description:  spend.Description,
		ResourceID:   spend.ResourceID,
		ResourceType: spend.ResourceType,
		CreatedAt:    time.Now().UTC(),
	})
	r.logger.Debugf("Spent %d credits from account %s", spend.Amount, accountID)

	return r.balances[accountID], nil
}

// ListCreditTransactions returns the credit history of an account.
func (r *Repository) ListCreditTransactions(ctx context.Context, accountID string) ([]model.CreditTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	txs := make([]model.CreditTransaction, len(r.transactions[accountID]))
	copy(txs, r.transactions[accountID])

	return txs, nil
}

// SaveTaskRun creates or replaces a task run.
func (r *Repository) SaveTaskRun(ctx context.Context, run model.TaskRun) error {
	if run.ID == "" {
		return fmt.Errorf("id is required: %w", model.ErrNotValid)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.runs[run.ID] = run
	r.logger.Debugf("Saved task run in repository: %s", run.ID)

	return nil
}

// GetTaskRun retrieves a task run by ID.
func (r *Repository) GetTaskRun(ctx context.Context, id string) (*model.TaskRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return nil, fmt.Errorf("task run %s: %w", id, model.ErrNotFound)
	}

	runCopy := run
	return &runCopy, nil
}

// ListTaskRuns returns the task runs of an account, newest first.
func (r *Repository) ListTaskRuns(ctx context.Context, accountID string) ([]model.TaskRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := make([]model.TaskRun, 0, len(r.runs))
	for _, run := range r.runs {
		if accountID != "" && run.AccountID != accountID {
			continue
		}
		runs = append(runs, run)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].ID > runs[j].ID
		}
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	return runs, nil
}

func newID() string { return ulid.Make().String() }
