package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/wellhub/internal/model"
)

// GetBalance returns the credit balance of an account.
func (r *Repository) GetBalance(ctx context.Context, accountID string) (int, error) {
	return getBalance(ctx, r.db, accountID)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getBalance(ctx context.Context, q queryRower, accountID string) (int, error) {
	var balance int
	err := q.QueryRowContext(ctx, `SELECT balance FROM credit_balances WHERE account_id = ?`, accountID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("could not query balance: %w", err)
	}

	return balance, nil
}

// AddCredits tops up an account.
func (r *Repository) AddCredits(ctx context.Context, accountID string, amount int, description string) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive: %w", model.ErrNotValid)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // Rollback is safe to call after Commit

	query := `
		INSERT INTO credit_balances (account_id, balance) VALUES (?, ?)
		ON CONFLICT (account_id) DO UPDATE SET balance = balance + excluded.balance
	`
	if _, err := tx.ExecContext(ctx, query, accountID, amount); err != nil {
		return 0, fmt.Errorf("could not update balance: %w", err)
	}

	err = insertTransaction(ctx, tx, model.CreditTransaction{
		AccountID:   accountID,
		Amount:      amount,
		ActionType:  model.CreditActionTopUp,
		Description: description,
	})
	if err != nil {
		return 0, err
	}

	balance, err := getBalance(ctx, tx, accountID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Added %d credits to account %s", amount, accountID)
	return balance, nil
}

// SpendCredits debits an account.
func (r *Repository) SpendCredits(ctx context.Context, accountID string, spend model.CreditSpend) (int, error) {
	if err := spend.Validate(); err != nil {
		return 0, fmt.Errorf("invalid spend: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // Rollback is safe to call after Commit

	// Check and debit in a single statement so concurrent spends can't overdraw.
	query := `UPDATE credit_balances SET balance = balance - ? WHERE account_id = ? AND balance >= ?`
	result, err := tx.ExecContext(ctx, query, spend.Amount, accountID, spend.Amount)
	if err != nil {
		return 0, fmt.Errorf("could not update balance: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not get rows affected: %w", err)
	}

	if rows == 0 {
		balance, err := getBalance(ctx, tx, accountID)
		if err != nil {
			return 0, err
		}
		return balance, fmt.Errorf("account %s has %d credits, %d required: %w", accountID, balance, spend.Amount, model.ErrInsufficientCredits)
	}

	err = insertTransaction(ctx, tx, model.CreditTransaction{
		AccountID:    accountID,
		Amount:       -spend.Amount,
		ActionType:   spend.ActionType,
		Description:  spend.Description,
		ResourceID:   spend.ResourceID,
		ResourceType: spend.ResourceType,
	})
	if err != nil {
		return 0, err
	}

	balance, err := getBalance(ctx, tx, accountID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Spent %d credits from account %s", spend.Amount, accountID)
	return balance, nil
}

// ListCreditTransactions returns the credit history of an account.
func (r *Repository) ListCreditTransactions(ctx context.Context, accountID string) ([]model.CreditTransaction, error) {
	query := `
		SELECT id, account_id, amount, action_type, description, resource_id, resource_type, created_at
		FROM credit_transactions
		WHERE account_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("could not query transactions: %w", err)
	}
	defer rows.Close()

	txs := []model.CreditTransaction{}
	for rows.Next() {
		var t model.CreditTransaction
		var createdAt int64
		err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.Amount,
			&t.ActionType,
			&t.Description,
			&t.ResourceID,
			&t.ResourceType,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		t.CreatedAt = timeFromUnix(createdAt)
		txs = append(txs, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return txs, nil
}

func insertTransaction(ctx context.Context, tx *sql.Tx, t model.CreditTransaction) error {
	query := `
		INSERT INTO credit_transactions (id, account_id, amount, action_type, description, resource_id, resource_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	id := ulid.Make().String()
	now := time.Now().UTC()
	_, err := tx.ExecContext(ctx, query, id, t.AccountID, t.Amount, t.ActionType, t.Description, t.ResourceID, t.ResourceType, now.Unix())
	if err != nil {
		return fmt.Errorf("could not insert transaction: %w", err)
	}

	return nil
}
