package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/slok/wellhub/internal/model"
)

// SaveTaskRun creates or replaces a task run.
func (r *Repository) SaveTaskRun(ctx context.Context, run model.TaskRun) error {
	if run.ID == "" {
		return fmt.Errorf("id is required: %w", model.ErrNotValid)
	}

	result, err := encodeResult(run.Result)
	if err != nil {
		return fmt.Errorf("could not encode result: %w", err)
	}

	var completedAt *int64
	if run.CompletedAt != nil {
		u := run.CompletedAt.Unix()
		completedAt = &u
	}

	query := `
		INSERT INTO task_runs (
			id, task_id, account_id, status,
			progress_percent, credit_cost,
			result, error,
			started_at, completed_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			status = excluded.status,
			progress_percent = excluded.progress_percent,
			result = excluded.result,
			error = excluded.error,
			completed_at = excluded.completed_at
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		run.ID,
		run.TaskID,
		run.AccountID,
		run.Status,
		run.ProgressPercent,
		run.CreditCost,
		result,
		run.Error,
		run.StartedAt.Unix(),
		completedAt,
	)
	if err != nil {
		return fmt.Errorf("could not save task run: %w", err)
	}

	r.logger.Debugf("Saved task run in repository: %s", run.ID)
	return nil
}

const taskRunColumns = `
	id, task_id, account_id, status,
	progress_percent, credit_cost,
	result, error,
	started_at, completed_at
`

// GetTaskRun retrieves a task run by ID.
func (r *Repository) GetTaskRun(ctx context.Context, id string) (*model.TaskRun, error) {
	query := `SELECT ` + taskRunColumns + ` FROM task_runs WHERE id = ?`

	run, err := r.scanTaskRun(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task run %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query task run: %w", err)
	}

	return &run, nil
}

// ListTaskRuns returns the task runs of an account, newest first.
func (r *Repository) ListTaskRuns(ctx context.Context, accountID string) ([]model.TaskRun, error) {
	query := `SELECT ` + taskRunColumns + ` FROM task_runs`
	args := []any{}
	if accountID != "" {
		query += ` WHERE account_id = ?`
		args = append(args, accountID)
	}
	query += ` ORDER BY started_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query task runs: %w", err)
	}
	defer rows.Close()

	runs := []model.TaskRun{}
	for rows.Next() {
		run, err := r.scanTaskRun(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return runs, nil
}

func (r *Repository) scanTaskRun(s scanner) (model.TaskRun, error) {
	var run model.TaskRun
	var result sql.NullString
	var startedAt int64
	var completedAt sql.NullInt64

	err := s.Scan(
		&run.ID,
		&run.TaskID,
		&run.AccountID,
		&run.Status,
		&run.ProgressPercent,
		&run.CreditCost,
		&result,
		&run.Error,
		&startedAt,
		&completedAt,
	)
	if err != nil {
		return model.TaskRun{}, err
	}

	run.StartedAt = timeFromUnix(startedAt)
	if completedAt.Valid {
		t := timeFromUnix(completedAt.Int64)
		run.CompletedAt = &t
	}

	if result.Valid {
		res, err := decodeResult(run.TaskID, []byte(result.String))
		if err != nil {
			return model.TaskRun{}, fmt.Errorf("could not decode result of run %s: %w", run.ID, err)
		}
		run.Result = res
	}

	return run, nil
}

func encodeResult(res model.ToolResult) (*string, error) {
	if res == nil {
		return nil, nil
	}

	data, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}

	s := string(data)
	return &s, nil
}

func decodeResult(taskID string, data []byte) (model.ToolResult, error) {
	switch taskID {
	case model.ToolIDHealthAssessment:
		var res model.HealthAssessmentResult
		err := json.Unmarshal(data, &res)
		return res, err
	case model.ToolIDNutritionPlanner:
		var res model.NutritionPlanResult
		err := json.Unmarshal(data, &res)
		return res, err
	case model.ToolIDStressAnalyzer:
		var res model.StressAnalysisResult
		err := json.Unmarshal(data, &res)
		return res, err
	case model.ToolIDSleepOptimizer:
		var res model.SleepOptimizationResult
		err := json.Unmarshal(data, &res)
		return res, err
	}

	var res model.GenericResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	if res.Tool == "" {
		res.Tool = taskID
	}
	return res, nil
}
