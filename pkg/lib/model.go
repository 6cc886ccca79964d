package lib

import (
	"errors"
	"time"

	"github.com/slok/wellhub/internal/model"
)

var (
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a user with the same username or email already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned on invalid input or operations.
	ErrNotValid = errors.New("not valid")
	// ErrInsufficientCredits is returned when an account can't pay for a tool run.
	ErrInsufficientCredits = errors.New("insufficient credits")
	// ErrTaskAlreadyRunning is returned when a tool is run while a previous run is in progress.
	ErrTaskAlreadyRunning = errors.New("task already running")
	// ErrWizardClosed is returned when a finished or cancelled wizard is used.
	ErrWizardClosed = errors.New("wizard is closed")
	// ErrNotOnReviewStep is returned when a wizard is submitted before its last step.
	ErrNotOnReviewStep = errors.New("wizard is not on the review step")
	// ErrSubmissionInFlight is returned when a wizard is submitted twice concurrently.
	ErrSubmissionInFlight = errors.New("submission already in flight")
)

// Tool is a smart tool of the catalog.
type Tool struct {
	ID          string
	Name        string
	Description string
	Category    string
	// CreditCost is debited from the account once a run completes. Zero is free.
	CreditCost int
}

// TaskStatus is the lifecycle state of a tool run.
//
//	idle -> running -> completed
//
// A run goes back to idle when its credits can't be debited.
type TaskStatus string

const (
	TaskStatusIdle      TaskStatus = "idle"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
)

// TaskRun is a snapshot of a tool run.
type TaskRun struct {
	ID              string
	ToolID          string
	AccountID       string
	Status          TaskStatus
	ProgressPercent int
	CreditCost      int
	// Result is only set on completed runs. Use a type switch on the result types.
	Result      ToolResult
	Error       string
	StartedAt   time.Time
	CompletedAt *time.Time
}

// Result shapes of the built-in tools.
type (
	ToolResult              = model.ToolResult
	HealthSubScores         = model.HealthSubScores
	HealthAssessmentResult  = model.HealthAssessmentResult
	Macros                  = model.Macros
	Meal                    = model.Meal
	NutritionPlanResult     = model.NutritionPlanResult
	StressAnalysisResult    = model.StressAnalysisResult
	SleepOptimizationResult = model.SleepOptimizationResult
	GenericResult           = model.GenericResult
)

// Built-in tool IDs.
const (
	ToolIDHealthAssessment = model.ToolIDHealthAssessment
	ToolIDNutritionPlanner = model.ToolIDNutritionPlanner
	ToolIDStressAnalyzer   = model.ToolIDStressAnalyzer
	ToolIDSleepOptimizer   = model.ToolIDSleepOptimizer
)

// CreditTransaction is an entry of an account history. Debits have negative amounts.
type CreditTransaction struct {
	ID           string
	Amount       int
	ActionType   string
	Description  string
	ResourceID   string
	ResourceType string
	CreatedAt    time.Time
}

// NoticeVariant is the visual variant of a notice.
type NoticeVariant string

const (
	NoticeVariantDefault     NoticeVariant = "default"
	NoticeVariantSuccess     NoticeVariant = "success"
	NoticeVariantWarning     NoticeVariant = "warning"
	NoticeVariantDestructive NoticeVariant = "destructive"
)

// Notice is a one-shot message for the user.
type Notice struct {
	Title       string
	Description string
	Variant     NoticeVariant
}

// User is a registered user. The password hash is never exposed.
type User struct {
	ID          string
	Username    string
	Email       string
	DisplayName string
	FirstName   string
	LastName    string
	Bio         string
	Department  string
	Role        string
	EmployeeID  string
	CreatedAt   time.Time
}

// Field is a registration wizard field.
type Field = model.Field

// Registration wizard fields.
const (
	FieldUsername        = model.FieldUsername
	FieldEmail           = model.FieldEmail
	FieldPassword        = model.FieldPassword
	FieldConfirmPassword = model.FieldConfirmPassword
	FieldFirstName       = model.FieldFirstName
	FieldLastName        = model.FieldLastName
	FieldDisplayName     = model.FieldDisplayName
	FieldBio             = model.FieldBio
	FieldDepartment      = model.FieldDepartment
	FieldRole            = model.FieldRole
	FieldEmployeeID      = model.FieldEmployeeID
)

// WizardState is a snapshot of a registration wizard.
type WizardState struct {
	// Step is 1-indexed: account, personal, organizational and review.
	Step       int
	StepName   string
	Fields     map[Field]string
	Errors     map[Field]string
	Submission string
	Closed     bool
}

// --- Conversion helpers ---

func fromInternalTool(t model.Tool) Tool {
	return Tool{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Category:    t.Category,
		CreditCost:  t.CreditCost,
	}
}

func fromInternalTools(ts []model.Tool) []Tool {
	result := make([]Tool, len(ts))
	for i, t := range ts {
		result[i] = fromInternalTool(t)
	}
	return result
}

func toInternalTools(ts []Tool) []model.Tool {
	result := make([]model.Tool, len(ts))
	for i, t := range ts {
		result[i] = model.Tool{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Category:    t.Category,
			CreditCost:  t.CreditCost,
		}
	}
	return result
}

func fromInternalTaskRun(r model.TaskRun) TaskRun {
	return TaskRun{
		ID:              r.ID,
		ToolID:          r.TaskID,
		AccountID:       r.AccountID,
		Status:          TaskStatus(r.Status),
		ProgressPercent: r.ProgressPercent,
		CreditCost:      r.CreditCost,
		Result:          r.Result,
		Error:           r.Error,
		StartedAt:       r.StartedAt,
		CompletedAt:     r.CompletedAt,
	}
}

func fromInternalTaskRuns(rs []model.TaskRun) []TaskRun {
	result := make([]TaskRun, len(rs))
	for i, r := range rs {
		result[i] = fromInternalTaskRun(r)
	}
	return result
}

func fromInternalTransactions(txs []model.CreditTransaction) []CreditTransaction {
	result := make([]CreditTransaction, len(txs))
	for i, t := range txs {
		result[i] = CreditTransaction{
			ID:           t.ID,
			Amount:       t.Amount,
			ActionType:   t.ActionType,
			Description:  t.Description,
			ResourceID:   t.ResourceID,
			ResourceType: t.ResourceType,
			CreatedAt:    t.CreatedAt,
		}
	}
	return result
}

func fromInternalNotice(n model.Notice) Notice {
	return Notice{
		Title:       n.Title,
		Description: n.Description,
		Variant:     NoticeVariant(n.Variant),
	}
}

func fromInternalUser(u model.User) User {
	return User{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Bio:         u.Bio,
		Department:  u.Department,
		Role:        string(u.Role),
		EmployeeID:  u.EmployeeID,
		CreatedAt:   u.CreatedAt,
	}
}

func fromInternalWizardState(s model.WizardState) WizardState {
	return WizardState{
		Step:       int(s.CurrentStep),
		StepName:   s.CurrentStep.String(),
		Fields:     s.Fields,
		Errors:     s.Errors,
		Submission: string(s.Submission),
		Closed:     s.Closed,
	}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return joinErrors(err, ErrNotFound)
	case errors.Is(err, model.ErrAlreadyExists):
		return joinErrors(err, ErrAlreadyExists)
	case errors.Is(err, model.ErrNotValid):
		return joinErrors(err, ErrNotValid)
	case errors.Is(err, model.ErrInsufficientCredits):
		return joinErrors(err, ErrInsufficientCredits)
	case errors.Is(err, model.ErrTaskAlreadyRunning):
		return joinErrors(err, ErrTaskAlreadyRunning)
	case errors.Is(err, model.ErrWizardClosed):
		return joinErrors(err, ErrWizardClosed)
	case errors.Is(err, model.ErrNotOnReviewStep):
		return joinErrors(err, ErrNotOnReviewStep)
	case errors.Is(err, model.ErrSubmissionInFlight):
		return joinErrors(err, ErrSubmissionInFlight)
	default:
		return err
	}
}

func joinErrors(original, sentinel error) error {
	return &mappedError{original: original, sentinel: sentinel}
}

type mappedError struct {
	original error
	sentinel error
}

func (e *mappedError) Error() string { return e.original.Error() }

func (e *mappedError) Is(target error) bool {
	return target == e.sentinel
}

func (e *mappedError) Unwrap() error { return e.original }
