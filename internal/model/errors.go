package model

import "errors"

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrInsufficientCredits is returned when an account can't pay for an action.
	ErrInsufficientCredits = errors.New("insufficient credits")
	// ErrTaskAlreadyRunning is returned when a tool is launched while a previous run is in progress.
	ErrTaskAlreadyRunning = errors.New("task already running")
	// ErrNotOnReviewStep is returned when a wizard is submitted before reaching the review step.
	ErrNotOnReviewStep = errors.New("wizard is not on the review step")
	// ErrSubmissionInFlight is returned when a wizard is submitted while a submission is running.
	ErrSubmissionInFlight = errors.New("submission already in flight")
	// ErrWizardClosed is returned when a finished or cancelled wizard is used.
	ErrWizardClosed = errors.New("wizard is closed")
)
