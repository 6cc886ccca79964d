package model

import "regexp"

const (
	// MinUsernameLength is the minimum accepted username length.
	MinUsernameLength = 3
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8
)

// EmailRegexp is the loose email shape accepted on registration.
var EmailRegexp = regexp.MustCompile(`\S+@\S+\.\S+`)

// Field is the name of a registration wizard field.
type Field string

const (
	FieldUsername        Field = "username"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldFirstName       Field = "firstName"
	FieldLastName        Field = "lastName"
	FieldDisplayName     Field = "displayName"
	FieldBio             Field = "bio"
	FieldDepartment      Field = "department"
	FieldRole            Field = "role"
	FieldEmployeeID      Field = "employeeId"
)

// Fields is the flat record of values typed in the wizard.
type Fields map[Field]string

// FieldErrors maps a field to its validation message.
type FieldErrors map[Field]string

// WizardStep is a 1-indexed registration wizard step.
type WizardStep int

const (
	WizardStepAccount        WizardStep = 1
	WizardStepPersonal       WizardStep = 2
	WizardStepOrganizational WizardStep = 3
	WizardStepReview         WizardStep = 4
)

// WizardTotalSteps is the number of steps of the registration wizard.
const WizardTotalSteps = 4

func (s WizardStep) String() string {
	switch s {
	case WizardStepAccount:
		return "account"
	case WizardStepPersonal:
		return "personal"
	case WizardStepOrganizational:
		return "organizational"
	case WizardStepReview:
		return "review"
	}
	return "unknown"
}

// SubmissionStatus is the state of the wizard final submission.
type SubmissionStatus string

const (
	SubmissionStatusIdle       SubmissionStatus = "idle"
	SubmissionStatusSubmitting SubmissionStatus = "submitting"
	SubmissionStatusSucceeded  SubmissionStatus = "succeeded"
	SubmissionStatusFailed     SubmissionStatus = "failed"
)

// WizardState is a snapshot of a registration wizard.
type WizardState struct {
	CurrentStep WizardStep
	Fields      Fields
	Errors      FieldErrors
	Submission  SubmissionStatus
	Closed      bool
}
