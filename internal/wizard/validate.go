package wizard

import (
	"strings"
	"unicode/utf8"

	"github.com/slok/wellhub/internal/model"
)

// Validation messages shown next to the fields.
const (
	MsgUsernameTooShort = "Username must be at least 3 characters"
	MsgEmailNotValid    = "Please enter a valid email address"
	MsgPasswordTooShort = "Password must be at least 8 characters"
	MsgPasswordMismatch = "Passwords do not match"
	MsgDisplayNameEmpty = "Display name is required"
	MsgDepartmentEmpty  = "Please select a department"
)

// ValidateStep returns the field errors of a step, empty when the step is valid.
// The review step and unknown steps have nothing to validate.
func ValidateStep(step model.WizardStep, fields model.Fields) model.FieldErrors {
	errs := model.FieldErrors{}

	switch step {
	case model.WizardStepAccount:
		if utf8.RuneCountInString(fields[model.FieldUsername]) < model.MinUsernameLength {
			errs[model.FieldUsername] = MsgUsernameTooShort
		}
		if !model.EmailRegexp.MatchString(fields[model.FieldEmail]) {
			errs[model.FieldEmail] = MsgEmailNotValid
		}
		if utf8.RuneCountInString(fields[model.FieldPassword]) < model.MinPasswordLength {
			errs[model.FieldPassword] = MsgPasswordTooShort
		}
		if fields[model.FieldPassword] != fields[model.FieldConfirmPassword] {
			errs[model.FieldConfirmPassword] = MsgPasswordMismatch
		}

	case model.WizardStepPersonal:
		if strings.TrimSpace(fields[model.FieldDisplayName]) == "" {
			errs[model.FieldDisplayName] = MsgDisplayNameEmpty
		}

	case model.WizardStepOrganizational:
		if strings.TrimSpace(fields[model.FieldDepartment]) == "" {
			errs[model.FieldDepartment] = MsgDepartmentEmpty
		}
	}

	return errs
}

// BuildRegistration merges the wizard fields into the record sent on submission.
func BuildRegistration(fields model.Fields) model.Registration {
	displayName := strings.TrimSpace(fields[model.FieldDisplayName])
	if displayName == "" {
		displayName = strings.TrimSpace(fields[model.FieldFirstName] + " " + fields[model.FieldLastName])
	}

	role := model.Role(fields[model.FieldRole])
	if role == "" {
		role = model.RoleUser
	}

	return model.Registration{
		Username:    fields[model.FieldUsername],
		Email:       fields[model.FieldEmail],
		Password:    fields[model.FieldPassword],
		DisplayName: displayName,
		FirstName:   fields[model.FieldFirstName],
		LastName:    fields[model.FieldLastName],
		Bio:         fields[model.FieldBio],
		Department:  fields[model.FieldDepartment],
		Role:        role,
		EmployeeID:  fields[model.FieldEmployeeID],
	}
}
