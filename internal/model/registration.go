package model

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Role is the platform role of a registered user.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Departments are the organizational departments offered on registration.
var Departments = []string{
	"Engineering",
	"Finance",
	"Human Resources",
	"Marketing",
	"Operations",
	"Sales",
	"Support",
}

// Registration is the record sent to the registration collaborator once the
// wizard is submitted.
type Registration struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	FirstName   string
	LastName    string
	Bio         string
	Department  string
	Role        Role
	EmployeeID  string
}

// Validate validates the registration record.
func (r *Registration) Validate() error {
	if utf8.RuneCountInString(r.Username) < MinUsernameLength {
		return fmt.Errorf("username must be at least %d characters: %w", MinUsernameLength, ErrNotValid)
	}
	if !EmailRegexp.MatchString(r.Email) {
		return fmt.Errorf("email %q is not valid: %w", r.Email, ErrNotValid)
	}
	if utf8.RuneCountInString(r.Password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters: %w", MinPasswordLength, ErrNotValid)
	}
	if strings.TrimSpace(r.DisplayName) == "" {
		return fmt.Errorf("display name is required: %w", ErrNotValid)
	}
	if r.Department == "" {
		return fmt.Errorf("department is required: %w", ErrNotValid)
	}

	switch r.Role {
	case RoleUser, RoleManager, RoleAdmin:
	default:
		return fmt.Errorf("role %q is not valid: %w", r.Role, ErrNotValid)
	}

	return nil
}

// User is a registered platform user.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash []byte
	DisplayName  string
	FirstName    string
	LastName     string
	Bio          string
	Department   string
	Role         Role
	EmployeeID   string
	CreatedAt    time.Time
}
