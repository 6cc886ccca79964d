package lib

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/wellhub/internal/app/register"
	"github.com/slok/wellhub/internal/model"
	"github.com/slok/wellhub/internal/notify"
	"github.com/slok/wellhub/internal/wizard"
)

// RegisterOpts are the data of a new user.
type RegisterOpts struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	FirstName   string
	LastName    string
	Bio         string
	Department  string
	// Role is one of user, manager or admin. Default: user.
	Role       string
	EmployeeID string
}

// Register registers a user without the wizard. The user account receives the
// configured welcome credits.
//
// Returns [ErrNotValid] on invalid data and [ErrAlreadyExists] when the
// username or email are taken.
func (c *Client) Register(ctx context.Context, opts RegisterOpts) (*User, error) {
	svc, err := c.newRegisterService()
	if err != nil {
		return nil, err
	}

	u, err := svc.Register(ctx, model.Registration{
		Username:    opts.Username,
		Email:       opts.Email,
		Password:    opts.Password,
		DisplayName: opts.DisplayName,
		FirstName:   opts.FirstName,
		LastName:    opts.LastName,
		Bio:         opts.Bio,
		Department:  opts.Department,
		Role:        model.Role(opts.Role),
		EmployeeID:  opts.EmployeeID,
	})
	if err != nil {
		return nil, mapError(err)
	}

	out := fromInternalUser(*u)
	return &out, nil
}

func (c *Client) newRegisterService() (*register.Service, error) {
	svc, err := register.NewService(register.ServiceConfig{
		Repository:     c.repo,
		Credits:        c.repo,
		WelcomeCredits: c.welcomeCredits,
		Logger:         c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}
	return svc, nil
}

// WizardOpts configures a registration wizard.
type WizardOpts struct {
	// OnNotice receives the success and failure notices of the submission.
	OnNotice func(Notice)
	// OnRedirect is called with the target once the redirect delay passes
	// after a successful submission.
	OnRedirect func(target string)
	// RedirectDelay defaults to 3s.
	RedirectDelay time.Duration
	// RedirectTarget defaults to /login.
	RedirectTarget string
}

// Wizard is a four step registration wizard: account, personal, organizational
// and review. It's safe for concurrent use.
type Wizard struct {
	ctrl *wizard.Controller
}

// NewWizard returns a new registration wizard on the first step.
func (c *Client) NewWizard(opts WizardOpts) (*Wizard, error) {
	svc, err := c.newRegisterService()
	if err != nil {
		return nil, err
	}

	var notifier notify.Notifier = notify.Noop
	if opts.OnNotice != nil {
		notifier = notify.NotifierFunc(func(_ context.Context, n model.Notice) { opts.OnNotice(fromInternalNotice(n)) })
	}

	var navigator wizard.Navigator
	if opts.OnRedirect != nil {
		navigator = wizard.NavigatorFunc(opts.OnRedirect)
	}

	ctrl, err := wizard.NewController(wizard.ControllerConfig{
		Registrar:      svc,
		Notifier:       notifier,
		Navigator:      navigator,
		RedirectDelay:  opts.RedirectDelay,
		RedirectTarget: opts.RedirectTarget,
		Logger:         c.logger,
	})
	if err != nil {
		return nil, mapError(fmt.Errorf("could not create wizard: %w", err))
	}

	return &Wizard{ctrl: ctrl}, nil
}

// State returns a snapshot of the wizard.
func (w *Wizard) State() WizardState {
	return fromInternalWizardState(w.ctrl.State())
}

// SetField sets a field value and clears its error.
func (w *Wizard) SetField(field Field, value string) error {
	return mapError(w.ctrl.SetField(field, value))
}

// Next validates the current step and moves forward when valid. The returned
// errors are empty when the step was valid.
func (w *Wizard) Next() (map[Field]string, error) {
	errs, err := w.ctrl.GoNext()
	if err != nil {
		return nil, mapError(err)
	}
	return errs, nil
}

// Prev moves to the previous step without validating.
func (w *Wizard) Prev() error {
	return mapError(w.ctrl.GoPrev())
}

// Submit registers the user. It's only allowed on the review step.
func (w *Wizard) Submit(ctx context.Context) error {
	return mapError(w.ctrl.Submit(ctx))
}

// Cancel discards the wizard and any scheduled redirect.
func (w *Wizard) Cancel() {
	w.ctrl.Cancel()
}

// PasswordStrength scores a password from 0 to 5 with a label. It's informational only.
func PasswordStrength(password string) (score int, label string) {
	s := wizard.PasswordStrength(password)
	return s.Score, s.Label
}

// Departments returns the departments offered on registration.
func Departments() []string {
	return append([]string(nil), model.Departments...)
}
