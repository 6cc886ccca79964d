package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/slok/wellhub/internal/log"
	"github.com/slok/wellhub/internal/model"
	"github.com/slok/wellhub/internal/notify"
	"github.com/slok/wellhub/internal/scheduler"
)

const (
	// DefaultRedirectDelay is the time between a successful registration and the navigation.
	DefaultRedirectDelay = 3 * time.Second
	// DefaultRedirectTarget is where the user is sent after registering.
	DefaultRedirectTarget = "/login"
)

// Registrar is the registration collaborator that receives the submitted wizard.
type Registrar interface {
	Register(ctx context.Context, r model.Registration) (*model.User, error)
}

// Navigator moves the user out of the wizard.
type Navigator interface {
	Navigate(target string)
}

// NavigatorFunc is a helper to use functions as Navigators.
type NavigatorFunc func(target string)

// Navigate satisfies Navigator.
func (f NavigatorFunc) Navigate(target string) { f(target) }

var noopNavigator = NavigatorFunc(func(string) {})

// ControllerConfig is the configuration for the wizard controller.
type ControllerConfig struct {
	Registrar Registrar
	Notifier  notify.Notifier
	Navigator Navigator
	Scheduler scheduler.Scheduler
	// RedirectDelay is the delay before navigating after a successful submission.
	RedirectDelay  time.Duration
	RedirectTarget string
	Logger         log.Logger
}

func (c *ControllerConfig) defaults() error {
	if c.Registrar == nil {
		return fmt.Errorf("registrar is required")
	}
	if c.Notifier == nil {
		c.Notifier = notify.Noop
	}
	if c.Navigator == nil {
		c.Navigator = noopNavigator
	}
	if c.Scheduler == nil {
		c.Scheduler = scheduler.Clock
	}
	if c.RedirectDelay < 0 {
		return fmt.Errorf("redirect delay can't be negative")
	}
	if c.RedirectDelay == 0 {
		c.RedirectDelay = DefaultRedirectDelay
	}
	if c.RedirectTarget == "" {
		c.RedirectTarget = DefaultRedirectTarget
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "wizard.Controller"})
	return nil
}

// Controller drives the four step registration wizard: account, personal,
// organizational and review. Forward navigation is gated by the validation of
// the current step and submission is only possible from the review step.
//
// Controller is safe for concurrent use.
type Controller struct {
	registrar      Registrar
	notifier       notify.Notifier
	navigator      Navigator
	scheduler      scheduler.Scheduler
	redirectDelay  time.Duration
	redirectTarget string
	logger         log.Logger

	mu         sync.Mutex
	step       model.WizardStep
	fields     model.Fields
	errors     model.FieldErrors
	submission model.SubmissionStatus
	closed     bool
	redirect   scheduler.Timer
}

// NewController returns a new wizard on its first step with empty fields.
func NewController(cfg ControllerConfig) (*Controller, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Controller{
		registrar:      cfg.Registrar,
		notifier:       cfg.Notifier,
		navigator:      cfg.Navigator,
		scheduler:      cfg.Scheduler,
		redirectDelay:  cfg.RedirectDelay,
		redirectTarget: cfg.RedirectTarget,
		logger:         cfg.Logger,

		step:       model.WizardStepAccount,
		fields:     model.Fields{},
		errors:     model.FieldErrors{},
		submission: model.SubmissionStatusIdle,
	}, nil
}

// State returns a snapshot of the wizard.
func (c *Controller) State() model.WizardState {
	c.mu.Lock()
	defer c.mu.Unlock()

	fields := make(model.Fields, len(c.fields))
	for k, v := range c.fields {
		fields[k] = v
	}
	errs := make(model.FieldErrors, len(c.errors))
	for k, v := range c.errors {
		errs[k] = v
	}

	return model.WizardState{
		CurrentStep: c.step,
		Fields:      fields,
		Errors:      errs,
		Submission:  c.submission,
		Closed:      c.closed,
	}
}

// SetField sets a field value. The previous error of the field, if any, is cleared.
func (c *Controller) SetField(field model.Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkEditable(); err != nil {
		return err
	}

	c.fields[field] = value
	delete(c.errors, field)

	return nil
}

// GoNext validates the current step and moves to the next one when valid. The
// validation errors are returned and stored in the state, empty when the step
// was valid. The review step is the last one.
func (c *Controller) GoNext() (model.FieldErrors, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkEditable(); err != nil {
		return nil, err
	}

	errs := ValidateStep(c.step, c.fields)
	c.errors = errs
	if len(errs) > 0 {
		c.logger.Debugf("Step %s has %d invalid fields", c.step, len(errs))
		return copyErrors(errs), nil
	}

	if c.step < model.WizardTotalSteps {
		c.step++
	}

	return model.FieldErrors{}, nil
}

// GoPrev moves to the previous step without validating, the first step is the floor.
func (c *Controller) GoPrev() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkEditable(); err != nil {
		return err
	}

	if c.step > model.WizardStepAccount {
		c.step--
	}

	return nil
}

// Submit sends the wizard fields to the registrar. It can only be called on the
// review step and not while another submission is in flight. On success the
// wizard is closed and the navigation is scheduled after the redirect delay.
// On failure the user stays on the review step and can submit again, the
// registrar error message is shown as is.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return model.ErrWizardClosed
	}
	if c.submission == model.SubmissionStatusSubmitting {
		c.mu.Unlock()
		return model.ErrSubmissionInFlight
	}
	if c.step != model.WizardStepReview {
		c.mu.Unlock()
		return fmt.Errorf("current step is %s: %w", c.step, model.ErrNotOnReviewStep)
	}

	c.submission = model.SubmissionStatusSubmitting
	reg := BuildRegistration(c.fields)
	c.mu.Unlock()

	c.logger.Debugf("Submitting registration for %s", reg.Username)
	user, err := c.registrar.Register(ctx, reg)

	if err != nil {
		c.mu.Lock()
		c.submission = model.SubmissionStatusFailed
		c.mu.Unlock()

		c.logger.Warningf("Registration of %s failed: %s", reg.Username, err)
		c.notifier.Notify(ctx, model.Notice{
			Title:       "Registration failed",
			Description: err.Error(),
			Variant:     model.NoticeVariantDestructive,
		})
		return fmt.Errorf("could not register: %w", err)
	}

	c.mu.Lock()
	c.submission = model.SubmissionStatusSucceeded
	cancelled := c.closed
	c.closed = true
	if !cancelled {
		target := c.redirectTarget
		c.redirect = c.scheduler.After(c.redirectDelay, func() { c.navigator.Navigate(target) })
	}
	c.mu.Unlock()

	name := reg.DisplayName
	if user != nil && user.DisplayName != "" {
		name = user.DisplayName
	}
	c.logger.Infof("Registered user %s", reg.Username)
	c.notifier.Notify(ctx, model.Notice{
		Title:       "Registration successful",
		Description: fmt.Sprintf("Welcome %s! Redirecting in %s.", name, c.redirectDelay),
		Variant:     model.NoticeVariantSuccess,
	})

	return nil
}

// Cancel discards the wizard. A scheduled navigation is also cancelled.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.redirect != nil {
		c.redirect.Stop()
	}
}

func (c *Controller) checkEditable() error {
	if c.closed {
		return model.ErrWizardClosed
	}
	if c.submission == model.SubmissionStatusSubmitting {
		return model.ErrSubmissionInFlight
	}
	return nil
}

func copyErrors(errs model.FieldErrors) model.FieldErrors {
	cp := make(model.FieldErrors, len(errs))
	for k, v := range errs {
		cp[k] = v
	}
	return cp
}
