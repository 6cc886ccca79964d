package wizard_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/wellhub/internal/model"
	"github.com/slok/wellhub/internal/notify/notifymock"
	"github.com/slok/wellhub/internal/scheduler/fake"
	"github.com/slok/wellhub/internal/wizard"
	"github.com/slok/wellhub/internal/wizard/wizardmock"
)

type testDeps struct {
	registrar *wizardmock.MockRegistrar
	notifier  *notifymock.MockNotifier
	navigator *wizardmock.MockNavigator
	scheduler *fake.Scheduler
}

func newTestController(t *testing.T) (*wizard.Controller, testDeps) {
	t.Helper()

	deps := testDeps{
		registrar: wizardmock.NewMockRegistrar(t),
		notifier:  notifymock.NewMockNotifier(t),
		navigator: wizardmock.NewMockNavigator(t),
		scheduler: fake.NewScheduler(),
	}

	c, err := wizard.NewController(wizard.ControllerConfig{
		Registrar: deps.registrar,
		Notifier:  deps.notifier,
		Navigator: deps.navigator,
		Scheduler: deps.scheduler,
	})
	require.NoError(t, err)

	return c, deps
}

func setFields(t *testing.T, c *wizard.Controller, fields model.Fields) {
	t.Helper()
	for k, v := range fields {
		require.NoError(t, c.SetField(k, v))
	}
}

func completeFields() model.Fields {
	return model.Fields{
		model.FieldUsername:        "validuser",
		model.FieldEmail:           "a@b.com",
		model.FieldPassword:        "Aa1!aaaa",
		model.FieldConfirmPassword: "Aa1!aaaa",
		model.FieldFirstName:       "Valid",
		model.FieldLastName:        "User",
		model.FieldDisplayName:     "Valid User",
		model.FieldDepartment:      "Engineering",
	}
}

// goToReview fills every field and walks the wizard to the review step.
func goToReview(t *testing.T, c *wizard.Controller) {
	t.Helper()
	setFields(t, c, completeFields())
	for i := 0; i < 3; i++ {
		errs, err := c.GoNext()
		require.NoError(t, err)
		require.Empty(t, errs)
	}
	require.Equal(t, model.WizardStepReview, c.State().CurrentStep)
}

func TestNewController(t *testing.T) {
	tests := map[string]struct {
		cfg    wizard.ControllerConfig
		expErr bool
		errMsg string
	}{
		"Valid config with only the registrar uses defaults": {
			cfg: wizard.ControllerConfig{Registrar: &wizardmock.MockRegistrar{}},
		},
		"Missing registrar returns error": {
			cfg:    wizard.ControllerConfig{},
			expErr: true,
			errMsg: "registrar is required",
		},
		"Negative redirect delay returns error": {
			cfg:    wizard.ControllerConfig{Registrar: &wizardmock.MockRegistrar{}, RedirectDelay: -time.Second},
			expErr: true,
			errMsg: "redirect delay",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := wizard.NewController(tt.cfg)
			if tt.expErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, c)
				return
			}

			require.NoError(t, err)
			st := c.State()
			assert.Equal(t, model.WizardStepAccount, st.CurrentStep)
			assert.Empty(t, st.Fields)
			assert.Empty(t, st.Errors)
			assert.Equal(t, model.SubmissionStatusIdle, st.Submission)
			assert.False(t, st.Closed)
		})
	}
}

func TestControllerGoNextInvalidAccount(t *testing.T) {
	c, _ := newTestController(t)
	setFields(t, c, model.Fields{
		model.FieldUsername:        "ab",
		model.FieldEmail:           "bad",
		model.FieldPassword:        "short",
		model.FieldConfirmPassword: "short2",
	})

	// Rejection is idempotent.
	for i := 0; i < 3; i++ {
		errs, err := c.GoNext()
		require.NoError(t, err)
		assert.Len(t, errs, 4)

		st := c.State()
		assert.Equal(t, model.WizardStepAccount, st.CurrentStep)
		assert.Len(t, st.Errors, 4)
	}
}

func TestControllerGoNextValidAccount(t *testing.T) {
	c, _ := newTestController(t)
	setFields(t, c, model.Fields{
		model.FieldUsername:        "validuser",
		model.FieldEmail:           "a@b.com",
		model.FieldPassword:        "Aa1!aaaa",
		model.FieldConfirmPassword: "Aa1!aaaa",
	})

	errs, err := c.GoNext()
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, model.WizardStepPersonal, c.State().CurrentStep)

	// Personal step is gated by the display name.
	errs, err = c.GoNext()
	require.NoError(t, err)
	assert.Equal(t, model.FieldErrors{model.FieldDisplayName: wizard.MsgDisplayNameEmpty}, errs)
	assert.Equal(t, model.WizardStepPersonal, c.State().CurrentStep)
}

func TestControllerErrorsLifecycle(t *testing.T) {
	c, _ := newTestController(t)
	setFields(t, c, model.Fields{model.FieldUsername: "ab"})

	_, err := c.GoNext()
	require.NoError(t, err)
	require.Contains(t, c.State().Errors, model.FieldUsername)

	// Editing a field clears its error only.
	require.NoError(t, c.SetField(model.FieldUsername, "abc"))
	st := c.State()
	assert.NotContains(t, st.Errors, model.FieldUsername)
	assert.Contains(t, st.Errors, model.FieldEmail)

	// A new validation pass recomputes everything.
	setFields(t, c, completeFields())
	errs, err := c.GoNext()
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Empty(t, c.State().Errors)
}

func TestControllerNavigationBounds(t *testing.T) {
	c, _ := newTestController(t)

	// Never below the first step.
	require.NoError(t, c.GoPrev())
	require.NoError(t, c.GoPrev())
	assert.Equal(t, model.WizardStepAccount, c.State().CurrentStep)

	goToReview(t, c)

	// Never after the review step.
	errs, err := c.GoNext()
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, model.WizardStepReview, c.State().CurrentStep)

	// Going back doesn't validate.
	require.NoError(t, c.SetField(model.FieldDisplayName, ""))
	require.NoError(t, c.GoPrev())
	require.NoError(t, c.GoPrev())
	assert.Equal(t, model.WizardStepPersonal, c.State().CurrentStep)
	assert.Empty(t, c.State().Errors)

	for i := 0; i < 10; i++ {
		require.NoError(t, c.GoPrev())
	}
	assert.Equal(t, model.WizardStepAccount, c.State().CurrentStep)
}

func TestControllerSubmitNotOnReview(t *testing.T) {
	c, _ := newTestController(t)

	err := c.Submit(context.Background())
	assert.ErrorIs(t, err, model.ErrNotOnReviewStep)
	assert.Equal(t, model.SubmissionStatusIdle, c.State().Submission)
}

func TestControllerSubmitSuccess(t *testing.T) {
	c, deps := newTestController(t)
	goToReview(t, c)

	expReg := model.Registration{
		Username:    "validuser",
		Email:       "a@b.com",
		Password:    "Aa1!aaaa",
		DisplayName: "Valid User",
		FirstName:   "Valid",
		LastName:    "User",
		Department:  "Engineering",
		Role:        model.RoleUser,
	}
	deps.registrar.On("Register", mock.Anything, expReg).Once().Return(&model.User{ID: "u1", DisplayName: "Valid User"}, nil)
	deps.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n model.Notice) bool {
		return n.Variant == model.NoticeVariantSuccess && n.Title == "Registration successful"
	})).Once().Return()

	err := c.Submit(context.Background())
	require.NoError(t, err)

	st := c.State()
	assert.Equal(t, model.SubmissionStatusSucceeded, st.Submission)
	assert.True(t, st.Closed)

	// Navigation happens only after the redirect delay.
	deps.scheduler.Advance(wizard.DefaultRedirectDelay - time.Millisecond)
	deps.navigator.AssertNotCalled(t, "Navigate", mock.Anything)

	deps.navigator.On("Navigate", wizard.DefaultRedirectTarget).Once().Return()
	deps.scheduler.Advance(time.Millisecond)

	// The wizard is discarded.
	assert.ErrorIs(t, c.Submit(context.Background()), model.ErrWizardClosed)
	assert.ErrorIs(t, c.GoPrev(), model.ErrWizardClosed)
	_, err = c.GoNext()
	assert.ErrorIs(t, err, model.ErrWizardClosed)
	assert.ErrorIs(t, c.SetField(model.FieldBio, "x"), model.ErrWizardClosed)
}

func TestControllerSubmitFailureAndRetry(t *testing.T) {
	c, deps := newTestController(t)
	goToReview(t, c)

	regErr := fmt.Errorf(`username "validuser" is already taken: %w`, model.ErrAlreadyExists)
	deps.registrar.On("Register", mock.Anything, mock.Anything).Once().Return(nil, regErr)
	deps.notifier.On("Notify", mock.Anything, model.Notice{
		Title:       "Registration failed",
		Description: regErr.Error(),
		Variant:     model.NoticeVariantDestructive,
	}).Once().Return()

	err := c.Submit(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	st := c.State()
	assert.Equal(t, model.SubmissionStatusFailed, st.Submission)
	assert.Equal(t, model.WizardStepReview, st.CurrentStep)
	assert.False(t, st.Closed)

	// Retrying is allowed and single attempt per call.
	deps.registrar.On("Register", mock.Anything, mock.Anything).Once().Return(&model.User{ID: "u1"}, nil)
	deps.notifier.On("Notify", mock.Anything, mock.Anything).Once().Return()

	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, model.SubmissionStatusSucceeded, c.State().Submission)
	deps.registrar.AssertNumberOfCalls(t, "Register", 2)
}

func TestControllerSubmitInFlight(t *testing.T) {
	c, deps := newTestController(t)
	goToReview(t, c)

	registering := make(chan struct{})
	release := make(chan struct{})
	deps.registrar.On("Register", mock.Anything, mock.Anything).Once().Return(func(context.Context, model.Registration) (*model.User, error) {
		close(registering)
		<-release
		return &model.User{ID: "u1"}, nil
	})
	deps.notifier.On("Notify", mock.Anything, mock.Anything).Once().Return()

	done := make(chan error)
	go func() { done <- c.Submit(context.Background()) }()
	<-registering

	assert.Equal(t, model.SubmissionStatusSubmitting, c.State().Submission)
	assert.ErrorIs(t, c.Submit(context.Background()), model.ErrSubmissionInFlight)
	assert.ErrorIs(t, c.GoPrev(), model.ErrSubmissionInFlight)
	assert.ErrorIs(t, c.SetField(model.FieldBio, "x"), model.ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, model.SubmissionStatusSucceeded, c.State().Submission)
}

func TestControllerCancel(t *testing.T) {
	c, deps := newTestController(t)
	goToReview(t, c)

	deps.registrar.On("Register", mock.Anything, mock.Anything).Once().Return(&model.User{ID: "u1"}, nil)
	deps.notifier.On("Notify", mock.Anything, mock.Anything).Once().Return()
	require.NoError(t, c.Submit(context.Background()))

	// Cancelling stops the pending navigation.
	c.Cancel()
	deps.scheduler.Advance(time.Hour)
	deps.navigator.AssertNotCalled(t, "Navigate", mock.Anything)
	assert.Equal(t, 0, deps.scheduler.Active())
}

func TestControllerCancelBeforeSubmit(t *testing.T) {
	c, _ := newTestController(t)
	c.Cancel()

	assert.True(t, c.State().Closed)
	assert.ErrorIs(t, c.Submit(context.Background()), model.ErrWizardClosed)
}

func TestControllerCustomRedirect(t *testing.T) {
	registrar := wizardmock.NewMockRegistrar(t)
	registrar.On("Register", mock.Anything, mock.Anything).Once().Return(&model.User{ID: "u1"}, nil)
	navigated := ""
	sch := fake.NewScheduler()

	c, err := wizard.NewController(wizard.ControllerConfig{
		Registrar:      registrar,
		Navigator:      wizard.NavigatorFunc(func(target string) { navigated = target }),
		Scheduler:      sch,
		RedirectDelay:  500 * time.Millisecond,
		RedirectTarget: "/dashboard",
	})
	require.NoError(t, err)
	goToReview(t, c)

	require.NoError(t, c.Submit(context.Background()))
	sch.Advance(500 * time.Millisecond)
	assert.Equal(t, "/dashboard", navigated)
}
