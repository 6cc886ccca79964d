package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/wellhub/internal/app/register"
	"github.com/slok/wellhub/internal/conventions"
	"github.com/slok/wellhub/internal/model"
	storageio "github.com/slok/wellhub/internal/storage/io"
	"github.com/slok/wellhub/internal/wizard"
)

// RegisterCommand registers a new user with the registration wizard.
type RegisterCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	answersPath    string
	redirectDelay  time.Duration
	welcomeCredits int
	yes            bool
}

// NewRegisterCommand returns the register command.
func NewRegisterCommand(rootCmd *RootCommand, app *kingpin.Application) *RegisterCommand {
	c := &RegisterCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("register", "Register a new user step by step.")
	c.Cmd.Flag("answers", "YAML file with the wizard answers, no questions are asked.").StringVar(&c.answersPath)
	c.Cmd.Flag("redirect-delay", "Time to wait after registering before redirecting.").Default(wizard.DefaultRedirectDelay.String()).DurationVar(&c.redirectDelay)
	c.Cmd.Flag("welcome-credits", "Credits granted to the new user account.").Default(strconv.Itoa(conventions.DefaultWelcomeCredits)).IntVar(&c.welcomeCredits)
	c.Cmd.Flag("yes", "Submit without asking for confirmation.").Short('y').BoolVar(&c.yes)

	return c
}

func (c RegisterCommand) Name() string { return c.Cmd.FullCommand() }

func (c RegisterCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := register.NewService(register.ServiceConfig{
		Repository:     repo,
		Credits:        repo,
		WelcomeCredits: c.welcomeCredits,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	redirected := make(chan string, 1)
	ctrl, err := wizard.NewController(wizard.ControllerConfig{
		Registrar:     svc,
		Notifier:      c.rootCmd.newNotifier(),
		Navigator:     wizard.NavigatorFunc(func(target string) { redirected <- target }),
		RedirectDelay: c.redirectDelay,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("could not create wizard: %w", err)
	}

	if c.answersPath != "" {
		err = c.runWithAnswers(ctx, ctrl)
	} else {
		err = c.runInteractive(ctx, ctrl)
	}
	if err != nil {
		ctrl.Cancel()
		return err
	}

	select {
	case <-ctx.Done():
		ctrl.Cancel()
		return ctx.Err()
	case target := <-redirected:
		fmt.Fprintf(c.rootCmd.Stdout, "Redirecting to %s\n", target)
	}

	return nil
}

func (c RegisterCommand) runWithAnswers(ctx context.Context, ctrl *wizard.Controller) error {
	abs, err := filepath.Abs(c.answersPath)
	if err != nil {
		return fmt.Errorf("invalid answers path: %w", err)
	}

	fields, err := storageio.NewAnswersYAMLRepository(os.DirFS(filepath.Dir(abs))).GetAnswers(ctx, filepath.Base(abs))
	if err != nil {
		return fmt.Errorf("could not load answers: %w", err)
	}
	if fields[model.FieldDisplayName] == "" {
		fields[model.FieldDisplayName] = strings.TrimSpace(fields[model.FieldFirstName] + " " + fields[model.FieldLastName])
	}

	for k, v := range fields {
		if err := ctrl.SetField(k, v); err != nil {
			return err
		}
	}

	for ctrl.State().CurrentStep < model.WizardStepReview {
		step := ctrl.State().CurrentStep
		errs, err := ctrl.GoNext()
		if err != nil {
			return err
		}
		if len(errs) > 0 {
			printFieldErrors(c.rootCmd.Stderr, errs)
			return fmt.Errorf("invalid answers on %s step: %w", step, model.ErrNotValid)
		}
	}

	return ctrl.Submit(ctx)
}

func (c RegisterCommand) runInteractive(ctx context.Context, ctrl *wizard.Controller) error {
	p := newPrompter(c.rootCmd.Stdin, c.rootCmd.Stdout)
	out := c.rootCmd.Stdout

	for {
		for ctrl.State().CurrentStep < model.WizardStepReview {
			step := ctrl.State().CurrentStep
			fmt.Fprintf(out, "\nStep %d of %d: %s\n", step, model.WizardTotalSteps, step)

			if err := askStep(p, out, ctrl, step); err != nil {
				return err
			}

			errs, err := ctrl.GoNext()
			if err != nil {
				return err
			}
			printFieldErrors(out, errs)
		}

		fmt.Fprintf(out, "\nStep %d of %d: %s\n", model.WizardStepReview, model.WizardTotalSteps, model.WizardStepReview)
		printReview(out, ctrl.State().Fields)

		submit := c.yes
		if !submit {
			ok, err := p.Confirm("Create the account?", true)
			if err != nil {
				return err
			}
			submit = ok
		}
		if !submit {
			return fmt.Errorf("registration cancelled")
		}

		err := ctrl.Submit(ctx)
		if err == nil {
			return nil
		}

		// The failure notice was already shown.
		if errors.Is(err, model.ErrWizardClosed) || errors.Is(err, model.ErrSubmissionInFlight) {
			return err
		}
		edit, cerr := p.Confirm("Edit your answers and try again?", true)
		if cerr != nil || !edit {
			return err
		}
		for ctrl.State().CurrentStep > model.WizardStepAccount {
			if err := ctrl.GoPrev(); err != nil {
				return err
			}
		}
	}
}

func askStep(p *prompter, out io.Writer, ctrl *wizard.Controller, step model.WizardStep) error {
	fields := ctrl.State().Fields
	set := func(f model.Field, v string) error { return ctrl.SetField(f, v) }
	ask := func(f model.Field, label string) error {
		v, err := p.Ask(label, fields[f])
		if err != nil {
			return err
		}
		return set(f, v)
	}

	switch step {
	case model.WizardStepAccount:
		if err := ask(model.FieldUsername, "Username"); err != nil {
			return err
		}
		if err := ask(model.FieldEmail, "Email"); err != nil {
			return err
		}
		pw, err := p.AskSecret("Password")
		if err != nil {
			return err
		}
		s := wizard.PasswordStrength(pw)
		fmt.Fprintf(out, "  Password strength: %s (%d/5)\n", s.Label, s.Score)
		if err := set(model.FieldPassword, pw); err != nil {
			return err
		}
		confirm, err := p.AskSecret("Confirm password")
		if err != nil {
			return err
		}
		return set(model.FieldConfirmPassword, confirm)

	case model.WizardStepPersonal:
		if err := ask(model.FieldFirstName, "First name"); err != nil {
			return err
		}
		if err := ask(model.FieldLastName, "Last name"); err != nil {
			return err
		}
		if fields[model.FieldDisplayName] == "" {
			st := ctrl.State().Fields
			fields[model.FieldDisplayName] = strings.TrimSpace(st[model.FieldFirstName] + " " + st[model.FieldLastName])
		}
		if err := ask(model.FieldDisplayName, "Display name"); err != nil {
			return err
		}
		return ask(model.FieldBio, "Bio (optional)")

	case model.WizardStepOrganizational:
		for i, d := range model.Departments {
			fmt.Fprintf(out, "  %d) %s\n", i+1, d)
		}
		dep, err := p.Ask("Department", fields[model.FieldDepartment])
		if err != nil {
			return err
		}
		if i, err := strconv.Atoi(dep); err == nil && i >= 1 && i <= len(model.Departments) {
			dep = model.Departments[i-1]
		}
		if err := set(model.FieldDepartment, dep); err != nil {
			return err
		}

		role := fields[model.FieldRole]
		if role == "" {
			role = string(model.RoleUser)
		}
		role, err = p.Ask("Role (user, manager, admin)", role)
		if err != nil {
			return err
		}
		if err := set(model.FieldRole, strings.ToLower(role)); err != nil {
			return err
		}
		return ask(model.FieldEmployeeID, "Employee ID (optional)")
	}

	return nil
}

func printFieldErrors(w io.Writer, errs model.FieldErrors) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, string(f))
	}
	slices.Sort(fields)

	for _, f := range fields {
		fmt.Fprintf(w, "  ✗ %s: %s\n", f, errs[model.Field(f)])
	}
}

func printReview(w io.Writer, fields model.Fields) {
	reg := wizard.BuildRegistration(fields)
	fmt.Fprintf(w, "  Username:      %s\n", reg.Username)
	fmt.Fprintf(w, "  Email:         %s\n", reg.Email)
	fmt.Fprintf(w, "  Display name:  %s\n", reg.DisplayName)
	fmt.Fprintf(w, "  Name:          %s %s\n", reg.FirstName, reg.LastName)
	if reg.Bio != "" {
		fmt.Fprintf(w, "  Bio:           %s\n", reg.Bio)
	}
	fmt.Fprintf(w, "  Department:    %s\n", reg.Department)
	fmt.Fprintf(w, "  Role:          %s\n", reg.Role)
	if reg.EmployeeID != "" {
		fmt.Fprintf(w, "  Employee ID:   %s\n", reg.EmployeeID)
	}
}
