// Package lib provides a Go SDK for the wellhub employee wellness platform.
//
// It allows applications to register users, run the smart wellness tools and
// manage credit accounts without shelling out to the wellhub CLI binary.
//
// # Quick Start
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Register a user, the account receives the welcome credits.
//	user, err := client.Register(ctx, lib.RegisterOpts{
//	    Username:    "jdoe",
//	    Email:       "jdoe@example.com",
//	    Password:    "Secret123!",
//	    DisplayName: "John Doe",
//	    Department:  "Engineering",
//	})
//
//	// Run a tool and wait for its result.
//	run, err := client.RunTool(ctx, user.Username, lib.ToolIDHealthAssessment)
//
// # Registration Wizard
//
// [Client.NewWizard] returns the four step registration flow. Every step is
// validated before moving forward and the submission is only allowed on the
// review step:
//
//	w, _ := client.NewWizard(lib.WizardOpts{
//	    OnRedirect: func(target string) { fmt.Println("go to", target) },
//	})
//	w.SetField(lib.FieldUsername, "jdoe")
//	errs, _ := w.Next() // Field errors of the current step, empty when valid.
//
// # Tools and Credits
//
// A [Runner] simulates the tool progress and debits the tool cost once the run
// completes. Runs are refused upfront when the account balance is not enough:
//
//	r, _ := client.NewRunner(ctx, lib.RunnerOpts{AccountID: "jdoe"})
//	r.Run(ctx, lib.ToolIDSleepOptimizer)
//	run, _ := r.Wait(ctx, lib.ToolIDSleepOptimizer)
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Resource does not exist.
//   - [ErrAlreadyExists]: Username or email already registered.
//   - [ErrNotValid]: Invalid input.
//   - [ErrInsufficientCredits]: The account can't pay for the tool.
//   - [ErrTaskAlreadyRunning]: The tool has a run in progress.
//
// # Testing
//
// Use [Config].InMemory and a short tick interval to write fast tests:
//
//	client, _ := lib.New(ctx, lib.Config{
//	    DataDir:      t.TempDir(),
//	    InMemory:     true,
//	    TickInterval: time.Millisecond,
//	})
package lib
