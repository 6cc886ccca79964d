package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/wellhub/internal/app/creditbalance"
	"github.com/slok/wellhub/internal/app/credittopup"
)

// CreditsBalanceCommand shows the credit balance.
type CreditsBalanceCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	history bool
	format  string
}

// NewCreditsBalanceCommand returns the credits balance command.
func NewCreditsBalanceCommand(rootCmd *RootCommand, creditsCmd *kingpin.CmdClause) *CreditsBalanceCommand {
	c := &CreditsBalanceCommand{rootCmd: rootCmd}

	c.Cmd = creditsCmd.Command("balance", "Show the account credit balance.")
	c.Cmd.Flag("history", "Also show the account transactions.").BoolVar(&c.history)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c CreditsBalanceCommand) Name() string { return c.Cmd.FullCommand() }

func (c CreditsBalanceCommand) Run(ctx context.Context) error {
	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := creditbalance.NewService(creditbalance.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, creditbalance.Request{
		AccountID:   c.rootCmd.AccountID,
		WithHistory: c.history,
	})
	if err != nil {
		return fmt.Errorf("could not get balance: %w", err)
	}

	if err := c.rootCmd.newPrinter(c.format).PrintBalance(resp.AccountID, resp.Balance, resp.Transactions); err != nil {
		return fmt.Errorf("could not print balance: %w", err)
	}

	return nil
}

// CreditsAddCommand tops up the credit balance.
type CreditsAddCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	amount      int
	description string
}

// NewCreditsAddCommand returns the credits add command.
func NewCreditsAddCommand(rootCmd *RootCommand, creditsCmd *kingpin.CmdClause) *CreditsAddCommand {
	c := &CreditsAddCommand{rootCmd: rootCmd}

	c.Cmd = creditsCmd.Command("add", "Add credits to the account.")
	c.Cmd.Arg("amount", "Credits to add.").Required().IntVar(&c.amount)
	c.Cmd.Flag("description", "Top up description.").Short('d').StringVar(&c.description)

	return c
}

func (c CreditsAddCommand) Name() string { return c.Cmd.FullCommand() }

func (c CreditsAddCommand) Run(ctx context.Context) error {
	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := credittopup.NewService(credittopup.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	balance, err := svc.Run(ctx, credittopup.Request{
		AccountID:   c.rootCmd.AccountID,
		Amount:      c.amount,
		Description: c.description,
	})
	if err != nil {
		return fmt.Errorf("could not add credits: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Added %d credits to %s, balance is %d credits\n", c.amount, c.rootCmd.AccountID, balance)

	return nil
}
