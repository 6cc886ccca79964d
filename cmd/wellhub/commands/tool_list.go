package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/wellhub/internal/app/toollist"
)

// ToolListCommand lists the smart tools.
type ToolListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	search string
	sortBy string
	format string
}

// NewToolListCommand returns the tool list command.
func NewToolListCommand(rootCmd *RootCommand, toolCmd *kingpin.CmdClause) *ToolListCommand {
	c := &ToolListCommand{rootCmd: rootCmd}

	c.Cmd = toolCmd.Command("list", "List the smart tools.")
	c.Cmd.Flag("search", "Only show tools matching the text on name, description or category.").Short('s').StringVar(&c.search)
	c.Cmd.Flag("sort", "Sort the tools (name, cost).").EnumVar(&c.sortBy, string(toollist.SortByName), string(toollist.SortByCost))
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c ToolListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ToolListCommand) Run(ctx context.Context) error {
	toolRepo, err := c.rootCmd.newToolRepository()
	if err != nil {
		return err
	}

	svc, err := toollist.NewService(toollist.ServiceConfig{
		Repository: toolRepo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	tools, err := svc.Run(ctx, toollist.Request{
		Search: c.search,
		SortBy: toollist.SortBy(c.sortBy),
	})
	if err != nil {
		return fmt.Errorf("could not list tools: %w", err)
	}

	if err := c.rootCmd.newPrinter(c.format).PrintTools(tools); err != nil {
		return fmt.Errorf("could not print tools: %w", err)
	}

	return nil
}
