// internal/workflow/shell.go
package workflow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"expense-tracker/internal/cli"
)

// MsgInvalidOption is printed for an unknown menu choice.
const MsgInvalidOption = "Invalid option. Please try again."

type menuItem struct {
	key   string
	label string
	run   func(context.Context) error
}

// Shell is the interactive main menu.
type Shell struct {
	console *cli.Console
	items   []menuItem
	logger  *slog.Logger
}

// NewShell creates the menu over the given workflow.
func NewShell(wf *Workflow, console *cli.Console, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.Default()
	}
	return &Shell{
		console: console,
		logger:  logger,
		items: []menuItem{
			{key: "1", label: "Add Transaction", run: wf.Add},
			{key: "2", label: "View Transactions and Total", run: wf.View},
			{key: "3", label: "Update Transaction", run: wf.Update},
			{key: "4", label: "Delete Transaction", run: wf.Delete},
		},
	}
}

// Run shows the menu until the user quits, input ends, or ctx is cancelled.
// Errors from a single action are shown and the loop carries on.
func (s *Shell) Run(ctx context.Context) error {
	for {
		s.printMenu()

		choice, err := s.console.Ask(ctx, "Choose an option")
		if err != nil {
			return s.stop(err)
		}

		choice = strings.ToLower(choice)
		if choice == "q" || choice == "quit" {
			s.logger.Info("Menu closed by user")
			return nil
		}

		item, ok := s.lookup(choice)
		if !ok {
			s.console.Error(MsgInvalidOption)
			continue
		}

		if err := item.run(ctx); err != nil {
			if endOfInput(err) {
				return s.stop(err)
			}
			s.logger.Error("Menu action failed", "action", item.label, "error", err)
			s.console.Error(err.Error())
		}
	}
}

func (s *Shell) printMenu() {
	s.console.Title("Expense Tracker")
	for _, item := range s.items {
		s.console.Println(item.key + ". " + item.label)
	}
	s.console.Println("q. Quit")
	s.console.Println(cli.SubtleStyle.Render("Press Ctrl+C to exit at any time."))
}

func (s *Shell) lookup(key string) (menuItem, bool) {
	for _, item := range s.items {
		if item.key == key {
			return item, true
		}
	}
	return menuItem{}, false
}

func (s *Shell) stop(err error) error {
	if endOfInput(err) {
		s.logger.Info("Menu input ended", "reason", err)
		return nil
	}
	return err
}

func endOfInput(err error) bool {
	return errors.Is(err, cli.ErrInputCancelled) || errors.Is(err, io.EOF)
}
