// internal/workflow/workflow.go
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"expense-tracker/internal/cli"
	"expense-tracker/internal/domain"
	"expense-tracker/internal/render"
	"expense-tracker/internal/service"
	"expense-tracker/internal/util"
)

// User facing messages.
const (
	MsgNoTransactions   = "No transactions found."
	MsgInvalidNumber    = "Invalid input. Please enter a number."
	MsgInvalidSelection = "Invalid transaction selection."
	MsgNotFound         = "Transaction not found."
	MsgDeleteCancelled  = "Deletion cancelled."
	MsgUpdateCancelled  = "Update cancelled."
)

// Workflow runs the interactive add, view, update and delete flows.
//
// Outcomes the user can act on (bad serial, missing row, declined
// confirmation) are printed and reported as nil. Returned errors are backend
// failures or the end of input (cli.ErrInputCancelled, io.EOF).
type Workflow struct {
	svc      service.TransactionService
	console  *cli.Console
	renderer *render.Renderer
	logger   *slog.Logger
}

// New creates a Workflow.
func New(svc service.TransactionService, console *cli.Console, renderer *render.Renderer, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{svc: svc, console: console, renderer: renderer, logger: logger}
}

// Add collects a new transaction field by field and stores it.
func (w *Workflow) Add(ctx context.Context) error {
	w.console.Title("Add Transaction")
	in, err := w.readInput(ctx)
	if err != nil {
		return err
	}

	id, err := w.svc.Insert(ctx, in)
	if err != nil {
		return w.reportMutationError(err)
	}
	w.console.Success(fmt.Sprintf("Transaction added successfully with ID %d.", id))
	return nil
}

// View lists every transaction with the total expenditure.
func (w *Workflow) View(ctx context.Context) error {
	transactions, err := w.svc.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(transactions) == 0 {
		w.console.Info(MsgNoTransactions)
		return nil
	}

	total, err := w.svc.SumAmounts(ctx)
	if err != nil {
		return err
	}
	w.renderer.Transactions("All Transactions", transactions, total)
	return nil
}

// Update lets the user pick a transaction, confirm, and replace its fields.
func (w *Workflow) Update(ctx context.Context) error {
	transaction, err := w.pick(ctx, "Select Transaction to Update")
	if err != nil || transaction == nil {
		return err
	}

	ok, err := w.console.Confirm(ctx, "Do you want to update this transaction?")
	if err != nil {
		return err
	}
	if !ok {
		w.console.Warn(MsgUpdateCancelled)
		return nil
	}

	in, err := w.readInput(ctx)
	if err != nil {
		return err
	}
	if err := w.svc.Update(ctx, transaction.ID, in); err != nil {
		return w.reportMutationError(err)
	}
	w.console.Success(fmt.Sprintf("Transaction %d updated successfully.", transaction.ID))
	return nil
}

// Delete lets the user pick a transaction and removes it after confirmation.
func (w *Workflow) Delete(ctx context.Context) error {
	transaction, err := w.pick(ctx, "Select Transaction to Delete")
	if err != nil || transaction == nil {
		return err
	}

	ok, err := w.console.Confirm(ctx, "Are you sure you want to delete this transaction?")
	if err != nil {
		return err
	}
	if !ok {
		w.console.Warn(MsgDeleteCancelled)
		return nil
	}

	if err := w.svc.DeleteByID(ctx, transaction.ID); err != nil {
		return w.reportMutationError(err)
	}
	w.console.Success(fmt.Sprintf("Transaction %d deleted successfully.", transaction.ID))
	return nil
}

// pick lists the transactions, reads a serial number and fetches the chosen
// row. A nil transaction with a nil error means the user was told why the
// flow stopped.
func (w *Workflow) pick(ctx context.Context, title string) (*domain.Transaction, error) {
	transactions, err := w.svc.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		w.console.Info(MsgNoTransactions)
		return nil, nil
	}

	idx := w.renderer.Selection(title, transactions)

	raw, err := w.console.Ask(ctx, "Enter serial number")
	if err != nil {
		return nil, err
	}
	serial, err := domain.ParseSerial(raw)
	if err != nil {
		w.console.Error(MsgInvalidNumber)
		return nil, nil
	}
	id, err := idx.Resolve(serial)
	if err != nil {
		w.logger.Debug("Serial outside listing", "serial", serial, "listed", idx.Len())
		w.console.Error(MsgInvalidSelection)
		return nil, nil
	}

	transaction, err := w.svc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			w.console.Error(MsgNotFound)
			return nil, nil
		}
		return nil, err
	}
	w.renderer.Single("Selected Transaction", transaction)
	return transaction, nil
}

// readInput prompts for every field in order. Each field is retried until it
// is valid; accepted fields are never asked again.
func (w *Workflow) readInput(ctx context.Context) (domain.TransactionInput, error) {
	var in domain.TransactionInput
	var err error

	if in.Date, err = askUntilValid(ctx, w.console, "Enter date (DD-MM-YYYY)", domain.ParseDate); err != nil {
		return in, err
	}
	if in.Details, err = askUntilValid(ctx, w.console, "Enter transaction details", domain.ParseDetails); err != nil {
		return in, err
	}
	if in.Amount, err = askUntilValid(ctx, w.console, "Enter amount", domain.ParseAmount); err != nil {
		return in, err
	}
	raw, err := w.console.Ask(ctx, "Enter remarks (optional)")
	if err != nil {
		return in, err
	}
	in.Remarks = domain.ParseRemarks(raw)
	return in, nil
}

func askUntilValid[T any](ctx context.Context, console *cli.Console, prompt string, parse func(string) (T, error)) (T, error) {
	for {
		raw, err := console.Ask(ctx, prompt)
		if err != nil {
			var zero T
			return zero, err
		}
		value, err := parse(raw)
		if err == nil {
			return value, nil
		}
		console.Error(reason(err))
	}
}

// reportMutationError prints outcomes the user can recover from and returns
// the rest to the caller.
func (w *Workflow) reportMutationError(err error) error {
	switch {
	case errors.Is(err, util.ErrNotFound):
		w.console.Error(MsgNotFound)
		return nil
	case errors.Is(err, util.ErrInvalidInput):
		w.console.Error(reason(err))
		return nil
	default:
		return err
	}
}

func reason(err error) string {
	var verr *util.ValidationError
	if errors.As(err, &verr) {
		return verr.Reason()
	}
	return err.Error()
}
