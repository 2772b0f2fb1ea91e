// internal/repository/sqlstore/transaction_store.go
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"expense-tracker/internal/domain"
	"expense-tracker/internal/repository"
	"expense-tracker/internal/util"
	"expense-tracker/pkg/db"
)

// storeDate is how calendar dates are bound: the ISO form both backends
// accept for a DATE column and which sorts correctly as text in SQLite.
const storeDate = "2006-01-02"

const selectColumns = `SELECT id, date, transaction_details, amount, remarks FROM "transaction"`

// TransactionStore implements repository.TransactionStore for PostgreSQL and SQLite.
type TransactionStore struct {
	// Stateless: methods receive the DBExecutor to run on.
}

// NewTransactionStore creates a new TransactionStore.
func NewTransactionStore() repository.TransactionStore {
	return &TransactionStore{}
}

// CreateTransaction inserts a new transaction record using the provided DBExecutor.
func (r *TransactionStore) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := q.Rebind(`INSERT INTO "transaction" (date, transaction_details, amount, remarks)
              VALUES (?, ?, ?, ?) RETURNING id`)

	err := q.QueryRowContext(ctx, query,
		transaction.Date.Format(storeDate),
		transaction.Details,
		transaction.Amount,
		transaction.Remarks,
	).Scan(&transaction.ID)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListTransactions retrieves every transaction, newest date first and, within
// one date, the most recently created first.
func (r *TransactionStore) ListTransactions(ctx context.Context, q repository.DBExecutor) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := selectColumns + ` ORDER BY date DESC, id DESC`
	if err := q.SelectContext(ctx, &transactions, query); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	for i := range transactions {
		transactions[i].Date = domain.NormalizeDate(transactions[i].Date)
	}
	return transactions, nil
}

// SumAmounts returns the total of all amounts. SQLite's SUM works in floating
// point, so there the amounts are folded with decimal arithmetic instead.
func (r *TransactionStore) SumAmounts(ctx context.Context, q repository.DBExecutor) (decimal.Decimal, error) {
	if q.DriverName() == db.DriverSQLite {
		var amounts []decimal.Decimal
		if err := q.SelectContext(ctx, &amounts, `SELECT amount FROM "transaction"`); err != nil {
			return decimal.Zero, fmt.Errorf("failed to sum transaction amounts: %w", err)
		}
		total := decimal.Zero
		for _, amount := range amounts {
			total = total.Add(amount)
		}
		return total, nil
	}

	var total decimal.Decimal
	if err := q.GetContext(ctx, &total, `SELECT COALESCE(SUM(amount), 0) FROM "transaction"`); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transaction amounts: %w", err)
	}
	return total, nil
}

// GetTransactionByID retrieves a transaction by its ID using the provided DBExecutor.
func (r *TransactionStore) GetTransactionByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Transaction, error) {
	var transaction domain.Transaction
	err := q.GetContext(ctx, &transaction, q.Rebind(selectColumns+` WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by ID %d: %w", id, err)
	}
	transaction.Date = domain.NormalizeDate(transaction.Date)
	return &transaction, nil
}

// UpdateTransaction replaces date, details, amount and remarks of the row with transaction.ID.
func (r *TransactionStore) UpdateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := q.Rebind(`UPDATE "transaction"
              SET date = ?, transaction_details = ?, amount = ?, remarks = ?
              WHERE id = ?`)
	result, err := q.ExecContext(ctx, query,
		transaction.Date.Format(storeDate),
		transaction.Details,
		transaction.Amount,
		transaction.Remarks,
		transaction.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", transaction.ID, err)
	}
	return expectOneRow(result, "updating", transaction.ID)
}

// DeleteTransaction removes the row with the given ID.
func (r *TransactionStore) DeleteTransaction(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM "transaction" WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	return expectOneRow(result, "deleting", id)
}

func expectOneRow(result sql.Result, action string, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after %s transaction %d: %w", action, id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
