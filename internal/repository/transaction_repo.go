// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"expense-tracker/internal/domain"
)

// TransactionStore defines the SQL operations on the transaction table.
// Every method runs on the DBExecutor it is given, so callers decide the
// transactional scope.
type TransactionStore interface {
	// CreateTransaction inserts transaction and sets its backend-assigned ID.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// ListTransactions returns all rows ordered by date, then id, newest first.
	ListTransactions(ctx context.Context, q DBExecutor) ([]domain.Transaction, error)
	// SumAmounts returns the exact total of all amounts, zero for an empty table.
	SumAmounts(ctx context.Context, q DBExecutor) (decimal.Decimal, error)
	// GetTransactionByID retrieves one row or util.ErrNotFound.
	GetTransactionByID(ctx context.Context, q DBExecutor, id int64) (*domain.Transaction, error)
	// UpdateTransaction replaces every field but the ID; util.ErrNotFound when no row matches.
	UpdateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// DeleteTransaction hard-deletes a row; util.ErrNotFound when no row matches.
	DeleteTransaction(ctx context.Context, q DBExecutor, id int64) error
}
