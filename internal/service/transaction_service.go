// internal/service/transaction_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"expense-tracker/internal/domain"
	"expense-tracker/internal/repository"
	"expense-tracker/internal/util"
	"expense-tracker/pkg/db"
)

// TransactionService defines the interface for expense bookkeeping.
type TransactionService interface {
	Insert(ctx context.Context, in domain.TransactionInput) (int64, error)
	ListAll(ctx context.Context) ([]domain.Transaction, error)
	SumAmounts(ctx context.Context) (decimal.Decimal, error)
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	Update(ctx context.Context, id int64, in domain.TransactionInput) error
	DeleteByID(ctx context.Context, id int64) error
}

// transactionService implements the TransactionService interface.
type transactionService struct {
	dbBeginner db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	store      repository.TransactionStore
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
	logger     *slog.Logger
}

// NewTransactionService creates a new instance of TransactionService.
func NewTransactionService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	store repository.TransactionStore,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	logger *slog.Logger,
) TransactionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &transactionService{
		dbBeginner: dbBeginner,
		dbExecutor: dbExecutor,
		store:      store,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
		logger:     logger,
	}
}

// Insert validates in and stores it as a new transaction, returning its ID.
func (s *transactionService) Insert(ctx context.Context, in domain.TransactionInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	transaction := domain.NewTransaction(in)
	err := s.inTx(ctx, "insert", func(q repository.DBExecutor) error {
		return s.store.CreateTransaction(ctx, q, transaction)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Transaction inserted", "id", transaction.ID, "amount", transaction.Amount.String())
	return transaction.ID, nil
}

func (s *transactionService) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	transactions, err := s.store.ListTransactions(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("%w: list failed: %w", util.ErrPersistence, err)
	}
	return transactions, nil
}

func (s *transactionService) SumAmounts(ctx context.Context) (decimal.Decimal, error) {
	total, err := s.store.SumAmounts(ctx, s.dbExecutor)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: sum failed: %w", util.ErrPersistence, err)
	}
	return total, nil
}

// GetByID returns the transaction with the given ID or util.ErrNotFound.
func (s *transactionService) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	transaction, err := s.store.GetTransactionByID(ctx, s.dbExecutor, id)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: get failed: %w", util.ErrPersistence, err)
	}
	return transaction, nil
}

// Update replaces every field of transaction id with in. The input is
// validated again here so a caller cannot bypass the parsers.
func (s *transactionService) Update(ctx context.Context, id int64, in domain.TransactionInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	transaction := domain.NewTransaction(in)
	transaction.ID = id
	err := s.inTx(ctx, "update", func(q repository.DBExecutor) error {
		return s.store.UpdateTransaction(ctx, q, transaction)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Transaction updated", "id", id)
	return nil
}

func (s *transactionService) DeleteByID(ctx context.Context, id int64) error {
	err := s.inTx(ctx, "delete", func(q repository.DBExecutor) error {
		return s.store.DeleteTransaction(ctx, q, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Transaction deleted", "id", id)
	return nil
}

// inTx runs fn inside one database transaction. Any failure rolls it back;
// util.ErrNotFound is returned as is, everything else as util.ErrPersistence.
func (s *transactionService) inTx(ctx context.Context, op string, fn func(q repository.DBExecutor) error) error {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return s.persistenceError(op, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return s.persistenceError(op, errors.New("transaction controller does not implement DBExecutor"))
	}

	if err := fn(txExecutor); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return err
		}
		return s.persistenceError(op, err)
	}

	if err := s.commitTx(txController); err != nil {
		return s.persistenceError(op, fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

func (s *transactionService) persistenceError(op string, err error) error {
	s.logger.Error("Transaction rolled back", "operation", op, "error", err)
	return fmt.Errorf("%w: %s failed: %w", util.ErrPersistence, op, err)
}
