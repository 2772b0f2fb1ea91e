// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// DateLayout is the only accepted date format, for both input and display (DD-MM-YYYY).
const DateLayout = "02-01-2006"

// MinYear is the earliest year a transaction date may fall in.
const MinYear = 1900

// MaxDetailsLength bounds the free-text description (VARCHAR(255) in DB).
const MaxDetailsLength = 255

// Transaction represents one recorded expense.
type Transaction struct {
	ID      int64           `db:"id" json:"id"`                                   // Primary key, assigned by the backend
	Date    time.Time       `db:"date" json:"date"`                               // Calendar date, midnight UTC
	Details string          `db:"transaction_details" json:"transaction_details"` // Free-text description
	Amount  decimal.Decimal `db:"amount" json:"amount"`                           // NUMERIC(10, 2) in DB, always > 0
	Remarks *string         `db:"remarks" json:"remarks"`                         // Optional remarks
}

// RemarksText returns the remarks, or "" when absent.
func (t Transaction) RemarksText() string {
	if t.Remarks == nil {
		return ""
	}
	return *t.Remarks
}

// FormattedDate renders the date in DateLayout.
func (t Transaction) FormattedDate() string {
	return t.Date.Format(DateLayout)
}

// TransactionInput is the replaceable field set of a Transaction, used for
// both insert and update.
type TransactionInput struct {
	Date    time.Time
	Details string
	Amount  decimal.Decimal
	Remarks *string
}

// NewTransaction creates a new Transaction instance from validated input.
// The ID is left zero until the backend assigns one.
func NewTransaction(in TransactionInput) *Transaction {
	return &Transaction{
		Date:    NormalizeDate(in.Date),
		Details: in.Details,
		Amount:  in.Amount,
		Remarks: in.Remarks,
	}
}

// NormalizeDate drops the time-of-day and location, keeping the calendar date.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
