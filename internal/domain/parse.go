// internal/domain/parse.go
package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"expense-tracker/internal/util"
)

// Causes attached to util.ValidationError by the parsers below.
var (
	ErrDateFormat        = errors.New("date must be in DD-MM-YYYY format, e.g. 25-12-2024")
	ErrDateOutOfRange    = errors.New("date must be on or after 01-01-1900")
	ErrDateMissing       = errors.New("date is required")
	ErrAmountFormat      = errors.New("amount must be a number, e.g. 1250.50")
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrAmountPrecision   = errors.New("amount can have at most two decimal places")
	ErrAmountTooLarge    = errors.New("amount must be below 100,000,000")
	ErrDetailsEmpty      = errors.New("transaction details cannot be empty")
	ErrDetailsTooLong    = errors.New("transaction details must be at most 255 characters")
	ErrSerialFormat      = errors.New("please enter a number")
)

// maxAmount is the first value that no longer fits NUMERIC(10, 2).
var maxAmount = decimal.New(1, 8)

// ParseDate parses raw as a DD-MM-YYYY calendar date no earlier than MinYear.
// ISO 8601 and other layouts are rejected.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	// time.Parse accepts "2-1-2006" style input for "02-01-2006"; require the padded form.
	if len(s) != len(DateLayout) {
		return time.Time{}, util.NewValidationError("date", raw, ErrDateFormat)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, util.NewValidationError("date", raw, ErrDateFormat)
	}
	if t.Year() < MinYear {
		return time.Time{}, util.NewValidationError("date", raw, ErrDateOutOfRange)
	}
	return NormalizeDate(t), nil
}

// ParseAmount parses raw as a strictly positive fixed-point amount with at
// most two decimal places. A leading currency symbol and thousands separators
// are tolerated.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimLeft(s, "₹$€£ ")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, util.NewValidationError("amount", raw, ErrAmountFormat)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil || strings.ContainsAny(s, "eE") {
		return decimal.Zero, util.NewValidationError("amount", raw, ErrAmountFormat)
	}
	if !amount.IsPositive() {
		return decimal.Zero, util.NewValidationError("amount", raw, ErrAmountNotPositive)
	}
	if !amount.Equal(amount.Truncate(2)) {
		return decimal.Zero, util.NewValidationError("amount", raw, ErrAmountPrecision)
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, util.NewValidationError("amount", raw, ErrAmountTooLarge)
	}
	return amount, nil
}

// ParseDetails trims raw and checks it is non-empty and within MaxDetailsLength characters.
func ParseDetails(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", util.NewValidationError("details", raw, ErrDetailsEmpty)
	}
	if utf8.RuneCountInString(s) > MaxDetailsLength {
		return "", util.NewValidationError("details", raw, ErrDetailsTooLong)
	}
	return s, nil
}

// ParseRemarks trims raw; empty remarks are absent (nil).
func ParseRemarks(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	return &s
}

// ParseSerial parses a serial number typed by the user. Range checks belong
// to the selection index that issued the serials.
func ParseSerial(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, util.NewValidationError("serial number", raw, ErrSerialFormat)
	}
	return n, nil
}

// ParseInput validates a full set of raw fields, returning the first failure.
func ParseInput(rawDate, rawDetails, rawAmount, rawRemarks string) (TransactionInput, error) {
	date, err := ParseDate(rawDate)
	if err != nil {
		return TransactionInput{}, err
	}
	details, err := ParseDetails(rawDetails)
	if err != nil {
		return TransactionInput{}, err
	}
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return TransactionInput{}, err
	}
	return TransactionInput{
		Date:    date,
		Details: details,
		Amount:  amount,
		Remarks: ParseRemarks(rawRemarks),
	}, nil
}

// Validate re-checks an already assembled input before it reaches the database.
func (in TransactionInput) Validate() error {
	if in.Date.IsZero() {
		return util.NewValidationError("date", "", ErrDateMissing)
	}
	if in.Date.Year() < MinYear {
		return util.NewValidationError("date", in.Date.Format(DateLayout), ErrDateOutOfRange)
	}
	if _, err := ParseDetails(in.Details); err != nil {
		return err
	}
	if _, err := ParseAmount(in.Amount.String()); err != nil {
		return err
	}
	return nil
}
