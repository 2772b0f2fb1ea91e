// internal/domain/parse_test.go
package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker/internal/util"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Time
		wantErr error
	}{
		{raw: "25-12-2024", want: time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)},
		{raw: " 01-01-2024 ", want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{raw: "29-02-2024", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{raw: "01-01-1900", want: time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)},
		{raw: "2024-12-25", wantErr: ErrDateFormat},
		{raw: "25/12/2024", wantErr: ErrDateFormat},
		{raw: "5-1-2024", wantErr: ErrDateFormat},
		{raw: "31-02-2024", wantErr: ErrDateFormat},
		{raw: "29-02-2023", wantErr: ErrDateFormat},
		{raw: "25-12-24", wantErr: ErrDateFormat},
		{raw: "", wantErr: ErrDateFormat},
		{raw: "01-01-0001", wantErr: ErrDateOutOfRange},
		{raw: "31-12-1899", wantErr: ErrDateOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseDate(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, util.ErrInvalidInput)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v got %v", tt.want, got)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr error
	}{
		{raw: "0.01", want: "0.01"},
		{raw: "120.5", want: "120.5"},
		{raw: "₹1,250.75", want: "1250.75"},
		{raw: "$ 42", want: "42"},
		{raw: "99999999.99", want: "99999999.99"},
		{raw: "0", wantErr: ErrAmountNotPositive},
		{raw: "0.00", wantErr: ErrAmountNotPositive},
		{raw: "-5.00", wantErr: ErrAmountNotPositive},
		{raw: "abc", wantErr: ErrAmountFormat},
		{raw: "", wantErr: ErrAmountFormat},
		{raw: "1e3", wantErr: ErrAmountFormat},
		{raw: "10.005", wantErr: ErrAmountPrecision},
		{raw: "100000000", wantErr: ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, util.ErrInvalidInput)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestParseAmountMessagesAreDistinct(t *testing.T) {
	_, malformed := ParseAmount("twelve")
	_, negative := ParseAmount("-5.00")

	var a, b *util.ValidationError
	require.ErrorAs(t, malformed, &a)
	require.ErrorAs(t, negative, &b)
	assert.NotEqual(t, a.Reason(), b.Reason())
}

func TestParseDetails(t *testing.T) {
	got, err := ParseDetails("  Groceries at market  ")
	require.NoError(t, err)
	assert.Equal(t, "Groceries at market", got)

	_, err = ParseDetails("   ")
	assert.ErrorIs(t, err, ErrDetailsEmpty)

	_, err = ParseDetails(strings.Repeat("x", MaxDetailsLength+1))
	assert.ErrorIs(t, err, ErrDetailsTooLong)

	// Length is counted in characters, not bytes.
	_, err = ParseDetails(strings.Repeat("₹", MaxDetailsLength))
	assert.NoError(t, err)
}

func TestParseRemarks(t *testing.T) {
	assert.Nil(t, ParseRemarks(""))
	assert.Nil(t, ParseRemarks("  "))
	got := ParseRemarks(" card ending 4242 ")
	require.NotNil(t, got)
	assert.Equal(t, "card ending 4242", *got)
}

func TestParseSerial(t *testing.T) {
	n, err := ParseSerial(" 3 ")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = ParseSerial("three")
	assert.ErrorIs(t, err, util.ErrInvalidInput)
	assert.ErrorIs(t, err, ErrSerialFormat)
}

func TestParseInputAndValidate(t *testing.T) {
	in, err := ParseInput("15-01-2024", "Fuel", "2,000.00", "")
	require.NoError(t, err)
	assert.Equal(t, "Fuel", in.Details)
	assert.Nil(t, in.Remarks)
	assert.NoError(t, in.Validate())

	_, err = ParseInput("2024-01-15", "Fuel", "20", "")
	assert.ErrorIs(t, err, ErrDateFormat)

	bad := TransactionInput{Date: in.Date, Details: "Fuel", Amount: decimal.NewFromInt(-1)}
	assert.ErrorIs(t, bad.Validate(), ErrAmountNotPositive)

	assert.ErrorIs(t, TransactionInput{Details: "Fuel", Amount: decimal.NewFromInt(1)}.Validate(), ErrDateMissing)
	ancient := TransactionInput{Date: time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1), Details: "Fuel", Amount: decimal.NewFromInt(1)}
	assert.ErrorIs(t, ancient.Validate(), ErrDateOutOfRange)
}

func TestNewTransactionNormalizesDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	txn := NewTransaction(TransactionInput{
		Date:    time.Date(2024, 3, 9, 23, 45, 0, 0, loc),
		Details: "Dinner",
		Amount:  decimal.RequireFromString("850.00"),
	})

	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), txn.Date)
	assert.Equal(t, "09-03-2024", txn.FormattedDate())
	assert.Equal(t, "", txn.RemarksText())
	assert.Zero(t, txn.ID)
}
