// internal/ofximport/importer_test.go
package ofximport

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker/internal/domain"
	"expense-tracker/internal/repository/sqlstore"
	"expense-tracker/internal/service"
	"expense-tracker/pkg/db"
)

func amount(s string) ofxgo.Amount {
	var a ofxgo.Amount
	if _, ok := a.SetString(s); !ok {
		panic("bad amount " + s)
	}
	return a
}

func posted(y int, m time.Month, d int) ofxgo.Date {
	return ofxgo.Date{Time: time.Date(y, m, d, 14, 30, 0, 0, time.FixedZone("EST", -5*3600))}
}

func TestConvert(t *testing.T) {
	t.Run("Debit", func(t *testing.T) {
		in, ok := Convert(ofxgo.Transaction{
			TrnType:  ofxgo.TrnTypeDebit,
			DtPosted: posted(2024, time.March, 9),
			TrnAmt:   amount("-1250.456"),
			FiTID:    "20240309-001",
			Name:     "  COFFEE   HOUSE  ",
			Memo:     "card 4242",
		})
		require.True(t, ok)
		assert.Equal(t, "09-03-2024", in.Date.Format(domain.DateLayout))
		assert.Equal(t, "COFFEE HOUSE", in.Details)
		assert.True(t, decimal.RequireFromString("1250.46").Equal(in.Amount), in.Amount.String())
		require.NotNil(t, in.Remarks)
		assert.Equal(t, "ofx:20240309-001", *in.Remarks)
		assert.NoError(t, in.Validate())
	})

	t.Run("PayeePreferred", func(t *testing.T) {
		in, ok := Convert(ofxgo.Transaction{
			DtPosted: posted(2024, time.March, 9),
			TrnAmt:   amount("-5"),
			Name:     "POS 1234",
			Payee:    &ofxgo.Payee{Name: "Corner Bakery"},
		})
		require.True(t, ok)
		assert.Equal(t, "Corner Bakery", in.Details)
		assert.Nil(t, in.Remarks)
	})

	t.Run("LongNameTruncated", func(t *testing.T) {
		in, ok := Convert(ofxgo.Transaction{
			DtPosted: posted(2024, time.March, 9),
			TrnAmt:   amount("-5"),
			Name:     ofxgo.String(strings.Repeat("x", 300)),
		})
		require.True(t, ok)
		assert.Len(t, in.Details, domain.MaxDetailsLength)
	})

	t.Run("CreditsAndZeroSkipped", func(t *testing.T) {
		_, ok := Convert(ofxgo.Transaction{TrnAmt: amount("100.00"), Name: "SALARY"})
		assert.False(t, ok)
		_, ok = Convert(ofxgo.Transaction{TrnAmt: amount("0"), Name: "ADJ"})
		assert.False(t, ok)
		_, ok = Convert(ofxgo.Transaction{TrnAmt: amount("-0.001"), Name: "ROUNDING"})
		assert.False(t, ok)
	})
}

func TestImportResponse(t *testing.T) {
	ctx := context.Background()
	conn, err := db.NewDB(ctx, db.Config{Driver: db.DriverSQLite, Path: ":memory:", CreateTables: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	svc := service.NewTransactionService(conn, conn, sqlstore.NewTransactionStore(), db.BeginTx, db.CommitTx, db.RollbackTx, nil)

	resp := &ofxgo.Response{
		Bank: []ofxgo.Message{&ofxgo.StatementResponse{
			BankTranList: &ofxgo.TransactionList{Transactions: []ofxgo.Transaction{
				{DtPosted: posted(2024, time.January, 2), TrnAmt: amount("-42.50"), FiTID: "B1", Name: "GROCER"},
				{DtPosted: posted(2024, time.January, 3), TrnAmt: amount("2000.00"), FiTID: "B2", Name: "PAYROLL"},
			}},
		}},
		CreditCard: []ofxgo.Message{&ofxgo.CCStatementResponse{
			BankTranList: &ofxgo.TransactionList{Transactions: []ofxgo.Transaction{
				{DtPosted: posted(2024, time.January, 4), TrnAmt: amount("-19.99"), FiTID: "C1", Name: "STREAMING"},
				{DtPosted: posted(2024, time.January, 5), TrnAmt: amount("-250000000"), FiTID: "C2", Name: "TYPO"},
			}},
		}},
	}

	importer := NewImporter(svc, nil)
	summary, err := importer.ImportResponse(ctx, resp)
	require.NoError(t, err)
	assert.Equal(t, Summary{Imported: 2, Skipped: 2}, summary)

	total, err := svc.SumAmounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "62.49", total.StringFixed(2))

	// A second run recognises what was already imported.
	summary, err = importer.ImportResponse(ctx, resp)
	require.NoError(t, err)
	assert.Equal(t, Summary{Duplicates: 2, Skipped: 2}, summary)
}

func TestPreprocess(t *testing.T) {
	in := "\n\n  <OFX>\n<SEVERITY>Info</SEVERITY>\n<CODE\n"
	out := preprocess(in)
	assert.True(t, strings.HasPrefix(out, "<OFX>"))
	assert.Contains(t, out, "<SEVERITY>INFO</SEVERITY>")
	assert.Contains(t, out, "<CODE>")
}

func TestImportFileMissing(t *testing.T) {
	_, err := NewImporter(nil, nil).ImportFile(context.Background(), "/nonexistent/statement.ofx")
	assert.Error(t, err)
}
