// internal/ofximport/importer.go
package ofximport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"expense-tracker/internal/domain"
	"expense-tracker/internal/service"
)

// RemarksPrefix marks transactions created from a statement; the FITID follows it.
const RemarksPrefix = "ofx:"

const fallbackDetails = "Statement transaction"

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Summary counts the outcome of one import.
type Summary struct {
	Imported   int
	Duplicates int // FITID already imported earlier
	Skipped    int // credits, zero amounts and rows that failed validation
}

// Importer records the debits of OFX/QFX bank and credit card statements as expenses.
type Importer struct {
	svc    service.TransactionService
	logger *slog.Logger
}

// NewImporter creates an Importer that inserts through svc.
func NewImporter(svc service.TransactionService, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{svc: svc, logger: logger}
}

// ImportFile imports the statement at path.
func (im *Importer) ImportFile(ctx context.Context, path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to open statement: %w", err)
	}
	defer f.Close()

	return im.Import(ctx, f)
}

// Import parses an OFX document from r and imports it.
func (im *Importer) Import(ctx context.Context, r io.Reader) (Summary, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read statement: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return Summary{}, fmt.Errorf("failed to parse statement: %w", err)
	}
	return im.ImportResponse(ctx, resp)
}

// ImportResponse imports every bank and credit card statement in resp.
func (im *Importer) ImportResponse(ctx context.Context, resp *ofxgo.Response) (Summary, error) {
	seen, err := im.importedIDs(ctx)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	for _, ofxTx := range statementTransactions(resp) {
		fitID := string(ofxTx.FiTID)
		if fitID != "" && seen[fitID] {
			summary.Duplicates++
			continue
		}

		in, ok := Convert(ofxTx)
		if !ok {
			summary.Skipped++
			continue
		}

		id, err := im.svc.Insert(ctx, in)
		if err != nil {
			if ctx.Err() != nil {
				return summary, err
			}
			im.logger.Warn("Statement transaction rejected", "fitid", fitID, "error", err)
			summary.Skipped++
			continue
		}
		if fitID != "" {
			seen[fitID] = true
		}
		summary.Imported++
		im.logger.Debug("Statement transaction imported", "fitid", fitID, "id", id)
	}

	im.logger.Info("Statement imported",
		"imported", summary.Imported,
		"duplicates", summary.Duplicates,
		"skipped", summary.Skipped)
	return summary, nil
}

// Convert maps one statement line to an expense. Only debits (negative
// TRNAMT) are expenses; ok is false for anything else.
func Convert(ofxTx ofxgo.Transaction) (in domain.TransactionInput, ok bool) {
	if ofxTx.TrnAmt.Sign() >= 0 {
		return domain.TransactionInput{}, false
	}

	amount, err := decimal.NewFromString(ofxTx.TrnAmt.FloatString(2))
	if err != nil {
		return domain.TransactionInput{}, false
	}
	amount = amount.Abs()
	if !amount.IsPositive() {
		return domain.TransactionInput{}, false
	}

	in = domain.TransactionInput{
		Date:    domain.NormalizeDate(ofxTx.DtPosted.Time),
		Details: details(ofxTx),
		Amount:  amount,
	}
	if fitID := strings.TrimSpace(string(ofxTx.FiTID)); fitID != "" {
		remarks := RemarksPrefix + fitID
		in.Remarks = &remarks
	}
	return in, true
}

func details(ofxTx ofxgo.Transaction) string {
	var candidates []string
	if ofxTx.Payee != nil {
		candidates = append(candidates, string(ofxTx.Payee.Name))
	}
	candidates = append(candidates, string(ofxTx.Name), string(ofxTx.Memo))

	for _, c := range candidates {
		name := strings.Join(strings.Fields(c), " ")
		if name == "" {
			continue
		}
		if utf8.RuneCountInString(name) > domain.MaxDetailsLength {
			name = string([]rune(name)[:domain.MaxDetailsLength])
		}
		return name
	}
	return fallbackDetails
}

func statementTransactions(resp *ofxgo.Response) []ofxgo.Transaction {
	var out []ofxgo.Transaction
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			out = append(out, stmt.BankTranList.Transactions...)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			out = append(out, stmt.BankTranList.Transactions...)
		}
	}
	return out
}

// importedIDs collects the FITIDs already recorded in remarks.
func (im *Importer) importedIDs(ctx context.Context) (map[string]bool, error) {
	existing, err := im.svc.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for _, t := range existing {
		if fitID, ok := strings.CutPrefix(t.RemarksText(), RemarksPrefix); ok {
			seen[fitID] = true
		}
	}
	return seen, nil
}

// preprocess fixes formatting issues common in bank exports: leading blank
// lines, mixed-case SEVERITY values and SGML tags missing their '>'.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}
