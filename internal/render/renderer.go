// internal/render/renderer.go
package render

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"expense-tracker/internal/cli"
	"expense-tracker/internal/domain"
	"expense-tracker/internal/selection"
)

// DefaultCurrencySymbol is used when no symbol is configured.
const DefaultCurrencySymbol = "₹"

var listColumns = []string{"Sl No.", "Date", "Transaction Details", "Amount", "Remarks"}

const amountColumn = 3

// Renderer prints transaction tables.
type Renderer struct {
	out     io.Writer
	symbol  string
	printer *message.Printer
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, currencySymbol string) *Renderer {
	if currencySymbol == "" {
		currencySymbol = DefaultCurrencySymbol
	}
	return &Renderer{
		out:     out,
		symbol:  currencySymbol,
		printer: message.NewPrinter(language.English),
	}
}

// Money formats amount with the currency symbol, two decimals and thousands
// separators, e.g. ₹1,250.50. The value itself is never converted to float.
func (r *Renderer) Money(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + r.symbol + fixed
	}
	return sign + r.symbol + r.printer.Sprintf("%d", n) + "." + frac
}

// Transactions prints the full listing followed by the total expenditure.
func (r *Renderer) Transactions(title string, transactions []domain.Transaction, total decimal.Decimal) {
	r.write(cli.FormatTitle(title))
	r.write(r.table(listColumns, r.rows(transactions)).String())
	r.write(cli.BoldStyle.Render("Total Expenditure: " + r.Money(total)))
}

// Selection prints a numbered listing and returns the index built from the
// same slice, so the serials shown are the serials resolved.
func (r *Renderer) Selection(title string, transactions []domain.Transaction) *selection.Index {
	r.write(cli.FormatTitle(title))
	r.write(r.table(listColumns, r.rows(transactions)).String())
	idx := selection.Build(transactions)
	r.write(cli.SubtleStyle.Render(fmt.Sprintf("Select a transaction by entering its serial number (1-%d)", idx.Len())))
	return idx
}

// Single prints one transaction, identified by its ID.
func (r *Renderer) Single(title string, transaction *domain.Transaction) {
	r.write(cli.FormatTitle(title))
	row := r.row(strconv.FormatInt(transaction.ID, 10), *transaction)
	r.write(r.table([]string{"ID", "Date", "Transaction Details", "Amount", "Remarks"}, [][]string{row}).String())
}

func (r *Renderer) rows(transactions []domain.Transaction) [][]string {
	rows := make([][]string, 0, len(transactions))
	for i, t := range transactions {
		rows = append(rows, r.row(strconv.Itoa(i+1), t))
	}
	return rows
}

func (r *Renderer) row(key string, t domain.Transaction) []string {
	remarks := t.RemarksText()
	if remarks == "" {
		remarks = "-"
	}
	return []string{key, t.FormattedDate(), t.Details, r.Money(t.Amount), remarks}
}

func (r *Renderer) table(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(cli.TableBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cli.TableHeaderStyle
			}
			if col == amountColumn {
				return cli.TableCellStyle.Align(lipgloss.Right)
			}
			return cli.TableCellStyle
		}).
		Headers(headers...).
		Rows(rows...)
}

func (r *Renderer) write(text string) {
	if _, err := fmt.Fprintln(r.out, text); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}
