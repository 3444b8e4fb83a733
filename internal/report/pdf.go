// Package report renders transaction history into downloadable files:
// PDF for end users, XLSX for the admin back-office.
package report

import (
	"bytes"
	"fmt"
	"time"

	"wallettally/internal/domain"
	"wallettally/internal/ledger"

	"github.com/jung-kurt/gofpdf"
)

// MonthlyPDF renders a one-month report: the three summary figures
// followed by the transaction table, newest first.
func MonthlyPDF(userName string, month time.Time, txs []domain.Transaction) ([]byte, error) {
	summary := ledger.Totals(txs)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Wallet Tally Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Wallet Tally - "+month.Format("January 2006"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if userName != "" {
		pdf.Cell(0, 6, "Prepared for "+userName)
		pdf.Ln(8)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(60, 6, "Income")
	pdf.Cell(0, 6, summary.Income.StringFixed(2))
	pdf.Ln(6)
	pdf.Cell(60, 6, "Expenses")
	pdf.Cell(0, 6, summary.Expenses.StringFixed(2))
	pdf.Ln(6)
	pdf.Cell(60, 6, "Net balance")
	pdf.Cell(0, 6, summary.Balance.StringFixed(2))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Transactions")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(30, 7, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(22, 7, "Type", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 7, "Category", "1", 0, "", false, 0, "")
	pdf.CellFormat(28, 7, "Amount", "1", 0, "R", false, 0, "")
	pdf.CellFormat(0, 7, "Description", "1", 1, "", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, tx := range txs {
		pdf.CellFormat(30, 6, tx.CreatedAt.Format("2006-01-02"), "1", 0, "", false, 0, "")
		pdf.CellFormat(22, 6, string(tx.Type), "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 6, truncate(tx.Category, 24), "1", 0, "", false, 0, "")
		pdf.CellFormat(28, 6, tx.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(0, 6, truncate(tx.Description, 48), "1", 1, "", false, 0, "")
	}

	if len(txs) == 0 {
		pdf.CellFormat(0, 6, "No transactions this month", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// truncate shortens free text to at most n runes. Cutting on rune
// boundaries keeps multibyte categories and descriptions valid UTF-8.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
