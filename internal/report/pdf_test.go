package report

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"wallettally/internal/domain"
)

func TestMonthlyPDF(t *testing.T) {
	month := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	txs := []domain.Transaction{
		{
			ID:        "a1",
			Type:      domain.TypeIncome,
			Amount:    decimal.RequireFromString("1200.00"),
			Category:  "salary",
			CreatedAt: month.AddDate(0, 0, 5),
		},
		{
			ID:          "a2",
			Type:        domain.TypeExpense,
			Amount:      decimal.RequireFromString("45.90"),
			Category:    "groceries",
			Description: "weekly shop",
			CreatedAt:   month.AddDate(0, 0, 6),
		},
	}

	out, err := MonthlyPDF("Alice", month, txs)
	if err != nil {
		t.Fatalf("MonthlyPDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF (first bytes %q)", out[:min(8, len(out))])
	}
}

func TestMonthlyPDFEmpty(t *testing.T) {
	month := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	out, err := MonthlyPDF("", month, nil)
	if err != nil {
		t.Fatalf("MonthlyPDF with no transactions: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("empty PDF output")
	}
}

func TestTruncateMultibyte(t *testing.T) {
	// a cut must never land inside a multibyte rune
	long := strings.Repeat("é", 30)
	got := truncate(long, 10)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("truncated string missing ellipsis: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 10 {
		t.Fatalf("rune count = %d; want 10", n)
	}

	if got := truncate("short", 10); got != "short" {
		t.Fatalf("short string changed: %q", got)
	}
}

func TestTransactionsXLSX(t *testing.T) {
	txs := []domain.Transaction{
		{
			ID:        "x1",
			UserID:    7,
			Type:      domain.TypeExpense,
			Amount:    decimal.RequireFromString("10.00"),
			Category:  "misc",
			CreatedAt: time.Now(),
		},
	}

	out, err := TransactionsXLSX(txs)
	if err != nil {
		t.Fatalf("TransactionsXLSX: %v", err)
	}
	// xlsx is a zip archive
	if !bytes.HasPrefix(out, []byte("PK")) {
		t.Fatal("output does not look like a zip/xlsx file")
	}
}
