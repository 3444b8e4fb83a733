package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"wallettally/internal/domain"
)

func tx(t domain.TransactionType, amount string) domain.Transaction {
	return domain.Transaction{Type: t, Amount: decimal.RequireFromString(amount)}
}

func TestTotalsEmpty(t *testing.T) {
	s := Totals(nil)
	if !s.Income.IsZero() || !s.Expenses.IsZero() || !s.Balance.IsZero() {
		t.Fatalf("empty snapshot: got %+v; want all zeros", s)
	}
}

func TestTotals(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.TypeIncome, "100"),
		tx(domain.TypeExpense, "40"),
	}

	s := Totals(txs)
	if !s.Income.Equal(decimal.RequireFromString("100")) {
		t.Errorf("income = %s; want 100", s.Income)
	}
	if !s.Expenses.Equal(decimal.RequireFromString("40")) {
		t.Errorf("expenses = %s; want 40", s.Expenses)
	}
	if !s.Balance.Equal(decimal.RequireFromString("60")) {
		t.Errorf("balance = %s; want 60", s.Balance)
	}
}

func TestTotalsNoDrift(t *testing.T) {
	// classic float trap: 0.1 + 0.2
	txs := []domain.Transaction{
		tx(domain.TypeIncome, "0.10"),
		tx(domain.TypeIncome, "0.20"),
		tx(domain.TypeExpense, "0.30"),
	}

	s := Totals(txs)
	if !s.Balance.IsZero() {
		t.Fatalf("balance = %s; want exactly 0", s.Balance)
	}
	if !s.Balance.Equal(s.Income.Sub(s.Expenses)) {
		t.Fatalf("balance != income - expenses")
	}
}

func TestCanAfford(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.TypeIncome, "100"),
		tx(domain.TypeExpense, "40"),
	}

	cases := []struct {
		amount string
		want   bool
	}{
		{"60", true},     // exact balance is affordable
		{"60.01", false}, // one minor unit over is not
		{"0", true},
		{"100", false},
	}

	for _, tc := range cases {
		if got := CanAfford(txs, decimal.RequireFromString(tc.amount)); got != tc.want {
			t.Errorf("CanAfford(%s) = %v; want %v", tc.amount, got, tc.want)
		}
	}
}

func TestCanAffordSequentialSubmissions(t *testing.T) {
	// two 50s against a balance of 60: first passes, second must fail
	// once the check is re-run against the post-first-write history
	txs := []domain.Transaction{tx(domain.TypeIncome, "60")}
	fifty := decimal.RequireFromString("50")

	if !CanAfford(txs, fifty) {
		t.Fatal("first expense of 50 against 60 should pass")
	}

	txs = append(txs, tx(domain.TypeExpense, "50"))
	if CanAfford(txs, fifty) {
		t.Fatal("second expense of 50 against remaining 10 should fail")
	}
}

func TestByCategory(t *testing.T) {
	txs := []domain.Transaction{
		{Type: domain.TypeExpense, Category: "food", Amount: decimal.RequireFromString("12.50")},
		{Type: domain.TypeExpense, Category: "food", Amount: decimal.RequireFromString("7.50")},
		{Type: domain.TypeExpense, Category: "rent", Amount: decimal.RequireFromString("500")},
		{Type: domain.TypeIncome, Category: "salary", Amount: decimal.RequireFromString("1000")},
	}

	by := ByCategory(txs)
	if len(by) != 2 {
		t.Fatalf("got %d categories; want 2 (income excluded)", len(by))
	}
	if !by["food"].Equal(decimal.RequireFromString("20")) {
		t.Errorf("food = %s; want 20", by["food"])
	}
	if !by["rent"].Equal(decimal.RequireFromString("500")) {
		t.Errorf("rent = %s; want 500", by["rent"])
	}
}
