package ledger

import (
	"wallettally/internal/domain"

	"github.com/shopspring/decimal"
)

// Summary holds the three dashboard figures computed from a user's full
// transaction history.
type Summary struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// Totals aggregates a transaction snapshot. An empty snapshot yields all
// zeros. Balance is always exactly Income minus Expenses.
func Totals(txs []domain.Transaction) Summary {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, tx := range txs {
		switch tx.Type {
		case domain.TypeIncome:
			income = income.Add(tx.Amount)
		case domain.TypeExpense:
			expenses = expenses.Add(tx.Amount)
		}
	}

	return Summary{
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}
}

// CanAfford reports whether a proposed expense of amount would keep the
// net balance non-negative. amount == balance is affordable; one minor
// unit more is not. The caller must pass the current history at the
// moment of submission, not a cached total.
func CanAfford(txs []domain.Transaction, amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(Totals(txs).Balance)
}

// ByCategory sums expense amounts per category over the snapshot.
func ByCategory(txs []domain.Transaction) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if tx.Type != domain.TypeExpense {
			continue
		}
		out[tx.Category] = out[tx.Category].Add(tx.Amount)
	}
	return out
}
