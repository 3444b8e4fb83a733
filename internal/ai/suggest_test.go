package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"wallettally/internal/domain"
)

func TestSuggestNotConfigured(t *testing.T) {
	s := NewSuggester("", "gpt-4o-mini")
	if s.Enabled() {
		t.Fatal("suggester with empty key should be disabled")
	}
	if _, err := s.Suggest(context.Background(), nil, nil); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("got %v; want ErrNotConfigured", err)
	}
}

func TestBuildPrompt(t *testing.T) {
	txs := []domain.Transaction{
		{Type: domain.TypeIncome, Category: "salary", Amount: decimal.RequireFromString("2000")},
		{Type: domain.TypeExpense, Category: "dining", Amount: decimal.RequireFromString("300")},
	}
	budgets := []domain.BudgetStatus{
		{
			Budget: domain.Budget{Category: "dining", Limit: decimal.RequireFromString("200")},
			Spent:  decimal.RequireFromString("300"),
			Over:   true,
		},
	}

	prompt := buildPrompt(txs, budgets)

	for _, want := range []string{"Income: 2000.00", "dining: 300.00", "OVER budget"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
