// Package ai wraps the LLM call that turns recent spending into
// cost-cutting suggestions. All intelligence lives on the provider side;
// this is prompt assembly plus one chat completion.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wallettally/internal/domain"
	"wallettally/internal/ledger"

	openai "github.com/sashabaranov/go-openai"
)

var ErrNotConfigured = errors.New("ai suggestions not configured")

type Suggester struct {
	client *openai.Client
	model  string
}

// NewSuggester builds the LLM client. An empty apiKey disables the
// feature; Suggest then returns ErrNotConfigured.
func NewSuggester(apiKey, model string) *Suggester {
	s := &Suggester{model: model}
	if apiKey != "" {
		s.client = openai.NewClient(apiKey)
	}
	return s
}

func (s *Suggester) Enabled() bool {
	return s.client != nil
}

// Suggest asks the model for cost-cutting advice based on the user's
// recent transactions and budget status.
func (s *Suggester) Suggest(ctx context.Context, txs []domain.Transaction, budgets []domain.BudgetStatus) (string, error) {
	if s.client == nil {
		return "", ErrNotConfigured
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a frugal personal-finance assistant. " +
					"Given a spending summary, respond with three short, concrete cost-cutting suggestions as a bulleted list. " +
					"Be specific to the categories shown. No preamble.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(txs, budgets),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildPrompt(txs []domain.Transaction, budgets []domain.BudgetStatus) string {
	var b strings.Builder

	summary := ledger.Totals(txs)
	fmt.Fprintf(&b, "Income: %s\nExpenses: %s\nNet balance: %s\n",
		summary.Income.StringFixed(2), summary.Expenses.StringFixed(2), summary.Balance.StringFixed(2))

	byCat := ledger.ByCategory(txs)
	if len(byCat) > 0 {
		b.WriteString("\nSpending by category:\n")
		for cat, amount := range byCat {
			if cat == "" {
				cat = "uncategorized"
			}
			fmt.Fprintf(&b, "- %s: %s\n", cat, amount.StringFixed(2))
		}
	}

	if len(budgets) > 0 {
		b.WriteString("\nBudgets:\n")
		for _, bs := range budgets {
			state := "within budget"
			if bs.Over {
				state = "OVER budget"
			}
			fmt.Fprintf(&b, "- %s: spent %s of %s (%s)\n",
				bs.Budget.Category, bs.Spent.StringFixed(2), bs.Budget.Limit.StringFixed(2), state)
		}
	}

	return b.String()
}
