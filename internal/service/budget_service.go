package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"wallettally/internal/domain"
	"wallettally/internal/ledger"
	"wallettally/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrInvalidBudget = errors.New("budget needs a category and a positive limit")

type BudgetService struct {
	budgets *repository.BudgetRepository
	txRepo  *repository.TransactionRepository
}

func NewBudgetService(db *pgxpool.Pool) *BudgetService {
	return &BudgetService{
		budgets: repository.NewBudgetRepository(db),
		txRepo:  repository.NewTransactionRepository(db),
	}
}

// Set creates or replaces the budget for a category in a month.
func (s *BudgetService) Set(ctx context.Context, userID int64, category string, month time.Time, limit decimal.Decimal) (*domain.Budget, error) {
	category = strings.TrimSpace(category)
	if category == "" || limit.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidBudget
	}

	b := &domain.Budget{
		UserID:   userID,
		Category: category,
		Month:    monthStart(month),
		Limit:    limit,
	}
	if err := s.budgets.Upsert(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BudgetService) Delete(ctx context.Context, userID, id int64) error {
	return s.budgets.Delete(ctx, id, userID)
}

// Status returns every budget for the month with actual spend folded in.
func (s *BudgetService) Status(ctx context.Context, userID int64, month time.Time) ([]domain.BudgetStatus, error) {
	from := monthStart(month)
	to := from.AddDate(0, 1, 0)

	budgets, err := s.budgets.ListByUserMonth(ctx, userID, from)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return []domain.BudgetStatus{}, nil
	}

	txs, err := s.txRepo.ListByUserSince(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	spentByCat := ledger.ByCategory(txs)

	statuses := make([]domain.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := spentByCat[b.Category]
		used := 0.0
		if b.Limit.IsPositive() {
			used, _ = spent.Div(b.Limit).Mul(decimal.NewFromInt(100)).Float64()
		}
		statuses = append(statuses, domain.BudgetStatus{
			Budget:      b,
			Spent:       spent,
			Remaining:   b.Limit.Sub(spent),
			UsedPercent: used,
			Over:        spent.GreaterThan(b.Limit),
		})
	}
	return statuses, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
