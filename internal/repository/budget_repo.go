package repository

import (
	"context"
	"errors"
	"time"

	"wallettally/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type BudgetRepository struct {
	db *pgxpool.Pool
}

func NewBudgetRepository(db *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Upsert creates or replaces the budget for (user, category, month).
func (r *BudgetRepository) Upsert(ctx context.Context, b *domain.Budget) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO budgets (user_id, category, month, limit_amount)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, category, month)
		 DO UPDATE SET limit_amount = EXCLUDED.limit_amount
		 RETURNING id, created_at`,
		b.UserID, b.Category, b.Month, b.Limit.String(),
	).Scan(&b.ID, &b.CreatedAt)
}

// ListByUserMonth returns all budgets for a user in a given month.
func (r *BudgetRepository) ListByUserMonth(ctx context.Context, userID int64, month time.Time) ([]domain.Budget, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, category, month, limit_amount::text, created_at
		 FROM budgets
		 WHERE user_id = $1 AND month = $2
		 ORDER BY category`,
		userID, month,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Budget
	for rows.Next() {
		var (
			b     domain.Budget
			limit string
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Month, &limit, &b.CreatedAt); err != nil {
			return nil, err
		}

		dec, err := decimal.NewFromString(limit)
		if err != nil {
			return nil, err
		}
		b.Limit = dec

		result = append(result, b)
	}
	return result, rows.Err()
}

func (r *BudgetRepository) GetByID(ctx context.Context, id, userID int64) (*domain.Budget, error) {
	var (
		b     domain.Budget
		limit string
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, category, month, limit_amount::text, created_at
		 FROM budgets
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&b.ID, &b.UserID, &b.Category, &b.Month, &limit, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	dec, err := decimal.NewFromString(limit)
	if err != nil {
		return nil, err
	}
	b.Limit = dec
	return &b, nil
}

func (r *BudgetRepository) Delete(ctx context.Context, id, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM budgets WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
