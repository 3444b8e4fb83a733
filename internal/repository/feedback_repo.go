package repository

import (
	"context"

	"wallettally/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FeedbackRepository struct {
	db *pgxpool.Pool
}

func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO feedback (user_id, message, rating, status)
		 VALUES ($1, $2, $3, 'open')
		 RETURNING id, created_at`,
		f.UserID, f.Message, f.Rating,
	).Scan(&f.ID, &f.CreatedAt)
}

// List returns feedback for moderation; status filters when non-empty.
func (r *FeedbackRepository) List(ctx context.Context, status domain.FeedbackStatus, limit int) ([]domain.Feedback, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var (
		rows pgx.Rows
		err  error
	)
	if status != "" {
		rows, err = r.db.Query(ctx,
			`SELECT id, user_id, message, rating, status, created_at
			 FROM feedback
			 WHERE status = $1
			 ORDER BY created_at DESC
			 LIMIT $2`,
			status, limit,
		)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT id, user_id, message, rating, status, created_at
			 FROM feedback
			 ORDER BY created_at DESC
			 LIMIT $1`,
			limit,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Feedback
	for rows.Next() {
		var f domain.Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.Message, &f.Rating, &f.Status, &f.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

func (r *FeedbackRepository) SetStatus(ctx context.Context, id int64, status domain.FeedbackStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE feedback SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FeedbackRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
