package repository

import (
	"context"
	"time"

	"wallettally/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type EmailLogRepository struct {
	db *pgxpool.Pool
}

func NewEmailLogRepository(db *pgxpool.Pool) *EmailLogRepository {
	return &EmailLogRepository{db: db}
}

func (r *EmailLogRepository) Create(ctx context.Context, l *domain.EmailLog) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO email_logs (user_id, recipient, subject, kind, status, error)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		l.UserID, l.Recipient, l.Subject, l.Kind, l.Status, l.Error,
	).Scan(&l.ID, &l.CreatedAt)
}

func (r *EmailLogRepository) List(ctx context.Context, limit, offset int) ([]domain.EmailLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, recipient, subject, kind, status, COALESCE(error, ''), created_at
		 FROM email_logs
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EmailLog
	for rows.Next() {
		var l domain.EmailLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Recipient, &l.Subject, &l.Kind, &l.Status, &l.Error, &l.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// DeleteOlderThan removes email logs created before the cutoff and
// returns how many rows went. This is the only bulk deletion path in the
// system; it never touches transactions.
func (r *EmailLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM email_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
