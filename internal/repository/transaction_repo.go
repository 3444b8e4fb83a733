package repository

import (
	"context"
	"errors"
	"time"

	"wallettally/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// CreateWithTx inserts a transaction inside an existing database
// transaction. created_at is assigned by the database, never by the
// client; the returned value is what the edit window runs from.
func (r *TransactionRepository) CreateWithTx(ctx context.Context, dbTx pgx.Tx, tx *domain.Transaction) error {
	tx.ID = uuid.NewString()
	return dbTx.QueryRow(ctx,
		`INSERT INTO transactions (id, user_id, type, amount, category, description)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		tx.ID, tx.UserID, tx.Type, tx.Amount.String(), tx.Category, tx.Description,
	).Scan(&tx.CreatedAt)
}

// ListByUser returns the user's full history, newest first.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, amount::text, COALESCE(category, ''), COALESCE(description, ''), created_at
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByUserWithTx is ListByUser inside an open database transaction,
// used by the overdraft check so it sees exactly the committed history
// under the user row lock.
func (r *TransactionRepository) ListByUserWithTx(ctx context.Context, dbTx pgx.Tx, userID int64) ([]domain.Transaction, error) {
	rows, err := dbTx.Query(ctx,
		`SELECT id, user_id, type, amount::text, COALESCE(category, ''), COALESCE(description, ''), created_at
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByUserSince returns transactions created at or after from, used by
// monthly summaries and reports.
func (r *TransactionRepository) ListByUserSince(ctx context.Context, userID int64, from, to time.Time) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, amount::text, COALESCE(category, ''), COALESCE(description, ''), created_at
		 FROM transactions
		 WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		 ORDER BY created_at DESC`,
		userID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	// a malformed id would fail the UUID cast inside Postgres
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, type, amount::text, COALESCE(category, ''), COALESCE(description, ''), created_at
		 FROM transactions
		 WHERE id = $1`,
		id,
	)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tx, nil
}

// GetByIDWithTx is GetByID inside an open database transaction, used by
// the edit path so the ownership and lock checks read under the user
// row lock.
func (r *TransactionRepository) GetByIDWithTx(ctx context.Context, dbTx pgx.Tx, id string) (*domain.Transaction, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}
	row := dbTx.QueryRow(ctx,
		`SELECT id, user_id, type, amount::text, COALESCE(category, ''), COALESCE(description, ''), created_at
		 FROM transactions
		 WHERE id = $1`,
		id,
	)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tx, nil
}

// UpdateWithTx rewrites the mutable fields of a transaction inside an
// open database transaction. created_at is deliberately not touchable
// here.
func (r *TransactionRepository) UpdateWithTx(ctx context.Context, dbTx pgx.Tx, tx *domain.Transaction) error {
	tag, err := dbTx.Exec(ctx,
		`UPDATE transactions
		 SET type = $1, amount = $2, category = $3, description = $4
		 WHERE id = $5 AND user_id = $6`,
		tx.Type, tx.Amount.String(), tx.Category, tx.Description, tx.ID, tx.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id string, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`,
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

func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n)
	return n, err
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		tx     domain.Transaction
		amount string
	)
	if err := row.Scan(&tx.ID, &tx.UserID, &tx.Type, &amount, &tx.Category, &tx.Description, &tx.CreatedAt); err != nil {
		return nil, err
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}
	tx.Amount = dec
	return &tx, nil
}

func scanTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	var result []domain.Transaction

	for rows.Next() {
		var (
			tx     domain.Transaction
			amount string
		)
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &amount, &tx.Category, &tx.Description, &tx.CreatedAt); err != nil {
			return nil, err
		}

		dec, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, err
		}
		tx.Amount = dec

		result = append(result, tx)
	}

	return result, rows.Err()
}
