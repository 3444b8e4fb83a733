package service

import (
	"context"
	"errors"
	"time"

	"wallettally/internal/domain"
	"wallettally/internal/ledger"
	"wallettally/internal/logger"
	"wallettally/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrLocked            = errors.New("transaction is locked after 24 hours")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidType       = errors.New("type must be income or expense")
	ErrForbidden         = errors.New("not the owner")
)

var txCreated = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "transactions_created_total",
		Help: "Transactions created by type",
	},
	[]string{"type"},
)

func init() {
	prometheus.MustRegister(txCreated)
}

// BalancePublisher pushes a fresh summary to any live listeners for the
// user. Nil publisher is fine.
type BalancePublisher interface {
	PublishBalance(userID int64, summary ledger.Summary)
}

// TransactionService enforces the two ledger rules around persistence:
// the overdraft check on creation and the 24-hour lock on mutation.
type TransactionService struct {
	db        *pgxpool.Pool
	txRepo    *repository.TransactionRepository
	publisher BalancePublisher
	now       func() time.Time
}

func NewTransactionService(db *pgxpool.Pool, publisher BalancePublisher) *TransactionService {
	return &TransactionService{
		db:        db,
		txRepo:    repository.NewTransactionRepository(db),
		publisher: publisher,
		now:       time.Now,
	}
}

// Create inserts a new transaction. For expenses the overdraft check and
// the insert run in one database transaction holding the user's row lock,
// so two concurrent submissions cannot both read the same balance and
// jointly overdraw.
func (s *TransactionService) Create(ctx context.Context, tx *domain.Transaction) error {
	if err := validate(tx); err != nil {
		return err
	}

	dbTx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = dbTx.Rollback(ctx) }()

	// serialize writes per user
	if _, err := dbTx.Exec(ctx, `SELECT 1 FROM users WHERE id = $1 FOR UPDATE`, tx.UserID); err != nil {
		return err
	}

	if tx.Type == domain.TypeExpense {
		history, err := s.txRepo.ListByUserWithTx(ctx, dbTx, tx.UserID)
		if err != nil {
			return err
		}
		if !ledger.CanAfford(history, tx.Amount) {
			return ErrInsufficientFunds
		}
	}

	if err := s.txRepo.CreateWithTx(ctx, dbTx, tx); err != nil {
		return err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return err
	}

	txCreated.WithLabelValues(string(tx.Type)).Inc()
	s.publish(ctx, tx.UserID)
	return nil
}

// Update rewrites a transaction if the caller owns it and the edit
// window is still open. An edit that turns into (or grows) an expense is
// re-checked against the history without the old row, under the same
// user row lock Create takes, so a concurrent create cannot slip past
// the re-check.
func (s *TransactionService) Update(ctx context.Context, userID int64, id string, updated *domain.Transaction) (*domain.Transaction, error) {
	if err := validate(updated); err != nil {
		return nil, err
	}

	dbTx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = dbTx.Rollback(ctx) }()

	if _, err := dbTx.Exec(ctx, `SELECT 1 FROM users WHERE id = $1 FOR UPDATE`, userID); err != nil {
		return nil, err
	}

	existing, err := s.txRepo.GetByIDWithTx(ctx, dbTx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrForbidden
	}
	if ledger.IsLocked(existing.CreatedAt, s.now()) {
		return nil, ErrLocked
	}

	if updated.Type == domain.TypeExpense {
		history, err := s.txRepo.ListByUserWithTx(ctx, dbTx, userID)
		if err != nil {
			return nil, err
		}
		if !ledger.CanAfford(without(history, id), updated.Amount) {
			return nil, ErrInsufficientFunds
		}
	}

	existing.Type = updated.Type
	existing.Amount = updated.Amount
	existing.Category = updated.Category
	existing.Description = updated.Description

	if err := s.txRepo.UpdateWithTx(ctx, dbTx, existing); err != nil {
		return nil, err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, err
	}

	s.publish(ctx, userID)
	return existing, nil
}

// Delete removes a transaction if the caller owns it and the edit window
// is still open.
func (s *TransactionService) Delete(ctx context.Context, userID int64, id string) error {
	existing, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return ErrForbidden
	}
	if ledger.IsLocked(existing.CreatedAt, s.now()) {
		return ErrLocked
	}

	if err := s.txRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.publish(ctx, userID)
	return nil
}

// List returns the user's history, newest first, each annotated with its
// lock state as of now. Lock state is wall-clock derived, so clients
// should re-poll rather than cache it.
func (s *TransactionService) List(ctx context.Context, userID int64) ([]TransactionView, error) {
	txs, err := s.txRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]TransactionView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, TransactionView{
			Transaction:   tx,
			Locked:        ledger.IsLocked(tx.CreatedAt, now),
			LockRemaining: ledger.LockRemaining(tx.CreatedAt, now).Round(time.Second).String(),
		})
	}
	return views, nil
}

// Summary computes the dashboard totals from the full history.
func (s *TransactionService) Summary(ctx context.Context, userID int64) (ledger.Summary, error) {
	txs, err := s.txRepo.ListByUser(ctx, userID)
	if err != nil {
		return ledger.Summary{}, err
	}
	return ledger.Totals(txs), nil
}

// MonthSummary computes totals restricted to one calendar month.
func (s *TransactionService) MonthSummary(ctx context.Context, userID int64, month time.Time) (ledger.Summary, []domain.Transaction, error) {
	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	txs, err := s.txRepo.ListByUserSince(ctx, userID, from, to)
	if err != nil {
		return ledger.Summary{}, nil, err
	}
	return ledger.Totals(txs), txs, nil
}

// TransactionView is a transaction plus its current lock state for the UI.
type TransactionView struct {
	domain.Transaction
	Locked        bool   `json:"locked"`
	LockRemaining string `json:"lock_remaining"`
}

func validate(tx *domain.Transaction) error {
	if tx.Type != domain.TypeIncome && tx.Type != domain.TypeExpense {
		return ErrInvalidType
	}
	if tx.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

func without(txs []domain.Transaction, id string) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.ID != id {
			out = append(out, tx)
		}
	}
	return out
}

func (s *TransactionService) publish(ctx context.Context, userID int64) {
	if s.publisher == nil {
		return
	}
	summary, err := s.Summary(ctx, userID)
	if err != nil {
		logger.Error("failed to compute summary for live push", "user_id", userID, "error", err)
		return
	}
	s.publisher.PublishBalance(userID, summary)
}
