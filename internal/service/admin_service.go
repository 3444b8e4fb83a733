package service

import (
	"context"
	"time"

	"wallettally/internal/domain"
	"wallettally/internal/logger"
	"wallettally/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminService backs the moderation surfaces: the HTTP admin routes, the
// Telegram admin bot and the retention job.
type AdminService struct {
	users    *repository.UserRepository
	txRepo   *repository.TransactionRepository
	feedback *repository.FeedbackRepository
	emails   *repository.EmailLogRepository
}

func NewAdminService(db *pgxpool.Pool) *AdminService {
	return &AdminService{
		users:    repository.NewUserRepository(db),
		txRepo:   repository.NewTransactionRepository(db),
		feedback: repository.NewFeedbackRepository(db),
		emails:   repository.NewEmailLogRepository(db),
	}
}

type Stats struct {
	Users        int64 `json:"users"`
	Transactions int64 `json:"transactions"`
}

func (s *AdminService) Stats(ctx context.Context) (Stats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	txs, err := s.txRepo.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Users: users, Transactions: txs}, nil
}

func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return s.users.List(ctx, limit, offset)
}

func (s *AdminService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AdminService) SetBanned(ctx context.Context, userID int64, banned bool) error {
	return s.users.SetBanned(ctx, userID, banned)
}

func (s *AdminService) ListFeedback(ctx context.Context, status domain.FeedbackStatus, limit int) ([]domain.Feedback, error) {
	return s.feedback.List(ctx, status, limit)
}

func (s *AdminService) ResolveFeedback(ctx context.Context, id int64) error {
	return s.feedback.SetStatus(ctx, id, domain.FeedbackResolved)
}

func (s *AdminService) DeleteFeedback(ctx context.Context, id int64) error {
	return s.feedback.Delete(ctx, id)
}

func (s *AdminService) ListEmailLogs(ctx context.Context, limit, offset int) ([]domain.EmailLog, error) {
	return s.emails.List(ctx, limit, offset)
}

// PurgeEmailLogs deletes email logs older than the given age. Only email
// logs have a bulk deletion path; transactions are never purged.
func (s *AdminService) PurgeEmailLogs(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	n, err := s.emails.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Info("purged email logs", "count", n, "cutoff", cutoff)
	}
	return n, nil
}

// UserTransactions returns a user's history for the admin XLSX export.
func (s *AdminService) UserTransactions(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	return s.txRepo.ListByUser(ctx, userID)
}
