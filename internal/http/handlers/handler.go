package handlers

import (
	"wallettally/internal/ai"
	"wallettally/internal/live"
	mailer "wallettally/internal/mail"
	"wallettally/internal/repository"
	"wallettally/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB *pgxpool.Pool

	Users     *repository.UserRepository
	Auth      *service.AuthService
	Txs       *service.TransactionService
	Budgets   *service.BudgetService
	Reports   *service.ReportService
	Admin     *service.AdminService
	Feedback  *repository.FeedbackRepository
	Suggester *ai.Suggester
	Hub       *live.Hub
}

type Deps struct {
	Mailer    *mailer.Mailer
	OTPs      *repository.OTPRepository
	Suggester *ai.Suggester
	Hub       *live.Hub
}

func NewHandler(db *pgxpool.Pool, deps Deps) *Handler {
	users := repository.NewUserRepository(db)
	txs := service.NewTransactionService(db, deps.Hub)

	return &Handler{
		DB:        db,
		Users:     users,
		Auth:      service.NewAuthService(users, deps.OTPs, deps.Mailer),
		Txs:       txs,
		Budgets:   service.NewBudgetService(db),
		Reports:   service.NewReportService(users, txs, deps.Mailer),
		Admin:     service.NewAdminService(db),
		Feedback:  repository.NewFeedbackRepository(db),
		Suggester: deps.Suggester,
		Hub:       deps.Hub,
	}
}

// getUserID pulls the authenticated user id the JWT middleware stored.
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
