package http

import (
	"time"

	"wallettally/internal/config"
	"wallettally/internal/http/handlers"
	"wallettally/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, h *handlers.Handler, version string) {
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	apiRL := middleware.RedisRateLimit(cfg.APIRateLimit, time.Duration(cfg.APIRateWindow)*time.Second)
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, time.Duration(cfg.AuthRateWindow)*time.Second)

	v1 := r.Group("/api/v1")
	v1.Use(apiRL)

	// Auth (tighter per-IP limit: registration sends mail)
	v1.POST("/auth/register", authRL, h.Register)
	v1.POST("/auth/verify", authRL, h.VerifyEmail)
	v1.POST("/auth/resend", authRL, h.ResendOTP)
	v1.POST("/auth/login", authRL, h.Login)

	v1.GET("/me", middleware.JWT(), h.Me)

	// Transactions
	v1.POST("/transactions", middleware.JWT(), h.CreateTransaction)
	v1.GET("/transactions", middleware.JWT(), h.ListTransactions)
	v1.PUT("/transactions/:id", middleware.JWT(), h.UpdateTransaction)
	v1.DELETE("/transactions/:id", middleware.JWT(), h.DeleteTransaction)
	v1.GET("/summary", middleware.JWT(), h.Summary)
	v1.GET("/summary/month", middleware.JWT(), h.MonthSummary)

	// Budgets
	v1.POST("/budgets", middleware.JWT(), h.SetBudget)
	v1.GET("/budgets", middleware.JWT(), h.BudgetStatus)
	v1.DELETE("/budgets/:id", middleware.JWT(), h.DeleteBudget)

	// AI suggestions and reports fan out work; limit per user
	suggestRL := middleware.UserRateLimit("suggest", 5, time.Minute)
	reportRL := middleware.UserRateLimit("report", 3, time.Minute)
	v1.GET("/suggestions", middleware.JWT(), suggestRL, h.Suggestions)
	v1.GET("/reports/pdf", middleware.JWT(), reportRL, h.ReportPDF)
	v1.POST("/reports/email", middleware.JWT(), reportRL, h.EmailReport)

	// Feedback
	v1.POST("/feedback", middleware.JWT(), h.SubmitFeedback)

	// Admin back-office
	admin := v1.Group("/admin")
	admin.Use(middleware.JWT(), middleware.RequireAdmin())
	{
		admin.GET("/stats", h.AdminStats)
		admin.GET("/users", h.AdminListUsers)
		admin.PATCH("/users/:id/ban", h.AdminSetBanned)
		admin.GET("/users/:id/transactions.xlsx", h.AdminExportTransactions)
		admin.GET("/feedback", h.AdminListFeedback)
		admin.PATCH("/feedback/:id/resolve", h.AdminResolveFeedback)
		admin.DELETE("/feedback/:id", h.AdminDeleteFeedback)
		admin.GET("/email-logs", h.AdminListEmailLogs)
		admin.DELETE("/email-logs", h.AdminPurgeEmailLogs)
	}

	// Live balance updates
	r.GET("/ws", h.WS)
}
