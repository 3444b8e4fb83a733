package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallettally/internal/ai"
	"wallettally/internal/bot"
	"wallettally/internal/config"
	"wallettally/internal/db"
	httpServer "wallettally/internal/http"
	"wallettally/internal/http/handlers"
	"wallettally/internal/http/middleware"
	"wallettally/internal/jobs"
	"wallettally/internal/live"
	"wallettally/internal/logger"
	mailer "wallettally/internal/mail"
	"wallettally/internal/repository"
	"wallettally/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT(cfg.JWTSecret)

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	middleware.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	rdb := middleware.Client()
	if rdb == nil {
		logger.Fatal("redis is required for OTP storage", "addr", cfg.RedisAddr)
	}

	emailLogs := repository.NewEmailLogRepository(dbPool)
	m := mailer.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, emailLogs)

	hub := live.NewHub()
	h := handlers.NewHandler(dbPool, handlers.Deps{
		Mailer:    m,
		OTPs:      repository.NewOTPRepository(rdb, 10*time.Minute),
		Suggester: ai.NewSuggester(cfg.OpenAIKey, cfg.OpenAIModel),
		Hub:       hub,
	})

	r := gin.Default()

	// CORS for the hosted frontend
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	httpServer.RegisterRoutes(r, dbPool, cfg, h, version)

	jobCtx, cancelJobs := context.WithCancel(context.Background())
	go jobs.EmailLogRetention(jobCtx, h.Admin, cfg.EmailLogRetentionDays)

	var adminBot *bot.AdminBot
	if cfg.AdminBotEnabled {
		var err error
		adminBot, err = bot.NewAdminBot(cfg.BotToken, h.Admin, cfg.AdminChatIDs)
		if err != nil {
			logger.Fatal("failed to start admin bot", "error", err)
		}
		go adminBot.Start()
	}

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelJobs()
	if adminBot != nil {
		adminBot.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
