package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-recruitment-chatbot/config"
	v1 "go-recruitment-chatbot/internal/delivery/http/v1"
	"go-recruitment-chatbot/internal/flow"
	"go-recruitment-chatbot/internal/jobs"
	"go-recruitment-chatbot/internal/repository/postgres"
	"go-recruitment-chatbot/internal/usecase"
	"go-recruitment-chatbot/pkg/calendar"
	"go-recruitment-chatbot/pkg/database"
	"go-recruitment-chatbot/pkg/email"
	"go-recruitment-chatbot/pkg/genai"
	"go-recruitment-chatbot/pkg/logger"
	"go-recruitment-chatbot/pkg/redis"
	"go-recruitment-chatbot/pkg/whatsapp"
)

// @title           Recruitment Chatbot API
// @version         1.0
// @description     Multi-tenant WhatsApp recruitment assistant backend.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting recruitment chatbot backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (chat rate limiting; optional)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
		}
	}
	defer redis.Close()

	// 5. Setup Repositories
	tenantRepo := postgres.NewTenantRepository(dbPool)
	conversationRepo := postgres.NewConversationRepository(dbPool)
	storeRepo := postgres.NewStoreRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepo(dbPool)
	requisitionRepo := postgres.NewRequisitionRepository(dbPool)

	// 6. Setup Collaborators
	generator, err := genai.NewGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Log.Error("Failed to create text generator", "error", err)
		os.Exit(1)
	}
	calendarSvc := calendar.NewMockService()
	sender := whatsapp.NewLogSender()
	mailer := email.NewEmailService(cfg)
	if !mailer.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - recruiter alerts will be skipped")
	}

	// 7. Setup UseCases
	tenantUC := usecase.NewTenantUsecase(tenantRepo, usecase.NewOriginCache(), nil)
	matchUC := usecase.NewMatchUsecase(storeRepo, usecase.MatchConfig{
		MaxDistanceKm: cfg.MaxStoreDistanceKm,
		TieBandKm:     cfg.DistanceTieBandKm,
		MaxResults:    cfg.MaxStoreResults,
	})
	interviewUC := usecase.NewInterviewUsecase(candidateRepo, calendarSvc)
	alertUC := usecase.NewAlertUsecase(tenantRepo, requisitionRepo, mailer, cfg.AlertDaysWithoutFill)
	engine := flow.NewEngine(cfg.DefaultMaxSalary, cfg.SalaryMarginPercent)
	chatUC := usecase.NewChatUsecase(
		conversationRepo, candidateRepo, tenantUC, matchUC, interviewUC,
		generator, engine,
		usecase.ChatConfig{
			MaxAttempts:  cfg.GenerateMaxAttempts,
			BackoffFloor: time.Duration(cfg.GenerateBackoffMs) * time.Millisecond,
			BackoffMax:   time.Duration(cfg.GenerateBackoffMaxMs) * time.Millisecond,
		},
	)

	// 8. Setup Scheduled Jobs
	scheduler := jobs.NewScheduler(interviewUC, alertUC, sender, conversationRepo)
	if err := scheduler.Start(cfg.ReminderCronSpec, cfg.AlertCronSpec); err != nil {
		logger.Log.Error("Failed to start job scheduler", "error", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ChatUC:   chatUC,
		TenantUC: tenantUC,
		AlertUC:  alertUC,
		Config:   cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
