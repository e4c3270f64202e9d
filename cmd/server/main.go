package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"vocaday/internal/ai"
	"vocaday/internal/config"
	"vocaday/internal/database"
	"vocaday/internal/handlers"
	"vocaday/internal/repository"
	"vocaday/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	wordRepo := repository.NewWordRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	resultRepo := repository.NewResultRepository(db)

	// Initialize the language model client and services
	aiClient := ai.NewClient(cfg.GoogleAIAPIKey, cfg.GeminiModel, cfg.AITimeout)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.FromEmail, cfg.FromName, cfg.ToEmail)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	if !emailService.IsEnabled() {
		log.Println("Daily words digest email is disabled")
	}

	vocabService := service.NewVocabService(wordRepo, aiClient, emailService)
	testService := service.NewTestService(aiClient, aiClient, resultRepo)

	// Initialize handlers
	tokenService := handlers.NewTokenService(cfg.TokenSecret)
	middleware := handlers.NewMiddleware(tokenService, cfg.AdminPassHash, cfg.CORSOrigins)

	routes := handlers.Routes(
		middleware,
		handlers.NewWordHandler(vocabService),
		handlers.NewTestHandler(vocabService, testService),
		handlers.NewQuizHandler(aiClient, aiClient),
		handlers.NewProfileHandler(tokenService, settingsRepo),
		handlers.NewAdminHandler(vocabService),
	)

	// Wrap with logging middleware
	handler := handlers.Logging(routes)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // grading calls wait on the language model
		IdleTimeout:  60 * time.Second,
	}

	// Background jobs run until shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go cleanupIdleSessions(ctx, testService, cfg.SessionIdleTimeout)
	if cfg.DailyWordsEnabled {
		log.Printf("Daily words job scheduled for %02d:00 local time", cfg.DailyWordsHour)
		go vocabService.RunDailySchedule(ctx, cfg.DailyWordsHour)
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// cleanupIdleSessions periodically removes abandoned test sessions
func cleanupIdleSessions(ctx context.Context, tests *service.TestService, maxIdle time.Duration) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := tests.RemoveIdleSessions(maxIdle); removed > 0 {
				log.Printf("Cleaned up %d idle test sessions", removed)
			}
		}
	}
}
