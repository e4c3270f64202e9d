package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"vocaday/internal/ai"
	"vocaday/internal/config"
	"vocaday/internal/database"
	"vocaday/internal/repository"
	"vocaday/internal/service"
)

// One-shot runner for the daily word generation, for cron setups and manual
// refills. The server binary runs the same job on its own schedule when
// DAILY_WORDS_ENABLED is set.
func main() {
	noDigest := flag.Bool("no-digest", false, "Skip the digest email even when SES is configured")
	timeout := flag.Duration("timeout", 2*time.Minute, "Overall timeout for the run")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	wordRepo := repository.NewWordRepository(db)
	aiClient := ai.NewClient(cfg.GoogleAIAPIKey, cfg.GeminiModel, cfg.AITimeout)

	var digest service.DigestSender
	if !*noDigest {
		emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.FromEmail, cfg.FromName, cfg.ToEmail)
		if err != nil {
			log.Fatalf("Failed to initialize email service: %v", err)
		}
		digest = emailService
	}

	vocabService := service.NewVocabService(wordRepo, aiClient, digest)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	words, err := vocabService.AddDailyWords(ctx)
	if err != nil {
		log.Fatalf("Daily words run failed: %v", err)
	}

	if len(words) == 0 {
		fmt.Println("No new words were added")
		return
	}
	fmt.Printf("Added %d words:\n", len(words))
	for _, w := range words {
		fmt.Printf("  %s: %s\n", w.Word, w.Meaning)
	}
}
