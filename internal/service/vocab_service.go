package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"vocaday/internal/models"
)

// maxDailyWords caps how many generated words are stored per run
const maxDailyWords = 10

// ErrInvalidDate is returned for dates not in YYYY-MM-DD form
var ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")

// WordStore is the repository surface the vocabulary service needs
type WordStore interface {
	GetWordsByDate(date string) ([]models.Word, error)
	GetAllSurfaceForms() ([]string, error)
	InsertWords(words []models.NewWord, date string) (int, error)
}

// WordGenerator produces new vocabulary entries avoiding existing words
type WordGenerator interface {
	GenerateDailyWords(ctx context.Context, existingWords []string) ([]models.NewWord, error)
}

// DigestSender notifies about newly added words; may be a disabled no-op
type DigestSender interface {
	SendDailyWordsDigest(ctx context.Context, date string, words []models.NewWord) error
}

// VocabService handles word delivery and the daily word generation job
type VocabService struct {
	words     WordStore
	generator WordGenerator
	digest    DigestSender
}

// NewVocabService creates a new vocabulary service
func NewVocabService(words WordStore, generator WordGenerator, digest DigestSender) *VocabService {
	return &VocabService{
		words:     words,
		generator: generator,
		digest:    digest,
	}
}

// WordsForDate returns the words scheduled for a date. An empty slice is a
// valid result meaning no words exist for that date.
func (s *VocabService) WordsForDate(date string) ([]models.Word, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}
	return s.words.GetWordsByDate(date)
}

// AddDailyWords asks the generator for new vocabulary, stores up to
// maxDailyWords of it under today's date, and sends the digest when anything
// was added. Returns the stored words.
func (s *VocabService) AddDailyWords(ctx context.Context) ([]models.NewWord, error) {
	existing, err := s.words.GetAllSurfaceForms()
	if err != nil {
		return nil, fmt.Errorf("load existing words: %w", err)
	}

	generated, err := s.generator.GenerateDailyWords(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("generate words: %w", err)
	}

	if len(generated) > maxDailyWords {
		generated = generated[:maxDailyWords]
	}

	if len(generated) == 0 {
		log.Println("Daily words: generator produced no new words")
		return nil, nil
	}

	date := time.Now().Format("2006-01-02")
	inserted, err := s.words.InsertWords(generated, date)
	if err != nil {
		return nil, fmt.Errorf("store words: %w", err)
	}
	log.Printf("Daily words: added %d new words for %s", inserted, date)

	if s.digest != nil && inserted > 0 {
		if err := s.digest.SendDailyWordsDigest(ctx, date, generated); err != nil {
			// The words are already stored; a digest failure is not fatal.
			log.Printf("Warning: failed to send daily words digest: %v", err)
		}
	}

	return generated, nil
}

// RunDailySchedule triggers AddDailyWords once per day at the given local
// hour until the context is cancelled. Run it in its own goroutine.
func (s *VocabService) RunDailySchedule(ctx context.Context, hour int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
		}

		if _, err := s.AddDailyWords(ctx); err != nil {
			log.Printf("Daily words job failed: %v", err)
		}
	}
}
