package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"vocaday/internal/database"
	"vocaday/internal/models"
)

// WordRepository handles database operations for vocabulary words
type WordRepository struct {
	db *database.DB
}

// NewWordRepository creates a new word repository
func NewWordRepository(db *database.DB) *WordRepository {
	return &WordRepository{db: db}
}

// GetWordsByDate retrieves all words scheduled for a calendar date (YYYY-MM-DD).
// An empty result is valid: it means no words were added for that date.
func (r *WordRepository) GetWordsByDate(date string) ([]models.Word, error) {
	query := `
		SELECT id, word, meaning, sentence, date, created_at
		FROM words
		WHERE date = ?
		ORDER BY id
	`
	rows, err := r.db.Query(query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	return scanWords(rows)
}

// GetAllSurfaceForms returns every stored word's surface form, lowercased.
// Used by the daily generation job to avoid duplicates.
func (r *WordRepository) GetAllSurfaceForms() ([]string, error) {
	rows, err := r.db.Query("SELECT word FROM words ORDER BY word")
	if err != nil {
		return nil, fmt.Errorf("failed to query surface forms: %w", err)
	}
	defer rows.Close()

	var forms []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, fmt.Errorf("failed to scan surface form: %w", err)
		}
		forms = append(forms, strings.ToLower(word))
	}
	return forms, rows.Err()
}

// InsertWords stores new words under the given date, skipping any whose
// surface form is already present. Returns the number of rows inserted.
func (r *WordRepository) InsertWords(words []models.NewWord, date string) (int, error) {
	inserted := 0
	for _, w := range words {
		var count int
		err := r.db.QueryRow("SELECT COUNT(*) FROM words WHERE LOWER(word) = ?", strings.ToLower(w.Word)).Scan(&count)
		if err != nil {
			return inserted, fmt.Errorf("failed to check word %q: %w", w.Word, err)
		}
		if count > 0 {
			continue
		}

		query := "INSERT INTO words (word, meaning, sentence, date) VALUES (?, ?, ?, ?)"
		if _, err := r.db.Exec(query, w.Word, w.Meaning, w.Sentence, date); err != nil {
			return inserted, fmt.Errorf("failed to insert word %q: %w", w.Word, err)
		}
		inserted++
	}
	return inserted, nil
}

// GetWordByID retrieves a single word, or nil when it does not exist
func (r *WordRepository) GetWordByID(id int64) (*models.Word, error) {
	query := `
		SELECT id, word, meaning, sentence, date, created_at
		FROM words
		WHERE id = ?
	`
	word := &models.Word{}
	err := r.db.QueryRow(query, id).Scan(
		&word.ID,
		&word.Word,
		&word.Meaning,
		&word.Sentence,
		&word.Date,
		&word.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %w", err)
	}
	return word, nil
}

func scanWords(rows *sql.Rows) ([]models.Word, error) {
	var words []models.Word
	for rows.Next() {
		var word models.Word
		if err := rows.Scan(
			&word.ID,
			&word.Word,
			&word.Meaning,
			&word.Sentence,
			&word.Date,
			&word.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, word)
	}
	return words, rows.Err()
}
