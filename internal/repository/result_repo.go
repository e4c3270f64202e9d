package repository

import (
	"fmt"
	"time"

	"vocaday/internal/database"
	"vocaday/internal/models"
)

// ResultRepository persists completed test session summaries
type ResultRepository struct {
	db *database.DB
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *database.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// SaveResult stores the summary of a completed test
func (r *ResultRepository) SaveResult(result *models.TestResult) (*models.TestResult, error) {
	query := `
		INSERT INTO test_results (user_id, test_type, total_questions, correct_count, score_percent)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		result.UserID,
		string(result.TestType),
		result.TotalQuestions,
		result.CorrectCount,
		result.ScorePercent,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save test result: %w", err)
	}

	result.ID = id
	result.CompletedAt = time.Now()
	return result, nil
}

// GetUserResults returns a user's completed tests, most recent first
func (r *ResultRepository) GetUserResults(userID string, limit int) ([]models.TestResult, error) {
	query := `
		SELECT id, user_id, test_type, total_questions, correct_count, score_percent, completed_at
		FROM test_results
		WHERE user_id = ?
		ORDER BY completed_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query test results: %w", err)
	}
	defer rows.Close()

	var results []models.TestResult
	for rows.Next() {
		var result models.TestResult
		var testType string
		if err := rows.Scan(
			&result.ID,
			&result.UserID,
			&testType,
			&result.TotalQuestions,
			&result.CorrectCount,
			&result.ScorePercent,
			&result.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan test result: %w", err)
		}
		result.TestType = models.TestType(testType)
		results = append(results, result)
	}
	return results, rows.Err()
}
