package models

import "time"

// TestType identifies one of the three quiz modes
type TestType string

const (
	TestTypeChoice    TestType = "choice"     // multiple-choice meaning
	TestTypeFillBlank TestType = "fill-blank" // cloze quiz
	TestTypeWriting   TestType = "writing"    // free-form sentence graded by the AI
)

// Valid reports whether t names a known test type
func (t TestType) Valid() bool {
	switch t {
	case TestTypeChoice, TestTypeFillBlank, TestTypeWriting:
		return true
	}
	return false
}

// TestResult is the persisted summary of a completed test session
type TestResult struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	TestType       TestType  `json:"test_type"`
	TotalQuestions int       `json:"total_questions"`
	CorrectCount   int       `json:"correct_count"`
	ScorePercent   int       `json:"score_percent"`
	CompletedAt    time.Time `json:"completed_at"`
}
