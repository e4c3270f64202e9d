package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"vocaday/internal/models"
	"vocaday/internal/repository"
	"vocaday/internal/utils"
)

var (
	// ErrNoWords is returned when a test is started with zero words selected
	ErrNoWords = errors.New("no words selected for the test")

	// ErrSessionNotFound is returned for unknown or expired session ids
	ErrSessionNotFound = errors.New("test session not found")

	// ErrTestComplete is returned when answering or advancing a finished test
	ErrTestComplete = errors.New("test already complete")

	// ErrAlreadyAnswered is returned when the current question was already submitted
	ErrAlreadyAnswered = errors.New("current question already answered")

	// ErrSubmissionPending is returned while a grading call is still in flight
	ErrSubmissionPending = errors.New("a submission is already in progress")

	// ErrNotAnswered is returned when advancing before submitting an answer
	ErrNotAnswered = errors.New("current question not answered yet")
)

// QuizGenerator produces fill-blank quiz items for a word list
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, words []string) ([]models.QuizItem, error)
}

// SentenceGrader evaluates a user-authored sentence for a target word
type SentenceGrader interface {
	GradeSentence(ctx context.Context, word, sentence string) (*models.GradingResult, error)
}

// AnswerOutcome is the per-question record created by a submission
type AnswerOutcome struct {
	Answer        string                `json:"answer"`
	IsCorrect     bool                  `json:"is_correct"`
	CorrectAnswer string                `json:"correct_answer,omitempty"`
	Grading       *models.GradingResult `json:"grading,omitempty"`
}

// QuestionView is what the client sees for the current question. It never
// carries the expected answer.
type QuestionView struct {
	Word             string   `json:"word,omitempty"`
	Options          []string `json:"options,omitempty"`
	SentenceTemplate string   `json:"sentence_template,omitempty"`
}

// SessionView is the externally visible state of a test session
type SessionView struct {
	ID        string          `json:"id"`
	Type      models.TestType `json:"type"`
	Index     int             `json:"index"`
	Total     int             `json:"total"`
	Score     int             `json:"score"`
	Completed bool            `json:"completed"`
	Question  *QuestionView   `json:"question,omitempty"`
	Outcome   *AnswerOutcome  `json:"outcome,omitempty"`
}

// testSession holds the live state of one test. Owned by the store; all
// access goes through the service's mutex.
type testSession struct {
	id       string
	userID   string
	testType models.TestType

	words []models.Word     // choice and writing modes
	quiz  []models.QuizItem // fill-blank mode

	index   int
	score   int
	outcome *AnswerOutcome // transient result for the current question
	options []string       // current choice options, fixed per question
	pending bool           // a grading call is in flight

	lastActive time.Time
}

func (s *testSession) total() int {
	if s.testType == models.TestTypeFillBlank {
		return len(s.quiz)
	}
	return len(s.words)
}

func (s *testSession) complete() bool {
	return s.index >= s.total()
}

// TestService runs the three quiz modes as server-held state machines
type TestService struct {
	generator  QuizGenerator
	grader     SentenceGrader
	resultRepo *repository.ResultRepository

	mu       sync.Mutex
	sessions map[string]*testSession
}

// NewTestService creates a new test service
func NewTestService(generator QuizGenerator, grader SentenceGrader, resultRepo *repository.ResultRepository) *TestService {
	return &TestService{
		generator:  generator,
		grader:     grader,
		resultRepo: resultRepo,
		sessions:   make(map[string]*testSession),
	}
}

// StartTest creates a session over the given words. Fill-blank tests call the
// generation service once up front; a failure there surfaces before any
// session exists.
func (s *TestService) StartTest(ctx context.Context, userID string, testType models.TestType, words []models.Word) (*SessionView, error) {
	if len(words) == 0 {
		return nil, ErrNoWords
	}

	session := &testSession{
		id:         uuid.New().String(),
		userID:     userID,
		testType:   testType,
		lastActive: time.Now(),
	}

	switch testType {
	case models.TestTypeChoice, models.TestTypeWriting:
		session.words = words
	case models.TestTypeFillBlank:
		wordStrings := make([]string, len(words))
		for i, w := range words {
			wordStrings[i] = w.Word
		}
		quiz, err := s.generator.GenerateQuiz(ctx, wordStrings)
		if err != nil {
			return nil, err
		}
		session.words = words
		session.quiz = utils.Shuffle(quiz)
	default:
		return nil, errors.New("unknown test type: " + string(testType))
	}

	if session.testType == models.TestTypeChoice {
		session.options = ChoiceOptions(session.words[0], session.words)
	}

	s.mu.Lock()
	s.sessions[session.id] = session
	s.mu.Unlock()

	return s.View(session.id)
}

// View returns the current state of a session
func (s *TestService) View(sessionID string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.lastActive = time.Now()
	return session.view(), nil
}

func (s *testSession) view() *SessionView {
	view := &SessionView{
		ID:        s.id,
		Type:      s.testType,
		Index:     s.index,
		Total:     s.total(),
		Score:     s.score,
		Completed: s.complete(),
		Outcome:   s.outcome,
	}
	if s.complete() {
		return view
	}

	question := &QuestionView{}
	switch s.testType {
	case models.TestTypeChoice:
		question.Word = s.words[s.index].Word
		question.Options = s.options
	case models.TestTypeWriting:
		question.Word = s.words[s.index].Word
	case models.TestTypeFillBlank:
		question.SentenceTemplate = s.quiz[s.index].SentenceTemplate
	}
	view.Question = question
	return view
}

// Submit answers the current question. For writing tests this calls the
// grading service; the session is marked pending for the duration so a second
// submission for the same question is rejected rather than raced.
func (s *TestService) Submit(ctx context.Context, sessionID, answer string) (*AnswerOutcome, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if session.complete() {
		s.mu.Unlock()
		return nil, ErrTestComplete
	}
	if session.pending {
		s.mu.Unlock()
		return nil, ErrSubmissionPending
	}
	if session.outcome != nil {
		s.mu.Unlock()
		return nil, ErrAlreadyAnswered
	}
	session.lastActive = time.Now()

	switch session.testType {
	case models.TestTypeChoice:
		word := session.words[session.index]
		outcome := &AnswerOutcome{
			Answer:        answer,
			IsCorrect:     answer == word.Meaning,
			CorrectAnswer: word.Meaning,
		}
		session.apply(outcome)
		s.mu.Unlock()
		return outcome, nil

	case models.TestTypeFillBlank:
		item := session.quiz[session.index]
		outcome := &AnswerOutcome{
			Answer:        answer,
			IsCorrect:     strings.EqualFold(strings.TrimSpace(answer), item.Answer),
			CorrectAnswer: item.Answer,
		}
		session.apply(outcome)
		s.mu.Unlock()
		return outcome, nil

	case models.TestTypeWriting:
		word := session.words[session.index]
		index := session.index
		session.pending = true
		s.mu.Unlock()

		grading, err := s.grader.GradeSentence(ctx, word.Word, answer)

		s.mu.Lock()
		defer s.mu.Unlock()

		// The session may have expired while the grader was running; a late
		// result for discarded state is dropped, not applied.
		session, ok = s.sessions[sessionID]
		if !ok {
			return nil, ErrSessionNotFound
		}
		session.pending = false

		if err != nil {
			// Question stays unanswered; resubmission is allowed.
			return nil, err
		}
		if session.index != index || session.outcome != nil {
			return nil, ErrAlreadyAnswered
		}

		outcome := &AnswerOutcome{
			Answer:    answer,
			IsCorrect: grading.IsCorrect,
			Grading:   grading,
		}
		session.apply(outcome)
		return outcome, nil
	}

	s.mu.Unlock()
	return nil, errors.New("unknown test type: " + string(session.testType))
}

// apply records the outcome for the current question, scoring it immediately
func (s *testSession) apply(outcome *AnswerOutcome) {
	s.outcome = outcome
	if outcome.IsCorrect {
		s.score++
	}
}

// Next advances past an answered question. Reaching the end persists the
// summary and leaves the session readable in its terminal state. There is no
// backward transition.
func (s *TestService) Next(sessionID string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.complete() {
		return nil, ErrTestComplete
	}
	if session.outcome == nil {
		return nil, ErrNotAnswered
	}

	session.index++
	session.outcome = nil
	session.options = nil
	session.lastActive = time.Now()

	if session.complete() {
		s.persistResult(session)
	} else if session.testType == models.TestTypeChoice {
		session.options = ChoiceOptions(session.words[session.index], session.words)
	}

	return session.view(), nil
}

func (s *TestService) persistResult(session *testSession) {
	if s.resultRepo == nil {
		return
	}
	total := session.total()
	result := &models.TestResult{
		UserID:         session.userID,
		TestType:       session.testType,
		TotalQuestions: total,
		CorrectCount:   session.score,
		ScorePercent:   session.score * 100 / total,
	}
	if _, err := s.resultRepo.SaveResult(result); err != nil {
		log.Printf("Failed to persist test result for session %s: %v", session.id, err)
	}
}

// UserResults returns a user's persisted test history
func (s *TestService) UserResults(userID string, limit int) ([]models.TestResult, error) {
	if s.resultRepo == nil {
		return nil, nil
	}
	return s.resultRepo.GetUserResults(userID, limit)
}

// RemoveIdleSessions drops sessions untouched for longer than maxIdle.
// Returns the number removed.
func (s *TestService) RemoveIdleSessions(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	removed := 0
	for id, session := range s.sessions {
		if session.lastActive.Before(cutoff) && !session.pending {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
