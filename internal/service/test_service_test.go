package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"vocaday/internal/models"
)

// stubGenerator returns a canned quiz or error
type stubGenerator struct {
	quiz []models.QuizItem
	err  error
}

func (g *stubGenerator) GenerateQuiz(ctx context.Context, words []string) ([]models.QuizItem, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.quiz, nil
}

// stubGrader echoes a fixed grading result
type stubGrader struct {
	result *models.GradingResult
	err    error
	calls  int
}

func (g *stubGrader) GradeSentence(ctx context.Context, word, sentence string) (*models.GradingResult, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

func fiveWords() []models.Word {
	words := make([]models.Word, 5)
	for i := range words {
		words[i] = models.Word{
			ID:      int64(i + 1),
			Word:    fmt.Sprintf("word%d", i+1),
			Meaning: fmt.Sprintf("뜻%d", i+1),
		}
	}
	return words
}

func newTestService(gen QuizGenerator, grader SentenceGrader) *TestService {
	return NewTestService(gen, grader, nil)
}

func TestStartTestRequiresWords(t *testing.T) {
	svc := newTestService(&stubGenerator{}, &stubGrader{})

	_, err := svc.StartTest(context.Background(), "user", models.TestTypeChoice, nil)
	if !errors.Is(err, ErrNoWords) {
		t.Errorf("StartTest(no words) error = %v, want %v", err, ErrNoWords)
	}
}

// Answering all five questions correctly must end in Complete with score 5.
func TestChoiceSessionAllCorrect(t *testing.T) {
	svc := newTestService(&stubGenerator{}, &stubGrader{})
	words := fiveWords()

	view, err := svc.StartTest(context.Background(), "user", models.TestTypeChoice, words)
	if err != nil {
		t.Fatalf("StartTest() error: %v", err)
	}

	for i := 0; i < len(words); i++ {
		view, err = svc.View(view.ID)
		if err != nil {
			t.Fatalf("View() error at question %d: %v", i, err)
		}
		if view.Completed {
			t.Fatalf("completed after %d questions, want %d", i, len(words))
		}
		if view.Index != i {
			t.Errorf("index = %d, want %d", view.Index, i)
		}
		if view.Question == nil || view.Question.Word != words[i].Word {
			t.Fatalf("question %d shows %+v, want word %q", i, view.Question, words[i].Word)
		}

		outcome, err := svc.Submit(context.Background(), view.ID, words[i].Meaning)
		if err != nil {
			t.Fatalf("Submit() error at question %d: %v", i, err)
		}
		if !outcome.IsCorrect {
			t.Errorf("question %d: correct meaning judged incorrect", i)
		}

		view, err = svc.Next(view.ID)
		if err != nil {
			t.Fatalf("Next() error at question %d: %v", i, err)
		}
	}

	if !view.Completed {
		t.Fatal("session not complete after all questions")
	}
	if view.Score != len(words) {
		t.Errorf("final score = %d, want %d", view.Score, len(words))
	}
}

func TestChoiceSessionWrongAnswerNotScored(t *testing.T) {
	svc := newTestService(&stubGenerator{}, &stubGrader{})
	words := fiveWords()

	view, _ := svc.StartTest(context.Background(), "user", models.TestTypeChoice, words)

	outcome, err := svc.Submit(context.Background(), view.ID, "완전히 틀린 답")
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if outcome.IsCorrect {
		t.Error("wrong answer judged correct")
	}
	if outcome.CorrectAnswer != words[0].Meaning {
		t.Errorf("CorrectAnswer = %q, want %q", outcome.CorrectAnswer, words[0].Meaning)
	}

	next, _ := svc.Next(view.ID)
	if next.Score != 0 {
		t.Errorf("score = %d after one wrong answer, want 0", next.Score)
	}
}

func TestChoiceOptionsPresentAndStablePerQuestion(t *testing.T) {
	svc := newTestService(&stubGenerator{}, &stubGrader{})
	words := fiveWords()

	view, _ := svc.StartTest(context.Background(), "user", models.TestTypeChoice, words)
	if len(view.Question.Options) != 4 {
		t.Fatalf("got %d options, want 4", len(view.Question.Options))
	}

	// Re-reading the session must not reshuffle the current options.
	again, _ := svc.View(view.ID)
	for i := range view.Question.Options {
		if again.Question.Options[i] != view.Question.Options[i] {
			t.Fatal("options changed between views of the same question")
		}
	}
}

func TestSubmitTwiceRejected(t *testing.T) {
	svc := newTestService(&stubGenerator{}, &stubGrader{})

	view, _ := svc.StartTest(context.Background(), "user", models.TestTypeChoice, fiveWords())
	if _, err := svc.Submit(context.Background(), view.ID, "x"); err != nil {
		t.Fatalf("first Submit() error: %v", err)
	}

	_, err := svc.Submit(context.Background(), view.ID, "y")
	if !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("second Submit() error = %v, want %v", err, ErrAlreadyAnswered)
	}
}

func TestNextRequiresAnswer(t *testing.T) {
	svc := newTestService(&stubGenerator{}, &stubGrader{})

	view, _ := svc.StartTest(context.Background(), "user", models.TestTypeChoice, fiveWords())

	_, err := svc.Next(view.ID)
	if !errors.Is(err, ErrNotAnswered) {
		t.Errorf("Next() before Submit error = %v, want %v", err, ErrNotAnswered)
	}
}

func TestCompletedSessionRejectsFurtherSubmits(t *testing.T) {
	svc := newTestService(&stubGenerator{}, &stubGrader{})
	words := fiveWords()[:1]

	view, _ := svc.StartTest(context.Background(), "user", models.TestTypeChoice, words)
	svc.Submit(context.Background(), view.ID, words[0].Meaning)
	final, _ := svc.Next(view.ID)

	if !final.Completed {
		t.Fatal("session should be complete")
	}
	if _, err := svc.Submit(context.Background(), view.ID, "x"); !errors.Is(err, ErrTestComplete) {
		t.Errorf("Submit() after complete error = %v, want %v", err, ErrTestComplete)
	}
	if _, err := svc.Next(view.ID); !errors.Is(err, ErrTestComplete) {
		t.Errorf("Next() after complete error = %v, want %v", err, ErrTestComplete)
	}
}

func TestFillBlankMatchingIsCaseInsensitiveAndTrimmed(t *testing.T) {
	gen := &stubGenerator{quiz: []models.QuizItem{
		{SentenceTemplate: "I like to {{BLANK}} every day.", Answer: "run"},
	}}
	svc := newTestService(gen, &stubGrader{})

	tests := []struct {
		name    string
		answer  string
		correct bool
	}{
		{name: "exact", answer: "run", correct: true},
		{name: "uppercase", answer: "RUN", correct: true},
		{name: "surrounding whitespace", answer: "  Run ", correct: true},
		{name: "wrong word", answer: "walk", correct: false},
		{name: "internal whitespace", answer: "r un", correct: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := svc.StartTest(context.Background(), "user", models.TestTypeFillBlank, fiveWords()[:1])
			if err != nil {
				t.Fatalf("StartTest() error: %v", err)
			}
			outcome, err := svc.Submit(context.Background(), view.ID, tt.answer)
			if err != nil {
				t.Fatalf("Submit() error: %v", err)
			}
			if outcome.IsCorrect != tt.correct {
				t.Errorf("IsCorrect = %v for answer %q, want %v", outcome.IsCorrect, tt.answer, tt.correct)
			}
		})
	}
}

func TestFillBlankGenerationFailureSurfaces(t *testing.T) {
	wantErr := errors.New("quiz generation failed")
	svc := newTestService(&stubGenerator{err: wantErr}, &stubGrader{})

	_, err := svc.StartTest(context.Background(), "user", models.TestTypeFillBlank, fiveWords())
	if !errors.Is(err, wantErr) {
		t.Errorf("StartTest() error = %v, want %v", err, wantErr)
	}
}

func TestFillBlankViewHidesAnswer(t *testing.T) {
	gen := &stubGenerator{quiz: []models.QuizItem{
		{SentenceTemplate: "I {{BLANK}} to school.", Answer: "walk"},
	}}
	svc := newTestService(gen, &stubGrader{})

	view, _ := svc.StartTest(context.Background(), "user", models.TestTypeFillBlank, fiveWords()[:1])
	if view.Question.Word != "" {
		t.Error("fill-blank question leaked the word field")
	}
	if view.Question.SentenceTemplate == "" {
		t.Error("fill-blank question missing sentence template")
	}
}

func TestWritingSessionGradesAndScores(t *testing.T) {
	grader := &stubGrader{result: &models.GradingResult{
		IsCorrect:         true,
		CorrectedSentence: "I run daily.",
		Score:             90,
		FeedbackKo:        "잘했어요",
	}}
	svc := newTestService(&stubGenerator{}, grader)
	words := fiveWords()[:2]

	view, _ := svc.StartTest(context.Background(), "user", models.TestTypeWriting, words)

	outcome, err := svc.Submit(context.Background(), view.ID, "I run daily.")
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if outcome.Grading == nil || outcome.Grading.Score != 90 {
		t.Fatalf("grading not attached: %+v", outcome)
	}
	if !outcome.IsCorrect {
		t.Error("IsCorrect should follow the grading result")
	}

	next, _ := svc.Next(view.ID)
	if next.Score != 1 {
		t.Errorf("score = %d, want 1", next.Score)
	}
}

func TestWritingGradingFailureKeepsQuestionOpen(t *testing.T) {
	grader := &stubGrader{err: errors.New("grading service unavailable")}
	svc := newTestService(&stubGenerator{}, grader)

	view, _ := svc.StartTest(context.Background(), "user", models.TestTypeWriting, fiveWords()[:1])

	if _, err := svc.Submit(context.Background(), view.ID, "My sentence."); err == nil {
		t.Fatal("Submit() expected error from failing grader")
	}

	// The question stays unanswered; a retry must be possible.
	grader.err = nil
	grader.result = &models.GradingResult{IsCorrect: false, CorrectedSentence: "fixed", Score: 50}
	if _, err := svc.Submit(context.Background(), view.ID, "My sentence."); err != nil {
		t.Fatalf("retry Submit() error: %v", err)
	}
}

// blockingGrader parks in GradeSentence until released, signalling entry so
// the test can interleave a second submission with the in-flight call.
type blockingGrader struct {
	entered chan struct{}
	release chan struct{}
}

func (g *blockingGrader) GradeSentence(ctx context.Context, word, sentence string) (*models.GradingResult, error) {
	close(g.entered)
	<-g.release
	return &models.GradingResult{IsCorrect: true, CorrectedSentence: sentence, Score: 100}, nil
}

// While a grading call is outstanding, a second submission for the same
// question is rejected instead of racing the first.
func TestWritingSubmitWhileGradingInFlightRejected(t *testing.T) {
	grader := &blockingGrader{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := newTestService(&stubGenerator{}, grader)

	view, _ := svc.StartTest(context.Background(), "user", models.TestTypeWriting, fiveWords()[:1])

	type submitResult struct {
		outcome *AnswerOutcome
		err     error
	}
	first := make(chan submitResult, 1)
	go func() {
		outcome, err := svc.Submit(context.Background(), view.ID, "The first sentence.")
		first <- submitResult{outcome, err}
	}()

	select {
	case <-grader.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("grader was never called")
	}

	if _, err := svc.Submit(context.Background(), view.ID, "The second sentence."); !errors.Is(err, ErrSubmissionPending) {
		t.Errorf("concurrent Submit() error = %v, want %v", err, ErrSubmissionPending)
	}

	close(grader.release)

	select {
	case res := <-first:
		if res.err != nil {
			t.Fatalf("first Submit() error: %v", res.err)
		}
		if res.outcome == nil || !res.outcome.IsCorrect {
			t.Errorf("first Submit() outcome = %+v, want graded correct", res.outcome)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("first Submit() never returned")
	}

	final, err := svc.Next(view.ID)
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if final.Score != 1 {
		t.Errorf("score = %d, want 1 from the first submission only", final.Score)
	}
}

// A grading response arriving after the session was removed must be dropped
// without touching any state.
type removeDuringGradeGrader struct {
	svc       *TestService
	sessionID string
}

func (g *removeDuringGradeGrader) GradeSentence(ctx context.Context, word, sentence string) (*models.GradingResult, error) {
	g.svc.mu.Lock()
	delete(g.svc.sessions, g.sessionID)
	g.svc.mu.Unlock()
	return &models.GradingResult{IsCorrect: true, CorrectedSentence: sentence, Score: 100}, nil
}

func TestWritingResultAfterSessionDiscardedIsNoOp(t *testing.T) {
	svc := newTestService(&stubGenerator{}, &stubGrader{})

	view, _ := svc.StartTest(context.Background(), "user", models.TestTypeWriting, fiveWords()[:1])
	svc.grader = &removeDuringGradeGrader{svc: svc, sessionID: view.ID}

	_, err := svc.Submit(context.Background(), view.ID, "A sentence.")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Submit() on discarded session error = %v, want %v", err, ErrSessionNotFound)
	}
}

func TestUnknownSession(t *testing.T) {
	svc := newTestService(&stubGenerator{}, &stubGrader{})

	if _, err := svc.View("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("View() error = %v, want %v", err, ErrSessionNotFound)
	}
	if _, err := svc.Submit(context.Background(), "nope", "x"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Submit() error = %v, want %v", err, ErrSessionNotFound)
	}
	if _, err := svc.Next("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Next() error = %v, want %v", err, ErrSessionNotFound)
	}
}

func TestRemoveIdleSessions(t *testing.T) {
	svc := newTestService(&stubGenerator{}, &stubGrader{})

	view, _ := svc.StartTest(context.Background(), "user", models.TestTypeChoice, fiveWords())

	svc.mu.Lock()
	svc.sessions[view.ID].lastActive = time.Now().Add(-time.Hour)
	svc.mu.Unlock()

	if removed := svc.RemoveIdleSessions(30 * time.Minute); removed != 1 {
		t.Errorf("RemoveIdleSessions() = %d, want 1", removed)
	}
	if _, err := svc.View(view.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expired session still readable: %v", err)
	}
}
