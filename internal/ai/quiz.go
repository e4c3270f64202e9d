package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"vocaday/internal/models"
)

// ErrEmptyWordList is returned before any network call when no words are given
var ErrEmptyWordList = errors.New("word list must not be empty")

// ErrEmptyQuiz is returned when the model produced zero usable quiz items.
// Distinct from a transport failure so the caller can advise a retry.
var ErrEmptyQuiz = errors.New("model generated an empty quiz")

func quizPrompt(words []string) string {
	wordList := strings.Join(words, ", ")
	return fmt.Sprintf(`
    You are an English teacher creating a vocabulary quiz for beginner to intermediate learners.
    Your task is to create one simple, clear, and common example sentence for each word in the provided list.

    For each sentence you create, you MUST replace the target word with the special placeholder token "{{BLANK}}". Do not use any other format for the blank.

    The list of words is: %s

    Your response MUST be a single, valid JSON object and nothing else.
    The JSON object should have a single key "quiz".
    The value of "quiz" should be an array of objects.
    Each object in the array must have two keys:
    1. "sentence_template": The sentence with the {{BLANK}} placeholder.
    2. "answer": The original word that fits in the blank.

    Example for words ["run", "eat"]:
    {
      "quiz": [
        {
          "sentence_template": "I like to {{BLANK}} in the park every morning.",
          "answer": "run"
        },
        {
          "sentence_template": "What do you want to {{BLANK}} for dinner?",
          "answer": "eat"
        }
      ]
    }
  `, wordList)
}

// GenerateQuiz asks the model for one fill-blank item per word. The response
// shape is validated before any item is returned: every template must contain
// the blank token exactly once and carry a non-empty answer.
func (c *Client) GenerateQuiz(ctx context.Context, words []string) ([]models.QuizItem, error) {
	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}

	text, err := c.generate(ctx, quizPrompt(words))
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Quiz []models.QuizItem `json:"quiz"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(parsed.Quiz) == 0 {
		return nil, ErrEmptyQuiz
	}

	for _, item := range parsed.Quiz {
		if err := validateQuizItem(item); err != nil {
			return nil, err
		}
	}

	return parsed.Quiz, nil
}

func validateQuizItem(item models.QuizItem) error {
	if strings.TrimSpace(item.Answer) == "" {
		return fmt.Errorf("%w: quiz item missing answer", ErrMalformedResponse)
	}
	if strings.Count(item.SentenceTemplate, models.BlankToken) != 1 {
		return fmt.Errorf("%w: template %q must contain %s exactly once",
			ErrMalformedResponse, item.SentenceTemplate, models.BlankToken)
	}
	return nil
}
