package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"vocaday/internal/models"
)

func dailyWordsPrompt(existingWords []string) string {
	return fmt.Sprintf(`
    You are an expert IELTS lexical resource specialist, tasked with creating a vocabulary list for students aiming for Band 7.0 to 8.0.

    Your task is to generate 15 English words that fit this specific level.
    The words should be "less common lexical items" that demonstrate precision and sophistication, suitable for Writing Task 2 and the Speaking test.
    Focus on words that allow for nuanced expression. Avoid overly obscure, academic, or archaic words.

    For example, words like: 'advocate', 'discrepancy', 'substantiate', 'proliferation', 'mitigate' are good examples of the target level.

    Your response MUST be a single, valid JSON object and nothing else.
    The JSON object must have a single key "words", which is an array of objects.
    Each object in the array must have three keys: "word" (string), "meaning" (string, in Korean), and "sentence" (string, a clear example).

    IMPORTANT: AVOID generating the following words as they are already in the database:
    %s
  `, strings.Join(existingWords, ", "))
}

// GenerateDailyWords asks the model for new IELTS-level vocabulary, avoiding
// the given existing surface forms. Candidates that duplicate an existing
// word anyway, or lack a required field, are dropped rather than rejected.
func (c *Client) GenerateDailyWords(ctx context.Context, existingWords []string) ([]models.NewWord, error) {
	text, err := c.generate(ctx, dailyWordsPrompt(existingWords))
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Words []models.NewWord `json:"words"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	existing := make(map[string]bool, len(existingWords))
	for _, w := range existingWords {
		existing[strings.ToLower(w)] = true
	}

	var words []models.NewWord
	for _, w := range parsed.Words {
		if w.Word == "" || w.Meaning == "" || w.Sentence == "" {
			continue
		}
		if existing[strings.ToLower(w.Word)] {
			continue
		}
		words = append(words, w)
	}

	return words, nil
}
