package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"vocaday/internal/diff"
	"vocaday/internal/models"
)

// ErrEmptySentence is returned before any network call when the sentence is blank
var ErrEmptySentence = errors.New("sentence must not be empty")

// ErrEmptyWord is returned before any network call when the target word is blank
var ErrEmptyWord = errors.New("word must not be empty")

func gradePrompt(word, sentence string) string {
	return fmt.Sprintf(`
    You are an expert IELTS examiner with over 10 years of experience, specializing in Writing Task 2. Your evaluation is strict, precise, and aligned with the official IELTS band descriptors.

    You are assessing a single sentence written by an IELTS candidate.
    The candidate was given the vocabulary word: "%[1]s"
    The candidate wrote the following sentence: "%[2]s"

    Your task is to analyze this sentence based on IELTS criteria and provide a detailed evaluation. Your response MUST be a single, valid JSON object and nothing else. Do not add any text before or after the JSON object.

    The JSON object must have these keys:
    - "is_correct": A boolean. True ONLY IF the sentence is grammatically flawless AND the word "%[1]s" is used perfectly in terms of its meaning, part of speech, and natural collocation.
    - "corrected_sentence": A string. If the original sentence has errors (grammar, spelling, awkward phrasing), provide a corrected, more natural version. If the original is perfect, return it unchanged.
    - "score": A number from 0 to 100, based on: Grammatical Accuracy (40), Vocabulary Usage & Collocation (40), Naturalness & Structure (20).
    - "feedback_ko": A string. Provide constructive, encouraging feedback in Korean. Explain the score, highlight strengths, and clearly point out areas for improvement with specific examples.
    - "alternative_examples": An array of 2-3 strings. Provide high-band (Band 8-9) example sentences using "%[1]s" in different contexts.
    - "common_collocations": An array of strings. List common, natural word pairings (collocations) for "%[1]s".
  `, word, sentence)
}

// GradeSentence asks the model to evaluate a user-authored sentence and
// derives the diff highlight from the corrected sentence before returning.
func (c *Client) GradeSentence(ctx context.Context, word, sentence string) (*models.GradingResult, error) {
	if strings.TrimSpace(word) == "" {
		return nil, ErrEmptyWord
	}
	if strings.TrimSpace(sentence) == "" {
		return nil, ErrEmptySentence
	}

	text, err := c.generate(ctx, gradePrompt(word, sentence))
	if err != nil {
		return nil, err
	}

	var result models.GradingResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if strings.TrimSpace(result.CorrectedSentence) == "" {
		return nil, fmt.Errorf("%w: missing corrected_sentence", ErrMalformedResponse)
	}
	if result.Score < 0 || result.Score > 100 {
		return nil, fmt.Errorf("%w: score %d out of range", ErrMalformedResponse, result.Score)
	}

	result.HTMLHighlight = diff.Highlight(sentence, result.CorrectedSentence)
	return &result, nil
}
