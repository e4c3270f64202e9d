package models

// BlankToken is the placeholder the generator must embed exactly once in
// every fill-blank sentence template.
const BlankToken = "{{BLANK}}"

// QuizItem is a single fill-in-the-blank question
type QuizItem struct {
	SentenceTemplate string `json:"sentence_template"`
	Answer           string `json:"answer"`
}

// GradingResult is the evaluation of one user-authored sentence
type GradingResult struct {
	IsCorrect           bool     `json:"is_correct"`
	CorrectedSentence   string   `json:"corrected_sentence"`
	Score               int      `json:"score"` // 0-100
	FeedbackKo          string   `json:"feedback_ko"`
	AlternativeExamples []string `json:"alternative_examples"`
	CommonCollocations  []string `json:"common_collocations"`
	HTMLHighlight       string   `json:"html_highlight"`
}
