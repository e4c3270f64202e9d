package models

import "time"

// Word represents a vocabulary entry scheduled for a calendar date
type Word struct {
	ID        int64     `json:"id"`
	Word      string    `json:"word"`
	Meaning   string    `json:"meaning"` // Korean gloss
	Sentence  string    `json:"sentence"`
	Date      string    `json:"date"` // YYYY-MM-DD
	CreatedAt time.Time `json:"-"`
}

// NewWord is a word proposed by the generator before it is persisted
type NewWord struct {
	Word     string `json:"word"`
	Meaning  string `json:"meaning"`
	Sentence string `json:"sentence"`
}
