package service

import (
	"vocaday/internal/models"
	"vocaday/internal/utils"
)

// ChoiceOptions builds the multiple-choice option set for a target word:
// up to 3 sibling meanings drawn without replacement, plus the correct
// meaning, in random order. The correct meaning appears exactly once.
//
// When the pool has fewer than 4 distinct siblings the option set is simply
// smaller; a one-word day degenerates to a single option rather than a
// skipped question.
func ChoiceOptions(target models.Word, pool []models.Word) []string {
	var siblings []string
	for _, w := range pool {
		if w.ID == target.ID || w.Meaning == target.Meaning {
			continue
		}
		siblings = append(siblings, w.Meaning)
	}

	options := append(utils.Sample(siblings, 3), target.Meaning)
	return utils.Shuffle(options)
}
