// Package scoring turns answers into normalized, classified results.
package scoring

import "github.com/persona-tui/persona/internal/model"

// Accumulate sums each answered choice's per-dimension weights into a
// raw score vector and returns the number of questions with a valid
// recorded choice. The vector covers every bank dimension with zero
// defaults. Unanswered and out-of-range entries are skipped: partial
// completion is a normal state while a user is still answering. The
// function is pure; recomputing from the same inputs yields the same
// vector.
func Accumulate(bank *model.QuestionBank, answers model.AnswerSet) (model.RawScores, int) {
	scores := make(model.RawScores, len(bank.Dimensions))
	for _, key := range bank.Dimensions {
		scores[key] = 0
	}
	answered := 0
	for _, q := range bank.Questions {
		idx, ok := answers[q.ID]
		if !ok || idx < 0 || idx >= len(q.Choices) {
			continue
		}
		answered++
		for key, w := range q.Choices[idx].Weights {
			scores[key] += w
		}
	}
	return scores, answered
}
