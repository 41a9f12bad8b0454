package scoring

import (
	"strconv"

	"github.com/persona-tui/persona/internal/model"
)

type enneagramScorer struct{}

func (enneagramScorer) Model() model.Model { return model.ModelEnneagram }

func (enneagramScorer) Score(bank *model.QuestionBank, answers model.AnswerSet) *model.Result {
	scores, answered := Accumulate(bank, answers)
	traits := buildTraits(bank, scores, EnneagramLabels, 0)

	sorted := SortTraitsByPercent(traits)
	main := sorted[0].Key

	result := newResult(bank, answered)
	result.Enneagram = &model.EnneagramResult{
		MainType: main,
		Wing:     EnneagramWing(traits, main),
		Traits:   sorted,
	}
	return result
}

// EnneagramWing picks the wing for a main type from its two neighbors
// on the 9-point circle (1 and 9 are adjacent). The neighbor with the
// higher percent wins; an exact non-zero tie goes to the lower-numbered
// neighbor, and two zero-percent neighbors mean no wing at all.
// Traits must be keyed "1".."9" in any order.
func EnneagramWing(traits []model.TraitScore, main string) string {
	n, err := strconv.Atoi(main)
	if err != nil || n < 1 || n > 9 {
		return ""
	}
	prev := wrapType(n - 1)
	next := wrapType(n + 1)
	prevPct := traitPercent(traits, prev)
	nextPct := traitPercent(traits, next)
	if prevPct == 0 && nextPct == 0 {
		return ""
	}
	switch {
	case prevPct > nextPct:
		return prev
	case nextPct > prevPct:
		return next
	default:
		return lowerNumbered(prev, next)
	}
}

func wrapType(n int) string {
	switch {
	case n < 1:
		n = 9
	case n > 9:
		n = 1
	}
	return strconv.Itoa(n)
}

func traitPercent(traits []model.TraitScore, key string) int {
	for _, t := range traits {
		if t.Key == key {
			return t.Percent
		}
	}
	return 0
}

func lowerNumbered(a, b string) string {
	if a < b {
		return a
	}
	return b
}
