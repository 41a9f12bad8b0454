package scoring

import (
	"math"

	"github.com/persona-tui/persona/internal/model"
)

// roundPercent rounds half away from zero. Applied consistently so that
// paired percentages stay complementary and scenario results reproduce.
func roundPercent(v float64) int {
	return int(math.Round(v))
}

// PairPercents normalizes an opposed pair against each other. The right
// percent is derived as the complement of the left, never rounded
// independently. A pair with no discriminating score at all is a
// neutral 50/50 split.
func PairPercents(left, right float64) (leftPercent, rightPercent int) {
	sum := left + right
	if sum <= 0 {
		return 50, 50
	}
	leftPercent = roundPercent(100 * left / sum)
	return leftPercent, 100 - leftPercent
}

// TheoreticalMax computes the best achievable score for a dimension:
// the sum over all questions of the highest weight any choice offers
// for it. Independent of the user's actual answers.
func TheoreticalMax(bank *model.QuestionBank, key string) float64 {
	var total float64
	for _, q := range bank.Questions {
		best := math.Inf(-1)
		for _, c := range q.Choices {
			if w := c.Weights[key]; w > best {
				best = w
			}
		}
		if !math.IsInf(best, -1) {
			total += best
		}
	}
	return total
}

// ShareOfMax normalizes a trait score against its theoretical maximum.
// A non-positive maximum means the trait was never expressible in the
// bank; the caller supplies the model's default (50 for Big Five, whose
// traits have an implicit midpoint; 0 for Enneagram and FPA, where no
// signal means no expressed preference).
func ShareOfMax(score, max float64, defaultPercent int) int {
	if max <= 0 {
		return defaultPercent
	}
	return roundPercent(100 * score / max)
}
