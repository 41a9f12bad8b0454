package scoring

import "github.com/persona-tui/persona/internal/model"

type fpaScorer struct{}

func (fpaScorer) Model() model.Model { return model.ModelFPA }

// Score ranks the four colors by percent. The sort is stable over the
// fixed R, Y, B, G declaration order, so ties deterministically go to
// the first-declared color.
func (fpaScorer) Score(bank *model.QuestionBank, answers model.AnswerSet) *model.Result {
	scores, answered := Accumulate(bank, answers)
	traits := buildTraits(bank, scores, FPALabels, 0)
	sorted := SortTraitsByPercent(traits)

	result := newResult(bank, answered)
	result.FPA = &model.FPAResult{
		Dominant:  sorted[0].Key,
		Secondary: sorted[1].Key,
		Traits:    sorted,
	}
	return result
}
