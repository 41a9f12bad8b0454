package scoring

import (
	"errors"
	"sort"
	"time"

	"github.com/persona-tui/persona/internal/model"
)

// ErrModelNotAvailable is returned for models that validate but have no
// scoring path, such as Eysenck.
var ErrModelNotAvailable = errors.New("scoring is not available for this model")

// Scorer runs the full pipeline for one personality model. Score is a
// pure function of (bank, answers) except for the result timestamp; it
// never fails and produces a defined result even with zero answers.
// Completion gating is the caller's responsibility.
type Scorer interface {
	Model() model.Model
	Score(bank *model.QuestionBank, answers model.AnswerSet) *model.Result
}

// ForModel returns the scorer variant for a model, or
// ErrModelNotAvailable when no scoring path exists.
func ForModel(m model.Model) (Scorer, error) {
	switch m {
	case model.ModelMBTI:
		return mbtiScorer{}, nil
	case model.ModelBigFive:
		return bigFiveScorer{}, nil
	case model.ModelEnneagram:
		return enneagramScorer{}, nil
	case model.ModelFPA:
		return fpaScorer{}, nil
	default:
		return nil, ErrModelNotAvailable
	}
}

// newResult assembles the shared result fields. The snapshot is never
// mutated after creation; resubmission replaces it wholesale.
func newResult(bank *model.QuestionBank, answered int) *model.Result {
	return &model.Result{
		Model:          bank.Metadata.Model,
		AnsweredCount:  answered,
		TotalQuestions: len(bank.Questions),
		Bank:           bank.Metadata,
		CreatedAt:      time.Now(),
	}
}

// SortTraitsByPercent returns a copy of the traits stably sorted by
// percent descending. Stability makes ties resolve to declaration
// order, which is the contractual tie-break for FPA and Enneagram.
func SortTraitsByPercent(traits []model.TraitScore) []model.TraitScore {
	out := make([]model.TraitScore, len(traits))
	copy(out, traits)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percent > out[j].Percent
	})
	return out
}
