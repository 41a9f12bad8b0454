package scoring

import "github.com/persona-tui/persona/internal/model"

// BigFiveLabels maps trait keys to display labels in declaration order.
var BigFiveLabels = []model.TraitScore{
	{Key: "O", Label: "Openness"},
	{Key: "C", Label: "Conscientiousness"},
	{Key: "E", Label: "Extraversion"},
	{Key: "A", Label: "Agreeableness"},
	{Key: "N", Label: "Neuroticism"},
}

// EnneagramLabels maps the nine types to their conventional names in
// declaration order.
var EnneagramLabels = []model.TraitScore{
	{Key: "1", Label: "Reformer"},
	{Key: "2", Label: "Helper"},
	{Key: "3", Label: "Achiever"},
	{Key: "4", Label: "Individualist"},
	{Key: "5", Label: "Investigator"},
	{Key: "6", Label: "Loyalist"},
	{Key: "7", Label: "Enthusiast"},
	{Key: "8", Label: "Challenger"},
	{Key: "9", Label: "Peacemaker"},
}

// FPALabels maps the four colors to labels in the fixed declaration
// order that breaks ranking ties.
var FPALabels = []model.TraitScore{
	{Key: "R", Label: "Red"},
	{Key: "Y", Label: "Yellow"},
	{Key: "B", Label: "Blue"},
	{Key: "G", Label: "Green"},
}

// TraitLabel resolves a trait key to its display label for the model.
func TraitLabel(m model.Model, key string) string {
	var labels []model.TraitScore
	switch m {
	case model.ModelBigFive:
		labels = BigFiveLabels
	case model.ModelEnneagram:
		labels = EnneagramLabels
	case model.ModelFPA:
		labels = FPALabels
	}
	for _, t := range labels {
		if t.Key == key {
			return t.Label
		}
	}
	return key
}

// buildTraits normalizes one trait per label entry via share-of-maximum.
func buildTraits(bank *model.QuestionBank, scores model.RawScores, labels []model.TraitScore, defaultPercent int) []model.TraitScore {
	traits := make([]model.TraitScore, len(labels))
	for i, label := range labels {
		score := scores[label.Key]
		max := TheoreticalMax(bank, label.Key)
		traits[i] = model.TraitScore{
			Key:     label.Key,
			Label:   label.Label,
			Score:   score,
			Percent: ShareOfMax(score, max, defaultPercent),
		}
	}
	return traits
}

type bigFiveScorer struct{}

func (bigFiveScorer) Model() model.Model { return model.ModelBigFive }

func (bigFiveScorer) Score(bank *model.QuestionBank, answers model.AnswerSet) *model.Result {
	scores, answered := Accumulate(bank, answers)
	result := newResult(bank, answered)
	result.BigFive = &model.BigFiveResult{
		Traits: buildTraits(bank, scores, BigFiveLabels, 50),
	}
	return result
}
