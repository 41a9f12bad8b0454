package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/persona-tui/persona/internal/model"
)

// bigFiveBank has one question per trait with graded weights 0..3.
func bigFiveBank() *model.QuestionBank {
	graded := func(key string) []map[string]float64 {
		return []map[string]float64{{key: 0}, {key: 1}, {key: 2}, {key: 3}}
	}
	return testBank(model.ModelBigFive, nil,
		graded("O"), graded("C"), graded("E"), graded("A"), graded("N"))
}

func TestBigFiveShareOfMax(t *testing.T) {
	s, err := ForModel(model.ModelBigFive)
	require.NoError(t, err)

	// Strongest choice for O, weakest for everything else.
	result := s.Score(bigFiveBank(), model.AnswerSet{
		"q1": 3, "q2": 0, "q3": 0, "q4": 0, "q5": 0,
	})
	require.NotNil(t, result.BigFive)
	traits := result.BigFive.Traits
	require.Len(t, traits, 5)

	assert.Equal(t, "O", traits[0].Key)
	assert.Equal(t, "Openness", traits[0].Label)
	assert.Equal(t, 3.0, traits[0].Score)
	assert.Equal(t, 100, traits[0].Percent)
	for _, trait := range traits[1:] {
		assert.Equal(t, 0, trait.Percent, "trait %s", trait.Key)
	}
}

func TestBigFiveUnreachableTraitDefaultsToMidpoint(t *testing.T) {
	// Only O is ever weighted; the other four traits have no
	// theoretical maximum and sit at the neutral midpoint.
	bank := testBank(model.ModelBigFive, nil,
		[]map[string]float64{{"O": 1}, {"O": 2}},
	)
	s, err := ForModel(model.ModelBigFive)
	require.NoError(t, err)

	result := s.Score(bank, model.AnswerSet{"q1": 1})
	for _, trait := range result.BigFive.Traits {
		if trait.Key == "O" {
			assert.Equal(t, 100, trait.Percent)
			continue
		}
		assert.Equal(t, 50, trait.Percent, "trait %s", trait.Key)
	}
}

func TestBigFiveTraitsKeepDeclarationOrder(t *testing.T) {
	s, err := ForModel(model.ModelBigFive)
	require.NoError(t, err)
	result := s.Score(bigFiveBank(), nil)

	keys := make([]string, 0, 5)
	for _, trait := range result.BigFive.Traits {
		keys = append(keys, trait.Key)
	}
	assert.Equal(t, []string{"O", "C", "E", "A", "N"}, keys)
}

func TestTraitLabel(t *testing.T) {
	assert.Equal(t, "Neuroticism", TraitLabel(model.ModelBigFive, "N"))
	assert.Equal(t, "Peacemaker", TraitLabel(model.ModelEnneagram, "9"))
	assert.Equal(t, "Red", TraitLabel(model.ModelFPA, "R"))
	// Unknown keys fall back to the key itself.
	assert.Equal(t, "Z", TraitLabel(model.ModelFPA, "Z"))
}

func TestSortTraitsByPercentIsStable(t *testing.T) {
	traits := []model.TraitScore{
		{Key: "R", Percent: 40},
		{Key: "Y", Percent: 80},
		{Key: "B", Percent: 40},
		{Key: "G", Percent: 40},
	}
	sorted := SortTraitsByPercent(traits)

	assert.Equal(t, "Y", sorted[0].Key)
	assert.Equal(t, []string{"Y", "R", "B", "G"}, traitKeys(sorted))
	// The input slice is left untouched.
	assert.Equal(t, "R", traits[0].Key)
}

func traitKeys(traits []model.TraitScore) []string {
	keys := make([]string, len(traits))
	for i, t := range traits {
		keys[i] = t.Key
	}
	return keys
}
