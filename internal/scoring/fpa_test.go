package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/persona-tui/persona/internal/model"
)

func scoreFPA(t *testing.T, bank *model.QuestionBank, answers model.AnswerSet) *model.FPAResult {
	t.Helper()
	s, err := ForModel(model.ModelFPA)
	require.NoError(t, err)
	result := s.Score(bank, answers)
	require.NotNil(t, result.FPA)
	return result.FPA
}

func TestFPADominantAndSecondary(t *testing.T) {
	bank := testBank(model.ModelFPA, nil,
		[]map[string]float64{{"B": 2}, {"R": 2}},
		[]map[string]float64{{"B": 1}, {"G": 2}},
		[]map[string]float64{{"G": 1}, {"R": 1}},
	)
	got := scoreFPA(t, bank, model.AnswerSet{"q1": 0, "q2": 0, "q3": 0})

	assert.Equal(t, "B", got.Dominant)
	assert.Equal(t, "G", got.Secondary)
	require.Len(t, got.Traits, 4)
	assert.Equal(t, 100, got.Traits[0].Percent)
}

func TestFPATiesFollowColorOrder(t *testing.T) {
	// All four colors end up even; the fixed R, Y, B, G order decides.
	bank := testBank(model.ModelFPA, nil,
		[]map[string]float64{{"R": 1, "Y": 1, "B": 1, "G": 1}, {"R": 1, "Y": 1, "B": 1, "G": 1}},
	)
	got := scoreFPA(t, bank, model.AnswerSet{"q1": 0})

	assert.Equal(t, "R", got.Dominant)
	assert.Equal(t, "Y", got.Secondary)
}

func TestFPANoAnswers(t *testing.T) {
	bank := testBank(model.ModelFPA, nil,
		[]map[string]float64{{"R": 1}, {"B": 1}},
	)
	got := scoreFPA(t, bank, nil)

	// Zero signal everywhere still yields a defined, ordered ranking.
	assert.Equal(t, "R", got.Dominant)
	assert.Equal(t, "Y", got.Secondary)
	for _, trait := range got.Traits {
		assert.Equal(t, 0, trait.Percent, "color %s", trait.Key)
	}
}
