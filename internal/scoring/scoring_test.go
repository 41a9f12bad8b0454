package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/persona-tui/persona/internal/model"
)

// testBank builds a minimal validated-shape bank. Each question is a
// slice of choices; each choice is a weight map that gets densified
// over the model's dimension set.
func testBank(m model.Model, dims []string, questions ...[]map[string]float64) *model.QuestionBank {
	if dims == nil {
		dims = model.RequiredDimensions(m)
	}
	bank := &model.QuestionBank{
		Metadata: model.Metadata{
			Title:    "Test Bank",
			Version:  "1.0",
			Language: "en",
			Model:    m,
		},
		Dimensions: dims,
	}
	for i, choices := range questions {
		q := model.Question{ID: questionID(i), Text: "Question"}
		for _, weights := range choices {
			dense := make(map[string]float64, len(dims))
			for _, key := range dims {
				dense[key] = weights[key]
			}
			q.Choices = append(q.Choices, model.Choice{Label: "Choice", Weights: dense})
		}
		bank.Questions = append(bank.Questions, q)
	}
	return bank
}

func questionID(i int) string {
	return "q" + string(rune('1'+i))
}

// eiBank is a four-question bank that only discriminates E against I.
func eiBank() *model.QuestionBank {
	q := []map[string]float64{{"E": 1}, {"I": 1}}
	return testBank(model.ModelMBTI, nil, q, q, q, q)
}

func allE() model.AnswerSet {
	return model.AnswerSet{"q1": 0, "q2": 0, "q3": 0, "q4": 0}
}

func TestAccumulate(t *testing.T) {
	bank := eiBank()
	scores, answered := Accumulate(bank, allE())

	assert.Equal(t, 4, answered)
	assert.Equal(t, 4.0, scores["E"])
	assert.Equal(t, 0.0, scores["I"])
	// Every bank dimension is present, even when never weighted.
	for _, key := range bank.Dimensions {
		assert.Contains(t, scores, key)
	}
}

func TestAccumulateSkipsInvalidEntries(t *testing.T) {
	bank := eiBank()
	answers := model.AnswerSet{
		"q1":    0,
		"q2":    7,  // out of range
		"q3":    -1, // out of range
		"ghost": 0,  // unknown question
	}
	scores, answered := Accumulate(bank, answers)
	assert.Equal(t, 1, answered)
	assert.Equal(t, 1.0, scores["E"])
}

func TestAccumulateIsPure(t *testing.T) {
	bank := eiBank()
	answers := model.AnswerSet{"q1": 0, "q2": 1}
	first, _ := Accumulate(bank, answers)
	second, _ := Accumulate(bank, answers)
	assert.Equal(t, first, second)
}

func TestPairPercents(t *testing.T) {
	tests := []struct {
		name        string
		left, right float64
		wantLeft    int
	}{
		{"all left", 4, 0, 100},
		{"all right", 0, 4, 0},
		{"two thirds", 2, 1, 67},
		{"one third", 1, 2, 33},
		{"zero sum", 0, 0, 50},
		{"negative sum", -1, -2, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := PairPercents(tt.left, tt.right)
			assert.Equal(t, tt.wantLeft, left)
			assert.Equal(t, 100, left+right, "percents must be complementary")
		})
	}
}

func TestTheoreticalMax(t *testing.T) {
	bank := testBank(model.ModelBigFive, nil,
		[]map[string]float64{{"O": 0}, {"O": 3}},
		[]map[string]float64{{"O": 1}, {"O": 2}},
		[]map[string]float64{{"C": 5}, {"C": 1}},
	)
	assert.Equal(t, 5.0, TheoreticalMax(bank, "O"))
	assert.Equal(t, 5.0, TheoreticalMax(bank, "C"))
	assert.Equal(t, 0.0, TheoreticalMax(bank, "N"))
}

func TestShareOfMax(t *testing.T) {
	assert.Equal(t, 100, ShareOfMax(3, 3, 50))
	assert.Equal(t, 0, ShareOfMax(0, 3, 50))
	assert.Equal(t, 67, ShareOfMax(2, 3, 50))
	// Unreachable traits fall back to the model default.
	assert.Equal(t, 50, ShareOfMax(0, 0, 50))
	assert.Equal(t, 0, ShareOfMax(0, 0, 0))
}

func TestForModel(t *testing.T) {
	for _, m := range []model.Model{model.ModelMBTI, model.ModelBigFive, model.ModelEnneagram, model.ModelFPA} {
		s, err := ForModel(m)
		require.NoError(t, err, "model %s", m)
		assert.Equal(t, m, s.Model())
	}

	s, err := ForModel(model.ModelEysenck)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrModelNotAvailable)

	_, err = ForModel(model.Model("DISC"))
	assert.ErrorIs(t, err, ErrModelNotAvailable)
}

func TestScorePartialAnswersStillProducesResult(t *testing.T) {
	bank := eiBank()
	s, err := ForModel(model.ModelMBTI)
	require.NoError(t, err)

	result := s.Score(bank, model.AnswerSet{"q1": 0})
	assert.Equal(t, 1, result.AnsweredCount)
	assert.Equal(t, 4, result.TotalQuestions)
	require.NotNil(t, result.MBTI)
	assert.Len(t, result.MBTI.Type, 4)
}
