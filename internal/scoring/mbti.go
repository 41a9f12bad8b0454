package scoring

import (
	"strings"

	"github.com/persona-tui/persona/internal/model"
)

type PairDef struct {
	Key         string
	Left, Right string
	LeftLetter  string
	RightLetter string
	LeftLabel   string
	RightLabel  string
}

// MBTICorePairs fixes the four opposed dichotomies in classification
// order. The left side of each pair is the tie-break default.
var MBTICorePairs = []PairDef{
	{"EI", "E", "I", "E", "I", "Extraverted", "Introverted"},
	{"SN", "S", "N", "S", "N", "Sensing", "Intuitive"},
	{"TF", "T", "F", "T", "F", "Thinking", "Feeling"},
	{"JP", "J", "P", "J", "P", "Judging", "Perceiving"},
}

// MBTIExtendedPairs fixes the optional identity pairs behind the
// 6-letter display type.
var MBTIExtendedPairs = []PairDef{
	{"AT", "A", "Turb", "A", "T", "Assertive", "Turbulent"},
	{"HC", "H", "C", "H", "C", "Harmony", "Composure"},
}

type mbtiScorer struct{}

func (mbtiScorer) Model() model.Model { return model.ModelMBTI }

func (mbtiScorer) Score(bank *model.QuestionBank, answers model.AnswerSet) *model.Result {
	scores, answered := Accumulate(bank, answers)

	pairs := make([]model.PairScore, 0, len(MBTICorePairs)+len(MBTIExtendedPairs))
	var base strings.Builder
	for _, def := range MBTICorePairs {
		ps := buildPairScore(def, scores)
		pairs = append(pairs, ps)
		base.WriteString(winningLetter(def, ps))
	}

	display := base.String()
	if hasExtendedDimensions(bank) {
		extLetters, probed := classifyExtended(scores, &pairs)
		if probed {
			display += extLetters
		}
	}

	result := newResult(bank, answered)
	result.MBTI = &model.MBTIResult{
		Type:        base.String(),
		DisplayType: display,
		Pairs:       pairs,
	}
	return result
}

func buildPairScore(def PairDef, scores model.RawScores) model.PairScore {
	left := scores[def.Left]
	right := scores[def.Right]
	leftPct, rightPct := PairPercents(left, right)
	return model.PairScore{
		PairKey:      def.Key,
		LeftKey:      def.Left,
		RightKey:     def.Right,
		LeftLabel:    def.LeftLabel,
		RightLabel:   def.RightLabel,
		LeftScore:    left,
		RightScore:   right,
		LeftPercent:  leftPct,
		RightPercent: rightPct,
	}
}

// winningLetter applies the majority rule: the side with the
// greater-or-equal raw score wins, so an undiscriminated pair resolves
// to the left letter by convention.
func winningLetter(def PairDef, ps model.PairScore) string {
	if ps.LeftScore >= ps.RightScore {
		return def.LeftLetter
	}
	return def.RightLetter
}

func hasExtendedDimensions(bank *model.QuestionBank) bool {
	declared := make(map[string]bool, len(bank.Dimensions))
	for _, key := range bank.Dimensions {
		declared[key] = true
	}
	for _, key := range model.MBTIExtendedDimensions {
		if !declared[key] {
			return false
		}
	}
	return true
}

// classifyExtended appends the extended pair scores and returns the two
// extension letters. The letters only extend the display type when both
// extended pairs were actually probed by the bank's questions, meaning
// each has a non-zero combined score.
func classifyExtended(scores model.RawScores, pairs *[]model.PairScore) (string, bool) {
	var letters strings.Builder
	probed := true
	for _, def := range MBTIExtendedPairs {
		ps := buildPairScore(def, scores)
		*pairs = append(*pairs, ps)
		if ps.LeftScore+ps.RightScore <= 0 {
			probed = false
		}
		letters.WriteString(winningLetter(def, ps))
	}
	return letters.String(), probed
}
