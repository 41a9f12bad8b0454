// Package model defines shared data structures.
package model

import "time"

// Model identifies a supported personality model.
type Model string

// Supported personality models. Eysenck banks validate but have no
// scoring path yet; submitting one reports the model as not available.
const (
	ModelMBTI      Model = "MBTI"
	ModelBigFive   Model = "BigFive"
	ModelEnneagram Model = "Enneagram"
	ModelEysenck   Model = "Eysenck"
	ModelFPA       Model = "FPA"
)

// KnownModels lists every model accepted by the validator, in a stable order.
var KnownModels = []Model{ModelMBTI, ModelBigFive, ModelEnneagram, ModelEysenck, ModelFPA}

// RequiredDimensions returns the dimension keys a bank must declare for
// the model. The returned slice is a fresh copy in canonical order.
func RequiredDimensions(m Model) []string {
	switch m {
	case ModelMBTI:
		return []string{"E", "I", "S", "N", "T", "F", "J", "P"}
	case ModelBigFive:
		return []string{"O", "C", "E", "A", "N"}
	case ModelEnneagram:
		return []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	case ModelEysenck:
		return []string{"E", "N", "P", "L"}
	case ModelFPA:
		return []string{"R", "Y", "B", "G"}
	default:
		return nil
	}
}

// MBTIExtendedDimensions lists the optional identity dimension keys an
// MBTI bank may declare beyond the required eight. They form the
// A/Turb (assertive vs turbulent) and H/C (harmony vs composure)
// opposed pairs behind the 6-letter display type.
var MBTIExtendedDimensions = []string{"A", "Turb", "H", "C"}

// Metadata describes a question bank.
type Metadata struct {
	Title    string `json:"title"`
	Version  string `json:"version"`
	Language string `json:"language"`
	Model    Model  `json:"model"`
}

// Choice is one selectable answer with per-dimension weights. Weights is
// densely populated over the bank's dimension set after validation.
type Choice struct {
	Label   string             `json:"label"`
	Weights map[string]float64 `json:"weights"`
}

// Question is a single-choice prompt. ID is unique within the bank.
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Choices []Choice `json:"choices"`
}

// QuestionBank is a validated, immutable question bank. It is created
// once per load and never mutated; replacing it resets all downstream
// answer and result state.
type QuestionBank struct {
	Metadata       Metadata          `json:"metadata"`
	Dimensions     []string          `json:"dimensions"`
	Questions      []Question        `json:"questions"`
	Interpretation map[string]string `json:"interpretations,omitempty"`
}

// QuestionByID looks up a question by its id.
func (b *QuestionBank) QuestionByID(id string) (Question, bool) {
	for _, q := range b.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// AnswerSet maps question id to the selected 0-based choice index.
type AnswerSet map[string]int

// RawScores maps every known dimension key to its accumulated score.
// It is always fully populated with zero defaults, never partial.
type RawScores map[string]float64

// PairScore holds both sides of an opposed dimension pair. LeftPercent
// and RightPercent always sum to 100 by construction.
type PairScore struct {
	PairKey      string  `json:"pairKey"`
	LeftKey      string  `json:"leftKey"`
	RightKey     string  `json:"rightKey"`
	LeftLabel    string  `json:"leftLabel"`
	RightLabel   string  `json:"rightLabel"`
	LeftScore    float64 `json:"leftScore"`
	RightScore   float64 `json:"rightScore"`
	LeftPercent  int     `json:"leftPercent"`
	RightPercent int     `json:"rightPercent"`
}

// TraitScore holds one independently normalized trait. Percentages
// across traits need not sum to any fixed total.
type TraitScore struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Score   float64 `json:"score"`
	Percent int     `json:"percent"`
}

// MBTIResult carries MBTI classification fields. Type is always the
// 4-letter code used for interpretation lookup; DisplayType may carry
// two extension letters when the bank probes the extended pairs.
type MBTIResult struct {
	Type        string      `json:"type"`
	DisplayType string      `json:"displayType"`
	Pairs       []PairScore `json:"pairs"`
}

// BigFiveResult carries the five trait scores in declaration order.
type BigFiveResult struct {
	Traits []TraitScore `json:"traits"`
}

// EnneagramResult carries the main type, optional wing, and all nine
// trait scores sorted by percent descending.
type EnneagramResult struct {
	MainType string       `json:"mainType"`
	Wing     string       `json:"wing,omitempty"`
	Traits   []TraitScore `json:"traits"`
}

// FPAResult carries the dominant and secondary colors with all four
// trait scores sorted by percent descending.
type FPAResult struct {
	Dominant  string       `json:"dominant"`
	Secondary string       `json:"secondary"`
	Traits    []TraitScore `json:"traits"`
}

// Result is the immutable snapshot produced at submission time. Exactly
// one of the model-specific variants is set, matching Model. Placeholder
// results reconstructed from a share link carry percentages only.
type Result struct {
	Model          Model            `json:"model"`
	MBTI           *MBTIResult      `json:"mbti,omitempty"`
	BigFive        *BigFiveResult   `json:"bigFive,omitempty"`
	Enneagram      *EnneagramResult `json:"enneagram,omitempty"`
	FPA            *FPAResult       `json:"fpa,omitempty"`
	AnsweredCount  int              `json:"answeredCount"`
	TotalQuestions int              `json:"totalQuestions"`
	Bank           Metadata         `json:"bank"`
	Placeholder    bool             `json:"placeholder,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// Classification returns the interpretation lookup key for the result:
// the MBTI 4-letter type, the Enneagram main type, or the FPA dominant
// color. Big Five has no discrete classification and returns "".
func (r *Result) Classification() string {
	switch {
	case r.MBTI != nil:
		return r.MBTI.Type
	case r.Enneagram != nil:
		return r.Enneagram.MainType
	case r.FPA != nil:
		return r.FPA.Dominant
	default:
		return ""
	}
}
