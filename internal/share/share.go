// Package share encodes results as URL query parameters and rebuilds
// placeholder results from them.
package share

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/persona-tui/persona/internal/model"
	"github.com/persona-tui/persona/internal/scoring"
)

const modelParam = "model"

// ErrUnknownModel is returned when the encoded state names no model
// with a scoring path.
var ErrUnknownModel = fmt.Errorf("share state: unknown or unsupported model")

// Encode serializes a result's percentages as named query parameters,
// one per pair side or trait. Integer percents in [0,100] round-trip
// exactly through Decode.
func Encode(result *model.Result) url.Values {
	values := url.Values{}
	values.Set(modelParam, string(result.Model))
	switch {
	case result.MBTI != nil:
		for _, ps := range result.MBTI.Pairs {
			values.Set(paramFor(ps.LeftKey), strconv.Itoa(ps.LeftPercent))
			values.Set(paramFor(ps.RightKey), strconv.Itoa(ps.RightPercent))
		}
	case result.BigFive != nil:
		encodeTraits(values, result.BigFive.Traits)
	case result.Enneagram != nil:
		encodeTraits(values, result.Enneagram.Traits)
	case result.FPA != nil:
		encodeTraits(values, result.FPA.Traits)
	}
	return values
}

// EncodeURL appends the encoded state to a base URL.
func EncodeURL(base string, result *model.Result) string {
	query := Encode(result).Encode()
	if base == "" {
		return query
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + query
}

// Decode rebuilds a placeholder result from encoded state. Partial
// presence is tolerated: an absent pair side is filled from its
// complement, a fully absent pair is a neutral 50/50, and absent traits
// default to 0%. Unparseable or non-finite values degrade to the same
// defaults; out-of-range finite values clamp into [0,100]. Only a
// missing or unsupported model is an error.
func Decode(values url.Values) (*model.Result, error) {
	m := model.Model(values.Get(modelParam))
	if _, err := scoring.ForModel(m); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, values.Get(modelParam))
	}

	result := &model.Result{
		Model:       m,
		Placeholder: true,
		CreatedAt:   time.Now(),
	}
	switch m {
	case model.ModelMBTI:
		result.MBTI = decodeMBTI(values)
	case model.ModelBigFive:
		result.BigFive = &model.BigFiveResult{Traits: decodeTraits(values, scoring.BigFiveLabels)}
	case model.ModelEnneagram:
		traits := decodeTraits(values, scoring.EnneagramLabels)
		sorted := scoring.SortTraitsByPercent(traits)
		result.Enneagram = &model.EnneagramResult{
			MainType: sorted[0].Key,
			Wing:     scoring.EnneagramWing(traits, sorted[0].Key),
			Traits:   sorted,
		}
	case model.ModelFPA:
		traits := decodeTraits(values, scoring.FPALabels)
		sorted := scoring.SortTraitsByPercent(traits)
		result.FPA = &model.FPAResult{
			Dominant:  sorted[0].Key,
			Secondary: sorted[1].Key,
			Traits:    sorted,
		}
	}
	return result, nil
}

// DecodeString accepts either a full URL or a bare query string.
func DecodeString(raw string) (*model.Result, error) {
	query := raw
	if u, err := url.Parse(raw); err == nil && u.RawQuery != "" {
		query = u.RawQuery
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return nil, fmt.Errorf("share state: malformed query: %w", err)
	}
	return Decode(values)
}

func paramFor(key string) string {
	return "p_" + strings.ToLower(key)
}

func encodeTraits(values url.Values, traits []model.TraitScore) {
	for _, t := range traits {
		values.Set(paramFor(t.Key), strconv.Itoa(t.Percent))
	}
}

func decodeMBTI(values url.Values) *model.MBTIResult {
	pairs := make([]model.PairScore, 0, len(scoring.MBTICorePairs)+len(scoring.MBTIExtendedPairs))
	var base, ext strings.Builder
	for _, def := range scoring.MBTICorePairs {
		ps := decodePair(values, def)
		pairs = append(pairs, ps)
		if ps.LeftPercent >= ps.RightPercent {
			base.WriteString(def.LeftLetter)
		} else {
			base.WriteString(def.RightLetter)
		}
	}
	extProbed := true
	for _, def := range scoring.MBTIExtendedPairs {
		if !values.Has(paramFor(def.Left)) && !values.Has(paramFor(def.Right)) {
			extProbed = false
			break
		}
		ps := decodePair(values, def)
		pairs = append(pairs, ps)
		if ps.LeftPercent >= ps.RightPercent {
			ext.WriteString(def.LeftLetter)
		} else {
			ext.WriteString(def.RightLetter)
		}
	}
	display := base.String()
	if extProbed {
		display += ext.String()
	}
	return &model.MBTIResult{
		Type:        base.String(),
		DisplayType: display,
		Pairs:       pairs,
	}
}

// decodePair fills an opposed pair from whichever side is present,
// deriving the other as its complement.
func decodePair(values url.Values, def scoring.PairDef) model.PairScore {
	left, leftOK := parsePercent(values, paramFor(def.Left))
	right, rightOK := parsePercent(values, paramFor(def.Right))
	switch {
	case leftOK:
		right = 100 - left
	case rightOK:
		left = 100 - right
	default:
		left, right = 50, 50
	}
	return model.PairScore{
		PairKey:      def.Key,
		LeftKey:      def.Left,
		RightKey:     def.Right,
		LeftLabel:    def.LeftLabel,
		RightLabel:   def.RightLabel,
		LeftPercent:  left,
		RightPercent: right,
	}
}

func decodeTraits(values url.Values, labels []model.TraitScore) []model.TraitScore {
	traits := make([]model.TraitScore, len(labels))
	for i, label := range labels {
		pct, ok := parsePercent(values, paramFor(label.Key))
		if !ok {
			pct = 0
		}
		traits[i] = model.TraitScore{Key: label.Key, Label: label.Label, Percent: pct}
	}
	return traits
}

// parsePercent reads one percent parameter. Absent, unparseable, and
// non-finite values report !ok; finite values clamp into [0,100].
func parsePercent(values url.Values, name string) (int, bool) {
	if !values.Has(name) {
		return 0, false
	}
	f, err := strconv.ParseFloat(values.Get(name), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f < 0 {
		f = 0
	}
	if f > 100 {
		f = 100
	}
	return int(math.Round(f)), true
}
