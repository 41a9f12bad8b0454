// Package bank validates and loads question banks.
package bank

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/persona-tui/persona/internal/model"
)

// ValidationError describes why a question bank was rejected. Field
// locates the offending entry, including the 1-based question or choice
// index where applicable.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid question bank: %s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Parse decodes raw JSON bytes and validates them into a QuestionBank.
func Parse(data []byte) (*model.QuestionBank, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, invalid("document", "not valid JSON: %v", err)
	}
	return Validate(raw)
}

// Validate checks an arbitrary JSON-decoded value against the question
// bank schema and returns a normalized QuestionBank. Malformed input is
// data, not exceptional: every rejection is a *ValidationError value
// naming the field that failed. The returned bank has its dimension set
// fixed to the model's canonical keys (plus any declared MBTI extension
// keys) and every choice's weight map densely populated.
func Validate(raw any) (*model.QuestionBank, error) {
	top, ok := raw.(map[string]any)
	if !ok {
		return nil, invalid("document", "top-level value must be an object")
	}

	meta, err := validateMetadata(top["metadata"])
	if err != nil {
		return nil, err
	}

	dims, err := validateDimensions(top["dimensions"], meta.Model)
	if err != nil {
		return nil, err
	}

	questions, err := validateQuestions(top["questions"], dims)
	if err != nil {
		return nil, err
	}

	return &model.QuestionBank{
		Metadata:       meta,
		Dimensions:     dims,
		Questions:      questions,
		Interpretation: extractInterpretations(top["interpretations"]),
	}, nil
}

func validateMetadata(raw any) (model.Metadata, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return model.Metadata{}, invalid("metadata", "must be an object")
	}
	var meta model.Metadata
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"title", &meta.Title},
		{"version", &meta.Version},
		{"language", &meta.Language},
	} {
		s, ok := obj[f.key].(string)
		if !ok {
			return model.Metadata{}, invalid("metadata."+f.key, "must be a string")
		}
		*f.dst = s
	}
	modelName, ok := obj["model"].(string)
	if !ok {
		return model.Metadata{}, invalid("metadata.model", "must be a string")
	}
	for _, known := range model.KnownModels {
		if model.Model(modelName) == known {
			meta.Model = known
			return meta, nil
		}
	}
	return model.Metadata{}, invalid("metadata.model", "unknown model %q", modelName)
}

// validateDimensions checks the declared dimensions cover the model's
// required set and returns the canonical set. Extra declared keys are
// dropped, except the MBTI extension keys which are preserved in their
// canonical order.
func validateDimensions(raw any, m model.Model) ([]string, error) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, invalid("dimensions", "must be an array")
	}
	declared := make(map[string]bool, len(arr))
	for i, v := range arr {
		s, ok := v.(string)
		if !ok {
			return nil, invalid(fmt.Sprintf("dimensions[%d]", i+1), "must be a string")
		}
		declared[s] = true
	}
	required := model.RequiredDimensions(m)
	for _, key := range required {
		if !declared[key] {
			return nil, invalid("dimensions", "missing required dimension %q for model %s", key, m)
		}
	}
	dims := required
	if m == model.ModelMBTI {
		for _, key := range model.MBTIExtendedDimensions {
			if declared[key] {
				dims = append(dims, key)
			}
		}
	}
	return dims, nil
}

func validateQuestions(raw any, dims []string) ([]model.Question, error) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, invalid("questions", "must be an array")
	}
	if len(arr) == 0 {
		return nil, invalid("questions", "must not be empty")
	}
	questions := make([]model.Question, 0, len(arr))
	seen := make(map[string]bool, len(arr))
	for i, v := range arr {
		field := fmt.Sprintf("questions[%d]", i+1)
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, invalid(field, "must be an object")
		}
		id, ok := obj["id"].(string)
		if !ok || id == "" {
			return nil, invalid(field+".id", "must be a non-empty string")
		}
		if seen[id] {
			return nil, invalid(field+".id", "duplicate question id %q", id)
		}
		seen[id] = true
		text, ok := obj["text"].(string)
		if !ok {
			return nil, invalid(field+".text", "must be a string (question %q)", id)
		}
		choices, err := validateChoices(obj["choices"], field, id, dims)
		if err != nil {
			return nil, err
		}
		questions = append(questions, model.Question{ID: id, Text: text, Choices: choices})
	}
	return questions, nil
}

func validateChoices(raw any, qField, qID string, dims []string) ([]model.Choice, error) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, invalid(qField+".choices", "must be an array (question %q)", qID)
	}
	if len(arr) < 2 {
		return nil, invalid(qField+".choices", "question %q must have at least 2 choices, got %d", qID, len(arr))
	}
	choices := make([]model.Choice, 0, len(arr))
	for i, v := range arr {
		field := fmt.Sprintf("%s.choices[%d]", qField, i+1)
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, invalid(field, "must be an object (question %q)", qID)
		}
		label, ok := obj["label"].(string)
		if !ok {
			return nil, invalid(field+".label", "must be a string (question %q)", qID)
		}
		weightsObj, ok := obj["weights"].(map[string]any)
		if !ok {
			return nil, invalid(field+".weights", "must be an object (question %q)", qID)
		}
		choices = append(choices, model.Choice{
			Label:   label,
			Weights: coerceWeights(weightsObj, dims),
		})
	}
	return choices, nil
}

// coerceWeights builds a dense weight map over the bank's dimension
// keys. Missing, non-numeric, and non-finite values become 0 so that
// NaN and infinities never reach the accumulator.
func coerceWeights(raw map[string]any, dims []string) map[string]float64 {
	weights := make(map[string]float64, len(dims))
	for _, key := range dims {
		weights[key] = 0
		num, ok := raw[key].(float64)
		if !ok {
			continue
		}
		if math.IsNaN(num) || math.IsInf(num, 0) {
			continue
		}
		weights[key] = num
	}
	return weights
}

// extractInterpretations keeps the string entries of the optional
// interpretations table. The content is opaque to scoring; entries with
// non-string values are ignored rather than rejected.
func extractInterpretations(raw any) map[string]string {
	obj, ok := raw.(map[string]any)
	if !ok || len(obj) == 0 {
		return nil
	}
	out := make(map[string]string, len(obj))
	for key, v := range obj {
		if s, ok := v.(string); ok {
			out[key] = s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
