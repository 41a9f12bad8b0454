// Package session owns the in-memory assessment state: the loaded bank,
// the collected answers, and the submitted result.
package session

import (
	"errors"
	"fmt"

	"github.com/persona-tui/persona/internal/model"
	"github.com/persona-tui/persona/internal/scoring"
)

// ErrNoBank is returned when an operation needs a loaded question bank.
var ErrNoBank = errors.New("no question bank loaded")

// ErrUnknownQuestion is returned for an answer against a question id
// the bank does not contain.
var ErrUnknownQuestion = errors.New("unknown question id")

// ErrChoiceOutOfRange is returned for a selected choice index outside
// the question's choice list.
var ErrChoiceOutOfRange = errors.New("choice index out of range")

// IncompleteError reports a submission attempted before every question
// was answered. It carries the exact deficit.
type IncompleteError struct {
	Remaining int
}

func (e *IncompleteError) Error() string {
	if e.Remaining == 1 {
		return "1 question remaining"
	}
	return fmt.Sprintf("%d questions remaining", e.Remaining)
}

// Session is the single-writer owner of assessment state. Scoring never
// reads anything but the current (bank, answers) snapshot, so there is
// no staleness to coordinate around.
type Session struct {
	bank    *model.QuestionBank
	answers model.AnswerSet
	result  *model.Result
}

// New creates an empty session.
func New() *Session {
	return &Session{answers: model.AnswerSet{}}
}

// SetBank replaces the question bank and atomically discards all
// answers and any prior result. Answers from one bank are never scored
// against another bank's dimension set.
func (s *Session) SetBank(bank *model.QuestionBank) {
	s.bank = bank
	s.answers = model.AnswerSet{}
	s.result = nil
}

// Bank returns the current bank, or nil when none is loaded.
func (s *Session) Bank() *model.QuestionBank {
	return s.bank
}

// Answer records a choice for a question. The question must exist and
// the index must address one of its choices.
func (s *Session) Answer(questionID string, choice int) error {
	if s.bank == nil {
		return ErrNoBank
	}
	q, ok := s.bank.QuestionByID(questionID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
	}
	if choice < 0 || choice >= len(q.Choices) {
		return fmt.Errorf("%w: question %q choice %d", ErrChoiceOutOfRange, questionID, choice)
	}
	s.answers[questionID] = choice
	return nil
}

// ClearAnswer removes a recorded choice.
func (s *Session) ClearAnswer(questionID string) {
	delete(s.answers, questionID)
}

// Answers returns a copy of the recorded answers.
func (s *Session) Answers() model.AnswerSet {
	out := make(model.AnswerSet, len(s.answers))
	for id, idx := range s.answers {
		out[id] = idx
	}
	return out
}

// AnsweredCount returns the number of questions with a valid recorded
// choice, the authoritative completion signal.
func (s *Session) AnsweredCount() int {
	if s.bank == nil {
		return 0
	}
	_, answered := scoring.Accumulate(s.bank, s.answers)
	return answered
}

// Remaining returns how many questions are still unanswered.
func (s *Session) Remaining() int {
	if s.bank == nil {
		return 0
	}
	return len(s.bank.Questions) - s.AnsweredCount()
}

// Result returns the last submitted result, or nil.
func (s *Session) Result() *model.Result {
	return s.result
}

// Reset discards answers and result but keeps the bank loaded.
func (s *Session) Reset() {
	s.answers = model.AnswerSet{}
	s.result = nil
}

// Submit gates on completion and model availability, then runs the pure
// scoring pipeline and stores the result snapshot. On any error the
// existing result is left untouched.
func (s *Session) Submit() (*model.Result, error) {
	if s.bank == nil {
		return nil, ErrNoBank
	}
	scorer, err := scoring.ForModel(s.bank.Metadata.Model)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, s.bank.Metadata.Model)
	}
	if remaining := s.Remaining(); remaining > 0 {
		return nil, &IncompleteError{Remaining: remaining}
	}
	s.result = scorer.Score(s.bank, s.answers)
	return s.result, nil
}
