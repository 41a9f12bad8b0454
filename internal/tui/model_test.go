package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/persona-tui/persona/internal/model"
	"github.com/persona-tui/persona/internal/session"
)

func testSession(t *testing.T) *session.Session {
	t.Helper()
	dims := model.RequiredDimensions(model.ModelMBTI)
	bank := &model.QuestionBank{
		Metadata: model.Metadata{
			Title:    "MBTI Quick Test",
			Version:  "1.0",
			Language: "en",
			Model:    model.ModelMBTI,
		},
		Dimensions: dims,
	}
	for _, id := range []string{"q1", "q2", "q3"} {
		e := map[string]float64{"E": 1}
		i := map[string]float64{"I": 1}
		bank.Questions = append(bank.Questions, model.Question{
			ID:   id,
			Text: "Question " + id,
			Choices: []model.Choice{
				{Label: "Go out", Weights: e},
				{Label: "Stay in", Weights: i},
			},
		})
	}
	sess := session.New()
	sess.SetBank(bank)
	return sess
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m *Model, keys ...string) *Model {
	for _, key := range keys {
		next, _ := m.Update(keyMsg(key))
		m = next.(*Model)
	}
	return m
}

func TestDigitSelectionAdvances(t *testing.T) {
	m := NewModel(testSession(t), "")
	m = press(m, "1")

	if m.index != 1 {
		t.Fatalf("expected index 1 after answering, got %d", m.index)
	}
	if got := m.sess.AnsweredCount(); got != 1 {
		t.Fatalf("expected 1 answered, got %d", got)
	}
}

func TestCursorSelection(t *testing.T) {
	m := NewModel(testSession(t), "")
	m = press(m, "j", "enter")

	answers := m.sess.Answers()
	if answers["q1"] != 1 {
		t.Fatalf("expected choice 1 for q1, got %d", answers["q1"])
	}
}

func TestOutOfRangeDigitIgnored(t *testing.T) {
	m := NewModel(testSession(t), "")
	m = press(m, "9")

	if m.index != 0 {
		t.Fatalf("expected to stay on question 1, got index %d", m.index)
	}
	if got := m.sess.AnsweredCount(); got != 0 {
		t.Fatalf("expected 0 answered, got %d", got)
	}
}

func TestPrematureSubmitShowsDeficit(t *testing.T) {
	m := NewModel(testSession(t), "")
	m = press(m, "1", "s")

	if m.done {
		t.Fatal("submission must not complete with unanswered questions")
	}
	if m.notice != "2 questions remaining" {
		t.Fatalf("unexpected notice %q", m.notice)
	}
	// The UI jumps to the first unanswered question.
	if m.index != 1 {
		t.Fatalf("expected index 1, got %d", m.index)
	}
}

func TestAnsweringLastQuestionSubmits(t *testing.T) {
	m := NewModel(testSession(t), "https://example.com/r")
	m = press(m, "1", "1", "1")

	if !m.done {
		t.Fatal("expected done state after final answer")
	}
	result := m.Result()
	if result == nil || result.MBTI == nil {
		t.Fatal("expected an MBTI result")
	}
	if result.MBTI.Type != "ESTJ" {
		t.Fatalf("unexpected type %s", result.MBTI.Type)
	}
}

func TestRetakeResetsAnswers(t *testing.T) {
	m := NewModel(testSession(t), "")
	m = press(m, "1", "1", "1", "r")

	if m.done {
		t.Fatal("expected answering state after retake")
	}
	if got := m.sess.AnsweredCount(); got != 0 {
		t.Fatalf("expected 0 answered after retake, got %d", got)
	}
	if m.index != 0 {
		t.Fatalf("expected index 0 after retake, got %d", m.index)
	}
}

func TestFooterContents(t *testing.T) {
	m := NewModel(testSession(t), "")
	m = press(m, "2")

	footer := m.renderFooter()
	for _, want := range []string{"Question 2/3", "Answered 1/3"} {
		if !strings.Contains(footer, want) {
			t.Fatalf("footer missing %q: %q", want, footer)
		}
	}
}

func TestViewAnswering(t *testing.T) {
	m := NewModel(testSession(t), "")
	view := m.View()

	for _, want := range []string{"MBTI Quick Test", "Question q1", "1. Go out", "2. Stay in"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestDoneViewHasShareLink(t *testing.T) {
	m := NewModel(testSession(t), "https://example.com/r")
	m = press(m, "1", "1", "1")

	content := m.resultContent(80)
	if !strings.Contains(content, "Share: https://example.com/r?") {
		t.Fatalf("missing share link:\n%s", content)
	}
	if !strings.Contains(content, "model=MBTI") {
		t.Fatalf("share link missing model parameter:\n%s", content)
	}
}
