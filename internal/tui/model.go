// Package tui provides the Bubble Tea assessment interface.
package tui

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/persona-tui/persona/internal/model"
	"github.com/persona-tui/persona/internal/report"
	"github.com/persona-tui/persona/internal/session"
	"github.com/persona-tui/persona/internal/share"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	choiceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Model implements the Bubble Tea assessment UI.
type Model struct {
	sess      *session.Session
	shareBase string

	width  int
	height int

	index  int
	cursor int
	notice string

	done     bool
	result   *model.Result
	viewport viewport.Model
	vpReady  bool
}

// NewModel constructs an assessment TUI model over a session with a
// loaded bank.
func NewModel(sess *session.Session, shareBase string) *Model {
	m := &Model{sess: sess, shareBase: shareBase}
	m.syncCursor()
	return m
}

// Result returns the submitted result, or nil when the user quit early.
func (m *Model) Result() *model.Result {
	return m.result
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.done {
			m.layoutViewport()
		}
		return m, nil
	case tea.KeyMsg:
		if m.done {
			return m.updateDone(msg)
		}
		return m.updateAnswering(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateAnswering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	question := m.currentQuestion()
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(question.Choices)-1 {
			m.cursor++
		}
	case "left", "h":
		m.gotoQuestion(m.index - 1)
	case "right", "l":
		m.gotoQuestion(m.index + 1)
	case "enter", " ":
		m.selectChoice(m.cursor)
	case "s":
		m.submit()
	default:
		if n, err := digitKey(msg.String()); err == nil && n < len(question.Choices) {
			m.selectChoice(n)
		}
	}
	return m, nil
}

func (m *Model) updateDone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "r":
		m.sess.Reset()
		m.done = false
		m.result = nil
		m.notice = ""
		m.index = 0
		m.syncCursor()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func digitKey(s string) (int, error) {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, errors.New("not a digit key")
	}
	return int(s[0] - '1'), nil
}

func (m *Model) currentQuestion() model.Question {
	return m.sess.Bank().Questions[m.index]
}

// selectChoice records the answer and advances. Selecting on the last
// question attempts submission.
func (m *Model) selectChoice(choice int) {
	question := m.currentQuestion()
	if err := m.sess.Answer(question.ID, choice); err != nil {
		m.notice = err.Error()
		return
	}
	m.notice = ""
	if m.index == len(m.sess.Bank().Questions)-1 {
		m.submit()
		return
	}
	m.gotoQuestion(m.index + 1)
}

func (m *Model) gotoQuestion(index int) {
	total := len(m.sess.Bank().Questions)
	if index < 0 || index >= total {
		return
	}
	m.index = index
	m.syncCursor()
}

// syncCursor moves the highlight to the recorded answer, if any.
func (m *Model) syncCursor() {
	m.cursor = 0
	if m.sess.Bank() == nil {
		return
	}
	question := m.currentQuestion()
	if idx, ok := m.sess.Answers()[question.ID]; ok {
		m.cursor = idx
	}
}

// submit gates on completion; an incomplete attempt jumps to the first
// unanswered question and reports the deficit instead of classifying.
func (m *Model) submit() {
	result, err := m.sess.Submit()
	if err != nil {
		var incomplete *session.IncompleteError
		if errors.As(err, &incomplete) {
			m.notice = incomplete.Error()
			m.gotoFirstUnanswered()
			return
		}
		m.notice = err.Error()
		return
	}
	m.result = result
	m.done = true
	m.layoutViewport()
}

func (m *Model) gotoFirstUnanswered() {
	answers := m.sess.Answers()
	for i, q := range m.sess.Bank().Questions {
		idx, ok := answers[q.ID]
		if !ok || idx < 0 || idx >= len(q.Choices) {
			m.gotoQuestion(i)
			return
		}
	}
}

func (m *Model) layoutViewport() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	height := m.height - 2
	if height < 3 {
		height = 3
	}
	if !m.vpReady {
		m.viewport = viewport.New(width, height)
		m.vpReady = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = height
	}
	m.viewport.SetContent(m.resultContent(width))
}

func (m *Model) resultContent(width int) string {
	var buf bytes.Buffer
	if err := report.Render(&buf, m.result, width); err != nil {
		return fmt.Sprintf("failed to render result: %v", err)
	}
	if bank := m.sess.Bank(); bank != nil {
		if err := report.RenderInterpretation(&buf, m.result, bank.Interpretation); err != nil {
			return fmt.Sprintf("failed to render interpretation: %v", err)
		}
	}
	fmt.Fprintf(&buf, "\nShare: %s\n", share.EncodeURL(m.shareBase, m.result))
	return buf.String()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.sess.Bank() == nil {
		return ""
	}
	if m.done {
		return m.viewDone()
	}
	return m.viewAnswering()
}

func (m *Model) viewAnswering() string {
	bank := m.sess.Bank()
	question := m.currentQuestion()
	answers := m.sess.Answers()
	selected, hasSelected := answers[question.ID]

	var b strings.Builder
	b.WriteString(titleStyle.Render(bank.Metadata.Title))
	b.WriteString("\n\n")
	b.WriteString(questionStyle.Render(question.Text))
	b.WriteString("\n\n")
	for i, choice := range question.Choices {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		label := fmt.Sprintf("%d. %s", i+1, choice.Label)
		style := choiceStyle
		if hasSelected && i == selected {
			style = selectedStyle
			label += " *"
		}
		b.WriteString(marker + style.Render(label) + "\n")
	}

	content := b.String()
	if m.width > 0 {
		contentWidth := int(float64(m.width) * 0.70)
		if contentWidth < 20 {
			contentWidth = 20
		}
		content = lipgloss.NewStyle().Width(contentWidth).Render(content)
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) viewDone() string {
	footer := footerStyle.Render("↑/↓ scroll · r retake · q quit")
	return m.viewport.View() + "\n" + footer
}

func (m *Model) renderFooter() string {
	total := len(m.sess.Bank().Questions)
	segments := []string{
		fmt.Sprintf("Question %d/%d", m.index+1, total),
		fmt.Sprintf("Answered %d/%d", m.sess.AnsweredCount(), total),
		"enter select · s submit · q quit",
	}
	footer := footerStyle.Render(strings.Join(segments, "  "))
	if m.notice != "" {
		footer += "  " + noticeStyle.Render(m.notice)
	}
	return footer
}
