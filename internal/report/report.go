package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/persona-tui/persona/internal/model"
)

const (
	terminalWidthBackup = 80
	minBarWidth         = 10
	maxBarWidth         = 40
)

// TerminalWidth detects the terminal width, falling back to a fixed
// default when stdout is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// Render writes a plain-text report for a result: the classification
// header, then pair bars or a trait table depending on the model.
func Render(w io.Writer, result *model.Result, width int) error {
	if width <= 0 {
		width = terminalWidthBackup
	}
	if err := renderHeader(w, result); err != nil {
		return err
	}
	switch {
	case result.MBTI != nil:
		return renderPairs(w, result.MBTI.Pairs, width)
	case result.BigFive != nil:
		return renderTraits(w, result.BigFive.Traits, result.Placeholder)
	case result.Enneagram != nil:
		return renderTraits(w, result.Enneagram.Traits, result.Placeholder)
	case result.FPA != nil:
		return renderTraits(w, result.FPA.Traits, result.Placeholder)
	default:
		return nil
	}
}

func renderHeader(w io.Writer, result *model.Result) error {
	title := result.Bank.Title
	if title == "" {
		title = string(result.Model)
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	var line string
	switch {
	case result.MBTI != nil:
		line = fmt.Sprintf("Type: %s", result.MBTI.DisplayType)
	case result.Enneagram != nil:
		line = fmt.Sprintf("Type: %s (%s)", result.Enneagram.MainType, traitLabelFor(result.Enneagram.Traits, result.Enneagram.MainType))
		if result.Enneagram.Wing != "" {
			line += fmt.Sprintf(", wing %s", result.Enneagram.Wing)
		}
	case result.FPA != nil:
		line = fmt.Sprintf("Dominant: %s, secondary: %s",
			traitLabelFor(result.FPA.Traits, result.FPA.Dominant),
			traitLabelFor(result.FPA.Traits, result.FPA.Secondary))
	}
	if line != "" {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if result.Placeholder {
		if _, err := fmt.Fprintln(w, "Reconstructed from a shared link; percentages only."); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "Answered %d of %d questions\n", result.AnsweredCount, result.TotalQuestions); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderPairs(w io.Writer, pairs []model.PairScore, width int) error {
	labelWidth := 0
	for _, ps := range pairs {
		if n := displayWidth(ps.LeftLabel); n > labelWidth {
			labelWidth = n
		}
		if n := displayWidth(ps.RightLabel); n > labelWidth {
			labelWidth = n
		}
	}
	barWidth := width - 2*labelWidth - len(" 100% ")*2 - 2
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	if barWidth > maxBarWidth {
		barWidth = maxBarWidth
	}
	for _, ps := range pairs {
		line := fmt.Sprintf("%s %3d%% %s %3d%% %s",
			padCell(ps.LeftLabel, labelWidth, false),
			ps.LeftPercent,
			percentBar(ps.LeftPercent, barWidth),
			ps.RightPercent,
			ps.RightLabel,
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func renderTraits(w io.Writer, traits []model.TraitScore, placeholder bool) error {
	headers := []string{"Trait", "Percent", ""}
	rightAlign := map[int]bool{1: true}
	if !placeholder {
		headers = []string{"Trait", "Score", "Percent", ""}
		rightAlign = map[int]bool{1: true, 2: true}
	}
	rows := make([][]string, 0, len(traits))
	for _, t := range traits {
		bar := percentBar(t.Percent, 20)
		if placeholder {
			rows = append(rows, []string{t.Label, fmt.Sprintf("%d%%", t.Percent), bar})
		} else {
			rows = append(rows, []string{t.Label, fmt.Sprintf("%.1f", t.Score), fmt.Sprintf("%d%%", t.Percent), bar})
		}
	}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// percentBar fills a fixed-width bar proportionally to the percent.
func percentBar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// RenderInterpretation prints the interpretation text matching the
// result's classification, if the bank carries one.
func RenderInterpretation(w io.Writer, result *model.Result, interpretations map[string]string) error {
	key := result.Classification()
	if key == "" {
		return nil
	}
	text, ok := interpretations[key]
	if !ok {
		return nil
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

func traitLabelFor(traits []model.TraitScore, key string) string {
	for _, t := range traits {
		if t.Key == key {
			return t.Label
		}
	}
	return key
}
