package cmd

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/escuchalab/escucha/internal/exercise"
	"github.com/escuchalab/escucha/internal/lesson"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F97316"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94A3B8")).
			Italic(true)

	speakerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#14B8A6"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8B5CF6"))

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22C55E"))
)

// renderPlan produces the full terminal view of a lesson.
func renderPlan(plan *lesson.Plan) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(plan.Title))
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(fmt.Sprintf("%s · %s · ambience: %s", plan.Level, plan.Mode, plan.Ambience)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Diálogo"))
	b.WriteString("\n")
	for _, line := range plan.Dialogue {
		if line.Speaker != "" {
			b.WriteString(speakerStyle.Render(line.Speaker + ":"))
			b.WriteString(" ")
		}
		b.WriteString(line.Text)
		if line.Emotion != "" && line.Emotion != "neutral" {
			b.WriteString(metaStyle.Render(" (" + line.Emotion + ")"))
		}
		b.WriteString("\n")
	}

	renderCategory(&b, "Comprensión", plan.Exercises.Comprehension)
	renderCategory(&b, "Vocabulario", plan.Exercises.Vocabulary)

	if len(plan.Vocabulary) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Glosario"))
		b.WriteString("\n")
		for _, v := range plan.Vocabulary {
			b.WriteString(fmt.Sprintf("  %s — %s\n", v.Term, v.Translation))
		}
	}

	return b.String()
}

func renderCategory(b *strings.Builder, heading string, list []exercise.Exercise) {
	if len(list) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render(heading))
	b.WriteString("\n")
	for i, ex := range list {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, ex.Question()))
		renderExercise(b, ex)
	}
}

func renderExercise(b *strings.Builder, ex exercise.Exercise) {
	switch e := ex.(type) {
	case *exercise.MultipleChoice:
		correct := map[string]bool{}
		for _, id := range e.Answer {
			correct[id] = true
		}
		for _, opt := range e.Options {
			mark := "  "
			if correct[opt.ID] {
				mark = answerStyle.Render("✓ ")
			}
			b.WriteString(fmt.Sprintf("   %s%s\n", mark, opt.Text))
		}

	case *exercise.TrueFalse:
		if e.Simple() {
			b.WriteString("   " + answerStyle.Render(e.Answer) + "\n")
			return
		}
		for _, row := range e.Rows {
			b.WriteString(fmt.Sprintf("   %s → %s\n", row.Text, answerStyle.Render(e.RowAnswers[row.ID])))
		}

	case *exercise.Ordering:
		byID := optionTexts(e.Options)
		for i, id := range e.Answer {
			b.WriteString(fmt.Sprintf("   %d) %s\n", i+1, byID[id]))
		}

	case *exercise.Classification:
		cols := optionTexts(e.Columns)
		for _, row := range e.Rows {
			b.WriteString(fmt.Sprintf("   %s → %s\n", row.Text, answerStyle.Render(cols[e.Answer[row.ID]])))
		}

	case *exercise.Cloze:
		b.WriteString("   " + e.TextWithGaps + "\n")
		gaps := make([]string, 0, len(e.Answer))
		for gap := range e.Answer {
			gaps = append(gaps, gap)
		}
		sort.Strings(gaps)
		for _, gap := range gaps {
			opts := optionTexts(e.GapOptions[gap])
			b.WriteString(fmt.Sprintf("   %s: %s\n", gap, answerStyle.Render(opts[e.Answer[gap]])))
		}
	}
}

func optionTexts(opts []exercise.Option) map[string]string {
	m := make(map[string]string, len(opts))
	for _, o := range opts {
		m[o.ID] = o.Text
	}
	return m
}
