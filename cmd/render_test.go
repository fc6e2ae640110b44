package cmd

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escuchalab/escucha/internal/exercise"
	"github.com/escuchalab/escucha/internal/lesson"
	"github.com/escuchalab/escucha/internal/transcript"
)

func testPlan() *lesson.Plan {
	return &lesson.Plan{
		ID:       "abc-123",
		Topic:    "en el mercado",
		Title:    "Una mañana en el mercado",
		Level:    lesson.LevelBeginner,
		Mode:     lesson.ModeStandard,
		Ambience: "market",
		Dialogue: []transcript.Line{
			{Speaker: "Ana", Text: "¿Cuánto cuestan los tomates?"},
			{Speaker: "Luis", Text: "Dos euros el kilo.", Emotion: "cheerful"},
		},
		Exercises: exercise.Set{
			Comprehension: []exercise.Exercise{
				&exercise.MultipleChoice{
					Prompt: "¿Dónde están?",
					Options: []exercise.Option{
						{ID: "a", Text: "En el mercado"},
						{ID: "b", Text: "En la escuela"},
					},
					Answer: []string{"a"},
				},
				&exercise.Classification{
					Prompt:  "¿Quién dijo cada frase?",
					Rows:    []exercise.Option{{ID: "row1", Text: "Dos euros el kilo."}},
					Columns: []exercise.Option{{ID: "speaker1", Text: "Ana"}, {ID: "speaker2", Text: "Luis"}},
					Answer:  map[string]string{"row1": "speaker2"},
				},
			},
			Vocabulary: []exercise.Exercise{
				&exercise.Cloze{
					Prompt:       "Completa el hueco.",
					TextWithGaps: "Dos euros el {{gap1}}.",
					GapOptions: map[string][]exercise.Option{
						"gap1": {{ID: "opt1", Text: "kilo"}, {ID: "opt2", Text: "litro"}},
					},
					Answer: map[string]string{"gap1": "opt1"},
				},
			},
		},
		Vocabulary: []lesson.VocabEntry{{Term: "tomate", Translation: "tomato"}},
	}
}

func TestRenderPlan(t *testing.T) {
	out := ansi.Strip(renderPlan(testPlan()))

	require.NotEmpty(t, out)
	assert.Contains(t, out, "Una mañana en el mercado")
	assert.Contains(t, out, "beginner")
	assert.Contains(t, out, "ambience: market")

	// Dialogue with speaker prefixes and the emotion hint.
	assert.Contains(t, out, "Ana:")
	assert.Contains(t, out, "¿Cuánto cuestan los tomates?")
	assert.Contains(t, out, "(cheerful)")

	// Exercise sections.
	assert.Contains(t, out, "Comprensión")
	assert.Contains(t, out, "Vocabulario")
	assert.Contains(t, out, "¿Dónde están?")
	assert.Contains(t, out, "Dos euros el {{gap1}}.")

	// Answers rendered by text, not id.
	assert.Contains(t, out, "En el mercado")
	assert.Contains(t, out, "Dos euros el kilo. → Luis")
	assert.Contains(t, out, "gap1: kilo")

	// Glossary.
	assert.Contains(t, out, "tomate — tomato")
}

func TestRenderPlanEmptyCategoriesOmitted(t *testing.T) {
	plan := testPlan()
	plan.Exercises.Vocabulary = nil
	plan.Vocabulary = nil

	out := ansi.Strip(renderPlan(plan))
	assert.Contains(t, out, "Comprensión")
	assert.NotContains(t, out, "Vocabulario")
	assert.NotContains(t, out, "Glosario")
}
