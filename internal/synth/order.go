package synth

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/escuchalab/escucha/internal/exercise"
	"github.com/escuchalab/escucha/internal/transcript"
)

// minOrderingLineLen filters out one-word reactions ("¡Claro!") that
// give the sequence away.
const minOrderingLineLen = 12

// BuildOrdering manufactures a put-the-lines-in-order exercise from the
// first four substantial lines of the dialogue. The dialogue's own
// chronology is the answer key. Declines when fewer than four lines
// qualify.
func (s *Synthesizer) BuildOrdering(lines []transcript.Line) (exercise.Exercise, bool) {
	qualifying := lo.Filter(lines, func(l transcript.Line, _ int) bool {
		return lineLen(l.Text) >= minOrderingLineLen
	})
	if len(qualifying) < 4 {
		return nil, false
	}

	opts := make([]exercise.Option, 4)
	answer := make([]string, 4)
	for i, l := range qualifying[:4] {
		label := l.Text
		if l.Speaker != "" {
			label = l.Speaker + ": " + l.Text
		}
		id := "line" + strconv.Itoa(i+1)
		opts[i] = exercise.Option{ID: id, Text: label}
		answer[i] = id
	}

	return &exercise.Ordering{
		Prompt:  "Ordena las frases según el orden en que se escucharon.",
		Options: opts,
		Answer:  answer,
	}, true
}
