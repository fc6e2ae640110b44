package synth

import (
	"strconv"

	"github.com/escuchalab/escucha/internal/exercise"
	"github.com/escuchalab/escucha/internal/transcript"
)

// BuildNumberRecall manufactures a which-number-did-you-hear multiple
// choice from the first numeric literal in the dialogue. Declines when
// the dialogue mentions no numbers.
func (s *Synthesizer) BuildNumberRecall(lines []transcript.Line) (exercise.Exercise, bool) {
	numbers := transcript.NumberLiterals(lines)
	if len(numbers) == 0 {
		return nil, false
	}
	heard := numbers[0]

	entries := []wordEntry{{text: heard, correct: true}}
	for _, d := range numberDistractors(heard) {
		entries = append(entries, wordEntry{text: d})
	}

	opts, correct := s.wordOptions(entries, "opt")

	return &exercise.MultipleChoice{
		Prompt:  "¿Qué número escuchaste en el diálogo?",
		Options: opts,
		Answer:  correct,
	}, true
}

// numberDistractors derives three near-miss values. Integers get
// neighbors; decimal or separator-bearing literals fall back to a fixed
// trio since arithmetic on them would need locale parsing.
func numberDistractors(heard string) []string {
	n, err := strconv.Atoi(heard)
	if err != nil {
		return []string{"10", "12", "15"}
	}
	return []string{
		strconv.Itoa(n - 1),
		strconv.Itoa(n + 1),
		strconv.Itoa(n + 10),
	}
}
