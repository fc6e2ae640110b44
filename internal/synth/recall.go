package synth

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/escuchalab/escucha/internal/exercise"
	"github.com/escuchalab/escucha/internal/transcript"
)

// decoyPool supplies plausible Spanish words for "did you hear this?"
// distractors. Entries are pre-folded; concrete everyday nouns that are
// unlikely to show up in an arbitrary dialogue but would not look out of
// place in one.
var decoyPool = []string{
	"biblioteca",
	"aeropuerto",
	"zanahoria",
	"paraguas",
	"ventana",
	"camiseta",
	"naranja",
	"hospital",
	"invierno",
	"peluqueria",
	"alfombra",
	"tiburon",
	"cuaderno",
	"semaforo",
	"mariposa",
	"bufanda",
}

// presentAndAbsent splits the recall word material: distinct keyword
// candidates actually heard in the dialogue, and decoys verified absent
// from it.
func presentAndAbsent(lines []transcript.Line) (present, absent []string) {
	present = lo.Uniq(transcript.KeywordCandidates(lines))

	folded := " " + transcript.Fold(transcript.JoinedText(lines)) + " "
	absent = lo.Filter(decoyPool, func(w string, _ int) bool {
		return !strings.Contains(folded, " "+w+" ")
	})
	return present, absent
}

// BuildSelectAllHeard manufactures a multi-select "mark every word you
// heard" exercise: up to three words from the transcript mixed with up
// to three absent decoys. Declines unless at least two of each exist.
func (s *Synthesizer) BuildSelectAllHeard(lines []transcript.Line) (exercise.Exercise, bool) {
	present, absent := presentAndAbsent(lines)
	if len(present) < 2 || len(absent) < 2 {
		return nil, false
	}

	var entries []wordEntry
	for _, w := range sample(s.rng, present, 3) {
		entries = append(entries, wordEntry{text: w, correct: true})
	}
	for _, w := range sample(s.rng, absent, 3) {
		entries = append(entries, wordEntry{text: w})
	}

	opts, correct := s.wordOptions(entries, "opt")

	return &exercise.MultipleChoice{
		Prompt:      "Selecciona todas las palabras que escuchaste en el diálogo.",
		Options:     opts,
		Answer:      correct,
		MultiSelect: true,
	}, true
}

// BuildMentionTrueFalse manufactures a row-based true/false over a small
// mix of heard words and absent decoys. Same material as
// BuildSelectAllHeard with a smaller sample; rows are shuffled so the
// true entries don't cluster.
func (s *Synthesizer) BuildMentionTrueFalse(lines []transcript.Line) (exercise.Exercise, bool) {
	present, absent := presentAndAbsent(lines)
	if len(present) < 2 || len(absent) < 2 {
		return nil, false
	}

	words := append(sample(s.rng, present, 2), sample(s.rng, absent, 2)...)
	s.rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})

	folded := " " + transcript.Fold(transcript.JoinedText(lines)) + " "

	rows := make([]exercise.Option, len(words))
	answers := map[string]string{}
	for i, w := range words {
		id := "row" + strconv.Itoa(i+1)
		rows[i] = exercise.Option{ID: id, Text: w}
		if strings.Contains(folded, " "+w+" ") {
			answers[id] = "true"
		} else {
			answers[id] = "false"
		}
	}

	return &exercise.TrueFalse{
		Prompt:     "¿Se mencionaron estas palabras en el diálogo?",
		Rows:       rows,
		RowAnswers: answers,
	}, true
}
