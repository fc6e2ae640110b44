package synth

import (
	"github.com/samber/lo"

	"github.com/escuchalab/escucha/internal/exercise"
	"github.com/escuchalab/escucha/internal/transcript"
)

const (
	// minClozeLineLen keeps single-gap cloze sentences long enough that
	// context survives the blank.
	minClozeLineLen = 18

	// minDoubleClozeLineLen is the longer floor for two blanks.
	minDoubleClozeLineLen = 28

	maxGapDistractors = 3
)

// BuildCloze manufactures a single-gap cloze from the first line long
// enough to carry one. One random content token of that line becomes the
// blank; distractors are drawn from the rest of the dialogue's keyword
// pool. Declines when no line qualifies or the substitution leaves the
// text unchanged.
func (s *Synthesizer) BuildCloze(lines []transcript.Line) (exercise.Exercise, bool) {
	line, candidates, ok := firstClozeLine(lines, minClozeLineLen, 1)
	if !ok {
		return nil, false
	}

	target := candidates[s.rng.IntN(len(candidates))]

	gapped, ok := replaceWord(line.Text, target, "{{gap1}}")
	if !ok {
		return nil, false
	}

	pool := distractorPool(lines, target)
	opts, correctID := s.gapOptions(target, sample(s.rng, pool, maxGapDistractors))

	return &exercise.Cloze{
		Prompt:       "Completa el hueco con la palabra que escuchaste.",
		TextWithGaps: gapped,
		GapOptions:   map[string][]exercise.Option{"gap1": opts},
		Answer:       map[string]string{"gap1": correctID},
	}, true
}

// BuildDoubleCloze manufactures a two-gap cloze from the first line long
// enough to carry two blanks. The first and last candidate tokens of the
// line become the gaps; a line whose first and last candidate coincide
// is declined rather than re-paired. Each gap draws distractors from its
// own half of the keyword pool so the two option lists stay disjoint.
func (s *Synthesizer) BuildDoubleCloze(lines []transcript.Line) (exercise.Exercise, bool) {
	line, candidates, ok := firstClozeLine(lines, minDoubleClozeLineLen, 2)
	if !ok {
		return nil, false
	}

	first := candidates[0]
	last := candidates[len(candidates)-1]
	if first == last {
		return nil, false
	}

	gapped, ok1 := replaceWord(line.Text, first, "{{gap1}}")
	gapped, ok2 := replaceWord(gapped, last, "{{gap2}}")
	if !ok1 || !ok2 {
		return nil, false
	}

	pool := distractorPool(lines, first, last)
	mid := len(pool) / 2
	opts1, correct1 := s.gapOptions(first, sample(s.rng, pool[:mid], maxGapDistractors))
	opts2, correct2 := s.gapOptions(last, sample(s.rng, pool[mid:], maxGapDistractors))

	return &exercise.Cloze{
		Prompt:       "Completa los huecos con las palabras que escuchaste.",
		TextWithGaps: gapped,
		GapOptions: map[string][]exercise.Option{
			"gap1": opts1,
			"gap2": opts2,
		},
		Answer: map[string]string{
			"gap1": correct1,
			"gap2": correct2,
		},
	}, true
}

// firstClozeLine finds the first line meeting the length floor with at
// least minDistinct distinct candidate tokens, returning the line and
// its candidate tokens in order.
func firstClozeLine(lines []transcript.Line, minLen, minDistinct int) (transcript.Line, []string, bool) {
	for _, l := range lines {
		if lineLen(l.Text) < minLen {
			continue
		}
		candidates := transcript.CandidateTokens(l.Text)
		if len(lo.Uniq(candidates)) >= minDistinct {
			return l, candidates, true
		}
	}
	return transcript.Line{}, nil, false
}

// distractorPool is the dialogue's distinct keyword candidates minus the
// gap targets.
func distractorPool(lines []transcript.Line, targets ...string) []string {
	pool := lo.Uniq(transcript.KeywordCandidates(lines))
	return lo.Filter(pool, func(w string, _ int) bool {
		return !lo.Contains(targets, w)
	})
}

// gapOptions builds one gap's shuffled option list from the correct
// token and its distractors, returning the options and the correct id.
func (s *Synthesizer) gapOptions(target string, distractors []string) ([]exercise.Option, string) {
	entries := []wordEntry{{text: target, correct: true}}
	for _, d := range distractors {
		entries = append(entries, wordEntry{text: d})
	}
	opts, correct := s.wordOptions(entries, "opt")
	return opts, correct[0]
}
