// Package synth derives graded exercises from a dialogue transcript.
//
// Each builder inspects the transcript for enough linguistic signal to
// manufacture one exercise of its kind and declines (second return
// false) when the material is too thin. Augment applies the per-level
// and per-mode count policy, backfilling from the builders and capping
// excess. Nothing in this package errors: a thin transcript yields a
// shorter lesson, never a failure.
package synth

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/escuchalab/escucha/internal/exercise"
	"github.com/escuchalab/escucha/internal/transcript"
)

// Synthesizer holds the random source used for shuffling and sampling.
// The source is injected so tests can seed it; it is not safe for
// concurrent use, matching the one-synchronous-pass-per-lesson model.
type Synthesizer struct {
	rng *rand.Rand
}

// New creates a Synthesizer. A nil rng gets a fresh randomly-seeded one.
func New(rng *rand.Rand) *Synthesizer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Synthesizer{rng: rng}
}

// sample returns up to n elements of items in random order. The input
// slice is never modified.
func sample[T any](rng *rand.Rand, items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	if n == 0 {
		return nil
	}
	out := make([]T, 0, n)
	for _, i := range rng.Perm(len(items))[:n] {
		out = append(out, items[i])
	}
	return out
}

// lineLen counts runes, not bytes, so accented text is measured fairly.
func lineLen(text string) int {
	return utf8.RuneCountInString(text)
}

// replaceWord substitutes the first whole-word occurrence of the folded
// target token in text with marker, preserving surrounding punctuation
// and spacing. Matching is case- and accent-insensitive. Returns the
// input unchanged with ok=false when no token matches, which callers
// treat as builder infeasibility.
func replaceWord(text, foldedTarget, marker string) (string, bool) {
	rest := text
	offset := 0
	for _, field := range strings.Fields(text) {
		idx := strings.Index(rest, field)
		if idx < 0 {
			break
		}
		core, lead := trimToken(field)
		if core != "" && transcript.Fold(core) == foldedTarget {
			start := offset + idx + lead
			return text[:start] + marker + text[start+len(core):], true
		}
		offset += idx + len(field)
		rest = text[offset:]
	}
	return text, false
}

// trimToken strips non-alphanumeric runes from both ends of a field,
// returning the core word and its byte offset within the field.
func trimToken(field string) (core string, lead int) {
	start, end := 0, len(field)
	for start < end {
		r, size := utf8.DecodeRuneInString(field[start:end])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			break
		}
		start += size
	}
	for end > start {
		r, size := utf8.DecodeLastRuneInString(field[start:end])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			break
		}
		end -= size
	}
	return field[start:end], start
}

// wordOptions assigns sequential ids to a shuffled word list and reports
// which ids belong to correct entries.
type wordEntry struct {
	text    string
	correct bool
}

func (s *Synthesizer) wordOptions(entries []wordEntry, idPrefix string) ([]exercise.Option, []string) {
	s.rng.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})
	opts := make([]exercise.Option, len(entries))
	var correct []string
	for i, e := range entries {
		id := idPrefix + strconv.Itoa(i+1)
		opts[i] = exercise.Option{ID: id, Text: e.text}
		if e.correct {
			correct = append(correct, id)
		}
	}
	return opts, correct
}
