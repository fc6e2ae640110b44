package exercise

import "github.com/escuchalab/escucha/internal/transcript"

// NormalizeAnswers returns a structural copy of the exercise with every
// answer reference resolved to a real option/row/column/gap-option id
// where possible. Upstream generators sometimes answer with display text
// ("el café") instead of the option id; resolution is by folded-text
// equality, first match wins. Values that resolve to nothing are kept
// verbatim — an unresolved reference is a data-quality signal for the
// caller, not something to silently blank out. The pass is idempotent
// and never touches its input.
func NormalizeAnswers(ex Exercise) Exercise {
	switch e := ex.(type) {
	case *MultipleChoice:
		out := &MultipleChoice{
			Prompt:      e.Prompt,
			Options:     copyOptions(e.Options),
			MultiSelect: e.MultiSelect,
		}
		if e.Answer != nil {
			out.Answer = make([]string, len(e.Answer))
			for i, v := range e.Answer {
				out.Answer[i] = resolveRef(v, e.Options)
			}
		}
		return out

	case *TrueFalse:
		out := &TrueFalse{Prompt: e.Prompt, Rows: copyOptions(e.Rows)}
		if e.Simple() {
			out.Answer = resolveRef(e.Answer, TrueFalseColumns)
			return out
		}
		out.RowAnswers = make(map[string]string, len(e.RowAnswers))
		for rowID, v := range e.RowAnswers {
			out.RowAnswers[rowID] = resolveRef(v, TrueFalseColumns)
		}
		return out

	case *Ordering:
		out := &Ordering{Prompt: e.Prompt, Options: copyOptions(e.Options)}
		if e.Answer == nil {
			return out
		}
		out.Answer = make([]string, len(e.Answer))
		// The common case is an already-valid id permutation; skip
		// text matching entirely then, so option text that happens to
		// collide with another option's id cannot corrupt the order.
		if allValidIDs(e.Answer, e.Options) {
			copy(out.Answer, e.Answer)
			return out
		}
		for i, v := range e.Answer {
			out.Answer[i] = resolveRef(v, e.Options)
		}
		return out

	case *Classification:
		out := &Classification{
			Prompt:  e.Prompt,
			Rows:    copyOptions(e.Rows),
			Columns: copyOptions(e.Columns),
			Answer:  make(map[string]string, len(e.Answer)),
		}
		for rowID, v := range e.Answer {
			out.Answer[rowID] = resolveRef(v, e.Columns)
		}
		return out

	case *Cloze:
		out := &Cloze{
			Prompt:       e.Prompt,
			TextWithGaps: e.TextWithGaps,
			GapOptions:   make(map[string][]Option, len(e.GapOptions)),
			Answer:       make(map[string]string, len(e.Answer)),
		}
		for key, opts := range e.GapOptions {
			out.GapOptions[key] = copyOptions(opts)
		}
		// Resolution is scoped to each gap's own option list; an answer
		// for gap1 is never matched against gap2's options.
		for key, v := range e.Answer {
			out.Answer[key] = resolveRef(v, e.GapOptions[key])
		}
		return out

	default:
		return ex
	}
}

// resolveRef maps an answer value to an option id. A value that already
// is a valid id is kept; otherwise the first option whose folded text
// equals the folded value wins; otherwise the value is returned as-is.
func resolveRef(value string, opts []Option) string {
	for _, o := range opts {
		if o.ID == value {
			return value
		}
	}
	folded := transcript.Fold(value)
	for _, o := range opts {
		if transcript.Fold(o.Text) == folded {
			return o.ID
		}
	}
	return value
}

func allValidIDs(values []string, opts []Option) bool {
	ids := make(map[string]bool, len(opts))
	for _, o := range opts {
		ids[o.ID] = true
	}
	for _, v := range values {
		if !ids[v] {
			return false
		}
	}
	return true
}

func copyOptions(opts []Option) []Option {
	if opts == nil {
		return nil
	}
	out := make([]Option, len(opts))
	copy(out, opts)
	return out
}
