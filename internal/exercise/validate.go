package exercise

import "fmt"

// Validator checks a decoded exercise before it is surfaced to the
// learner. Implementations are stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for error messages, e.g.
	// "structural", "resolution".
	Name() string

	// Validate returns nil if the exercise passes, or a ValidationError
	// describing the first problem found.
	Validate(ex Exercise) *ValidationError
}

// ValidationError describes why an exercise was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators is the standard chain applied to upstream exercises
// after answer normalization. Synthesized exercises are id-closed by
// construction and skip it.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&ResolutionValidator{},
	}
}

// Check runs validators in order and returns the first failure.
func Check(ex Exercise, validators []Validator) *ValidationError {
	for _, v := range validators {
		if verr := v.Validate(ex); verr != nil {
			return verr
		}
	}
	return nil
}

// StructuralValidator checks that required fields are present for the
// exercise's kind and that ids are unique within each option list.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(ex Exercise) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	switch e := ex.(type) {
	case *MultipleChoice:
		if len(e.Options) < 2 {
			return fail("multiple_choice needs at least 2 options, got %d", len(e.Options))
		}
		if err := uniqueIDs(e.Options); err != "" {
			return fail("options: %s", err)
		}
		if len(e.Answer) == 0 {
			return fail("multiple_choice has no correct answer")
		}
	case *TrueFalse:
		if e.Simple() {
			if e.Answer == "" {
				return fail("true_false has no verdict")
			}
		} else {
			if err := uniqueIDs(e.Rows); err != "" {
				return fail("rows: %s", err)
			}
		}
	case *Ordering:
		if len(e.Options) < 2 {
			return fail("ordering needs at least 2 options, got %d", len(e.Options))
		}
		if err := uniqueIDs(e.Options); err != "" {
			return fail("options: %s", err)
		}
	case *Classification:
		if len(e.Rows) == 0 || len(e.Columns) == 0 {
			return fail("classification needs rows and columns")
		}
		if err := uniqueIDs(e.Rows); err != "" {
			return fail("rows: %s", err)
		}
		if err := uniqueIDs(e.Columns); err != "" {
			return fail("columns: %s", err)
		}
	case *Cloze:
		if e.TextWithGaps == "" {
			return fail("cloze has no gapped text")
		}
		if len(e.GapKeys()) == 0 {
			return fail("cloze text contains no {{gap}} placeholders")
		}
	}
	return nil
}

// ResolutionValidator checks id-closure: every reference inside the
// answer resolves to an id present in the exercise's own collections,
// and mapping answers are total. Runs after NormalizeAnswers, so any
// remaining unresolved value means the upstream answer was unusable and
// the exercise must be discarded rather than shown unanswerable.
type ResolutionValidator struct{}

func (v *ResolutionValidator) Name() string { return "resolution" }

func (v *ResolutionValidator) Validate(ex Exercise) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	switch e := ex.(type) {
	case *MultipleChoice:
		for _, a := range e.Answer {
			if !hasID(e.Options, a) {
				return fail("answer %q is not an option id", a)
			}
		}

	case *TrueFalse:
		if e.Simple() {
			if e.Answer != "true" && e.Answer != "false" {
				return fail("verdict %q is not true/false", e.Answer)
			}
			return nil
		}
		if len(e.RowAnswers) != len(e.Rows) {
			return fail("expected %d row verdicts, got %d", len(e.Rows), len(e.RowAnswers))
		}
		for _, row := range e.Rows {
			verdict, ok := e.RowAnswers[row.ID]
			if !ok {
				return fail("row %q has no verdict", row.ID)
			}
			if verdict != "true" && verdict != "false" {
				return fail("row %q verdict %q is not true/false", row.ID, verdict)
			}
		}

	case *Ordering:
		if len(e.Answer) != len(e.Options) {
			return fail("answer length %d != option count %d", len(e.Answer), len(e.Options))
		}
		seen := map[string]bool{}
		for _, a := range e.Answer {
			if !hasID(e.Options, a) {
				return fail("answer %q is not an option id", a)
			}
			if seen[a] {
				return fail("answer repeats id %q", a)
			}
			seen[a] = true
		}

	case *Classification:
		if len(e.Answer) != len(e.Rows) {
			return fail("expected %d row assignments, got %d", len(e.Rows), len(e.Answer))
		}
		for _, row := range e.Rows {
			col, ok := e.Answer[row.ID]
			if !ok {
				return fail("row %q has no assignment", row.ID)
			}
			if !hasID(e.Columns, col) {
				return fail("row %q assigned to unknown column %q", row.ID, col)
			}
		}

	case *Cloze:
		for _, key := range e.GapKeys() {
			opts, ok := e.GapOptions[key]
			if !ok || len(opts) == 0 {
				return fail("gap %q has no options", key)
			}
			id, ok := e.Answer[key]
			if !ok {
				return fail("gap %q has no answer", key)
			}
			if !hasID(opts, id) {
				return fail("gap %q answer %q is not one of its option ids", key, id)
			}
		}
	}
	return nil
}

func hasID(opts []Option, id string) bool {
	for _, o := range opts {
		if o.ID == id {
			return true
		}
	}
	return false
}

// uniqueIDs returns an error description when the option list contains
// an empty or duplicate id, or "" when it is clean.
func uniqueIDs(opts []Option) string {
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		if o.ID == "" {
			return "empty option id"
		}
		if seen[o.ID] {
			return fmt.Sprintf("duplicate option id %q", o.ID)
		}
		seen[o.ID] = true
	}
	return ""
}
