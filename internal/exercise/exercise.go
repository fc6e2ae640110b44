package exercise

import "regexp"

// Kind discriminates the exercise union.
type Kind string

const (
	KindMultipleChoice Kind = "multiple_choice"
	KindTrueFalse      Kind = "true_false"
	KindOrdering       Kind = "ordering"
	KindClassification Kind = "classification"
	KindCloze          Kind = "cloze"
)

// Option is a selectable item. IDs are unique within their containing
// list and, once referenced by an answer, never change for the lifetime
// of the exercise.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Exercise is the tagged union over the five exercise kinds. Each kind
// carries only its own fields; consumers switch on the concrete type.
type Exercise interface {
	Kind() Kind

	// Question returns the learner-facing instruction text.
	Question() string
}

// MultipleChoice asks the learner to pick one option, or several when
// MultiSelect is set.
type MultipleChoice struct {
	Prompt  string
	Options []Option

	// Answer holds correct option ids. Exactly one entry unless
	// MultiSelect.
	Answer      []string
	MultiSelect bool
}

func (e *MultipleChoice) Kind() Kind       { return KindMultipleChoice }
func (e *MultipleChoice) Question() string { return e.Prompt }

// TrueFalse comes in two shapes: row-based (one true/false verdict per
// row) and simple (a single verdict, Rows nil).
type TrueFalse struct {
	Prompt string

	// Rows are the statements to judge. Nil means the simple form.
	Rows []Option

	// RowAnswers maps row id to "true" or "false" (row form).
	RowAnswers map[string]string

	// Answer is "true" or "false" (simple form).
	Answer string
}

func (e *TrueFalse) Kind() Kind       { return KindTrueFalse }
func (e *TrueFalse) Question() string { return e.Prompt }

// Simple reports whether this is the single-verdict form.
func (e *TrueFalse) Simple() bool { return len(e.Rows) == 0 }

// TrueFalseColumns are the implicit verdict columns of a true/false
// exercise. Answer normalization resolves free-text verdicts against
// these.
var TrueFalseColumns = []Option{
	{ID: "true", Text: "true"},
	{ID: "false", Text: "false"},
}

// Ordering asks the learner to arrange all options into the correct
// sequence. Answer is a permutation of the option ids.
type Ordering struct {
	Prompt  string
	Options []Option
	Answer  []string
}

func (e *Ordering) Kind() Kind       { return KindOrdering }
func (e *Ordering) Question() string { return e.Prompt }

// Classification asks the learner to assign every row to exactly one
// column. Answer is a total mapping row id -> column id.
type Classification struct {
	Prompt  string
	Rows    []Option
	Columns []Option
	Answer  map[string]string
}

func (e *Classification) Kind() Kind       { return KindClassification }
func (e *Classification) Question() string { return e.Prompt }

// Cloze presents text with {{gapKey}} placeholders; each gap has its own
// option list and exactly one correct option id.
type Cloze struct {
	Prompt       string
	TextWithGaps string
	GapOptions   map[string][]Option
	Answer       map[string]string
}

func (e *Cloze) Kind() Kind       { return KindCloze }
func (e *Cloze) Question() string { return e.Prompt }

var gapPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// GapKeys returns the placeholder keys appearing in TextWithGaps, in
// order of appearance, without duplicates.
func (e *Cloze) GapKeys() []string {
	seen := map[string]bool{}
	var keys []string
	for _, m := range gapPattern.FindAllStringSubmatch(e.TextWithGaps, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			keys = append(keys, m[1])
		}
	}
	return keys
}
