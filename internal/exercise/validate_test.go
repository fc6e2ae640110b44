package exercise

import "testing"

func validOrdering() *Ordering {
	return &Ordering{
		Prompt:  "Ordena",
		Options: []Option{{ID: "l1", Text: "a"}, {ID: "l2", Text: "b"}, {ID: "l3", Text: "c"}},
		Answer:  []string{"l1", "l2", "l3"},
	}
}

func TestCheck_PassesValidExercises(t *testing.T) {
	validators := DefaultValidators()
	exercises := []Exercise{
		validOrdering(),
		&MultipleChoice{
			Prompt:  "Elige",
			Options: []Option{{ID: "a", Text: "x"}, {ID: "b", Text: "y"}},
			Answer:  []string{"b"},
		},
		&Classification{
			Prompt:  "Clasifica",
			Rows:    []Option{{ID: "r1", Text: "hola"}, {ID: "r2", Text: "chau"}},
			Columns: []Option{{ID: "c1", Text: "Ana"}, {ID: "c2", Text: "Luis"}},
			Answer:  map[string]string{"r1": "c1", "r2": "c2"},
		},
		&TrueFalse{
			Prompt:     "Juzga",
			Rows:       []Option{{ID: "r1", Text: "pan"}},
			RowAnswers: map[string]string{"r1": "true"},
		},
		&Cloze{
			Prompt:       "Completa",
			TextWithGaps: "Un {{gap1}}",
			GapOptions:   map[string][]Option{"gap1": {{ID: "g1", Text: "café"}}},
			Answer:       map[string]string{"gap1": "g1"},
		},
	}
	for _, ex := range exercises {
		if verr := Check(ex, validators); verr != nil {
			t.Errorf("%s: unexpected rejection: %v", ex.Kind(), verr)
		}
	}
}

func TestResolutionValidator_UnresolvedAnswer(t *testing.T) {
	v := &ResolutionValidator{}
	ex := &MultipleChoice{
		Prompt:  "Elige",
		Options: []Option{{ID: "a", Text: "x"}, {ID: "b", Text: "y"}},
		Answer:  []string{"z"},
	}
	verr := v.Validate(ex)
	if verr == nil {
		t.Fatal("expected rejection for unresolved answer")
	}
	if verr.Validator != "resolution" {
		t.Errorf("wrong validator name %q", verr.Validator)
	}
}

func TestResolutionValidator_OrderingNotPermutation(t *testing.T) {
	v := &ResolutionValidator{}

	dup := validOrdering()
	dup.Answer = []string{"l1", "l1", "l2"}
	if v.Validate(dup) == nil {
		t.Error("expected rejection for repeated id")
	}

	short := validOrdering()
	short.Answer = []string{"l1", "l2"}
	if v.Validate(short) == nil {
		t.Error("expected rejection for missing id")
	}
}

func TestResolutionValidator_ClassificationTotality(t *testing.T) {
	v := &ResolutionValidator{}
	ex := &Classification{
		Prompt:  "Clasifica",
		Rows:    []Option{{ID: "r1", Text: "hola"}, {ID: "r2", Text: "chau"}},
		Columns: []Option{{ID: "c1", Text: "Ana"}},
		Answer:  map[string]string{"r1": "c1"},
	}
	if v.Validate(ex) == nil {
		t.Error("expected rejection for partial mapping")
	}

	ex.Answer = map[string]string{"r1": "c1", "r3": "c1"}
	if v.Validate(ex) == nil {
		t.Error("expected rejection for verdict on unknown row")
	}
}

func TestStructuralValidator_Rejections(t *testing.T) {
	v := &StructuralValidator{}
	cases := []struct {
		name string
		ex   Exercise
	}{
		{"one option", &MultipleChoice{Prompt: "x", Options: []Option{{ID: "a", Text: "y"}}, Answer: []string{"a"}}},
		{"duplicate ids", &Ordering{Prompt: "x", Options: []Option{{ID: "a", Text: "y"}, {ID: "a", Text: "z"}}}},
		{"no columns", &Classification{Prompt: "x", Rows: []Option{{ID: "r1", Text: "y"}}}},
		{"no placeholders", &Cloze{Prompt: "x", TextWithGaps: "sin huecos"}},
		{"empty verdict", &TrueFalse{Prompt: "x"}},
	}
	for _, c := range cases {
		if v.Validate(c.ex) == nil {
			t.Errorf("%s: expected rejection", c.name)
		}
	}
}

func TestCheck_FirstFailureWins(t *testing.T) {
	ex := &MultipleChoice{Prompt: "x", Options: []Option{{ID: "a", Text: "y"}}, Answer: []string{"z"}}
	verr := Check(ex, DefaultValidators())
	if verr == nil {
		t.Fatal("expected rejection")
	}
	if verr.Validator != "structural" {
		t.Errorf("expected structural to fail first, got %q", verr.Validator)
	}
}
