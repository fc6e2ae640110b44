package generator

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/escuchalab/escucha/internal/ai"
	"github.com/escuchalab/escucha/internal/exercise"
	"github.com/escuchalab/escucha/internal/lesson"
)

// draftPlan is a realistic model response: a usable dialogue, one
// exercise answered by option text instead of id, and one exercise of an
// unknown type that must be dropped.
const draftPlan = `{
	"title": "Una mesa para esta noche",
	"ambience": "cafe",
	"dialogue": [
		{"speaker": "Ana", "text": "Disculpe, ¿podría traernos la carta, por favor?"},
		{"speaker": "Luis", "text": "Claro, ahora mismo le traigo la carta del restaurante."},
		{"speaker": "Ana", "text": "Quisiera reservar una mesa para cuatro personas mañana."},
		{"speaker": "Luis", "text": "Perfecto, tenemos una mesa disponible a las 8 en punto."},
		{"speaker": "Ana", "text": "Muchas gracias por su amabilidad y paciencia."},
		{"speaker": "Luis", "text": "De acuerdo, la esperamos mañana en el restaurante."}
	],
	"exercises": {
		"comprehension": [
			{
				"type": "multiple_choice",
				"question": "¿Dónde tiene lugar el diálogo?",
				"options": [
					{"id": "a", "text": "En un restaurante"},
					{"id": "b", "text": "En una farmacia"}
				],
				"correctAnswer": "En un restaurante"
			},
			{
				"type": "matching_pairs",
				"question": "Un tipo que no existe.",
				"correctAnswer": "x"
			}
		],
		"vocabulary": []
	},
	"vocabulary": [
		{"term": "la carta", "translation": "the menu"},
		{"term": "reservar", "translation": "to book"}
	]
}`

func TestGenerate(t *testing.T) {
	mock := ai.NewScriptedProvider(
		ai.ScriptedReply{Content: json.RawMessage(draftPlan)},
	)
	svc := NewService(mock, nil, DefaultConfig())

	plan, err := svc.Generate(context.Background(), Input{
		Topic: "en el restaurante",
		Level: lesson.LevelBeginner,
		Mode:  lesson.ModeStandard,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if plan.Title != "Una mesa para esta noche" {
		t.Errorf("title = %q", plan.Title)
	}
	if plan.Ambience != "cafe" {
		t.Errorf("ambience = %q", plan.Ambience)
	}
	if len(plan.Dialogue) != 6 {
		t.Errorf("dialogue lines = %d, want 6", len(plan.Dialogue))
	}
	if len(plan.Vocabulary) != 2 {
		t.Errorf("vocab entries = %d, want 2", len(plan.Vocabulary))
	}

	// Count policy for Standard/Beginner.
	if got := len(plan.Exercises.Comprehension); got < 4 {
		t.Errorf("comprehension count = %d, want >= 4", got)
	}
	if got := len(plan.Exercises.Vocabulary); got < 3 {
		t.Errorf("vocabulary count = %d, want >= 3", got)
	}

	// The drafted multiple choice survived with its text answer resolved
	// to the option id; the unknown-type exercise did not.
	var kept *exercise.MultipleChoice
	for _, ex := range plan.Exercises.Comprehension {
		if mc, ok := ex.(*exercise.MultipleChoice); ok && strings.Contains(mc.Prompt, "tiene lugar") {
			kept = mc
		}
	}
	if kept == nil {
		t.Fatal("drafted multiple choice missing from plan")
	}
	if len(kept.Answer) != 1 || kept.Answer[0] != "a" {
		t.Errorf("answer = %v, want resolved id [a]", kept.Answer)
	}

	// Every surviving exercise is id-closed.
	validators := exercise.DefaultValidators()
	for _, ex := range append(plan.Exercises.Comprehension, plan.Exercises.Vocabulary...) {
		if verr := exercise.Check(ex, validators); verr != nil {
			t.Errorf("exercise failed validation: %v", verr)
		}
	}
}

func TestGenerateProviderError(t *testing.T) {
	mock := ai.NewScriptedProvider() // empty script reads as an outage
	svc := NewService(mock, nil, DefaultConfig())

	_, err := svc.Generate(context.Background(), Input{
		Topic: "en el mercado",
		Level: lesson.LevelBeginner,
		Mode:  lesson.ModeStandard,
	})
	if err == nil {
		t.Fatal("expected error from failing provider")
	}
}

func TestGenerateEmptyDialogueRejected(t *testing.T) {
	mock := ai.NewScriptedProvider(
		ai.ScriptedReply{Content: json.RawMessage(`{
			"title": "Vacío",
			"ambience": "home",
			"dialogue": [],
			"exercises": {"comprehension": [], "vocabulary": []},
			"vocabulary": []
		}`)},
	)
	svc := NewService(mock, nil, DefaultConfig())

	_, err := svc.Generate(context.Background(), Input{
		Topic: "nada",
		Level: lesson.LevelIntro,
		Mode:  lesson.ModeStandard,
	})
	if err == nil {
		t.Fatal("expected error for empty dialogue")
	}
}

func TestGenerateRequestShape(t *testing.T) {
	mock := ai.NewScriptedProvider(
		ai.ScriptedReply{Content: json.RawMessage(draftPlan)},
	)
	svc := NewService(mock, nil, DefaultConfig())

	_, err := svc.Generate(context.Background(), Input{
		Topic: "en el restaurante",
		Level: lesson.LevelAdvanced,
		Mode:  lesson.ModeAccentChallenge,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if mock.RequestCount() != 1 {
		t.Fatalf("expected 1 provider call, got %d", mock.RequestCount())
	}
	req := mock.Requests[0]
	if req.Schema == nil || req.Schema.Name != "lesson-plan" {
		t.Errorf("expected lesson-plan schema, got %+v", req.Schema)
	}
	msg := req.Messages[0].Content
	if !strings.Contains(msg, "en el restaurante") {
		t.Errorf("user message missing topic: %s", msg)
	}
	if !strings.Contains(msg, "accent_challenge") {
		t.Errorf("user message missing mode: %s", msg)
	}
}
