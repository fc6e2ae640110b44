package ai

import (
	"encoding/json"
	"errors"
	"testing"
)

func lineSchema() *Schema {
	return &Schema{
		Name:        "dialogue-line",
		Description: "One dialogue line",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"speaker": map[string]any{"type": "string"},
				"text":    map[string]any{"type": "string"},
				"emotion": map[string]any{"type": "string", "enum": []any{"neutral", "happy", "annoyed"}},
			},
			"required": []any{"speaker", "text"},
		},
	}
}

func TestCheckSchema_Valid(t *testing.T) {
	raw := json.RawMessage(`{"speaker":"Ana","text":"Hola","emotion":"happy"}`)
	if err := checkSchema(lineSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestCheckSchema_OptionalFieldOmitted(t *testing.T) {
	raw := json.RawMessage(`{"speaker":"Luis","text":"Buenos días"}`)
	if err := checkSchema(lineSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestCheckSchema_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"speaker":"Ana"}`)
	err := checkSchema(lineSchema(), raw)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	var draft *BadDraftError
	if !errors.As(err, &draft) {
		t.Fatalf("expected BadDraftError, got: %T", err)
	}
}

func TestCheckSchema_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"speaker":"Ana","text":42}`)
	err := checkSchema(lineSchema(), raw)
	if err == nil {
		t.Fatal("expected error for wrong type")
	}
	var draft *BadDraftError
	if !errors.As(err, &draft) {
		t.Fatalf("expected BadDraftError, got: %T", err)
	}
}

func TestCheckSchema_InvalidEnum(t *testing.T) {
	raw := json.RawMessage(`{"speaker":"Ana","text":"Hola","emotion":"furious"}`)
	err := checkSchema(lineSchema(), raw)
	if err == nil {
		t.Fatal("expected error for invalid enum value")
	}
	var draft *BadDraftError
	if !errors.As(err, &draft) {
		t.Fatalf("expected BadDraftError, got: %T", err)
	}
}

func TestCheckSchema_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	err := checkSchema(lineSchema(), raw)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var draft *BadDraftError
	if !errors.As(err, &draft) {
		t.Fatalf("expected BadDraftError, got: %T", err)
	}
}

func TestCheckSchema_NilSchemaAcceptsAnything(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	if err := checkSchema(nil, raw); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestCheckSchema_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name:        "nested-lesson",
		Description: "Nested test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"lesson": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{"type": "string"},
					},
					"required": []any{"title"},
				},
				"dialogue": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"lesson", "dialogue"},
		},
	}

	valid := json.RawMessage(`{"lesson":{"title":"En el café"},"dialogue":["Hola","Adiós"]}`)
	if err := checkSchema(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"lesson":{"title":"En el café"},"dialogue":[1,2]}`)
	if err := checkSchema(schema, invalid); err == nil {
		t.Fatal("expected error for wrong array item type")
	}
}
