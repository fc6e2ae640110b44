package generator

import "github.com/escuchalab/escucha/internal/ai"

// optionSchema is one selectable option or row: an id plus display text.
var optionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":   map[string]any{"type": "string"},
		"text": map[string]any{"type": "string"},
	},
	"required":             []any{"id", "text"},
	"additionalProperties": false,
}

// exerciseSchema describes one exercise of any type. correctAnswer is
// deliberately unconstrained: its shape depends on the type (a string
// for true/false, an array for multiple choice and ordering, an object
// for classification and cloze) and models routinely answer with option
// text instead of ids — the answer normalizer repairs that downstream.
var exerciseSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"type": map[string]any{
			"type": "string",
			"enum": []any{"multiple_choice", "true_false", "ordering", "classification", "cloze"},
		},
		"question": map[string]any{
			"type":        "string",
			"description": "The prompt shown to the learner, in Spanish",
		},
		"options": map[string]any{
			"type":  "array",
			"items": optionSchema,
		},
		"rows": map[string]any{
			"type":  "array",
			"items": optionSchema,
		},
		"columns": map[string]any{
			"type":  "array",
			"items": optionSchema,
		},
		"textWithGaps": map[string]any{
			"type":        "string",
			"description": "Cloze text with {{gap1}}-style placeholders",
		},
		"gapOptions": map[string]any{
			"type":        "object",
			"description": "Per-gap option lists keyed by gap name",
		},
		"correctAnswer": map[string]any{
			"description": "Correct answer; shape depends on the exercise type",
		},
	},
	"required": []any{"type", "question", "correctAnswer"},
}

// PlanSchema defines the JSON schema for lesson plan generation.
var PlanSchema = &ai.Schema{
	Name:        "lesson-plan",
	Description: "A Spanish listening lesson: dialogue, exercises, and vocabulary",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short lesson title in Spanish (3-8 words)",
			},
			"ambience": map[string]any{
				"type": "string",
				"enum": []any{"cafe", "street", "market", "office", "home", "station"},
			},
			"dialogue": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"speaker": map[string]any{"type": "string"},
						"text":    map[string]any{"type": "string"},
						"emotion": map[string]any{
							"type": "string",
							"enum": []any{"neutral", "happy", "annoyed", "surprised"},
						},
					},
					"required":             []any{"speaker", "text"},
					"additionalProperties": false,
				},
			},
			"exercises": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"comprehension": map[string]any{
						"type":  "array",
						"items": exerciseSchema,
					},
					"vocabulary": map[string]any{
						"type":  "array",
						"items": exerciseSchema,
					},
				},
				"required":             []any{"comprehension", "vocabulary"},
				"additionalProperties": false,
			},
			"vocabulary": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"term":        map[string]any{"type": "string"},
						"translation": map[string]any{"type": "string"},
					},
					"required":             []any{"term", "translation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "ambience", "dialogue", "exercises", "vocabulary"},
		"additionalProperties": false,
	},
}
