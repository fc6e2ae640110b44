package exercise

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// envelope is the wire shape shared by the AI generator and the lesson
// store: one object with optional fields, discriminated by "type". The
// correctAnswer field is polymorphic (string, array, or object) so it is
// kept raw and interpreted per kind.
type envelope struct {
	Type          string              `json:"type"`
	Question      string              `json:"question"`
	Options       []Option            `json:"options,omitempty"`
	Rows          []Option            `json:"rows,omitempty"`
	Columns       []Option            `json:"columns,omitempty"`
	TextWithGaps  string              `json:"textWithGaps,omitempty"`
	GapOptions    map[string][]Option `json:"gapOptions,omitempty"`
	CorrectAnswer json.RawMessage     `json:"correctAnswer,omitempty"`
}

// Decode converts one loosely-shaped upstream exercise object into the
// tagged union. It tolerates answer values that are display text rather
// than ids (NormalizeAnswers repairs those later) but rejects objects
// whose structure does not match their declared type.
func Decode(raw json.RawMessage) (Exercise, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("parse exercise: %w", err)
	}

	answer := gjson.ParseBytes(env.CorrectAnswer)

	switch Kind(env.Type) {
	case KindMultipleChoice:
		mc := &MultipleChoice{Prompt: env.Question, Options: env.Options}
		if answer.IsArray() {
			mc.MultiSelect = true
			for _, v := range answer.Array() {
				mc.Answer = append(mc.Answer, v.String())
			}
		} else if answer.Type == gjson.String {
			mc.Answer = []string{answer.String()}
		} else {
			return nil, fmt.Errorf("multiple_choice: correctAnswer must be a string or array")
		}
		return mc, nil

	case KindTrueFalse:
		tf := &TrueFalse{Prompt: env.Question, Rows: env.Rows}
		if len(env.Rows) > 0 {
			if !answer.IsObject() {
				return nil, fmt.Errorf("true_false: row form requires an answer map")
			}
			tf.RowAnswers = answerMap(answer)
		} else {
			if answer.Type != gjson.String {
				return nil, fmt.Errorf("true_false: simple form requires a string answer")
			}
			tf.Answer = answer.String()
		}
		return tf, nil

	case KindOrdering:
		ord := &Ordering{Prompt: env.Question, Options: env.Options}
		if !answer.IsArray() {
			return nil, fmt.Errorf("ordering: correctAnswer must be an array")
		}
		for _, v := range answer.Array() {
			ord.Answer = append(ord.Answer, v.String())
		}
		return ord, nil

	case KindClassification:
		if !answer.IsObject() {
			return nil, fmt.Errorf("classification: correctAnswer must be a map")
		}
		return &Classification{
			Prompt:  env.Question,
			Rows:    env.Rows,
			Columns: env.Columns,
			Answer:  answerMap(answer),
		}, nil

	case KindCloze:
		if !answer.IsObject() {
			return nil, fmt.Errorf("cloze: correctAnswer must be a map")
		}
		return &Cloze{
			Prompt:       env.Question,
			TextWithGaps: env.TextWithGaps,
			GapOptions:   env.GapOptions,
			Answer:       answerMap(answer),
		}, nil

	default:
		return nil, fmt.Errorf("unknown exercise type %q", env.Type)
	}
}

// DecodeAll decodes a list of raw exercises, silently dropping the
// malformed ones. Upstream JSON is loosely shaped; a bad exercise must
// never abort lesson generation.
func DecodeAll(raws []json.RawMessage) []Exercise {
	var out []Exercise
	for _, raw := range raws {
		ex, err := Decode(raw)
		if err != nil {
			continue
		}
		out = append(out, ex)
	}
	return out
}

// Encode converts an exercise back to its wire shape.
func Encode(ex Exercise) (json.RawMessage, error) {
	env := envelope{Type: string(ex.Kind()), Question: ex.Question()}

	var answer any
	switch e := ex.(type) {
	case *MultipleChoice:
		env.Options = e.Options
		if e.MultiSelect {
			answer = e.Answer
		} else if len(e.Answer) > 0 {
			answer = e.Answer[0]
		}
	case *TrueFalse:
		env.Rows = e.Rows
		if e.Simple() {
			answer = e.Answer
		} else {
			answer = e.RowAnswers
		}
	case *Ordering:
		env.Options = e.Options
		answer = e.Answer
	case *Classification:
		env.Rows = e.Rows
		env.Columns = e.Columns
		answer = e.Answer
	case *Cloze:
		env.TextWithGaps = e.TextWithGaps
		env.GapOptions = e.GapOptions
		answer = e.Answer
	default:
		return nil, fmt.Errorf("unknown exercise type %T", ex)
	}

	raw, err := json.Marshal(answer)
	if err != nil {
		return nil, fmt.Errorf("marshal answer: %w", err)
	}
	env.CorrectAnswer = raw

	out, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal exercise: %w", err)
	}
	return out, nil
}

func answerMap(v gjson.Result) map[string]string {
	m := map[string]string{}
	v.ForEach(func(key, value gjson.Result) bool {
		m[key.String()] = value.String()
		return true
	})
	return m
}
