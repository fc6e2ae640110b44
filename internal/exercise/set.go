package exercise

import (
	"encoding/json"
	"fmt"
)

// Set groups a lesson's exercises by pedagogical category.
type Set struct {
	Comprehension []Exercise
	Vocabulary    []Exercise
}

type rawSet struct {
	Comprehension []json.RawMessage `json:"comprehension"`
	Vocabulary    []json.RawMessage `json:"vocabulary"`
}

// MarshalJSON encodes both categories in the wire shape.
func (s Set) MarshalJSON() ([]byte, error) {
	raw := rawSet{
		Comprehension: []json.RawMessage{},
		Vocabulary:    []json.RawMessage{},
	}
	for _, ex := range s.Comprehension {
		enc, err := Encode(ex)
		if err != nil {
			return nil, fmt.Errorf("comprehension: %w", err)
		}
		raw.Comprehension = append(raw.Comprehension, enc)
	}
	for _, ex := range s.Vocabulary {
		enc, err := Encode(ex)
		if err != nil {
			return nil, fmt.Errorf("vocabulary: %w", err)
		}
		raw.Vocabulary = append(raw.Vocabulary, enc)
	}
	return json.Marshal(raw)
}

// UnmarshalJSON decodes both categories strictly. Unlike DecodeAll this
// propagates errors: a stored lesson is expected to be clean.
func (s *Set) UnmarshalJSON(data []byte) error {
	var raw rawSet
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Comprehension = nil
	s.Vocabulary = nil
	for i, r := range raw.Comprehension {
		ex, err := Decode(r)
		if err != nil {
			return fmt.Errorf("comprehension[%d]: %w", i, err)
		}
		s.Comprehension = append(s.Comprehension, ex)
	}
	for i, r := range raw.Vocabulary {
		ex, err := Decode(r)
		if err != nil {
			return fmt.Errorf("vocabulary[%d]: %w", i, err)
		}
		s.Vocabulary = append(s.Vocabulary, ex)
	}
	return nil
}
