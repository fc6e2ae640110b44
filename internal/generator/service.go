// Package generator turns a topic request into a complete lesson plan:
// an LLM drafts the dialogue and exercises, the answer normalizer and
// validators vet the draft, and the synthesizer backfills whatever the
// count policy still needs.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/escuchalab/escucha/internal/ai"
	"github.com/escuchalab/escucha/internal/exercise"
	"github.com/escuchalab/escucha/internal/lesson"
	"github.com/escuchalab/escucha/internal/synth"
	"github.com/escuchalab/escucha/internal/transcript"
)

// Input is one lesson generation request.
type Input struct {
	Topic string
	Level lesson.Level
	Mode  lesson.Mode
}

// Service generates lesson plans.
type Service struct {
	provider ai.Provider
	synth    *synth.Synthesizer
	cfg      Config
}

// NewService creates a lesson generation service. A nil synthesizer gets
// a default randomly-seeded one.
func NewService(provider ai.Provider, s *synth.Synthesizer, cfg Config) *Service {
	if s == nil {
		s = synth.New(nil)
	}
	return &Service{provider: provider, synth: s, cfg: cfg}
}

// planOutput mirrors PlanSchema for decoding the draft.
type planOutput struct {
	Title     string            `json:"title"`
	Ambience  string            `json:"ambience"`
	Dialogue  []transcript.Line `json:"dialogue"`
	Exercises struct {
		Comprehension []json.RawMessage `json:"comprehension"`
		Vocabulary    []json.RawMessage `json:"vocabulary"`
	} `json:"exercises"`
	Vocabulary []lesson.VocabEntry `json:"vocabulary"`
}

// Generate drafts, vets and augments one lesson plan. The returned plan
// is ready to store: every exercise answer resolves to an option id and
// the per-category counts satisfy the level/mode policy as far as the
// dialogue material allows.
func (s *Service) Generate(ctx context.Context, in Input) (*lesson.Plan, error) {
	ctx = ai.WithPurpose(ctx, "lesson")

	req := ai.Request{
		System: planSystemPrompt,
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: buildPlanUserMessage(in)},
		},
		Schema:      PlanSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("lesson generation: %w", err)
	}

	var out planOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse lesson response: %w", err)
	}
	if len(out.Dialogue) == 0 {
		return nil, fmt.Errorf("lesson response has no dialogue")
	}

	plan := &lesson.Plan{
		Topic:      in.Topic,
		Title:      out.Title,
		Level:      in.Level,
		Mode:       in.Mode,
		Ambience:   out.Ambience,
		Dialogue:   out.Dialogue,
		Vocabulary: out.Vocabulary,
		CreatedAt:  time.Now().UTC(),
	}
	plan.Exercises = exercise.Set{
		Comprehension: vetExercises(exercise.DecodeAll(out.Exercises.Comprehension)),
		Vocabulary:    vetExercises(exercise.DecodeAll(out.Exercises.Vocabulary)),
	}

	s.synth.Augment(plan, synth.Context{Level: in.Level, Mode: in.Mode})

	// Normalization is idempotent, so one more pass over the final set
	// is free and keeps the stored plan canonical.
	for i, ex := range plan.Exercises.Comprehension {
		plan.Exercises.Comprehension[i] = exercise.NormalizeAnswers(ex)
	}
	for i, ex := range plan.Exercises.Vocabulary {
		plan.Exercises.Vocabulary[i] = exercise.NormalizeAnswers(ex)
	}

	return plan, nil
}

// vetExercises normalizes upstream answers and drops any exercise that
// still fails validation. Losing a draft exercise is fine — the
// synthesizer backfills — while surfacing an unanswerable one is not.
func vetExercises(list []exercise.Exercise) []exercise.Exercise {
	validators := exercise.DefaultValidators()
	var out []exercise.Exercise
	for _, ex := range list {
		ex = exercise.NormalizeAnswers(ex)
		if exercise.Check(ex, validators) != nil {
			continue
		}
		out = append(out, ex)
	}
	return out
}
