package store

import (
	"context"
	"testing"
	"time"

	"github.com/escuchalab/escucha/internal/exercise"
	"github.com/escuchalab/escucha/internal/lesson"
	"github.com/escuchalab/escucha/internal/transcript"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"lessons", "llm_events"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
	}
}

func samplePlan() *lesson.Plan {
	return &lesson.Plan{
		Topic: "en el mercado",
		Title: "Una mañana en el mercado",
		Level: lesson.LevelBeginner,
		Mode:  lesson.ModeStandard,
		Dialogue: []transcript.Line{
			{Speaker: "Ana", Text: "Buenos días, ¿cuánto cuestan los tomates?"},
			{Speaker: "Luis", Text: "Dos euros el kilo, están muy frescos."},
		},
		Exercises: exercise.Set{
			Comprehension: []exercise.Exercise{
				&exercise.MultipleChoice{
					Prompt:  "¿Qué compra Ana?",
					Options: []exercise.Option{{ID: "a", Text: "tomates"}, {ID: "b", Text: "peras"}},
					Answer:  []string{"a"},
				},
			},
		},
		Vocabulary: []lesson.VocabEntry{
			{Term: "tomate", Translation: "tomato"},
		},
	}
}

func TestLessonSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.LessonRepo()
	ctx := context.Background()

	plan := samplePlan()
	if err := repo.Save(ctx, plan); err != nil {
		t.Fatalf("save: %v", err)
	}
	if plan.ID == "" {
		t.Fatal("expected save to assign an id")
	}
	if plan.CreatedAt.IsZero() {
		t.Fatal("expected save to stamp created_at")
	}

	got, err := repo.Get(ctx, plan.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored plan")
	}
	if got.Title != plan.Title {
		t.Errorf("title = %q, want %q", got.Title, plan.Title)
	}
	if len(got.Dialogue) != 2 {
		t.Errorf("dialogue lines = %d, want 2", len(got.Dialogue))
	}
	if len(got.Exercises.Comprehension) != 1 {
		t.Fatalf("comprehension count = %d, want 1", len(got.Exercises.Comprehension))
	}
	mc, ok := got.Exercises.Comprehension[0].(*exercise.MultipleChoice)
	if !ok {
		t.Fatalf("exercise round-tripped as %T, want *MultipleChoice", got.Exercises.Comprehension[0])
	}
	if len(mc.Answer) != 1 || mc.Answer[0] != "a" {
		t.Errorf("answer = %v, want [a]", mc.Answer)
	}
}

func TestLessonGetMissing(t *testing.T) {
	s := openTestStore(t)

	got, err := s.LessonRepo().Get(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil for unknown id")
	}
}

func TestLessonListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.LessonRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		plan := samplePlan()
		plan.Title = plan.Title + " " + string(rune('A'+i))
		plan.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.Save(ctx, plan); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	summaries, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}
	if !summaries[0].CreatedAt.After(summaries[1].CreatedAt) {
		t.Errorf("expected newest first, got %v then %v",
			summaries[0].CreatedAt, summaries[1].CreatedAt)
	}
}

func TestLLMEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "mock",
			Model:        "mock",
			Purpose:      "lesson",
			InputTokens:  100,
			OutputTokens: 50,
			LatencyMs:    int64(10 * (i + 1)),
			Success:      true,
			RequestBody:  "[user]\nhola",
			ResponseBody: `{"ok":true}`,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, 2)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].ID <= events[1].ID {
		t.Errorf("expected newest first, got ids %d then %d", events[0].ID, events[1].ID)
	}

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil || e.ResponseBody != `{"ok":true}` {
		t.Errorf("unexpected event: %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for unknown event id")
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "lesson", InputTokens: 100, OutputTokens: 40, LatencyMs: 20, Success: true},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "lesson", InputTokens: 200, OutputTokens: 60, LatencyMs: 40, Success: true},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "vocab", InputTokens: 50, OutputTokens: 10, LatencyMs: 30, Success: true},
	}
	for i, d := range data {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	stats, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d purposes, want 2", len(stats))
	}
	// Ordered by purpose: lesson, vocab.
	if stats[0].Purpose != "lesson" || stats[0].Calls != 2 || stats[0].InputTokens != 300 {
		t.Errorf("lesson stats = %+v", stats[0])
	}
	if stats[0].AvgLatencyMs != 30 {
		t.Errorf("avg latency = %d, want 30", stats[0].AvgLatencyMs)
	}

	models, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(models) != 1 || models[0].InputTokens != 350 {
		t.Errorf("model usage = %+v", models)
	}
}
