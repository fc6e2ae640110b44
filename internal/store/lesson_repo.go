package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/escuchalab/escucha/internal/lesson"
)

// LessonSummary is the listing view of a stored lesson, without the full
// plan payload.
type LessonSummary struct {
	ID        string
	Topic     string
	Title     string
	Level     lesson.Level
	Mode      lesson.Mode
	CreatedAt time.Time
}

// LessonRepo persists generated lesson plans.
type LessonRepo interface {
	// Save stores a plan. A plan without an ID is assigned one; an
	// existing ID overwrites the stored row.
	Save(ctx context.Context, plan *lesson.Plan) error

	// Get returns the plan with the given id, or nil if not found.
	Get(ctx context.Context, id string) (*lesson.Plan, error)

	// List returns summaries of stored lessons, newest first.
	List(ctx context.Context, limit int) ([]LessonSummary, error)
}

type lessonRepo struct {
	db *sql.DB
}

func (r *lessonRepo) Save(ctx context.Context, plan *lesson.Plan) error {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO lessons (id, topic, title, level, mode, plan, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			topic = excluded.topic,
			title = excluded.title,
			level = excluded.level,
			mode = excluded.mode,
			plan = excluded.plan`,
		plan.ID, plan.Topic, plan.Title, string(plan.Level), string(plan.Mode),
		string(payload), plan.CreatedAt)
	if err != nil {
		return fmt.Errorf("save lesson: %w", err)
	}
	return nil
}

func (r *lessonRepo) Get(ctx context.Context, id string) (*lesson.Plan, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT plan FROM lessons WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}

	var plan lesson.Plan
	if err := json.Unmarshal([]byte(payload), &plan); err != nil {
		return nil, fmt.Errorf("unmarshal lesson %s: %w", id, err)
	}
	return &plan, nil
}

func (r *lessonRepo) List(ctx context.Context, limit int) ([]LessonSummary, error) {
	q := `SELECT id, topic, title, level, mode, created_at
		FROM lessons ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	var out []LessonSummary
	for rows.Next() {
		var s LessonSummary
		var level, mode string
		if err := rows.Scan(&s.ID, &s.Topic, &s.Title, &level, &mode, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lesson row: %w", err)
		}
		s.Level = lesson.Level(level)
		s.Mode = lesson.Mode(mode)
		out = append(out, s)
	}
	return out, rows.Err()
}
