package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/escuchalab/escucha/internal/store"
)

// eventLog records every Generate call into the store so `escucha llm`
// can show what was sent and what came back.
type eventLog struct {
	next Provider
	repo store.EventRepo
}

// WithEventLog wraps a provider so each request is persisted as an LLM
// event. Persistence failures go to stderr and never fail the request
// itself.
func WithEventLog(p Provider, repo store.EventRepo) Provider {
	return &eventLog{next: p, repo: repo}
}

func (l *eventLog) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.next.Generate(ctx, req)

	event := store.LLMRequestEventData{
		Provider:    l.next.ModelID(),
		Model:       l.next.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: requestTranscript(req),
	}
	if resp != nil {
		event.Model = resp.Model
		event.InputTokens = resp.Usage.InputTokens
		event.OutputTokens = resp.Usage.OutputTokens
		event.ResponseBody = string(resp.Content)
	}
	if err != nil {
		event.ErrorMessage = err.Error()
	}

	if logErr := l.repo.AppendLLMRequest(ctx, event); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: LLM event not recorded: %v\n", logErr)
	}

	return resp, err
}

func (l *eventLog) ModelID() string { return l.next.ModelID() }

// requestTranscript flattens a request into the readable form shown by
// `escucha llm view`.
func requestTranscript(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "max_tokens=%d temperature=%.2f\n\n", req.MaxTokens, req.Temperature)

	if req.System != "" {
		fmt.Fprintf(&b, "system:\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "%s:\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "schema %s:\n%s\n", req.Schema.Name, def)
		}
	}

	return b.String()
}
