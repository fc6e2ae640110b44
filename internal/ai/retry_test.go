package ai

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

const marketDraft = `{"title":"Una mañana en el mercado"}`

func quickRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetryPassesThroughSuccess(t *testing.T) {
	script := NewScriptedProvider(
		ScriptedReply{Content: json.RawMessage(marketDraft)},
	)
	p := WithRetry(script, quickRetry())

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != marketDraft {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if script.RequestCount() != 1 {
		t.Fatalf("expected 1 request, got %d", script.RequestCount())
	}
}

func TestRetryRecoversFromOutage(t *testing.T) {
	script := NewScriptedProvider(
		ScriptedReply{Err: &BackendDownError{Err: errors.New("503")}},
		ScriptedReply{Content: json.RawMessage(marketDraft)},
	)
	p := WithRetry(script, quickRetry())

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != marketDraft {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if script.RequestCount() != 2 {
		t.Fatalf("expected 2 requests, got %d", script.RequestCount())
	}
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	outage := ScriptedReply{Err: &BackendDownError{Err: errors.New("503")}}
	script := NewScriptedProvider(outage, outage, outage)
	p := WithRetry(script, quickRetry())

	_, err := p.Generate(context.Background(), Request{})
	var down *BackendDownError
	if !errors.As(err, &down) {
		t.Fatalf("expected BackendDownError, got: %v", err)
	}
	if script.RequestCount() != 3 {
		t.Fatalf("expected 3 requests, got %d", script.RequestCount())
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want retryClass
	}{
		{"context canceled", context.Canceled, retryNever},
		{"deadline exceeded", context.DeadlineExceeded, retryNever},
		{"truncated", &TruncatedError{}, retryNever},
		{"bad draft", &BadDraftError{Cause: errors.New("schema")}, retryOnce},
		{"throttled", &ThrottledError{Err: errors.New("429")}, retryAlways},
		{"backend down", &BackendDownError{}, retryAlways},
		{"plain network error", errors.New("connection reset"), retryAlways},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err); got != tt.want {
				t.Fatalf("classify(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestRetryTruncationNotRetried(t *testing.T) {
	script := NewScriptedProvider(
		ScriptedReply{Err: &TruncatedError{Raw: json.RawMessage(`{"title":"Una ma`)}},
		ScriptedReply{Content: json.RawMessage(marketDraft)},
	)
	p := WithRetry(script, quickRetry())

	_, err := p.Generate(context.Background(), Request{})
	var truncated *TruncatedError
	if !errors.As(err, &truncated) {
		t.Fatalf("expected TruncatedError, got: %v", err)
	}
	if script.RequestCount() != 1 {
		t.Fatalf("expected 1 request, got %d", script.RequestCount())
	}
}

func TestRetryBadDraftRetriedOnce(t *testing.T) {
	bad := ScriptedReply{Err: &BadDraftError{Raw: json.RawMessage(`not json`), Cause: errors.New("not JSON")}}
	script := NewScriptedProvider(bad, bad,
		ScriptedReply{Content: json.RawMessage(marketDraft)}, // never reached
	)
	p := WithRetry(script, quickRetry())

	_, err := p.Generate(context.Background(), Request{})
	var draft *BadDraftError
	if !errors.As(err, &draft) {
		t.Fatalf("expected BadDraftError, got: %v", err)
	}
	if script.RequestCount() != 2 {
		t.Fatalf("expected 2 requests, got %d", script.RequestCount())
	}
}

func TestRetryHonorsCanceledContext(t *testing.T) {
	script := NewScriptedProvider(
		ScriptedReply{Err: &BackendDownError{Err: errors.New("503")}},
		ScriptedReply{Content: json.RawMessage(marketDraft)},
	)
	p := WithRetry(script, quickRetry())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestRetryUsesRetryAfterHint(t *testing.T) {
	script := NewScriptedProvider(
		ScriptedReply{Err: &ThrottledError{RetryAfter: time.Millisecond, Err: errors.New("429")}},
		ScriptedReply{Content: json.RawMessage(marketDraft)},
	)
	p := WithRetry(script, quickRetry())

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != marketDraft {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if script.RequestCount() != 2 {
		t.Fatalf("expected 2 requests, got %d", script.RequestCount())
	}
}

func TestRetryDelegatesModelID(t *testing.T) {
	p := WithRetry(NewScriptedProvider(), quickRetry())
	if p.ModelID() != "scripted" {
		t.Fatalf("expected 'scripted', got %q", p.ModelID())
	}
}
