package ai

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestScriptedProvider_ReplaysInOrder(t *testing.T) {
	script := NewScriptedProvider(
		ScriptedReply{
			Content: json.RawMessage(`{"title":"En el café"}`),
			Usage:   Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
		},
		ScriptedReply{Content: json.RawMessage(`{"title":"En la estación"}`)},
	)

	first, err := script.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "primera"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(first.Content) != `{"title":"En el café"}` {
		t.Fatalf("unexpected first reply: %s", first.Content)
	}
	if first.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", first.Usage.InputTokens)
	}
	if first.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", first.StopReason)
	}

	second, err := script.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "segunda"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(second.Content) != `{"title":"En la estación"}` {
		t.Fatalf("unexpected second reply: %s", second.Content)
	}
}

func TestScriptedProvider_ExhaustedScriptIsOutage(t *testing.T) {
	script := NewScriptedProvider()
	_, err := script.Generate(context.Background(), Request{})
	var down *BackendDownError
	if !errors.As(err, &down) {
		t.Fatalf("expected BackendDownError, got: %T", err)
	}
}

func TestScriptedProvider_KeepsRequests(t *testing.T) {
	script := NewScriptedProvider(
		ScriptedReply{Content: json.RawMessage(`{}`)},
	)

	req := Request{
		System:   "Eres profesor de español.",
		Messages: []Message{{Role: RoleUser, Content: "hola"}},
	}
	_, _ = script.Generate(context.Background(), req)

	if script.RequestCount() != 1 {
		t.Fatalf("expected 1 request, got %d", script.RequestCount())
	}
	if script.Requests[0].System != "Eres profesor de español." {
		t.Fatalf("unexpected recorded system prompt: %q", script.Requests[0].System)
	}
}

func TestScriptedProvider_Queue(t *testing.T) {
	script := NewScriptedProvider()
	script.Queue(ScriptedReply{Content: json.RawMessage(`{"title":"En el mercado"}`)})

	resp, err := script.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"title":"En el mercado"}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "lesson")
	if p := PurposeFrom(ctx); p != "lesson" {
		t.Fatalf("expected 'lesson', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "gemini without key",
			cfg:     Config{Provider: "gemini"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
