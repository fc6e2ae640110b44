package ai

import (
	"context"
	"encoding/json"
	"sync"
)

// ScriptedReply is one queued Generate outcome.
type ScriptedReply struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// ScriptedProvider replays a fixed sequence of replies in place of a
// live backend. Every request it receives is kept for inspection.
type ScriptedProvider struct {
	mu       sync.Mutex
	replies  []ScriptedReply
	Requests []Request
}

// NewScriptedProvider queues the given replies in order.
func NewScriptedProvider(replies ...ScriptedReply) *ScriptedProvider {
	return &ScriptedProvider{replies: replies}
}

// Generate pops the next reply. An exhausted script reads as a backend
// outage.
func (s *ScriptedProvider) Generate(_ context.Context, req Request) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Requests = append(s.Requests, req)

	if len(s.replies) == 0 {
		return nil, &BackendDownError{}
	}

	next := s.replies[0]
	s.replies = s.replies[1:]

	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "scripted",
		StopReason: "end",
	}, nil
}

func (s *ScriptedProvider) ModelID() string { return "scripted" }

// Queue appends another reply to the script.
func (s *ScriptedProvider) Queue(reply ScriptedReply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, reply)
}

// RequestCount reports how many Generate calls were made.
func (s *ScriptedProvider) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Requests)
}
