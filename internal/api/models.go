package api

import "github.com/ready-network/prepguide/internal/profile"

// ChatMessage is one role-tagged entry of the caller-supplied conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat. The caller carries the full
// conversation and profile on every request; nothing is stored server-side.
type ChatRequest struct {
	Messages []ChatMessage     `json:"messages"`
	Profile  map[string]string `json:"profile"`
}

// ChatResponse is the result of one chat turn.
type ChatResponse struct {
	Reply         string          `json:"reply"`
	Profile       profile.Profile `json:"profile"`
	ReadyForEmail bool            `json:"readyForEmail"`
}

// GuideRequest is the body of POST /api/guide.
type GuideRequest struct {
	Email   string            `json:"email"`
	Profile map[string]string `json:"profile"`
}
