// Package llm wraps the external completion service behind a small interface
// so callers can fall back to canned text when it is unavailable.
package llm

import "context"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged entry of a conversation.
type Message struct {
	Role    string
	Content string
}

// Completer produces free text from a system instruction and an ordered
// conversation. Implementations return an error when no usable text came back;
// callers supply their own fallback.
type Completer interface {
	Complete(ctx context.Context, system string, messages []Message) (string, error)
}

// SiteContext describes the site the assistant speaks for. It is appended to
// every system instruction so replies stay aligned with the site's tone.
const SiteContext = "The Ready Network focuses on protecting families, equipping households, and empowering people with practical skills. " +
	"It emphasizes preparedness training (e.g., bug-out bag basics, gardening for resilience, and general readiness), " +
	"responsible self-protection, and confidence through clear, structured guidance. " +
	"The tone is supportive and capability-building, not alarmist."
