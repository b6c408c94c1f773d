// Package notify delivers the rendered guide to the user's email address.
// Delivery is best-effort: callers log failures and move on.
package notify

import (
	"context"

	"github.com/ready-network/prepguide/internal/logging"
)

const (
	guideSubject  = "Your Personalized Survival Guide"
	guideFilename = "survival-guide.pdf"
	guideHTMLBody = "<p>Your personalized survival guide is attached.</p>"
	guideTextBody = "Your personalized survival guide is attached."
)

// Sender delivers a rendered guide document to an email address.
// Implementations can be swapped (SendGrid, SMTP, stub) without changing
// callers.
type Sender interface {
	Send(ctx context.Context, toEmail string, document []byte) error
}

// StubSender logs instead of sending, for tests or unconfigured deployments.
type StubSender struct {
	logger *logging.Logger
}

// NewStubSender creates a sender that logs but doesn't deliver anything.
func NewStubSender(logger *logging.Logger) *StubSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubSender{logger: logger}
}

// Send logs the delivery that would have happened.
func (s *StubSender) Send(ctx context.Context, toEmail string, document []byte) error {
	s.logger.Info("stub sender: would deliver guide", "to", toEmail, "bytes", len(document))
	return nil
}
