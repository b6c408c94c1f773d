package notify

import (
	"bytes"
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/ready-network/prepguide/internal/logging"
)

// SMTPConfig holds configuration for direct mail-relay delivery.
type SMTPConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	FromEmail string
}

// SMTPSender delivers the guide over an authenticated STARTTLS relay
// connection with the PDF attached.
type SMTPSender struct {
	client *gomail.Client
	from   string
	logger *logging.Logger
}

// NewSMTPSender creates an SMTP sender. Returns (nil, nil) when no relay host
// is configured.
func NewSMTPSender(cfg SMTPConfig, logger *logging.Logger) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logging.Default()
	}

	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.User),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("notify: create smtp client: %w", err)
	}

	return &SMTPSender{client: client, from: cfg.FromEmail, logger: logger}, nil
}

// Send delivers the guide in a single relay session.
func (s *SMTPSender) Send(ctx context.Context, toEmail string, document []byte) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("notify: invalid from address: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("notify: invalid recipient address: %w", err)
	}
	msg.Subject(guideSubject)
	msg.SetBodyString(gomail.TypeTextPlain, guideTextBody)
	if err := msg.AttachReader(guideFilename, bytes.NewReader(document)); err != nil {
		return fmt.Errorf("notify: attach guide: %w", err)
	}

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		s.logger.Error("smtp send failed", "to", toEmail, "error", err)
		return fmt.Errorf("notify: smtp send failed: %w", err)
	}

	s.logger.Info("guide emailed via smtp", "to", toEmail)
	return nil
}
