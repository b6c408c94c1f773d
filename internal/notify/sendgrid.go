package notify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/ready-network/prepguide/internal/logging"
)

const sendGridHost = "https://api.sendgrid.com"

// SendGridConfig holds configuration for SendGrid delivery.
type SendGridConfig struct {
	APIKey    string
	ListID    string
	FromEmail string
	FromName  string
	Host      string // overridable for tests; defaults to the public API
}

// SendGridSender registers the recipient as a marketing contact, then sends
// the guide as a transactional email with the PDF attached.
type SendGridSender struct {
	cfg    SendGridConfig
	logger *logging.Logger
}

// NewSendGridSender creates a SendGrid sender. Returns nil when no API key is
// configured.
func NewSendGridSender(cfg SendGridConfig, logger *logging.Logger) *SendGridSender {
	if cfg.APIKey == "" {
		return nil
	}
	if cfg.Host == "" {
		cfg.Host = sendGridHost
	}
	if cfg.FromName == "" {
		cfg.FromName = "Your Survival Expert"
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SendGridSender{cfg: cfg, logger: logger}
}

// Send upserts the contact and emails the guide. The contact upsert is
// best-effort; a failure there does not block the email itself.
func (s *SendGridSender) Send(ctx context.Context, toEmail string, document []byte) error {
	if err := s.upsertContact(ctx, toEmail); err != nil {
		s.logger.Warn("sendgrid contact upsert failed", "to", toEmail, "error", err)
	}
	return s.sendMail(ctx, toEmail, document)
}

func (s *SendGridSender) upsertContact(ctx context.Context, email string) error {
	payload := map[string]interface{}{
		"contacts": []map[string]string{{"email": email}},
	}
	if s.cfg.ListID != "" {
		payload["list_ids"] = []string{s.cfg.ListID}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notify: marshal contact payload: %w", err)
	}

	request := sendgrid.GetRequest(s.cfg.APIKey, "/v3/marketing/contacts", s.cfg.Host)
	request.Method = rest.Put
	request.Body = body

	response, err := rest.SendWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("notify: sendgrid contact request failed: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("notify: sendgrid contact upsert returned status %d", response.StatusCode)
	}
	s.logger.Info("sendgrid contact upserted", "to", email, "status", response.StatusCode)
	return nil
}

func (s *SendGridSender) sendMail(ctx context.Context, toEmail string, document []byte) error {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(s.cfg.FromName, s.cfg.FromEmail))
	m.Subject = guideSubject

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", toEmail))
	m.AddPersonalizations(p)

	m.AddContent(mail.NewContent("text/html", guideHTMLBody))

	attachment := mail.NewAttachment()
	attachment.SetContent(base64.StdEncoding.EncodeToString(document))
	attachment.SetType("application/pdf")
	attachment.SetFilename(guideFilename)
	attachment.SetDisposition("attachment")
	m.AddAttachment(attachment)

	request := sendgrid.GetRequest(s.cfg.APIKey, "/v3/mail/send", s.cfg.Host)
	request.Method = rest.Post
	request.Body = mail.GetRequestBody(m)

	response, err := rest.SendWithContext(ctx, request)
	if err != nil {
		s.logger.Error("sendgrid send failed", "to", toEmail, "error", err)
		return fmt.Errorf("notify: sendgrid send failed: %w", err)
	}
	if response.StatusCode >= 400 {
		s.logger.Error("sendgrid returned error status", "to", toEmail, "status", response.StatusCode, "body", response.Body)
		return fmt.Errorf("notify: sendgrid returned status %d", response.StatusCode)
	}

	s.logger.Info("guide emailed via sendgrid", "to", toEmail, "status", response.StatusCode)
	return nil
}
