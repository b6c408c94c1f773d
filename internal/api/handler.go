// Package api exposes the chat intake and guide generation endpoints.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ready-network/prepguide/internal/chat"
	"github.com/ready-network/prepguide/internal/guide"
	"github.com/ready-network/prepguide/internal/llm"
	"github.com/ready-network/prepguide/internal/logging"
	"github.com/ready-network/prepguide/internal/notify"
	"github.com/ready-network/prepguide/internal/pdf"
	"github.com/ready-network/prepguide/internal/profile"
)

const (
	guideTitle = "Personalized Survival Guide"

	// Only the most recent messages are forwarded to the completion service.
	historyWindow = 10

	chatTimeout  = 15 * time.Second
	guideTimeout = 20 * time.Second
)

// Handler serves the intake API. All state lives in the request.
type Handler struct {
	schema    profile.Schema
	completer llm.Completer // nil when no completion service is configured
	composer  *guide.Composer
	sender    notify.Sender
	logger    *logging.Logger
}

// NewHandler wires the intake endpoints together.
func NewHandler(schema profile.Schema, completer llm.Completer, composer *guide.Composer, sender notify.Sender, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if sender == nil {
		sender = notify.NewStubSender(logger)
	}
	return &Handler{
		schema:    schema,
		completer: completer,
		composer:  composer,
		sender:    sender,
		logger:    logger,
	}
}

// Register mounts the API routes.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/api/health", h.HandleHealth)
	r.POST("/api/chat", h.HandleChat)
	r.POST("/api/guide", h.HandleGuide)
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// HandleChat runs one conversation turn: extract profile fields from the
// latest user message, then pick the next reply.
func (h *Handler) HandleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p := h.schema.Normalize(req.Profile)
	latest := latestUserMessage(req.Messages)
	p = h.schema.Extract(p, latest)
	missing := h.schema.Missing(p)

	reply, handled := chat.PreemptReply(h.schema, missing, latest)
	if !handled {
		reply = chat.SelectReply(h.schema, missing, h.completeChat(c.Request.Context(), p, missing, req.Messages))
	}

	c.JSON(http.StatusOK, ChatResponse{
		Reply:         reply,
		Profile:       p,
		ReadyForEmail: len(missing) == 0,
	})
}

// completeChat asks the completion service for a reply. Returns "" when the
// service is unconfigured, errored, or returned nothing; the caller falls back
// to canned text.
func (h *Handler) completeChat(ctx context.Context, p profile.Profile, missing []string, messages []ChatMessage) string {
	if h.completer == nil {
		return ""
	}

	if len(messages) > historyWindow {
		messages = messages[len(messages)-historyWindow:]
	}
	msgs := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, llm.Message{Role: m.Role, Content: m.Content})
	}
	if len(msgs) == 0 {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	reply, err := h.completer.Complete(ctx, chat.SystemPrompt(h.schema, p, missing), msgs)
	if err != nil {
		h.logger.Warn("completion service unavailable", "error", err)
		return ""
	}
	return reply
}

// HandleGuide composes, renders, and emails the personalized guide. Delivery
// is fire-and-forget: the caller sees {ok:true} even when sending fails.
func (h *Handler) HandleGuide(c *gin.Context) {
	var req GuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	email := strings.TrimSpace(req.Email)
	if !chat.ValidateEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email address"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), guideTimeout)
	defer cancel()

	p := h.schema.Normalize(req.Profile)
	body := h.composer.Build(ctx, h.schema, p)

	fields := make([]pdf.Field, 0, len(h.schema.Questions()))
	for _, q := range h.schema.Questions() {
		fields = append(fields, pdf.Field{Label: q.Label, Value: p[q.Field]})
	}

	document, err := pdf.Render(guideTitle, body, fields)
	if err != nil {
		h.logger.Error("guide rendering failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate guide"})
		return
	}

	if err := h.sender.Send(ctx, email, document); err != nil {
		h.logger.Error("guide delivery failed", "to", email, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func latestUserMessage(messages []ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == llm.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}
