// Package chat selects the next reply to show the user for one conversation
// turn, combining the extracted profile state with an optional reply from the
// completion service.
package chat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ready-network/prepguide/internal/llm"
	"github.com/ready-network/prepguide/internal/profile"
)

const readyReply = "Thanks — I have what I need. " +
	"If you'd like, I can generate a personalized preparedness guide and email it to you."

// emailMentionPattern guards against the completion service asking for an
// email address before the profile is complete.
var emailMentionPattern = regexp.MustCompile(`(?i)\bemail\b`)

// CannedReply returns the fixed reply used when the completion service is
// unavailable: the ready message when nothing is missing, otherwise the canned
// question for the first missing field.
func CannedReply(schema profile.Schema, missing []string) string {
	if len(missing) == 0 {
		return readyReply
	}
	return schema.Prompt(missing[0])
}

// PreemptReply handles messages that contain an email-shaped token before the
// completion service is consulted. The second return value is true when the
// turn is fully handled and the service must not be called.
func PreemptReply(schema profile.Schema, missing []string, latest string) (string, bool) {
	candidate := FindEmailCandidate(latest)
	if candidate == "" {
		return "", false
	}

	if addr := FindEmail(latest); addr != "" && ValidateEmail(addr) {
		if len(missing) > 0 {
			return "Got it — I'll ask for your email once we've covered the basics. " +
				schema.Prompt(missing[0]), true
		}
		return "Great — please use the email field below and I'll send your personalized guide there.", true
	}

	reply := "That email address doesn't look quite right. Could you double-check it?"
	if len(missing) > 0 {
		reply = fmt.Sprintf("%s In the meantime: %s", reply, schema.Prompt(missing[0]))
	}
	return reply, true
}

// SelectReply prefers a non-empty completion-service reply, except when fields
// are still missing and the reply mentions "email"; then the canned
// next-question reply is used instead.
func SelectReply(schema profile.Schema, missing []string, llmReply string) string {
	llmReply = strings.TrimSpace(llmReply)
	if llmReply == "" {
		return CannedReply(schema, missing)
	}
	if len(missing) > 0 && emailMentionPattern.MatchString(llmReply) {
		return CannedReply(schema, missing)
	}
	return llmReply
}

// SystemPrompt builds the completion-service system instruction for a chat
// turn, embedding the known profile and the fields still missing.
func SystemPrompt(schema profile.Schema, p profile.Profile, missing []string) string {
	fields := make([]string, 0, len(schema.Questions()))
	for _, q := range schema.Questions() {
		fields = append(fields, q.Field)
	}

	var b strings.Builder
	fmt.Fprintf(&b, chatPrompt, strings.Join(fields, ", "))
	b.WriteString("\n\nSite context:\n")
	b.WriteString(llm.SiteContext)
	b.WriteString("\n\nKnown profile:\n")
	for _, q := range schema.Questions() {
		fmt.Fprintf(&b, "%s: %s\n", q.Field, p[q.Field])
	}
	b.WriteString("Missing: ")
	b.WriteString(strings.Join(missing, ", "))
	return b.String()
}

const chatPrompt = "You are a calm, knowledgeable survival expert. " +
	"Speak clearly and practically. Ask one question at a time. " +
	"Avoid fear-based language. " +
	"Align guidance with the site context provided. Do not quote or reproduce site text verbatim; paraphrase. " +
	"Gather the following information naturally: %s. " +
	"When complete, summarize briefly and ask for an email to send a personalized PDF guide."
