// Package guide composes the plain-text body of the personalized
// preparedness guide.
package guide

import (
	"context"
	"fmt"
	"strings"

	"github.com/ready-network/prepguide/internal/llm"
	"github.com/ready-network/prepguide/internal/logging"
	"github.com/ready-network/prepguide/internal/profile"
	"github.com/ready-network/prepguide/internal/sitecontext"
)

const guidePrompt = "You are a calm survival expert. " +
	"Write a personalized emergency preparedness guide.\n\n" +
	"Structure:\n" +
	"- Short overview paragraph\n" +
	"- Checklist with bullet points\n" +
	"- Practical, low-stress next steps\n\n" +
	"Tone: calm, practical, non-alarmist.\n" +
	"Align guidance with the site context provided. Do not quote or reproduce site text verbatim; paraphrase."

// Composer builds guide text via the completion service, falling back to a
// fixed template when the service is unavailable.
type Composer struct {
	completer llm.Completer        // nil when no completion service is configured
	fetcher   *sitecontext.Fetcher // nil when no reference page is configured
	logger    *logging.Logger
}

// NewComposer creates a guide composer. Both completer and fetcher may be nil.
func NewComposer(completer llm.Completer, fetcher *sitecontext.Fetcher, logger *logging.Logger) *Composer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Composer{completer: completer, fetcher: fetcher, logger: logger}
}

// Build returns the guide body for the profile. Never fails: any problem with
// the completion service degrades to the fallback template.
func (c *Composer) Build(ctx context.Context, schema profile.Schema, p profile.Profile) string {
	fallback := fallbackGuide(p)
	if c.completer == nil {
		return fallback
	}

	system := guidePrompt + "\n\nSite context:\n" + llm.SiteContext
	if c.fetcher != nil {
		if extra := c.fetcher.Text(ctx); extra != "" {
			system += "\n\nReference page:\n" + extra
		}
	}

	text, err := c.completer.Complete(ctx, system, []llm.Message{
		{Role: llm.RoleUser, Content: profileSummary(schema, p)},
	})
	if err != nil {
		c.logger.Warn("guide composition fell back to template", "error", err)
		return fallback
	}
	if strings.TrimSpace(text) == "" {
		return fallback
	}
	return text
}

func profileSummary(schema profile.Schema, p profile.Profile) string {
	var b strings.Builder
	for _, q := range schema.Questions() {
		fmt.Fprintf(&b, "%s: %s\n", q.Field, p[q.Field])
	}
	return b.String()
}

func fallbackGuide(p profile.Profile) string {
	return fmt.Sprintf("Overview\n"+
		"You are preparing for %s in %s.\n\n"+
		"Checklist\n"+
		"- Secure water and food supplies\n"+
		"- Prepare lighting and power backups\n"+
		"- Establish a communication plan\n"+
		"- Review local alerts\n\n"+
		"Next Steps\n"+
		"Start with essentials and expand gradually.",
		p["preparingFor"], p["region"])
}
