// Package sitecontext fetches plain text from a reference web page to enrich
// completion-service prompts. Fetching is strictly best-effort.
package sitecontext

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/ready-network/prepguide/internal/logging"
)

// maxTextLength caps how much page text is forwarded to the completion service.
const maxTextLength = 3000

// Fetcher retrieves and strips a fixed reference page.
type Fetcher struct {
	url        string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewFetcher creates a fetcher for the given page URL. Returns nil when no URL
// is configured.
func NewFetcher(url string, logger *logging.Logger) *Fetcher {
	if strings.TrimSpace(url) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Fetcher{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Text returns the page's visible text with tags stripped, whitespace
// collapsed, and length capped. Any failure returns "".
func (f *Fetcher) Text(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		f.logger.Warn("site context request build failed", "url", f.url, "error", err)
		return ""
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Warn("site context fetch failed", "url", f.url, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Warn("site context fetch returned non-200", "url", f.url, "status", resp.StatusCode)
		return ""
	}

	text := stripTags(resp.Body)
	if len(text) > maxTextLength {
		text = text[:maxTextLength]
	}
	return text
}

// stripTags extracts visible text from markup, skipping script and style
// subtrees and collapsing runs of whitespace to single spaces.
func stripTags(body io.Reader) string {
	z := html.NewTokenizer(body)
	var words []string
	skipDepth := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(words, " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if isInvisible(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if isInvisible(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				words = append(words, strings.Fields(string(z.Text()))...)
			}
		}
	}
}

func isInvisible(tag string) bool {
	return tag == "script" || tag == "style" || tag == "noscript"
}
