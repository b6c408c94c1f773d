package profile

import (
	"regexp"
	"strings"
)

// Matchers are deliberately conservative: leaving a field unset just repeats a
// question, while a wrong guess misfiles the answer. Order matters where noted.
var (
	familyPattern   = regexp.MustCompile(`\b(family|kids|children|household|partner|spouse)\b`)
	selfPattern     = regexp.MustCompile(`\b(myself|yourself|self|just me|solo|single|only me|for me|me)\b`)
	advancedPattern = regexp.MustCompile(`\b(advanced|advance|expert|experienced)\b`)

	genericQuestionPattern = regexp.MustCompile(`\b(what|which|choices|options)\b`)
	concernCleanPattern    = regexp.MustCompile(`[^a-z\s-]`)

	householdSizePattern = regexp.MustCompile(`\b(\d{1,2})\b`)

	regionPrepositionPattern = regexp.MustCompile(`(?i)\b(?:in|from|near)\s+([A-Za-z\s]{2,40})`)
	regionStripPattern       = regexp.MustCompile(`[^a-z\s]`)
	lettersSpacesPattern     = regexp.MustCompile(`^[a-z\s]+$`)

	// Keywords claimed by other fields; a bare region guess must not contain them.
	otherFieldPattern = regexp.MustCompile(`\b(family|kids|children|household|partner|spouse|myself|self|solo|single|only me|beginner|intermediate|advanced)\b`)
)

var commonRegions = map[string]string{
	"us":                       "United States",
	"usa":                      "United States",
	"united states":            "United States",
	"united states of america": "United States",
	"uk":                       "United Kingdom",
	"united kingdom":           "United Kingdom",
	"canada":                   "Canada",
	"australia":                "Australia",
}

var greetingTerms = map[string]bool{
	"hi":        true,
	"hello":     true,
	"hey":       true,
	"yo":        true,
	"thanks":    true,
	"thank you": true,
	"ok":        true,
	"okay":      true,
}

// Extract tests every empty field of the schema against its matcher and fills
// it on first match. Fields already set are never touched, so applying Extract
// repeatedly over a conversation keeps the first answer per field.
func (s Schema) Extract(p Profile, message string) Profile {
	if message == "" {
		return p
	}

	updated := make(Profile, len(p))
	for k, v := range p {
		updated[k] = v
	}

	lower := strings.ToLower(message)
	for _, q := range s.questions {
		if updated[q.Field] != "" {
			continue
		}
		switch q.Field {
		case "preparingFor":
			updated[q.Field] = matchPreparingFor(lower)
		case "experience":
			updated[q.Field] = matchExperience(lower)
		case "concern":
			updated[q.Field] = matchConcern(message, lower)
		case "householdSize":
			updated[q.Field] = matchHouseholdSize(message)
		case "region":
			updated[q.Field] = matchRegion(message, lower)
		}
	}
	return updated
}

// Family keywords win over self keywords: "me and my kids" is a household.
func matchPreparingFor(lower string) string {
	if familyPattern.MatchString(lower) {
		return "Family or household"
	}
	if selfPattern.MatchString(lower) {
		return "Myself"
	}
	return ""
}

func matchExperience(lower string) string {
	switch {
	case strings.Contains(lower, "beginner"):
		return "Beginner"
	case strings.Contains(lower, "intermediate"):
		return "Intermediate"
	case advancedPattern.MatchString(lower):
		return "Advanced"
	}
	return ""
}

// A concern is a short declarative phrase: questions and "what are my options"
// style messages are skipped so they don't get filed as an answer.
func matchConcern(message, lower string) string {
	cleaned := strings.TrimSpace(concernCleanPattern.ReplaceAllString(lower, ""))
	if len(cleaned) < 3 || len(cleaned) > 40 {
		return ""
	}
	if strings.Contains(message, "?") || genericQuestionPattern.MatchString(lower) {
		return ""
	}
	return strings.TrimSpace(message)
}

func matchHouseholdSize(message string) string {
	if m := householdSizePattern.FindStringSubmatch(message); m != nil {
		return m[1]
	}
	return ""
}

// matchRegion tries three tiers, each only when the previous one found
// nothing: an "in/from/near X" phrase, a lookup of common region names, and
// finally a catch-all for short plain answers that no other field claims.
func matchRegion(message, lower string) string {
	if m := regionPrepositionPattern.FindStringSubmatch(message); m != nil {
		return strings.TrimSpace(m[1])
	}

	normalized := strings.TrimSpace(regionStripPattern.ReplaceAllString(lower, ""))
	if region, ok := commonRegions[normalized]; ok {
		return region
	}

	isShortRegion := len(normalized) >= 3 && len(normalized) <= 40 && lettersSpacesPattern.MatchString(normalized)
	if isShortRegion && !otherFieldPattern.MatchString(lower) && !greetingTerms[normalized] {
		return strings.TrimSpace(message)
	}
	return ""
}
