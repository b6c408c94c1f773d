package chat

import (
	"regexp"
	"strings"
)

var (
	// looseEmailPattern catches anything shaped like an email attempt, dotted
	// domain or not, so malformed addresses get a correction instead of
	// silently falling through.
	looseEmailPattern = regexp.MustCompile(`\S+@\S+`)

	// strictEmailPattern only matches well-formed addresses with a dotted
	// domain; candidates found by it still go through ValidateEmail.
	strictEmailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	localPattern  = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+$`)
	domainPattern = regexp.MustCompile(`^[A-Za-z0-9\-]+(\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}$`)
)

// FindEmailCandidate returns the first email-shaped token in the message,
// or "" when there is none.
func FindEmailCandidate(message string) string {
	return looseEmailPattern.FindString(message)
}

// FindEmail returns the first well-formed email substring in the message,
// or "" when there is none.
func FindEmail(message string) string {
	return strictEmailPattern.FindString(message)
}

// ValidateEmail reports whether the address is acceptable as a delivery
// destination. Stricter than the detection patterns: it also rejects oversized
// or dot-mangled local parts and hyphen-edged domain labels.
func ValidateEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	local, domain := parts[0], parts[1]

	if local == "" || len(local) > 64 || !localPattern.MatchString(local) {
		return false
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}

	if len(domain) < 3 {
		return false
	}
	if !domainPattern.MatchString(domain) {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
	}
	return true
}
