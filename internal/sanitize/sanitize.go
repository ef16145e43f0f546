// Package sanitize normalizes free-form user input before it is stored.
package sanitize

import (
	"strings"
	"time"
	"unicode"

	"github.com/dmitrijs2005/dailykeep/internal/common"
)

const (
	DefaultMaxLen = 250
	EmailMaxLen   = 120
)

// Text trims value, drops control characters and the characters < > and `,
// and truncates the result to maxLen runes. Runs of whitespace collapse to a
// single space unless allowNewLines is set, in which case line breaks are
// kept and carriage returns removed. A maxLen of zero or less means
// DefaultMaxLen.
func Text(value string, maxLen int, allowNewLines bool) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}

	var b strings.Builder
	b.Grow(len(value))
	lastSpace := false
	for _, r := range strings.TrimSpace(value) {
		switch {
		case r == '<' || r == '>' || r == '`':
			continue
		case allowNewLines && r == '\n':
			b.WriteRune(r)
			lastSpace = false
			continue
		case !allowNewLines && unicode.IsSpace(r):
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
			continue
		case unicode.IsControl(r):
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}

	out := []rune(b.String())
	if len(out) > maxLen {
		out = out[:maxLen]
	}
	return string(out)
}

// Email is Text limited to EmailMaxLen and lowercased.
func Email(value string) string {
	return strings.ToLower(Text(value, EmailMaxLen, false))
}

// LooksLikeEmail is a minimal shape check: something@something.tld.
func LooksLikeEmail(value string) bool {
	local, domain, ok := strings.Cut(value, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1 && !strings.ContainsAny(value, " ")
}

// IsISODate reports whether value is empty or a valid YYYY-MM-DD date.
func IsISODate(value string) bool {
	if value == "" {
		return true
	}
	_, err := time.Parse(common.DateLayout, value)
	return err == nil
}
