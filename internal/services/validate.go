package services

import (
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/trackly/internal/common"
)

// NormalizeEmail trims and lower-cases email and checks that it has exactly
// one '@' with something on both sides.
func NormalizeEmail(email string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	local, domain, ok := strings.Cut(e, "@")
	if !ok || local == "" || domain == "" || strings.Contains(domain, "@") || strings.ContainsAny(e, " \t\r\n") {
		return "", common.ErrInvalidEmail
	}
	return e, nil
}

// defaultDisplayName is the local part of an already normalized email.
func defaultDisplayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

func checkPassword(password string, minLen int) error {
	if utf8.RuneCountInString(password) < minLen {
		return common.ErrPasswordTooShort
	}
	return nil
}

// normalizeTags trims tags, drops empty ones and removes duplicates while
// keeping the first occurrence order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
