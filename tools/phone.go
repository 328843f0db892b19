package tools

import (
	"fmt"
	"strings"
	"unicode"
)

// NormalizePhone normalizes a phone number to E.164 ("+1XXXXXXXXXX") so
// Twilio sender addresses and stored numbers compare equal.
//
// Heuristic (NANP):
// - strip everything that is not a digit
// - 10 digits: assume US/Canada, prefix country code 1
// - 11 digits starting with 1: already has the country code
// - anything longer is kept as-is (international number with its own code)
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty phone")
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	phone := b.String()

	if len(phone) == 10 {
		phone = "1" + phone
	}

	if len(phone) < 11 {
		return "", fmt.Errorf("invalid phone length: %d", len(phone))
	}
	return "+" + phone, nil
}
