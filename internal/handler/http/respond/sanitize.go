package respond

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxMessageLength caps the number of runes of a sanitized error message.
const MaxMessageLength = 512

// SanitizeError returns the error message with control characters replaced by
// spaces and truncated to MaxMessageLength runes. Parse errors quote cells of
// the uploaded CSV, so the message is untrusted text.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == utf8.RuneError {
			return ' '
		}
		return r
	}, err.Error())

	if utf8.RuneCountInString(msg) > MaxMessageLength {
		runes := []rune(msg)
		msg = string(runes[:MaxMessageLength]) + "..."
	}
	return msg
}
