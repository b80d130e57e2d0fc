package respond

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name  string
		input error
		want  string
	}{
		{"nil error", nil, ""},
		{"plain message", errors.New("line 2: missing TotalEnergy value"), "line 2: missing TotalEnergy value"},
		{"newline injected", errors.New("value \"1\nlevel=ERROR\" is not a number"), "value \"1 level=ERROR\" is not a number"},
		{"escape sequence", errors.New("bad \x1b[31mred"), "bad  [31mred"},
		{"unicode kept", errors.New("α = 2.317456"), "α = 2.317456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeError(tt.input))
		})
	}
}

func TestSanitizeError_Truncates(t *testing.T) {
	got := SanitizeError(errors.New(strings.Repeat("é", MaxMessageLength+10)))

	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, MaxMessageLength+3, utf8.RuneCountInString(got))
}
