package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "step must be positive",
			field:    "step",
			message:  "must be positive",
			expected: "validation error on field 'step': must be positive",
		},
		{
			name:     "unparseable start",
			field:    "start",
			message:  "invalid number",
			expected: "validation error on field 'start': invalid number",
		},
		{
			name:     "empty message",
			field:    "end",
			message:  "",
			expected: "validation error on field 'end': ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ValidationError{Field: tt.field, Message: tt.message}
			assert.Equal(t, tt.expected, err.Error())
			assert.True(t, errors.Is(err, ErrValidationFailed))
		})
	}
}

func TestSchemaError(t *testing.T) {
	err := fmt.Errorf("read observations: %w", &SchemaError{Missing: []string{ColumnEnergy}})

	assert.True(t, errors.Is(err, ErrSchema))
	assert.Contains(t, err.Error(), "Temperature(K), TotalEnergy")
	assert.Contains(t, err.Error(), "missing: TotalEnergy")

	var se *SchemaError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, []string{ColumnEnergy}, se.Missing)
}

func TestFitError_Is(t *testing.T) {
	tests := []struct {
		name     string
		kind     FitErrorKind
		matches  []error
		excludes []error
	}{
		{
			name:     "insufficient data",
			kind:     InsufficientData,
			matches:  []error{ErrInsufficientData},
			excludes: []error{ErrInvalidInput, ErrDegenerate},
		},
		{
			name:     "invalid temperature is also invalid input",
			kind:     InvalidTemperature,
			matches:  []error{ErrInvalidTemperature, ErrInvalidInput},
			excludes: []error{ErrDegenerate},
		},
		{
			name:     "invalid input is not invalid temperature",
			kind:     InvalidInput,
			matches:  []error{ErrInvalidInput},
			excludes: []error{ErrInvalidTemperature},
		},
		{
			name:     "degenerate",
			kind:     Degenerate,
			matches:  []error{ErrDegenerate},
			excludes: []error{ErrInsufficientData, ErrInvalidInput},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fmt.Errorf("fit: %w", &FitError{Kind: tt.kind, Row: -1, Message: "x"})
			for _, target := range tt.matches {
				assert.ErrorIs(t, err, target)
			}
			for _, target := range tt.excludes {
				assert.NotErrorIs(t, err, target)
			}
		})
	}
}

func TestFitError_Message(t *testing.T) {
	withRow := &FitError{Kind: InvalidTemperature, Row: 2, Message: "temperature must be positive, got 0"}
	assert.Equal(t, "invalid temperature: observation 2: temperature must be positive, got 0", withRow.Error())

	whole := &FitError{Kind: InsufficientData, Row: -1, Message: "no observations"}
	assert.Equal(t, "insufficient data: no observations", whole.Error())

	assert.Equal(t, "degenerate", Degenerate.String())
	assert.Equal(t, "unknown", FitErrorKind(0).String())
}

func TestTermRow_Values(t *testing.T) {
	row := TermRow{Temperature: 300, Terms: [TermCount]float64{1, 2, 3, 4, 5, 6}, Total: 21}
	assert.Equal(t, [TermCount + 1]float64{1, 2, 3, 4, 5, 6, 21}, row.Values())

	table := TermTable{Rows: []TermRow{row, {Temperature: 330, Total: 7}}}
	assert.Equal(t, []float64{300, 330}, table.Temperatures())
	assert.Equal(t, []float64{21, 7}, table.Column(TermCount))
	assert.Equal(t, []float64{3, 0}, table.Column(2))
}
