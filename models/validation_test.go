package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Priority
		wantErr  bool
	}{
		{name: "empty defaults to medium", input: "", expected: PriorityMedium},
		{name: "low", input: "low", expected: PriorityLow},
		{name: "mixed case", input: "High", expected: PriorityHigh},
		{name: "padded", input: "  critical ", expected: PriorityCritical},
		{name: "unknown", input: "urgent", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParsePriority(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "Website", wantErr: false},
		{name: "exactly 50", input: strings.Repeat("a", 50), wantErr: false},
		{name: "51 characters", input: strings.Repeat("a", 51), wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "multibyte counted by rune", input: strings.Repeat("é", 50), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCard_Validate(t *testing.T) {
	valid := Card{ID: "c1", Title: "Fix", ColumnID: "todo", Priority: PriorityLow}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Card)
		field  string
	}{
		{name: "missing id", mutate: func(c *Card) { c.ID = "" }, field: "id"},
		{name: "empty title", mutate: func(c *Card) { c.Title = " " }, field: "title"},
		{name: "missing column", mutate: func(c *Card) { c.ColumnID = "" }, field: "columnId"},
		{name: "bad priority", mutate: func(c *Card) { c.Priority = "urgent" }, field: "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := valid
			tt.mutate(&card)

			err := card.Validate()

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "card", verr.Entity)
			assert.Equal(t, tt.field, verr.Field)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestColumn_Validate(t *testing.T) {
	col := Column{ID: "todo", Title: "TODO"}
	assert.NoError(t, col.Validate())

	col.Title = strings.Repeat("x", 51)
	assert.ErrorIs(t, col.Validate(), ErrInvalidInput)

	col.Title = "TODO"
	col.Position = -1
	assert.ErrorIs(t, col.Validate(), ErrInvalidInput)
}

func TestValidationError_Message(t *testing.T) {
	err := ValidateColumnTitle("")
	assert.Equal(t, "invalid column title: cannot be empty", err.Error())
	assert.False(t, errors.Is(err, ErrNotFound))
}
