package models

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MaxProjectNameLength = 50
	MaxColumnTitleLength = 50
	MaxCardTitleLength   = 255
)

// ParsePriority accepts a priority name in any case. An empty string
// yields DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DefaultPriority, nil
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return p, nil
	default:
		return "", invalid("card", "priority", "must be one of low, medium, high, critical")
	}
}

// Valid reports whether p is a member of the priority enum.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ValidateProjectName checks the trimmed name is non-empty and at most 50 characters.
func ValidateProjectName(name string) error {
	return validateTitle("project", "name", name, MaxProjectNameLength)
}

// ValidateColumnTitle checks a column title before it is committed.
func ValidateColumnTitle(title string) error {
	return validateTitle("column", "title", title, MaxColumnTitleLength)
}

// ValidateCardTitle checks a card title before it is committed.
func ValidateCardTitle(title string) error {
	return validateTitle("card", "title", title, MaxCardTitleLength)
}

// Validate is the single validation entry point for a column.
func (c *Column) Validate() error {
	if c.ID == "" {
		return invalid("column", "id", "is required")
	}
	if err := ValidateColumnTitle(c.Title); err != nil {
		return err
	}
	if c.Position < 0 {
		return invalid("column", "position", "must not be negative")
	}
	return nil
}

// Validate is the single validation entry point for a card.
func (c *Card) Validate() error {
	if c.ID == "" {
		return invalid("card", "id", "is required")
	}
	if err := ValidateCardTitle(c.Title); err != nil {
		return err
	}
	if c.ColumnID == "" {
		return invalid("card", "columnId", "is required")
	}
	if !c.Priority.Valid() {
		return invalid("card", "priority", "must be one of low, medium, high, critical")
	}
	return nil
}

func validateTitle(entity, field, value string, limit int) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return invalid(entity, field, "cannot be empty")
	}
	if utf8.RuneCountInString(value) > limit {
		return invalid(entity, field, "cannot exceed "+strconv.Itoa(limit)+" characters")
	}
	return nil
}
