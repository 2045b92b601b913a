// Package router turns loosely typed intents from the UI, the automation
// client or the language model into engine operations.
package router

import (
	"encoding/json"
	"fmt"
	"kanban/models"
	"math"
	"strconv"
	"strings"
)

// Type tags an intent.
type Type string

const (
	CreateCard       Type = "create_card"
	UpdateCard       Type = "update_card"
	DeleteCard       Type = "delete_card"
	MoveCard         Type = "move_card"
	CreateColumn     Type = "create_column"
	UpdateColumn     Type = "update_column"
	DeleteColumn     Type = "delete_column"
	BoardSummary     Type = "board_summary"
	AskClarification Type = "ask_clarification"
	Error            Type = "error"
)

// Mutates reports whether intents of this type change the board.
func (t Type) Mutates() bool {
	switch t {
	case CreateCard, UpdateCard, DeleteCard, MoveCard, CreateColumn, UpdateColumn, DeleteColumn:
		return true
	}
	return false
}

// Intent is a request to change the board. Data comes straight from an
// external JSON document and is never trusted.
type Intent struct {
	Type Type           `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// Expand splits a create_card intent carrying a "cards" array into one
// intent per card. Fields set on the outer intent, such as the column,
// apply to every card unless the entry overrides them. Any other intent is
// returned unchanged.
func Expand(in Intent) []Intent {
	if in.Type != CreateCard {
		return []Intent{in}
	}
	list, ok := in.Data["cards"].([]any)
	if !ok || len(list) == 0 {
		return []Intent{in}
	}

	out := make([]Intent, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		data := make(map[string]any, len(in.Data)+len(entry))
		for k, v := range in.Data {
			if k != "cards" {
				data[k] = v
			}
		}
		for k, v := range entry {
			data[k] = v
		}
		out = append(out, Intent{Type: CreateCard, Data: data})
	}
	if len(out) == 0 {
		return []Intent{in}
	}
	return out
}

// str returns the first non-blank string stored under one of keys.
// Values of any other type are skipped; Apply rejects them up front.
func (in Intent) str(keys ...string) string {
	for _, k := range keys {
		if s, ok := in.Data[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

// optStr distinguishes an absent or blank field from a present one.
func (in Intent) optStr(key string) (string, bool) {
	s := in.str(key)
	return s, s != ""
}

// index reads an integer position. JSON numbers decode to float64; strings
// holding digits are accepted too. Negative and oversized values are kept
// for the engine to clamp.
func (in Intent) index(keys ...string) (int, bool) {
	for _, k := range keys {
		switch v := in.Data[k].(type) {
		case float64:
			if v == math.Trunc(v) && !math.IsInf(v, 0) {
				return int(max(min(v, math.MaxInt32), math.MinInt32)), true
			}
		case int:
			return v, true
		case json.Number:
			if n, err := v.Int64(); err == nil {
				return int(max(min(n, math.MaxInt32), math.MinInt32)), true
			}
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// textFields are read as strings by Apply.
var textFields = []string{
	"title", "description", "priority", "cardId", "cardTitle",
	"columnId", "columnName", "name", "newColumnName", "color",
}

// checkText rejects a text field holding a number, bool, list or object.
// Null counts as absent.
func (in Intent) checkText() error {
	for _, k := range textFields {
		v, ok := in.Data[k]
		if !ok || v == nil {
			continue
		}
		if _, ok := v.(string); !ok {
			return &models.ValidationError{Entity: "intent", Field: k, Constraint: "must be a string"}
		}
	}
	return nil
}

// tags reads a list of strings, dropping blanks and non-strings.
func (in Intent) tags(key string) ([]string, bool) {
	raw, ok := in.Data[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out, true
}

func (in Intent) String() string {
	return fmt.Sprintf("%s %v", in.Type, in.Data)
}
