package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"kanban/models"
	"os"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

func init() {
	// Users can disable colors with NO_COLOR.
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan, color.Bold)
	faint  = color.New(color.Faint)
)

func success(w io.Writer, format string, a ...any) {
	green.Fprintf(w, "✓ %s\n", fmt.Sprintf(format, a...))
}

func warning(w io.Writer, format string, a ...any) {
	yellow.Fprintf(w, "! %s\n", fmt.Sprintf(format, a...))
}

// render writes v as JSON or YAML. It returns false for the table format so
// the caller prints its own view.
func render(w io.Writer, format string, v any) (bool, error) {
	switch strings.ToLower(format) {
	case "", "table":
		return false, nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case "yaml":
		// Round-trip through JSON so YAML keys match the API field names.
		data, err := json.Marshal(v)
		if err != nil {
			return true, err
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return true, err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return true, enc.Encode(generic)
	default:
		return true, fmt.Errorf("unknown output format %q", format)
	}
}

func priorityColor(p models.Priority) *color.Color {
	switch p {
	case models.PriorityCritical:
		return red
	case models.PriorityHigh:
		return yellow
	case models.PriorityLow:
		return faint
	default:
		return color.New(color.Reset)
	}
}

func printCard(w io.Writer, card *models.Card) {
	fmt.Fprintf(w, "  %s  %s ", faint.Sprint(card.ID), card.Title)
	priorityColor(card.Priority).Fprintf(w, "[%s]", card.Priority)
	if len(card.Tags) > 0 {
		fmt.Fprintf(w, " #%s", strings.Join(card.Tags, " #"))
	}
	fmt.Fprintln(w)
}

func printBoard(w io.Writer, b *models.Board) {
	cyan.Fprintf(w, "%s\n", b.Title)
	for _, col := range b.OrderedColumns() {
		fmt.Fprintf(w, "\n%s (%d)  %s\n", color.New(color.Bold).Sprint(col.Title), len(col.CardIDs), faint.Sprint(col.ID))
		if len(col.CardIDs) == 0 {
			faint.Fprintln(w, "  (empty)")
		}
		for _, id := range col.CardIDs {
			if card, ok := b.Cards[id]; ok {
				printCard(w, card)
			}
		}
	}
}

func printColumns(w io.Writer, cols []models.Column) {
	for _, col := range cols {
		fmt.Fprintf(w, "%d  %-20s %s  %d cards\n", col.Position, col.Title, faint.Sprint(col.ID), len(col.CardIDs))
	}
}
