package router

import (
	"fmt"
	"kanban/models"
	"strings"
)

// Summarize describes the board in a few lines of plain text: card counts
// per column in display order, then counts per priority.
func Summarize(b *models.Board) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Board %q: %d columns, %d cards\n", b.Title, len(b.Columns), len(b.Cards))
	for _, col := range b.OrderedColumns() {
		fmt.Fprintf(&sb, "- %s: %s\n", col.Title, plural(len(col.CardIDs), "card"))
	}

	counts := map[models.Priority]int{}
	for _, card := range b.Cards {
		counts[card.Priority]++
	}
	parts := []string{}
	for _, p := range []models.Priority{models.PriorityCritical, models.PriorityHigh, models.PriorityMedium, models.PriorityLow} {
		if n := counts[p]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, p))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(&sb, "Priorities: %s\n", strings.Join(parts, ", "))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
