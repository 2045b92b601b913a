package ai

import (
	"encoding/json"
	"fmt"
	"kanban/models"
	"kanban/router"
	"kanban/service"
	"strings"
)

// maxPromptCards limits how many cards are described to the model.
const maxPromptCards = 20

type promptColumn struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CardCount int    `json:"cardCount"`
}

type promptCard struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Column   string          `json:"column"`
	Priority models.Priority `json:"priority"`
}

// SystemPrompt describes the board and the reply format to the model.
func SystemPrompt(b *models.Board) string {
	columns := []promptColumn{}
	cards := []promptCard{}
	names := []string{}

	for _, col := range b.OrderedColumns() {
		columns = append(columns, promptColumn{ID: col.ID, Name: col.Title, CardCount: len(col.CardIDs)})
		names = append(names, col.Title)
		for _, id := range col.CardIDs {
			if card, ok := b.Cards[id]; ok {
				cards = append(cards, promptCard{ID: card.ID, Title: card.Title, Column: col.Title, Priority: card.Priority})
			}
		}
	}

	more := ""
	if len(cards) > maxPromptCards {
		more = fmt.Sprintf(" ... and %d more", len(cards)-maxPromptCards)
		cards = cards[:maxPromptCards]
	}

	columnsJSON, _ := json.Marshal(columns)
	cardsJSON, _ := json.Marshal(cards)

	var sb strings.Builder
	sb.WriteString("You are an assistant for a kanban board. You help users manage their tasks through natural language commands.\n\n")
	sb.WriteString("CURRENT BOARD STATE:\n")
	fmt.Fprintf(&sb, "- Board: %q\n", b.Title)
	fmt.Fprintf(&sb, "- Columns: %s\n", columnsJSON)
	fmt.Fprintf(&sb, "- Cards: %s%s\n\n", cardsJSON, more)
	sb.WriteString(`AVAILABLE ACTIONS:
1. create_card - needs title and columnId or columnName; optional description, priority (low, medium, high, critical), tags
2. move_card - needs cardId or cardTitle, and columnId or columnName; optional index
3. delete_card - needs cardId or cardTitle
4. update_card - needs cardId or cardTitle; optional title, description, priority, tags
5. create_column - needs title
6. update_column - needs columnId or columnName, and newColumnName
7. delete_column - needs columnId or columnName; this deletes every card in the column
8. board_summary - summarize the board
9. ask_clarification - ask for missing information in data.question

RESPONSE FORMAT:
Always respond with a single JSON object:
{"message": "reply to the user, in their language", "actions": [{"type": "action_type", "data": {}}]}

RULES:
1. Respond in the same language the user used.
2. If required information is missing, use ask_clarification.
3. To create several cards at once, put them in data.cards.
`)
	fmt.Fprintf(&sb, "4. Known columns: %s.\n", strings.Join(names, ", "))

	return sb.String()
}

type replyJSON struct {
	Message string          `json:"message"`
	Actions []router.Intent `json:"actions"`
}

// ParseReply extracts the outermost JSON object from content. Content
// without a parseable object becomes the message with no actions.
func ParseReply(content string) *service.Reply {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return &service.Reply{Message: strings.TrimSpace(content)}
	}

	var parsed replyJSON
	if err := json.Unmarshal([]byte(content[start:end+1]), &parsed); err != nil {
		return &service.Reply{Message: strings.TrimSpace(content)}
	}

	actions := make([]router.Intent, 0, len(parsed.Actions))
	for _, a := range parsed.Actions {
		if a.Type != "" {
			actions = append(actions, a)
		}
	}
	return &service.Reply{Message: parsed.Message, Actions: actions}
}
