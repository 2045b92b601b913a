package service

import (
	"context"
	"fmt"
	"kanban/models"
	"log/slog"
	"strings"
	"time"
)

// CommandResult is the interpreter's message plus what happened to each
// of the intents it produced.
type CommandResult struct {
	Message string         `json:"message"`
	Results []IntentResult `json:"results"`
}

// Commands runs free-text instructions through an Interpreter and applies
// the resulting intents.
type Commands struct {
	boards      *Boards
	interpreter Interpreter
}

// NewCommands returns a Commands. A nil interpreter makes every Run fail
// with ErrNoInterpreter.
func NewCommands(boards *Boards, interpreter Interpreter) *Commands {
	return &Commands{boards: boards, interpreter: interpreter}
}

// Run sends message and the current board to the interpreter and applies
// the intents it returns. The board lock is not held while waiting for the
// interpreter.
func (c *Commands) Run(ctx context.Context, projectID, message string) (*CommandResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("command message: %w", models.ErrInvalidInput)
	}
	if c.interpreter == nil {
		return nil, ErrNoInterpreter
	}

	b, err := c.boards.Board(ctx, projectID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	reply, err := c.interpreter.Interpret(ctx, b, message)
	if err != nil {
		slog.Error("interpreter failed", "project", projectID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrInterpreterFailed, err)
	}
	slog.Info("interpreter replied", "project", projectID, "actions", len(reply.Actions), "duration", time.Since(start))

	results, err := c.boards.ApplyIntents(ctx, projectID, reply.Actions)
	if err != nil {
		return nil, err
	}

	return &CommandResult{Message: reply.Message, Results: results}, nil
}
