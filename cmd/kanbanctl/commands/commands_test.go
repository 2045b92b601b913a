package commands

import (
	"bytes"
	"errors"
	"kanban/database/sqlite"
	"kanban/handlers"
	"kanban/service"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	color.NoColor = true

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "kanban.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	boards := service.NewBoards(store)
	r := gin.New()
	handlers.RegisterRoutes(r.Group("/api/kanban"), handlers.App{
		Projects: service.NewProjects(store, boards),
		Boards:   boards,
		Commands: service.NewCommands(boards, nil),
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv.URL + "/api/kanban"
}

// run executes kanbanctl with args against server and returns stdout and stderr.
func run(t *testing.T, server string, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--server", server}, args...))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRun(t *testing.T, server string, args ...string) string {
	t.Helper()
	out, stderr, err := run(t, server, args...)
	require.NoError(t, err, stderr)
	return out
}

func TestBoardWorkflow(t *testing.T) {
	server := newTestServer(t)

	out := mustRun(t, server, "projects", "create", "Ops")
	assert.Contains(t, out, `Created project "Ops"`)

	out = mustRun(t, server, "tasks", "add", "Fix login", "--column", "in progress", "--priority", "high", "-t", "auth")
	assert.Contains(t, out, `Created "Fix login"`)

	out = mustRun(t, server, "board")
	assert.Contains(t, out, "Ops")
	assert.Contains(t, out, "In Progress (1)")
	assert.Contains(t, out, "Fix login [high] #auth")
	assert.Contains(t, out, "(empty)")

	out = mustRun(t, server, "tasks", "--priority", "high")
	assert.Contains(t, out, "1 of 1 tasks")

	out = mustRun(t, server, "columns", "add", "Review")
	assert.Contains(t, out, `Created column "Review"`)

	out = mustRun(t, server, "history")
	assert.Contains(t, out, `> Create column "Review"`)

	out = mustRun(t, server, "undo")
	assert.Contains(t, out, `now at "Create card \"Fix login\""`)

	out = mustRun(t, server, "redo")
	assert.Contains(t, out, "Redone")

	out = mustRun(t, server, "columns")
	assert.Contains(t, out, "Review")
}

func TestBoardYAMLExport(t *testing.T) {
	server := newTestServer(t)
	mustRun(t, server, "projects", "create", "Ops")

	out := mustRun(t, server, "board", "--output", "yaml")

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Ops", doc["title"])
	assert.Len(t, doc["columns"], 3)
}

func TestApplyIntentsFile(t *testing.T) {
	server := newTestServer(t)
	mustRun(t, server, "projects", "create", "Ops")

	path := filepath.Join(t.TempDir(), "intents.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- type: create_column
  data: {title: Review}
- type: create_card
  data: {title: Audit logs, columnName: Review, priority: high}
- type: delete_card
  data: {cardTitle: Missing}
`), 0o644))

	out := mustRun(t, server, "apply", "-f", path)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "✓ create_column")
	assert.Contains(t, lines[1], "✓ create_card")
	assert.Contains(t, lines[2], "! delete_card")
}

func TestErrorsAreReported(t *testing.T) {
	server := newTestServer(t)

	_, stderr, err := run(t, server, "board")
	require.Error(t, err)
	assert.Contains(t, stderr, "Failed to load board")

	_, _, err = run(t, server, "board", "--output", "xml")
	assert.Error(t, err)
}

func TestConfigSetAIKey(t *testing.T) {
	var stored string
	prevSet := setAIKey
	setAIKey = func(key string) error {
		stored = key
		return nil
	}
	t.Cleanup(func() { setAIKey = prevSet })

	root := newRootCmd()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetIn(strings.NewReader("  gsk-secret \n"))
	root.SetArgs([]string{"config", "set-ai-key"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "gsk-secret", stored)

	setAIKey = func(string) error { return errors.New("keyring locked") }
	root = newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"config", "set-ai-key", "abc"})
	assert.Error(t, root.Execute())
}
