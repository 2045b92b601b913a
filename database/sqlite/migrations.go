package sqlite

type migration struct {
	version int
	sql     string
}

// migrations run in order; versions start at 1 and never change once
// released.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	created_at       TEXT NOT NULL,
	updated_at       TEXT NOT NULL,
	last_accessed_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS boards (
	project_id TEXT PRIMARY KEY REFERENCES projects(id) ON DELETE CASCADE,
	id         TEXT NOT NULL,
	data       TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_projects_created_at ON projects(created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
