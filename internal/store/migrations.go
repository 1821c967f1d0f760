package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS customers (
	id           TEXT PRIMARY KEY,
	company_name TEXT NOT NULL,
	contact_name TEXT NOT NULL DEFAULT '',
	logo_initial TEXT NOT NULL DEFAULT '',
	sort_order   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS engineers (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	initials    TEXT NOT NULL DEFAULT '',
	tags        TEXT NOT NULL DEFAULT '[]',
	color       TEXT NOT NULL DEFAULT '',
	specialties TEXT NOT NULL DEFAULT '[]',
	sort_order  INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_customers_sort ON customers(sort_order);
CREATE INDEX IF NOT EXISTS idx_engineers_sort ON engineers(sort_order);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
