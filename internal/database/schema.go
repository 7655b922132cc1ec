package database

import "database/sql"

// Schema is the full DDL for a fresh database. Production startup goes
// through RunMigrations; tests and the in-memory path use EnsureSchema
// so they don't depend on the migrations directory being on disk.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id          TEXT PRIMARY KEY,
	email       TEXT NOT NULL UNIQUE,
	created_at  TIMESTAMP NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS projects (
	id              TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title           TEXT NOT NULL,
	status          TEXT NOT NULL DEFAULT 'wishlist',
	company         TEXT,
	artist          TEXT,
	drill_shape     TEXT,
	width           INTEGER,
	height          INTEGER,
	total_diamonds  INTEGER,
	kit_category    TEXT NOT NULL DEFAULT 'full',
	date_purchased  TIMESTAMP,
	date_started    TIMESTAMP,
	date_completed  TIMESTAMP,
	notes           TEXT NOT NULL DEFAULT '',
	image_url       TEXT,
	source_url      TEXT,
	created_at      TIMESTAMP NOT NULL,
	updated_at      TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS tags (
	id       TEXT PRIMARY KEY,
	user_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name     TEXT NOT NULL,
	UNIQUE(user_id, name)
);

CREATE TABLE IF NOT EXISTS project_tags (
	project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	tag_id      TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	PRIMARY KEY(project_id, tag_id)
);

CREATE TABLE IF NOT EXISTS progress_notes (
	id          TEXT PRIMARY KEY,
	project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	date        TIMESTAMP NOT NULL,
	content     TEXT NOT NULL DEFAULT '',
	image_url   TEXT,
	created_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS user_settings (
	id                  TEXT PRIMARY KEY,
	user_id             TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	navigation_context  BLOB NOT NULL,
	updated_at          TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_projects_user_status ON projects(user_id, status);
CREATE INDEX IF NOT EXISTS idx_projects_updated ON projects(updated_at);
CREATE INDEX IF NOT EXISTS idx_tags_user ON tags(user_id);
CREATE INDEX IF NOT EXISTS idx_settings_user ON user_settings(user_id);
`

// EnsureSchema creates all tables if they don't exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
