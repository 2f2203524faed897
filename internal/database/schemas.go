package database

// schemas is the single source of truth for each database's schema, keyed by
// the friendly database name passed in Config.Name.
var schemas = map[string]string{
	// journal.db - per-user profile and trade entry documents.
	// Documents are JSON blobs; the date column carries the canonical
	// YYYY-MM-DD key so month and year scopes are plain range scans.
	"journal": `
CREATE TABLE IF NOT EXISTS users (
	user_id    TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trade_entries (
	user_id    TEXT NOT NULL,
	date       TEXT NOT NULL,
	data       TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (user_id, date)
);

CREATE INDEX IF NOT EXISTS idx_trade_entries_user_date
	ON trade_entries (user_id, date);
`,

	// cache.db - ephemeral month snapshots (msgpack blobs with expiry).
	"cache": `
CREATE TABLE IF NOT EXISTS month_cache (
	user_id    TEXT NOT NULL,
	month_key  TEXT NOT NULL,
	data       BLOB NOT NULL,
	expires_at INTEGER NOT NULL,
	PRIMARY KEY (user_id, month_key)
);
`,
}
