package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
//
// Name uniqueness is intentionally NOT a schema constraint: the store layer
// performs the case-insensitive check inside its create transaction, so the
// engine only sees a plain column.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    price       REAL NOT NULL DEFAULT 0
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
