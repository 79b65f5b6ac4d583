package sqlite

import "database/sql"

// schema sets up the database. It runs on startup and is idempotent.
// Users and shares are not tied to bills by foreign key: a roster may be
// built before its receipt is uploaded.
const schema = `
CREATE TABLE IF NOT EXISTS bills (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    store_name TEXT NOT NULL DEFAULT '',
    subtotal REAL NOT NULL,
    tax REAL NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
    bill_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    item_id INTEGER NOT NULL DEFAULT 0,
    name TEXT NOT NULL,
    price REAL NOT NULL,
    PRIMARY KEY (bill_id, position),
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS users (
    bill_id INTEGER NOT NULL,
    user_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (bill_id, user_id)
);

CREATE TABLE IF NOT EXISTS shares (
    id TEXT PRIMARY KEY,
    bill_id INTEGER NOT NULL,
    seq INTEGER NOT NULL,
    item_id INTEGER NOT NULL DEFAULT 0,
    item_name TEXT NOT NULL DEFAULT '',
    user_id INTEGER NOT NULL,
    share REAL NOT NULL,
    cost REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_shares_bill_id ON shares(bill_id, seq);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
