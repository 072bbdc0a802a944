package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
//
// payments is keyed (member_id, period_index): the primary key enforces
// "at most one record per member per period", so transitions upsert
// against it and can never fork a second row.
const schema = `
CREATE TABLE IF NOT EXISTS chit_config (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    total_value INTEGER NOT NULL,
    fixed_collection INTEGER NOT NULL,
    payout_base INTEGER NOT NULL,
    duration_months INTEGER NOT NULL,
    start_date TEXT NOT NULL,
    admin_phone TEXT NOT NULL,
    admin_pin_hash TEXT NOT NULL DEFAULT '',
    upi_id TEXT NOT NULL DEFAULT '',
    upi_name TEXT NOT NULL DEFAULT '',
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    phone TEXT NOT NULL,
    join_date TEXT NOT NULL,
    side_fund INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS payments (
    member_id TEXT NOT NULL,
    period_index INTEGER NOT NULL,
    amount INTEGER NOT NULL,
    custom_amount INTEGER,
    extra_amount INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL,
    method TEXT NOT NULL DEFAULT '',
    payment_date TEXT NOT NULL DEFAULT '',
    receipt_url TEXT NOT NULL DEFAULT '',
    receipt_name TEXT NOT NULL DEFAULT '',
    note TEXT NOT NULL DEFAULT '',
    updated_at INTEGER NOT NULL,
    PRIMARY KEY (member_id, period_index),
    FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS auctions (
    period_index INTEGER PRIMARY KEY,
    amount INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_payments_period ON payments(period_index);
CREATE INDEX IF NOT EXISTS idx_payments_status ON payments(status);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
