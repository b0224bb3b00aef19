package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate brings the schema up to date. Statements are re-run on every open,
// so each one must be idempotent; ALTER TABLE ADD COLUMN is tolerated by
// ignoring "duplicate column name".
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS alerts (
		id                 TEXT PRIMARY KEY,
		title              TEXT NOT NULL,
		description        TEXT NOT NULL DEFAULT '',
		severity           TEXT NOT NULL
		                   CHECK(severity IN ('critical','warning','info','success')),
		status             TEXT NOT NULL DEFAULT 'active'
		                   CHECK(status IN ('active','acknowledged','resolved','escalated','archived')),
		source             TEXT NOT NULL DEFAULT '',
		module             TEXT NOT NULL DEFAULT '',
		assigned_to        TEXT NOT NULL DEFAULT '',
		escalated_to       TEXT NOT NULL DEFAULT '',
		note               TEXT NOT NULL DEFAULT '',
		has_impact         INTEGER NOT NULL DEFAULT 0,
		impact_financial   REAL NOT NULL DEFAULT 0,
		impact_operational TEXT NOT NULL DEFAULT ''
		                   CHECK(impact_operational IN ('','low','medium','high')),
		impact_reputation  TEXT NOT NULL DEFAULT ''
		                   CHECK(impact_reputation IN ('','low','medium','high')),
		created_at         TEXT NOT NULL,
		updated_at         TEXT,
		resolved_at        TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_alerts_status ON alerts(status)`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_created ON alerts(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_module ON alerts(module)`,

	`CREATE TABLE IF NOT EXISTS preferences (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}
