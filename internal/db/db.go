package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory store.
const MemoryPath = ":memory:"

// BusyTimeoutMS is how long a writer waits on a lock held by another bmo
// process (a running `feed watch`, the TUI) before failing with SQLITE_BUSY.
const BusyTimeoutMS = 5000

// connPragmas run on every new connection in the pool, not just the first.
var connPragmas = []string{
	"journal_mode(WAL)",
	"foreign_keys(1)",
	fmt.Sprintf("busy_timeout(%d)", BusyTimeoutMS),
}

// dsn builds the modernc connection string. Transactions take the write
// lock at BEGIN so two importers never deadlock upgrading a read lock.
func dsn(path string) string {
	q := url.Values{}
	for _, p := range connPragmas {
		q.Add("_pragma", p)
	}
	q.Set("_txlock", "immediate")
	return path + "?" + q.Encode()
}

// OpenDB opens the alert store at path and migrates it. Parent directories
// are created for file stores.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	// Every connection to :memory: is a separate database.
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s: %w", path, err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
