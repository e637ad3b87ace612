package remdb

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultBusyTimeout is how long a connection waits on another writer's
// lock before the engine surfaces the failure. The host application holds
// short write locks during sync; a few seconds absorbs those.
const DefaultBusyTimeout = 5 * time.Second

// openReadWrite opens the store for mutation.
//
// The connection uses exclusive transaction locking (_txlock=exclusive) so
// every transaction takes the write lock up front rather than discovering a
// conflicting writer at commit time. The busy timeout bounds the wait; once
// exhausted the driver's SQLITE_BUSY surfaces as an engine error.
//
// The pool is pinned to a single connection. SQLite allows one writer, and a
// second pooled connection would only manufacture SQLITE_BUSY against
// ourselves.
func openReadWrite(path string, busyTimeout time.Duration) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_txlock=exclusive", path, busyTimeout.Milliseconds())
	return open(path, dsn)
}

// openReadOnly opens the store for probing and read-only projections.
// mode=ro refuses to create or modify the file, which matters when probing
// locator candidates that may not be real stores.
func openReadOnly(path string, busyTimeout time.Duration) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=%d", path, busyTimeout.Milliseconds())
	return open(path, dsn)
}

func open(path, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, newOpenFailedError(path, err)
	}

	// sql.Open is lazy; force the file open now so failures surface here
	// with the OPEN_FAILED code instead of mid-operation.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, newOpenFailedError(path, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return db, nil
}
