// Package fixture builds Reminders-shaped SQLite stores for tests.
//
// The fixture reproduces the subset of the host application's Core Data
// layout that the engine touches: the Z_PRIMARYKEY catalog with
// runtime-style entity discriminators, the reminder and account tables, the
// hashtag label table, and the generic row table. Discriminator values are
// deliberately arbitrary so tests cannot accidentally depend on fixed
// constants.
package fixture

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// Entity discriminators seeded into the fixture catalog. Arbitrary values;
// production code must resolve them, never assume them.
const (
	EntAccount  = 2
	EntObject   = 11
	EntHashtag  = 13
	EntLabel    = 14
	EntReminder = 31
)

// Reminder describes one reminder row to seed.
type Reminder struct {
	// Identifier is the stable external identifier (stored uppercase).
	Identifier string

	// Title is the display title.
	Title string

	// Deleted seeds the row tombstoned.
	Deleted bool
}

// StoreSpec describes a fixture store.
type StoreSpec struct {
	// FileName is the store file name. Empty means "Data-TESTCLOUD.sqlite".
	FileName string

	// Reminders are seeded in order; row keys start at 1.
	Reminders []Reminder

	// NoAccount skips seeding the account row, for exercising the
	// exhausted account fallback chain.
	NoAccount bool
}

const schemaDDL = `
CREATE TABLE Z_PRIMARYKEY (
	Z_ENT INTEGER PRIMARY KEY,
	Z_NAME VARCHAR,
	Z_SUPER INTEGER,
	Z_MAX INTEGER
);
CREATE TABLE ZREMCDREMINDER (
	Z_PK INTEGER PRIMARY KEY,
	Z_ENT INTEGER,
	Z_OPT INTEGER,
	ZMARKEDFORDELETION INTEGER,
	ZCKIDENTIFIER VARCHAR,
	ZTITLE VARCHAR
);
CREATE TABLE ZREMCDHASHTAGLABEL (
	Z_PK INTEGER PRIMARY KEY,
	Z_ENT INTEGER,
	Z_OPT INTEGER,
	ZMARKEDFORDELETION INTEGER,
	ZACCOUNT INTEGER,
	ZNAME VARCHAR,
	ZCANONICALNAME VARCHAR,
	ZLASTUSEDDATE FLOAT,
	ZCKIDENTIFIER VARCHAR
);
CREATE TABLE ZREMCDOBJECT (
	Z_PK INTEGER PRIMARY KEY,
	Z_ENT INTEGER,
	Z_OPT INTEGER,
	ZMARKEDFORDELETION INTEGER,
	ZNEEDSTOBESYNCED INTEGER,
	ZACCOUNT INTEGER,
	ZHASHTAGLABEL INTEGER,
	ZREMINDER INTEGER,
	ZCKIDENTIFIER VARCHAR
);
CREATE TABLE ZREMCDACCOUNT (
	Z_PK INTEGER PRIMARY KEY,
	Z_ENT INTEGER,
	ZMARKEDFORDELETION INTEGER,
	ZNAME VARCHAR,
	ZCKIDENTIFIER VARCHAR
);
`

// NewStore creates a fixture store file under dir and returns its path.
func NewStore(t *testing.T, dir string, spec StoreSpec) string {
	t.Helper()

	name := spec.FileName
	if name == "" {
		name = "Data-TESTCLOUD.sqlite"
	}
	path := filepath.Join(dir, name)

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open fixture store: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(schemaDDL); err != nil {
		t.Fatalf("create fixture schema: %v", err)
	}

	seedCatalog(t, db, spec)
	seedAccount(t, db, spec)
	seedReminders(t, db, spec)

	return path
}

// NewStoresDir creates a temp stores directory holding one fixture store and
// returns the directory path. Mirrors the layout the locator scans.
func NewStoresDir(t *testing.T, spec StoreSpec) string {
	t.Helper()
	dir := t.TempDir()
	NewStore(t, dir, spec)
	return dir
}

func seedCatalog(t *testing.T, db *sql.DB, spec StoreSpec) {
	t.Helper()

	accountMax := 1
	if spec.NoAccount {
		accountMax = 0
	}

	rows := []struct {
		ent   int
		name  string
		super int
		max   int
	}{
		{EntAccount, "REMCDAccount", 0, accountMax},
		{EntObject, "REMCDObject", 0, 0},
		{EntHashtag, "REMCDHashtag", EntObject, 0},
		{EntLabel, "REMCDHashtagLabel", 0, 0},
		{EntReminder, "REMCDReminder", 0, len(spec.Reminders)},
	}
	for _, r := range rows {
		_, err := db.Exec(`
			INSERT INTO Z_PRIMARYKEY (Z_ENT, Z_NAME, Z_SUPER, Z_MAX) VALUES (?, ?, ?, ?)
		`, r.ent, r.name, r.super, r.max)
		if err != nil {
			t.Fatalf("seed catalog %s: %v", r.name, err)
		}
	}
}

func seedAccount(t *testing.T, db *sql.DB, spec StoreSpec) {
	t.Helper()
	if spec.NoAccount {
		return
	}
	_, err := db.Exec(`
		INSERT INTO ZREMCDACCOUNT (Z_PK, Z_ENT, ZMARKEDFORDELETION, ZNAME, ZCKIDENTIFIER)
		VALUES (1, ?, 0, 'iCloud', 'FIXTURE-ACCOUNT')
	`, EntAccount)
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
}

func seedReminders(t *testing.T, db *sql.DB, spec StoreSpec) {
	t.Helper()
	for i, r := range spec.Reminders {
		deleted := 0
		if r.Deleted {
			deleted = 1
		}
		_, err := db.Exec(`
			INSERT INTO ZREMCDREMINDER (Z_PK, Z_ENT, Z_OPT, ZMARKEDFORDELETION, ZCKIDENTIFIER, ZTITLE)
			VALUES (?, ?, 1, ?, ?, ?)
		`, i+1, EntReminder, deleted, strings.ToUpper(r.Identifier), r.Title)
		if err != nil {
			t.Fatalf("seed reminder %q: %v", r.Identifier, err)
		}
	}
}

// Open opens a fixture store for direct inspection in assertions. The
// caller owns the handle; closing is registered on t.
func Open(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open store %s: %v", path, err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// CountRows returns the number of rows matching the condition, for direct
// on-disk assertions.
func CountRows(t *testing.T, db *sql.DB, table, where string, args ...any) int {
	t.Helper()
	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", table, where)
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
