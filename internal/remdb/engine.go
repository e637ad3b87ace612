package remdb

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IdentifierGenerator produces CloudKit-style identifiers for rows this
// engine inserts. Injected so tests can supply a fixed sequence.
type IdentifierGenerator interface {
	Generate() string
}

// CloudKitIdentifierGenerator generates random UUIDs in the uppercase form
// the host application stores.
//
// Panics if UUID generation fails (should never happen in practice).
type CloudKitIdentifierGenerator struct{}

// Generate returns a new uppercase hyphenated UUID.
func (CloudKitIdentifierGenerator) Generate() string {
	return strings.ToUpper(uuid.Must(uuid.NewRandom()).String())
}

// Options configures an Engine. The zero value works against the real host
// store for the current user.
type Options struct {
	// StoresDir overrides the host application's store directory.
	// Empty means DefaultStoresDir.
	StoresDir string

	// BusyTimeout bounds the wait on another writer's lock.
	// Zero means DefaultBusyTimeout.
	BusyTimeout time.Duration

	// BackupDir, when set, receives backup copies instead of writing them
	// as siblings of the store file.
	BackupDir string

	// Clock supplies recency timestamps. Nil means the system clock.
	Clock Clock

	// Identifiers supplies row identifiers. Nil means random CloudKit-style
	// UUIDs.
	Identifiers IdentifierGenerator
}

// Engine performs tag operations against the Reminders store.
//
// Every exported method is a complete session: locate the active store,
// open a connection, resolve the schema, do the work, close. Nothing is
// cached across calls because the host application owns the file and may
// rewrite it between invocations. Methods are synchronous; the context is
// passed through to database/sql but a transaction, once begun, runs to
// commit or rollback.
type Engine struct {
	storesDir   string
	busyTimeout time.Duration
	backupDir   string
	clock       Clock
	ids         IdentifierGenerator
}

// New creates an Engine. Fails only if the default stores directory cannot
// be derived when none is given.
func New(opts Options) (*Engine, error) {
	dir := opts.StoresDir
	if dir == "" {
		var err error
		dir, err = DefaultStoresDir()
		if err != nil {
			return nil, newEngineError("derive stores directory", err)
		}
	}

	e := &Engine{
		storesDir:   dir,
		busyTimeout: opts.BusyTimeout,
		backupDir:   opts.BackupDir,
		clock:       opts.Clock,
		ids:         opts.Identifiers,
	}
	if e.busyTimeout <= 0 {
		e.busyTimeout = DefaultBusyTimeout
	}
	if e.clock == nil {
		e.clock = SystemClock{}
	}
	if e.ids == nil {
		e.ids = CloudKitIdentifierGenerator{}
	}
	return e, nil
}

// StorePath locates and returns the active store file without mutating it.
func (e *Engine) StorePath(ctx context.Context) (string, error) {
	return LocateStore(ctx, e.storesDir, e.busyTimeout)
}

// session is one located, opened, schema-resolved connection.
type session struct {
	path string
	db   *sql.DB
	ids  EntityIDs
}

func (s *session) close() {
	s.db.Close()
}

// openSession locates the active store and opens it in the requested mode,
// resolving entity discriminators fresh. The caller must close the session
// on every path.
func (e *Engine) openSession(ctx context.Context, readOnly bool) (*session, error) {
	path, err := LocateStore(ctx, e.storesDir, e.busyTimeout)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	if readOnly {
		db, err = openReadOnly(path, e.busyTimeout)
	} else {
		db, err = openReadWrite(path, e.busyTimeout)
	}
	if err != nil {
		return nil, err
	}

	ids, err := ResolveEntityIDs(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &session{path: path, db: db, ids: ids}, nil
}
