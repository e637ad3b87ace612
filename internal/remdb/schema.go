package remdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Logical entity names this engine depends on. The integer discriminators
// behind them (Z_ENT) are assigned by the host at store creation and differ
// across installations and schema versions, so they are resolved fresh from
// the catalog on every session.
const (
	entityLabel   = "REMCDHashtagLabel"
	entityObject  = "REMCDObject"
	entityHashtag = "REMCDHashtag"
)

// EntityIDs holds the runtime-resolved type discriminators for one session.
//
// Passed explicitly into every operation that needs one, never cached in a
// package global: tests inject fabricated values, and production code must
// re-resolve per connection because nothing guarantees stability across
// host writes.
//
// Resolution detects only the absence of the expected names. If a future
// host release keeps the names but changes column semantics behind them,
// that drift is invisible here; this is a known limitation, not something
// the engine attempts to guess around.
type EntityIDs struct {
	// Label is the discriminator for hashtag label rows.
	Label int64

	// Object is the discriminator for plain generic rows.
	Object int64

	// Hashtag is the discriminator for hashtag join rows, stored in the
	// generic row table.
	Hashtag int64
}

// dbQuerier is the subset of sql.DB/sql.Tx the schema helpers need, so key
// allocation can run on whichever handle owns the transaction.
type dbQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ResolveEntityIDs reads the catalog table and returns the discriminators
// for the three entity types the engine touches.
//
// All three must resolve to positive identifiers; a missing name fails with
// SCHEMA_CHANGED, signaling that the on-disk format has moved away from
// what this engine was built against and no mutation should proceed.
func ResolveEntityIDs(ctx context.Context, q dbQuerier) (EntityIDs, error) {
	var ids EntityIDs
	for _, ent := range []struct {
		name string
		dst  *int64
	}{
		{entityLabel, &ids.Label},
		{entityObject, &ids.Object},
		{entityHashtag, &ids.Hashtag},
	} {
		id, err := resolveEntityID(ctx, q, ent.name)
		if err != nil {
			return EntityIDs{}, err
		}
		*ent.dst = id
	}
	return ids, nil
}

func resolveEntityID(ctx context.Context, q dbQuerier, name string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `
		SELECT Z_ENT FROM Z_PRIMARYKEY WHERE Z_NAME = ?
	`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, newSchemaChangedError(name)
	}
	if err != nil {
		return 0, newEngineError(fmt.Sprintf("resolve entity %q", name), err)
	}
	if id <= 0 {
		return 0, newSchemaChangedError(name)
	}
	return id, nil
}

// nextKey returns the next free primary key for the entity type: the
// catalog's recorded maximum plus one.
//
// Must run on the same transaction as the insert it authorizes, and the
// caller must follow with advanceKey for the key it actually used. The
// counter is trusted as-is; this engine never re-derives it from data, so a
// counter behind the real maximum would produce a constraint failure and a
// rollback rather than a silent overwrite.
func nextKey(ctx context.Context, q dbQuerier, entityID int64) (int64, error) {
	var max int64
	err := q.QueryRowContext(ctx, `
		SELECT Z_MAX FROM Z_PRIMARYKEY WHERE Z_ENT = ?
	`, entityID).Scan(&max)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, newMissingCounterError(entityID)
	}
	if err != nil {
		return 0, newEngineError("read key counter", err)
	}
	return max + 1, nil
}

// advanceKey records newMax as the highest key ever assigned for the entity
// type. Runs on the caller's transaction so counter and row commit or roll
// back together.
func advanceKey(ctx context.Context, q dbQuerier, entityID, newMax int64) error {
	res, err := q.ExecContext(ctx, `
		UPDATE Z_PRIMARYKEY SET Z_MAX = ? WHERE Z_ENT = ?
	`, newMax, entityID)
	if err != nil {
		return newEngineError("advance key counter", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return newEngineError("advance key counter", err)
	}
	if n == 0 {
		return newMissingCounterError(entityID)
	}
	return nil
}

// newMissingCounterError reports a catalog row without a key counter for
// the entity, which is a schema drift like a missing name.
func newMissingCounterError(entityID int64) *StoreError {
	return &StoreError{
		Code:    ErrCodeSchemaChanged,
		Message: fmt.Sprintf("no key counter for entity %d", entityID),
	}
}
