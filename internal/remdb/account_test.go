package remdb

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brndnsvr/remtag/internal/fixture"
)

func openFixtureRW(t *testing.T, spec fixture.StoreSpec) *sql.DB {
	t.Helper()
	dir := fixture.NewStoresDir(t, spec)
	path, err := LocateStore(context.Background(), dir, DefaultBusyTimeout)
	require.NoError(t, err)
	db, err := openReadWrite(path, DefaultBusyTimeout)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func fixtureIDs() EntityIDs {
	return EntityIDs{
		Label:   fixture.EntLabel,
		Object:  fixture.EntObject,
		Hashtag: fixture.EntHashtag,
	}
}

func TestResolveAccountFromExistingLabel(t *testing.T) {
	db := openFixtureRW(t, oneReminderSpec())
	ctx := context.Background()

	// A label owned by account 7 outranks the account-table heuristic,
	// which would return 1.
	_, err := db.Exec(`
		INSERT INTO ZREMCDHASHTAGLABEL
		(Z_PK, Z_ENT, Z_OPT, ZMARKEDFORDELETION, ZACCOUNT, ZNAME, ZCANONICALNAME, ZLASTUSEDDATE, ZCKIDENTIFIER)
		VALUES (1, ?, 1, 0, 7, 'old', 'old', 0.0, 'X')
	`, fixture.EntLabel)
	require.NoError(t, err)

	account, err := resolveAccount(ctx, db, fixtureIDs())
	require.NoError(t, err)
	assert.Equal(t, int64(7), account)
}

func TestResolveAccountIgnoresTombstonedLabel(t *testing.T) {
	db := openFixtureRW(t, oneReminderSpec())
	ctx := context.Background()

	_, err := db.Exec(`
		INSERT INTO ZREMCDHASHTAGLABEL
		(Z_PK, Z_ENT, Z_OPT, ZMARKEDFORDELETION, ZACCOUNT, ZNAME, ZCANONICALNAME, ZLASTUSEDDATE, ZCKIDENTIFIER)
		VALUES (1, ?, 1, 1, 7, 'dead', 'dead', 0.0, 'X')
	`, fixture.EntLabel)
	require.NoError(t, err)

	// Falls through to the account table.
	account, err := resolveAccount(ctx, db, fixtureIDs())
	require.NoError(t, err)
	assert.Equal(t, int64(1), account)
}

func TestResolveAccountFromJoinRow(t *testing.T) {
	db := openFixtureRW(t, fixture.StoreSpec{
		NoAccount: true,
		Reminders: []fixture.Reminder{{Identifier: "R1", Title: "x"}},
	})
	ctx := context.Background()

	_, err := db.Exec(`
		INSERT INTO ZREMCDOBJECT
		(Z_PK, Z_ENT, Z_OPT, ZMARKEDFORDELETION, ZNEEDSTOBESYNCED, ZACCOUNT, ZHASHTAGLABEL, ZREMINDER, ZCKIDENTIFIER)
		VALUES (1, ?, 1, 0, 0, 9, NULL, 1, 'X')
	`, fixture.EntHashtag)
	require.NoError(t, err)

	account, err := resolveAccount(ctx, db, fixtureIDs())
	require.NoError(t, err)
	assert.Equal(t, int64(9), account)
}

func TestResolveAccountHeuristicLastResort(t *testing.T) {
	db := openFixtureRW(t, oneReminderSpec())

	account, err := resolveAccount(context.Background(), db, fixtureIDs())
	require.NoError(t, err)
	assert.Equal(t, int64(1), account, "fixture seeds account row 1")
}

func TestResolveAccountExhausted(t *testing.T) {
	db := openFixtureRW(t, fixture.StoreSpec{
		NoAccount: true,
		Reminders: []fixture.Reminder{{Identifier: "R1", Title: "x"}},
	})

	_, err := resolveAccount(context.Background(), db, fixtureIDs())
	require.Error(t, err)
	assert.True(t, IsAccountNotFound(err))
}
