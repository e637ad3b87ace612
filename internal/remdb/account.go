package remdb

import (
	"context"
	"database/sql"
	"errors"
)

// resolveAccount discovers an existing account row key to own newly created
// label and join rows. The account column is NOT NULL in the host schema
// and this engine has no authority to create accounts, so discovery is a
// best-effort fallback chain over existing data, in priority order:
//
//  1. an account already owning a live hashtag label
//  2. an account already on a live hashtag join row
//  3. the first live row of the account table itself (version-specific,
//     last resort)
//
// Fails with ACCOUNT_NOT_FOUND when the chain exhausts.
func resolveAccount(ctx context.Context, q dbQuerier, ids EntityIDs) (int64, error) {
	queries := []struct {
		desc string
		stmt string
		args []any
	}{
		{
			desc: "account from existing label",
			stmt: `SELECT ZACCOUNT FROM ZREMCDHASHTAGLABEL
			       WHERE ZACCOUNT IS NOT NULL AND ZMARKEDFORDELETION = 0
			       ORDER BY Z_PK LIMIT 1`,
		},
		{
			desc: "account from existing tag join",
			stmt: `SELECT ZACCOUNT FROM ZREMCDOBJECT
			       WHERE Z_ENT = ? AND ZACCOUNT IS NOT NULL AND ZMARKEDFORDELETION = 0
			       ORDER BY Z_PK LIMIT 1`,
			args: []any{ids.Hashtag},
		},
		{
			desc: "account table heuristic",
			stmt: `SELECT Z_PK FROM ZREMCDACCOUNT
			       WHERE ZMARKEDFORDELETION = 0
			       ORDER BY Z_PK LIMIT 1`,
		},
	}

	for _, step := range queries {
		var account int64
		err := q.QueryRowContext(ctx, step.stmt, step.args...).Scan(&account)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			// The account table only exists in some schema versions; treat
			// a failed last-resort lookup like an empty one.
			continue
		}
		if account > 0 {
			return account, nil
		}
	}

	return 0, newAccountNotFoundError()
}
