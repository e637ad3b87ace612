package remdb

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Label is a tag definition as stored by the host: a display name, the
// lowercase canonical form used as its uniqueness key, the owning account
// row key, a last-used timestamp, and the number of live reminders carrying
// the tag.
type Label struct {
	Name          string    `json:"name"`
	CanonicalName string    `json:"canonical_name"`
	Account       int64     `json:"account,omitempty"`
	LastUsed      time.Time `json:"last_used,omitempty"`
	Count         int       `json:"count"`
}

// CanonicalTagName returns the uniqueness key for a tag name: a leading '#'
// stripped, Unicode NFC normalization, then full case folding. Two names
// with the same canonical form are the same tag regardless of display
// casing.
func CanonicalTagName(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "#")
	return cases.Fold().String(norm.NFC.String(name))
}

// AddTag ensures the association between the named tag and the reminder
// exists. Returns true if the store changed, false if the association was
// already active.
//
// The label is created on first use of a canonical name and reused after
// that; reuse bumps only its recency timestamp. The join row is always
// inserted fresh, even when a tombstoned row exists for the same pair: the
// host never revives tombstones and neither does this engine. All writes,
// including the key counter advances, happen in one exclusive transaction.
func (e *Engine) AddTag(ctx context.Context, name, reminderID string) (bool, error) {
	s, err := e.openSession(ctx, false)
	if err != nil {
		return false, err
	}
	defer s.close()

	reminderKey, err := resolveReminderKey(ctx, s.db, reminderID)
	if err != nil {
		return false, err
	}

	canonical := CanonicalTagName(name)
	labelKey, labelFound, err := findLabel(ctx, s.db, canonical)
	if err != nil {
		return false, err
	}

	// A pure duplicate check never opens a transaction.
	if labelFound {
		_, active, err := findActiveJoin(ctx, s.db, s.ids, labelKey, reminderKey)
		if err != nil {
			return false, err
		}
		if active {
			return false, nil
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, newEngineError("begin transaction", err)
	}
	defer tx.Rollback() // No-op if committed

	account, err := resolveAccount(ctx, tx, s.ids)
	if err != nil {
		return false, err
	}

	now := referenceSeconds(e.clock.Now())

	if labelFound {
		if _, err := tx.ExecContext(ctx, `
			UPDATE ZREMCDHASHTAGLABEL SET ZLASTUSEDDATE = ? WHERE Z_PK = ?
		`, now, labelKey); err != nil {
			return false, newEngineError("update label recency", err)
		}
	} else {
		labelKey, err = nextKey(ctx, tx, s.ids.Label)
		if err != nil {
			return false, err
		}
		displayName := strings.TrimPrefix(strings.TrimSpace(name), "#")
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO ZREMCDHASHTAGLABEL
			(Z_PK, Z_ENT, Z_OPT, ZMARKEDFORDELETION, ZACCOUNT, ZNAME, ZCANONICALNAME, ZLASTUSEDDATE, ZCKIDENTIFIER)
			VALUES (?, ?, 1, 0, ?, ?, ?, ?, ?)
		`, labelKey, s.ids.Label, account, displayName, canonical, now, e.ids.Generate()); err != nil {
			return false, newEngineError("insert label", err)
		}
		if err := advanceKey(ctx, tx, s.ids.Label, labelKey); err != nil {
			return false, err
		}
	}

	// Join rows live in the generic row table, so their keys come from the
	// root generic-row counter; the hashtag discriminator is stamped on the
	// row itself.
	joinKey, err := nextKey(ctx, tx, s.ids.Object)
	if err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO ZREMCDOBJECT
		(Z_PK, Z_ENT, Z_OPT, ZMARKEDFORDELETION, ZNEEDSTOBESYNCED, ZACCOUNT, ZHASHTAGLABEL, ZREMINDER, ZCKIDENTIFIER)
		VALUES (?, ?, 1, 0, 1, ?, ?, ?, ?)
	`, joinKey, s.ids.Hashtag, account, labelKey, reminderKey, e.ids.Generate()); err != nil {
		return false, newEngineError("insert tag join", err)
	}
	if err := advanceKey(ctx, tx, s.ids.Object, joinKey); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, newEngineError("commit", err)
	}
	return true, nil
}

// RemoveTag ensures no active association exists between the named tag and
// the reminder. Returns true if a join row was tombstoned, false if there
// was nothing to remove.
//
// Removal follows the host convention: the join row survives with its
// tombstone flag set, the label foreign key cleared, and the dirty flag
// raised for the sync layer. The label itself is never deleted, even when
// it becomes unreferenced. A single row update is atomic on its own, so no
// explicit transaction wraps it.
func (e *Engine) RemoveTag(ctx context.Context, name, reminderID string) (bool, error) {
	s, err := e.openSession(ctx, false)
	if err != nil {
		return false, err
	}
	defer s.close()

	reminderKey, err := resolveReminderKey(ctx, s.db, reminderID)
	if err != nil {
		return false, err
	}

	labelKey, found, err := findLabel(ctx, s.db, CanonicalTagName(name))
	if err != nil || !found {
		return false, err
	}

	joinKey, active, err := findActiveJoin(ctx, s.db, s.ids, labelKey, reminderKey)
	if err != nil || !active {
		return false, err
	}

	if _, err := s.db.ExecContext(ctx, `
		UPDATE ZREMCDOBJECT
		SET ZMARKEDFORDELETION = 1, ZHASHTAGLABEL = NULL, ZNEEDSTOBESYNCED = 1
		WHERE Z_PK = ?
	`, joinKey); err != nil {
		return false, newEngineError("tombstone tag join", err)
	}
	return true, nil
}

// ListTags returns all live labels with their active usage counts, ordered
// by canonical name.
func (e *Engine) ListTags(ctx context.Context) ([]Label, error) {
	s, err := e.openSession(ctx, true)
	if err != nil {
		return nil, err
	}
	defer s.close()

	rows, err := s.db.QueryContext(ctx, `
		SELECT l.ZNAME, l.ZCANONICALNAME, l.ZACCOUNT, l.ZLASTUSEDDATE,
		       (SELECT COUNT(*) FROM ZREMCDOBJECT o
		        WHERE o.Z_ENT = ? AND o.ZHASHTAGLABEL = l.Z_PK AND o.ZMARKEDFORDELETION = 0)
		FROM ZREMCDHASHTAGLABEL l
		WHERE l.ZMARKEDFORDELETION = 0
		ORDER BY l.ZCANONICALNAME
	`, s.ids.Hashtag)
	if err != nil {
		return nil, newEngineError("query labels", err)
	}
	defer rows.Close()

	var labels []Label
	for rows.Next() {
		var (
			l        Label
			account  sql.NullInt64
			lastUsed sql.NullFloat64
		)
		if err := rows.Scan(&l.Name, &l.CanonicalName, &account, &lastUsed, &l.Count); err != nil {
			return nil, newEngineError("scan label", err)
		}
		if account.Valid {
			l.Account = account.Int64
		}
		if lastUsed.Valid {
			l.LastUsed = fromReferenceSeconds(lastUsed.Float64)
		}
		labels = append(labels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, newEngineError("iterate labels", err)
	}

	if labels == nil {
		labels = []Label{}
	}
	return labels, nil
}

// TagsForReminder returns the display names of the reminder's active tags,
// ordered by canonical name. Fails with REMINDER_NOT_FOUND if the reminder
// identifier resolves to no live row.
func (e *Engine) TagsForReminder(ctx context.Context, reminderID string) ([]string, error) {
	s, err := e.openSession(ctx, true)
	if err != nil {
		return nil, err
	}
	defer s.close()

	reminderKey, err := resolveReminderKey(ctx, s.db, reminderID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT l.ZNAME
		FROM ZREMCDOBJECT o
		JOIN ZREMCDHASHTAGLABEL l ON l.Z_PK = o.ZHASHTAGLABEL
		WHERE o.Z_ENT = ? AND o.ZREMINDER = ? AND o.ZMARKEDFORDELETION = 0
		ORDER BY l.ZCANONICALNAME
	`, s.ids.Hashtag, reminderKey)
	if err != nil {
		return nil, newEngineError("query reminder tags", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, newEngineError("scan reminder tag", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, newEngineError("iterate reminder tags", err)
	}

	if names == nil {
		names = []string{}
	}
	return names, nil
}

// ReminderRowKey resolves the reminder's internal row key from its stable
// external identifier. Diagnostic surface for the CLI.
func (e *Engine) ReminderRowKey(ctx context.Context, reminderID string) (int64, error) {
	s, err := e.openSession(ctx, true)
	if err != nil {
		return 0, err
	}
	defer s.close()
	return resolveReminderKey(ctx, s.db, reminderID)
}

// resolveReminderKey maps an external reminder identifier to its live row
// key. Identifiers are stored uppercase by the host, so input is normalized
// before matching.
func resolveReminderKey(ctx context.Context, q dbQuerier, reminderID string) (int64, error) {
	var key int64
	err := q.QueryRowContext(ctx, `
		SELECT Z_PK FROM ZREMCDREMINDER
		WHERE ZCKIDENTIFIER = ? AND ZMARKEDFORDELETION = 0
	`, strings.ToUpper(strings.TrimSpace(reminderID))).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, newReminderNotFoundError(reminderID)
	}
	if err != nil {
		return 0, newEngineError("resolve reminder", err)
	}
	return key, nil
}

// findLabel returns the row key of the live label with the canonical name.
func findLabel(ctx context.Context, q dbQuerier, canonical string) (int64, bool, error) {
	var key int64
	err := q.QueryRowContext(ctx, `
		SELECT Z_PK FROM ZREMCDHASHTAGLABEL
		WHERE ZCANONICALNAME = ? AND ZMARKEDFORDELETION = 0
	`, canonical).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, newEngineError("find label", err)
	}
	return key, true, nil
}

// findActiveJoin returns the row key of the active join row for the
// (label, reminder) pair. Tombstoned rows for the same pair are ignored;
// at most one active row exists per pair.
func findActiveJoin(ctx context.Context, q dbQuerier, ids EntityIDs, labelKey, reminderKey int64) (int64, bool, error) {
	var key int64
	err := q.QueryRowContext(ctx, `
		SELECT Z_PK FROM ZREMCDOBJECT
		WHERE Z_ENT = ? AND ZHASHTAGLABEL = ? AND ZREMINDER = ? AND ZMARKEDFORDELETION = 0
	`, ids.Hashtag, labelKey, reminderKey).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, newEngineError("find tag join", err)
	}
	return key, true, nil
}
