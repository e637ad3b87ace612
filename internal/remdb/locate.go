package remdb

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// storePattern matches the store files the host application maintains in
// its group container. There are usually several (a local store plus one
// per cloud account); only one holds the live dataset.
const storePattern = "Data-*.sqlite"

// nonPrimaryMarker flags store variants the host keeps for externally
// sourced data. They match the glob but never hold the primary dataset.
const nonPrimaryMarker = "-external"

// DefaultStoresDir returns the host application's store directory for the
// current user.
func DefaultStoresDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "Group Containers",
		"group.com.apple.reminders", "Container_v1", "Stores"), nil
}

// LocateStore returns the path of the active store under dir: the candidate
// file with the highest count of live (non-tombstoned) reminder rows.
//
// The file name alone is not trusted because the host maintains several
// store variants simultaneously and migrates data between them across OS
// releases. Candidates that cannot be opened or that lack the reminder
// table are skipped rather than failing the whole search; a corrupt or
// foreign sidecar file should not mask the real store.
//
// Fails with DIRECTORY_NOT_FOUND if dir is absent, and NO_DATABASE_FOUND if
// no candidate yields a positive live count.
func LocateStore(ctx context.Context, dir string, busyTimeout time.Duration) (string, error) {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", newDirectoryNotFoundError(dir)
	}

	candidates, err := filepath.Glob(filepath.Join(dir, storePattern))
	if err != nil {
		return "", newEngineError("enumerate store candidates", err)
	}

	bestPath := ""
	bestCount := 0
	for _, path := range candidates {
		if strings.Contains(filepath.Base(path), nonPrimaryMarker) {
			continue
		}
		count, err := countLiveReminders(ctx, path, busyTimeout)
		if err != nil {
			continue
		}
		if count > bestCount {
			bestCount = count
			bestPath = path
		}
	}

	if bestPath == "" {
		return "", newNoDatabaseFoundError(dir)
	}
	return bestPath, nil
}

// countLiveReminders opens path read-only and counts non-tombstoned
// reminder rows.
func countLiveReminders(ctx context.Context, path string, busyTimeout time.Duration) (int, error) {
	db, err := openReadOnly(path, busyTimeout)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var count int
	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM ZREMCDREMINDER WHERE ZMARKEDFORDELETION = 0
	`).Scan(&count)
	if err != nil {
		return 0, newEngineError("count live reminders", err)
	}
	return count, nil
}
