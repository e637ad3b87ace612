package remdb

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// backupStamp is the timestamp suffix layout for backup copies, derived
// from ISO 8601 basic format, always UTC.
const backupStamp = "20060102T150405"

// Backup snapshots the active store file and, when present, its -wal and
// -shm side files to paths carrying a shared timestamp suffix. Returns the
// path of the main-file copy.
//
// Copies are byte-faithful. The store is not locked during the copy; run
// Backup before a risky mutation, not concurrently with one. A partial
// backup (main file copied, side file failed) is reported as BACKUP_FAILED
// and the main-file copy is left in place; the caller must treat the whole
// backup as untrustworthy and retry.
func (e *Engine) Backup(ctx context.Context) (string, error) {
	src, err := LocateStore(ctx, e.storesDir, e.busyTimeout)
	if err != nil {
		return "", err
	}

	stamp := e.clock.Now().UTC().Format(backupStamp)

	mainDst, err := e.copyWithStamp(src, stamp)
	if err != nil {
		return "", newBackupFailedError(src, err)
	}

	for _, suffix := range []string{"-wal", "-shm"} {
		side := src + suffix
		if _, err := os.Stat(side); os.IsNotExist(err) {
			continue
		} else if err != nil {
			return "", newBackupFailedError(side, err)
		}
		if _, err := e.copyWithStamp(side, stamp); err != nil {
			return "", newBackupFailedError(side, err)
		}
	}

	return mainDst, nil
}

// copyWithStamp copies src to its backup destination for the given stamp:
// a sibling path by default, or into the configured backup directory.
func (e *Engine) copyWithStamp(src, stamp string) (string, error) {
	name := fmt.Sprintf("%s.backup-%s", filepath.Base(src), stamp)
	dst := filepath.Join(filepath.Dir(src), name)
	if e.backupDir != "" {
		if err := os.MkdirAll(e.backupDir, 0o755); err != nil {
			return "", err
		}
		dst = filepath.Join(e.backupDir, name)
	}
	if err := copyFile(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// copyFile copies src to dst byte for byte. dst is truncated if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
