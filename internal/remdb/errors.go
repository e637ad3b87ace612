package remdb

import (
	"errors"
	"fmt"
)

// StoreError represents a failure while locating, validating, or mutating
// the Reminders store.
//
// Every failure mode in this package maps to exactly one Code. Callers
// branch on codes with the IsXxx predicates rather than string matching;
// the underlying database engine's diagnostic (if any) is preserved
// verbatim in Err.
type StoreError struct {
	// Code identifies the error category.
	Code StoreErrorCode

	// Message is a human-readable description.
	Message string

	// Path is the store or directory path involved, when known.
	Path string

	// Err is the underlying error, preserved for unwrapping.
	Err error
}

// StoreErrorCode categorizes store errors.
type StoreErrorCode string

const (
	// ErrCodeDirectoryNotFound indicates the stores directory does not exist.
	ErrCodeDirectoryNotFound StoreErrorCode = "DIRECTORY_NOT_FOUND"

	// ErrCodeNoDatabaseFound indicates no candidate file held live reminders.
	ErrCodeNoDatabaseFound StoreErrorCode = "NO_DATABASE_FOUND"

	// ErrCodeOpenFailed indicates the database file could not be opened.
	ErrCodeOpenFailed StoreErrorCode = "OPEN_FAILED"

	// ErrCodeSchemaChanged indicates a required entity name is missing from
	// the catalog table, i.e. the on-disk format no longer matches what this
	// engine was built against.
	ErrCodeSchemaChanged StoreErrorCode = "SCHEMA_CHANGED"

	// ErrCodeReminderNotFound indicates the reminder identifier resolved to
	// no live row in the store.
	ErrCodeReminderNotFound StoreErrorCode = "REMINDER_NOT_FOUND"

	// ErrCodeAccountNotFound indicates the account fallback chain exhausted
	// without finding an owner for new rows.
	ErrCodeAccountNotFound StoreErrorCode = "ACCOUNT_NOT_FOUND"

	// ErrCodeEngine wraps an unexpected database engine error, including an
	// exhausted lock busy-wait.
	ErrCodeEngine StoreErrorCode = "ENGINE_ERROR"

	// ErrCodeBackupFailed indicates the snapshot copy did not complete.
	ErrCodeBackupFailed StoreErrorCode = "BACKUP_FAILED"
)

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (path=%s)", e.Code, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// codeIs reports whether err is a StoreError with the given code.
// Uses errors.As to handle wrapped errors.
func codeIs(err error, code StoreErrorCode) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// IsDirectoryNotFound reports whether err means the stores directory is absent.
func IsDirectoryNotFound(err error) bool { return codeIs(err, ErrCodeDirectoryNotFound) }

// IsNoDatabaseFound reports whether err means no candidate store qualified.
func IsNoDatabaseFound(err error) bool { return codeIs(err, ErrCodeNoDatabaseFound) }

// IsSchemaChanged reports whether err means the catalog no longer resolves
// the entity names this engine requires.
func IsSchemaChanged(err error) bool { return codeIs(err, ErrCodeSchemaChanged) }

// IsReminderNotFound reports whether err means the reminder identifier was
// not present in the store.
func IsReminderNotFound(err error) bool { return codeIs(err, ErrCodeReminderNotFound) }

// IsAccountNotFound reports whether err means no owning account could be
// discovered.
func IsAccountNotFound(err error) bool { return codeIs(err, ErrCodeAccountNotFound) }

// IsBackupFailed reports whether err means a snapshot did not complete.
func IsBackupFailed(err error) bool { return codeIs(err, ErrCodeBackupFailed) }

// newDirectoryNotFoundError creates a StoreError for a missing stores directory.
func newDirectoryNotFoundError(dir string) *StoreError {
	return &StoreError{
		Code:    ErrCodeDirectoryNotFound,
		Message: "stores directory does not exist",
		Path:    dir,
	}
}

// newNoDatabaseFoundError creates a StoreError for an empty candidate set.
func newNoDatabaseFoundError(dir string) *StoreError {
	return &StoreError{
		Code:    ErrCodeNoDatabaseFound,
		Message: "no store file with live reminders found",
		Path:    dir,
	}
}

// newOpenFailedError creates a StoreError wrapping a failed open.
func newOpenFailedError(path string, err error) *StoreError {
	return &StoreError{
		Code:    ErrCodeOpenFailed,
		Message: "cannot open store",
		Path:    path,
		Err:     err,
	}
}

// newSchemaChangedError creates a StoreError for a missing catalog entry.
func newSchemaChangedError(entityName string) *StoreError {
	return &StoreError{
		Code:    ErrCodeSchemaChanged,
		Message: fmt.Sprintf("entity %q missing from catalog; on-disk schema no longer matches", entityName),
	}
}

// newReminderNotFoundError creates a StoreError for an unresolvable reminder.
func newReminderNotFoundError(id string) *StoreError {
	return &StoreError{
		Code:    ErrCodeReminderNotFound,
		Message: fmt.Sprintf("no live reminder with identifier %q", id),
	}
}

// newAccountNotFoundError creates a StoreError for an exhausted account chain.
func newAccountNotFoundError() *StoreError {
	return &StoreError{
		Code:    ErrCodeAccountNotFound,
		Message: "no existing account found to own new rows",
	}
}

// newEngineError creates a StoreError preserving the engine diagnostic.
func newEngineError(op string, err error) *StoreError {
	return &StoreError{
		Code:    ErrCodeEngine,
		Message: op,
		Err:     err,
	}
}

// newBackupFailedError creates a StoreError for a failed snapshot.
func newBackupFailedError(path string, err error) *StoreError {
	return &StoreError{
		Code:    ErrCodeBackupFailed,
		Message: "backup did not complete",
		Path:    path,
		Err:     err,
	}
}
