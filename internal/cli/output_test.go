package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brndnsvr/remtag/internal/remdb"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "bad", nil)))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitCommandError, "inner", nil))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
}

func TestStoreExitErrorMapping(t *testing.T) {
	notFound := storeExitError("list", locatorErr())
	assert.Equal(t, ExitCommandError, notFound.Code)

	engine := storeExitError("add", errors.New("database is locked"))
	assert.Equal(t, ExitFailure, engine.Code)
}

// locatorErr produces a DIRECTORY_NOT_FOUND error through the public surface.
func locatorErr() error {
	_, err := remdb.LocateStore(context.Background(), "/nonexistent-remtag-test", remdb.DefaultBusyTimeout)
	return err
}

func TestVerboseLogRespectsFlag(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	f := &OutputFormatter{Format: "text", Writer: out, ErrWriter: errOut}
	f.VerboseLog("hidden %d", 1)
	assert.Empty(t, errOut.String())

	f.Verbose = true
	f.VerboseLog("shown %d", 2)
	assert.Equal(t, "shown 2\n", errOut.String())
	assert.Empty(t, out.String(), "diagnostics must not pollute stdout")
}
