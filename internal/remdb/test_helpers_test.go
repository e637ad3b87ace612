package remdb

import (
	"testing"
	"time"

	"github.com/brndnsvr/remtag/internal/fixture"
)

// fixedNow is the pinned wall time used across engine tests.
var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

// newTestEngine builds an engine over a fresh fixture stores directory with
// a deterministic clock and identifier sequence.
func newTestEngine(t *testing.T, spec fixture.StoreSpec) (*Engine, string) {
	t.Helper()

	dir := fixture.NewStoresDir(t, spec)
	clock := fixture.NewFixedClock(fixedNow)
	clock.Step = time.Second

	e, err := New(Options{
		StoresDir:   dir,
		Clock:       clock,
		Identifiers: &fixture.SeqIdentifiers{},
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e, dir
}

// oneReminderSpec seeds a single live reminder R1.
func oneReminderSpec() fixture.StoreSpec {
	return fixture.StoreSpec{
		Reminders: []fixture.Reminder{
			{Identifier: "R1", Title: "Buy milk"},
		},
	}
}

// twoReminderSpec seeds live reminders R1 and R2.
func twoReminderSpec() fixture.StoreSpec {
	return fixture.StoreSpec{
		Reminders: []fixture.Reminder{
			{Identifier: "R1", Title: "Buy milk"},
			{Identifier: "R2", Title: "File taxes"},
		},
	}
}
