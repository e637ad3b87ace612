package harness

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brndnsvr/remtag/internal/fixture"
	"github.com/brndnsvr/remtag/internal/remdb"
)

// Snapshot is the deterministic end state of a scenario run.
type Snapshot struct {
	Scenario  string          `json:"scenario"`
	Tags      []TagState      `json:"tags"`
	Reminders []ReminderState `json:"reminders"`
}

// TagState is one label's final state.
type TagState struct {
	Name          string `json:"name"`
	CanonicalName string `json:"canonical_name"`
	Count         int    `json:"count"`
}

// ReminderState is one reminder's final tag set, in the scenario's seeding
// order.
type ReminderState struct {
	ID   string   `json:"id"`
	Tags []string `json:"tags"`
}

// scenarioEpoch pins the harness clock so recency timestamps never leak
// nondeterminism into snapshots.
var scenarioEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// Run seeds a fresh fixture store, applies the scenario's steps (failing
// the test on any unexpected result), and returns the final snapshot.
func Run(t *testing.T, s *Scenario) *Snapshot {
	t.Helper()
	ctx := context.Background()

	seeds := make([]fixture.Reminder, len(s.Reminders))
	for i, r := range s.Reminders {
		seeds[i] = fixture.Reminder{Identifier: r.ID, Title: r.Title}
	}
	dir := fixture.NewStoresDir(t, fixture.StoreSpec{Reminders: seeds})

	clock := fixture.NewFixedClock(scenarioEpoch)
	clock.Step = time.Second
	engine, err := remdb.New(remdb.Options{
		StoresDir:   dir,
		Clock:       clock,
		Identifiers: &fixture.SeqIdentifiers{},
	})
	require.NoError(t, err, "scenario %s: build engine", s.Name)

	for i, step := range s.Steps {
		var changed bool
		switch step.Op {
		case "add":
			changed, err = engine.AddTag(ctx, step.Tag, step.Reminder)
		case "remove":
			changed, err = engine.RemoveTag(ctx, step.Tag, step.Reminder)
		}
		require.NoError(t, err, "scenario %s: step %d (%s %s %s)", s.Name, i, step.Op, step.Tag, step.Reminder)
		if step.Want != nil {
			require.Equal(t, *step.Want, changed,
				"scenario %s: step %d (%s %s %s) changed mismatch", s.Name, i, step.Op, step.Tag, step.Reminder)
		}
	}

	return snapshot(t, ctx, engine, s)
}

func snapshot(t *testing.T, ctx context.Context, engine *remdb.Engine, s *Scenario) *Snapshot {
	t.Helper()

	labels, err := engine.ListTags(ctx)
	require.NoError(t, err, "scenario %s: list tags", s.Name)

	snap := &Snapshot{Scenario: s.Name}
	for _, l := range labels {
		snap.Tags = append(snap.Tags, TagState{
			Name:          l.Name,
			CanonicalName: l.CanonicalName,
			Count:         l.Count,
		})
	}
	if snap.Tags == nil {
		snap.Tags = []TagState{}
	}

	for _, r := range s.Reminders {
		tags, err := engine.TagsForReminder(ctx, r.ID)
		require.NoError(t, err, "scenario %s: tags for %s", s.Name, r.ID)
		snap.Reminders = append(snap.Reminders, ReminderState{ID: r.ID, Tags: tags})
	}
	return snap
}
