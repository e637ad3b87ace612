// Package remdb implements native hashtag storage against the Core Data
// SQLite store backing the Reminders application.
//
// The host application exposes no API for tag manipulation, so this package
// writes the store directly: it locates the active database file among the
// candidates in the group container, resolves the runtime-assigned entity
// type identifiers from the Z_PRIMARYKEY catalog, allocates primary keys
// through the host's own max-key bookkeeping, and performs tag mutations
// inside exclusive transactions so they coexist with the live application.
//
// Nothing is cached between operations. Every exported Engine method opens
// its own connection, resolves the schema fresh, and closes the connection
// before returning, because the host may swap or rewrite the store at any
// time.
//
// Deletion is always logical: removed tag associations keep their row with a
// tombstone flag set and the label foreign key cleared, matching the host's
// own convention so its sync layer does not misread the change. Primary keys
// are never reused, even across repeated add/remove cycles.
package remdb
