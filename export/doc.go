// Package export writes and reads the files users keep outside the
// workspace: the query history as JSON or CSV, and analysis snapshots as
// JSON.
//
// JSON output is indented with two spaces. Snapshots round-trip through
// WriteSnapshotJSON and ReadSnapshotJSON without loss.
package export
