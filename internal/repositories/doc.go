// Package repositories implements SQLite persistence for fetched lineups and exported posters.
//
// Key Implementations:
//   - [SnapshotRepository] : canonical lineup snapshots, newest first per festival; satisfies tasks.SnapshotRecorder
//   - [ExportRepository] : poster export history; satisfies poster.ExportRecorder
//
// Records are keyed by UUIDs from [shared.GenerateID]. Schema lives in the embedded migrations of the shared package.
package repositories
