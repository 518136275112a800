// Package store provides SQLite-backed recording of sampled timeline frames.
//
// A recording is an append-only log with:
//   - Recordings: one row per recorded playback, ordered by a logical seq
//   - Frames: one row per sampled frame (track index and time)
//   - Samples: the values written to the host during a frame, keyed by
//     subject and field, stored as canonical JSON text
//
// # Ordering
//
// All ordering uses seq INTEGER columns, never timestamps. Queries order by
// seq ASC and break ties with COLLATE BINARY on text keys, so two
// recordings of the same playback read back identically.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
