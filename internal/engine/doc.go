// Package engine owns the lifecycle of the single SQLite handle an adapter
// works against.
//
// A Manager is built once in the composition root around a Backend. It
// opens the engine lazily (concurrent first callers share one open),
// applies the schema, and hands the *sql.DB to the domain store. Reload and
// Close drop the handle; the next operation opens it again.
//
// Backends differ only in where the engine lives:
//
//   - memory: an in-memory engine hydrated from, and persisted to, a
//     durable snapshot;
//   - file: an engine backed by a database file on disk.
//
// The state machine is
//
//	Uninitialized --Initialize ok--> Ready --Close|Reload--> Uninitialized
//
// and an Initialize failure leaves the manager Uninitialized.
package engine
