// Package kvfile implements snapshot.Store on a local SQLite file holding a
// single key/value table:
//
//	snapshots(id TEXT PRIMARY KEY, data BLOB NOT NULL, timestamp TEXT NOT NULL)
//
// Put is an upsert, so the file always holds the latest record per id.
package kvfile
