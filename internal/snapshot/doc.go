// Package snapshot persists whole-engine byte images into a durable
// key/value store and reads them back.
//
// A Store holds Records keyed by id. The Bridge owns one Store, opens it
// lazily (concurrent first callers share one open) and always writes under
// the same fixed key, so the durable target holds exactly the latest image.
//
// Implementations live in subpackages:
//
//   - kvfile: a SQLite key/value file on local disk;
//   - s3store: one S3 object per record id.
//
// Sealed wraps any Store and encrypts record data at rest.
package snapshot
