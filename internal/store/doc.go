// Package store implements the travel plan and photo operations on top of
// an engine lifecycle manager.
//
// Every operation obtains the engine through Engine.Initialize, so the
// first call on a fresh Store opens (and, for the embedded backend,
// restores) the engine. Mutations hold the store's write lock; reads share
// it. Batch operations run in one transaction.
//
// With AutoSave enabled, each successful mutation persists the engine once
// after it commits (a batch persists once, not per row). Without it the
// caller decides when to call Save. ClearAll and ImportDatabaseFile always
// persist.
package store
