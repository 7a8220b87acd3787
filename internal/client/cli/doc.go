// Package cli provides the interactive tripkeeper command-line client.
//
// It wires configuration, the embedded in-memory engine, the snapshot store
// that keeps it between runs (file, S3 or nothing), and a REPL over the
// domain store. Typical flow: optionally read a snapshot passphrase, restore
// the engine, then execute user commands until "exit".
//
// Key features:
//   - Plans: plans, addplan, delplan
//   - Photos: photos, addphoto, photo, editphoto, delphoto
//   - Maintenance: stats, save, reload, clear
//   - Import / export: exportsql, exportdb, importdb
//   - token: print a bearer token for the host HTTP surface
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
