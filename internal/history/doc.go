// Package history persists build runs in a SQLite ledger.
//
// Each pipeline execution becomes one build_runs row carrying its run id,
// status, record count, and the digests of the manifests it wrote. The
// runner consults the last successful row to report whether a rebuild changed
// anything, and the CLI lists recent rows for troubleshooting.
package history
