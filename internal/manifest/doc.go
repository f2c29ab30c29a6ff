// Package manifest serializes aggregated asset records into the JSON array
// files read by the application at runtime.
//
// Manifests are always a top-level array, pretty-printed with four spaces and
// written through a temp file plus rename. Each write reports a Summary whose
// SHA-256 digest lets callers tell whether a rebuild changed anything.
package manifest
