// Package aggregate implements the three asset pipelines: objects, shaders,
// and templates with their localizations.
//
// Every pipeline has the same shape. It deletes the stale *.json manifests in
// its directory, lists its inputs, turns each file into a record (escaping
// human-authored text with textutil.EscapeMarkup), sorts the records by name,
// and writes one manifest per category. Each call returns a Report listing
// the removed files, the manifests written, and any diagnostics, so callers
// can test and present outcomes without scraping log output.
package aggregate
