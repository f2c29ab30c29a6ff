// Package logging assembles the structured slog loggers used by the assetpack
// CLI and pipelines.
//
// It owns the console and JSON handlers, parses configured levels, and exposes
// the standard attribute keys (component, pipeline, run id) so every pipeline
// emits progress lines with the same shape. NewNop returns a discarding logger
// for tests and for callers that do not care about progress output.
package logging
