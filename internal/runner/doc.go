// Package runner executes asset pipelines one after another on behalf of the
// CLI.
//
// For each pipeline it takes the directory lock, runs the aggregation, tags
// the run with a UUID, classifies the outcome (succeeded, skipped, failed),
// and, when a history store is attached, records the run and reports whether
// the manifests changed since the last successful build. A failing pipeline
// does not prevent the next one from running.
package runner
