// Package main hosts the assetpack CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, builds the slog logger
// and hands off to internal/runner for builds, internal/preflight for checks
// and internal/history for the build ledger. Commands stay thin: new
// behaviour belongs in the internal packages first.
package main
