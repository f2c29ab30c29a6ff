// Package preflight verifies that the configured asset directories and the
// history ledger location are usable before a build touches them.
package preflight
