// Package config loads, normalizes, and validates assetpack configuration.
//
// It supplies repository defaults matching the conventional app/ layout,
// expands user paths (including tilde shortcuts), reads TOML files, and
// resolves every asset directory against paths.root. Always obtain settings
// through this package so pipelines receive absolute directories and
// canonical locale codes.
package config
