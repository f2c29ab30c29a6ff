package preflight

import (
	"assetpack/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes all applicable preflight checks for the given config.
// The history ledger is only checked when it is enabled.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Objects directory", cfg.Paths.ObjectsDir),
		CheckDirectoryAccess("Shaders directory", cfg.Paths.ShadersDir),
		CheckDirectoryAccess("Templates directory", cfg.Paths.TemplatesDir),
	}
	if cfg.History.Enabled {
		results = append(results, CheckHistoryPath(cfg.History.Path))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
