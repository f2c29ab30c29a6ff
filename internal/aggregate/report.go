package aggregate

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"assetpack/internal/fileutil"
	"assetpack/internal/logging"
	"assetpack/internal/manifest"
)

// Severity ranks a diagnostic.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Diagnostic is one structured message produced while building.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Path     string   `json:"path,omitempty"`
	Message  string   `json:"message"`
}

// Report is the outcome of one pipeline run.
type Report struct {
	Kind        Kind               `json:"pipeline"`
	Dir         string             `json:"dir"`
	Removed     []string           `json:"removed,omitempty"`
	Manifests   []manifest.Summary `json:"manifests"`
	Diagnostics []Diagnostic       `json:"diagnostics,omitempty"`

	logger *slog.Logger
}

// Records sums the record counts of every manifest written.
func (r *Report) Records() int {
	total := 0
	for _, m := range r.Manifests {
		total += m.Records
	}
	return total
}

// Count returns how many diagnostics carry the given severity.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

func (r *Report) note(sev Severity, path, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Severity: sev, Path: path, Message: msg})

	attrs := []any{}
	if path != "" {
		attrs = append(attrs, logging.String(logging.FieldPath, path))
	}
	switch sev {
	case SeverityError:
		r.logger.Error(msg, attrs...)
	case SeverityWarn:
		r.logger.Warn(msg, attrs...)
	default:
		r.logger.Info(msg, attrs...)
	}
}

// begin opens a report for kind and deletes the directory's stale manifests.
func begin(kind Kind, dir string, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	report := &Report{
		Kind:      kind,
		Dir:       dir,
		Manifests: []manifest.Summary{},
		logger:    logger.With(logging.String(logging.FieldPipeline, string(kind))),
	}
	report.logger.Info("building manifests", logging.String("dir", dir))

	removed, err := fileutil.RemoveMatching(dir, ManifestPattern)
	report.Removed = removed
	for _, path := range removed {
		report.logger.Info("removed previous manifest", logging.String(logging.FieldPath, path))
	}
	if err != nil {
		return report, fmt.Errorf("clean %s: %w", dir, err)
	}

	stale, err := fileutil.RemoveMatching(dir, fileutil.TempPattern(ManifestPattern))
	for _, path := range stale {
		report.logger.Warn("removed interrupted manifest write", logging.String(logging.FieldPath, path))
	}
	if err != nil {
		return report, fmt.Errorf("clean %s: %w", dir, err)
	}
	return report, nil
}

// emit writes records to name inside the report's directory and records the summary.
func emit[T any](r *Report, name string, records []T) error {
	summary, err := manifest.Write(filepath.Join(r.Dir, name), records)
	if err != nil {
		return err
	}
	summary.Name = name
	r.Manifests = append(r.Manifests, summary)
	r.logger.Info("manifest written",
		logging.String(logging.FieldPath, summary.Path),
		logging.Int("records", summary.Records),
	)
	return nil
}
