package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"assetpack/internal/aggregate"
	"assetpack/internal/buildlock"
	"assetpack/internal/config"
	"assetpack/internal/history"
	"assetpack/internal/logging"
)

// Outcome describes one pipeline execution.
type Outcome struct {
	Kind       aggregate.Kind    `json:"pipeline"`
	RunID      string            `json:"run_id"`
	Dir        string            `json:"dir"`
	Status     history.Status    `json:"status"`
	Message    string            `json:"message,omitempty"`
	Changed    *bool             `json:"changed,omitempty"`
	Report     *aggregate.Report `json:"report,omitempty"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`

	// Err is set when Status is failed.
	Err error `json:"-"`
}

// Option customizes a Runner.
type Option func(*Runner)

// WithHistory attaches a ledger; runs are recorded after each pipeline.
func WithHistory(store *history.Store) Option {
	return func(r *Runner) { r.history = store }
}

// WithStrictCardinality overrides shaders.strict_cardinality.
func WithStrictCardinality(strict bool) Option {
	return func(r *Runner) { r.strict = strict }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// Runner executes pipelines against one configuration.
type Runner struct {
	cfg     *config.Config
	base    *slog.Logger
	history *history.Store
	strict  bool
	now     func() time.Time
	newID   func() string
}

// New constructs a Runner. A nil logger discards progress output.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &Runner{
		cfg:    cfg,
		base:   logger,
		strict: cfg.Shaders.StrictCardinality,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes kinds in order; with no kinds every pipeline runs. It returns
// one Outcome per pipeline and the joined errors of the failed ones.
func (r *Runner) Run(ctx context.Context, kinds ...aggregate.Kind) ([]Outcome, error) {
	if len(kinds) == 0 {
		kinds = aggregate.AllKinds()
	}

	outcomes := make([]Outcome, 0, len(kinds))
	var errs []error
	for _, kind := range kinds {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		outcome := r.runOne(ctx, kind)
		if outcome.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", kind, outcome.Err))
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, errors.Join(errs...)
}

func (r *Runner) runOne(ctx context.Context, kind aggregate.Kind) Outcome {
	outcome := Outcome{
		Kind:      kind,
		RunID:     r.newID(),
		Dir:       r.dirFor(kind),
		StartedAt: r.now(),
	}
	tagged := r.base.With(logging.String(logging.FieldRunID, outcome.RunID))
	logger := logging.NewComponentLogger(tagged, "runner").With(logging.String(logging.FieldPipeline, string(kind)))

	report, err := r.build(kind, outcome.Dir, tagged, logger)
	outcome.FinishedAt = r.now()
	outcome.Report = report
	r.classify(&outcome, err)

	switch outcome.Status {
	case history.StatusSucceeded:
		logger.Info("pipeline succeeded", logging.Int("records", report.Records()))
	case history.StatusSkipped:
		logger.Warn("pipeline skipped", logging.String("reason", outcome.Message))
	default:
		logger.Error("pipeline failed", logging.Error(outcome.Err))
	}

	if r.history != nil {
		r.record(ctx, &outcome, logger)
	}
	return outcome
}

func (r *Runner) build(kind aggregate.Kind, dir string, tagged, logger *slog.Logger) (*aggregate.Report, error) {
	lock, err := buildlock.Acquire(dir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("release build lock failed", logging.String(logging.FieldPath, lock.Path()), logging.Error(err))
		}
	}()

	pipelineLogger := logging.NewComponentLogger(tagged, string(kind))
	switch kind {
	case aggregate.KindObjects:
		return aggregate.Objects(dir, pipelineLogger)
	case aggregate.KindShaders:
		return aggregate.Shaders(dir, pipelineLogger)
	case aggregate.KindTemplates:
		return aggregate.Templates(dir, aggregate.TemplateOptions{
			Locales:     r.cfg.Templates.Locales,
			CheckParity: r.cfg.Templates.CheckParity,
		}, pipelineLogger)
	default:
		return nil, fmt.Errorf("unknown pipeline %q", kind)
	}
}

// classify maps a pipeline error onto a status. A shader cardinality
// mismatch is a skip unless strict mode is on.
func (r *Runner) classify(outcome *Outcome, err error) {
	switch {
	case err == nil:
		outcome.Status = history.StatusSucceeded
	case errors.Is(err, aggregate.ErrCardinalityMismatch) && !r.strict:
		outcome.Status = history.StatusSkipped
		outcome.Message = err.Error()
	default:
		outcome.Status = history.StatusFailed
		outcome.Message = err.Error()
		outcome.Err = err
	}
}

func (r *Runner) record(ctx context.Context, outcome *Outcome, logger *slog.Logger) {
	run := history.Run{
		RunID:      outcome.RunID,
		Pipeline:   string(outcome.Kind),
		Dir:        outcome.Dir,
		Status:     outcome.Status,
		Message:    outcome.Message,
		StartedAt:  outcome.StartedAt,
		FinishedAt: outcome.FinishedAt,
	}
	if outcome.Report != nil {
		run.Records = outcome.Report.Records()
		run.Manifests = outcome.Report.Manifests
	}

	if outcome.Status == history.StatusSucceeded {
		prev, ok, err := r.history.LastSucceeded(ctx, run.Pipeline, run.Dir)
		switch {
		case err != nil:
			logger.Warn("read previous build run failed", logging.Error(err))
		case ok:
			changed := !history.SameManifests(prev.Manifests, run.Manifests)
			outcome.Changed = &changed
			if changed {
				logger.Info("manifests changed since last build", logging.String("previous_run_id", prev.RunID))
			} else {
				logger.Info("manifests unchanged since last build", logging.String("previous_run_id", prev.RunID))
			}
		}
	}

	if _, err := r.history.Record(ctx, run); err != nil {
		logger.Warn("record build run failed", logging.String(logging.FieldPath, r.history.Path()), logging.Error(err))
	}
}

func (r *Runner) dirFor(kind aggregate.Kind) string {
	switch kind {
	case aggregate.KindObjects:
		return r.cfg.Paths.ObjectsDir
	case aggregate.KindShaders:
		return r.cfg.Paths.ShadersDir
	case aggregate.KindTemplates:
		return r.cfg.Paths.TemplatesDir
	default:
		return ""
	}
}
