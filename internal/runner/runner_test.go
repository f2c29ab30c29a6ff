package runner_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"assetpack/internal/aggregate"
	"assetpack/internal/buildlock"
	"assetpack/internal/history"
	"assetpack/internal/runner"
	"assetpack/internal/testsupport"
)

func TestRunAllPipelines(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, cfg.Paths.ObjectsDir, "foo.object", `{"mesh": "cube"}`)
	testsupport.WriteFile(t, cfg.Paths.ShadersDir, "basic.fsh", "f")
	testsupport.WriteFile(t, cfg.Paths.ShadersDir, "basic.vsh", "v")
	testsupport.WriteFile(t, cfg.Paths.ShadersDir, "basic.loc", "{}")
	testsupport.WriteFile(t, cfg.Paths.TemplatesDir, "greeting.html", "<b>hi</b>")
	testsupport.WriteFile(t, cfg.Paths.TemplatesDir, "greeting.en.strings", "Hello")
	testsupport.WriteFile(t, cfg.Paths.TemplatesDir, "greeting.fr.strings", "Bonjour")

	outcomes, err := runner.New(cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	for i, kind := range aggregate.AllKinds() {
		o := outcomes[i]
		if o.Kind != kind || o.Status != history.StatusSucceeded || o.RunID == "" {
			t.Fatalf("unexpected outcome %d: %+v", i, o)
		}
	}
	if outcomes[2].Report.Records() != 3 {
		t.Fatalf("expected 3 template records, got %d", outcomes[2].Report.Records())
	}
	for _, path := range []string{
		filepath.Join(cfg.Paths.ObjectsDir, aggregate.ObjectsManifest),
		filepath.Join(cfg.Paths.ShadersDir, aggregate.ShadersManifest),
		filepath.Join(cfg.Paths.TemplatesDir, aggregate.HTMLManifest),
		filepath.Join(cfg.Paths.TemplatesDir, "en.json"),
		filepath.Join(cfg.Paths.TemplatesDir, "fr.json"),
	} {
		testsupport.ReadFile(t, path)
	}
}

func mismatchedShaders(t *testing.T, dir string) {
	t.Helper()
	testsupport.WriteFile(t, dir, "a.fsh", "")
	testsupport.WriteFile(t, dir, "b.fsh", "")
	testsupport.WriteFile(t, dir, "a.vsh", "")
	testsupport.WriteFile(t, dir, "a.loc", "")
	testsupport.WriteFile(t, dir, "b.loc", "")
}

func TestCardinalityMismatchIsSkippedByDefault(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	mismatchedShaders(t, cfg.Paths.ShadersDir)

	outcomes, err := runner.New(cfg, nil).Run(context.Background(), aggregate.KindShaders)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if outcomes[0].Status != history.StatusSkipped || outcomes[0].Message == "" {
		t.Fatalf("expected skipped outcome with message, got %+v", outcomes[0])
	}
	testsupport.AssertMissing(t, filepath.Join(cfg.Paths.ShadersDir, aggregate.ShadersManifest))
}

func TestCardinalityMismatchStrict(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	mismatchedShaders(t, cfg.Paths.ShadersDir)

	outcomes, err := runner.New(cfg, nil, runner.WithStrictCardinality(true)).Run(context.Background(), aggregate.KindShaders)
	if !errors.Is(err, aggregate.ErrCardinalityMismatch) {
		t.Fatalf("expected cardinality error, got %v", err)
	}
	if outcomes[0].Status != history.StatusFailed {
		t.Fatalf("expected failed outcome, got %+v", outcomes[0])
	}
}

func TestFailureDoesNotStopLaterPipelines(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, cfg.Paths.ObjectsDir, "bad.object", "{")
	testsupport.WriteFile(t, cfg.Paths.TemplatesDir, "x.html", "x")

	outcomes, err := runner.New(cfg, nil).Run(context.Background(), aggregate.KindObjects, aggregate.KindTemplates)
	if !errors.Is(err, aggregate.ErrMalformedObject) {
		t.Fatalf("expected malformed object error, got %v", err)
	}
	if outcomes[0].Status != history.StatusFailed || outcomes[1].Status != history.StatusSucceeded {
		t.Fatalf("unexpected statuses: %s, %s", outcomes[0].Status, outcomes[1].Status)
	}
}

func TestLockedDirectoryFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lock, err := buildlock.Acquire(cfg.Paths.ObjectsDir)
	if err != nil {
		t.Fatal(err)
	}
	defer lock.Release()

	_, err = runner.New(cfg, nil).Run(context.Background(), aggregate.KindObjects)
	if !errors.Is(err, buildlock.ErrBuildInProgress) {
		t.Fatalf("expected ErrBuildInProgress, got %v", err)
	}
}

func TestHistoryRecordsRunsAndDetectsChanges(t *testing.T) {
	ctx := context.Background()
	cfg := testsupport.NewConfig(t)
	cfg.History.Enabled = true
	store, err := history.Open(ctx, cfg.History.Path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	testsupport.WriteFile(t, cfg.Paths.ObjectsDir, "foo.object", `{}`)
	r := runner.New(cfg, nil, runner.WithHistory(store))

	first, err := r.Run(ctx, aggregate.KindObjects)
	if err != nil {
		t.Fatal(err)
	}
	if first[0].Changed != nil {
		t.Fatalf("first run has nothing to compare against, got %v", *first[0].Changed)
	}

	second, err := r.Run(ctx, aggregate.KindObjects)
	if err != nil {
		t.Fatal(err)
	}
	if second[0].Changed == nil || *second[0].Changed {
		t.Fatalf("expected unchanged second run, got %v", second[0].Changed)
	}

	testsupport.WriteFile(t, cfg.Paths.ObjectsDir, "bar.object", `{}`)
	third, err := r.Run(ctx, aggregate.KindObjects)
	if err != nil {
		t.Fatal(err)
	}
	if third[0].Changed == nil || !*third[0].Changed {
		t.Fatalf("expected changed third run, got %v", third[0].Changed)
	}

	runs, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 || runs[0].RunID != third[0].RunID || runs[0].Records != 2 {
		t.Fatalf("unexpected ledger contents: %+v", runs)
	}
}

func TestRunHonoursCancelledContext(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := runner.New(cfg, nil).Run(ctx)
	if !errors.Is(err, context.Canceled) || len(outcomes) != 0 {
		t.Fatalf("expected cancellation before any pipeline, got %v, %d outcomes", err, len(outcomes))
	}
}
