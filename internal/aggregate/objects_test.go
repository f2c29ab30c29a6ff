package aggregate_test

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"assetpack/internal/aggregate"
	"assetpack/internal/testsupport"
)

func TestObjectsDerivesNameFromStem(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, dir, "foo.object", `{"vertices": [0, 1.50, 2], "name": "ignored", "label": "a<b"}`)

	report, err := aggregate.Objects(dir, nil)
	if err != nil {
		t.Fatalf("Objects returned error: %v", err)
	}
	if report.Records() != 1 {
		t.Fatalf("expected 1 record, got %d", report.Records())
	}

	var got []map[string]any
	raw := testsupport.ReadFile(t, filepath.Join(dir, aggregate.ObjectsManifest))
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if len(got) != 1 || got[0]["name"] != "foo" {
		t.Fatalf("unexpected records: %v", got)
	}
	if got[0]["label"] != "a<b" {
		t.Fatalf("object payloads must not be escaped, got %v", got[0]["label"])
	}
}

func TestObjectsKeepsNumbersVerbatim(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, dir, "cube.object", `{"scale": 1.50}`)

	if _, err := aggregate.Objects(dir, nil); err != nil {
		t.Fatal(err)
	}
	want := "[\n    {\n        \"name\": \"cube\",\n        \"scale\": 1.50\n    }\n]"
	if got := testsupport.ReadFile(t, filepath.Join(dir, aggregate.ObjectsManifest)); got != want {
		t.Fatalf("manifest mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestObjectsSortedByName(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, dir, "b.object", `{}`)
	testsupport.WriteFile(t, dir, "a.b.object", `{}`)
	testsupport.WriteFile(t, dir, "a.object", `{}`)

	if _, err := aggregate.Objects(dir, nil); err != nil {
		t.Fatal(err)
	}
	var got []struct{ Name string }
	if err := json.Unmarshal([]byte(testsupport.ReadFile(t, filepath.Join(dir, aggregate.ObjectsManifest))), &got); err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "a.b", "b"}
	for i, rec := range got {
		if rec.Name != want[i] {
			t.Fatalf("record %d = %q, want %q", i, rec.Name, want[i])
		}
	}
}

func TestObjectsMalformedDescriptor(t *testing.T) {
	tests := map[string]string{
		"invalid json": `{"name": `,
		"array":        `[1, 2]`,
		"null":         `null`,
		"empty":        ``,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := testsupport.WriteFile(t, dir, "bad.object", content)

			_, err := aggregate.Objects(dir, nil)
			if !errors.Is(err, aggregate.ErrMalformedObject) {
				t.Fatalf("expected ErrMalformedObject, got %v", err)
			}
			var merr *aggregate.MalformedObjectError
			if !errors.As(err, &merr) || merr.Path != path {
				t.Fatalf("expected MalformedObjectError for %s, got %v", path, err)
			}
			testsupport.AssertMissing(t, filepath.Join(dir, aggregate.ObjectsManifest))
		})
	}
}

func TestObjectsCleanupBeforeBuild(t *testing.T) {
	dir := t.TempDir()
	manifestPath := testsupport.WriteFile(t, dir, aggregate.ObjectsManifest, `[{"name": "stale"}]`)
	testsupport.WriteFile(t, dir, "leftover.json", `{}`)

	report, err := aggregate.Objects(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := testsupport.ReadFile(t, manifestPath); got != "[]" {
		t.Fatalf("expected empty manifest, got %q", got)
	}
	testsupport.AssertMissing(t, filepath.Join(dir, "leftover.json"))
	if len(report.Removed) != 2 {
		t.Fatalf("expected 2 removed manifests, got %v", report.Removed)
	}
}

func TestObjectsIdempotent(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, dir, "tree.object", `{"mesh": {"faces": [[0, 1, 2]]}, "tint": "#00ff00"}`)
	testsupport.WriteFile(t, dir, "rock.object", `{"mesh": null}`)

	first, err := aggregate.Objects(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	firstBytes := testsupport.ReadFile(t, filepath.Join(dir, aggregate.ObjectsManifest))

	second, err := aggregate.Objects(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	secondBytes := testsupport.ReadFile(t, filepath.Join(dir, aggregate.ObjectsManifest))

	if firstBytes != secondBytes {
		t.Fatalf("manifest changed between runs:\n%s\n---\n%s", firstBytes, secondBytes)
	}
	if first.Manifests[0].Digest != second.Manifests[0].Digest {
		t.Fatal("expected identical digests")
	}
}

func TestObjectsMissingDirectory(t *testing.T) {
	if _, err := aggregate.Objects(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestObjectsRejectsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteFile(t, dir, "bad.object", "{\"label\": \"a\xffb\"}")

	_, err := aggregate.Objects(dir, nil)
	if !errors.Is(err, aggregate.ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}
	var eerr *aggregate.InvalidEncodingError
	if !errors.As(err, &eerr) || eerr.Path != path {
		t.Fatalf("expected error naming %s, got %v", path, err)
	}
	testsupport.AssertMissing(t, filepath.Join(dir, aggregate.ObjectsManifest))
}

func TestObjectsWarnsOnNormalizedNameCollision(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, dir, "caf\u00e9.object", `{}`)
	testsupport.WriteFile(t, dir, "cafe\u0301.object", `{}`)

	report, err := aggregate.Objects(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if report.Records() != 2 {
		t.Fatalf("expected both records kept, got %d", report.Records())
	}
	if report.Count(aggregate.SeverityWarn) != 1 {
		t.Fatalf("expected one collision warning, got %v", report.Diagnostics)
	}
}

func TestObjectsSweepsInterruptedWrites(t *testing.T) {
	dir := t.TempDir()
	stale := testsupport.WriteFile(t, dir, ".objects.json.81723.tmp", "[")
	lock := testsupport.WriteFile(t, dir, ".assetpack.lock", "")

	if _, err := aggregate.Objects(dir, nil); err != nil {
		t.Fatal(err)
	}
	testsupport.AssertMissing(t, stale)
	testsupport.ReadFile(t, lock)
}
