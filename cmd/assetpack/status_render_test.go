package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"assetpack/internal/history"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Shaders", statusError, "missing sibling", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Shaders:", "[ERROR] missing sibling")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Objects", statusOK, "3 records", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestRunStatusKind(t *testing.T) {
	cases := map[history.Status]statusKind{
		history.StatusSucceeded: statusOK,
		history.StatusSkipped:   statusWarn,
		history.StatusFailed:    statusError,
		"":                      statusInfo,
	}
	for status, want := range cases {
		if got := runStatusKind(status); got != want {
			t.Fatalf("runStatusKind(%q) = %d, want %d", status, got, want)
		}
	}
}

func TestRenderTablePadsRowsAndFooter(t *testing.T) {
	out := renderTable(
		[]column{{header: "Manifest"}, {header: "Records", align: alignRight}},
		[][]string{{"objects.json"}},
		[]string{"Total", "0"},
	)
	for _, want := range []string{"Manifest", "objects.json", "TOTAL"} {
		if !strings.Contains(strings.ToUpper(out), strings.ToUpper(want)) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}
