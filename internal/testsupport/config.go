package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"assetpack/internal/config"
)

// NewConfig returns a normalized config rooted in a fresh temp directory with
// the three asset directories created and the history ledger pointed at the
// same root (disabled unless the caller enables it).
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Root = root
	cfg.Paths.ObjectsDir = filepath.Join(root, "app", "objects")
	cfg.Paths.ShadersDir = filepath.Join(root, "app", "shaders")
	cfg.Paths.TemplatesDir = filepath.Join(root, "app", "templates")
	cfg.History.Path = filepath.Join(root, "state", "history.db")

	for _, dir := range []string{cfg.Paths.ObjectsDir, cfg.Paths.ShadersDir, cfg.Paths.TemplatesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("create %s: %v", dir, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}
