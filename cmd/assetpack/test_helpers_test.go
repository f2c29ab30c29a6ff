package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"assetpack/internal/testsupport"
)

type cliTestEnv struct {
	baseDir      string
	configPath   string
	objectsDir   string
	shadersDir   string
	templatesDir string
	historyPath  string
}

func setupCLITestEnv(t *testing.T, historyEnabled bool) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:      base,
		configPath:   filepath.Join(base, "assetpack.toml"),
		objectsDir:   filepath.Join(base, "app", "objects"),
		shadersDir:   filepath.Join(base, "app", "shaders"),
		templatesDir: filepath.Join(base, "app", "templates"),
		historyPath:  filepath.Join(base, "state", "history.db"),
	}
	for _, dir := range []string{env.objectsDir, env.shadersDir, env.templatesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	content := fmt.Sprintf(`[paths]
root = %q

[history]
enabled = %t
path = %q

[logging]
level = "debug"
`, base, historyEnabled, env.historyPath)
	testsupport.WriteFile(t, base, "assetpack.toml", content)
	return env
}

func (env *cliTestEnv) seedAssets(t *testing.T) {
	t.Helper()
	testsupport.WriteFile(t, env.objectsDir, "crate.object", `{"mesh": "crate.obj", "scale": 1.50}`)
	testsupport.WriteFile(t, env.shadersDir, "basic.fsh", "void main() { gl_FragColor = a > b ? x : y; }")
	testsupport.WriteFile(t, env.shadersDir, "basic.vsh", "void main() {}")
	testsupport.WriteFile(t, env.shadersDir, "basic.loc", `{"position": 0}`)
	testsupport.WriteFile(t, env.templatesDir, "menu.html", "<div><@= title @></div>")
	testsupport.WriteFile(t, env.templatesDir, "menu.en.strings", "title=Menu")
	testsupport.WriteFile(t, env.templatesDir, "menu.fr.strings", "title=Menu")
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n%s", needle, haystack)
	}
}
