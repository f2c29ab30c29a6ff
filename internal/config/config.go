package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the asset directories. Relative directories resolve against Root.
type Paths struct {
	Root         string `toml:"root"`
	ObjectsDir   string `toml:"objects_dir"`
	ShadersDir   string `toml:"shaders_dir"`
	TemplatesDir string `toml:"templates_dir"`
}

// Shaders contains configuration for the shader pipeline.
type Shaders struct {
	// StrictCardinality turns a fragment/vertex/location count mismatch into a
	// failed build instead of a skipped one.
	StrictCardinality bool `toml:"strict_cardinality"`
}

// Templates contains configuration for the template and localization pipeline.
type Templates struct {
	Locales     []string `toml:"locales"`
	CheckParity bool     `toml:"check_parity"`
}

// History contains configuration for the build run ledger.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for assetpack.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Shaders   Shaders   `toml:"shaders"`
	Templates Templates `toml:"templates"`
	History   History   `toml:"history"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the project-local configuration file path.
func DefaultConfigPath() (string, error) {
	return filepath.Abs(defaultConfigFile)
}

// Load locates, parses, and validates a configuration file. An empty path
// falls back to ./assetpack.toml; when that file is absent defaults are used.
// The returned config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(defaultPath)
		if err == nil && !info.IsDir() {
			return defaultPath, true, nil
		}
		return defaultPath, false, nil
	}

	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(expanded); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, fmt.Errorf("config file %s does not exist", expanded)
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return expanded, true, nil
}

// AssetDirs returns the three asset directories keyed by pipeline name.
func (c *Config) AssetDirs() map[string]string {
	return map[string]string{
		"objects":   c.Paths.ObjectsDir,
		"shaders":   c.Paths.ShadersDir,
		"templates": c.Paths.TemplatesDir,
	}
}

// EnsureHistoryDir creates the directory holding the history database.
func (c *Config) EnsureHistoryDir() error {
	if !c.History.Enabled {
		return nil
	}
	dir := filepath.Dir(c.History.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create history directory %q: %w", dir, err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
