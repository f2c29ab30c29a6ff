package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTemplates()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.Root) == "" {
		c.Paths.Root = defaultRoot
	}
	root, err := expandPath(strings.TrimSpace(c.Paths.Root))
	if err != nil {
		return fmt.Errorf("paths.root: %w", err)
	}
	c.Paths.Root = root

	dirs := []struct {
		key      string
		value    *string
		fallback string
	}{
		{"paths.objects_dir", &c.Paths.ObjectsDir, defaultObjectsDir},
		{"paths.shaders_dir", &c.Paths.ShadersDir, defaultShadersDir},
		{"paths.templates_dir", &c.Paths.TemplatesDir, defaultTemplatesDir},
	}
	for _, dir := range dirs {
		value := strings.TrimSpace(*dir.value)
		if value == "" {
			value = dir.fallback
		}
		if !filepath.IsAbs(value) && !strings.HasPrefix(value, "~") {
			value = filepath.Join(root, value)
		}
		resolved, err := expandPath(value)
		if err != nil {
			return fmt.Errorf("%s: %w", dir.key, err)
		}
		*dir.value = resolved
	}
	return nil
}

func (c *Config) normalizeTemplates() {
	seen := make(map[string]struct{}, len(c.Templates.Locales))
	locales := make([]string, 0, len(c.Templates.Locales))
	for _, locale := range c.Templates.Locales {
		locale = strings.ToLower(strings.TrimSpace(locale))
		if locale == "" {
			continue
		}
		if _, ok := seen[locale]; ok {
			continue
		}
		seen[locale] = struct{}{}
		locales = append(locales, locale)
	}
	c.Templates.Locales = locales
}

func (c *Config) normalizeHistory() error {
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	var err error
	if c.History.Path, err = expandPath(strings.TrimSpace(c.History.Path)); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
