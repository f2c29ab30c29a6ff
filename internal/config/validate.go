package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTemplates(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	dirs := c.AssetDirs()
	seen := map[string]string{}
	for _, key := range []string{"objects", "shaders", "templates"} {
		dir := dirs[key]
		if dir == "" {
			return fmt.Errorf("paths.%s_dir must be set", key)
		}
		if other, ok := seen[dir]; ok {
			// Each pipeline deletes every *.json in its directory before building.
			return fmt.Errorf("paths.%s_dir and paths.%s_dir must differ (both %s)", other, key, dir)
		}
		seen[dir] = key
	}
	return nil
}

const reservedLocale = "html"

func (c *Config) validateTemplates() error {
	if len(c.Templates.Locales) == 0 {
		return errors.New("templates.locales must list at least one locale")
	}
	for _, locale := range c.Templates.Locales {
		if strings.ContainsAny(locale, `./\*?[] `) {
			return fmt.Errorf("templates.locales: invalid locale %q", locale)
		}
		// html.json holds the templates themselves.
		if strings.EqualFold(locale, reservedLocale) {
			return fmt.Errorf("templates.locales: locale %q is reserved (its manifest would replace %s.json)", locale, reservedLocale)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
