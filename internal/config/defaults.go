package config

const (
	defaultConfigFile   = "assetpack.toml"
	defaultRoot         = "."
	defaultObjectsDir   = "app/objects"
	defaultShadersDir   = "app/shaders"
	defaultTemplatesDir = "app/templates"
	defaultHistoryPath  = "~/.local/share/assetpack/history.db"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// DefaultLocales lists the localization string sets built when none are configured.
var DefaultLocales = []string{"en", "fr"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Root:         defaultRoot,
			ObjectsDir:   defaultObjectsDir,
			ShadersDir:   defaultShadersDir,
			TemplatesDir: defaultTemplatesDir,
		},
		Templates: Templates{
			Locales:     append([]string(nil), DefaultLocales...),
			CheckParity: true,
		},
		History: History{
			Path: defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
