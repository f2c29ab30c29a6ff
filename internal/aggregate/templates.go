package aggregate

import (
	"fmt"
	"log/slog"
	"regexp"

	"assetpack/internal/config"
	"assetpack/internal/fileutil"
	"assetpack/internal/logging"
	"assetpack/internal/textutil"
)

// doublePassPattern matches an escaped <@...@> or <@=...@> directive.
var doublePassPattern = regexp.MustCompile(`&lt;@=?(.+?)@&gt;`)

// TemplateRecord is one HTML template. DoublePass is omitted, never false,
// when the template has no nested directive.
type TemplateRecord struct {
	Name       string `json:"name"`
	Markup     string `json:"markup"`
	DoublePass bool   `json:"double_pass,omitempty"`
}

// LocalizationRecord is one localization string file for a single locale.
type LocalizationRecord struct {
	Name         string `json:"name"`
	Localization string `json:"localization"`
}

// TemplateOptions configures the template pipeline.
type TemplateOptions struct {
	// Locales lists the string sets to build; empty means config.DefaultLocales.
	Locales     []string
	CheckParity bool
}

// Templates builds html.json from *.html and one <locale>.json per locale
// from *.<locale>.strings. Manifests are written in that order; a failure
// stops the remaining ones but leaves those already written in place.
func Templates(dir string, opts TemplateOptions, logger *slog.Logger) (*Report, error) {
	report, err := begin(KindTemplates, dir, logger)
	if err != nil {
		return report, err
	}
	locales := opts.Locales
	if len(locales) == 0 {
		locales = config.DefaultLocales
	}
	if err := checkLocaleManifests(locales); err != nil {
		return report, err
	}

	templates, err := buildTemplates(report)
	if err != nil {
		return report, err
	}

	localized := make(map[string][]LocalizationRecord, len(locales))
	for _, locale := range locales {
		records, err := buildLocalizations(report, locale)
		if err != nil {
			return report, err
		}
		localized[locale] = records
	}

	if opts.CheckParity {
		checkParity(report, templates, locales, localized)
	}
	return report, nil
}

func buildTemplates(report *Report) ([]TemplateRecord, error) {
	paths, err := fileutil.ListBySuffix(report.Dir, TemplateExt)
	if err != nil {
		return nil, fmt.Errorf("list %s files: %w", TemplateExt, err)
	}

	records := make([]TemplateRecord, 0, len(paths))
	claims := nameClaims{}
	for _, path := range paths {
		report.logger.Info("processing template", logging.String(logging.FieldPath, path))
		markup, err := readEscaped(path)
		if err != nil {
			return nil, err
		}
		record := TemplateRecord{
			Name:       textutil.Stem(path),
			Markup:     markup,
			DoublePass: doublePassPattern.MatchString(markup),
		}
		claims.claim(report, record.Name, path)
		records = append(records, record)
	}
	sortByName(records, func(r TemplateRecord) string { return r.Name })

	if err := emit(report, HTMLManifest, records); err != nil {
		return nil, err
	}
	return records, nil
}

func buildLocalizations(report *Report, locale string) ([]LocalizationRecord, error) {
	suffix := LocaleSuffix(locale)
	paths, err := fileutil.ListBySuffix(report.Dir, suffix)
	if err != nil {
		return nil, fmt.Errorf("list %s files: %w", suffix, err)
	}

	records := make([]LocalizationRecord, 0, len(paths))
	claims := nameClaims{}
	for _, path := range paths {
		report.logger.Info("processing localization",
			logging.String(logging.FieldPath, path),
			logging.String("locale", locale),
		)
		text, err := readEscaped(path)
		if err != nil {
			return nil, err
		}
		record := LocalizationRecord{
			Name:         textutil.TrimSuffixName(path, suffix),
			Localization: text,
		}
		claims.claim(report, record.Name, path)
		records = append(records, record)
	}
	sortByName(records, func(r LocalizationRecord) string { return r.Name })

	if err := emit(report, LocaleManifest(locale), records); err != nil {
		return nil, err
	}
	return records, nil
}

// checkLocaleManifests rejects locale lists whose manifests would overwrite
// html.json or each other.
func checkLocaleManifests(locales []string) error {
	names := map[string]struct{}{HTMLManifest: {}}
	for _, locale := range locales {
		name := LocaleManifest(locale)
		if _, ok := names[name]; ok {
			return fmt.Errorf("locale %q: %w: %s", locale, ErrManifestConflict, name)
		}
		names[name] = struct{}{}
	}
	return nil
}
