package aggregate

import (
	"path/filepath"
	"sort"
)

// checkParity warns about localizations that no template consumes and about
// names present in some locales but not others. The application pairs
// markup and localization records by name. Parity problems never fail the
// build.
func checkParity(report *Report, templates []TemplateRecord, locales []string, localized map[string][]LocalizationRecord) {
	templateNames := make(map[string]struct{}, len(templates))
	for _, t := range templates {
		templateNames[t.Name] = struct{}{}
	}

	present := make(map[string]map[string]struct{})
	for _, locale := range locales {
		for _, rec := range localized[locale] {
			if present[rec.Name] == nil {
				present[rec.Name] = make(map[string]struct{}, len(locales))
			}
			present[rec.Name][locale] = struct{}{}
		}
	}

	names := make([]string, 0, len(present))
	for name := range present {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, ok := templateNames[name]; !ok {
			report.note(SeverityWarn, localizationPath(report.Dir, name, firstLocale(locales, present[name])),
				"localization %q has no matching %s template", name, TemplateExt)
		}
		for _, locale := range locales {
			if _, ok := present[name][locale]; ok {
				continue
			}
			report.note(SeverityWarn, localizationPath(report.Dir, name, locale),
				"localization %q is missing for locale %q", name, locale)
		}
	}
}

func firstLocale(locales []string, have map[string]struct{}) string {
	for _, locale := range locales {
		if _, ok := have[locale]; ok {
			return locale
		}
	}
	return ""
}

func localizationPath(dir, name, locale string) string {
	return filepath.Join(dir, name+LocaleSuffix(locale))
}
