package aggregate

import (
	"fmt"
	"strings"
)

// Kind names one pipeline.
type Kind string

const (
	KindObjects   Kind = "objects"
	KindShaders   Kind = "shaders"
	KindTemplates Kind = "templates"
)

// File naming conventions shared by the pipelines.
const (
	ManifestPattern = "*.json"

	ObjectExt       = ".object"
	ObjectsManifest = "objects.json"

	FragmentExt     = ".fsh"
	VertexExt       = ".vsh"
	LocationsExt    = ".loc"
	ShadersManifest = "shaders.json"

	TemplateExt  = ".html"
	HTMLManifest = "html.json"
	StringsExt   = ".strings"
)

// AllKinds returns every pipeline in build order.
func AllKinds() []Kind {
	return []Kind{KindObjects, KindShaders, KindTemplates}
}

// ParseKind maps a command-line name onto a Kind.
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindObjects:
		return KindObjects, nil
	case KindShaders:
		return KindShaders, nil
	case KindTemplates:
		return KindTemplates, nil
	default:
		return "", fmt.Errorf("unknown pipeline %q (want objects, shaders or templates)", value)
	}
}

// LocaleSuffix returns the file suffix of a locale's string files, e.g. ".en.strings".
func LocaleSuffix(locale string) string {
	return "." + locale + StringsExt
}

// LocaleManifest returns the manifest file name for a locale, e.g. "en.json".
func LocaleManifest(locale string) string {
	return locale + ".json"
}
