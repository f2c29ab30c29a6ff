package aggregate

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"assetpack/internal/fileutil"
	"assetpack/internal/logging"
	"assetpack/internal/textutil"
)

// ShaderRecord bundles one fragment/vertex/locations triple.
type ShaderRecord struct {
	Name      string `json:"name"`
	Fragment  string `json:"fragment"`
	Vertex    string `json:"vertex"`
	Locations string `json:"locations"`
}

// Shaders builds shaders.json from {name}.fsh, {name}.vsh and {name}.loc
// triples in dir.
//
// The three file sets must have equal sizes; otherwise a *CardinalityError is
// returned and nothing is written. Stale manifests are removed before the
// check, so a mismatch leaves the directory without shaders.json. Each
// fragment shader drives one record and must have both siblings, else a
// *MissingSiblingError is returned.
func Shaders(dir string, logger *slog.Logger) (*Report, error) {
	report, err := begin(KindShaders, dir, logger)
	if err != nil {
		return report, err
	}

	sets := make(map[string][]string, 3)
	for _, ext := range []string{FragmentExt, VertexExt, LocationsExt} {
		paths, err := fileutil.ListBySuffix(dir, ext)
		if err != nil {
			return report, fmt.Errorf("list %s files: %w", ext, err)
		}
		sets[ext] = paths
	}

	fragments := sets[FragmentExt]
	if len(fragments) != len(sets[VertexExt]) || len(fragments) != len(sets[LocationsExt]) {
		cerr := &CardinalityError{
			Dir:       dir,
			Fragments: len(fragments),
			Vertices:  len(sets[VertexExt]),
			Locations: len(sets[LocationsExt]),
		}
		report.note(SeverityError, dir, "%v", cerr)
		return report, cerr
	}

	records := make([]ShaderRecord, 0, len(fragments))
	claims := nameClaims{}
	for _, fsh := range fragments {
		report.logger.Info("processing shader", logging.String(logging.FieldPath, fsh))
		record, err := buildShader(dir, fsh)
		if err != nil {
			return report, err
		}
		claims.claim(report, record.Name, fsh)
		records = append(records, record)
	}
	sortByName(records, func(r ShaderRecord) string { return r.Name })

	if err := emit(report, ShadersManifest, records); err != nil {
		return report, err
	}
	return report, nil
}

func buildShader(dir, fsh string) (ShaderRecord, error) {
	// Sibling paths use the on-disk spelling; the record name is normalized.
	base := strings.TrimSuffix(filepath.Base(fsh), FragmentExt)
	record := ShaderRecord{Name: textutil.Stem(fsh)}

	vsh, err := sibling(dir, base, record.Name, VertexExt)
	if err != nil {
		return record, err
	}
	loc, err := sibling(dir, base, record.Name, LocationsExt)
	if err != nil {
		return record, err
	}

	if record.Fragment, err = readEscaped(fsh); err != nil {
		return record, err
	}
	if record.Vertex, err = readEscaped(vsh); err != nil {
		return record, err
	}
	if record.Locations, err = readEscaped(loc); err != nil {
		return record, err
	}
	return record, nil
}

func sibling(dir, base, name, ext string) (string, error) {
	path := filepath.Join(dir, base+ext)
	ok, err := fileutil.RegularFileExists(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if !ok {
		return "", &MissingSiblingError{Name: name, Ext: ext, Path: path}
	}
	return path, nil
}
