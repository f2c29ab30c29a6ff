package aggregate

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"assetpack/internal/textutil"
)

// readSource returns the file contents, rejecting bytes that are not UTF-8.
func readSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, &InvalidEncodingError{Path: path}
	}
	return data, nil
}

// readEscaped returns the whole file with markup characters escaped.
func readEscaped(path string) (string, error) {
	data, err := readSource(path)
	if err != nil {
		return "", err
	}
	return textutil.EscapeMarkup(string(data)), nil
}

// nameClaims tracks which input produced each record name. Distinct files can
// collapse to one name after NFC normalization.
type nameClaims map[string]string

// claim records path under name and warns when another file already holds it.
func (c nameClaims) claim(report *Report, name, path string) {
	if prev, ok := c[name]; ok {
		report.note(SeverityWarn, path, "name %q already derived from %s", name, filepath.Base(prev))
		return
	}
	c[name] = path
}

// sortByName orders records by their derived name. The sort is stable so
// records sharing a name keep their path order.
func sortByName[T any](records []T, name func(T) string) {
	slices.SortStableFunc(records, func(a, b T) int {
		return strings.Compare(name(a), name(b))
	})
}
