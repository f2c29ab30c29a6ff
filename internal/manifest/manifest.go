package manifest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"assetpack/internal/fileutil"
)

// Indent is the per-level indentation used for every manifest.
const Indent = "    "

// Summary describes one manifest written to disk.
type Summary struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Records int    `json:"records"`
	Bytes   int    `json:"bytes"`
	Digest  string `json:"digest"`
}

// Encode serializes records as an indented JSON array. A nil slice encodes as
// [] rather than null. The encoder does not HTML-escape, so entities already
// present in record values are written verbatim. No trailing newline is added.
func Encode[T any](records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Write encodes records and atomically replaces the file at path.
func Write[T any](path string, records []T) (Summary, error) {
	data, err := Encode(records)
	if err != nil {
		return Summary{}, fmt.Errorf("encode manifest %s: %w", path, err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return Summary{}, fmt.Errorf("write manifest %s: %w", path, err)
	}
	sum := sha256.Sum256(data)
	return Summary{
		Path:    path,
		Records: len(records),
		Bytes:   len(data),
		Digest:  hex.EncodeToString(sum[:]),
	}, nil
}
