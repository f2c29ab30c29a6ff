package aggregate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"assetpack/internal/fileutil"
	"assetpack/internal/logging"
	"assetpack/internal/textutil"
)

// ObjectRecord is a decoded object descriptor. Values are kept as raw JSON so
// numbers and nested structures are written back exactly as authored.
type ObjectRecord map[string]json.RawMessage

// Name returns the record's name field, or "" when it is missing.
func (o ObjectRecord) Name() string {
	var name string
	_ = json.Unmarshal(o["name"], &name)
	return name
}

// Objects builds objects.json from every *.object descriptor in dir. Each
// descriptor must be a JSON object; its name field is set to the file stem.
func Objects(dir string, logger *slog.Logger) (*Report, error) {
	report, err := begin(KindObjects, dir, logger)
	if err != nil {
		return report, err
	}

	paths, err := fileutil.ListBySuffix(dir, ObjectExt)
	if err != nil {
		return report, fmt.Errorf("list %s files: %w", ObjectExt, err)
	}

	records := make([]ObjectRecord, 0, len(paths))
	claims := nameClaims{}
	for _, path := range paths {
		report.logger.Info("processing object", logging.String(logging.FieldPath, path))
		record, err := decodeObject(path)
		if err != nil {
			return report, err
		}
		claims.claim(report, record.Name(), path)
		records = append(records, record)
	}
	sortByName(records, ObjectRecord.Name)

	if err := emit(report, ObjectsManifest, records); err != nil {
		return report, err
	}
	return report, nil
}

func decodeObject(path string) (ObjectRecord, error) {
	data, err := readSource(path)
	if err != nil {
		return nil, err
	}
	var record ObjectRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, &MalformedObjectError{Path: path, Err: err}
	}
	if record == nil {
		return nil, &MalformedObjectError{Path: path, Err: fmt.Errorf("descriptor is null")}
	}

	name, err := rawString(textutil.Stem(path))
	if err != nil {
		return nil, err
	}
	record["name"] = name
	return record, nil
}

// rawString encodes s as a JSON string without HTML escaping, so names keep
// characters like & verbatim.
func rawString(s string) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return json.RawMessage(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}
