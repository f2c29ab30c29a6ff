package aggregate

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedObject reports an .object file that is not a JSON object.
	ErrMalformedObject = errors.New("malformed object descriptor")
	// ErrMissingSibling reports a fragment shader without its .vsh or .loc file.
	ErrMissingSibling = errors.New("missing shader sibling")
	// ErrCardinalityMismatch reports differing .fsh/.vsh/.loc counts.
	ErrCardinalityMismatch = errors.New("shader file sets differ in size")
	// ErrInvalidEncoding reports a source file that is not valid UTF-8.
	ErrInvalidEncoding = errors.New("source is not valid UTF-8")
	// ErrManifestConflict reports two outputs of one pipeline sharing a file name.
	ErrManifestConflict = errors.New("manifest name already written")
)

// MalformedObjectError wraps the decode failure of one descriptor.
type MalformedObjectError struct {
	Path string
	Err  error
}

func (e *MalformedObjectError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Path, ErrMalformedObject, e.Err)
}

func (e *MalformedObjectError) Unwrap() []error {
	return []error{ErrMalformedObject, e.Err}
}

// MissingSiblingError names the shader stem and the extension that was not found.
type MissingSiblingError struct {
	Name string
	Ext  string
	Path string
}

func (e *MissingSiblingError) Error() string {
	return fmt.Sprintf("shader %q: %v: %s not found", e.Name, ErrMissingSibling, e.Path)
}

func (e *MissingSiblingError) Is(target error) bool {
	return target == ErrMissingSibling
}

// CardinalityError carries the three file counts of a mismatched shader directory.
type CardinalityError struct {
	Dir       string
	Fragments int
	Vertices  int
	Locations int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("%v in %s: %d %s, %d %s, %d %s",
		ErrCardinalityMismatch, e.Dir,
		e.Fragments, FragmentExt, e.Vertices, VertexExt, e.Locations, LocationsExt)
}

func (e *CardinalityError) Is(target error) bool {
	return target == ErrCardinalityMismatch
}

// InvalidEncodingError names the file whose bytes are not valid UTF-8.
type InvalidEncodingError struct {
	Path string
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, ErrInvalidEncoding)
}

func (e *InvalidEncodingError) Is(target error) bool {
	return target == ErrInvalidEncoding
}
