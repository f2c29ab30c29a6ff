package textutil

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Stem returns the file name without its directory and final extension.
// "app/objects/foo.object" yields "foo"; "card.en.strings" yields "card.en".
// The result is NFC-normalized so decomposed names reported by some
// filesystems match their composed spelling.
func Stem(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return norm.NFC.String(base)
}

// TrimSuffixName returns the file name without its directory and without the
// given multi-part suffix such as ".en.strings". When the name does not end
// with suffix it falls back to Stem.
func TrimSuffixName(path, suffix string) string {
	base := filepath.Base(path)
	if suffix == "" || !strings.HasSuffix(base, suffix) {
		return Stem(path)
	}
	return norm.NFC.String(strings.TrimSuffix(base, suffix))
}
