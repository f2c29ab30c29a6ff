package textutil

import "strings"

// markupEscaper maps the five markup-significant characters to their named
// entities. strings.Replacer scans the input once, so the ampersands it emits
// are never escaped a second time.
var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"\"", "&quot;",
	"'", "&apos;",
	">", "&gt;",
	"<", "&lt;",
)

var markupUnescaper = strings.NewReplacer(
	"&amp;", "&",
	"&quot;", "\"",
	"&apos;", "'",
	"&gt;", ">",
	"&lt;", "<",
)

// EscapeMarkup replaces & " ' > < with &amp; &quot; &apos; &gt; &lt;.
// Every other character, including non-ASCII text, passes through unchanged.
func EscapeMarkup(text string) string {
	if !strings.ContainsAny(text, "&\"'<>") {
		return text
	}
	return markupEscaper.Replace(text)
}

// UnescapeMarkup decodes exactly the five entities produced by EscapeMarkup.
// Other entities such as &nbsp; or numeric references are left alone.
func UnescapeMarkup(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}
	return markupUnescaper.Replace(text)
}
