// internal/categorizer/normalize.go
package categorizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes text and drops combining marks, so "Padaria São João"
// and "padaria sao joao" compare equal after lowering.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize case-folds and strips diacritics. Idempotent; empty in, empty out.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	out, _, err := transform.String(stripMarks, text)
	if err != nil {
		out = text
	}
	return strings.ToLower(out)
}
