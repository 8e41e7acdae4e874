package curves

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Canonical returns the cache key for an expression: the text with
// identifiers case folded, surrounding space trimmed, and internal runs of
// space collapsed to a single space. Identifiers are found by the same rules
// the lexer uses, and other text is kept as is, so text the lexer rejects
// never shares a key with text it accepts. The text should already be in NFC;
// see normalize.
func Canonical(src string) string {
	src = strings.TrimSpace(src)
	fold := cases.Fold()
	var b, ident strings.Builder
	b.Grow(len(src))
	flush := func() {
		if ident.Len() > 0 {
			b.WriteString(fold.String(ident.String()))
			ident.Reset()
		}
	}
	space := false
	for _, r := range src {
		switch {
		case unicode.IsSpace(r):
			flush()
			space = true
			continue
		case space:
			b.WriteByte(' ')
			space = false
		}
		switch {
		case r == '_', unicode.IsLetter(r), ident.Len() > 0 && unicode.IsDigit(r):
			ident.WriteRune(r)
		default:
			flush()
			b.WriteRune(r)
		}
	}
	flush()
	return b.String()
}

// normalize converts expression text to NFC so that equivalent spellings of
// identifiers lex identically.
func normalize(src string) string {
	return norm.NFC.String(src)
}

// foldParams returns params with names normalized and case folded the way
// identifiers are. If every name is already folded, the result is params
// itself.
func foldParams(params map[string]float64) map[string]float64 {
	c := cases.Fold()
	for k := range params {
		if c.String(normalize(k)) != k {
			r := make(map[string]float64, len(params))
			for k, v := range params {
				r[c.String(normalize(k))] = v
			}
			return r
		}
	}
	return params
}
