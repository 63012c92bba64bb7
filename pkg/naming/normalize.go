// Package naming derives stable, filesystem-safe report names from test and
// story identities.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases text, strips diacritics and collapses every run of
// characters that are not letters or digits into a single underscore.
// Leading and trailing underscores are trimmed. Normalize is idempotent.
//
//	Normalize("A simple test case: exception case") == "a_simple_test_case_exception_case"
func Normalize(text string) string {
	// cases.Caser and transform chains carry state, so they are built per call.
	lower := cases.Lower(language.Und).String(text)
	folded, _, err := transform.String(foldDiacritics(), lower)
	if err != nil {
		folded = lower
	}

	var b strings.Builder
	b.Grow(len(folded))
	separate := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if separate && b.Len() > 0 {
				b.WriteByte('_')
			}
			separate = false
			b.WriteRune(r)
			continue
		}
		separate = true
	}
	return b.String()
}

func foldDiacritics() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Humanize turns a class-like token, method name or package path into a
// sentence-case title: "AUserStory" and "a_user_story" both become
// "A user story". Only the last segment of a package path or dotted name is
// used, skipping a trailing major version ("example.com/foo/v2" and
// "gopkg.in/yaml.v3" give "Foo" and "Yaml").
func Humanize(token string) string {
	words := splitWords(lastSegment(token))
	if len(words) == 0 {
		return ""
	}
	lower := cases.Lower(language.Und)
	for i, w := range words {
		words[i] = lower.String(w)
	}
	sentence := []rune(strings.Join(words, " "))
	sentence[0] = unicode.ToUpper(sentence[0])
	return string(sentence)
}

func lastSegment(token string) string {
	segs := strings.FieldsFunc(token, func(r rune) bool { return r == '/' || r == '.' })
	for len(segs) > 1 && isMajorVersion(segs[len(segs)-1]) {
		segs = segs[:len(segs)-1]
	}
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// isMajorVersion matches a Go module major-version element such as "v2".
func isMajorVersion(seg string) bool {
	if len(seg) < 2 || seg[0] != 'v' {
		return false
	}
	for _, r := range seg[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// splitWords splits on separators and camel-case boundaries. An upper-case
// run followed by a lower-case letter ends before its last letter, so
// "HTMLReport" splits into "HTML" and "Report".
func splitWords(s string) []string {
	rs := []rune(s)
	var words []string
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(rs[start:end]))
		}
		start = -1
	}
	for i, r := range rs {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := rs[i-1]
		if unicode.IsUpper(r) {
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush(i)
				start = i
			}
		}
	}
	flush(len(rs))
	return words
}
