package batch

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	trailingDigits = regexp.MustCompile(`(\d+)$`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
	hyphenRun      = regexp.MustCompile(`-+`)
	disallowed     = regexp.MustCompile(`[^a-z0-9.-]`)
)

// OutputName maps an original file name to its delivery name. With renaming
// on and a base set, a trailing numeric suffix of the original stem is kept
// as the counter ("photo42.png" + base "cat" -> "cat-42.jpg"), otherwise the
// 1-based index is used. Without renaming the original stem is kept, still
// re-attaching a trailing numeric suffix after a single hyphen. The extension
// is always .jpg: the encoder re-encodes every image to that format.
func OutputName(original string, index int, rename bool, base string) string {
	stem := strings.TrimSuffix(original, filepath.Ext(original))
	digits := trailingDigits.FindString(stem)

	if rename && base != "" {
		if digits != "" {
			return base + "-" + digits + ".jpg"
		}
		return fmt.Sprintf("%s-%d.jpg", base, index+1)
	}

	if digits != "" {
		head := strings.TrimRight(strings.TrimSuffix(stem, digits), "-")
		return head + "-" + digits + ".jpg"
	}
	return fmt.Sprintf("%s-%d.jpg", stem, index+1)
}

// Letters NFD does not decompose to a base Latin form.
var polishFold = map[rune]rune{
	'ł': 'l', 'Ł': 'L',
}

// Sanitize normalizes a free-text base name into [a-z0-9.-]: diacritics fold
// to their base letter, whitespace runs become single hyphens, everything is
// lowercased and leftover characters are dropped. Sanitizing an already
// sanitized name is a no-op.
func Sanitize(name string) string {
	var folded strings.Builder
	folded.Grow(len(name))
	for _, r := range name {
		if f, ok := polishFold[r]; ok {
			r = f
		}
		folded.WriteRune(r)
	}

	s := norm.NFD.String(folded.String())
	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, s)

	s = whitespaceRun.ReplaceAllString(s, "-")
	s = strings.ToLower(s)
	s = disallowed.ReplaceAllString(s, "")
	return hyphenRun.ReplaceAllString(s, "-")
}

// BaseFromFirst derives a default base name from the first selected file:
// its sanitized stem. Used when renaming is requested without an explicit
// base.
func BaseFromFirst(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return Sanitize(stem)
}
