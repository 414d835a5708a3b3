package content

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// Ellipsis is appended to excerpts that were cut short.
	Ellipsis = "..."

	LatinExcerptLength = 200
	CJKExcerptLength   = 100
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	codeFenceRe  = regexp.MustCompile("(?m)^\\s*(```|~~~).*$")
	imageRe      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	linkRe       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	refLinkRe    = regexp.MustCompile(`\[([^\]]*)\]\[[^\]]*\]`)
	headingRe    = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s*`)
	quoteRe      = regexp.MustCompile(`(?m)^\s*>+\s?`)
	listMarkRe   = regexp.MustCompile(`(?m)^\s*([-+*]|\d+\.)\s+`)
	ruleRe       = regexp.MustCompile(`(?m)^\s*([-*_]\s*){3,}$`)
	emphasisRe   = regexp.MustCompile("[*_~`]+")
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// StripMarkup removes HTML tags and markdown syntax from s and collapses
// whitespace, leaving the readable text.
func StripMarkup(s string) string {
	s = htmlTagRe.ReplaceAllString(s, "")
	s = codeFenceRe.ReplaceAllString(s, "")
	s = imageRe.ReplaceAllString(s, "$1")
	s = linkRe.ReplaceAllString(s, "$1")
	s = refLinkRe.ReplaceAllString(s, "$1")
	s = ruleRe.ReplaceAllString(s, "")
	s = headingRe.ReplaceAllString(s, "")
	s = quoteRe.ReplaceAllString(s, "")
	s = listMarkRe.ReplaceAllString(s, "")
	s = emphasisRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// cjkSymbols is the CJK Symbols and Punctuation block (ideographic space,
// 、。「」 and friends).
var cjkSymbols = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x3000, Hi: 0x303f, Stride: 1}},
}

// cjkTables are the scripts that make a body CJK. Emoji and other wide
// symbols are not in them.
var cjkTables = []*unicode.RangeTable{
	unicode.Han,
	unicode.Hiragana,
	unicode.Katakana,
	unicode.Hangul,
	unicode.Bopomofo,
	cjkSymbols,
}

// IsCJK reports whether r is a Chinese, Japanese or Korean character or CJK
// punctuation.
func IsCJK(r rune) bool {
	return unicode.IsOneOf(cjkTables, r)
}

// HasCJK reports whether s contains at least one CJK character.
func HasCJK(s string) bool {
	for _, r := range s {
		if IsCJK(r) {
			return true
		}
	}
	return false
}

// RuneWeight is the excerpt budget consumed by r.
func RuneWeight(r rune) int {
	if IsCJK(r) {
		return 2
	}
	return 1
}

// ExcerptLength picks the excerpt budget for a body: CJK text is denser, so
// it gets half the Latin budget.
func ExcerptLength(body string) int {
	if HasCJK(body) {
		return CJKExcerptLength
	}
	return LatinExcerptLength
}

// Excerpt returns override unchanged when it is non-empty. Otherwise it
// strips markup from body and keeps characters while their summed weight
// stays within max, with Ellipsis appended only if something was cut.
func Excerpt(body string, max int, override string) string {
	if override != "" {
		return override
	}
	return Truncate(StripMarkup(body), max)
}

// Truncate cuts s to a weighted length of max. CJK characters weigh 2.
func Truncate(s string, max int) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	total := 0
	for _, r := range s {
		total += RuneWeight(r)
		if total > max {
			return strings.TrimRight(b.String(), " ") + Ellipsis
		}
		b.WriteRune(r)
	}
	return b.String()
}
