package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ʻOkina and the apostrophe variants that stand in for it across the
// corpus. All are stripped during folding so "Hawaii" matches "Hawaiʻi".
var okinaVariants = map[rune]bool{
	'ʻ': true, // ʻ modifier letter turned comma (the ʻokina proper)
	'‘': true, // ' left single quotation mark
	'’': true, // ' right single quotation mark
	'\'':     true, // straight apostrophe
	'ʼ': true, // ʼ modifier letter apostrophe
}

// Fold returns the normalized form of s together with a byte-offset map:
// offsets[i] is the byte position in s of the rune that produced folded
// byte i. The pipeline is: NFD decomposition, combining-mark stripping,
// ʻokina stripping, whitespace-run collapsing, lower-casing.
func Fold(s string) (string, []int) {
	var b strings.Builder
	b.Grow(len(s))
	offsets := make([]int, 0, len(s))
	pendingSpace := false
	spaceOffset := 0
	emitted := false

	for i, r := range s {
		if okinaVariants[r] {
			continue
		}
		if unicode.IsSpace(r) {
			if !pendingSpace {
				spaceOffset = i
			}
			pendingSpace = true
			continue
		}
		for _, d := range norm.NFD.String(string(r)) {
			if unicode.Is(unicode.Mn, d) {
				continue
			}
			if pendingSpace && emitted {
				b.WriteByte(' ')
				offsets = append(offsets, spaceOffset)
			}
			pendingSpace = false
			for _, c := range []byte(string(unicode.ToLower(d))) {
				b.WriteByte(c)
				offsets = append(offsets, i)
			}
			emitted = true
		}
	}
	return b.String(), offsets
}

// Normalize folds s and trims surrounding whitespace. Both search terms
// and corpus text pass through here so matching is case-, diacritic- and
// ʻokina-insensitive.
func Normalize(s string) string {
	folded, _ := Fold(s)
	return strings.TrimSpace(folded)
}

// Span is a half-open [Start, End) byte range into the original text.
type Span struct {
	Start int
	End   int
}

// FindSpans locates every normalized-equal occurrence of term within text
// and returns the byte ranges of the matches in the original text. When a
// match ends mid-fold of an original rune, the span extends to cover the
// whole rune, so diacritic-marked characters are never cut in half.
func FindSpans(text, term string) []Span {
	needle := Normalize(term)
	if needle == "" {
		return nil
	}
	folded, offsets := Fold(text)

	var spans []Span
	from := 0
	for {
		i := strings.Index(folded[from:], needle)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(needle)
		span := Span{Start: offsets[start]}
		if end < len(folded) {
			span.End = offsets[end]
		} else {
			span.End = len(text)
		}
		spans = append(spans, span)
		from = end
	}
	return spans
}
