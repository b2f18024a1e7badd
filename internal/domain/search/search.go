package search

import (
	"strings"
	"unicode/utf8"

	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/content"
)

// MinTermLength is the minimum search term length (in runes, after
// trimming). Shorter terms yield an empty result set so near-empty input
// never scans the corpus.
const MinTermLength = 3

// Result pairs a matching page with its owning chapter.
type Result struct {
	Chapter content.Chapter
	Page    content.Page
}

// Search scans the chapter list for pages whose combined chapter title,
// page title and content contain the normalized term as a substring.
// Results come back in chapter-then-page traversal order; there is no
// relevance ranking. An empty chapter list yields an empty result set.
func Search(chapters []content.Chapter, term string) []Result {
	trimmed := strings.TrimSpace(term)
	if utf8.RuneCountInString(trimmed) < MinTermLength {
		return nil
	}
	needle := Normalize(trimmed)
	if needle == "" {
		return nil
	}

	var results []Result
	for _, ch := range chapters {
		for _, p := range ch.Pages {
			haystack := Normalize(ch.Title + " " + p.Title + " " + p.Content)
			if strings.Contains(haystack, needle) {
				results = append(results, Result{Chapter: ch, Page: p})
			}
		}
	}
	return results
}
