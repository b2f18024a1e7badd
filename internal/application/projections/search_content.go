package projections

import (
	"strings"
	"unicode/utf8"

	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/content"
	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/search"
)

// snippetLength is how many runes of page content a search result shows.
const snippetLength = 100

// SearchContentQuery carries the free-text term.
type SearchContentQuery struct {
	Term string
}

// SearchHit is one search result row.
type SearchHit struct {
	ChapterID    string `json:"chapter_id"`
	ChapterTitle string `json:"chapter_title"`
	PageID       int    `json:"page_id"`
	PageTitle    string `json:"page_title"`
	Snippet      string `json:"snippet"`
}

// SearchContentResult carries the ordered hit list. Searched is false
// when the term was too short to run a scan, so the UI can distinguish
// "no results" from "type more".
type SearchContentResult struct {
	Term     string      `json:"term"`
	Searched bool        `json:"searched"`
	Hits     []SearchHit `json:"hits"`
}

// QuerySearchContent runs the corpus scan and shapes hits for display.
// Hits keep chapter-then-page traversal order.
// PRE: library is non-nil
// POST: terms under the minimum length yield an empty hit list
func QuerySearchContent(query SearchContentQuery, library *content.Library) SearchContentResult {
	trimmed := strings.TrimSpace(query.Term)
	result := SearchContentResult{
		Term:     query.Term,
		Searched: utf8.RuneCountInString(trimmed) >= search.MinTermLength,
	}
	for _, r := range search.Search(library.Chapters(), query.Term) {
		result.Hits = append(result.Hits, SearchHit{
			ChapterID:    r.Chapter.ID,
			ChapterTitle: r.Chapter.Title,
			PageID:       r.Page.ID,
			PageTitle:    r.Page.Title,
			Snippet:      snippet(r.Page.Content),
		})
	}
	return result
}

// snippet truncates content to snippetLength runes with an ellipsis.
func snippet(s string) string {
	if utf8.RuneCountInString(s) <= snippetLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:snippetLength]) + "…"
}
