package projections

import (
	"errors"

	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/content"
)

// ErrPageNotFound signals an unresolvable locator. Handlers render a
// not-found state rather than an error page.
var ErrPageNotFound = errors.New("page not found")

// GetPageQuery carries the locator for the page view.
type GetPageQuery struct {
	ChapterID string
	PageID    int
}

// PageViewResult carries everything the page template needs: the resolved
// chapter/page plus the adjacent locators (nil at the corpus boundaries).
type PageViewResult struct {
	Chapter content.Chapter
	Page    content.Page
	Prev    *content.Locator
	Next    *content.Locator
}

// QueryGetPage resolves a locator and computes its neighbours. A nil Prev
// marks the start of the course, a nil Next the end; the template renders
// no link for a missing neighbour.
// PRE: library is non-nil
// POST: returns ErrPageNotFound when either id has no match
func QueryGetPage(query GetPageQuery, library *content.Library) (PageViewResult, error) {
	ch, p, ok := library.Resolve(query.ChapterID, query.PageID)
	if !ok {
		return PageViewResult{}, ErrPageNotFound
	}

	result := PageViewResult{Chapter: ch, Page: p}
	if prev, ok := library.Previous(query.ChapterID, query.PageID); ok {
		result.Prev = &prev
	}
	if next, ok := library.Next(query.ChapterID, query.PageID); ok {
		result.Next = &next
	}
	return result, nil
}
