package content

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Media types
const (
	MediaVideo = "video"
	MediaImage = "image"
)

// Domain errors
var (
	ErrEmptyChapterID  = errors.New("chapter id cannot be empty")
	ErrNoPages         = errors.New("chapter must contain at least one page")
	ErrInvalidPageID   = errors.New("page id must be a positive integer")
	ErrDuplicatePageID = errors.New("page id is duplicated within the chapter")
)

// Media is an optional embed attached to a page.
type Media struct {
	Type string `json:"type"` // video or image
	URL  string `json:"url"`
}

// Page is a single curriculum page. Content is markdown.
type Page struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Media   *Media `json:"media,omitempty"`
}

// Chapter holds an ordered sequence of pages. ID is a human-readable
// label that doubles as the sort key.
type Chapter struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Pages []Page `json:"pages"`
}

// Normalize validates and canonicalizes a chapter record at the load
// boundary. Malformed records are rejected or defaulted here so the rest
// of the application can rely on one canonical shape.
// PRE: Chapter was decoded from an external source (bundle or store)
// POST: ID/titles trimmed, pages sorted ascending by id, unknown media dropped
func (c *Chapter) Normalize() error {
	c.ID = strings.TrimSpace(c.ID)
	if c.ID == "" {
		return ErrEmptyChapterID
	}
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		c.Title = c.ID
	}
	if len(c.Pages) == 0 {
		return fmt.Errorf("chapter %q: %w", c.ID, ErrNoPages)
	}

	seen := make(map[int]bool, len(c.Pages))
	for i := range c.Pages {
		p := &c.Pages[i]
		if p.ID <= 0 {
			return fmt.Errorf("chapter %q page %d: %w", c.ID, p.ID, ErrInvalidPageID)
		}
		if seen[p.ID] {
			return fmt.Errorf("chapter %q page %d: %w", c.ID, p.ID, ErrDuplicatePageID)
		}
		seen[p.ID] = true
		p.Title = strings.TrimSpace(p.Title)
		if p.Title == "" {
			p.Title = fmt.Sprintf("Page %d", p.ID)
		}
		if p.Media != nil {
			if (p.Media.Type != MediaVideo && p.Media.Type != MediaImage) || p.Media.URL == "" {
				p.Media = nil
			}
		}
	}

	sort.Slice(c.Pages, func(i, j int) bool { return c.Pages[i].ID < c.Pages[j].ID })
	return nil
}

// IsWelcome reports whether this is the welcome/introduction chapter that
// must sort ahead of the lessons.
// INVARIANT: Chapter fields are not mutated
func (c Chapter) IsWelcome() bool {
	return strings.HasPrefix(strings.ToLower(c.ID), "welcome")
}

// FirstPage returns the first page of the chapter.
// PRE: chapter has been normalized (at least one page, sorted)
func (c Chapter) FirstPage() Page {
	return c.Pages[0]
}

// LastPage returns the last page of the chapter.
// PRE: chapter has been normalized (at least one page, sorted)
func (c Chapter) LastPage() Page {
	return c.Pages[len(c.Pages)-1]
}

// SortChapters orders chapters for display: the welcome chapter first,
// remaining chapters by lexicographic id.
func SortChapters(chapters []Chapter) {
	sort.SliceStable(chapters, func(i, j int) bool {
		wi, wj := chapters[i].IsWelcome(), chapters[j].IsWelcome()
		if wi != wj {
			return wi
		}
		return chapters[i].ID < chapters[j].ID
	})
}
