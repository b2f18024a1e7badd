package projections

import (
	"errors"
	"testing"

	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/content"
)

func viewLibrary() *content.Library {
	return content.NewLibrary([]content.Chapter{
		{
			ID:    "Welcome",
			Title: "Welcome to Kahua Waiwai",
			Pages: []content.Page{{ID: 1, Title: "E komo mai", Content: "aloha"}},
		},
		{
			ID:    "Lesson 1",
			Title: "Show Me the Money",
			Pages: []content.Page{
				{ID: 1, Title: "P1", Content: "one"},
				{ID: 2, Title: "P2", Content: "two"},
			},
		},
	})
}

// TestQueryGetPage_Interior tests a page with neighbours on both sides.
func TestQueryGetPage_Interior(t *testing.T) {
	result, err := QueryGetPage(GetPageQuery{ChapterID: "Lesson 1", PageID: 1}, viewLibrary())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Chapter.ID != "Lesson 1" || result.Page.ID != 1 {
		t.Errorf("resolved wrong page: %s / %d", result.Chapter.ID, result.Page.ID)
	}
	if result.Prev == nil || result.Prev.ChapterID != "Welcome" || result.Prev.PageID != 1 {
		t.Errorf("unexpected Prev: %v", result.Prev)
	}
	if result.Next == nil || result.Next.ChapterID != "Lesson 1" || result.Next.PageID != 2 {
		t.Errorf("unexpected Next: %v", result.Next)
	}
}

// TestQueryGetPage_Boundaries tests nil neighbours at the course ends.
func TestQueryGetPage_Boundaries(t *testing.T) {
	first, err := QueryGetPage(GetPageQuery{ChapterID: "Welcome", PageID: 1}, viewLibrary())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Prev != nil {
		t.Errorf("expected nil Prev at course start, got %v", first.Prev)
	}
	if first.Next == nil {
		t.Error("expected Next at course start")
	}

	last, err := QueryGetPage(GetPageQuery{ChapterID: "Lesson 1", PageID: 2}, viewLibrary())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last.Next != nil {
		t.Errorf("expected nil Next at course end, got %v", last.Next)
	}
}

// TestQueryGetPage_NotFound tests unresolvable locators.
func TestQueryGetPage_NotFound(t *testing.T) {
	if _, err := QueryGetPage(GetPageQuery{ChapterID: "Lesson 99", PageID: 1}, viewLibrary()); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("expected ErrPageNotFound, got %v", err)
	}
	if _, err := QueryGetPage(GetPageQuery{ChapterID: "Lesson 1", PageID: 42}, viewLibrary()); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("expected ErrPageNotFound, got %v", err)
	}
}

// TestQueryGetTableOfContents tests the outline projection.
func TestQueryGetTableOfContents(t *testing.T) {
	result := QueryGetTableOfContents(viewLibrary())
	if len(result.Chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(result.Chapters))
	}
	if result.Chapters[0].ID != "Welcome" {
		t.Errorf("expected welcome first, got %q", result.Chapters[0].ID)
	}
	if len(result.Chapters[1].Pages) != 2 {
		t.Errorf("expected 2 pages, got %d", len(result.Chapters[1].Pages))
	}
	if result.Chapters[1].Pages[0].Title != "P1" {
		t.Errorf("unexpected page title %q", result.Chapters[1].Pages[0].Title)
	}
}
