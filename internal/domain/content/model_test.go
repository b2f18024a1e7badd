package content_test

import (
	"errors"
	"testing"

	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/content"
)

// TestChapter_Normalize tests validation and canonicalization of chapters.
func TestChapter_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		chapter content.Chapter
		wantErr error
	}{
		{
			name: "valid chapter",
			chapter: content.Chapter{
				ID:    "Lesson 1: Show Me the Money",
				Title: "Show Me the Money",
				Pages: []content.Page{{ID: 1, Title: "Intro", Content: "body"}},
			},
		},
		{
			name: "empty id",
			chapter: content.Chapter{
				Pages: []content.Page{{ID: 1, Title: "Intro"}},
			},
			wantErr: content.ErrEmptyChapterID,
		},
		{
			name: "whitespace id",
			chapter: content.Chapter{
				ID:    "   ",
				Pages: []content.Page{{ID: 1, Title: "Intro"}},
			},
			wantErr: content.ErrEmptyChapterID,
		},
		{
			name:    "no pages",
			chapter: content.Chapter{ID: "Lesson 1"},
			wantErr: content.ErrNoPages,
		},
		{
			name: "zero page id",
			chapter: content.Chapter{
				ID:    "Lesson 1",
				Pages: []content.Page{{ID: 0, Title: "Intro"}},
			},
			wantErr: content.ErrInvalidPageID,
		},
		{
			name: "negative page id",
			chapter: content.Chapter{
				ID:    "Lesson 1",
				Pages: []content.Page{{ID: -3, Title: "Intro"}},
			},
			wantErr: content.ErrInvalidPageID,
		},
		{
			name: "duplicate page id",
			chapter: content.Chapter{
				ID: "Lesson 1",
				Pages: []content.Page{
					{ID: 2, Title: "A"},
					{ID: 2, Title: "B"},
				},
			},
			wantErr: content.ErrDuplicatePageID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.chapter.Normalize()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestChapter_Normalize_Defaults tests title defaulting and page sorting.
func TestChapter_Normalize_Defaults(t *testing.T) {
	ch := content.Chapter{
		ID: "  Lesson 2: Savin' Up  ",
		Pages: []content.Page{
			{ID: 3, Title: "  Third  "},
			{ID: 1},
			{ID: 2, Title: "Second"},
		},
	}
	if err := ch.Normalize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.ID != "Lesson 2: Savin' Up" {
		t.Errorf("expected trimmed id, got %q", ch.ID)
	}
	if ch.Title != "Lesson 2: Savin' Up" {
		t.Errorf("expected title to default to id, got %q", ch.Title)
	}
	if ch.Pages[0].ID != 1 || ch.Pages[1].ID != 2 || ch.Pages[2].ID != 3 {
		t.Errorf("expected pages sorted by id, got %v", ch.Pages)
	}
	if ch.Pages[0].Title != "Page 1" {
		t.Errorf("expected untitled page to default to 'Page 1', got %q", ch.Pages[0].Title)
	}
	if ch.Pages[2].Title != "Third" {
		t.Errorf("expected trimmed page title, got %q", ch.Pages[2].Title)
	}
}

// TestChapter_Normalize_DropsUnknownMedia tests that malformed media is discarded.
func TestChapter_Normalize_DropsUnknownMedia(t *testing.T) {
	ch := content.Chapter{
		ID: "Lesson 3",
		Pages: []content.Page{
			{ID: 1, Media: &content.Media{Type: "audio", URL: "/static/a.mp3"}},
			{ID: 2, Media: &content.Media{Type: content.MediaVideo, URL: ""}},
			{ID: 3, Media: &content.Media{Type: content.MediaImage, URL: "/static/img/x.png"}},
		},
	}
	if err := ch.Normalize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.Pages[0].Media != nil {
		t.Error("expected unknown media type to be dropped")
	}
	if ch.Pages[1].Media != nil {
		t.Error("expected media with empty URL to be dropped")
	}
	if ch.Pages[2].Media == nil {
		t.Error("expected valid image media to survive")
	}
}

// TestSortChapters tests display ordering: welcome first, rest lexicographic.
func TestSortChapters(t *testing.T) {
	chapters := []content.Chapter{
		{ID: "Lesson 4: Building Credit"},
		{ID: "Welcome to Kahua Waiwai"},
		{ID: "Lesson 1: Show Me the Money"},
		{ID: "Introduction: Managing Resources"},
	}
	content.SortChapters(chapters)

	want := []string{
		"Welcome to Kahua Waiwai",
		"Introduction: Managing Resources",
		"Lesson 1: Show Me the Money",
		"Lesson 4: Building Credit",
	}
	for i, id := range want {
		if chapters[i].ID != id {
			t.Errorf("position %d: expected %q, got %q", i, id, chapters[i].ID)
		}
	}
}

// TestChapter_IsWelcome tests welcome detection is case-insensitive.
func TestChapter_IsWelcome(t *testing.T) {
	if !(content.Chapter{ID: "Welcome to Kahua Waiwai"}).IsWelcome() {
		t.Error("expected welcome chapter to be detected")
	}
	if !(content.Chapter{ID: "welcome"}).IsWelcome() {
		t.Error("expected lowercase welcome to be detected")
	}
	if (content.Chapter{ID: "Lesson 1"}).IsWelcome() {
		t.Error("expected lesson chapter not to be welcome")
	}
}
