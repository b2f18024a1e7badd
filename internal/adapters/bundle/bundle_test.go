package bundle

import (
	"strings"
	"testing"

	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/content"
)

// TestLoad tests that every bundled chapter parses, normalizes, and comes
// back in display order.
func TestLoad(t *testing.T) {
	chapters, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chapters) != 6 {
		t.Fatalf("expected 6 chapters, got %d", len(chapters))
	}

	if !chapters[0].IsWelcome() {
		t.Errorf("expected welcome chapter first, got %q", chapters[0].ID)
	}
	for i := 1; i < len(chapters)-1; i++ {
		if chapters[i].ID > chapters[i+1].ID {
			t.Errorf("chapters out of order: %q before %q", chapters[i].ID, chapters[i+1].ID)
		}
	}

	for _, ch := range chapters {
		if len(ch.Pages) == 0 {
			t.Errorf("chapter %q has no pages", ch.ID)
		}
		for i, p := range ch.Pages {
			if p.ID <= 0 {
				t.Errorf("chapter %q page %d has invalid id", ch.ID, p.ID)
			}
			if i > 0 && ch.Pages[i-1].ID >= p.ID {
				t.Errorf("chapter %q pages not ascending at %d", ch.ID, p.ID)
			}
			if strings.TrimSpace(p.Content) == "" {
				t.Errorf("chapter %q page %d has empty content", ch.ID, p.ID)
			}
			if p.Media != nil && p.Media.Type != content.MediaVideo && p.Media.Type != content.MediaImage {
				t.Errorf("chapter %q page %d has unknown media type %q", ch.ID, p.ID, p.Media.Type)
			}
		}
	}
}

// TestLoad_CarriesHawaiianText tests that diacritics survive the embed
// and parse round trip. Search folding depends on the raw text keeping
// its ʻokina and kahakō.
func TestLoad_CarriesHawaiianText(t *testing.T) {
	chapters, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var all strings.Builder
	for _, ch := range chapters {
		all.WriteString(ch.Title)
		for _, p := range ch.Pages {
			all.WriteString(p.Content)
		}
	}
	text := all.String()
	if !strings.Contains(text, "ʻ") {
		t.Error("expected ʻokina somewhere in the bundled text")
	}
	if !strings.ContainsAny(text, "āēīōū") {
		t.Error("expected kahakō vowels somewhere in the bundled text")
	}
}
