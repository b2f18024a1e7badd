// Package bundle holds the embedded curriculum content. The JSON files
// under chapters/ are the single authoring source for chapter and page
// records; they are seeded into the database at startup.
package bundle

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"

	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/content"
)

//go:embed chapters/*.json
var chapterFS embed.FS

// Load parses and normalizes every bundled chapter file.
// POST: chapters are validated, pages sorted, and the list is in display
// order (welcome first, then lexicographic chapter id)
func Load() ([]content.Chapter, error) {
	entries, err := fs.ReadDir(chapterFS, "chapters")
	if err != nil {
		return nil, fmt.Errorf("failed to read bundled chapters: %w", err)
	}
	// Deterministic parse order; display order is applied below.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var chapters []content.Chapter
	for _, entry := range entries {
		data, err := chapterFS.ReadFile("chapters/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		var ch content.Chapter
		if err := json.Unmarshal(data, &ch); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}
		if err := ch.Normalize(); err != nil {
			return nil, fmt.Errorf("invalid chapter in %s: %w", entry.Name(), err)
		}
		chapters = append(chapters, ch)
	}

	content.SortChapters(chapters)
	return chapters, nil
}
