package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	contentStore "github.com/nakawebsvcs/kahuawaiwai/internal/adapters/storage/content"
	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/content"
)

// SeedContentDeps holds dependencies for SeedContent.
type SeedContentDeps struct {
	ContentStore contentStore.Store
}

var ErrNoContent = errors.New("content bundle is empty")

// ExecuteSeedContent replaces the stored corpus with the bundled
// chapters. Runs on every startup so the bundle stays the single source
// of truth; there is no in-app authoring path.
// PRE: chapters come normalized and sorted from the bundle loader
// POST: store holds exactly the bundled corpus
func ExecuteSeedContent(ctx context.Context, deps SeedContentDeps, chapters []content.Chapter) error {
	if len(chapters) == 0 {
		return ErrNoContent
	}
	if err := deps.ContentStore.ReplaceAll(ctx, chapters); err != nil {
		return err
	}
	pages := 0
	for _, ch := range chapters {
		pages += len(ch.Pages)
	}
	slog.Info("content_event", "event", "content_seeded", "chapters", len(chapters), "pages", pages)
	return nil
}

// LoadLibrary reads the stored corpus into the in-memory Library the
// Navigator and Search operate on. Called once at startup, after seeding.
// POST: returned library is read-only for the life of the process
func LoadLibrary(ctx context.Context, deps SeedContentDeps) (*content.Library, error) {
	chapters, err := deps.ContentStore.ListChapters(ctx)
	if err != nil {
		return nil, err
	}
	return content.NewLibrary(chapters), nil
}
