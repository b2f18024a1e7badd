package content

import (
	"context"

	domain "github.com/nakawebsvcs/kahuawaiwai/internal/domain/content"
)

// Store persists the chapter/page corpus. Content is seeded from the
// bundle at startup and read-only afterwards, so the interface is a
// wholesale replace plus ordered reads.
type Store interface {
	ReplaceAll(ctx context.Context, chapters []domain.Chapter) error
	ListChapters(ctx context.Context) ([]domain.Chapter, error)
	CountChapters(ctx context.Context) (int, error)
}
