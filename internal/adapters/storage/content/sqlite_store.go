package content

import (
	"context"
	"database/sql"

	domain "github.com/nakawebsvcs/kahuawaiwai/internal/domain/content"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new content store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// ReplaceAll replaces the whole corpus in one transaction so the bundle
// stays authoritative across restarts.
// PRE: chapters are normalized and in display order
// POST: store contains exactly the given chapters and pages
func (s *SQLiteStore) ReplaceAll(ctx context.Context, chapters []domain.Chapter) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM page"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM chapter"); err != nil {
		return err
	}

	for pos, ch := range chapters {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO chapter (id, title, position) VALUES (?, ?, ?)",
			ch.ID, ch.Title, pos,
		); err != nil {
			return err
		}
		for _, p := range ch.Pages {
			var mediaType, mediaURL interface{}
			if p.Media != nil {
				mediaType = p.Media.Type
				mediaURL = p.Media.URL
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO page (chapter_id, id, title, content, media_type, media_url) VALUES (?, ?, ?, ?, ?, ?)",
				ch.ID, p.ID, p.Title, p.Content, mediaType, mediaURL,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// ListChapters returns the full corpus in stored display order, pages
// sorted ascending by id.
func (s *SQLiteStore) ListChapters(ctx context.Context) ([]domain.Chapter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.title, p.id, p.title, p.content, p.media_type, p.media_url
		FROM chapter c
		JOIN page p ON p.chapter_id = c.id
		ORDER BY c.position, p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []domain.Chapter
	for rows.Next() {
		var chapterID, chapterTitle string
		var page domain.Page
		var mediaType, mediaURL sql.NullString
		if err := rows.Scan(&chapterID, &chapterTitle, &page.ID, &page.Title, &page.Content, &mediaType, &mediaURL); err != nil {
			return nil, err
		}
		if mediaType.Valid && mediaURL.Valid {
			page.Media = &domain.Media{Type: mediaType.String, URL: mediaURL.String}
		}
		if n := len(chapters); n == 0 || chapters[n-1].ID != chapterID {
			chapters = append(chapters, domain.Chapter{ID: chapterID, Title: chapterTitle})
		}
		last := &chapters[len(chapters)-1]
		last.Pages = append(last.Pages, page)
	}
	return chapters, rows.Err()
}

// CountChapters returns the number of stored chapters.
func (s *SQLiteStore) CountChapters(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chapter").Scan(&count)
	return count, err
}
