package projections

import (
	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/content"
)

// TOCPage is one page entry in the table of contents.
type TOCPage struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// TOCChapter is one chapter entry in the table of contents.
type TOCChapter struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Pages []TOCPage `json:"pages"`
}

// TableOfContentsResult carries the full chapter outline.
type TableOfContentsResult struct {
	Chapters []TOCChapter `json:"chapters"`
}

// QueryGetTableOfContents projects the library into the outline shown on
// the home page, in display order.
// PRE: library is non-nil
func QueryGetTableOfContents(library *content.Library) TableOfContentsResult {
	result := TableOfContentsResult{}
	for _, ch := range library.Chapters() {
		tc := TOCChapter{ID: ch.ID, Title: ch.Title}
		for _, p := range ch.Pages {
			tc.Pages = append(tc.Pages, TOCPage{ID: p.ID, Title: p.Title})
		}
		result.Chapters = append(result.Chapters, tc)
	}
	return result
}
