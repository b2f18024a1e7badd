package content

// Locator identifies a displayed page by (chapterID, pageID).
type Locator struct {
	ChapterID string
	PageID    int
}

// Library is the in-memory ordered chapter list, populated once at startup
// and read-only thereafter. All methods are safe for concurrent readers.
type Library struct {
	chapters []Chapter
}

// NewLibrary builds a Library from normalized chapters. The input slice is
// sorted into display order (welcome first, then lexicographic id).
// PRE: every chapter has passed Normalize
// POST: returned library owns the slice; callers must not mutate it
func NewLibrary(chapters []Chapter) *Library {
	SortChapters(chapters)
	return &Library{chapters: chapters}
}

// Chapters returns the ordered chapter list.
// INVARIANT: callers must treat the result as read-only
func (l *Library) Chapters() []Chapter {
	return l.chapters
}

// Len returns the number of chapters.
func (l *Library) Len() int {
	return len(l.chapters)
}

// Resolve looks up the chapter and page for a locator.
// POST: ok is false when either id has no match
func (l *Library) Resolve(chapterID string, pageID int) (Chapter, Page, bool) {
	ci := l.chapterIndex(chapterID)
	if ci < 0 {
		return Chapter{}, Page{}, false
	}
	ch := l.chapters[ci]
	for _, p := range ch.Pages {
		if p.ID == pageID {
			return ch, p, true
		}
	}
	return Chapter{}, Page{}, false
}

// Next computes the locator one page forward: the next page in the same
// chapter, or the first page of the next chapter in list order. Chapter
// boundaries are crossed by list position only, never by id arithmetic.
// POST: ok is false at the last page of the last chapter, or when the
// starting locator does not resolve
func (l *Library) Next(chapterID string, pageID int) (Locator, bool) {
	ci := l.chapterIndex(chapterID)
	if ci < 0 {
		return Locator{}, false
	}
	ch := l.chapters[ci]
	for pi, p := range ch.Pages {
		if p.ID != pageID {
			continue
		}
		if pi+1 < len(ch.Pages) {
			return Locator{ChapterID: ch.ID, PageID: ch.Pages[pi+1].ID}, true
		}
		if ci+1 < len(l.chapters) {
			next := l.chapters[ci+1]
			return Locator{ChapterID: next.ID, PageID: next.FirstPage().ID}, true
		}
		return Locator{}, false
	}
	return Locator{}, false
}

// Previous computes the locator one page back: the previous page in the
// same chapter, or the last page of the previous chapter.
// POST: ok is false at the first page of the first chapter, or when the
// starting locator does not resolve
func (l *Library) Previous(chapterID string, pageID int) (Locator, bool) {
	ci := l.chapterIndex(chapterID)
	if ci < 0 {
		return Locator{}, false
	}
	ch := l.chapters[ci]
	for pi, p := range ch.Pages {
		if p.ID != pageID {
			continue
		}
		if pi > 0 {
			return Locator{ChapterID: ch.ID, PageID: ch.Pages[pi-1].ID}, true
		}
		if ci > 0 {
			prev := l.chapters[ci-1]
			return Locator{ChapterID: prev.ID, PageID: prev.LastPage().ID}, true
		}
		return Locator{}, false
	}
	return Locator{}, false
}

func (l *Library) chapterIndex(chapterID string) int {
	for i, ch := range l.chapters {
		if ch.ID == chapterID {
			return i
		}
	}
	return -1
}
