package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"

	"github.com/nakawebsvcs/kahuawaiwai/internal/adapters/http/middleware"
	"github.com/nakawebsvcs/kahuawaiwai/internal/adapters/markup"
	"github.com/nakawebsvcs/kahuawaiwai/internal/application/projections"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

const templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	role := ""
	email := ""
	if ok {
		role = sess.Role
		email = sess.Email
	}

	funcMap := template.FuncMap{
		"currentRole":  func() string { return role },
		"currentEmail": func() string { return email },
		"isLoggedIn":   func() bool { return role != "" },
		"isAdmin":      func() bool { return role == "admin" },
		"csrfToken":    func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			return markup.Render(md)
		},
		"renderMarkdownHighlighted": func(md, term string) template.HTML {
			return markup.RenderHighlighted(md, term)
		},
		"pageURL": func(chapterID string, pageID int) string {
			return "/chapter/" + url.PathEscape(chapterID) + "/" + strconv.Itoa(pageID)
		},
		"add": func(a, b int) int { return a + b },
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// handleHome handles GET / and renders the table of contents.
func handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result := projections.QueryGetTableOfContents(library)

	if isHTMLRequest(r) {
		renderTemplate(w, r, "toc.html", map[string]any{
			"Chapters": result.Chapters,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleChapterPage handles GET /chapter/{chapterID}/{pageID}.
// An optional ?highlight=<term> query wraps matches of the term in the
// rendered content, so arrival from a search result shows where it hit.
func handleChapterPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Path shape: /chapter/{chapterID}/{pageID}
	rest := strings.TrimPrefix(r.URL.Path, "/chapter/")
	slash := strings.LastIndex(rest, "/")
	if slash <= 0 || slash == len(rest)-1 {
		http.NotFound(w, r)
		return
	}
	chapterID, err := url.PathUnescape(rest[:slash])
	if err != nil {
		http.NotFound(w, r)
		return
	}
	pageID, err := strconv.Atoi(rest[slash+1:])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	query := projections.GetPageQuery{ChapterID: chapterID, PageID: pageID}
	result, err := projections.QueryGetPage(query, library)
	if err != nil {
		if errors.Is(err, projections.ErrPageNotFound) {
			slog.Info("content_event", "action", "page_not_found", "chapter_id", chapterID, "page_id", pageID)
			w.WriteHeader(http.StatusNotFound)
			renderTemplate(w, r, "not_found.html", map[string]any{
				"ChapterID": chapterID,
				"PageID":    pageID,
			})
			return
		}
		internalError(w, err)
		return
	}

	highlight := r.URL.Query().Get("highlight")
	var rendered template.HTML
	if highlight != "" {
		rendered = markup.RenderHighlighted(result.Page.Content, highlight)
	} else {
		rendered = markup.Render(result.Page.Content)
	}

	data := map[string]any{
		"Chapter":   result.Chapter,
		"Page":      result.Page,
		"Rendered":  rendered,
		"Highlight": highlight,
		"Prev":      result.Prev,
		"Next":      result.Next,
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "page.html", data)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"chapter": result.Chapter,
		"page":    result.Page,
		"prev":    result.Prev,
		"next":    result.Next,
	})
}

// handleSearch handles GET /search?q=<term>.
func handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	term := r.URL.Query().Get("q")
	result := projections.QuerySearchContent(projections.SearchContentQuery{Term: term}, library)

	if term != "" {
		slog.Info("content_event", "action", "search", "hits", len(result.Hits))
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "search.html", map[string]any{
			"Term":     term,
			"Hits":     result.Hits,
			"Searched": result.Searched,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
