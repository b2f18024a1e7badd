package web

import (
	"net/http"

	"github.com/nakawebsvcs/kahuawaiwai/internal/adapters/http/middleware"
)

// registerRoutes maps URL paths to handlers. Reader routes sit behind
// RequireAuth; the admin API handlers each re-check role themselves.
func registerRoutes(mux *http.ServeMux) {
	// Public
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/activate", handleActivate)

	// Reader (any authenticated role)
	mux.Handle("/", middleware.RequireAuth(http.HandlerFunc(handleHome)))
	mux.Handle("/chapter/", middleware.RequireAuth(http.HandlerFunc(handleChapterPage)))
	mux.Handle("/search", middleware.RequireAuth(http.HandlerFunc(handleSearch)))

	// Admin panel
	mux.Handle("/admin/users", middleware.RequireAuth(http.HandlerFunc(handleAdminUsersPage)))

	// Admin user API
	mux.HandleFunc("/api/admin/users", handleAdminUsers)
	mux.HandleFunc("/api/admin/users/delete", handleAdminDeleteUser)
	mux.HandleFunc("/api/admin/users/invite", handleAdminInviteUser)
}
