package web

import (
	"errors"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/nakawebsvcs/kahuawaiwai/internal/adapters/http/middleware"
	"github.com/nakawebsvcs/kahuawaiwai/internal/application/orchestrators"
	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/account"
)

// handleLogin handles GET (form) and POST (authenticate) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		// If already logged in, redirect to the table of contents
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			Email:    r.FormValue("Email"),
			Password: r.FormValue("Password"),
		}

		deps := orchestrators.LoginDeps{
			AccountStore: stores.AccountStore,
		}

		result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		token, err := sessions.Create(result.AccountID, result.Email, result.Role)
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if token := middleware.SessionCookieToken(r); token != "" {
		sessions.Delete(token)
	}

	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleActivate handles GET (set-password form) and POST (redeem) for
// /activate?token=<token>. Invitees land here from the emailed link.
func handleActivate(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "activate.html", map[string]any{
			"CSRFToken": csrf.Token(r),
			"Token":     token,
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		token := r.FormValue("Token")
		password := r.FormValue("Password")
		confirm := r.FormValue("ConfirmPassword")

		if password != confirm {
			renderTemplate(w, r, "activate.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Token":     token,
				"Error":     "Passwords do not match",
			})
			return
		}

		input := orchestrators.ActivateAccountInput{Token: token, Password: password}
		deps := orchestrators.ActivateAccountDeps{AccountStore: stores.AccountStore}

		if err := orchestrators.ExecuteActivateAccount(r.Context(), input, deps); err != nil {
			switch {
			case errors.Is(err, account.ErrTokenExpired),
				errors.Is(err, account.ErrTokenInvalid),
				errors.Is(err, account.ErrPasswordTooShort):
				renderTemplate(w, r, "activate.html", map[string]any{
					"CSRFToken": csrf.Token(r),
					"Token":     token,
					"Error":     err.Error(),
				})
			default:
				internalError(w, err)
			}
			return
		}

		renderTemplate(w, r, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
			"Notice":    "Your account is ready. Sign in with your new password.",
		})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}
