package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/nakawebsvcs/kahuawaiwai/internal/adapters/http/middleware"
	"github.com/nakawebsvcs/kahuawaiwai/internal/application/orchestrators"
	"github.com/nakawebsvcs/kahuawaiwai/internal/application/projections"
	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/account"
)

// RPC error codes returned by the admin user API. The envelope is
// {"success": bool, "error": {"code", "message"}} so the admin panel
// scripts can branch on the code.
const (
	codeUnauthenticated  = "unauthenticated"
	codePermissionDenied = "permission-denied"
	codeInvalidArgument  = "invalid-argument"
	codeNotFound         = "not-found"
	codeAlreadyExists    = "already-exists"
	codeInternal         = "internal"
)

type rpcError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type rpcEnvelope struct {
	Success bool      `json:"success"`
	Error   *rpcError `json:"error,omitempty"`
	Result  any       `json:"result,omitempty"`
}

func writeRPCError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(rpcEnvelope{Success: false, Error: &rpcError{Code: code, Message: message}})
}

func writeRPCResult(w http.ResponseWriter, result any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rpcEnvelope{Success: true, Result: result})
}

// requireAdminRPC re-checks the session and admin role for every admin
// API call, independent of route-level middleware.
// Returns false if the request should not proceed.
func requireAdminRPC(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		slog.Warn("auth_denied", "path", r.URL.Path, "reason", "no session")
		writeRPCError(w, http.StatusUnauthorized, codeUnauthenticated, "authentication required")
		return middleware.Session{}, false
	}
	if sess.Role != account.RoleAdmin {
		slog.Warn("auth_denied", "path", r.URL.Path, "account_id", sess.AccountID, "role", sess.Role, "required", "admin")
		writeRPCError(w, http.StatusForbidden, codePermissionDenied, "admin role required")
		return middleware.Session{}, false
	}
	return sess, true
}

// handleAdminUsersPage handles GET /admin/users (the admin panel).
func handleAdminUsersPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok || sess.Role != account.RoleAdmin {
		http.NotFound(w, r)
		return
	}

	deps := projections.GetUserListDeps{AccountStore: stores.AccountStore}
	result, err := projections.QueryGetUserList(r.Context(), deps)
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "admin_users.html", map[string]any{
		"CSRFToken": csrf.Token(r),
		"Users":     result.Users,
	})
}

// handleAdminUsers handles GET (list) and POST (create) for /api/admin/users
func handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		if _, ok := requireAdminRPC(w, r); !ok {
			return
		}
		deps := projections.GetUserListDeps{AccountStore: stores.AccountStore}
		result, err := projections.QueryGetUserList(ctx, deps)
		if err != nil {
			slog.Error("internal_error", "error", err.Error())
			writeRPCError(w, http.StatusInternalServerError, codeInternal, "internal server error")
			return
		}
		writeRPCResult(w, result.Users)
		return
	}

	if r.Method == "POST" {
		sess, ok := requireAdminRPC(w, r)
		if !ok {
			return
		}
		var input struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := strictDecode(r, &input); err != nil {
			writeRPCError(w, http.StatusBadRequest, codeInvalidArgument, "invalid JSON body")
			return
		}

		deps := orchestrators.CreateUserDeps{AccountStore: stores.AccountStore}
		uid, err := orchestrators.ExecuteCreateUser(ctx, orchestrators.CreateUserInput{
			Email:     input.Email,
			Password:  input.Password,
			Role:      input.Role,
			CreatedBy: sess.AccountID,
		}, deps)
		if err != nil {
			switch {
			case errors.Is(err, orchestrators.ErrEmailAlreadyExists):
				writeRPCError(w, http.StatusConflict, codeAlreadyExists, err.Error())
			case errors.Is(err, orchestrators.ErrMissingEmail),
				errors.Is(err, orchestrators.ErrMissingPassword),
				errors.Is(err, account.ErrInvalidEmail),
				errors.Is(err, account.ErrInvalidRole),
				errors.Is(err, account.ErrPasswordTooShort):
				writeRPCError(w, http.StatusBadRequest, codeInvalidArgument, err.Error())
			default:
				slog.Error("internal_error", "error", err.Error())
				writeRPCError(w, http.StatusInternalServerError, codeInternal, "internal server error")
			}
			return
		}
		writeRPCResult(w, map[string]string{"uid": uid})
		return
	}

	writeRPCError(w, http.StatusMethodNotAllowed, codeInvalidArgument, "method not allowed")
}

// handleAdminDeleteUser handles POST /api/admin/users/delete
func handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		writeRPCError(w, http.StatusMethodNotAllowed, codeInvalidArgument, "method not allowed")
		return
	}

	sess, ok := requireAdminRPC(w, r)
	if !ok {
		return
	}

	var input struct {
		UID string `json:"uid"`
	}
	if err := strictDecode(r, &input); err != nil {
		writeRPCError(w, http.StatusBadRequest, codeInvalidArgument, "invalid JSON body")
		return
	}

	deps := orchestrators.DeleteUserDeps{AccountStore: stores.AccountStore}
	err := orchestrators.ExecuteDeleteUser(r.Context(), orchestrators.DeleteUserInput{
		UID:       input.UID,
		DeletedBy: sess.AccountID,
	}, deps)
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrMissingUID):
			writeRPCError(w, http.StatusBadRequest, codeInvalidArgument, err.Error())
		case errors.Is(err, orchestrators.ErrAccountNotFound):
			writeRPCError(w, http.StatusNotFound, codeNotFound, err.Error())
		default:
			slog.Error("internal_error", "error", err.Error())
			writeRPCError(w, http.StatusInternalServerError, codeInternal, "internal server error")
		}
		return
	}

	// Any live sessions for the deleted account stop working immediately.
	sessions.DeleteForAccount(input.UID)

	writeRPCResult(w, map[string]string{"uid": input.UID})
}

// handleAdminInviteUser handles POST /api/admin/users/invite
func handleAdminInviteUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		writeRPCError(w, http.StatusMethodNotAllowed, codeInvalidArgument, "method not allowed")
		return
	}

	sess, ok := requireAdminRPC(w, r)
	if !ok {
		return
	}

	var input struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := strictDecode(r, &input); err != nil {
		writeRPCError(w, http.StatusBadRequest, codeInvalidArgument, "invalid JSON body")
		return
	}

	deps := orchestrators.InviteUserDeps{
		AccountStore: stores.AccountStore,
		EmailSender:  emailSender,
		EmailFrom:    emailFromAddress,
		EmailReplyTo: emailReplyTo,
	}
	uid, err := orchestrators.ExecuteInviteUser(r.Context(), orchestrators.InviteUserInput{
		Email:     input.Email,
		Role:      input.Role,
		InvitedBy: sess.AccountID,
		BaseURL:   baseURL,
	}, deps)
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrEmailAlreadyExists):
			writeRPCError(w, http.StatusConflict, codeAlreadyExists, err.Error())
		case errors.Is(err, orchestrators.ErrMissingEmail),
			errors.Is(err, account.ErrInvalidEmail),
			errors.Is(err, account.ErrInvalidRole):
			writeRPCError(w, http.StatusBadRequest, codeInvalidArgument, err.Error())
		default:
			slog.Error("internal_error", "error", err.Error())
			writeRPCError(w, http.StatusInternalServerError, codeInternal, "internal server error")
		}
		return
	}

	writeRPCResult(w, map[string]string{"uid": uid})
}
