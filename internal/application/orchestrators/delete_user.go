package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/account"
)

// AccountStoreForDelete defines the store interface needed by DeleteUser.
type AccountStoreForDelete interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	Delete(ctx context.Context, id string) error
}

// DeleteUserInput carries input for the orchestrator.
type DeleteUserInput struct {
	UID       string
	DeletedBy string
}

// DeleteUserDeps holds dependencies for DeleteUser.
type DeleteUserDeps struct {
	AccountStore AccountStoreForDelete
}

// Orchestrator errors
var (
	ErrMissingUID      = errors.New("user id is required")
	ErrAccountNotFound = errors.New("account not found")
)

// ExecuteDeleteUser removes an account. The missing-uid check runs before
// any store access so an empty argument never reaches the database.
// PRE: UID identifies an existing account
// POST: Account and its activation tokens are removed
func ExecuteDeleteUser(ctx context.Context, input DeleteUserInput, deps DeleteUserDeps) error {
	if input.UID == "" {
		return ErrMissingUID
	}

	acct, err := deps.AccountStore.GetByID(ctx, input.UID)
	if err != nil {
		return ErrAccountNotFound
	}

	if err := deps.AccountStore.Delete(ctx, acct.ID); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "user_deleted", "uid", acct.ID, "email", acct.Email, "deleted_by", input.DeletedBy)
	return nil
}
