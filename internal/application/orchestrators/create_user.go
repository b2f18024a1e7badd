package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/account"
)

// AccountStoreForCreate defines the store interface needed by CreateUser.
type AccountStoreForCreate interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	Count(ctx context.Context) (int, error)
}

// CreateUserInput carries input for the orchestrator. CreatedBy is the
// uid of the admin performing the call ("" only for the seeded admin).
type CreateUserInput struct {
	Email     string
	Password  string
	Role      string
	CreatedBy string
}

// CreateUserDeps holds dependencies for CreateUser.
type CreateUserDeps struct {
	AccountStore AccountStoreForCreate
}

// Orchestrator errors
var (
	ErrEmailAlreadyExists = errors.New("an account with this email already exists")
	ErrMissingEmail       = errors.New("email is required")
	ErrMissingPassword    = errors.New("password is required")
)

// ExecuteCreateUser coordinates account creation by an admin. The role
// defaults to "user" when absent; the caller's admin role has already
// been re-checked at the API boundary.
// PRE: Valid email, password >= 12 chars, role in {user, admin} or empty
// POST: Active account created with hashed password
// INVARIANT: Email must be unique
func ExecuteCreateUser(ctx context.Context, input CreateUserInput, deps CreateUserDeps) (string, error) {
	if input.Email == "" {
		return "", ErrMissingEmail
	}
	if input.Password == "" {
		return "", ErrMissingPassword
	}
	if input.Role == "" {
		input.Role = account.RoleUser
	}

	// Check if email already exists
	_, err := deps.AccountStore.GetByEmail(ctx, input.Email)
	if err == nil {
		return "", ErrEmailAlreadyExists
	}

	acct := account.Account{
		ID:        uuid.New().String(),
		Email:     input.Email,
		Role:      input.Role,
		Status:    account.StatusActive,
		CreatedAt: time.Now(),
		CreatedBy: input.CreatedBy,
	}

	// Validate domain rules
	if err := acct.Validate(); err != nil {
		return "", err
	}

	// Set password (handles hashing and length validation)
	if err := acct.SetPassword(input.Password); err != nil {
		return "", err
	}

	// Save to store
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return "", err
	}

	slog.Info("auth_event", "event", "user_created", "email", input.Email, "role", input.Role, "created_by", input.CreatedBy)

	return acct.ID, nil
}

// ExecuteSeedAdmin creates a default admin account if no accounts exist.
// PRE: Database is initialized
// POST: Admin account created if count == 0
func ExecuteSeedAdmin(ctx context.Context, deps CreateUserDeps, email, password string) error {
	count, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Accounts already exist, skip seeding
	}

	_, err = ExecuteCreateUser(ctx, CreateUserInput{
		Email:    email,
		Password: password,
		Role:     account.RoleAdmin,
	}, deps)
	if err != nil {
		return err
	}

	slog.Info("auth_event", "event", "admin_seeded", "email", email)
	return nil
}
