package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/account"
)

// AccountStoreForActivate defines the store interface needed by ActivateAccount.
type AccountStoreForActivate interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	GetActivationTokenByToken(ctx context.Context, token string) (account.ActivationToken, error)
	SaveActivationToken(ctx context.Context, token account.ActivationToken) error
	InvalidateTokensForAccount(ctx context.Context, accountID string) error
}

// ActivateAccountInput carries input for the orchestrator.
type ActivateAccountInput struct {
	Token    string
	Password string
}

// ActivateAccountDeps holds dependencies for ActivateAccount.
type ActivateAccountDeps struct {
	AccountStore AccountStoreForActivate
	Now          func() time.Time
}

// ExecuteActivateAccount redeems an invitation token: the invitee sets
// their initial password and the account transitions to active. Tokens
// are single-use and expire after InviteTokenTTL.
// PRE: Token was issued by ExecuteInviteUser
// POST: Account active with hashed password, all tokens invalidated
func ExecuteActivateAccount(ctx context.Context, input ActivateAccountInput, deps ActivateAccountDeps) error {
	if input.Token == "" {
		return account.ErrTokenInvalid
	}
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	token, err := deps.AccountStore.GetActivationTokenByToken(ctx, input.Token)
	if err != nil {
		return account.ErrTokenInvalid
	}
	if token.Used {
		return account.ErrTokenInvalid
	}
	if token.IsExpired(now()) {
		return account.ErrTokenExpired
	}

	acct, err := deps.AccountStore.GetByID(ctx, token.AccountID)
	if err != nil {
		return account.ErrTokenInvalid
	}
	if err := acct.Activate(); err != nil {
		return err
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}
	if err := deps.AccountStore.InvalidateTokensForAccount(ctx, acct.ID); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "account_activated", "uid", acct.ID, "email", acct.Email)
	return nil
}
