package orchestrators

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	emailAdapter "github.com/nakawebsvcs/kahuawaiwai/internal/adapters/email"
	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/account"
)

// InviteTokenTTL is how long an invitation link stays redeemable.
const InviteTokenTTL = 7 * 24 * time.Hour

// AccountStoreForInvite defines the store interface needed by InviteUser.
type AccountStoreForInvite interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	SaveActivationToken(ctx context.Context, token account.ActivationToken) error
}

// InviteUserInput carries input for the orchestrator.
type InviteUserInput struct {
	Email     string
	Role      string
	InvitedBy string
	BaseURL   string // external URL of this deployment, for the activation link
}

// InviteUserDeps holds dependencies for InviteUser.
type InviteUserDeps struct {
	AccountStore AccountStoreForInvite
	EmailSender  emailAdapter.Sender
	EmailFrom    string
	EmailReplyTo string
	Now          func() time.Time
}

// ExecuteInviteUser creates a pending-activation account without a
// password and emails the invitee a time-limited activation link.
// PRE: Email is present; Role in {user, admin} or empty (defaults user)
// POST: Pending account + single-use token persisted, invitation mailed
// INVARIANT: Email must be unique
func ExecuteInviteUser(ctx context.Context, input InviteUserInput, deps InviteUserDeps) (string, error) {
	if input.Email == "" {
		return "", ErrMissingEmail
	}
	if input.Role == "" {
		input.Role = account.RoleUser
	}
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	if _, err := deps.AccountStore.GetByEmail(ctx, input.Email); err == nil {
		return "", ErrEmailAlreadyExists
	}

	acct := account.Account{
		ID:        uuid.New().String(),
		Email:     input.Email,
		Role:      input.Role,
		Status:    account.StatusPendingActivation,
		CreatedAt: now(),
		CreatedBy: input.InvitedBy,
	}
	if err := acct.Validate(); err != nil {
		return "", err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return "", err
	}

	tokenValue, err := generateInviteToken()
	if err != nil {
		return "", err
	}
	token := account.ActivationToken{
		ID:        uuid.New().String(),
		AccountID: acct.ID,
		Token:     tokenValue,
		ExpiresAt: now().Add(InviteTokenTTL),
		CreatedAt: now(),
	}
	if err := deps.AccountStore.SaveActivationToken(ctx, token); err != nil {
		return "", err
	}

	link := fmt.Sprintf("%s/activate?token=%s", input.BaseURL, tokenValue)
	req := emailAdapter.SendRequest{
		To:      []string{acct.Email},
		From:    deps.EmailFrom,
		ReplyTo: deps.EmailReplyTo,
		Subject: "You're invited to Kahua Waiwai",
		HTML:    inviteEmailHTML(link),
	}
	if _, err := deps.EmailSender.Send(ctx, req); err != nil {
		// Account stays pending; the admin can re-invite after fixing delivery.
		return "", fmt.Errorf("invitation email failed: %w", err)
	}

	slog.Info("auth_event", "event", "user_invited", "email", acct.Email, "role", acct.Role, "invited_by", input.InvitedBy)
	return acct.ID, nil
}

func inviteEmailHTML(link string) string {
	return fmt.Sprintf(`<p>Aloha,</p>
<p>You have been invited to <strong>Kahua Waiwai: Building a Foundation of Wealth</strong>.</p>
<p><a href="%s">Set your password to get started</a>. This link expires in 7 days.</p>
<p>If you were not expecting this invitation you can ignore this email.</p>`, link)
}

func generateInviteToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
