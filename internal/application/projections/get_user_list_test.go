package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/account"
)

// mockUserListStore implements UserListAccountStore for testing.
type mockUserListStore struct {
	accounts []account.Account
	listErr  error
}

// List implements the store.
func (m *mockUserListStore) List(_ context.Context) ([]account.Account, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.accounts, nil
}

// TestQueryGetUserList tests projection of account rows and that password
// hashes stay behind.
func TestQueryGetUserList(t *testing.T) {
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	store := &mockUserListStore{accounts: []account.Account{
		{
			ID:           "u1",
			Email:        "admin@kahuawaiwai.example",
			PasswordHash: "$2a$12$secret",
			Role:         account.RoleAdmin,
			Status:       account.StatusActive,
			CreatedAt:    created,
		},
		{
			ID:        "u2",
			Email:     "invitee@kahuawaiwai.example",
			Role:      account.RoleUser,
			Status:    account.StatusPendingActivation,
			CreatedAt: created.Add(time.Hour),
			CreatedBy: "u1",
		},
	}}

	result, err := QueryGetUserList(context.Background(), GetUserListDeps{AccountStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(result.Users))
	}

	first := result.Users[0]
	if first.UID != "u1" || first.Role != account.RoleAdmin {
		t.Errorf("unexpected first row: %+v", first)
	}
	if result.Users[1].Status != account.StatusPendingActivation {
		t.Errorf("expected pending status, got %q", result.Users[1].Status)
	}
	if result.Users[1].CreatedBy != "u1" {
		t.Errorf("expected CreatedBy projected, got %q", result.Users[1].CreatedBy)
	}
}

// TestQueryGetUserList_Empty tests the empty record set.
func TestQueryGetUserList_Empty(t *testing.T) {
	result, err := QueryGetUserList(context.Background(), GetUserListDeps{AccountStore: &mockUserListStore{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Users) != 0 {
		t.Errorf("expected no users, got %d", len(result.Users))
	}
}

// TestQueryGetUserList_StoreError tests error propagation.
func TestQueryGetUserList_StoreError(t *testing.T) {
	store := &mockUserListStore{listErr: errors.New("db gone")}
	if _, err := QueryGetUserList(context.Background(), GetUserListDeps{AccountStore: store}); err == nil {
		t.Error("expected error from store")
	}
}
