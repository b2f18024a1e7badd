package projections

import (
	"context"
	"time"

	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/account"
)

// UserListAccountStore defines the store interface needed by the user list projection.
type UserListAccountStore interface {
	List(ctx context.Context) ([]account.Account, error)
}

// GetUserListDeps holds dependencies for the user list projection.
type GetUserListDeps struct {
	AccountStore UserListAccountStore
}

// UserView is one row of the admin user table. Password hashes never
// leave the store layer.
type UserView struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}

// UserListResult carries the full unpaginated user record set.
type UserListResult struct {
	Users []UserView `json:"users"`
}

// QueryGetUserList projects all accounts for the admin panel.
// PRE: caller's admin role was re-checked at the API boundary
func QueryGetUserList(ctx context.Context, deps GetUserListDeps) (UserListResult, error) {
	accounts, err := deps.AccountStore.List(ctx)
	if err != nil {
		return UserListResult{}, err
	}

	result := UserListResult{}
	for _, a := range accounts {
		result.Users = append(result.Users, UserView{
			UID:       a.ID,
			Email:     a.Email,
			Role:      a.Role,
			Status:    a.Status,
			CreatedAt: a.CreatedAt,
			CreatedBy: a.CreatedBy,
		})
	}
	return result, nil
}
