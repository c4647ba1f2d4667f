package projections

import (
	"context"

	"aiclub/internal/domain/account"
)

// UsersDeps holds dependencies for the user queries.
type UsersDeps struct {
	AccountStore    AccountStore
	SuperAdminEmail string
}

// QueryListUsers returns every user without password hashes.
// POST: ordered by name; the super-admin is flagged
func QueryListUsers(ctx context.Context, deps UsersDeps) ([]account.Profile, error) {
	users, err := deps.AccountStore.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]account.Profile, 0, len(users))
	for _, u := range users {
		out = append(out, u.Profile(deps.SuperAdminEmail))
	}
	return out, nil
}

// QueryMe returns the caller's current profile as stored, not as carried by the token.
func QueryMe(ctx context.Context, userID string, deps UsersDeps) (account.Profile, error) {
	u, err := deps.AccountStore.GetByID(ctx, userID)
	if err != nil {
		return account.Profile{}, err
	}
	return u.Profile(deps.SuperAdminEmail), nil
}
