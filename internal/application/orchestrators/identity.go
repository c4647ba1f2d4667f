package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"aiclub/internal/domain/account"
)

// TokenIssuer signs a session token for a user.
type TokenIssuer interface {
	Issue(u account.User) (string, error)
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string          `json:"token"`
	User  account.Profile `json:"user"`
}

// --- Register ---

// AccountStoreForRegister defines the store interface needed by Register.
type AccountStoreForRegister interface {
	GetByEmail(ctx context.Context, email string) (account.User, error)
	Create(ctx context.Context, u account.User) error
}

// RegisterInput carries input for the register orchestrator.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterDeps holds dependencies for Register.
type RegisterDeps struct {
	AccountStore    AccountStoreForRegister
	Tokens          TokenIssuer
	SuperAdminEmail string
	BcryptCost      int
	GenerateID      func() string
	Now             func() time.Time
}

// ExecuteRegister creates a member account and signs it in.
// PRE: none
// POST: a member User exists with a bcrypt hash; a token is returned
// INVARIANT: emails are unique; the super-admin address can never be registered
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) (AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := account.NormalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return AuthResult{}, account.ErrMissingFields
	}
	if account.IsSuperAdminEmail(email, deps.SuperAdminEmail) {
		slog.Info("auth_event", "event", "register_rejected", "email", email, "reason", "reserved")
		return AuthResult{}, account.ErrEmailTaken
	}

	u := account.User{
		ID:        deps.GenerateID(),
		Name:      name,
		Email:     email,
		Role:      account.RoleMember,
		CreatedAt: deps.Now().UTC(),
	}
	if err := u.Validate(); err != nil {
		return AuthResult{}, err
	}

	_, err := deps.AccountStore.GetByEmail(ctx, email)
	if err == nil {
		return AuthResult{}, account.ErrEmailTaken
	}
	if !errors.Is(err, account.ErrNotFound) {
		return AuthResult{}, fmt.Errorf("lookup email: %w", err)
	}

	if err := u.SetPassword(input.Password, deps.BcryptCost); err != nil {
		return AuthResult{}, err
	}
	// A concurrent registration of the same email surfaces here as ErrEmailTaken.
	if err := deps.AccountStore.Create(ctx, u); err != nil {
		return AuthResult{}, err
	}

	token, err := deps.Tokens.Issue(u)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	slog.Info("auth_event", "event", "account_created", "user_id", u.ID, "email", u.Email)
	return AuthResult{Token: token, User: u.Profile(deps.SuperAdminEmail)}, nil
}

// --- Login ---

// AccountStoreForLogin defines the store interface needed by Login.
type AccountStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (account.User, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore    AccountStoreForLogin
	Tokens          TokenIssuer
	SuperAdminEmail string
}

// ExecuteLogin verifies credentials and issues a session token.
// PRE: none
// POST: returns a token on success; ErrInvalidCredentials for unknown email or wrong password
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (AuthResult, error) {
	email := account.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		slog.Info("auth_event", "event", "login_failed", "email", email, "reason", "blank")
		return AuthResult{}, account.ErrInvalidCredentials
	}

	u, err := deps.AccountStore.GetByEmail(ctx, email)
	if errors.Is(err, account.ErrNotFound) {
		slog.Info("auth_event", "event", "login_failed", "email", email, "reason", "not_found")
		return AuthResult{}, account.ErrInvalidCredentials
	}
	if err != nil {
		return AuthResult{}, fmt.Errorf("lookup email: %w", err)
	}

	if err := u.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", email, "reason", "wrong_password")
		return AuthResult{}, account.ErrInvalidCredentials
	}

	token, err := deps.Tokens.Issue(u)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	slog.Info("auth_event", "event", "login_success", "user_id", u.ID, "role", u.Role)
	return AuthResult{Token: token, User: u.Profile(deps.SuperAdminEmail)}, nil
}

// --- Seed Super Admin ---

// AccountStoreForSeed defines the store interface needed by SeedSuperAdmin.
type AccountStoreForSeed interface {
	GetByEmail(ctx context.Context, email string) (account.User, error)
	Create(ctx context.Context, u account.User) error
}

// SeedSuperAdminInput carries the configured super-admin identity.
type SeedSuperAdminInput struct {
	Name     string
	Email    string
	Password string
}

// SeedSuperAdminDeps holds dependencies for SeedSuperAdmin.
type SeedSuperAdminDeps struct {
	AccountStore AccountStoreForSeed
	BcryptCost   int
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteSeedSuperAdmin creates the super-admin account if it does not exist yet.
// PRE: database is initialized
// POST: exactly one account carries the super-admin email, with role admin when created here
func ExecuteSeedSuperAdmin(ctx context.Context, input SeedSuperAdminInput, deps SeedSuperAdminDeps) error {
	email := account.NormalizeEmail(input.Email)
	_, err := deps.AccountStore.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, account.ErrNotFound) {
		return fmt.Errorf("lookup super admin: %w", err)
	}

	u := account.User{
		ID:        deps.GenerateID(),
		Name:      strings.TrimSpace(input.Name),
		Email:     email,
		Role:      account.RoleAdmin,
		CreatedAt: deps.Now().UTC(),
	}
	if err := u.Validate(); err != nil {
		return fmt.Errorf("super admin: %w", err)
	}
	if err := u.SetPassword(input.Password, deps.BcryptCost); err != nil {
		return fmt.Errorf("super admin password: %w", err)
	}
	if err := deps.AccountStore.Create(ctx, u); err != nil {
		// Another process seeded first.
		if errors.Is(err, account.ErrEmailTaken) {
			return nil
		}
		return err
	}

	slog.Info("auth_event", "event", "super_admin_seeded", "email", email)
	return nil
}

// --- Change Role ---

// AccountStoreForRole defines the store interface needed by ChangeRole.
type AccountStoreForRole interface {
	GetByID(ctx context.Context, id string) (account.User, error)
	UpdateRole(ctx context.Context, id, role string) error
}

// ChangeRoleInput carries input for the change role orchestrator.
type ChangeRoleInput struct {
	UserID  string
	Role    string
	ActorID string
}

// ChangeRoleDeps holds dependencies for ChangeRole.
type ChangeRoleDeps struct {
	AccountStore    AccountStoreForRole
	SuperAdminEmail string
}

// ExecuteChangeRole sets a user's role to admin or member.
// PRE: caller is the super-admin (enforced by the route gate)
// POST: the target's stored role equals input.Role
// INVARIANT: the super-admin's own role is never changed
func ExecuteChangeRole(ctx context.Context, input ChangeRoleInput, deps ChangeRoleDeps) error {
	target, err := deps.AccountStore.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if account.IsSuperAdminEmail(target.Email, deps.SuperAdminEmail) {
		return account.ErrSuperAdminRole
	}
	if !account.IsValidRole(input.Role) {
		return account.ErrInvalidRole
	}
	if err := deps.AccountStore.UpdateRole(ctx, target.ID, input.Role); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "role_changed", "user_id", target.ID, "from", target.Role, "to", input.Role, "by", input.ActorID)
	return nil
}
