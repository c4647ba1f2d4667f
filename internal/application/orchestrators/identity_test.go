package orchestrators

import (
	"context"
	"errors"
	"testing"

	"aiclub/internal/domain/account"
	"aiclub/internal/domain/apperr"
)

const superEmail = "boss@club.test"

func registerDeps(store *mockAccountStore) RegisterDeps {
	return RegisterDeps{
		AccountStore:    store,
		Tokens:          mockTokens{},
		SuperAdminEmail: superEmail,
		BcryptCost:      testBcryptCost,
		GenerateID:      sequentialIDs("user"),
		Now:             fixedNow,
	}
}

// TestExecuteRegister_Valid stores a member with a hash and returns a token.
func TestExecuteRegister_Valid(t *testing.T) {
	store := newMockAccountStore()
	res, err := ExecuteRegister(context.Background(), RegisterInput{
		Name:     "  Ada  ",
		Email:    " Ada@Example.COM ",
		Password: "pw",
	}, registerDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Token != "token-user-1" {
		t.Errorf("Token = %q", res.Token)
	}
	if res.User.Email != "ada@example.com" || res.User.Name != "Ada" {
		t.Errorf("profile = %+v", res.User)
	}
	if res.User.Role != account.RoleMember || res.User.IsSuperAdmin {
		t.Errorf("expected plain member, got %+v", res.User)
	}
	stored := store.byID["user-1"]
	if stored.PasswordHash == "" || stored.PasswordHash == "pw" {
		t.Error("expected a bcrypt hash to be stored")
	}
	if err := stored.CheckPassword("pw"); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

// TestExecuteRegister_Rejections covers every refusal reason.
func TestExecuteRegister_Rejections(t *testing.T) {
	existing := account.User{ID: "u0", Name: "Old", Email: "taken@club.test", Role: account.RoleMember}
	tests := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{"blank name", RegisterInput{Name: " ", Email: "a@b.c", Password: "x"}, account.ErrMissingFields},
		{"blank email", RegisterInput{Name: "A", Email: "", Password: "x"}, account.ErrMissingFields},
		{"blank password", RegisterInput{Name: "A", Email: "a@b.c"}, account.ErrMissingFields},
		{"super admin email", RegisterInput{Name: "A", Email: "BOSS@club.test", Password: "x"}, account.ErrEmailTaken},
		{"duplicate", RegisterInput{Name: "A", Email: "Taken@club.test", Password: "x"}, account.ErrEmailTaken},
		{"no at sign", RegisterInput{Name: "A", Email: "nobody", Password: "x"}, account.ErrInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockAccountStore(existing)
			_, err := ExecuteRegister(context.Background(), tt.input, registerDeps(store))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if len(store.byID) != 1 {
				t.Errorf("expected nothing persisted, have %d users", len(store.byID))
			}
		})
	}
}

// TestExecuteRegister_ConcurrentDuplicate surfaces the store's uniqueness error.
func TestExecuteRegister_ConcurrentDuplicate(t *testing.T) {
	store := newMockAccountStore()
	store.createErr = account.ErrEmailTaken
	_, err := ExecuteRegister(context.Background(), RegisterInput{Name: "A", Email: "a@b.c", Password: "x"}, registerDeps(store))
	if !errors.Is(err, account.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("kind = %v, want conflict", apperr.KindOf(err))
	}
}

// TestExecuteLogin covers success and both credential failures.
func TestExecuteLogin(t *testing.T) {
	u := account.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: account.RoleAdmin}
	if err := u.SetPassword("secret", testBcryptCost); err != nil {
		t.Fatal(err)
	}
	deps := LoginDeps{AccountStore: newMockAccountStore(u), Tokens: mockTokens{}, SuperAdminEmail: superEmail}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"success with case-folded email", "ADA@example.com", "secret", nil},
		{"wrong password", "ada@example.com", "nope", account.ErrInvalidCredentials},
		{"unknown email", "who@example.com", "secret", account.ErrInvalidCredentials},
		{"blank", "", "", account.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ExecuteLogin(context.Background(), LoginInput{Email: tt.email, Password: tt.password}, deps)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if res.Token != "token-u1" || res.User.Role != account.RoleAdmin {
					t.Errorf("result = %+v", res)
				}
			}
		})
	}
}

// TestExecuteSeedSuperAdmin creates the account once and is idempotent.
func TestExecuteSeedSuperAdmin(t *testing.T) {
	store := newMockAccountStore()
	deps := SeedSuperAdminDeps{AccountStore: store, BcryptCost: testBcryptCost, GenerateID: sequentialIDs("admin"), Now: fixedNow}
	input := SeedSuperAdminInput{Name: "Boss", Email: "Boss@Club.test", Password: "admin123"}

	for i := 0; i < 2; i++ {
		if err := ExecuteSeedSuperAdmin(context.Background(), input, deps); err != nil {
			t.Fatalf("seed #%d: %v", i+1, err)
		}
	}
	if len(store.byID) != 1 {
		t.Fatalf("expected 1 account, got %d", len(store.byID))
	}
	u := store.byID["admin-1"]
	if u.Email != superEmail || u.Role != account.RoleAdmin {
		t.Errorf("seeded = %+v", u)
	}
	if err := u.CheckPassword("admin123"); err != nil {
		t.Errorf("password does not verify: %v", err)
	}
}

// TestExecuteChangeRole covers the super-admin guard and role validation.
func TestExecuteChangeRole(t *testing.T) {
	boss := account.User{ID: "boss", Name: "Boss", Email: superEmail, Role: account.RoleAdmin}
	ada := account.User{ID: "ada", Name: "Ada", Email: "ada@example.com", Role: account.RoleMember}

	tests := []struct {
		name    string
		input   ChangeRoleInput
		wantErr error
	}{
		{"promote member", ChangeRoleInput{UserID: "ada", Role: account.RoleAdmin}, nil},
		{"missing user", ChangeRoleInput{UserID: "ghost", Role: account.RoleAdmin}, account.ErrNotFound},
		{"super admin target", ChangeRoleInput{UserID: "boss", Role: account.RoleMember}, account.ErrSuperAdminRole},
		{"invalid role", ChangeRoleInput{UserID: "ada", Role: "owner"}, account.ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockAccountStore(boss, ada)
			err := ExecuteChangeRole(context.Background(), tt.input, ChangeRoleDeps{AccountStore: store, SuperAdminEmail: superEmail})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && store.byID["ada"].Role != account.RoleAdmin {
				t.Errorf("role = %s, want admin", store.byID["ada"].Role)
			}
			if store.byID["boss"].Role != account.RoleAdmin {
				t.Error("super admin role must never change")
			}
		})
	}
}
