package account

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"aiclub/internal/domain/apperr"
)

// Max length constants for user-editable fields.
const (
	MaxEmailLength = 254
	MaxNameLength  = 100
)

// Role constants. Super-admin is an identity check on the email, not a role value.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// DefaultBcryptCost is used when no cost is configured.
const DefaultBcryptCost = 10

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleAdmin, RoleMember}

// Domain errors
var (
	ErrMissingFields      = apperr.Validation("All fields required")
	ErrInvalidEmail       = apperr.Validation("Email must contain '@'")
	ErrEmailTooLong       = apperr.Validation("Email cannot exceed 254 characters")
	ErrNameTooLong        = apperr.Validation("Name cannot exceed 100 characters")
	ErrInvalidRole        = apperr.Validation("Invalid role")
	ErrSuperAdminRole     = apperr.Validation("Cannot change super admin role")
	ErrEmailTaken         = apperr.Conflict("Email already exists")
	ErrInvalidCredentials = apperr.Auth("Invalid credentials")
	ErrNotFound           = apperr.NotFound("User not found")
)

// User holds state for a club account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Profile is the sanitized, client-facing view of a User.
type Profile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	IsSuperAdmin bool      `json:"is_super_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// NormalizeEmail trims and lower-cases an address so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsSuperAdminEmail reports whether email identifies the configured super-admin.
func IsSuperAdminEmail(email, superAdminEmail string) bool {
	if strings.TrimSpace(superAdminEmail) == "" {
		return false
	}
	return NormalizeEmail(email) == NormalizeEmail(superAdminEmail)
}

// Validate checks if the User has valid data.
// PRE: User struct is populated; Email already normalized
// POST: Returns nil if valid, a validation error otherwise
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" || strings.TrimSpace(u.Email) == "" {
		return ErrMissingFields
	}
	if len(u.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if len(u.Email) > MaxEmailLength {
		return ErrEmailTooLong
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if !IsValidRole(u.Role) {
		return ErrInvalidRole
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt.
// PRE: plaintext is non-empty
// POST: PasswordHash is set to a bcrypt hash of the given cost
func (u *User) SetPassword(plaintext string, cost int) error {
	if plaintext == "" {
		return ErrMissingFields
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// INVARIANT: User fields are not mutated
func (u *User) CheckPassword(plaintext string) error {
	if u.PasswordHash == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Profile strips the password hash. superAdminEmail flags the distinguished account.
func (u *User) Profile(superAdminEmail string) Profile {
	return Profile{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		IsSuperAdmin: IsSuperAdminEmail(u.Email, superAdminEmail),
		CreatedAt:    u.CreatedAt,
	}
}

// IsValidRole reports whether role is one of ValidRoles.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
