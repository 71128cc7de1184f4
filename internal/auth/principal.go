// Package auth implements the authentication boundary: bcrypt password
// hashing, signed session tokens, cookie-based session extraction, and
// role-based access checks.
//
// The server holds no session state. Logout is client-side cookie
// replacement only, so an issued token remains valid until its natural
// expiry.
package auth

// Role is the closed set of authorization levels an account can hold.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleTrainer    Role = "trainer"
)

// ParseRole maps a raw role string onto the closed enum. Any value
// outside the enum is rejected.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleSuperAdmin:
		return RoleSuperAdmin, true
	case RoleTrainer:
		return RoleTrainer, true
	default:
		return "", false
	}
}

// Principal is the verified identity attached to a request after
// successful token verification. It is reconstructed per request and
// never persisted or cached.
type Principal struct {
	UserID string
	Email  string
	Role   Role
	Name   string
}

// Authorize reports whether the principal may access a resource that
// requires one of the given roles. A nil principal (anonymous request)
// is always denied.
func Authorize(p *Principal, required ...Role) bool {
	if p == nil {
		return false
	}
	for _, role := range required {
		if p.Role == role {
			return true
		}
	}
	return false
}
