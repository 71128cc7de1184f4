package types

import "time"

// Account represents a login credential record for the staff surfaces.
// Super admins and trainers authenticate against accounts; gym members
// have no login and exist only as Member records.
type Account struct {
	// ID is the unique identifier of the account.
	ID int `json:"id" db:"id"`

	// Name is the account holder's display name.
	Name string `json:"name" db:"name"`

	// Email is the login email. Unique per role.
	Email string `json:"email" db:"email"`

	// Role is the account's authorization level: "super_admin" or "trainer".
	Role string `json:"role" db:"role"`

	// PasswordHash stores the bcrypt digest of the account password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// Active indicates whether the account may log in. Deactivated
	// accounts fail login even with correct credentials.
	Active bool `json:"active" db:"active"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
