package types

import "time"

// Trainer represents a trainer profile. Each trainer profile is backed by
// a trainer-role Account used to log in on the trainer surface.
type Trainer struct {
	// ID is the unique identifier of the trainer profile.
	ID int `json:"id" db:"id"`

	// AccountID references the login account backing this profile.
	AccountID int `json:"account_id" db:"account_id"`

	// Name is the trainer's full name.
	Name string `json:"name" db:"name"`

	// Email is the trainer's contact email. Matches the login email.
	Email string `json:"email" db:"email"`

	// Phone is the trainer's contact phone number.
	Phone string `json:"phone" db:"phone"`

	// Specialty is a free-form description of the trainer's focus
	// (e.g., "strength", "yoga").
	Specialty string `json:"specialty" db:"specialty"`

	// PhotoKey is the object-storage key of the trainer's photo, if uploaded.
	PhotoKey string `json:"photo_key,omitempty" db:"photo_key"`

	// CreatedAt is the timestamp when the profile was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the profile.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
