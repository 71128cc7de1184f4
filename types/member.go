package types

import "time"

// Member represents a gym member. Members do not log in; they are
// administered through the admin surface.
type Member struct {
	// ID is the unique identifier of the member.
	ID int `json:"id" db:"id"`

	// Name is the member's full name.
	Name string `json:"name" db:"name"`

	// Email is the member's contact email.
	Email string `json:"email" db:"email"`

	// Phone is the member's contact phone number.
	Phone string `json:"phone" db:"phone"`

	// Plan is the membership plan label (e.g., "monthly", "annual").
	Plan string `json:"plan" db:"plan"`

	// JoinedAt is the date the membership started.
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`

	// TrainerID references the assigned trainer, if any.
	TrainerID *int `json:"trainer_id,omitempty" db:"trainer_id"`

	// PhotoKey is the object-storage key of the member's photo, if uploaded.
	PhotoKey string `json:"photo_key,omitempty" db:"photo_key"`

	// CreatedAt is the timestamp when the member record was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the record.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
