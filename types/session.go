package types

import "time"

// ClassSession represents a scheduled class or training slot on the
// gym calendar.
type ClassSession struct {
	// ID is the unique identifier of the session.
	ID int `json:"id" db:"id"`

	// Title is the human-readable name of the session
	// (e.g., "Morning HIIT").
	Title string `json:"title" db:"title"`

	// TrainerID references the trainer running the session.
	TrainerID int `json:"trainer_id" db:"trainer_id"`

	// Location is the room or area where the session takes place.
	Location string `json:"location" db:"location"`

	// StartsAt is the scheduled start time.
	StartsAt time.Time `json:"starts_at" db:"starts_at"`

	// EndsAt is the scheduled end time. Always after StartsAt.
	EndsAt time.Time `json:"ends_at" db:"ends_at"`

	// Capacity is the maximum number of attendees. Zero means unlimited.
	Capacity int `json:"capacity" db:"capacity"`

	// CreatedAt is the timestamp when the session was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the session.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
