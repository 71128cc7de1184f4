package types

import "time"

// WellnessPlan represents a diet and workout plan a trainer prescribes
// for a member.
type WellnessPlan struct {
	// ID is the unique identifier of the plan.
	ID int `json:"id" db:"id"`

	// MemberID references the member the plan is written for.
	MemberID int `json:"member_id" db:"member_id"`

	// TrainerID references the trainer who authored the plan.
	TrainerID int `json:"trainer_id" db:"trainer_id"`

	// Title is the human-readable name of the plan.
	Title string `json:"title" db:"title"`

	// Notes holds free-form guidance from the trainer.
	Notes string `json:"notes" db:"notes"`

	// Diet is the ordered list of diet items in the plan.
	Diet []string `json:"diet" db:"diet"`

	// Workout is the ordered list of workout items in the plan.
	Workout []string `json:"workout" db:"workout"`

	// CreatedAt is the timestamp when the plan was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the plan.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
