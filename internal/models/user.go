package models

import "time"

// UserProfile mirrors the user_profiles row: one row per user holding the
// onboarding answers, intake data and latest results. Overwritten on each
// resubmission, no history kept.
type UserProfile struct {
	ID             string                 `json:"id" db:"id"`
	UserID         string                 `json:"userId" db:"user_id"`
	Category       Category               `json:"category" db:"category"`
	InitialData    map[string]interface{} `json:"initialData,omitempty" db:"initial_data"`
	IntakeData     map[string]interface{} `json:"intakeData,omitempty" db:"intake_data"`
	Score          int                    `json:"score" db:"score"`
	Rating         string                 `json:"rating" db:"rating"`
	CarbonEstimate float64                `json:"carbonEstimate" db:"carbon_estimate"`
	UpdatedAt      time.Time              `json:"updatedAt" db:"updated_at"`
}
