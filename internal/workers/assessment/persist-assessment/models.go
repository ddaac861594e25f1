// internal/workers/assessment/persist-assessment/models.go
package persistassessment

import "time"

type Input struct {
	UserID         string                 `json:"userId"`
	Category       string                 `json:"category"`
	InitialData    map[string]interface{} `json:"initialData"`
	IntakeData     map[string]interface{} `json:"intakeData"`
	Score          int                    `json:"score"`
	Rating         string                 `json:"rating"`
	CarbonEstimate float64                `json:"carbonEstimate"`
	Verdict        string                 `json:"verdict"`
}

type Output struct {
	AssessmentID string    `json:"assessmentId"`
	Persisted    bool      `json:"persisted"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
