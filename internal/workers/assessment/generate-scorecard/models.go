// internal/workers/assessment/generate-scorecard/models.go
package generatescorecard

import "greenbridge-workers/internal/models"

type Input struct {
	UserID     string                 `json:"userId"`
	Category   string                 `json:"category"`
	IntakeData map[string]interface{} `json:"intakeData"`
}

type Output struct {
	Scorecard models.Scorecard `json:"scorecard"`
}
