// internal/workers/verdict/generate-verdict/models.go
package generateverdict

import "greenbridge-workers/internal/models"

type Input struct {
	UserID         string                 `json:"userId"`
	Category       string                 `json:"category"`
	Score          int                    `json:"score"`
	Rating         string                 `json:"rating"`
	CarbonEstimate float64                `json:"carbonEstimate"`
	IntakeData     map[string]interface{} `json:"intakeData"`
	Suggestions    []models.Suggestion    `json:"suggestions"`
}

type Output struct {
	Verdict     string `json:"verdict"`
	AIGenerated bool   `json:"aiGenerated"`
}
