// internal/workers/assessment/estimate-carbon/models.go
package estimatecarbon

import "greenbridge-workers/internal/models"

type Input struct {
	UserID     string                 `json:"userId"`
	IntakeData map[string]interface{} `json:"intakeData"`
}

type Output struct {
	CarbonEstimate models.CarbonEstimate `json:"carbonEstimate"`
}
