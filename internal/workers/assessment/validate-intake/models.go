// internal/workers/assessment/validate-intake/models.go
package validateintake

type Input struct {
	UserID     string                 `json:"userId"`
	Category   string                 `json:"category"`
	IntakeData map[string]interface{} `json:"intakeData"`
}

type Output struct {
	Valid      bool                   `json:"valid"`
	Category   string                 `json:"category"`
	IntakeData map[string]interface{} `json:"intakeData"`
}
