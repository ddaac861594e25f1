// internal/workers/onboarding/classify-business/models.go
package classifybusiness

import "greenbridge-workers/internal/models"

type Input struct {
	UserID  string                   `json:"userId"`
	Answers models.OnboardingAnswers `json:"answers"`
}

type Output struct {
	Category   models.Category `json:"category"`
	GreenScore int             `json:"greenScore"`
	SLLScore   float64         `json:"sllScore"`
}
