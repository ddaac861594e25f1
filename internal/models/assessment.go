package models

import "time"

// Category is the assessment track a business is routed into after
// onboarding. It selects both the intake schema and the scoring rubric.
type Category string

const (
	CategoryGreen Category = "green"
	CategorySLL   Category = "sll"
	CategoryOther Category = "other"
)

// Categories lists every valid track, in routing precedence order.
func Categories() []Category {
	return []Category{CategoryGreen, CategorySLL, CategoryOther}
}

// Valid reports whether c is one of the three known tracks.
func (c Category) Valid() bool {
	switch c {
	case CategoryGreen, CategorySLL, CategoryOther:
		return true
	}
	return false
}

// OnboardingAnswers holds the seven yes/no questions from the initial
// filter form. Field names match the web form payload.
type OnboardingAnswers struct {
	IsManufacturing           bool `json:"is_manufacturing"`
	ConsumesSignificantEnergy bool `json:"consumes_significant_energy"`
	TracksEnvMetrics          bool `json:"tracks_env_metrics"`
	MeasuresEmissions         bool `json:"measures_emissions"`
	HasSustainabilityGoals    bool `json:"has_sustainability_goals"`
	AppliedForESGLoan         bool `json:"applied_for_esg_loan"`
	HasEmployeePolicies       bool `json:"has_employee_policies"`
}

// CarbonEstimate is the proxy emissions figure derived from intake data.
// Breakdown entries and the total are rounded independently, so the
// displayed parts may differ from the total by a cent's worth of rounding.
type CarbonEstimate struct {
	EstimatedCarbon float64            `json:"estimatedCarbon"`
	Breakdown       map[string]float64 `json:"breakdown"`
	Unit            string             `json:"unit"`
}

// Suggestion is one actionable improvement surfaced when a rubric
// criterion scores below its maximum.
type Suggestion struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// Scorecard is the rubric output for one assessment pass.
type Scorecard struct {
	Score       int            `json:"score"`
	Rating      string         `json:"rating"`
	Breakdown   map[string]int `json:"breakdown"`
	Suggestions []Suggestion   `json:"suggestions"`
}

// AssessmentResult aggregates everything the pipeline produced for one
// user. Persisted as the latest assessment only; resubmission overwrites.
type AssessmentResult struct {
	AssessmentID string                 `json:"assessmentId"`
	UserID       string                 `json:"userId"`
	Category     Category               `json:"category"`
	IntakeData   map[string]interface{} `json:"intakeData"`
	Carbon       CarbonEstimate         `json:"carbonEstimate"`
	Scorecard    Scorecard              `json:"scorecard"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}
