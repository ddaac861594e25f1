// internal/workers/assessment/generate-scorecard/rubrics/other.go
package rubrics

import (
	"fmt"
	"strings"

	"greenbridge-workers/internal/models"
)

var certificationKeywords = []string{"iso", "bis", "fssai", "gmp", "haccp", "ohsas", "sa8000"}

var interestKeywords = []string{"water", "energy", "waste", "solar", "recycle", "carbon", "green"}

// Other scores the ESG readiness rubric for businesses outside both loan
// tracks. Always ends with at least one suggestion.
func Other(intake models.Intake) (int, map[string]int, []models.Suggestion, error) {
	in, ok := intake.(models.OtherIntake)
	if !ok {
		return 0, nil, nil, fmt.Errorf("other rubric needs an other intake, got %T", intake)
	}

	score := 0
	breakdown := make(map[string]int)
	var suggestions []models.Suggestion

	// Business description, 20 points max. Even a bare description earns
	// the floor.
	var bizScore int
	switch {
	case len(in.BusinessInfo) > 100:
		bizScore = 20
	case len(in.BusinessInfo) > 30:
		bizScore = 10
	default:
		bizScore = 5
	}
	breakdown["Business Clarity"] = bizScore
	score += bizScore

	// Existing documentation, 40 points max
	docs := strings.ToLower(in.ExistingDocs)
	docMatches := 0
	for _, kw := range certificationKeywords {
		if strings.Contains(docs, kw) {
			docMatches++
		}
	}
	var docScore int
	switch {
	case docMatches >= 2:
		docScore = 40
	case docMatches == 1 || len(docs) > 30:
		docScore = 20
	default:
		docScore = 0
		suggestions = append(suggestions, models.Suggestion{
			Text: "Start documenting your processes - it's the foundation of ESG.",
			Icon: "📋",
		})
	}
	breakdown["Documentation"] = docScore
	score += docScore

	// Interest areas, 40 points max
	interests := strings.ToLower(in.InterestAreas)
	interestMatches := 0
	for _, kw := range interestKeywords {
		if strings.Contains(interests, kw) {
			interestMatches++
		}
	}
	var interestScore int
	switch {
	case interestMatches >= 3:
		interestScore = 40
	case interestMatches >= 1:
		interestScore = 20
	default:
		interestScore = 10
		suggestions = append(suggestions, models.Suggestion{
			Text: "Explore quick wins: LED lighting, waste segregation, water metering.",
			Icon: "🌱",
		})
	}
	breakdown["Sustainability Interest"] = interestScore
	score += interestScore

	// Nothing triggered above: hand out the starter checklist.
	if len(suggestions) == 0 {
		suggestions = append(suggestions,
			models.Suggestion{Text: "Start tracking monthly electricity and fuel bills.", Icon: "📊"},
			models.Suggestion{Text: "Check if your industry is eligible for MSME green schemes.", Icon: "🏭"},
		)
	}

	return score, breakdown, suggestions, nil
}
