// internal/workers/assessment/generate-scorecard/rubrics/sll.go
package rubrics

import (
	"fmt"
	"regexp"
	"strings"

	"greenbridge-workers/internal/models"
)

var quantifiedTargetRe = regexp.MustCompile(`\d+%|\d+ percent`)

var governanceKeywords = []string{"anti-corruption", "whistleblower", "ethics", "compliance", "audit"}

// SLL scores the social & governance rubric.
func SLL(intake models.Intake) (int, map[string]int, []models.Suggestion, error) {
	in, ok := intake.(models.SLLIntake)
	if !ok {
		return 0, nil, nil, fmt.Errorf("sll rubric needs an sll intake, got %T", intake)
	}

	score := 0
	breakdown := make(map[string]int)
	var suggestions []models.Suggestion

	// Target clarity, 20 points max. Quantified goals with real detail
	// score full marks.
	goals := in.TargetImprovementGoals
	hasNumbers := quantifiedTargetRe.MatchString(strings.ToLower(goals))
	var goalScore int
	switch {
	case hasNumbers && len(goals) > 30:
		goalScore = 20
	case len(goals) > 20:
		goalScore = 10
	default:
		goalScore = 0
		suggestions = append(suggestions, models.Suggestion{
			Text: "Define quantifiable targets (e.g., 'Reduce energy by 15% in 3 years').",
			Icon: "🎯",
		})
	}
	breakdown["Goal Clarity"] = goalScore
	score += goalScore

	// Safety record, 25 points max
	var safetyScore int
	switch {
	case in.SafetyIncidentCount == 0:
		safetyScore = 25
	case in.SafetyIncidentCount <= 2:
		safetyScore = 15
	case in.SafetyIncidentCount <= 5:
		safetyScore = 5
	default:
		safetyScore = 0
		suggestions = append(suggestions, models.Suggestion{
			Text: "Strengthen ISO 45001 safety protocols to reach zero incidents.",
			Icon: "⛑️",
		})
	}
	breakdown["Safety Record"] = safetyScore
	score += safetyScore

	// Workforce diversity, 15 points max
	var diversityScore int
	if len(in.WorkforceDiversityStats) > 5 {
		diversityScore = 15
	} else {
		diversityScore = 0
		suggestions = append(suggestions, models.Suggestion{
			Text: "Track and report workforce diversity metrics.",
			Icon: "👥",
		})
	}
	breakdown["Diversity Tracking"] = diversityScore
	score += diversityScore

	// Governance policies, 20 points max
	governance := strings.ToLower(in.GovernancePolicies)
	matches := 0
	for _, kw := range governanceKeywords {
		if strings.Contains(governance, kw) {
			matches++
		}
	}
	var govScore int
	switch {
	case matches >= 2:
		govScore = 20
	case matches == 1 || len(governance) > 20:
		govScore = 10
	default:
		govScore = 0
		suggestions = append(suggestions, models.Suggestion{
			Text: "Formalize Anti-Corruption and Whistleblower policies.",
			Icon: "📜",
		})
	}
	breakdown["Governance"] = govScore
	score += govScore

	// Training programs, 10 points max
	var trainingScore int
	if len(in.TrainingPrograms) > 5 {
		trainingScore = 10
	} else {
		trainingScore = 0
		suggestions = append(suggestions, models.Suggestion{
			Text: "Implement regular skill development and safety training.",
			Icon: "📚",
		})
	}
	breakdown["Employee Training"] = trainingScore
	score += trainingScore

	// Organization scale, 10 points max. Every size earns a floor.
	var scaleScore int
	switch {
	case in.NumEmployees > 50:
		scaleScore = 10
	case in.NumEmployees >= 20:
		scaleScore = 7
	default:
		scaleScore = 5
	}
	breakdown["Organization Scale"] = scaleScore
	score += scaleScore

	return score, breakdown, suggestions, nil
}
