// internal/workers/assessment/generate-scorecard/rubrics/registry.go
package rubrics

import (
	"errors"
	"fmt"

	"greenbridge-workers/internal/models"
)

var ErrUnknownCategory = errors.New("unknown assessment category")

// RubricFunc scores one typed intake variant. It returns the raw point sum
// (pre-clamp), the per-criterion breakdown, and any triggered suggestions.
type RubricFunc func(intake models.Intake) (int, map[string]int, []models.Suggestion, error)

var Registry = map[models.Category]RubricFunc{
	models.CategoryGreen: Green,
	models.CategorySLL:   SLL,
	models.CategoryOther: Other,
}

func Execute(category models.Category, intake models.Intake) (int, map[string]int, []models.Suggestion, error) {
	fn, exists := Registry[category]
	if !exists {
		return 0, nil, nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	return fn(intake)
}
