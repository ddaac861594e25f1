// internal/workers/onboarding/classify-business/handler_test.go
package classifybusiness

import (
	"context"
	"testing"

	"greenbridge-workers/internal/common/logger"
	"greenbridge-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func createTestInput(userID string, answers models.OnboardingAnswers) *Input {
	return &Input{
		UserID:  userID,
		Answers: answers,
	}
}

func TestHandler_Execute_Classification(t *testing.T) {
	tests := []struct {
		name          string
		answers       models.OnboardingAnswers
		expectedCat   models.Category
		expectedGreen int
		expectedSLL   float64
	}{
		{
			name: "full environmental profile routes green",
			answers: models.OnboardingAnswers{
				IsManufacturing:           true,
				ConsumesSignificantEnergy: true,
				TracksEnvMetrics:          true,
				MeasuresEmissions:         true,
			},
			expectedCat:   models.CategoryGreen,
			expectedGreen: 6,
			expectedSLL:   0.5,
		},
		{
			name: "green boundary at exactly three",
			answers: models.OnboardingAnswers{
				IsManufacturing:  true,
				TracksEnvMetrics: true,
			},
			expectedCat:   models.CategoryGreen,
			expectedGreen: 3,
			expectedSLL:   0,
		},
		{
			name: "green wins even when sll also qualifies",
			answers: models.OnboardingAnswers{
				TracksEnvMetrics:       true,
				MeasuresEmissions:      true,
				HasSustainabilityGoals: true,
				AppliedForESGLoan:      true,
				HasEmployeePolicies:    true,
			},
			expectedCat:   models.CategoryGreen,
			expectedGreen: 4,
			expectedSLL:   4,
		},
		{
			name: "sll boundary at exactly two",
			answers: models.OnboardingAnswers{
				HasSustainabilityGoals: true,
			},
			expectedCat:   models.CategorySLL,
			expectedGreen: 0,
			expectedSLL:   2,
		},
		{
			name: "half point from energy tips sll over the line",
			answers: models.OnboardingAnswers{
				ConsumesSignificantEnergy: true,
				AppliedForESGLoan:         true,
				HasEmployeePolicies:       true,
			},
			expectedCat:   models.CategorySLL,
			expectedGreen: 1,
			expectedSLL:   2.5,
		},
		{
			name: "below both thresholds falls to other",
			answers: models.OnboardingAnswers{
				IsManufacturing:     true,
				HasEmployeePolicies: true,
			},
			expectedCat:   models.CategoryOther,
			expectedGreen: 1,
			expectedSLL:   1,
		},
		{
			name:          "all answers false",
			answers:       models.OnboardingAnswers{},
			expectedCat:   models.CategoryOther,
			expectedGreen: 0,
			expectedSLL:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(LoadConfig(), logger.NewTestLogger(t))

			output, err := handler.Execute(context.Background(), createTestInput("user-001", tt.answers))

			assert.NoError(t, err)
			assert.NotNil(t, output)
			assert.Equal(t, tt.expectedCat, output.Category)
			assert.Equal(t, tt.expectedGreen, output.GreenScore)
			assert.Equal(t, tt.expectedSLL, output.SLLScore)
		})
	}
}

func TestHandler_Execute_Deterministic(t *testing.T) {
	handler := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	input := createTestInput("user-repeat", models.OnboardingAnswers{
		ConsumesSignificantEnergy: true,
		HasSustainabilityGoals:    true,
	})

	first, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := handler.Execute(context.Background(), input)
		assert.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestHandler_Execute_AlwaysValidCategory(t *testing.T) {
	handler := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	// Every combination of the seven booleans yields one of the three tracks.
	for mask := 0; mask < 1<<7; mask++ {
		answers := models.OnboardingAnswers{
			IsManufacturing:           mask&1 != 0,
			ConsumesSignificantEnergy: mask&2 != 0,
			TracksEnvMetrics:          mask&4 != 0,
			MeasuresEmissions:         mask&8 != 0,
			HasSustainabilityGoals:    mask&16 != 0,
			AppliedForESGLoan:         mask&32 != 0,
			HasEmployeePolicies:       mask&64 != 0,
		}

		output, err := handler.Execute(context.Background(), createTestInput("user-mask", answers))

		assert.NoError(t, err)
		assert.True(t, output.Category.Valid(), "mask %b produced %q", mask, output.Category)
	}
}
