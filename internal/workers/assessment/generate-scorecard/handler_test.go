// internal/workers/assessment/generate-scorecard/handler_test.go
package generatescorecard

import (
	"context"
	"testing"

	"greenbridge-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestInput(category string, data map[string]interface{}) *Input {
	return &Input{
		UserID:     "user-001",
		Category:   category,
		IntakeData: data,
	}
}

func perfectGreenIntake() map[string]interface{} {
	return map[string]interface{}{
		"annual_electricity_kwh":   5000,
		"annual_fuel_litres":       500,
		"water_consumption_litres": 10000,
		"waste_generated_kg_month": 50,
		"renewable_energy_pct":     60,
		"efficiency_equipment":     "BEE 5-star HVAC and LED retrofit",
		"industry_code":            "3510",
	}
}

func TestHandler_Execute_PerfectGreenScenario(t *testing.T) {
	handler := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), createTestInput("green", perfectGreenIntake()))

	require.NoError(t, err)
	assert.Equal(t, 100, output.Scorecard.Score)
	assert.Equal(t, "A", output.Scorecard.Rating)
	assert.Empty(t, output.Scorecard.Suggestions)
	assert.Len(t, output.Scorecard.Breakdown, 7)
}

func TestHandler_Execute_RatingBands(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{100, "A"}, {80, "A"},
		{79, "B"}, {60, "B"},
		{59, "C"}, {40, "C"},
		{39, "D"}, {0, "D"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, classifyRating(tt.score), "score=%d", tt.score)
	}
}

func TestHandler_Execute_Idempotent(t *testing.T) {
	handler := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	input := createTestInput("sll", map[string]interface{}{
		"target_improvement_goals": "Reduce energy consumption by 15% across all plants",
		"safety_incident_count":    1,
		"num_employees":            30,
		"governance_policies":      "ethics and compliance reviews",
	})

	first, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := handler.Execute(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, first.Scorecard, again.Scorecard)
	}
}

func TestHandler_Execute_EmptyIntake(t *testing.T) {
	tests := []struct {
		category       string
		expectedRating string
	}{
		// Green with everything zero still earns points on the low-usage
		// buckets (15+15+10+15 = 55).
		{"green", "C"},
		// SLL floor: zero incidents (25) plus scale floor (5).
		{"sll", "D"},
		// Other floor: clarity 5 + interest 10 = 15.
		{"other", "D"},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			handler := NewHandler(LoadConfig(), logger.NewTestLogger(t))

			output, err := handler.Execute(context.Background(), createTestInput(tt.category, nil))

			require.NoError(t, err)
			assert.Equal(t, tt.expectedRating, output.Scorecard.Rating)
			assert.NotEmpty(t, output.Scorecard.Suggestions)
		})
	}
}

func TestHandler_Execute_OtherSuggestionsNeverEmpty(t *testing.T) {
	handler := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), createTestInput("other", map[string]interface{}{
		"business_info":  "Family-run packaging unit supplying food-grade cartons across three states with forty staff and seasonal contractors on site.",
		"existing_docs":  "ISO 9001, FSSAI and GMP certified",
		"interest_areas": "solar energy, waste reduction, carbon tracking",
	}))

	require.NoError(t, err)
	assert.Equal(t, 100, output.Scorecard.Score)
	assert.NotEmpty(t, output.Scorecard.Suggestions)
}

func TestHandler_Execute_InvalidCategory(t *testing.T) {
	handler := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), createTestInput("retail", map[string]interface{}{}))

	assert.Error(t, err)
	assert.Nil(t, output)
}

func TestHandler_Execute_TolerantParsing(t *testing.T) {
	handler := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	// Numeric strings and missing fields must not fail the rubric.
	output, err := handler.Execute(context.Background(), createTestInput("green", map[string]interface{}{
		"renewable_energy_pct":   "60",
		"annual_electricity_kwh": "not a number",
	}))

	require.NoError(t, err)
	assert.Equal(t, 25, output.Scorecard.Breakdown["Renewable Energy"])
	assert.Equal(t, 15, output.Scorecard.Breakdown["Energy Efficiency"])
}
