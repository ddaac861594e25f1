// internal/workers/assessment/generate-scorecard/rubrics/rubrics_test.go
package rubrics

import (
	"testing"

	"greenbridge-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suggestionTexts(suggestions []models.Suggestion) []string {
	texts := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		texts = append(texts, s.Text)
	}
	return texts
}

func TestGreen_PerfectScore(t *testing.T) {
	score, breakdown, suggestions, err := Green(models.GreenIntake{
		AnnualElectricityKWh:   5000,
		AnnualFuelLitres:       500,
		WaterConsumptionLitres: 10000,
		WasteGeneratedKgMonth:  50,
		RenewableEnergyPct:     60,
		EfficiencyEquipment:    "BEE 5-star HVAC and LED retrofit",
		IndustryCode:           "3510",
	})

	require.NoError(t, err)
	assert.Equal(t, 100, score)
	assert.Empty(t, suggestions)
	assert.Equal(t, map[string]int{
		"Renewable Energy":  25,
		"Energy Efficiency": 15,
		"Fuel Efficiency":   15,
		"Water Management":  10,
		"Waste Reduction":   15,
		"Green Technology":  15,
		"Sector Bonus":      5,
	}, breakdown)
}

func TestGreen_RenewableBuckets(t *testing.T) {
	tests := []struct {
		name     string
		pct      float64
		expected int
	}{
		{"above fifty", 50.1, 25},
		{"exactly fifty stays in second bucket", 50, 18},
		{"exactly twenty five", 25, 18},
		{"exactly ten", 10, 10},
		{"barely positive", 0.5, 5},
		{"zero triggers suggestion", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, breakdown, suggestions, err := Green(models.GreenIntake{RenewableEnergyPct: tt.pct})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, breakdown["Renewable Energy"])
			if tt.expected == 0 {
				assert.Contains(t, suggestionTexts(suggestions),
					"Install rooftop solar to start your renewable energy journey.")
			}
		})
	}
}

func TestGreen_ConsumptionBuckets(t *testing.T) {
	// Heavy consumption on every axis bottoms out each bucket and
	// triggers the full set of consumption suggestions.
	score, breakdown, suggestions, err := Green(models.GreenIntake{
		AnnualElectricityKWh:   200000,
		AnnualFuelLitres:       20000,
		WaterConsumptionLitres: 900000,
		WasteGeneratedKgMonth:  5000,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, breakdown["Energy Efficiency"])
	assert.Equal(t, 0, breakdown["Fuel Efficiency"])
	assert.Equal(t, 0, breakdown["Water Management"])
	assert.Equal(t, 0, breakdown["Waste Reduction"])
	assert.Equal(t, 0, score)
	assert.Len(t, suggestions, 6)
}

func TestGreen_SectorBonus(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{"electricity sector", "3520", 5},
		{"waste sector", "3811", 5},
		{"remediation sector", "39", 5},
		{"manufacturing sector", "1050", 0},
		{"empty code", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, breakdown, _, err := Green(models.GreenIntake{IndustryCode: tt.code})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, breakdown["Sector Bonus"])
		})
	}
}

func TestGreen_WrongVariant(t *testing.T) {
	_, _, _, err := Green(models.SLLIntake{})
	assert.Error(t, err)
}

func TestSLL_GoalClarity(t *testing.T) {
	tests := []struct {
		name     string
		goals    string
		expected int
	}{
		{
			name:     "quantified and detailed",
			goals:    "Reduce energy consumption by 15% across all three plants",
			expected: 20,
		},
		{
			name:     "percent spelled out",
			goals:    "Cut water usage by 20 percent before the next audit cycle",
			expected: 20,
		},
		{
			name:     "quantified but too short",
			goals:    "Cut energy 15% soon",
			expected: 0,
		},
		{
			name:     "detailed but unquantified",
			goals:    "Improve safety across facilities",
			expected: 10,
		},
		{
			name:     "vague",
			goals:    "do better",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, breakdown, _, err := SLL(models.SLLIntake{TargetImprovementGoals: tt.goals})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, breakdown["Goal Clarity"])
		})
	}
}

func TestSLL_SafetyRecord(t *testing.T) {
	tests := []struct {
		incidents int
		expected  int
	}{
		{0, 25},
		{1, 15},
		{2, 15},
		{3, 5},
		{5, 5},
		{6, 0},
	}

	for _, tt := range tests {
		_, breakdown, _, err := SLL(models.SLLIntake{SafetyIncidentCount: tt.incidents})
		require.NoError(t, err)
		assert.Equal(t, tt.expected, breakdown["Safety Record"], "incidents=%d", tt.incidents)
	}
}

func TestSLL_Governance(t *testing.T) {
	tests := []struct {
		name     string
		policies string
		expected int
	}{
		{
			name:     "two keywords",
			policies: "We enforce Anti-Corruption rules and run an annual Audit.",
			expected: 20,
		},
		{
			name:     "one keyword",
			policies: "Ethics code",
			expected: 10,
		},
		{
			name:     "no keywords but substantial text",
			policies: "Board reviews supplier conduct quarterly",
			expected: 10,
		},
		{
			name:     "nothing",
			policies: "",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, breakdown, _, err := SLL(models.SLLIntake{GovernancePolicies: tt.policies})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, breakdown["Governance"])
		})
	}
}

func TestSLL_ScaleAlwaysScores(t *testing.T) {
	tests := []struct {
		employees int
		expected  int
	}{
		{0, 5},
		{19, 5},
		{20, 7},
		{50, 7},
		{51, 10},
	}

	for _, tt := range tests {
		_, breakdown, _, err := SLL(models.SLLIntake{NumEmployees: tt.employees})
		require.NoError(t, err)
		assert.Equal(t, tt.expected, breakdown["Organization Scale"], "employees=%d", tt.employees)
	}
}

func TestSLL_EmptyIntakeStillScoresFloor(t *testing.T) {
	score, breakdown, suggestions, err := SLL(models.SLLIntake{})

	require.NoError(t, err)
	// Zero incidents earns the full safety bucket, scale earns its floor.
	assert.Equal(t, 25, breakdown["Safety Record"])
	assert.Equal(t, 5, breakdown["Organization Scale"])
	assert.Equal(t, 30, score)
	assert.NotEmpty(t, suggestions)
}

func TestOther_Documentation(t *testing.T) {
	tests := []struct {
		name     string
		docs     string
		expected int
	}{
		{"two certifications", "ISO 9001 and FSSAI licensed", 40},
		{"one certification", "GMP", 20},
		{"no certs but descriptive", "We keep maintenance registers and purchase logs", 20},
		{"nothing", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, breakdown, _, err := Other(models.OtherIntake{ExistingDocs: tt.docs})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, breakdown["Documentation"])
		})
	}
}

func TestOther_InterestAreas(t *testing.T) {
	tests := []struct {
		name      string
		interests string
		expected  int
	}{
		{"three keywords", "solar energy and waste reduction", 40},
		{"one keyword", "interested in water", 20},
		{"no keywords", "general improvement", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, breakdown, _, err := Other(models.OtherIntake{InterestAreas: tt.interests})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, breakdown["Sustainability Interest"])
		})
	}
}

func TestOther_SuggestionsNeverEmpty(t *testing.T) {
	// A submission strong enough to trigger no gap suggestions still gets
	// the two starter defaults.
	strong := models.OtherIntake{
		BusinessInfo:  "Family-run packaging unit supplying food-grade cartons across three states with forty staff and seasonal contractors on site.",
		ExistingDocs:  "ISO 9001, FSSAI and GMP certified",
		InterestAreas: "solar energy, waste recycling, carbon tracking",
	}

	score, _, suggestions, err := Other(strong)
	require.NoError(t, err)
	assert.Equal(t, 100, score)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "Start tracking monthly electricity and fuel bills.", suggestions[0].Text)
	assert.Equal(t, "Check if your industry is eligible for MSME green schemes.", suggestions[1].Text)

	// A weak submission gets gap suggestions instead of the defaults.
	_, _, weak, err := Other(models.OtherIntake{})
	require.NoError(t, err)
	assert.NotEmpty(t, weak)
}

func TestRegistry_CoversAllCategories(t *testing.T) {
	for _, category := range models.Categories() {
		_, exists := Registry[category]
		assert.True(t, exists, "missing rubric for %s", category)
	}
}

func TestExecute_UnknownCategory(t *testing.T) {
	_, _, _, err := Execute(models.Category("retail"), models.OtherIntake{})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
