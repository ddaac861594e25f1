// internal/workers/assessment/validate-intake/handler_test.go
package validateintake

import (
	"context"
	"testing"

	"greenbridge-workers/internal/common/errors"
	"greenbridge-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), logger.NewTestLogger(t))
}

func createGreenInput() *Input {
	return &Input{
		UserID:   "user-1",
		Category: "green",
		IntakeData: map[string]interface{}{
			"annual_electricity_kwh":   12000.0,
			"annual_fuel_litres":       "450",
			"water_consumption_litres": 80000.0,
			"renewable_energy_pct":     30.0,
			"efficiency_equipment":     "LED lighting, VFD motors",
			"industry_code":            "35101",
		},
	}
}

func TestExecute_ValidGreenIntake(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), createGreenInput())
	require.NoError(t, err)

	assert.True(t, output.Valid)
	assert.Equal(t, "green", output.Category)
	assert.Equal(t, 12000.0, output.IntakeData["annual_electricity_kwh"])
	// Numeric strings come back as numbers after normalization.
	assert.Equal(t, 450.0, output.IntakeData["annual_fuel_litres"])
	assert.Equal(t, "35101", output.IntakeData["industry_code"])
}

func TestExecute_ValidSLLIntake(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		UserID:   "user-2",
		Category: "sll",
		IntakeData: map[string]interface{}{
			"turnover_last_3_years":    "2.1cr, 2.4cr, 2.9cr",
			"target_improvement_goals": "Reduce energy use by 20% in 2 years",
			"num_employees":            "45",
			"safety_incident_count":    0.0,
			"governance_policies":      "Whistleblower policy, annual audit",
		},
	})
	require.NoError(t, err)

	assert.True(t, output.Valid)
	assert.Equal(t, "sll", output.Category)
	assert.Equal(t, 45.0, output.IntakeData["num_employees"])
}

func TestExecute_ValidOtherIntake(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		UserID:   "user-3",
		Category: "other",
		IntakeData: map[string]interface{}{
			"business_info":  "Small packaging unit in Pune, operating since 2015, 12 employees.",
			"interest_areas": "solar, waste reduction",
		},
	})
	require.NoError(t, err)

	assert.True(t, output.Valid)
	// Missing fields zero-fill during normalization.
	assert.Equal(t, "", output.IntakeData["existing_docs"])
}

func TestExecute_VariantMismatch(t *testing.T) {
	h := newTestHandler(t)

	// Green energy data submitted under the sll track.
	output, err := h.Execute(context.Background(), &Input{
		UserID:   "user-4",
		Category: "sll",
		IntakeData: map[string]interface{}{
			"annual_electricity_kwh": 12000.0,
			"annual_fuel_litres":     450.0,
			"num_employees":          "45",
		},
	})
	require.Error(t, err)
	assert.Nil(t, output)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeVariantMismatch, stdErr.Code)
	assert.Equal(t, []string{"annual_electricity_kwh", "annual_fuel_litres"}, stdErr.Metadata["offendingFields"])
}

func TestExecute_BlankForeignFieldIgnored(t *testing.T) {
	h := newTestHandler(t)

	input := createGreenInput()
	input.IntakeData["business_info"] = ""

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, output.Valid)
}

func TestExecute_InvalidCategory(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		UserID:     "user-5",
		Category:   "platinum",
		IntakeData: map[string]interface{}{},
	})
	require.Error(t, err)
	assert.Nil(t, output)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidCategory, stdErr.Code)
}

func TestExecute_SchemaViolation(t *testing.T) {
	h := newTestHandler(t)

	input := createGreenInput()
	input.IntakeData["efficiency_equipment"] = true

	output, err := h.Execute(context.Background(), input)
	require.Error(t, err)
	assert.Nil(t, output)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeIntakeValidationFailed, stdErr.Code)
}

func TestExecute_EmptyIntakeIsValid(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		UserID:   "user-6",
		Category: "green",
	})
	require.NoError(t, err)

	assert.True(t, output.Valid)
	// Every form field comes back zero-filled for downstream scoring.
	assert.Equal(t, 0.0, output.IntakeData["annual_electricity_kwh"])
	assert.Equal(t, "", output.IntakeData["industry_code"])
}

func TestExecute_UnknownFieldsDropped(t *testing.T) {
	h := newTestHandler(t)

	input := createGreenInput()
	input.IntakeData["utm_source"] = "newsletter"

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	_, present := output.IntakeData["utm_source"]
	assert.False(t, present)
}
