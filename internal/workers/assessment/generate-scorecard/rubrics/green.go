// internal/workers/assessment/generate-scorecard/rubrics/green.go
package rubrics

import (
	"fmt"
	"strings"

	"greenbridge-workers/internal/models"
)

// NIC sections counted as inherently green: electricity, waste
// collection, remediation.
var greenSectorPrefixes = []string{"35", "38", "39"}

// Green scores the environmental rubric. Lower consumption scores higher
// on the usage criteria; renewables and equipment score on presence.
func Green(intake models.Intake) (int, map[string]int, []models.Suggestion, error) {
	in, ok := intake.(models.GreenIntake)
	if !ok {
		return 0, nil, nil, fmt.Errorf("green rubric needs a green intake, got %T", intake)
	}

	score := 0
	breakdown := make(map[string]int)
	var suggestions []models.Suggestion

	// Renewable energy share, 25 points max
	var renewableScore int
	switch {
	case in.RenewableEnergyPct > 50:
		renewableScore = 25
	case in.RenewableEnergyPct >= 25:
		renewableScore = 18
	case in.RenewableEnergyPct >= 10:
		renewableScore = 10
	case in.RenewableEnergyPct > 0:
		renewableScore = 5
	default:
		renewableScore = 0
		suggestions = append(suggestions, models.Suggestion{
			Text: "Install rooftop solar to start your renewable energy journey.",
			Icon: "☀️",
		})
	}
	breakdown["Renewable Energy"] = renewableScore
	score += renewableScore

	// Energy intensity, 15 points max
	var energyScore int
	switch {
	case in.AnnualElectricityKWh < 10000:
		energyScore = 15
	case in.AnnualElectricityKWh < 50000:
		energyScore = 10
	case in.AnnualElectricityKWh < 100000:
		energyScore = 5
	default:
		energyScore = 0
		suggestions = append(suggestions, models.Suggestion{
			Text: "Consider an energy audit to identify reduction opportunities.",
			Icon: "⚡",
		})
	}
	breakdown["Energy Efficiency"] = energyScore
	score += energyScore

	// Fuel dependency, 15 points max
	var fuelScore int
	switch {
	case in.AnnualFuelLitres < 1000:
		fuelScore = 15
	case in.AnnualFuelLitres < 5000:
		fuelScore = 10
	case in.AnnualFuelLitres < 10000:
		fuelScore = 5
	default:
		fuelScore = 0
		suggestions = append(suggestions, models.Suggestion{
			Text: "Explore EV fleet transition or fuel-efficient logistics.",
			Icon: "🚗",
		})
	}
	breakdown["Fuel Efficiency"] = fuelScore
	score += fuelScore

	// Water efficiency, 10 points max
	var waterScore int
	switch {
	case in.WaterConsumptionLitres < 50000:
		waterScore = 10
	case in.WaterConsumptionLitres < 100000:
		waterScore = 7
	case in.WaterConsumptionLitres < 500000:
		waterScore = 3
	default:
		waterScore = 0
		suggestions = append(suggestions, models.Suggestion{
			Text: "Implement rainwater harvesting and water recycling.",
			Icon: "💧",
		})
	}
	breakdown["Water Management"] = waterScore
	score += waterScore

	// Waste management, 15 points max
	var wasteScore int
	switch {
	case in.WasteGeneratedKgMonth < 100:
		wasteScore = 15
	case in.WasteGeneratedKgMonth < 500:
		wasteScore = 10
	case in.WasteGeneratedKgMonth < 1000:
		wasteScore = 5
	default:
		wasteScore = 0
		suggestions = append(suggestions, models.Suggestion{
			Text: "Implement waste segregation and partner with recyclers.",
			Icon: "♻️",
		})
	}
	breakdown["Waste Reduction"] = wasteScore
	score += wasteScore

	// Green technology, 15 points max
	var techScore int
	if len(in.EfficiencyEquipment) > 5 {
		techScore = 15
	} else {
		techScore = 0
		suggestions = append(suggestions, models.Suggestion{
			Text: "Invest in BEE-rated equipment and LED lighting.",
			Icon: "💡",
		})
	}
	breakdown["Green Technology"] = techScore
	score += techScore

	// Industry sector bonus, 5 points max
	sectorScore := 0
	for _, prefix := range greenSectorPrefixes {
		if in.IndustryCode != "" && strings.HasPrefix(in.IndustryCode, prefix) {
			sectorScore = 5
			break
		}
	}
	breakdown["Sector Bonus"] = sectorScore
	score += sectorScore

	return score, breakdown, suggestions, nil
}
