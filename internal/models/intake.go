package models

import (
	"fmt"

	"greenbridge-workers/internal/common/fields"
)

// Intake is the tagged union over the three per-category intake shapes.
// Scoring dispatches on the concrete variant, never on a raw string tag.
type Intake interface {
	IntakeCategory() Category
}

// GreenIntake is the environmental intake variant.
type GreenIntake struct {
	AnnualElectricityKWh   float64 `json:"annual_electricity_kwh"`
	AnnualFuelLitres       float64 `json:"annual_fuel_litres"`
	WaterConsumptionLitres float64 `json:"water_consumption_litres"`
	WasteGeneratedKgMonth  float64 `json:"waste_generated_kg_month"`
	RenewableEnergyPct     float64 `json:"renewable_energy_pct"`
	EfficiencyEquipment    string  `json:"efficiency_equipment,omitempty"`
	IndustryCode           string  `json:"industry_code,omitempty"`
}

func (GreenIntake) IntakeCategory() Category { return CategoryGreen }

// SLLIntake is the social & governance intake variant.
type SLLIntake struct {
	TurnoverLast3Years      string `json:"turnover_last_3_years"`
	TargetImprovementGoals  string `json:"target_improvement_goals"`
	NumEmployees            int    `json:"num_employees"`
	WorkforceDiversityStats string `json:"workforce_diversity_stats,omitempty"`
	SafetyIncidentCount     int    `json:"safety_incident_count"`
	TrainingPrograms        string `json:"training_programs,omitempty"`
	GovernancePolicies      string `json:"governance_policies,omitempty"`
}

func (SLLIntake) IntakeCategory() Category { return CategorySLL }

// OtherIntake is the ESG-readiness intake variant.
type OtherIntake struct {
	BusinessInfo  string `json:"business_info"`
	ExistingDocs  string `json:"existing_docs,omitempty"`
	InterestAreas string `json:"interest_areas,omitempty"`
}

func (OtherIntake) IntakeCategory() Category { return CategoryOther }

// ParseIntake builds the typed variant for a category from a flat form map
// using the tolerant extraction policy: missing or malformed numerics read
// as zero, missing text as empty. Shape enforcement is the intake
// validator's job, not this constructor's.
func ParseIntake(category Category, data map[string]interface{}) (Intake, error) {
	switch category {
	case CategoryGreen:
		return GreenIntake{
			AnnualElectricityKWh:   fields.Float(data, "annual_electricity_kwh"),
			AnnualFuelLitres:       fields.Float(data, "annual_fuel_litres"),
			WaterConsumptionLitres: fields.Float(data, "water_consumption_litres"),
			WasteGeneratedKgMonth:  fields.Float(data, "waste_generated_kg_month"),
			RenewableEnergyPct:     fields.Float(data, "renewable_energy_pct"),
			EfficiencyEquipment:    fields.Text(data, "efficiency_equipment"),
			IndustryCode:           fields.Text(data, "industry_code"),
		}, nil
	case CategorySLL:
		return SLLIntake{
			TurnoverLast3Years:      fields.Text(data, "turnover_last_3_years"),
			TargetImprovementGoals:  fields.Text(data, "target_improvement_goals"),
			NumEmployees:            fields.Int(data, "num_employees"),
			WorkforceDiversityStats: fields.Text(data, "workforce_diversity_stats"),
			SafetyIncidentCount:     fields.Int(data, "safety_incident_count"),
			TrainingPrograms:        fields.Text(data, "training_programs"),
			GovernancePolicies:      fields.Text(data, "governance_policies"),
		}, nil
	case CategoryOther:
		return OtherIntake{
			BusinessInfo:  fields.Text(data, "business_info"),
			ExistingDocs:  fields.Text(data, "existing_docs"),
			InterestAreas: fields.Text(data, "interest_areas"),
		}, nil
	default:
		return nil, fmt.Errorf("unknown category %q", category)
	}
}
