// pkg/registry/intake.go
package registry

// Per-category intake form schemas. Numeric fields accept strings because
// the web forms post everything as text; the workers normalize downstream.

var greenIntakeSchema = map[string]interface{}{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type":    "object",
	"properties": map[string]interface{}{
		"annual_electricity_kwh":   map[string]interface{}{"type": []interface{}{"number", "string"}},
		"annual_fuel_litres":       map[string]interface{}{"type": []interface{}{"number", "string"}},
		"water_consumption_litres": map[string]interface{}{"type": []interface{}{"number", "string"}},
		"waste_generated_kg_month": map[string]interface{}{"type": []interface{}{"number", "string"}},
		"renewable_energy_pct":     map[string]interface{}{"type": []interface{}{"number", "string"}},
		"efficiency_equipment":     map[string]interface{}{"type": "string"},
		"industry_code":            map[string]interface{}{"type": "string"},
	},
	"additionalProperties": true,
}

var sllIntakeSchema = map[string]interface{}{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type":    "object",
	"properties": map[string]interface{}{
		"turnover_last_3_years":     map[string]interface{}{"type": "string"},
		"target_improvement_goals":  map[string]interface{}{"type": "string"},
		"num_employees":             map[string]interface{}{"type": []interface{}{"number", "string"}},
		"workforce_diversity_stats": map[string]interface{}{"type": "string"},
		"safety_incident_count":     map[string]interface{}{"type": []interface{}{"number", "string"}},
		"training_programs":         map[string]interface{}{"type": "string"},
		"governance_policies":       map[string]interface{}{"type": "string"},
	},
	"additionalProperties": true,
}

var otherIntakeSchema = map[string]interface{}{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type":    "object",
	"properties": map[string]interface{}{
		"business_info":  map[string]interface{}{"type": "string"},
		"existing_docs":  map[string]interface{}{"type": "string"},
		"interest_areas": map[string]interface{}{"type": "string"},
	},
	"additionalProperties": true,
}

var intakeSchemas = map[string]map[string]interface{}{
	"green": greenIntakeSchema,
	"sll":   sllIntakeSchema,
	"other": otherIntakeSchema,
}

// intakeFields lists the form fields belonging to each category's variant.
// No field is shared between variants, so presence of another category's
// field in a submission is a shape mismatch.
var intakeFields = map[string][]string{
	"green": {
		"annual_electricity_kwh",
		"annual_fuel_litres",
		"water_consumption_litres",
		"waste_generated_kg_month",
		"renewable_energy_pct",
		"efficiency_equipment",
		"industry_code",
	},
	"sll": {
		"turnover_last_3_years",
		"target_improvement_goals",
		"num_employees",
		"workforce_diversity_stats",
		"safety_incident_count",
		"training_programs",
		"governance_policies",
	},
	"other": {
		"business_info",
		"existing_docs",
		"interest_areas",
	},
}

// IntakeSchema returns the JSON schema for a category's intake form.
func IntakeSchema(category string) (map[string]interface{}, bool) {
	schema, ok := intakeSchemas[category]
	return schema, ok
}

// IntakeFields returns the form fields owned by a category.
func IntakeFields(category string) []string {
	return intakeFields[category]
}

// ForeignIntakeFields returns every field owned by a category other than
// the given one, used to detect intake data shaped for the wrong track.
func ForeignIntakeFields(category string) []string {
	var foreign []string
	for cat, fields := range intakeFields {
		if cat == category {
			continue
		}
		foreign = append(foreign, fields...)
	}
	return foreign
}
