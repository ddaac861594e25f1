// internal/workers/verdict/generate-verdict/prompts.go
package generateverdict

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Expert personas per assessment track. The model is asked for a fixed
// section structure so the rendered verdict stays consistent across users.
var systemPrompts = map[string]string{
	"green": `You are an ESG expert for GreenBridge, helping Indian SMEs with Green Loans.
Based on the user's environmental assessment data, provide a structured, detailed verdict.

Your response MUST follow this structure:
1. **Assessment Summary**: A clear statement on their Green Loan eligibility based on the score.
2. **Key Strengths**: Identify 2 specific areas where they are performing well.
3. **improvement Areas**: Identify 2 specific gaps that need attention.
4. **Actionable Roadmap**: Provide 3 concrete steps to improve their score.
5. **Funding Opportunities**: Mention 1-2 relevant Indian schemes (e.g., SIDBI, IREDA).

Keep the tone professional and encouraging. Total length should be around 200 words.
DO NOT STOP MID-SENTENCE. COMPLETE YOUR ANALYSIS.`,

	"sll": `You are an ESG expert for GreenBridge, helping Indian SMEs with Sustainability-Linked Loans (SLL).
Based on the user's social and governance data, provide a structured, detailed verdict.

Your response MUST follow this structure:
1. **Assessment Summary**: Evaluate their trajectory for SLL eligibility.
2. **Social & Governance Highlights**: Comment on their safety/diversity/policy data.
3. **Gaps & Risks**: Identify missing policies or high-risk areas.
4. **KPI Recommendations**: Suggest 2-3 specific KPIs for loan linkage.
5. **Next Steps**: Recommend certifications (ISO/SA8000) or policy drafts.

Keep the tone professional and expert. Total length should be around 200 words.
DO NOT STOP MID-SENTENCE. COMPLETE YOUR ANALYSIS.`,

	"other": `You are an ESG expert for GreenBridge, guiding Indian SMEs on ESG Readiness.
Based on their initial input, provide a structured, encouraging verdict.

Your response MUST follow this structure:
1. **Welcome & Context**: Welcome them to the sustainability journey.
2. **Quick Wins**: Identify 2 low-hanging fruits based on their sector/interest.
3. **Business Case**: Briefly explain why ESG matters for them (funding/market access).
4. **Relevant Schemes**: Suggest 1 government scheme or certification to explore.
5. **Next Steps**: Encourage them to take the full Green Loan or SLL assessment.

Keep the tone motivating and simple. Total length should be around 150 words.
DO NOT STOP MID-SENTENCE. COMPLETE YOUR ANALYSIS.`,
}

// systemPrompt falls back to the readiness persona for unknown categories so
// the worker always has something sensible to send.
func systemPrompt(category string) string {
	if prompt, ok := systemPrompts[category]; ok {
		return prompt
	}
	return systemPrompts["other"]
}

// buildUserMessage renders the assessment context block appended to the
// system prompt. Empty submitted values are omitted.
func buildUserMessage(input *Input) string {
	var b strings.Builder

	b.WriteString("\nUSER ASSESSMENT RESULTS:\n")
	fmt.Fprintf(&b, "Category: %s\n", strings.ToUpper(input.Category))
	fmt.Fprintf(&b, "Score: %d/100\n", input.Score)
	fmt.Fprintf(&b, "Rating: %s\n", input.Rating)
	fmt.Fprintf(&b, "Estimated Carbon Footprint: %s kgCO2e/year\n", formatGrouped(input.CarbonEstimate))

	b.WriteString("\nUSER'S SUBMITTED DATA:\n")
	b.WriteString(dataSummary(input.IntakeData))

	b.WriteString("\nSYSTEM-GENERATED SUGGESTIONS:\n")
	if len(input.Suggestions) == 0 {
		b.WriteString("None")
	} else {
		lines := make([]string, len(input.Suggestions))
		for i, s := range input.Suggestions {
			lines[i] = "- " + s.Text
		}
		b.WriteString(strings.Join(lines, "\n"))
	}

	b.WriteString("\n\nBased on the above, provide your expert verdict and personalized recommendations.\n")
	return b.String()
}

func dataSummary(data map[string]interface{}) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		v := data[k]
		if isEmptyValue(v) {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %v", k, v))
	}
	return strings.Join(lines, "\n") + "\n"
}

func isEmptyValue(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case float64:
		return val == 0
	case int:
		return val == 0
	case bool:
		return !val
	default:
		return false
	}
}

// formatGrouped renders a float as a whole number with thousands separators,
// e.g. 1091.76 -> "1,092".
func formatGrouped(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := fmt.Sprintf("%d", n)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	return sign + strings.Join(parts, ",")
}
