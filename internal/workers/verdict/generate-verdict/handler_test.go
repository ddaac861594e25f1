// internal/workers/verdict/generate-verdict/handler_test.go
package generateverdict

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"greenbridge-workers/internal/common/config"
	"greenbridge-workers/internal/common/logger"
	"greenbridge-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, gemini config.GeminiConfig) *Handler {
	if gemini.Timeout == 0 {
		gemini.Timeout = 5000
	}
	if gemini.Model == "" {
		gemini.Model = "gemini-2.5-flash"
	}
	if gemini.MaxTokens == 0 {
		gemini.MaxTokens = 1000
	}
	if gemini.Temperature == 0 {
		gemini.Temperature = 0.7
	}
	if gemini.TopP == 0 {
		gemini.TopP = 0.9
	}
	return NewHandler(&Config{Gemini: gemini}, logger.NewTestLogger(t))
}

func createTestInput() *Input {
	return &Input{
		UserID:         "user-1",
		Category:       "green",
		Score:          72,
		Rating:         "B",
		CarbonEstimate: 1091.76,
		IntakeData: map[string]interface{}{
			"annual_electricity_kwh": 1000.0,
			"industry_code":          "35101",
			"efficiency_equipment":   "",
		},
		Suggestions: []models.Suggestion{
			{Icon: "☀️", Text: "Consider rooftop solar to cut grid dependence."},
		},
	}
}

func geminiReply(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{{"text": text}},
				},
			},
		},
	}
}

func TestExecute_SuccessfulVerdict(t *testing.T) {
	var gotPath string
	var gotKey string
	var gotReq generateContentRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(geminiReply("**Assessment Summary**: Strong Green Loan candidate."))
	}))
	defer server.Close()

	h := newTestHandler(t, config.GeminiConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
	})

	output := h.Execute(context.Background(), createTestInput())

	assert.True(t, output.AIGenerated)
	assert.Equal(t, "**Assessment Summary**: Strong Green Loan candidate.", output.Verdict)

	assert.Equal(t, "/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	require.Len(t, gotReq.Contents, 1)
	require.Len(t, gotReq.Contents[0].Parts, 1)
	prompt := gotReq.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "helping Indian SMEs with Green Loans")
	assert.Contains(t, prompt, "Category: GREEN")
	assert.Contains(t, prompt, "Score: 72/100")
	assert.Contains(t, prompt, "Rating: B")
	assert.Contains(t, prompt, "Estimated Carbon Footprint: 1,092 kgCO2e/year")
	assert.Contains(t, prompt, "- annual_electricity_kwh: 1000")
	assert.Contains(t, prompt, "- Consider rooftop solar to cut grid dependence.")
	// Blank submitted values stay out of the prompt.
	assert.NotContains(t, prompt, "efficiency_equipment")

	assert.Equal(t, 0.7, gotReq.GenerationConfig.Temperature)
	assert.Equal(t, 1000, gotReq.GenerationConfig.MaxOutputTokens)
	assert.Equal(t, 0.9, gotReq.GenerationConfig.TopP)
}

func TestExecute_MissingAPIKey(t *testing.T) {
	h := newTestHandler(t, config.GeminiConfig{
		BaseURL: "http://localhost:1",
	})

	output := h.Execute(context.Background(), createTestInput())

	assert.False(t, output.AIGenerated)
	assert.Equal(t, "⚠️ AI verdict unavailable. Please configure GEMINI_API_KEY.", output.Verdict)
}

func TestExecute_ServiceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	h := newTestHandler(t, config.GeminiConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
	})

	output := h.Execute(context.Background(), createTestInput())

	assert.False(t, output.AIGenerated)
	assert.Equal(t, "⚠️ AI service temporarily unavailable (Error 429)", output.Verdict)
}

func TestExecute_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer server.Close()

	h := newTestHandler(t, config.GeminiConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
	})

	output := h.Execute(context.Background(), createTestInput())

	assert.False(t, output.AIGenerated)
	assert.Equal(t, "Unable to generate verdict.", output.Verdict)
}

func TestExecute_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(geminiReply("too late"))
	}))
	defer server.Close()

	h := newTestHandler(t, config.GeminiConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 50,
	})

	output := h.Execute(context.Background(), createTestInput())

	assert.False(t, output.AIGenerated)
	assert.Equal(t, "⚠️ AI service timed out. Please try again.", output.Verdict)
}

func TestExecute_UnknownCategoryUsesReadinessPersona(t *testing.T) {
	var prompt string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompt = req.Contents[0].Parts[0].Text
		_ = json.NewEncoder(w).Encode(geminiReply("Welcome aboard."))
	}))
	defer server.Close()

	h := newTestHandler(t, config.GeminiConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
	})

	input := createTestInput()
	input.Category = "unmapped"

	output := h.Execute(context.Background(), input)

	assert.True(t, output.AIGenerated)
	assert.Contains(t, prompt, "guiding Indian SMEs on ESG Readiness")
}

func TestExecute_NoSuggestionsRendersNone(t *testing.T) {
	var prompt string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompt = req.Contents[0].Parts[0].Text
		_ = json.NewEncoder(w).Encode(geminiReply("ok"))
	}))
	defer server.Close()

	h := newTestHandler(t, config.GeminiConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
	})

	input := createTestInput()
	input.Suggestions = nil

	_ = h.Execute(context.Background(), input)

	assert.Contains(t, prompt, "SYSTEM-GENERATED SUGGESTIONS:\nNone")
}
