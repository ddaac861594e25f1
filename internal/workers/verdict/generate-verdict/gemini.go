// internal/workers/verdict/generate-verdict/gemini.go
package generateverdict

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"greenbridge-workers/internal/common/config"
	httpclient "greenbridge-workers/internal/common/http"
	"greenbridge-workers/internal/common/logger"
)

// Static verdicts served when the model cannot be reached. The assessment
// flow must finish even with the AI layer down, so these replace the verdict
// instead of failing the job.
const (
	fallbackNoAPIKey    = "⚠️ AI verdict unavailable. Please configure GEMINI_API_KEY."
	fallbackTimeout     = "⚠️ AI service timed out. Please try again."
	fallbackGeneric     = "⚠️ An error occurred while generating the verdict."
	fallbackEmptyReply  = "Unable to generate verdict."
	fallbackUnavailable = "⚠️ AI service temporarily unavailable (Error %d)"
)

type geminiClient struct {
	cfg    config.GeminiConfig
	client *httpclient.Client
	logger logger.Logger
}

func newGeminiClient(cfg config.GeminiConfig, log logger.Logger) *geminiClient {
	return &geminiClient{
		cfg:    cfg,
		client: httpclient.NewClient(time.Duration(cfg.Timeout) * time.Millisecond),
		logger: log,
	}
}

type generateContentRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate returns the verdict text and whether it came from the model.
// It never returns an error; every failure mode maps to a fallback verdict.
func (c *geminiClient) Generate(ctx context.Context, input *Input) (string, bool) {
	if c.cfg.APIKey == "" {
		c.logger.Warn("gemini api key not configured", nil)
		return fallbackNoAPIKey, false
	}

	prompt := systemPrompt(input.Category) + "\n\n" + buildUserMessage(input)

	payload := generateContentRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: prompt}},
			},
		},
		GenerationConfig: generationConfig{
			Temperature:     c.cfg.Temperature,
			MaxOutputTokens: c.cfg.MaxTokens,
			TopP:            c.cfg.TopP,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("failed to marshal gemini payload", map[string]interface{}{
			"error": err,
		})
		return fallbackGeneric, false
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fallbackGeneric, false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.DoWithContext(ctx, req)
	if err != nil {
		if isTimeout(ctx, err) {
			c.logger.Warn("gemini request timed out", map[string]interface{}{
				"timeoutMs": c.cfg.Timeout,
			})
			return fallbackTimeout, false
		}
		c.logger.Error("gemini request failed", map[string]interface{}{
			"error": err,
		})
		return fallbackGeneric, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Error("gemini api error", map[string]interface{}{
			"status": resp.StatusCode,
			"body":   string(errBody),
		})
		return fmt.Sprintf(fallbackUnavailable, resp.StatusCode), false
	}

	var result generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Error("failed to decode gemini response", map[string]interface{}{
			"error": err,
		})
		return fallbackGeneric, false
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return fallbackEmptyReply, false
	}

	text := result.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return fallbackEmptyReply, false
	}
	return text, true
}

func isTimeout(ctx context.Context, err error) bool {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}
