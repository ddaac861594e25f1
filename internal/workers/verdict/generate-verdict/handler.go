// internal/workers/verdict/generate-verdict/handler.go
package generateverdict

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"greenbridge-workers/internal/common/logger"
	"greenbridge-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-verdict"
)

// Handler composes the final assessment verdict. The model call is best
// effort: any upstream failure degrades to a canned verdict and the job
// still completes, so the assessment flow never blocks on the AI layer.
type Handler struct {
	logger logger.Logger
	gemini *geminiClient
	config *Config
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		logger: scoped,
		gemini: newGeminiClient(config.Gemini, scoped),
		config: config,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	timeout := time.Duration(h.config.Gemini.Timeout) * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	output := h.execute(ctx, &input)
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) *Output {
	verdict, aiGenerated := h.gemini.Generate(ctx, input)

	if !aiGenerated {
		metrics.VerdictFallbacks.Inc()
	}

	h.logger.Info("verdict composed", map[string]interface{}{
		"userId":      input.UserID,
		"category":    input.Category,
		"aiGenerated": aiGenerated,
		"length":      len(verdict),
	})

	return &Output{
		Verdict:     verdict,
		AIGenerated: aiGenerated,
	}
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) *Output {
	return h.execute(ctx, input)
}
