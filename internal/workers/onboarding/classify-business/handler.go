// internal/workers/onboarding/classify-business/handler.go
package classifybusiness

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"greenbridge-workers/internal/common/logger"
	"greenbridge-workers/internal/common/metrics"
	"greenbridge-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "classify-business"
)

type Handler struct {
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "CLASSIFICATION_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	greenScore, sllScore := h.scoreAnswers(input.Answers)
	category := h.classify(greenScore, sllScore)

	metrics.AssessmentsClassified.WithLabelValues(string(category)).Inc()

	h.logger.Info("business classified", map[string]interface{}{
		"userId":     input.UserID,
		"category":   category,
		"greenScore": greenScore,
		"sllScore":   sllScore,
	})

	return &Output{
		Category:   category,
		GreenScore: greenScore,
		SLLScore:   sllScore,
	}, nil
}

// scoreAnswers accumulates the two routing scores. Energy consumption
// counts toward both tracks; metric tracking and emission measurement are
// the strongest green signals.
func (h *Handler) scoreAnswers(a models.OnboardingAnswers) (int, float64) {
	greenScore := 0
	sllScore := 0.0

	if a.IsManufacturing {
		greenScore += 1
	}
	if a.ConsumesSignificantEnergy {
		greenScore += 1
		sllScore += 0.5
	}
	if a.TracksEnvMetrics {
		greenScore += 2
	}
	if a.MeasuresEmissions {
		greenScore += 2
	}

	if a.HasSustainabilityGoals {
		sllScore += 2
	}
	if a.AppliedForESGLoan {
		sllScore += 1
	}
	if a.HasEmployeePolicies {
		sllScore += 1
	}

	return greenScore, sllScore
}

// classify applies routing precedence: green wins ties, then sll, then other.
func (h *Handler) classify(greenScore int, sllScore float64) models.Category {
	if greenScore >= 3 {
		return models.CategoryGreen
	}
	if sllScore >= 2 {
		return models.CategorySLL
	}
	return models.CategoryOther
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
