// internal/workers/assessment/generate-scorecard/handler.go
package generatescorecard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"greenbridge-workers/internal/common/logger"
	"greenbridge-workers/internal/common/metrics"
	"greenbridge-workers/internal/models"
	"greenbridge-workers/internal/workers/assessment/generate-scorecard/rubrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-scorecard"
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
		errorCode := "SCORECARD_FAILED"
		if !models.Category(input.Category).Valid() {
			errorCode = "INVALID_CATEGORY"
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	category := models.Category(input.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", input.Category)
	}

	data := input.IntakeData
	if data == nil {
		data = make(map[string]interface{})
	}

	intake, err := models.ParseIntake(category, data)
	if err != nil {
		return nil, err
	}

	rawScore, breakdown, suggestions, err := rubrics.Execute(category, intake)
	if err != nil {
		return nil, err
	}

	score := rawScore
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	rating := classifyRating(score)
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}

	scorecard := models.Scorecard{
		Score:       score,
		Rating:      rating,
		Breakdown:   breakdown,
		Suggestions: suggestions,
	}

	metrics.ScorecardsGenerated.WithLabelValues(string(category), rating).Inc()

	h.logger.Info("scorecard generated", map[string]interface{}{
		"userId":    input.UserID,
		"category":  category,
		"score":     score,
		"rating":    rating,
		"breakdown": breakdown,
	})

	return &Output{Scorecard: scorecard}, nil
}

func classifyRating(score int) string {
	switch {
	case score >= 80:
		return "A"
	case score >= 60:
		return "B"
	case score >= 40:
		return "C"
	default:
		return "D"
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
