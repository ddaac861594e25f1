// internal/workers/assessment/persist-assessment/handler.go
package persistassessment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"greenbridge-workers/internal/common/database"
	"greenbridge-workers/internal/common/errors"
	"greenbridge-workers/internal/common/logger"
	"greenbridge-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "persist-assessment"

	assessmentsIndex = "assessments"
)

const upsertProfileQuery = `
	INSERT INTO user_profiles (
		id, user_id, category, initial_data, intake_data,
		score, rating, carbon_estimate, verdict, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (user_id) DO UPDATE SET
		category = EXCLUDED.category,
		initial_data = EXCLUDED.initial_data,
		intake_data = EXCLUDED.intake_data,
		score = EXCLUDED.score,
		rating = EXCLUDED.rating,
		carbon_estimate = EXCLUDED.carbon_estimate,
		verdict = EXCLUDED.verdict,
		updated_at = EXCLUDED.updated_at`

// Handler stores the latest assessment per user: the Postgres row is the
// source of truth, Redis caches the latest result, Elasticsearch gets a
// copy for search. Cache and index writes are best effort.
type Handler struct {
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
	postgres     *database.PostgresClient
	redis        *database.RedisClient
	es           *database.ElasticsearchClient
	config       *Config
}

func NewHandler(config *Config, log logger.Logger, pg *database.PostgresClient, rdb *database.RedisClient, es *database.ElasticsearchClient) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		logger:       scoped,
		errorHandler: errors.NewErrorHandler(scoped),
		postgres:     pg,
		redis:        rdb,
		es:           es,
		config:       config,
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

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.UserID == "" {
		return nil, errors.NewBusinessRuleError("userId is required", "persist called without a user id")
	}
	if !models.Category(input.Category).Valid() {
		return nil, errors.NewInvalidCategoryError(input.Category)
	}

	assessmentID := uuid.New().String()
	now := time.Now().UTC()

	initialJSON, err := json.Marshal(input.InitialData)
	if err != nil {
		return nil, errors.NewAssessmentUpsertFailedError(err)
	}
	intakeJSON, err := json.Marshal(input.IntakeData)
	if err != nil {
		return nil, errors.NewAssessmentUpsertFailedError(err)
	}

	_, err = h.postgres.Exec(ctx, upsertProfileQuery,
		assessmentID,
		input.UserID,
		input.Category,
		initialJSON,
		intakeJSON,
		input.Score,
		input.Rating,
		input.CarbonEstimate,
		input.Verdict,
		now,
	)
	if err != nil {
		return nil, errors.NewAssessmentUpsertFailedError(err)
	}

	h.logger.Info("assessment persisted", map[string]interface{}{
		"userId":       input.UserID,
		"assessmentId": assessmentID,
		"category":     input.Category,
		"score":        input.Score,
	})

	h.cacheLatest(ctx, input, assessmentID, now)
	h.indexForSearch(ctx, input, assessmentID, now)

	return &Output{
		AssessmentID: assessmentID,
		Persisted:    true,
		UpdatedAt:    now,
	}, nil
}

// cacheLatest refreshes the Redis copy of the user's latest result. A cache
// failure only costs the query path a database round trip, so it is logged
// and swallowed.
func (h *Handler) cacheLatest(ctx context.Context, input *Input, assessmentID string, updatedAt time.Time) {
	if h.redis == nil {
		return
	}

	profile := models.UserProfile{
		ID:             assessmentID,
		UserID:         input.UserID,
		Category:       models.Category(input.Category),
		InitialData:    input.InitialData,
		IntakeData:     input.IntakeData,
		Score:          input.Score,
		Rating:         input.Rating,
		CarbonEstimate: input.CarbonEstimate,
		UpdatedAt:      updatedAt,
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		h.logger.Warn("failed to marshal cache payload", map[string]interface{}{
			"userId": input.UserID,
			"error":  err,
		})
		return
	}

	key := models.LatestAssessmentCacheKey(input.UserID)
	if err := h.redis.Set(ctx, key, payload, h.config.CacheTTL); err != nil {
		h.logger.Warn("failed to cache latest assessment", map[string]interface{}{
			"userId": input.UserID,
			"key":    key,
			"error":  err,
		})
	}
}

// indexForSearch mirrors the assessment into Elasticsearch. Search is an
// offline concern, so indexing failures never fail the job.
func (h *Handler) indexForSearch(ctx context.Context, input *Input, assessmentID string, updatedAt time.Time) {
	if h.es == nil {
		return
	}

	doc := map[string]interface{}{
		"assessmentId":   assessmentID,
		"userId":         input.UserID,
		"category":       input.Category,
		"score":          input.Score,
		"rating":         input.Rating,
		"carbonEstimate": input.CarbonEstimate,
		"updatedAt":      updatedAt,
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return
	}

	if err := h.es.Index(ctx, assessmentsIndex, input.UserID, bytes.NewReader(body)); err != nil {
		h.logger.Warn("failed to index assessment", map[string]interface{}{
			"userId": input.UserID,
			"index":  assessmentsIndex,
			"error":  err,
		})
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
