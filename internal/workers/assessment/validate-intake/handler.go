// internal/workers/assessment/validate-intake/handler.go
package validateintake

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"greenbridge-workers/internal/common/errors"
	"greenbridge-workers/internal/common/logger"
	"greenbridge-workers/internal/models"
	"greenbridge-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const (
	TaskType = "validate-intake"
)

type Handler struct {
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		logger:       scoped,
		errorHandler: errors.NewErrorHandler(scoped),
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
		// Structured errors carry the offending fields as job variables.
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	category := models.Category(input.Category)
	if !category.Valid() {
		return nil, errors.NewInvalidCategoryError(input.Category)
	}

	data := input.IntakeData
	if data == nil {
		data = make(map[string]interface{})
	}

	// Intake shaped for a different track never coerces silently; the
	// submission fails fast with the offending field names.
	if offending := h.foreignFields(input.Category, data); len(offending) > 0 {
		h.logger.Warn("intake variant mismatch", map[string]interface{}{
			"userId":          input.UserID,
			"category":        input.Category,
			"offendingFields": offending,
		})
		return nil, errors.NewVariantMismatchError(input.Category, offending)
	}

	if err := h.validateSchema(input.Category, data); err != nil {
		return nil, errors.NewIntakeValidationFailedError(err.Error())
	}

	normalized, err := h.normalize(category, data)
	if err != nil {
		return nil, errors.NewIntakeValidationFailedError(err.Error())
	}

	h.logger.Info("intake validated", map[string]interface{}{
		"userId":   input.UserID,
		"category": input.Category,
		"fields":   len(normalized),
	})

	return &Output{
		Valid:      true,
		Category:   input.Category,
		IntakeData: normalized,
	}, nil
}

// foreignFields returns the submitted fields that belong to another
// category's intake form, sorted for stable error output.
func (h *Handler) foreignFields(category string, data map[string]interface{}) []string {
	var offending []string
	for _, field := range registry.ForeignIntakeFields(category) {
		value, present := data[field]
		if !present {
			continue
		}
		// Blank strings are form artifacts, not evidence of the wrong
		// variant.
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		offending = append(offending, field)
	}
	sort.Strings(offending)
	return offending
}

func (h *Handler) validateSchema(category string, data map[string]interface{}) error {
	schemaMap, ok := registry.IntakeSchema(category)
	if !ok {
		return fmt.Errorf("no intake schema for category %q", category)
	}

	schemaLoader := gojsonschema.NewGoLoader(schemaMap)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("intake validation failed: %v", errs)
	}

	return nil
}

// normalize round-trips the submission through the typed variant: numeric
// strings become numbers, unknown fields drop, missing fields zero-fill.
func (h *Handler) normalize(category models.Category, data map[string]interface{}) (map[string]interface{}, error) {
	intake, err := models.ParseIntake(category, data)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(intake)
	if err != nil {
		return nil, err
	}

	var normalized map[string]interface{}
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, err
	}
	return normalized, nil
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
