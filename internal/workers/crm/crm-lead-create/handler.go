// internal/workers/crm/crm-lead-create/handler.go
package crmleadcreate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"greenbridge-workers/internal/common/errors"
	"greenbridge-workers/internal/common/logger"
	"greenbridge-workers/internal/common/zoho"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "crm-lead-create"

	crmProvider = "zoho"
)

// CRMService covers the Zoho calls this worker makes, so tests can stub
// the CRM.
type CRMService interface {
	CreateLead(ctx context.Context, lead *zoho.Lead) (string, error)
	SearchLeads(ctx context.Context, email string) ([]zoho.Lead, error)
	UpdateLead(ctx context.Context, leadID string, lead *zoho.Lead) error
}

type Handler struct {
	config       *Config
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
	crm          CRMService
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		logger:       scoped,
		errorHandler: errors.NewErrorHandler(scoped),
		crm:          zoho.NewCRMClient(config.APIKey, config.OAuthToken),
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
	if !h.config.Enabled {
		h.logger.Info("worker disabled by configuration", nil)
		return &Output{
			Success: false,
			Message: "CRM lead creation disabled",
		}, nil
	}

	if input.Email == "" {
		return nil, errors.NewBusinessRuleError("email is required", "lead creation needs a contact email")
	}

	lead := h.buildLead(input)

	// Repeat assessments update the existing lead instead of duplicating.
	existing, err := h.crm.SearchLeads(ctx, input.Email)
	if err != nil {
		h.logger.Warn("lead search failed, creating fresh lead", map[string]interface{}{
			"email": input.Email,
			"error": err,
		})
	}

	now := time.Now().UTC()

	if len(existing) > 0 {
		leadID := existing[0].ID
		if err := h.crm.UpdateLead(ctx, leadID, lead); err != nil {
			return nil, errors.NewCRMCreateFailedError(err)
		}

		h.logger.Info("lead updated", map[string]interface{}{
			"leadId": leadID,
			"email":  input.Email,
		})

		return &Output{
			Success:     true,
			Message:     "Lead updated",
			LeadID:      leadID,
			Created:     false,
			CRMProvider: crmProvider,
			CreatedAt:   now,
		}, nil
	}

	leadID, err := h.crm.CreateLead(ctx, lead)
	if err != nil {
		return nil, errors.NewCRMCreateFailedError(err)
	}

	h.logger.Info("lead created", map[string]interface{}{
		"leadId": leadID,
		"email":  input.Email,
	})

	return &Output{
		Success:     true,
		Message:     "Lead created",
		LeadID:      leadID,
		Created:     true,
		CRMProvider: crmProvider,
		CreatedAt:   now,
	}, nil
}

func (h *Handler) buildLead(input *Input) *zoho.Lead {
	lastName := input.LastName
	if lastName == "" {
		// Zoho requires Last_Name; fall back to the company or a stub.
		lastName = input.Company
		if lastName == "" {
			lastName = "Unknown"
		}
	}

	company := input.Company
	if company == "" {
		company = strings.TrimSpace(input.FirstName + " " + lastName)
	}

	return &zoho.Lead{
		Email:       input.Email,
		FirstName:   input.FirstName,
		LastName:    lastName,
		Company:     company,
		Phone:       input.Phone,
		Source:      h.config.LeadSource,
		Description: h.buildDescription(input),
	}
}

func (h *Handler) buildDescription(input *Input) string {
	if input.Category == "" {
		return "Registered via GreenBridge ESG assessment."
	}
	return fmt.Sprintf(
		"GreenBridge ESG assessment: category %s, score %d/100, rating %s.",
		strings.ToUpper(input.Category), input.Score, input.Rating,
	)
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
