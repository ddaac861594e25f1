// internal/workers/assessment/estimate-carbon/handler.go
package estimatecarbon

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"greenbridge-workers/internal/common/fields"
	"greenbridge-workers/internal/common/logger"
	"greenbridge-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "estimate-carbon"
)

// Emission factors, approximate for India.
const (
	factorElectricity = 0.82     // kgCO2/kWh, grid average
	factorFuel        = 2.68     // kgCO2/L, diesel proxy
	factorWater       = 0.000376 // kgCO2/L, pumping & treatment
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
		h.failJob(client, job, "CARBON_ESTIMATE_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	data := input.IntakeData
	if data == nil {
		data = make(map[string]interface{})
	}

	elec := fields.Float(data, "annual_electricity_kwh")
	fuel := fields.Float(data, "annual_fuel_litres")
	water := fields.Float(data, "water_consumption_litres")

	carbonElec := elec * factorElectricity
	carbonFuel := fuel * factorFuel
	carbonWater := water * factorWater

	total := carbonElec + carbonFuel + carbonWater

	// Parts and total are rounded independently; the displayed breakdown may
	// drift from the total by a rounding cent.
	estimate := models.CarbonEstimate{
		EstimatedCarbon: round2(total),
		Breakdown: map[string]float64{
			"electricity": round2(carbonElec),
			"fuel":        round2(carbonFuel),
			"water":       round2(carbonWater),
		},
		Unit: "kgCO2e/year",
	}

	h.logger.Info("carbon estimate calculated", map[string]interface{}{
		"userId":          input.UserID,
		"estimatedCarbon": estimate.EstimatedCarbon,
		"breakdown":       estimate.Breakdown,
	})

	return &Output{CarbonEstimate: estimate}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
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
