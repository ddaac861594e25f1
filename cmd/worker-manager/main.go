// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"greenbridge-workers/internal/common/camunda"
	"greenbridge-workers/internal/common/config"
	"greenbridge-workers/internal/common/database"
	"greenbridge-workers/internal/common/logger"
	"greenbridge-workers/internal/common/observability"
	qaqueries "greenbridge-workers/internal/workers/data-access/query-assessment/queries"
	"greenbridge-workers/pkg/registry"

	// Onboarding (1)
	cb "greenbridge-workers/internal/workers/onboarding/classify-business"

	// Assessment pipeline (4)
	ec "greenbridge-workers/internal/workers/assessment/estimate-carbon"
	gs "greenbridge-workers/internal/workers/assessment/generate-scorecard"
	pa "greenbridge-workers/internal/workers/assessment/persist-assessment"
	vi "greenbridge-workers/internal/workers/assessment/validate-intake"

	// Verdict (1)
	gv "greenbridge-workers/internal/workers/verdict/generate-verdict"

	// Data Access (1)
	qa "greenbridge-workers/internal/workers/data-access/query-assessment"

	// Communication & CRM (2)
	sn "greenbridge-workers/internal/workers/communication/send-notification"
	clc "greenbridge-workers/internal/workers/crm/crm-lead-create"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Activity registry sanity check ---
	taskTypes := []string{
		cb.TaskType, vi.TaskType, ec.TaskType, gs.TaskType, pa.TaskType,
		gv.TaskType, qa.TaskType, sn.TaskType, clc.TaskType,
	}
	if reg, err := registry.LoadRegistry(cfg.Registry.Path); err != nil {
		zapLog.Warn("activity registry not loaded", zap.Error(err))
	} else {
		for _, tt := range taskTypes {
			if _, ok := registry.FindActivity(reg, tt); !ok {
				zapLog.Warn("task type missing from activity registry", zap.String("taskType", tt))
			}
		}
		zapLog.Info("Activity registry loaded", zap.Int("activities", len(reg.Activities)))
	}

	// --- START: Register ALL 9 Workers ---
	var fleet []*camunda.Worker

	// --- 1. Onboarding ---
	if cfg.Workers[cb.TaskType].Enabled {
		handler := cb.NewHandler(
			&cb.Config{
				Timeout: time.Duration(cfg.Workers[cb.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		fleet = append(fleet, startWorker(camundaClient, cb.TaskType, cfg.Workers[cb.TaskType], handler.Handle, obs, zapLog))
	}

	// --- 2. Assessment Pipeline ---
	if cfg.Workers[vi.TaskType].Enabled {
		handler := vi.NewHandler(
			&vi.Config{
				Timeout: time.Duration(cfg.Workers[vi.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		fleet = append(fleet, startWorker(camundaClient, vi.TaskType, cfg.Workers[vi.TaskType], handler.Handle, obs, zapLog))
	}

	if cfg.Workers[ec.TaskType].Enabled {
		handler := ec.NewHandler(
			&ec.Config{
				Timeout: time.Duration(cfg.Workers[ec.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		fleet = append(fleet, startWorker(camundaClient, ec.TaskType, cfg.Workers[ec.TaskType], handler.Handle, obs, zapLog))
	}

	if cfg.Workers[gs.TaskType].Enabled {
		handler := gs.NewHandler(
			&gs.Config{
				Timeout: time.Duration(cfg.Workers[gs.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		fleet = append(fleet, startWorker(camundaClient, gs.TaskType, cfg.Workers[gs.TaskType], handler.Handle, obs, zapLog))
	}

	if cfg.Workers[pa.TaskType].Enabled {
		handler := pa.NewHandler(pa.LoadConfig(), log, pg, redis, esClient)
		fleet = append(fleet, startWorker(camundaClient, pa.TaskType, cfg.Workers[pa.TaskType], handler.Handle, obs, zapLog))
	}

	// --- 3. Verdict ---
	if cfg.Workers[gv.TaskType].Enabled {
		handler := gv.NewHandler(gv.LoadConfig(cfg), log)
		fleet = append(fleet, startWorker(camundaClient, gv.TaskType, cfg.Workers[gv.TaskType], handler.Handle, obs, zapLog))
	}

	// --- 4. Data Access ---
	if cfg.Workers[qa.TaskType].Enabled {
		handler := qa.NewHandler(
			&qa.Config{
				Timeout: time.Duration(cfg.Workers[qa.TaskType].Timeout) * time.Millisecond,
			},
			&qaqueries.Store{DB: pg.DB, Redis: redis},
			log,
		)
		fleet = append(fleet, startWorker(camundaClient, qa.TaskType, cfg.Workers[qa.TaskType], handler.Handle, obs, zapLog))
	}

	// --- 5. Communication & CRM ---
	if cfg.Workers[sn.TaskType].Enabled {
		handler, err := sn.NewHandler(
			&sn.Config{
				EmailEnabled: cfg.Integrations.AWS.SES.Enabled,
				SMSEnabled:   cfg.Integrations.AWS.SNS.Enabled,
				FromEmail:    cfg.Integrations.AWS.SES.FromEmail,
				AWSRegion:    cfg.Integrations.AWS.Region,
				Timeout:      time.Duration(cfg.Workers[sn.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		if err != nil {
			zapLog.Fatal("failed to create send-notification handler", zap.Error(err))
		}
		fleet = append(fleet, startWorker(camundaClient, sn.TaskType, cfg.Workers[sn.TaskType], handler.Handle, obs, zapLog))
	}

	if cfg.Workers[clc.TaskType].Enabled {
		handler := clc.NewHandler(
			&clc.Config{
				Enabled:    true,
				APIKey:     cfg.Integrations.Zoho.APIKey,
				OAuthToken: cfg.Integrations.Zoho.AuthToken,
				LeadSource: "GreenBridge Assessment",
				Timeout:    time.Duration(cfg.Workers[clc.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		fleet = append(fleet, startWorker(camundaClient, clc.TaskType, cfg.Workers[clc.TaskType], handler.Handle, obs, zapLog))
	}

	zapLog.Info("All 9 workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			status := "ready"
			code := http.StatusOK
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				status = "broker unreachable"
				code = http.StatusServiceUnavailable
			} else if err := pg.Ping(r.Context()); err != nil {
				status = "database unreachable"
				code = http.StatusServiceUnavailable
			}

			w.WriteHeader(code)
			json.NewEncoder(w).Encode(map[string]string{
				"status": status,
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range fleet {
		w.Close()
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client *camunda.Client, taskType string, wcfg config.WorkerConfig, handlerFunc camunda.JobHandlerFunc, obs *observability.Observability, log *zap.Logger) *camunda.Worker {
	return camunda.NewWorker(client.GetClient(), taskType, camunda.WorkerOptions{
		MaxJobsActive: wcfg.MaxJobsActive,
		Timeout:       time.Duration(wcfg.Timeout) * time.Millisecond,
		Observer:      obs,
	}, handlerFunc, log)
}
