// Package server exposes the recommendation engine over HTTP with the same
// contract as the local path: normalized rows plus run parameters in, a
// recommendation batch out. Each run is recorded in the store and counted in
// the Prometheus collectors.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/adlumen/budget-engine/internal/config"
	"github.com/adlumen/budget-engine/internal/engine"
	"github.com/adlumen/budget-engine/internal/metrics"
	"github.com/adlumen/budget-engine/internal/store"
	"github.com/adlumen/budget-engine/pkg/normalize"
	"github.com/adlumen/budget-engine/pkg/output"
)

type handler struct {
	logger     *zap.Logger
	store      *store.MemoryStore
	collectors *metrics.Collectors
	maxBody    int64
	version    string
}

// NewHandler constructs the HTTP handler that serves the recommendation API.
// registry receives the run collectors and backs the /metrics endpoint.
func NewHandler(logger *zap.Logger, st *store.MemoryStore, registry *prometheus.Registry, maxBody int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if st == nil {
		st = store.NewMemoryStore()
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if maxBody <= 0 {
		maxBody = 4 * 1024 * 1024
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:     logger,
		store:      st,
		collectors: metrics.NewCollectors(registry),
		maxBody:    maxBody,
		version:    trimmedVersion,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/api/recommend", h.handleRecommend)
	r.Get("/api/runs", h.handleRuns)
	r.Get("/api/runs/{id}", h.handleRun)
	r.Get("/api/version", h.handleVersion)

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}

// recommendRequest is the remote-compute contract: raw rows plus run
// parameters, mirroring the engine's entry point. Rows arrive in raw string
// form and go through the same normalization as the local CLI path, so both
// paths stay behaviorally identical.
type recommendRequest struct {
	Rows                  []normalize.RawRow                 `json:"rows"`
	Focus                 string                             `json:"focus"`
	Timeframe             int                                `json:"timeframe"`
	CustomRange           *config.RangeConfig                `json:"customRange,omitempty"`
	SeasonalityMultiplier float64                            `json:"seasonalityMultiplier"`
	EnableGuardrails      bool                               `json:"enableGuardrails"`
	Guardrails            config.GuardrailSettings           `json:"guardrails"`
	CampaignSettings      map[string]config.CampaignSettings `json:"campaignSettings,omitempty"`
	ExperimentVariant     string                             `json:"experimentVariant"`
}

type recommendResponse struct {
	RunID           string                  `json:"runId"`
	Recommendations []engine.Recommendation `json:"recommendations"`
	CSV             string                  `json:"csv"`
	Warnings        []string                `json:"warnings,omitempty"`
	Rows            int                     `json:"rows"`
	Campaigns       int                     `json:"campaigns"`
	Duration        string                  `json:"duration"`
}

func (h *handler) handleRecommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBody), "server.handleRecommend")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleRecommend")
		return
	}

	settings := config.EngineSettings{
		Focus:                 req.Focus,
		Timeframe:             req.Timeframe,
		CustomRange:           req.CustomRange,
		SeasonalityMultiplier: req.SeasonalityMultiplier,
		EnableGuardrails:      req.EnableGuardrails,
		Guardrails:            req.Guardrails,
		ExperimentVariant:     req.ExperimentVariant,
	}
	conf := config.Configuration{Engine: settings, Campaigns: req.CampaignSettings}
	warnings := conf.ValidateConfiguration()

	engineConfig, err := settings.ToEngineConfig()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleRecommend")
		return
	}
	campaignSettings, err := conf.EngineCampaignSettings()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleRecommend")
		return
	}

	rows := normalize.Rows(req.Rows)
	recommendations := engine.Recommend(h.logger, engine.Input{
		Rows:             rows,
		Config:           engineConfig,
		CampaignSettings: campaignSettings,
	})

	elapsed := time.Since(start)
	run := h.store.Record(store.Run{
		Focus:           engineConfig.Focus,
		Timeframe:       engineConfig.TimeframeSelection,
		Variant:         engineConfig.ExperimentVariant,
		RowCount:        len(rows),
		CampaignCount:   len(recommendations),
		Duration:        elapsed,
		Recommendations: recommendations,
	})
	h.collectors.ObserveRun(run.Focus, run.Variant, run.RowCount, elapsed)

	h.logger.Info("recommendations served",
		zap.String("op", "server.handleRecommend"),
		zap.String("run", run.ID),
		zap.Int("rows", run.RowCount),
		zap.Int("campaigns", run.CampaignCount),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, recommendResponse{
		RunID:           run.ID,
		Recommendations: recommendations,
		CSV:             output.CsvString(recommendations),
		Warnings:        warnings,
		Rows:            run.RowCount,
		Campaigns:       run.CampaignCount,
		Duration:        elapsed.String(),
	})
}

// runSummary is the list form of a recorded run, without the batch payload.
type runSummary struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	Focus         string    `json:"focus"`
	Timeframe     int       `json:"timeframe"`
	Variant       string    `json:"variant"`
	RowCount      int       `json:"rowCount"`
	CampaignCount int       `json:"campaignCount"`
	Duration      string    `json:"duration"`
}

func (h *handler) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs := h.store.List()
	summaries := make([]runSummary, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, runSummary{
			ID:            run.ID,
			CreatedAt:     run.CreatedAt,
			Focus:         run.Focus,
			Timeframe:     run.Timeframe,
			Variant:       run.Variant,
			RowCount:      run.RowCount,
			CampaignCount: run.CampaignCount,
			Duration:      run.Duration.String(),
		})
	}
	h.writeJSON(w, http.StatusOK, summaries)
}

func (h *handler) handleRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, ok := h.store.Get(id)
	if !ok {
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("unknown run %q", id), "server.handleRun")
		return
	}
	h.writeJSON(w, http.StatusOK, run)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
