// Package server serves the simulation form as a single-page web UI together
// with the simulate, export and chart endpoints behind it.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/cdi-simulator/internal/chart"
	"github.com/iwvelando/cdi-simulator/internal/config"
	"github.com/iwvelando/cdi-simulator/internal/export"
	"github.com/iwvelando/cdi-simulator/internal/form"
	"github.com/iwvelando/cdi-simulator/internal/metrics"
	"github.com/iwvelando/cdi-simulator/internal/report"
	"github.com/iwvelando/cdi-simulator/internal/simulation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

type contextKey string

const requestIDKey contextKey = "request_id"

// Export kinds served under /api/export/.
const (
	kindPDF   = "pdf"
	kindXLSX  = "xlsx"
	kindCSV   = "csv"
	kindChart = "chart"
)

type handler struct {
	logger         *zap.Logger
	maxBodySize    int64
	currencySymbol string
	version        string
}

// NewHandler constructs the HTTP handler that serves the web UI and simulation API.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:         logger,
		maxBodySize:    cfg.BodySizeBytes(),
		currencySymbol: cfg.CurrencySymbol,
		version:        trimmedVersion,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/api/simulate", h.handleSimulate)
	mux.HandleFunc("/api/export/pdf", h.handleExport(kindPDF))
	mux.HandleFunc("/api/export/xlsx", h.handleExport(kindXLSX))
	mux.HandleFunc("/api/export/csv", h.handleExport(kindCSV))
	mux.HandleFunc("/api/chart", h.handleExport(kindChart))
	mux.HandleFunc("/api/version", h.handleVersion)
	mux.Handle("/metrics", promhttp.Handler())

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	return h.withRequestID(mux)
}

type simulateResponse struct {
	Result   simulation.Result `json:"result"`
	Verdicts []string          `json:"verdicts"`
	Warnings []string          `json:"warnings,omitempty"`
	Duration string            `json:"duration"`
}

func (h *handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *handler) requestLogger(r *http.Request) *zap.Logger {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return h.logger.With(zap.String("requestID", id))
	}
	return h.logger
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSimulate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	result, warnings, ok := h.simulate(w, r, op)
	if !ok {
		return
	}

	verdicts := make([]string, 0, len(result.PerBank))
	for _, br := range result.PerBank {
		verdicts = append(verdicts, br.Verdict())
	}

	elapsed := time.Since(start)
	h.requestLogger(r).Info("simulation computed",
		zap.String("op", op),
		zap.Int("banks", len(result.PerBank)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, simulateResponse{
		Result:   result,
		Verdicts: verdicts,
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleExport(kind string) http.HandlerFunc {
	op := "server.handleExport." + kind
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		result, _, ok := h.simulate(w, r, op)
		if !ok {
			return
		}

		var buf bytes.Buffer
		var contentType, filename string
		var err error
		switch kind {
		case kindPDF:
			contentType, filename = "application/pdf", "simulation.pdf"
			err = report.Render(&buf, result, report.Options{CurrencySymbol: h.currencySymbol})
		case kindXLSX:
			contentType, filename = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "simulation.xlsx"
			err = export.WriteXLSX(&buf, result)
		case kindCSV:
			contentType, filename = "text/csv", "simulation.csv"
			err = export.WriteCSV(&buf, result)
		case kindChart:
			contentType = "image/png"
			err = chart.Render(&buf, result, chart.Options{CurrencySymbol: h.currencySymbol})
		}
		if err != nil {
			metrics.Exports.WithLabelValues(kind, metrics.StatusError).Inc()
			h.respondError(r, w, http.StatusInternalServerError, fmt.Sprintf("failed to render %s: %v", kind, err), op)
			return
		}
		metrics.Exports.WithLabelValues(kind, metrics.StatusOK).Inc()

		w.Header().Set("Content-Type", contentType)
		if filename != "" {
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			h.requestLogger(r).Warn("failed to write export",
				zap.String("op", op),
				zap.Error(err),
			)
		}
	}
}

// simulate decodes the form values from the request body and runs the
// projection. On failure the error response is already written and ok is
// false.
func (h *handler) simulate(w http.ResponseWriter, r *http.Request, op string) (simulation.Result, []string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var values form.Values
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(r, w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return simulation.Result{}, nil, false
		}
		h.respondError(r, w, http.StatusBadRequest, fmt.Sprintf("failed to decode form values: %v", err), op)
		return simulation.Result{}, nil, false
	}

	input, err := form.Parse(values)
	if err != nil {
		metrics.Simulations.WithLabelValues(metrics.OutcomeInvalid).Inc()
		status := http.StatusInternalServerError
		if errors.Is(err, simulation.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		h.respondError(r, w, status, err.Error(), op)
		return simulation.Result{}, nil, false
	}

	metrics.Simulations.WithLabelValues(metrics.OutcomeOK).Inc()
	metrics.BanksPerSimulation.Observe(float64(len(input.Banks)))
	return simulation.Project(h.requestLogger(r), input), config.ValidateConfiguration(input), true
}

func (h *handler) respondError(r *http.Request, w http.ResponseWriter, status int, msg string, op string) {
	h.requestLogger(r).Error("simulation request failed",
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
