package http

import (
	"LinkGate-Backend/internal/sweeper"
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// SweeperStats источник статистики сборщика просроченных ссылок
type SweeperStats interface {
	Stats() sweeper.Stats
}

// HealthHandler обработчик health checks
type HealthHandler struct {
	storage   Pinger
	sweeper   SweeperStats
	log       *zap.Logger
	version   string
	startTime time.Time
}

// NewHealthHandler создает новый health handler. sweeper может быть nil.
func NewHealthHandler(storage Pinger, sweeper SweeperStats, log *zap.Logger, version string) *HealthHandler {
	return &HealthHandler{
		storage:   storage,
		sweeper:   sweeper,
		log:       log,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthResponse структура ответа health check
type HealthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	Version        string    `json:"version"`
	DatabaseStatus string    `json:"database_status"`
	Uptime         string    `json:"uptime,omitempty"`
}

// MetricsResponse структура ответа /metrics
type MetricsResponse struct {
	UptimeSeconds float64        `json:"uptime_seconds"`
	Timestamp     time.Time      `json:"timestamp"`
	Version       string         `json:"version"`
	Sweeper       *sweeper.Stats `json:"sweeper,omitempty"`
}

// Health основной health check endpoint
//
//	@Summary	Health check
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Failure	503	{object}	HealthResponse
//	@Router		/health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := h.storage.Ping(ctx); err != nil {
		dbStatus = "unhealthy"
		h.log.Error("database health check failed", zap.Error(err))
	}

	status := "healthy"
	statusCode := http.StatusOK
	if dbStatus == "unhealthy" {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, h.log, HealthResponse{
		Status:         status,
		Timestamp:      time.Now(),
		Version:        h.version,
		DatabaseStatus: dbStatus,
		Uptime:         time.Since(h.startTime).String(),
	}, statusCode)
}

// Ready readiness probe endpoint
//
//	@Summary	Readiness probe
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Failure	503	{object}	map[string]interface{}
//	@Router		/ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		writeJSON(w, h.log, map[string]interface{}{
			"status":    "not_ready",
			"timestamp": time.Now(),
		}, http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, h.log, map[string]interface{}{
		"status":    "ready",
		"timestamp": time.Now(),
	}, http.StatusOK)
}

// Metrics простой endpoint с метриками
//
//	@Summary	Service metrics
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	MetricsResponse
//	@Router		/metrics [get]
func (h *HealthHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	resp := MetricsResponse{
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Timestamp:     time.Now(),
		Version:       h.version,
	}
	if h.sweeper != nil {
		stats := h.sweeper.Stats()
		resp.Sweeper = &stats
	}

	writeJSON(w, h.log, resp, http.StatusOK)
}
