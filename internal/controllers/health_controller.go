package controllers

import (
	"context"
	"fmt"
	"net/http"
	"snowreport/internal/models"
	"snowreport/internal/providers"
	"snowreport/internal/storage"
	"snowreport/internal/structures"
	"time"
)

const pingTimeout = 2 * time.Second

type HealthController struct {
	store     storage.RecordStoreInterface
	logger    providers.Logger
	version   string
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Database      string  `json:"database"`
}

type statusResponse struct {
	Status     string          `json:"status"`
	Version    string          `json:"version"`
	Estaciones []models.Resort `json:"estaciones"`
	Uptime     string          `json:"uptime"`
}

// Health reports 503 while the database is unreachable.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Database:      "ok",
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	status := http.StatusOK
	if err := hc.store.Ping(ctx); err != nil {
		hc.logger.Errorf(providers.TypeApp, "Database ping failed: %s", err)
		resp.Status = "degraded"
		resp.Database = "error"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}

// Status describes the service and the resorts it can scrape.
func (hc *HealthController) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:     "ok",
		Version:    hc.version,
		Estaciones: models.Resorts,
		Uptime:     formatDuration(time.Since(hc.startTime)),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(conf *structures.Config, store storage.RecordStoreInterface, logger providers.Logger) *HealthController {
	return &HealthController{
		store:     store,
		logger:    logger,
		version:   conf.Version,
		startTime: time.Now(),
	}
}
