// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package api

import (
	"fmt"
	"net/http"
	"os"

	"github.com/tomtom215/sitepulse/internal/metrics"
	"github.com/tomtom215/sitepulse/internal/models"
)

// UploadsURLPrefix is the public path uploaded files are served under.
const UploadsURLPrefix = "/uploads"

// APIVersion is reported by the liveness probe.
const APIVersion = 1

// Health handles liveness probe requests. It never touches storage and
// refreshes the uptime gauge.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	metrics.UpdateUptime(h.startTime)
	respondJSON(w, http.StatusOK, models.HealthResponse{
		OK:      true,
		Uploads: UploadsURLPrefix,
		Version: APIVersion,
	})
}

// HealthReady handles readiness probe requests. The service is ready when
// the data directory and the media upload directory exist.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	dirs := []string{h.config.Storage.DataDir, h.files.Dir()}
	for _, dir := range dirs {
		if err := checkDir(dir); err != nil {
			respondError(w, r, http.StatusServiceUnavailable, ErrCodeNotReady, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, models.OKResponse{OK: true})
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
