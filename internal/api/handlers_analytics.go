// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package api

import (
	"context"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/sitepulse/internal/analytics"
	"github.com/tomtom215/sitepulse/internal/logging"
	"github.com/tomtom215/sitepulse/internal/metrics"
	"github.com/tomtom215/sitepulse/internal/models"
	"github.com/tomtom215/sitepulse/internal/validation"
)

// maxTrackBody caps the tracking payload read from the request.
const maxTrackBody = 64 << 10

// Track ingests one analytics event.
//
// Missing fields are defaulted, a malformed body is treated as empty and
// over-long fields are cut to their length cap, so a tracking call only fails
// when the event cannot be stored. Events for administrative paths are
// acknowledged with ignored:true and not stored.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	req := decodeTrackRequest(r)

	if fields := validation.Truncate(&req); len(fields) > 0 {
		logging.Ctx(r.Context()).Debug().Strs("fields", fields).Msg("Truncated over-long track fields")
	}

	path := analytics.NormalizePath(firstNonEmpty(req.Path, req.Page))
	if h.filter.IsAdmin(path) {
		metrics.RecordTrack(metrics.OutcomeIgnored)
		respondJSON(w, http.StatusOK, models.TrackResponse{OK: true, Ignored: true})
		return
	}

	event := &models.AnalyticsEvent{
		Type:      firstNonEmpty(req.Type, models.DefaultEventType),
		Path:      path,
		Referrer:  firstNonEmpty(req.Referrer, r.Referer()),
		Device:    firstNonEmpty(req.Device, r.UserAgent()),
		SessionID: firstNonEmpty(req.SessionID, uuid.NewString()),
		IP:        clientIP(r),
	}

	if err := h.events.Append(r.Context(), event); err != nil {
		metrics.RecordTrack(metrics.OutcomeFailed)
		respondError(w, r, http.StatusInternalServerError, ErrCodeFailedToTrack, err)
		return
	}

	h.aggregator.Invalidate()
	if h.wsHub != nil {
		h.wsHub.BroadcastActivity(analytics.RealtimeEntryFor(event))
	}
	metrics.RecordTrack(metrics.OutcomeStored)

	respondJSON(w, http.StatusOK, models.TrackResponse{OK: true, EventID: event.ID})
}

// decodeTrackRequest reads the tracking body. Anything that is not a JSON
// object decodes to the zero request.
func decodeTrackRequest(r *http.Request) models.TrackRequest {
	var req models.TrackRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxTrackBody))
	if err != nil || len(body) == 0 {
		return req
	}
	if err := json.Unmarshal(body, &req); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Malformed track body, using defaults")
		return models.TrackRequest{}
	}
	return req
}

// periodView adapts an aggregator view to a handler.
func periodView[T any](view func(context.Context, analytics.Period) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := view(r.Context(), periodParam(r))
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, ErrCodeAnalytics, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// AnalyticsSummary returns visitors, page views and bounce rate.
func (h *Handler) AnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	periodView(h.aggregator.Summary)(w, r)
}

// AnalyticsTimeseries returns bucketed event counts.
func (h *Handler) AnalyticsTimeseries(w http.ResponseWriter, r *http.Request) {
	periodView(h.aggregator.Timeseries)(w, r)
}

// AnalyticsTopPages returns the most viewed paths.
func (h *Handler) AnalyticsTopPages(w http.ResponseWriter, r *http.Request) {
	periodView(h.aggregator.TopPages)(w, r)
}

// AnalyticsSources returns event counts by referrer class.
func (h *Handler) AnalyticsSources(w http.ResponseWriter, r *http.Request) {
	periodView(h.aggregator.Sources)(w, r)
}

// AnalyticsDevices returns event counts by device class.
func (h *Handler) AnalyticsDevices(w http.ResponseWriter, r *http.Request) {
	periodView(h.aggregator.Devices)(w, r)
}

// AnalyticsRealtime returns the newest events regardless of period.
func (h *Handler) AnalyticsRealtime(w http.ResponseWriter, r *http.Request) {
	entries, err := h.aggregator.Realtime(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeAnalytics, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
