// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tomtom215/sitepulse/internal/catalog"
	"github.com/tomtom215/sitepulse/internal/logging"
	"github.com/tomtom215/sitepulse/internal/metrics"
	"github.com/tomtom215/sitepulse/internal/models"
)

// UploadField is the multipart field carrying uploaded files.
const UploadField = "files"

// multipartMemory is the part of a multipart body kept in memory; the rest
// spills to temporary files.
const multipartMemory = 32 << 20

// MediaURL returns the public URL of a stored file.
func MediaURL(storedName string) string {
	return path.Join(UploadsURLPrefix, "media", storedName)
}

// ListMedia returns every media record in insertion order.
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	records, err := h.catalog.List()
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeCatalog, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// UploadMedia stores every file in the "files" field and returns the new
// records. Files are written before the catalog so a record never points at
// a file that failed to write.
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if h.config.Uploads.MaxRequestBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.config.Uploads.MaxRequestBytes)
	}

	headers, err := h.uploadedFiles(r)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			respondError(w, r, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, nil)
		case errors.Is(err, ErrTooManyFiles):
			respondError(w, r, http.StatusBadRequest, ErrCodeTooManyFiles, nil)
		default:
			respondError(w, r, http.StatusBadRequest, ErrCodeNoFiles, nil)
		}
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	records := make([]models.MediaRecord, 0, len(headers))
	var total int64
	for _, fh := range headers {
		record, err := h.ingest(fh)
		if err != nil {
			h.discard(records)
			respondError(w, r, http.StatusInternalServerError, ErrCodeUploadFailed, err)
			return
		}
		records = append(records, record)
		total += record.Size
	}

	if err := h.catalog.Append(records); err != nil {
		h.discard(records)
		respondError(w, r, http.StatusInternalServerError, ErrCodeUploadFailed, err)
		return
	}

	for _, rec := range records {
		metrics.RecordUpload(rec.Size)
	}
	logging.Ctx(r.Context()).Info().
		Int("files", len(records)).
		Int64("bytes", total).
		Msg("Media uploaded")

	respondJSON(w, http.StatusOK, records)
}

// uploadedFiles parses the multipart body and returns the file parts.
func (h *Handler) uploadedFiles(r *http.Request) ([]*multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrNoFiles, err)
	}

	headers := r.MultipartForm.File[UploadField]
	if len(headers) == 0 {
		return nil, ErrNoFiles
	}
	if len(headers) > h.config.Uploads.MaxFiles {
		return nil, ErrTooManyFiles
	}
	return headers, nil
}

// ingest writes one uploaded part to the file store.
func (h *Handler) ingest(fh *multipart.FileHeader) (models.MediaRecord, error) {
	src, err := fh.Open()
	if err != nil {
		return models.MediaRecord{}, fmt.Errorf("open part %q: %w", fh.Filename, err)
	}
	defer src.Close()

	storedName, size, err := h.files.Ingest(fh.Filename, src)
	if err != nil {
		return models.MediaRecord{}, err
	}

	return models.MediaRecord{
		ID:         uuid.NewString(),
		Name:       fh.Filename,
		StoredName: storedName,
		Size:       size,
		Type:       fh.Header.Get("Content-Type"),
		UploadDate: time.Now().UTC(),
		URL:        MediaURL(storedName),
	}, nil
}

// discard removes files written for a batch that will not be cataloged.
func (h *Handler) discard(records []models.MediaRecord) {
	for _, rec := range records {
		if err := h.files.Remove(rec.StoredName); err != nil {
			logging.Warn().Err(err).Str("stored_name", rec.StoredName).Msg("Failed to clean up uploaded file")
		}
	}
}

// DeleteMedia removes one record, then its file on a best-effort basis.
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.catalog.RemoveByID(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			metrics.RecordMediaDelete(metrics.OutcomeNotFound)
			respondError(w, r, http.StatusNotFound, ErrCodeNotFound, nil)
			return
		}
		metrics.RecordMediaDelete(metrics.OutcomeFailed)
		respondError(w, r, http.StatusInternalServerError, ErrCodeDeleteFailed, err)
		return
	}

	if err := h.files.Remove(record.StoredName); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).
			Str("media_id", sanitizeLogValue(id)).
			Msg("Media record deleted but file removal failed")
	}

	metrics.RecordMediaDelete(metrics.OutcomeDeleted)
	logging.Ctx(r.Context()).Info().Str("media_id", sanitizeLogValue(id)).Msg("Media deleted")
	respondJSON(w, http.StatusOK, models.OKResponse{OK: true})
}
