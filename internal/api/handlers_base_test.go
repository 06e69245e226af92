// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sitepulse/internal/analytics"
	"github.com/tomtom215/sitepulse/internal/catalog"
	"github.com/tomtom215/sitepulse/internal/config"
	"github.com/tomtom215/sitepulse/internal/eventlog"
	"github.com/tomtom215/sitepulse/internal/filestore"
	"github.com/tomtom215/sitepulse/internal/logging"
	ws "github.com/tomtom215/sitepulse/internal/websocket"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{Level: "error", Format: "console", Output: io.Discard})
}

// testEnv is a fully wired API backed by temporary directories.
type testEnv struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	files   *filestore.Store
	events  eventlog.Store
	hub     *ws.Hub
	handler *Handler
	router  http.Handler
}

// newTestEnv builds the API on temp dirs. mutate adjusts the config before
// anything is opened.
func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()

	root := t.TempDir()
	cfg := config.Defaults()
	cfg.Storage.DataDir = filepath.Join(root, "data")
	cfg.Storage.UploadsDir = filepath.Join(root, "uploads")
	cfg.Security.RateLimitDisabled = true
	for _, fn := range mutate {
		fn(cfg)
	}

	cat, err := catalog.Open(cfg.Storage.MediaCatalogPath())
	if err != nil {
		t.Fatalf("catalog.Open() error = %v", err)
	}
	files, err := filestore.New(cfg.Storage.MediaDir())
	if err != nil {
		t.Fatalf("filestore.New() error = %v", err)
	}
	events, err := eventlog.OpenJSON(cfg.Storage.EventLogPath())
	if err != nil {
		t.Fatalf("eventlog.OpenJSON() error = %v", err)
	}

	return newTestEnvWith(t, cfg, cat, files, events)
}

func newTestEnvWith(t *testing.T, cfg *config.Config, cat *catalog.Catalog, files *filestore.Store, events eventlog.Store) *testEnv {
	t.Helper()

	filter := analytics.NewAdminFilter(cfg.Analytics.AdminPrefixes, cfg.Analytics.AdminMarkers)
	agg := analytics.NewAggregator(events, filter)

	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.RunWithContext(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	handler := NewHandler(cfg, Deps{
		Catalog:    cat,
		Files:      files,
		Events:     events,
		Aggregator: agg,
		WSHub:      hub,
	})

	return &testEnv{
		cfg:     cfg,
		catalog: cat,
		files:   files,
		events:  events,
		hub:     hub,
		handler: handler,
		router:  NewRouter(handler, cfg).SetupChi(),
	}
}

// do sends req through the router.
func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// track posts a JSON body to the track endpoint.
func (e *testEnv) track(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/analytics/track", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

// uploadFile is one multipart part.
type uploadFile struct {
	name    string
	content string
}

// uploadRequest builds a multipart POST /api/media with the given files in field.
func uploadRequest(t *testing.T, field string, files ...uploadFile) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := mw.CreateFormFile(field, f.name)
		if err != nil {
			t.Fatalf("CreateFormFile() error = %v", err)
		}
		if _, err := io.WriteString(part, f.content); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/media", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// decode unmarshals a response body into v.
func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

// assertError checks status and {"error":code}.
func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Errorf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
	var body struct {
		Error string `json:"error"`
	}
	decode(t, w, &body)
	if body.Error != code {
		t.Errorf("error = %q, want %q", body.Error, code)
	}
}
