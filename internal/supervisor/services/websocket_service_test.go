// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/sitepulse/internal/websocket"
)

// failingHub returns err from every run.
type failingHub struct{ err error }

func (f failingHub) RunWithContext(context.Context) error { return f.err }

func TestWebSocketHubService_Interface(t *testing.T) {
	var _ suture.Service = (*WebSocketHubService)(nil)
	var _ ContextHub = (*websocket.Hub)(nil)
}

func TestWebSocketHubService_Serve(t *testing.T) {
	t.Parallel()

	t.Run("stops the hub on cancellation", func(t *testing.T) {
		t.Parallel()

		svc := NewWebSocketHubService(websocket.NewHub())

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want context.Canceled", err)
			}
		case <-time.After(time.Second):
			t.Error("Serve did not return after context cancellation")
		}
	})

	t.Run("propagates hub errors", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("hub failed")
		svc := NewWebSocketHubService(failingHub{err: wantErr})

		if err := svc.Serve(context.Background()); !errors.Is(err, wantErr) {
			t.Errorf("Serve() = %v, want %v", err, wantErr)
		}
	})
}

func TestWebSocketHubService_String(t *testing.T) {
	t.Parallel()

	if got := NewWebSocketHubService(websocket.NewHub()).String(); got != "websocket-hub" {
		t.Errorf("String() = %q, want websocket-hub", got)
	}
}

func TestWebSocketHubService_WithSupervisor(t *testing.T) {
	t.Parallel()

	hub := websocket.NewHub()
	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          time.Second,
	})
	sup.Add(NewWebSocketHubService(hub))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	// Broadcasts are accepted while the hub runs under the supervisor.
	hub.BroadcastJSON(websocket.MessageTypeActivity, map[string]string{"page": "/"})
	time.Sleep(20 * time.Millisecond)

	cancel()
	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Error("supervisor did not stop")
	}
}
