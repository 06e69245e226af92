// Sitepulse - Media Library and Site Analytics Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sitepulse

package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/sitepulse/internal/models"
)

// setupFeedServer serves a hub-backed websocket endpoint the way the API does.
func setupFeedServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Failed to upgrade connection: %v", err)
			return
		}
		client := NewClient(hub, conn)
		hub.Register <- client
		client.Start()
	}))
	t.Cleanup(server.Close)
	return server
}

// dialWebSocket establishes a WebSocket connection to the test server
func dialWebSocket(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("Failed to dial websocket: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return msg
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	a := NewClient(hub, nil)
	b := NewClient(hub, nil)

	if a.hub != hub {
		t.Error("Client hub not set correctly")
	}
	if cap(a.send) != sendBuffer {
		t.Errorf("cap(send) = %d, want %d", cap(a.send), sendBuffer)
	}
	if b.ID() <= a.ID() {
		t.Errorf("client IDs not increasing: %d then %d", a.ID(), b.ID())
	}
}

func TestClient_Constants(t *testing.T) {
	t.Parallel()

	if pingPeriod >= pongWait {
		t.Errorf("pingPeriod %v must be shorter than pongWait %v", pingPeriod, pongWait)
	}
	if writeWait != 10*time.Second {
		t.Errorf("writeWait = %v, want 10s", writeWait)
	}
}

func TestClient_ReceivesActivity(t *testing.T) {
	t.Parallel()

	hub := setupHub(t)
	conn := dialWebSocket(t, setupFeedServer(t, hub))
	waitForClients(t, hub, 1)

	hub.BroadcastActivity(models.RealtimeEntry{
		Time: "2026-03-15T14:29:00.000Z", Page: "/blog", Location: "Unknown", Device: "Mobile", Duration: "Unknown",
	})

	msg := readMessage(t, conn)
	if msg.Type != MessageTypeActivity {
		t.Fatalf("Type = %q, want activity", msg.Type)
	}
	data, ok := msg.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Data = %T, want object", msg.Data)
	}
	if data["page"] != "/blog" || data["device"] != "Mobile" {
		t.Errorf("Data = %v, want page /blog on Mobile", data)
	}
}

func TestClient_PingPong(t *testing.T) {
	t.Parallel()

	hub := setupHub(t)
	conn := dialWebSocket(t, setupFeedServer(t, hub))
	waitForClients(t, hub, 1)

	if err := conn.WriteJSON(Message{Type: MessageTypePing}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if msg := readMessage(t, conn); msg.Type != MessageTypePong {
		t.Errorf("Type = %q, want pong", msg.Type)
	}
}

func TestClient_IgnoresUnknownMessages(t *testing.T) {
	t.Parallel()

	hub := setupHub(t)
	conn := dialWebSocket(t, setupFeedServer(t, hub))
	waitForClients(t, hub, 1)

	if err := conn.WriteJSON(Message{Type: "subscribe"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if err := conn.WriteJSON(Message{Type: MessageTypePing}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if msg := readMessage(t, conn); msg.Type != MessageTypePong {
		t.Errorf("Type = %q, want pong", msg.Type)
	}
}

func TestClient_DisconnectUnregisters(t *testing.T) {
	t.Parallel()

	hub := setupHub(t)
	conn := dialWebSocket(t, setupFeedServer(t, hub))
	waitForClients(t, hub, 1)

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()

	waitForClients(t, hub, 0)
}

func TestClient_HubShutdownClosesConnection(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- hub.RunWithContext(ctx) }()

	conn := dialWebSocket(t, setupFeedServer(t, hub))
	waitForClients(t, hub, 1)

	cancel()
	<-errCh

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("ReadMessage() should fail after the hub shuts down")
	}
}
