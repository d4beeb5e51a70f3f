package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type snapshot struct {
	Score int    `json:"score"`
	State string `json:"state"`
}

func TestNewHub(t *testing.T) {
	hub := NewHub(nil)
	if hub.sessions == nil || hub.latest == nil {
		t.Fatal("NewHub() left maps nil")
	}
	if hub.broadcast == nil || hub.register == nil || hub.unregister == nil {
		t.Error("NewHub() left channels nil")
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub(nil)
	client := &Client{hub: hub, sessionID: "s1", send: make(chan []byte, 4)}

	hub.registerClient(client)
	if !hub.sessions["s1"][client] {
		t.Fatal("Client was not registered in session")
	}

	hub.unregisterClient(client)
	if _, ok := hub.sessions["s1"]; ok {
		t.Error("Empty session should be removed")
	}
	if _, ok := <-client.send; ok {
		t.Error("Send channel should be closed")
	}

	// A second unregister is a no-op.
	hub.unregisterClient(client)
}

func TestRegisterReplaysLatest(t *testing.T) {
	hub := NewHub(nil)
	hub.latest["s1"] = []byte(`{"event":"snapshot"}`)
	client := &Client{hub: hub, sessionID: "s1", send: make(chan []byte, 4)}

	hub.registerClient(client)
	select {
	case msg := <-client.send:
		if string(msg) != `{"event":"snapshot"}` {
			t.Errorf("Replayed %q", msg)
		}
	default:
		t.Error("A late spectator should get the latest snapshot")
	}
}

func TestBroadcastDropsSlowClient(t *testing.T) {
	hub := NewHub(nil)
	slow := &Client{hub: hub, sessionID: "s1", send: make(chan []byte)}
	fast := &Client{hub: hub, sessionID: "s1", send: make(chan []byte, 1)}
	hub.registerClient(slow)
	hub.registerClient(fast)

	hub.broadcastMessage("s1", []byte("x"))

	if hub.sessions["s1"][slow] {
		t.Error("A client that cannot keep up should be dropped")
	}
	if !hub.sessions["s1"][fast] {
		t.Error("A ready client should stay registered")
	}
	if msg := <-fast.send; string(msg) != "x" {
		t.Errorf("Fast client got %q, expected x", msg)
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub(nil)
	ch := hub.Channel("s1")

	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastBuffer*2; i++ {
			ch.Publish(snapshot{Score: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked without a running hub")
	}
}

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	go hub.Run(ctx)
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func waitForSession(t *testing.T, hub *Hub, id string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ids, err := hub.Sessions(context.Background())
		if err != nil {
			t.Fatalf("Sessions() error: %v", err)
		}
		if slices.Contains(ids, id) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Session %q never appeared", id)
}

func readSnapshot(t *testing.T, conn *websocket.Conn) (Message, snapshot) {
	t.Helper()
	//nolint:errcheck // test deadline
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error: %v", err)
	}

	var raw struct {
		Message
		Data snapshot `json:"data"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Cannot decode %q: %v", data, err)
	}
	return raw.Message, raw.Data
}

func TestSpectatorReceivesSnapshots(t *testing.T) {
	hub, srv := startHub(t)
	ch := hub.Channel("alice-1")

	ch.Publish(snapshot{Score: 10, State: "PLAYING"})
	waitForSession(t, hub, "alice-1")

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?session=alice-1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	defer conn.Close()

	msg, snap := readSnapshot(t, conn)
	if msg.SessionID != "alice-1" || msg.Event != "snapshot" {
		t.Errorf("Message = %+v, expected a snapshot for alice-1", msg)
	}
	if snap.Score != 10 {
		t.Errorf("Replayed score = %d, expected 10", snap.Score)
	}

	ch.Publish(snapshot{Score: 20, State: "GAME_OVER"})
	_, snap = readSnapshot(t, conn)
	if snap.Score != 20 || snap.State != "GAME_OVER" {
		t.Errorf("Live snapshot = %+v, expected score 20 in GAME_OVER", snap)
	}
}

func TestSessionsEndpoint(t *testing.T) {
	hub, srv := startHub(t)
	hub.Channel("b").Publish(snapshot{})
	hub.Channel("a").Publish(snapshot{})
	waitForSession(t, hub, "a")
	waitForSession(t, hub, "b")

	resp, err := http.Get(srv.URL + "/sessions")
	if err != nil {
		t.Fatalf("GET /sessions error: %v", err)
	}
	defer resp.Body.Close()

	var ids []string
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if !slices.Equal(ids, []string{"a", "b"}) {
		t.Errorf("Sessions = %v, expected [a b]", ids)
	}

	hub.Channel("a").Close()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ids, _ = hub.Sessions(context.Background())
		if !slices.Contains(ids, "a") {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("Closed session should disappear from the list")
}

func TestWSRequiresSession(t *testing.T) {
	_, srv := startHub(t)

	resp, err := http.Get(srv.URL + "/ws")
	if err != nil {
		t.Fatalf("GET /ws error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Status = %d, expected 400", resp.StatusCode)
	}
}
