package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/karimJD/ws-backend/relay"
	"github.com/karimJD/ws-backend/transport/websocket"
)

func newTestServer(t *testing.T) (*relay.Relay, *httptest.Server) {
	t.Helper()

	r := relay.New()
	server := httptest.NewServer(NewServer(r, websocket.NewHandler(r, websocket.DefaultConfig())))
	t.Cleanup(server.Close)
	t.Cleanup(r.Shutdown)

	return r, server
}

func post(t *testing.T, url string, body string) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return resp, decoded
}

func TestHealthEndpoint(t *testing.T) {
	_, server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["status"] != "healthy" {
		t.Errorf("status field = %q, want healthy", body["status"])
	}
}

// waitForCount polls the registry until it reaches want or the deadline
// expires; the upgrade handler registers connections asynchronously.
func waitForCount(t *testing.T, r *relay.Relay, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if r.Count() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Count() = %d, want %d", r.Count(), want)
}

func TestStatusReportsConnectionCount(t *testing.T) {
	r, server := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := gws.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial failed: %v", err)
	}
	defer conn.Close()

	waitForCount(t, r, 1)

	resp, err := http.Get(server.URL + "/api/status")
	if err != nil {
		t.Fatalf("GET /api/status failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	if body["connections"] != 1.0 {
		t.Errorf("connections = %v, want 1", body["connections"])
	}
}

func TestSpeedInjectionValidation(t *testing.T) {
	_, server := newTestServer(t)

	resp, body := post(t, server.URL+"/api/speed", `{"value": 1.5}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("out-of-range speed: status = %d, want 400", resp.StatusCode)
	}
	if body["error"] == "" {
		t.Error("rejection carries no error message")
	}

	resp, body = post(t, server.URL+"/api/speed", `{"value": 0.5}`)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("valid speed: status = %d, want 200", resp.StatusCode)
	}
	if body["delivered"] != 0.0 {
		t.Errorf("delivered = %v, want 0 with no clients", body["delivered"])
	}
}

func TestErrorsInjectionRejectsNegative(t *testing.T) {
	_, server := newTestServer(t)

	resp, _ := post(t, server.URL+"/api/errors", `{"count": -2}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestZonePickupRejectsUnknownZone(t *testing.T) {
	_, server := newTestServer(t)

	resp, _ := post(t, server.URL+"/api/zones/pickup", `{"zone": "blue"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown zone: status = %d, want 400", resp.StatusCode)
	}

	resp, _ = post(t, server.URL+"/api/zones/pickup", `{"zone": "yellow"}`)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("valid zone: status = %d, want 200", resp.StatusCode)
	}
}

func TestInjectionReachesWebSocketClient(t *testing.T) {
	_, server := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := gws.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial failed: %v", err)
	}
	defer conn.Close()

	// Consume the greeting.
	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("failed to read greeting: %v", err)
	}

	resp, body := post(t, server.URL+"/api/table", `{"value": 80}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["delivered"] != 1.0 {
		t.Errorf("delivered = %v, want 1", body["delivered"])
	}

	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read injected frame: %v", err)
	}

	var frame map[string]any
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("frame is not JSON: %v", err)
	}
	if frame["type"] != "table_update" {
		t.Errorf("frame type = %v, want table_update", frame["type"])
	}
	if frame["table"] != 80.0 {
		t.Errorf("frame table = %v, want 80", frame["table"])
	}
	if _, present := frame["source"]; present {
		t.Error("server-initiated frame must not carry a source")
	}
}

func TestMalformedBodyRejected(t *testing.T) {
	_, server := newTestServer(t)

	resp, _ := post(t, server.URL+"/api/game/start", `{invalid`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
