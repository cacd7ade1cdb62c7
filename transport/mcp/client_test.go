package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func toolRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestHandleSendSpeedProxiesToAPI(t *testing.T) {
	var gotPath string
	var gotBody map[string]float64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]int{"delivered": 2})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleSendSpeed(context.Background(), toolRequest(map[string]interface{}{"value": 0.5}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("handler returned tool error: %v", result.Content)
	}

	if gotPath != "/api/speed" {
		t.Errorf("called %s, want /api/speed", gotPath)
	}
	if gotBody["value"] != 0.5 {
		t.Errorf("posted value %v, want 0.5", gotBody["value"])
	}
}

func TestHandleSendSpeedSurfacesValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "speed must be between 0.2 and 1, got 1.5"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleSendSpeed(context.Background(), toolRequest(map[string]interface{}{"value": 1.5}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if !result.IsError {
		t.Error("expected a tool error for an out-of-range speed")
	}
}

func TestHandleStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/status" {
			t.Errorf("called %s, want /api/status", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]int{"connections": 3})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleStatus(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "3") {
		t.Errorf("status text %q does not mention the connection count", text)
	}
}

func TestHandleSendZonePickup(t *testing.T) {
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]int{"delivered": 1})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleSendZonePickup(context.Background(), toolRequest(map[string]interface{}{"zone": "red"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("handler returned tool error: %v", result.Content)
	}

	if gotBody["zone"] != "red" {
		t.Errorf("posted zone %q, want red", gotBody["zone"])
	}
}

func TestHandlersRejectAbsentArguments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected API call %s for a request without arguments", r.URL.Path)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	// A request whose Arguments field was never set (JSON null on the wire)
	// must produce a tool error, not a panic.
	handlers := map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"send_speed":            client.handleSendSpeed,
		"send_table":            client.handleSendTable,
		"send_game_start":       client.handleSendGameStart,
		"send_products":         client.handleSendProducts,
		"send_sorted_objects":   client.handleSendSortedObjects,
		"send_unsorted_objects": client.handleSendUnsortedObjects,
		"send_errors":           client.handleSendErrors,
		"send_zone_pickup":      client.handleSendZonePickup,
	}

	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			result, err := handler(context.Background(), mcp.CallToolRequest{})
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if !result.IsError {
				t.Error("expected a tool error for absent arguments")
			}
		})
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("tool result content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}
