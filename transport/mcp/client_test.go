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

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"peer_attached": true,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api/status", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["peer_attached"] != true {
		t.Errorf("Expected peer_attached true, got %v", response["peer_attached"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api/health", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "no simulator client connected"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("POST", "/api/ping", nil, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 409 response")
	}

	if !strings.Contains(err.Error(), "no simulator client connected") {
		t.Errorf("Expected API error message to surface, got: %v", err)
	}
}

func TestClient_handleSimulatorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" || r.URL.Path != "/api/status" {
			t.Errorf("Expected GET /api/status, got %s %s", r.Method, r.URL.Path)
		}

		resp := map[string]interface{}{
			"peer_attached": true,
			"simulator": map[string]interface{}{
				"simulator_connected": true,
				"simulator_loaded":    false,
				"simulator_name":      "MSFS",
				"last_error":          0,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "simulator_status",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleSimulatorStatus(context.Background(), request)
	if err != nil {
		t.Fatalf("handleSimulatorStatus failed: %v", err)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	for _, fragment := range []string{"Peer: attached", "Simulator connected: true", "Simulator: MSFS"} {
		if !strings.Contains(text.Text, fragment) {
			t.Errorf("Expected %q in output, got: %s", fragment, text.Text)
		}
	}
}

func TestClient_handleDescribeStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/status/codes/601" {
			t.Errorf("Expected /api/status/codes/601, got %s", r.URL.Path)
		}

		resp := map[string]interface{}{
			"code":        "601",
			"known":       true,
			"category":    "simulator",
			"description": "Simulator disconnected",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "describe_status_code",
			Arguments: map[string]interface{}{"code": "601"},
		},
	}

	result, err := client.handleDescribeStatusCode(context.Background(), request)
	if err != nil {
		t.Fatalf("handleDescribeStatusCode failed: %v", err)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(text.Text, "Simulator disconnected") {
		t.Errorf("Expected description in output, got: %s", text.Text)
	}
}

func TestClient_handleDescribeStatusCode_MissingArg(t *testing.T) {
	client := NewClient("http://localhost:8080")

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "describe_status_code",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleDescribeStatusCode(context.Background(), request)
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("Expected tool error result for missing code argument")
	}
}

func TestClient_handleRequestTools(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		json.NewEncoder(w).Encode(map[string]bool{"sent": true})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: map[string]interface{}{}},
	}

	handlers := map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"request_aircraft_data":    client.handleRequestAircraftData,
		"request_simulator_status": client.handleRequestStatus,
		"ping_simulator":           client.handlePing,
	}

	for name, handler := range handlers {
		result, err := handler(ctx, request)
		if err != nil {
			t.Fatalf("%s failed: %v", name, err)
		}

		text, ok := result.Content[0].(mcp.TextContent)
		if !ok {
			t.Fatalf("%s: expected text content", name)
		}
		if !strings.Contains(text.Text, "sent to simulator client") {
			t.Errorf("%s: unexpected output %q", name, text.Text)
		}
	}
}
