package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aerolink/simbridge/sim/state"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Simbridge",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Simbridge - MCP Interface

This is a thin client that proxies all requests to the simbridge REST API.

Simbridge bridges a flight-simulator client to applications over a single
JSON-over-WebSocket channel. These tools inspect the bridge and trigger
outbound requests toward the simulator client.

AVAILABLE TOOLS:
- bridge_health: Check that the bridge HTTP API is up
- simulator_status: Peer attachment plus the latest merged simulator status
- request_aircraft_data: Ask the simulator client for an aircraft snapshot
- request_simulator_status: Poll the simulator client for a status update
- ping_simulator: Send a protocol-level keep-alive ping
- describe_status_code: Classify a wire status code (band, description)

NOTE: Request tools report "sent" only; responses arrive asynchronously on
the bridge and are reflected in simulator_status on the next call.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bridge_health",
		Description: "Check that the simbridge HTTP API is reachable and healthy",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleHealth)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "simulator_status",
		Description: "Get peer attachment and the latest merged simulator status (connected, loaded, name, last error)",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleSimulatorStatus)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "request_aircraft_data",
		Description: "Ask the connected simulator client for an aircraft data snapshot",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleRequestAircraftData)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "request_simulator_status",
		Description: "Poll the connected simulator client for a status update",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleRequestStatus)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "ping_simulator",
		Description: "Send a protocol-level keep-alive ping to the simulator client",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handlePing)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_status_code",
		Description: "Classify a wire status code: whether it is known, its numeric band (success, client-error, server-error, simulator, custom), and its description",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"code": map[string]interface{}{
					"type":        "string",
					"description": "Status code to classify, e.g. \"601\"",
				},
			},
			Required: []string{"code"},
		},
	}, c.handleDescribeStatusCode)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response map[string]string
	if err := c.apiCall("GET", "/api/health", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Bridge status: %s\n", response["status"])), nil
}

func (c *Client) handleSimulatorStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		PeerAttached bool         `json:"peer_attached"`
		Simulator    state.Status `json:"simulator"`
	}
	if err := c.apiCall("GET", "/api/status", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatStatus(response.PeerAttached, response.Simulator)), nil
}

func (c *Client) handleRequestAircraftData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.sendRequest("/api/request/aircraft-data", "Aircraft data request")
}

func (c *Client) handleRequestStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.sendRequest("/api/request/status", "Status poll")
}

func (c *Client) handlePing(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.sendRequest("/api/ping", "Ping")
}

func (c *Client) sendRequest(path, label string) (*mcp.CallToolResult, error) {
	var response map[string]bool
	if err := c.apiCall("POST", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s sent to simulator client\n", label)), nil
}

func (c *Client) handleDescribeStatusCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	code, _ := args["code"].(string)
	if code == "" {
		return mcp.NewToolResultError("code is required"), nil
	}

	var response struct {
		Code        string `json:"code"`
		Known       bool   `json:"known"`
		Category    string `json:"category"`
		Description string `json:"description"`
	}
	if err := c.apiCall("GET", "/api/status/codes/"+code, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Code: %s\nKnown: %v\nCategory: %s\nDescription: %s\n",
		response.Code, response.Known, response.Category, response.Description)
	return mcp.NewToolResultText(result), nil
}

// formatStatus renders the bridge status for tool output.
func formatStatus(peerAttached bool, sim state.Status) string {
	result := ""
	if peerAttached {
		result += "Peer: attached\n"
	} else {
		result += "Peer: not attached\n"
	}

	result += fmt.Sprintf("Simulator connected: %v\n", sim.SimulatorConnected)
	result += fmt.Sprintf("Simulator loaded: %v\n", sim.SimulatorLoaded)
	if sim.SimulatorName != "" {
		result += fmt.Sprintf("Simulator: %s\n", sim.SimulatorName)
	}
	if sim.LastError != 0 {
		result += fmt.Sprintf("Last error: %d\n", sim.LastError)
	}
	return result
}
