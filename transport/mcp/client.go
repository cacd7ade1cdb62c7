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
		"ws-backend relay",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`ws-backend relay - MCP Interface

This is a thin client that proxies all requests to the relay's REST API.

The relay fans typed state-update events out to every connected dashboard
and device over WebSocket. These tools inject server-initiated events; each
one broadcasts to all connected clients and reports the delivery count.

AVAILABLE TOOLS:
- relay_status: Current number of connected clients
- send_speed: Broadcast a conveyor speed (0.2 to 1.0 inclusive)
- send_table: Broadcast a table height value
- send_game_start: Start or stop the game for every client
- send_products: Broadcast the product type placed on the table
- send_sorted_objects / send_unsorted_objects: Broadcast sorting results
- send_errors: Broadcast the session error count (non-negative)
- send_zone_pickup: Broadcast a pickup from the red, green or yellow zone

Validation errors (speed out of range, negative error count, unknown zone)
are returned as tool errors and nothing is broadcast.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "relay_status",
		Description: "Get the number of currently connected clients",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleStatus)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "send_speed",
		Description: "Broadcast a conveyor speed update to all clients (0.2 to 1.0)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"value": map[string]interface{}{
					"type":        "number",
					"description": "Speed value, between 0.2 and 1.0 inclusive",
				},
			},
			Required: []string{"value"},
		},
	}, c.handleSendSpeed)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "send_table",
		Description: "Broadcast a table height update to all clients",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"value": map[string]interface{}{
					"type":        "number",
					"description": "Table height value",
				},
			},
			Required: []string{"value"},
		},
	}, c.handleSendTable)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "send_game_start",
		Description: "Start or stop the game for every connected client",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"value": map[string]interface{}{
					"type":        "boolean",
					"description": "true to start the game, false to stop it",
				},
			},
			Required: []string{"value"},
		},
	}, c.handleSendGameStart)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "send_products",
		Description: "Broadcast the product type placed on the table",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Product type identifier",
				},
			},
			Required: []string{"type"},
		},
	}, c.handleSendProducts)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "send_sorted_objects",
		Description: "Broadcast an object counted as correctly sorted",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Object type identifier",
				},
			},
			Required: []string{"type"},
		},
	}, c.handleSendSortedObjects)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "send_unsorted_objects",
		Description: "Broadcast an object counted as incorrectly sorted",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Object type identifier",
				},
			},
			Required: []string{"type"},
		},
	}, c.handleSendUnsortedObjects)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "send_errors",
		Description: "Broadcast the session error count (must be non-negative)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"count": map[string]interface{}{
					"type":        "number",
					"description": "Error count, zero or greater",
				},
			},
			Required: []string{"count"},
		},
	}, c.handleSendErrors)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "send_zone_pickup",
		Description: "Broadcast a pickup from one of the colored zones",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"zone": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"red", "green", "yellow"},
					"description": "The zone the object was picked up from",
				},
			},
			Required: []string{"zone"},
		},
	}, c.handleSendZonePickup)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiCall makes an HTTP request to the REST API
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

// deliveryResponse is the shape every injection endpoint answers with.
type deliveryResponse struct {
	Delivered int `json:"delivered"`
}

// toolArgs extracts the argument map from a tool request. A request with
// absent or null arguments yields ok=false instead of a panic.
func toolArgs(request mcp.CallToolRequest) (map[string]interface{}, bool) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	return args, ok
}

func (c *Client) handleStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var status struct {
		Connections int `json:"connections"`
	}
	if err := c.apiCall("GET", "/api/status", nil, &status); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Connected clients: %d", status.Connections)), nil
}

func (c *Client) handleSendSpeed(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := toolArgs(request)
	if !ok {
		return mcp.NewToolResultError("missing tool arguments"), nil
	}
	value, _ := args["value"].(float64)

	var resp deliveryResponse
	if err := c.apiCall("POST", "/api/speed", map[string]float64{"value": value}, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Speed %v broadcast to %d clients", value, resp.Delivered)), nil
}

func (c *Client) handleSendTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := toolArgs(request)
	if !ok {
		return mcp.NewToolResultError("missing tool arguments"), nil
	}
	value, _ := args["value"].(float64)

	var resp deliveryResponse
	if err := c.apiCall("POST", "/api/table", map[string]float64{"value": value}, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Table value %v broadcast to %d clients", value, resp.Delivered)), nil
}

func (c *Client) handleSendGameStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := toolArgs(request)
	if !ok {
		return mcp.NewToolResultError("missing tool arguments"), nil
	}
	value, _ := args["value"].(bool)

	var resp deliveryResponse
	if err := c.apiCall("POST", "/api/game/start", map[string]bool{"value": value}, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state := "stopped"
	if value {
		state = "started"
	}
	return mcp.NewToolResultText(fmt.Sprintf("Game %s for %d clients", state, resp.Delivered)), nil
}

func (c *Client) handleSendProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.sendTyped(request, "/api/products", "Product")
}

func (c *Client) handleSendSortedObjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.sendTyped(request, "/api/objects/sorted", "Sorted object")
}

func (c *Client) handleSendUnsortedObjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.sendTyped(request, "/api/objects/unsorted", "Unsorted object")
}

// sendTyped covers the three tools whose only argument is an object type.
func (c *Client) sendTyped(request mcp.CallToolRequest, path, label string) (*mcp.CallToolResult, error) {
	args, ok := toolArgs(request)
	if !ok {
		return mcp.NewToolResultError("missing tool arguments"), nil
	}
	objectType, _ := args["type"].(string)

	var resp deliveryResponse
	if err := c.apiCall("POST", path, map[string]string{"type": objectType}, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s %q broadcast to %d clients", label, objectType, resp.Delivered)), nil
}

func (c *Client) handleSendErrors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := toolArgs(request)
	if !ok {
		return mcp.NewToolResultError("missing tool arguments"), nil
	}
	count, _ := args["count"].(float64)

	var resp deliveryResponse
	if err := c.apiCall("POST", "/api/errors", map[string]int{"count": int(count)}, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Error count %d broadcast to %d clients", int(count), resp.Delivered)), nil
}

func (c *Client) handleSendZonePickup(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := toolArgs(request)
	if !ok {
		return mcp.NewToolResultError("missing tool arguments"), nil
	}
	zone, _ := args["zone"].(string)

	var resp deliveryResponse
	if err := c.apiCall("POST", "/api/zones/pickup", map[string]string{"zone": zone}, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Pickup from %s zone broadcast to %d clients", zone, resp.Delivered)), nil
}
