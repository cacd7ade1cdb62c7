// Command status prints a quick, human-readable summary of a running relay
// server. It hits the health and status endpoints and reports uptime-relevant
// facts: whether the server responds, how many clients are connected, and the
// server timestamp.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

var baseURL = flag.String("url", "http://localhost:8080", "Base URL of the relay server")

// healthResponse mirrors the /api/health payload.
type healthResponse struct {
	Status string `json:"status"`
}

// statusResponse mirrors the /api/status payload.
type statusResponse struct {
	Connections int    `json:"connections"`
	Timestamp   string `json:"timestamp"`
}

func main() {
	flag.Parse()

	client := &http.Client{Timeout: 5 * time.Second}

	fmt.Printf("=== Relay server at %s ===\n", *baseURL)

	var health healthResponse
	if err := fetch(client, *baseURL+"/api/health", &health); err != nil {
		fmt.Printf("❌ Health check failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Health: %s\n", health.Status)

	var status statusResponse
	if err := fetch(client, *baseURL+"/api/status", &status); err != nil {
		fmt.Printf("❌ Status check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Connected clients: %d\n", status.Connections)
	fmt.Printf("Server time: %s\n", status.Timestamp)

	if status.Connections == 0 {
		fmt.Println("⚠️  No clients connected; broadcasts will be delivered to 0 recipients")
	} else {
		fmt.Println("✅ Clients connected and receiving broadcasts")
	}
}

// fetch GETs the URL and decodes the JSON body into result.
func fetch(client *http.Client, url string, result interface{}) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return json.Unmarshal(body, result)
}
