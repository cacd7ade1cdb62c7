// Package mcp provides a Model Context Protocol interface to the relay.
//
// The mcp package implements:
//   - An MCP server exposing the relay's state injection operations as tools
//   - A thin HTTP proxy: every tool call becomes a REST API request
//   - Stdio and HTTP serving through the shared MCP server instance
//
// Design:
//
// The MCP layer holds no relay state of its own. Tools map one-to-one onto
// the injection endpoints of the api package, so an MCP operator and a
// dashboard POSTing JSON go through exactly the same validation and broadcast
// path. Validation failures surface as tool errors and nothing is broadcast.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
