// Package relay implements the real-time message relay at the core of the
// ws-backend server.
//
// The relay package implements:
//   - Connection registry with lazy eviction of dead peers
//   - Typed JSON message schema with per-type validation
//   - Dispatch routing from inbound frames to type handlers
//   - Three broadcast modes: all, all-but-sender, subscribers-of-topic
//   - Opt-in topic subscriptions per connection
//   - An outbound API for server-initiated state injection
//
// Architecture:
//
// A single Relay instance owns a Registry of live connections. The transport
// layer hands each accepted connection to Register, which assigns an id and
// sends the connection greeting. Inbound frames flow through HandleFrame,
// which parses the type tag, validates the payload, and invokes the matching
// handler. State-update handlers broadcast to every other connection and echo
// a "_confirmed" copy back to the sender.
//
// Message Protocol:
//
// Every frame is a JSON object carrying a "type" tag and a server-assigned
// RFC 3339 "timestamp". Relayed client events additionally carry "source",
// the id of the originating connection. Errors always have the shape
// {type: "error", message: "..."} and go only to the offending sender.
//
// Delivery Semantics:
//
// Delivery is best-effort and at-most-once. A write that fails marks the
// connection closed and removes it from the registry; the broadcast continues
// for the remaining connections. Nothing is buffered or replayed.
//
// Usage:
//
//	r := relay.New()
//	conn := r.Register(transportConn)   // greeting sent, id assigned
//	r.HandleFrame(conn.ID, frame)       // per inbound frame
//	r.SendSpeed(0.5)                    // server-initiated broadcast
//	r.Shutdown()                        // closes every connection
//
// Concurrency:
//
// The registry and each connection's subscription set are mutex-guarded, so
// HandleFrame, the outbound Send methods, Register, and Disconnect may all be
// called from different goroutines. Writes to a single connection must be
// serialized by the transport.
package relay
