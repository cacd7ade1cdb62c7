// Package websocket provides the WebSocket transport for the relay server.
//
// The websocket package implements:
//   - HTTP upgrade handling via gorilla/websocket
//   - A per-connection read pump feeding inbound frames into the relay
//   - A per-connection write pump serializing all outbound writes
//   - Ping/pong keepalive with read deadlines
//   - Slow-client protection through a bounded send buffer
//
// Architecture:
//
// Each accepted connection gets a Client with a buffered send channel and two
// goroutines. The read pump reads text frames and hands them to
// relay.HandleFrame; the write pump is the only goroutine that writes to the
// underlying connection, which gives the relay its single-writer guarantee.
//
// The Client implements the relay's Conn interface. Its WriteMessage never
// blocks: if the send buffer is full or the connection is closed, it returns
// an error, which the relay's broadcast engine treats as a dead peer and
// evicts lazily.
//
// Connection Lifecycle:
//
//  1. Client connects to /ws
//  2. Connection upgraded and registered with the relay (greeting sent)
//  3. Frames flow: client events in, broadcasts and confirmations out
//  4. Read error or close triggers relay.Disconnect and pump teardown
//
// Usage:
//
//	handler := websocket.NewHandler(r, websocket.DefaultConfig())
//	mux.Handle("/ws", handler)
package websocket
