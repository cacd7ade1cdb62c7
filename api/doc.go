// Package api provides the HTTP surface of the relay server.
//
// The api package implements:
//   - Health and status endpoints
//   - State injection endpoints used by dashboards and scripts
//   - The /ws WebSocket upgrade endpoint
//
// Endpoints:
//
// Monitoring:
//   - GET /api/health - Liveness check
//   - GET /api/status - Current connection count
//
// State injection (each broadcasts to every connected client):
//   - POST /api/table            {"value": 72.5}
//   - POST /api/speed            {"value": 0.5}      (validated, [0.2, 1.0])
//   - POST /api/game/start       {"value": true}
//   - POST /api/products         {"type": "cube"}
//   - POST /api/objects/sorted   {"type": "cube"}
//   - POST /api/objects/unsorted {"type": "cube"}
//   - POST /api/errors           {"count": 3}        (validated, >= 0)
//   - POST /api/zones/pickup     {"zone": "red"}     (red, green or yellow)
//
// WebSocket:
//   - GET /ws - Upgrade to the relay transport
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Successful injections answer with
// the delivery count:
//
//	{"delivered": 2}
//
// Error Handling:
//
// Validation and decoding failures return HTTP 400 with a JSON body:
//
//	{"error": "speed must be between 0.2 and 1, got 1.5"}
//
// The injection endpoints never fail because of dead clients; dead
// connections are evicted during the broadcast and simply lower the
// delivery count.
package api
