package relay

import (
	"log"
)

// Relay is the process-wide message relay. Construct it with New, hand it to
// every collaborator that injects broadcasts, and call Shutdown on exit.
type Relay struct {
	registry *Registry
}

// New creates a relay with an empty registry.
func New() *Relay {
	return &Relay{
		registry: NewRegistry(),
	}
}

// Register stores the transport connection under a fresh id and sends the
// connection greeting. It returns the Connection whose ID the transport must
// use for HandleFrame and Disconnect.
func (r *Relay) Register(conn Conn) *Connection {
	c := r.registry.Add(conn)

	log.Printf("[RELAY] client %s connected from %s (total: %d)", c.ID, c.RemoteAddr, r.registry.Count())

	r.sendTo(c, TypeConnection, greeting{Message: "Connected", ClientID: c.ID}, "")
	return c
}

// Disconnect removes a connection explicitly, on transport close. It is
// idempotent; disconnecting an id that was already evicted is a no-op.
func (r *Relay) Disconnect(id string) {
	c, ok := r.registry.Get(id)
	if !ok {
		return
	}

	c.advance(stateClosed)
	r.registry.Remove(id)
	c.conn.Close()

	log.Printf("[RELAY] client %s disconnected (total: %d)", id, r.registry.Count())
}

// Shutdown closes every connection and empties the registry.
func (r *Relay) Shutdown() {
	closed := 0
	r.registry.ForEach(func(c *Connection) {
		c.advance(stateClosed)
		r.registry.Remove(c.ID)
		c.conn.Close()
		closed++
	})

	if closed > 0 {
		log.Printf("[RELAY] shutdown: closed %d connections", closed)
	}
}

// Count returns the number of registered connections.
func (r *Relay) Count() int {
	return r.registry.Count()
}

// Registry exposes the connection registry to the transport layer and tests.
func (r *Relay) Registry() *Registry {
	return r.registry
}

// Server-initiated outbound API. These are the entry points the HTTP layer
// uses to inject state changes without a client connection of its own; each
// results in a broadcast to every connection, with no source id.

// SendTable broadcasts a table height update.
func (r *Relay) SendTable(value float64) int {
	return r.BroadcastAll(TypeTableUpdate, TableUpdate{Table: &value})
}

// SendSpeed broadcasts a conveyor speed update. The value is validated
// against the same bounds as client speed updates.
func (r *Relay) SendSpeed(value float64) (int, error) {
	if err := validateSpeed(value); err != nil {
		return 0, err
	}
	return r.BroadcastAll(TypeSpeedUpdate, SpeedUpdate{Speed: &value}), nil
}

// SendGameStart broadcasts a game start or stop.
func (r *Relay) SendGameStart(started bool) int {
	return r.BroadcastAll(TypeGameStartUpdate, GameStartUpdate{IsGameStarted: &started})
}

// SendProducts broadcasts the product type placed on the table.
func (r *Relay) SendProducts(productType string) int {
	return r.BroadcastAll(TypeProductUpdate, ProductUpdate{ProductType: productType})
}

// SendSortedObjects broadcasts an object counted as sorted.
func (r *Relay) SendSortedObjects(objectType string) int {
	return r.BroadcastAll(TypeSortedObject, ObjectUpdate{ObjectType: objectType})
}

// SendUnsortedObjects broadcasts an object counted as unsorted.
func (r *Relay) SendUnsortedObjects(objectType string) int {
	return r.BroadcastAll(TypeUnsortedObj, ObjectUpdate{ObjectType: objectType})
}

// SendErrors broadcasts the session error count, which must be non-negative.
func (r *Relay) SendErrors(count int) (int, error) {
	if err := validateErrorCount(count); err != nil {
		return 0, err
	}
	return r.BroadcastAll(TypeErrorsUpdate, ErrorsUpdate{ErrorCount: count}), nil
}

// SendPickupFromZone broadcasts a pickup from one of the colored zones.
func (r *Relay) SendPickupFromZone(zone string) (int, error) {
	if err := validatePickupZone(zone); err != nil {
		return 0, err
	}
	return r.BroadcastAll(TypeZonePickup, ZonePickup{Zone: zone}), nil
}
