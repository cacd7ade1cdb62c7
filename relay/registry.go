package relay

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	errConnectionClosed = errors.New("connection closed")
)

// Registry owns the mapping from connection id to Connection. All access is
// guarded by an RWMutex so broadcasts can read while accept/close mutate.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*Connection
}

// NewRegistry creates an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]*Connection),
	}
}

// Add wraps the transport in a Connection under a fresh unique id and stores
// it. Add always succeeds.
func (r *Registry) Add(conn Conn) *Connection {
	c := newConnection(newConnectionID(), conn)

	r.mu.Lock()
	r.conns[c.ID] = c
	r.mu.Unlock()

	return c
}

// Remove deletes the connection with the given id. Removing an id that is not
// present is a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.conns, id)
	r.mu.Unlock()
}

// Get returns the connection with the given id, if present.
func (r *Registry) Get(id string) (*Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[id]
	return c, ok
}

// ForEach visits every registered connection. The visitor may call Remove,
// including for the connection it is visiting: iteration happens over a
// snapshot taken under the read lock, not over the live map.
func (r *Registry) ForEach(visit func(*Connection)) {
	for _, c := range r.snapshot() {
		visit(c)
	}
}

// Count returns the number of registered connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// snapshot copies the current connection set out from under the lock.
func (r *Registry) snapshot() []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Connection, 0, len(r.conns))
	for _, c := range r.conns {
		result = append(result, c)
	}
	return result
}

// newConnectionID generates an id unique within the process lifetime: a
// monotonic-time prefix plus a random suffix.
func newConnectionID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])
}
