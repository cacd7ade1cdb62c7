package relay

import (
	"sort"
	"sync"
	"time"
)

// Conn is the bidirectional transport underlying a Connection. The transport
// layer provides the implementation; WriteMessage must be safe for concurrent
// use and must return an error once the peer is gone.
type Conn interface {
	WriteMessage(data []byte) error
	Close() error
	RemoteAddr() string
}

// liveState tracks a connection's lifecycle. It only ever advances toward
// stateClosed; a closed connection never reopens.
type liveState int

const (
	stateOpen liveState = iota
	stateClosing
	stateClosed
)

// Connection is the relay's view of one live transport session.
type Connection struct {
	ID          string
	ConnectedAt time.Time
	RemoteAddr  string

	conn Conn

	mu            sync.Mutex
	state         liveState
	subscriptions map[string]struct{}
}

func newConnection(id string, conn Conn) *Connection {
	return &Connection{
		ID:            id,
		ConnectedAt:   time.Now(),
		RemoteAddr:    conn.RemoteAddr(),
		conn:          conn,
		subscriptions: make(map[string]struct{}),
	}
}

// open reports whether the connection is still eligible for delivery.
func (c *Connection) open() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateOpen
}

// advance moves the connection toward the given state. Moving backwards is a
// no-op, which keeps the lifecycle monotonic.
func (c *Connection) advance(s liveState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s > c.state {
		c.state = s
	}
}

// write delivers a frame if the connection is open. A failed write marks the
// connection closed; the caller is expected to evict it from the registry.
func (c *Connection) write(data []byte) error {
	if !c.open() {
		return errConnectionClosed
	}
	if err := c.conn.WriteMessage(data); err != nil {
		c.advance(stateClosed)
		return err
	}
	return nil
}

// subscribe adds each topic to the connection's subscription set and returns
// the resulting set as a sorted list.
func (c *Connection) subscribe(topics ...string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, topic := range topics {
		c.subscriptions[topic] = struct{}{}
	}
	return c.subscriptionList()
}

// unsubscribe removes each topic from the subscription set; removing a topic
// the connection never joined is a no-op.
func (c *Connection) unsubscribe(topics ...string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, topic := range topics {
		delete(c.subscriptions, topic)
	}
	return c.subscriptionList()
}

// subscribed reports whether the connection has opted into the topic.
func (c *Connection) subscribed(topic string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.subscriptions[topic]
	return ok
}

// subscriptionList returns the current set as a sorted slice. Callers must
// hold c.mu.
func (c *Connection) subscriptionList() []string {
	list := make([]string, 0, len(c.subscriptions))
	for topic := range c.subscriptions {
		list = append(list, topic)
	}
	sort.Strings(list)
	return list
}
