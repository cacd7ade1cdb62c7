package relay

import "log"

// BroadcastAll delivers a frame to every open connection and returns the
// number of successful deliveries.
func (r *Relay) BroadcastAll(msgType string, payload any) int {
	return r.broadcast(msgType, payload, "", nil)
}

// BroadcastExcept delivers a frame to every open connection other than the
// sender. The frame carries the sender's id as source.
func (r *Relay) BroadcastExcept(senderID, msgType string, payload any) int {
	return r.broadcast(msgType, payload, senderID, func(c *Connection) bool {
		return c.ID != senderID
	})
}

// BroadcastToTopic delivers a frame to every open connection whose
// subscription set contains the topic at call time.
func (r *Relay) BroadcastToTopic(topic, msgType string, payload any) int {
	return r.broadcast(msgType, payload, "", func(c *Connection) bool {
		return c.subscribed(topic)
	})
}

// broadcast encodes one frame and writes it to every connection accepted by
// the filter. Delivery is two-phase: targets are snapshotted under the read
// lock, writes happen outside it, and any connection observed non-open or
// failing its write is removed from the registry before the call returns.
func (r *Relay) broadcast(msgType string, payload any, source string, include func(*Connection) bool) int {
	data, err := encodeFrame(msgType, payload, source)
	if err != nil {
		log.Printf("[RELAY] failed to encode %s frame: %v", msgType, err)
		return 0
	}

	delivered := 0
	for _, c := range r.registry.snapshot() {
		if include != nil && !include(c) {
			continue
		}
		if err := c.write(data); err != nil {
			r.evict(c)
			continue
		}
		delivered++
	}
	return delivered
}

// sendTo writes a single frame to one connection, evicting it on failure.
// Replies to a sender that vanished between broadcast and confirm land here
// and are dropped silently; that is expected, not an error.
func (r *Relay) sendTo(c *Connection, msgType string, payload any, source string) {
	data, err := encodeFrame(msgType, payload, source)
	if err != nil {
		log.Printf("[RELAY] failed to encode %s frame: %v", msgType, err)
		return
	}
	if err := c.write(data); err != nil {
		r.evict(c)
	}
}

// replyTo sends a frame to the connection with the given id, if it is still
// registered.
func (r *Relay) replyTo(id, msgType string, payload any) {
	if c, ok := r.registry.Get(id); ok {
		r.sendTo(c, msgType, payload, "")
	}
}

// replyError sends the uniform error frame to a single connection.
func (r *Relay) replyError(id, message string) {
	r.replyTo(id, TypeError, errorMessage{Message: message})
}

// evict drops a connection observed dead during delivery. This is the lazy
// eviction path; explicit closes go through Disconnect.
func (r *Relay) evict(c *Connection) {
	c.advance(stateClosed)
	if _, ok := r.registry.Get(c.ID); !ok {
		return
	}
	r.registry.Remove(c.ID)
	c.conn.Close()
	log.Printf("[EVICT] client %s removed after failed write (remaining: %d)", c.ID, r.registry.Count())
}
