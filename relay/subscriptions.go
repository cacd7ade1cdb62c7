package relay

// Subscribe adds the topics to the connection's subscription set and confirms
// the resulting set to the requester. An unknown id (a connection already
// evicted) is silently ignored.
func (r *Relay) Subscribe(id string, topics []string) {
	c, ok := r.registry.Get(id)
	if !ok {
		return
	}
	current := c.subscribe(topics...)
	r.sendTo(c, TypeSubscriptionConfirmed, subscriptionAck{Subscriptions: current}, "")
}

// Unsubscribe removes the topics from the connection's subscription set and
// confirms the resulting set. Removing topics the connection never joined is
// a no-op, as is an unknown id.
func (r *Relay) Unsubscribe(id string, topics []string) {
	c, ok := r.registry.Get(id)
	if !ok {
		return
	}
	current := c.unsubscribe(topics...)
	r.sendTo(c, TypeUnsubscriptionConfirmed, subscriptionAck{Subscriptions: current}, "")
}
