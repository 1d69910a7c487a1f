// Package bus abstracts the publish/subscribe channel that carries
// configuration samples between the configuration authority and schedconf.
//
// The contract is deliberately narrow: a subscription caches the latest
// published sample for its topic, and PollLatest copies that sample into the
// caller's buffer, reporting a return code. The bus applies no timeout and no
// novelty detection; callers distinguish real data from defaults with their
// own validity predicates.
package bus

// Return codes reported by Subscription.PollLatest.
const (
	// CodeOK means the buffer was updated with the latest available sample,
	// possibly the same sample as a previous poll.
	CodeOK = 0
	// CodeNoData means nothing has been published on the topic yet. The
	// caller's buffer is left zero-valued.
	CodeNoData = -100
)

// Subscription is a handle to one subscribed topic.
type Subscription interface {
	// PollLatest copies the latest sample for the topic into sample, which
	// must be a pointer to a JSON-decodable struct. Returns CodeOK or
	// CodeNoData. PollLatest returns promptly; it never blocks for new data.
	PollLatest(sample any) int
}

// Transport is a connected pub/sub channel.
type Transport interface {
	// Subscribe registers interest in a topic and returns its handle.
	// Subscribing twice to the same topic returns the same handle.
	Subscribe(topic string) (Subscription, error)

	// Publish sends a sample on a topic, replacing any previously published
	// sample as the topic's latest.
	Publish(topic string, sample any) error

	// Close releases the connection.
	Close()
}
