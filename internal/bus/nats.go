package bus

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// NATSTransport carries configuration samples over core NATS. NATS does not
// retain messages, so each subscription caches the latest payload it has seen
// since subscribing; the authority republishes its configuration periodically
// until the topology handshake completes.
type NATSTransport struct {
	nc *nats.Conn

	mu   sync.Mutex
	subs map[string]*natsSubscription
}

// NATSURL returns the NATS server URL from env or default.
func NATSURL() string {
	if url := os.Getenv("NATS_URL"); url != "" {
		return url
	}
	return "nats://127.0.0.1:4222"
}

// ConnectNATS connects to the server and returns the transport.
func ConnectNATS(url string) (*NATSTransport, error) {
	if url == "" {
		url = NATSURL()
	}
	nc, err := nats.Connect(url,
		nats.Name("schedconf-"+uuid.NewString()[:8]),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &NATSTransport{
		nc:   nc,
		subs: make(map[string]*natsSubscription),
	}, nil
}

// Subscribe registers a handler that keeps the latest payload for the topic.
// Idempotent per topic. MQTT-style topic separators are mapped to NATS
// subject separators.
func (t *NATSTransport) Subscribe(topic string) (Subscription, error) {
	t.mu.Lock()
	if sub, ok := t.subs[topic]; ok {
		t.mu.Unlock()
		return sub, nil
	}
	t.mu.Unlock()

	sub := &natsSubscription{topic: topic}
	if _, err := t.nc.Subscribe(subject(topic), func(msg *nats.Msg) {
		sub.store(msg.Data)
	}); err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.subs[topic] = sub
	t.mu.Unlock()
	return sub, nil
}

// Publish sends the sample as JSON on the topic's subject.
func (t *NATSTransport) Publish(topic string, sample any) error {
	payload, err := json.Marshal(sample)
	if err != nil {
		return err
	}
	return t.nc.Publish(subject(topic), payload)
}

// Close drains and releases the connection.
func (t *NATSTransport) Close() {
	_ = t.nc.Drain()
}

func subject(topic string) string {
	return strings.ReplaceAll(topic, "/", ".")
}

type natsSubscription struct {
	topic string

	mu     sync.RWMutex
	latest []byte
}

func (s *natsSubscription) store(payload []byte) {
	s.mu.Lock()
	s.latest = append(s.latest[:0], payload...)
	s.mu.Unlock()
}

func (s *natsSubscription) PollLatest(sample any) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return CodeNoData
	}
	if err := json.Unmarshal(s.latest, sample); err != nil {
		return CodeNoData
	}
	return CodeOK
}
