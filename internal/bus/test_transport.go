package bus

import (
	"encoding/json"
	"sync"
)

// TestTransport is an in-memory Transport for tests. Topics are seeded with
// Set, and the transport records subscription and poll traffic so tests can
// assert which topics were touched.
type TestTransport struct {
	mu         sync.Mutex
	latest     map[string][]byte
	subs       map[string]*testSubscription
	subscribed []string
	published  []PublishedSample
}

// PublishedSample records one Publish call.
type PublishedSample struct {
	Topic   string
	Payload []byte
}

// NewTestTransport returns an empty in-memory transport.
func NewTestTransport() *TestTransport {
	return &TestTransport{
		latest: make(map[string][]byte),
		subs:   make(map[string]*testSubscription),
	}
}

// Set seeds the latest sample for a topic.
func (t *TestTransport) Set(topic string, sample any) {
	payload, err := json.Marshal(sample)
	if err != nil {
		panic(err)
	}
	t.mu.Lock()
	t.latest[topic] = payload
	t.mu.Unlock()
}

// Clear removes the latest sample for a topic, so polls report CodeNoData.
func (t *TestTransport) Clear(topic string) {
	t.mu.Lock()
	delete(t.latest, topic)
	t.mu.Unlock()
}

func (t *TestTransport) Subscribe(topic string) (Subscription, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if sub, ok := t.subs[topic]; ok {
		return sub, nil
	}
	sub := &testSubscription{parent: t, topic: topic}
	t.subs[topic] = sub
	t.subscribed = append(t.subscribed, topic)
	return sub, nil
}

func (t *TestTransport) Publish(topic string, sample any) error {
	payload, err := json.Marshal(sample)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.latest[topic] = payload
	t.published = append(t.published, PublishedSample{Topic: topic, Payload: payload})
	t.mu.Unlock()
	return nil
}

func (t *TestTransport) Close() {}

// Subscribed returns the topics subscribed to, in order.
func (t *TestTransport) Subscribed() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string{}, t.subscribed...)
}

// Published returns the samples published, in order.
func (t *TestTransport) Published() []PublishedSample {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]PublishedSample{}, t.published...)
}

// Polls returns how many times a topic's subscription was polled.
func (t *TestTransport) Polls(topic string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if sub, ok := t.subs[topic]; ok {
		return sub.polls
	}
	return 0
}

type testSubscription struct {
	parent *TestTransport
	topic  string
	polls  int
}

func (s *testSubscription) PollLatest(sample any) int {
	s.parent.mu.Lock()
	s.polls++
	payload, ok := s.parent.latest[s.topic]
	s.parent.mu.Unlock()

	if !ok {
		return CodeNoData
	}
	if err := json.Unmarshal(payload, sample); err != nil {
		return CodeNoData
	}
	return CodeOK
}
