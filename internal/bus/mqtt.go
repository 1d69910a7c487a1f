package bus

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// MQTTTransport carries configuration samples over an MQTT broker. Samples
// are published retained so a late subscriber still observes the latest one,
// which is what gives PollLatest its "latest available sample" semantics.
type MQTTTransport struct {
	client paho.Client

	mu   sync.Mutex
	subs map[string]*mqttSubscription
}

// BrokerURL returns the MQTT broker URL from env or default.
func BrokerURL() string {
	if url := os.Getenv("MQTT_URL"); url != "" {
		return url
	}
	return "tcp://localhost:1883"
}

// ConnectMQTT connects to the broker and returns the transport.
func ConnectMQTT(brokerURL string) (*MQTTTransport, error) {
	if brokerURL == "" {
		brokerURL = BrokerURL()
	}
	opts := paho.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID("schedconf-" + uuid.NewString()[:8]).
		SetAutoReconnect(true).
		SetConnectRetryInterval(5 * time.Second).
		SetKeepAlive(30 * time.Second)

	t := &MQTTTransport{
		client: paho.NewClient(opts),
		subs:   make(map[string]*mqttSubscription),
	}

	token := t.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, &ConnectTimeoutError{URL: brokerURL}
	}
	if err := token.Error(); err != nil {
		return nil, err
	}
	return t, nil
}

// Subscribe registers a handler that keeps the latest payload for the topic.
// Idempotent per topic.
func (t *MQTTTransport) Subscribe(topic string) (Subscription, error) {
	t.mu.Lock()
	if sub, ok := t.subs[topic]; ok {
		t.mu.Unlock()
		return sub, nil
	}
	t.mu.Unlock()

	sub := &mqttSubscription{topic: topic}
	handler := func(client paho.Client, msg paho.Message) {
		sub.store(msg.Payload())
	}

	token := t.client.Subscribe(topic, 1, handler)
	if !token.WaitTimeout(10 * time.Second) {
		return nil, &SubscribeTimeoutError{Topic: topic}
	}
	if err := token.Error(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.subs[topic] = sub
	t.mu.Unlock()
	return sub, nil
}

// Publish sends the sample as retained JSON on the topic.
func (t *MQTTTransport) Publish(topic string, sample any) error {
	payload, err := json.Marshal(sample)
	if err != nil {
		return err
	}
	token := t.client.Publish(topic, 1, true, payload)
	if !token.WaitTimeout(10 * time.Second) {
		return &PublishTimeoutError{Topic: topic}
	}
	return token.Error()
}

// Close disconnects from the broker.
func (t *MQTTTransport) Close() {
	t.client.Disconnect(1000)
}

type mqttSubscription struct {
	topic string

	mu     sync.RWMutex
	latest []byte
}

func (s *mqttSubscription) store(payload []byte) {
	s.mu.Lock()
	s.latest = append(s.latest[:0], payload...)
	s.mu.Unlock()
}

func (s *mqttSubscription) PollLatest(sample any) int {
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

// ConnectTimeoutError indicates connection to the broker timed out.
type ConnectTimeoutError struct {
	URL string
}

func (e *ConnectTimeoutError) Error() string {
	return "bus: connect timeout: " + e.URL
}

// SubscribeTimeoutError indicates subscription timed out.
type SubscribeTimeoutError struct {
	Topic string
}

func (e *SubscribeTimeoutError) Error() string {
	return "bus: subscribe timeout: " + e.Topic
}

// PublishTimeoutError indicates a publish was not acknowledged in time.
type PublishTimeoutError struct {
	Topic string
}

func (e *PublishTimeoutError) Error() string {
	return "bus: publish timeout: " + e.Topic
}
