package confcomm

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/obs-scheduling/schedconf/internal/bus"
	"github.com/obs-scheduling/schedconf/internal/events"
)

// DefaultTimeout bounds how long an acquisition waits for a valid sample.
const DefaultTimeout = 180 * time.Second

// TimeoutError reports that no valid sample was observed on a topic within
// the timeout window. It is fatal to the whole acquisition sequence.
type TimeoutError struct {
	Topic   string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("confcomm: no valid sample on %q within %s", e.Topic, e.Timeout)
}

// Source yields one valid sample per topic.
type Source interface {
	// Acquire blocks until sample holds a valid snapshot of the topic, or
	// fails with *TimeoutError when the source's deadline passes first.
	Acquire(topic string, sample Sample) error
}

// LiveSource acquires samples from the bus. Each Acquire subscribes to the
// topic and polls the latest sample until the bus reports success and the
// sample's validity predicate holds. Polls are not rate-limited; the
// wall-clock timeout is the only bound.
type LiveSource struct {
	bus     bus.Transport
	timeout time.Duration
}

// NewLiveSource wraps a connected transport. A non-positive timeout selects
// DefaultTimeout.
func NewLiveSource(t bus.Transport, timeout time.Duration) *LiveSource {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &LiveSource{bus: t, timeout: timeout}
}

func (s *LiveSource) Acquire(topic string, sample Sample) error {
	sub, err := s.bus.Subscribe(topic)
	if err != nil {
		return err
	}

	start := time.Now()
	for {
		code := sub.PollLatest(sample)
		if code == bus.CodeOK && sample.Valid() {
			events.Emit("info", "confcomm.acquired", "", map[string]interface{}{
				"topic":      topic,
				"elapsed_ms": time.Since(start).Milliseconds(),
			})
			return nil
		}
		if time.Since(start) > s.timeout {
			events.Emit("error", "confcomm.timeout", "no configuration received", map[string]interface{}{
				"topic":      topic,
				"timeout_ms": s.timeout.Milliseconds(),
			})
			return &TimeoutError{Topic: topic, Timeout: s.timeout}
		}
	}
}

// SyntheticSource returns canned samples immediately, for running without a
// configuration authority. Topics without a canned sample keep their zero
// values.
type SyntheticSource struct {
	Samples map[string]any
}

func (s *SyntheticSource) Acquire(topic string, sample Sample) error {
	canned, ok := s.Samples[topic]
	if !ok {
		return nil
	}
	payload, err := json.Marshal(canned)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, sample)
}
