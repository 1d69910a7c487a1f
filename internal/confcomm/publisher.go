package confcomm

import (
	"errors"

	"github.com/obs-scheduling/schedconf/internal/bus"
	"github.com/obs-scheduling/schedconf/internal/events"
	"github.com/obs-scheduling/schedconf/internal/sched"
)

// ErrNoProposalsConfigured is returned when a science configuration intended
// for transmission contains no active proposals.
var ErrNoProposalsConfigured = errors.New("confcomm: no proposals configured")

// Publisher encodes the active proposals and sends their wire records on the
// configuration channel.
type Publisher struct {
	bus    bus.Transport
	prefix string
}

// NewPublisher builds a publisher sending through t, with topics namespaced
// under prefix.
func NewPublisher(t bus.Transport, prefix string) *Publisher {
	return &Publisher{bus: t, prefix: prefix}
}

// PublishProposals encodes and publishes every active proposal, assigning
// sequential proposal IDs starting at 1, general proposals first. Returns
// the number of proposals published, or ErrNoProposalsConfigured when the
// science configuration is empty.
func (p *Publisher) PublishProposals(science *sched.Science) (int, error) {
	if len(science.GeneralProps) == 0 && len(science.SequenceProps) == 0 {
		return 0, ErrNoProposalsConfigured
	}

	id := 1
	for i := range science.GeneralProps {
		rec, err := science.GeneralProps[i].Encode()
		if err != nil {
			return id - 1, err
		}
		rec.PropID = id
		if err := p.bus.Publish(topicPath(p.prefix, TopicGeneralProp), rec); err != nil {
			return id - 1, err
		}
		events.Emit("info", "proposal.published", "", map[string]interface{}{
			"kind":    "general",
			"name":    rec.Name,
			"prop_id": id,
		})
		id++
	}
	for i := range science.SequenceProps {
		rec, err := science.SequenceProps[i].Encode()
		if err != nil {
			return id - 1, err
		}
		rec.PropID = id
		if err := p.bus.Publish(topicPath(p.prefix, TopicSequenceProp), rec); err != nil {
			return id - 1, err
		}
		events.Emit("info", "proposal.published", "", map[string]interface{}{
			"kind":    "sequence",
			"name":    rec.Name,
			"prop_id": id,
		})
		id++
	}
	return id - 1, nil
}
