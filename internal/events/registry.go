package events

import "fmt"

var allowedEvents = map[string]struct{}{
	// confcomm
	"confcomm.started":    {},
	"confcomm.acquired":   {},
	"confcomm.timeout":    {},
	"confcomm.configured": {},

	// proposal
	"proposal.published":    {},
	"proposal.encode_error": {},

	// bus
	"bus.connected":    {},
	"bus.disconnected": {},

	// fields
	"fields.query": {},

	// system
	"system.startup":  {},
	"system.shutdown": {},
	"system.error":    {},
}

func Validate(event string) error {
	if _, ok := allowedEvents[event]; !ok {
		return fmt.Errorf("unknown event: %s", event)
	}
	return nil
}
