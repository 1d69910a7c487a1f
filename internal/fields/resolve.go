package fields

import (
	"fmt"

	"github.com/obs-scheduling/schedconf/internal/events"
	"github.com/obs-scheduling/schedconf/internal/proposal"
)

// ResolveProposals resolves each general proposal's target field set through
// the field database, keyed by proposal name. The first failing proposal
// aborts the resolution.
func ResolveProposals(fd proposal.FieldDatabase, fs proposal.FieldSelector, props []proposal.General) (map[string][]int, error) {
	out := make(map[string][]int, len(props))
	for i := range props {
		ids, err := props[i].ProposalFields(fd, fs)
		if err != nil {
			return nil, fmt.Errorf("resolving fields for %q: %w", props[i].Name, err)
		}
		events.Emit("info", "fields.query", "", map[string]interface{}{
			"proposal":   props[i].Name,
			"num_fields": len(ids),
		})
		out[props[i].Name] = ids
	}
	return out, nil
}
