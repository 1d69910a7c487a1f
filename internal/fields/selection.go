// Package fields provides the sky-survey field database: a query composer
// building SQL predicates over field coordinates, and a Postgres-backed store
// executing them.
package fields

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoQueries is returned when a query combination has nothing to combine.
var ErrNoQueries = errors.New("fields: no queries to combine")

// columns maps selection limit types to field table columns.
var columns = map[string]string{
	"RA":  "fieldRA",
	"Dec": "fieldDec",
	"GL":  "fieldGL",
	"GB":  "fieldGB",
	"EL":  "fieldEL",
	"EB":  "fieldEB",
}

// Selector composes SQL predicates over the field table.
type Selector struct{}

// SelectRegion builds a range query for one coordinate limit type. A minimum
// above the maximum wraps through 360 degrees.
func (Selector) SelectRegion(limitType string, minLimit, maxLimit float64) string {
	column, ok := columns[limitType]
	if !ok {
		column = "field" + limitType
	}
	if minLimit <= maxLimit {
		return fmt.Sprintf("%s between %g and %g", column, minLimit, maxLimit)
	}
	return fmt.Sprintf("(%s between %g and 360 or %s between 0 and %g)", column, minLimit, column, maxLimit)
}

// GalacticRegion builds a galactic-plane band query. The band half-width
// tapers linearly from maxB at the galactic center to minB at longitude endL.
func (Selector) GalacticRegion(maxB, minB, endL float64) string {
	band := maxB - minB
	return fmt.Sprintf("abs(fieldGB) <= (%g - (%g * abs(fieldGL) / %g))", maxB, band, endL)
}

// CombineQueries joins query predicates with the given combine operators and
// wraps them into a full field-set statement. The operator list must be
// exactly one shorter than the query list.
func (Selector) CombineQueries(queries, combiners []string) (string, error) {
	if len(queries) == 0 {
		return "", ErrNoQueries
	}
	if len(combiners) != len(queries)-1 {
		return "", fmt.Errorf("fields: %d combiners cannot join %d queries", len(combiners), len(queries))
	}

	var b strings.Builder
	b.WriteString("select fieldId from field where ")
	for i, q := range queries {
		if i > 0 {
			b.WriteString(" ")
			b.WriteString(combiners[i-1])
			b.WriteString(" ")
		}
		b.WriteString(q)
	}
	return b.String(), nil
}
