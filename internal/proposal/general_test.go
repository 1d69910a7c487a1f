package proposal

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSelector records the combiners it was asked to join with and produces
// recognizable query strings.
type stubSelector struct {
	combined [][]string
}

func (s *stubSelector) SelectRegion(limitType string, minLimit, maxLimit float64) string {
	return fmt.Sprintf("range(%s,%g,%g)", limitType, minLimit, maxLimit)
}

func (s *stubSelector) GalacticRegion(maxB, minB, endL float64) string {
	return fmt.Sprintf("gp(%g,%g,%g)", maxB, minB, endL)
}

func (s *stubSelector) CombineQueries(queries, combiners []string) (string, error) {
	if len(combiners) != len(queries)-1 {
		return "", fmt.Errorf("%d combiners cannot join %d queries", len(combiners), len(queries))
	}
	s.combined = append(s.combined, append([]string{}, combiners...))
	var parts []string
	for i, q := range queries {
		if i > 0 {
			parts = append(parts, combiners[i-1])
		}
		parts = append(parts, q)
	}
	return strings.Join(parts, " "), nil
}

// stubDatabase maps composed queries to field ID results.
type stubDatabase struct {
	results map[string][]int
	queries []string
}

func (d *stubDatabase) GetFieldSet(query string) ([]int, error) {
	d.queries = append(d.queries, query)
	ids, ok := d.results[query]
	if !ok {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	return ids, nil
}

func testGeneral() *General {
	return &General{
		Name: "WideFast",
		SkyRegion: SkyRegion{
			Selections: map[int]Selection{
				0: {LimitType: "RA", MinimumLimit: 0, MaximumLimit: 10},
				1: {LimitType: "Dec", MinimumLimit: -60, MaximumLimit: -30},
			},
			Combiners: []string{"and"},
		},
		SkyExclusion: SkyExclusion{
			DecWindow: 90,
			Selections: map[int]Selection{
				0: {LimitType: "GP", MinimumLimit: 0, MaximumLimit: 10, BoundsLimit: 90},
			},
		},
		SkyNightlyBounds: SkyNightlyBounds{TwilightBoundary: -12, DeltaLST: 60},
		SkyConstraints:   SkyConstraints{MaxAirmass: 2.5, MaxCloud: 0.7, MinDistanceMoon: 30, ExcludePlanets: true},
		Filters: map[string]GeneralFilter{
			"g": {Name: "g", NumVisits: 10, NumGroupedVisits: 2, MaxGroupedVisits: 2,
				BrightLimit: 21, DarkLimit: 30, MaxSeeing: 1.5, Exposures: []float64{15, 15}},
			"r": {Name: "r", NumVisits: 20, NumGroupedVisits: 2, MaxGroupedVisits: 2,
				BrightLimit: 20, DarkLimit: 30, MaxSeeing: 2, Exposures: []float64{15, 15, 15}},
		},
		Scheduling: GeneralScheduling{
			MaxNumTargets: 100, AcceptSerendipity: true, AcceptConsecutiveVisits: true,
			AirmassBonus: 0.5, HourAngleBonus: 0.3, HourAngleMax: 6,
			TimeInterval: 0, TimeWeight: 1, FieldRevisitLimit: 2,
		},
	}
}

func TestGeneralEncode(t *testing.T) {
	g := testGeneral()

	rec, err := g.Encode()
	require.NoError(t, err)

	assert.Equal(t, "WideFast", rec.Name)
	assert.Equal(t, 0, rec.PropID)

	assert.Equal(t, -12.0, rec.TwilightBoundary)
	assert.Equal(t, 90.0, rec.DecWindow)
	assert.True(t, rec.ExcludePlanets)

	assert.Equal(t, 2, rec.NumRegionSelections)
	assert.Equal(t, "RA,Dec", rec.RegionTypes)
	assert.Equal(t, 0.0, rec.RegionMinimums[0])
	assert.Equal(t, 10.0, rec.RegionMaximums[0])
	assert.Equal(t, -60.0, rec.RegionMinimums[1])
	assert.Equal(t, -30.0, rec.RegionMaximums[1])
	assert.Equal(t, "and", rec.RegionCombiners)

	assert.Equal(t, 1, rec.NumExclusionSelections)
	assert.Equal(t, "GP", rec.ExclusionTypes)
	assert.Equal(t, 90.0, rec.ExclusionBounds[0])

	// Filter arrays are positionally aligned with the joined name string.
	assert.Equal(t, 2, rec.NumFilters)
	names := strings.Split(rec.FilterNames, ",")
	require.Len(t, names, rec.NumFilters)
	assert.Equal(t, []string{"g", "r"}, names)
	assert.Equal(t, 10, rec.NumVisits[0])
	assert.Equal(t, 20, rec.NumVisits[1])
	assert.Equal(t, 21.0, rec.BrightLimit[0])
	assert.Equal(t, 20.0, rec.BrightLimit[1])

	// Exposures flatten into one running array across filters.
	assert.Equal(t, 2, rec.NumFilterExposures[0])
	assert.Equal(t, 3, rec.NumFilterExposures[1])
	assert.Equal(t, []float64{15, 15, 15, 15, 15}, rec.Exposures[:5])

	assert.Equal(t, 100, rec.MaxNumTargets)
	assert.Equal(t, 2, rec.FieldRevisitLimit)
}

func TestGeneralEncodeTimeRanges(t *testing.T) {
	g := testGeneral()
	g.SkyRegion.TimeRanges = map[int]TimeRange{
		0: {Start: 0, End: 1825},
		1: {Start: 1826, End: 3650},
	}
	g.SkyRegion.SelectionMapping = map[int]SelectionList{
		0: {Indexes: []int{0}},
		1: {Indexes: []int{0, 1}},
	}

	rec, err := g.Encode()
	require.NoError(t, err)

	assert.Equal(t, 2, rec.NumTimeRanges)
	assert.Equal(t, 0, rec.TimeRangeStarts[0])
	assert.Equal(t, 1825, rec.TimeRangeEnds[0])
	assert.Equal(t, 1826, rec.TimeRangeStarts[1])

	// Per time range: its own index count, plus a running global index array.
	assert.Equal(t, 1, rec.NumSelectionMappings[0])
	assert.Equal(t, 2, rec.NumSelectionMappings[1])
	assert.Equal(t, 0, rec.SelectionMappings[0])
	assert.Equal(t, 0, rec.SelectionMappings[1])
	assert.Equal(t, 1, rec.SelectionMappings[2])
}

func TestGeneralEncodeEmptyName(t *testing.T) {
	g := &General{}

	rec, err := g.Encode()
	require.NoError(t, err)
	assert.Equal(t, "None", rec.Name)
	assert.Equal(t, 0, rec.NumFilters)
	assert.Equal(t, 0, rec.NumRegionSelections)
	assert.Equal(t, "", rec.FilterNames)
}

func TestGeneralEncodeCapacity(t *testing.T) {
	g := testGeneral()
	g.SkyRegion.Selections = make(map[int]Selection)
	for i := 0; i < MaxRegionSelections+1; i++ {
		g.SkyRegion.Selections[i] = Selection{LimitType: "RA"}
	}

	_, err := g.Encode()
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, MaxRegionSelections+1, capErr.Count)
}

func TestProposalFieldsFlat(t *testing.T) {
	g := &General{
		SkyRegion: SkyRegion{
			Selections: map[int]Selection{
				0: {LimitType: "RA", MinimumLimit: 0, MaximumLimit: 10},
			},
		},
	}
	fs := &stubSelector{}
	fd := &stubDatabase{results: map[string][]int{
		"range(RA,0,10)": {3, 1, 2, 3},
	}}

	ids, err := g.ProposalFields(fd, fs)
	require.NoError(t, err)

	// Ascending and de-duplicated.
	assert.Equal(t, []int{1, 2, 3}, ids)
}

func TestProposalFieldsCombiners(t *testing.T) {
	g := testGeneral()
	fs := &stubSelector{}
	fd := &stubDatabase{results: map[string][]int{
		"range(RA,0,10) and range(Dec,-60,-30)": {5, 6},
		"gp(10,0,90)":                           {6},
	}}

	ids, err := g.ProposalFields(fd, fs)
	require.NoError(t, err)

	// The GP exclusion subtracts its field set from the candidates.
	assert.Equal(t, []int{5}, ids)
	require.Len(t, fs.combined, 2)
	assert.Equal(t, []string{"and"}, fs.combined[0])
	assert.Empty(t, fs.combined[1])
}

func TestProposalFieldsTimeRangeImplicitOr(t *testing.T) {
	g := &General{
		SkyRegion: SkyRegion{
			Selections: map[int]Selection{
				0: {LimitType: "RA", MinimumLimit: 0, MaximumLimit: 10},
				1: {LimitType: "Dec", MinimumLimit: -60, MaximumLimit: -30},
			},
			SelectionMapping: map[int]SelectionList{
				0: {Indexes: []int{0}},
				1: {Indexes: []int{1}},
			},
		},
	}
	fs := &stubSelector{}
	fd := &stubDatabase{results: map[string][]int{
		"range(RA,0,10) or range(Dec,-60,-30)": {7, 8},
	}}

	ids, err := g.ProposalFields(fd, fs)
	require.NoError(t, err)

	assert.Equal(t, []int{7, 8}, ids)
	require.Len(t, fs.combined, 1)
	assert.Equal(t, []string{"or"}, fs.combined[0])
}

func TestProposalFieldsMappingExplicitCombiner(t *testing.T) {
	g := &General{
		SkyRegion: SkyRegion{
			Selections: map[int]Selection{
				0: {LimitType: "RA", MinimumLimit: 0, MaximumLimit: 10},
				1: {LimitType: "Dec", MinimumLimit: -60, MaximumLimit: -30},
			},
			Combiners: []string{"and"},
			SelectionMapping: map[int]SelectionList{
				0: {Indexes: []int{0, 1}},
			},
		},
	}
	fs := &stubSelector{}
	fd := &stubDatabase{results: map[string][]int{
		"range(RA,0,10) and range(Dec,-60,-30)": {9, 11},
	}}

	ids, err := g.ProposalFields(fd, fs)
	require.NoError(t, err)

	// A mapping group with an explicit combiner keeps it; a single group gets
	// no implicit "or".
	assert.Equal(t, []int{9, 11}, ids)
	require.Len(t, fs.combined, 1)
	assert.Equal(t, []string{"and"}, fs.combined[0])
}

func TestProposalFieldsMappingMixedCombiners(t *testing.T) {
	g := &General{
		SkyRegion: SkyRegion{
			Selections: map[int]Selection{
				0: {LimitType: "RA", MinimumLimit: 0, MaximumLimit: 10},
				1: {LimitType: "Dec", MinimumLimit: -60, MaximumLimit: -30},
			},
			Combiners: []string{"and"},
			SelectionMapping: map[int]SelectionList{
				0: {Indexes: []int{0, 1}},
				1: {Indexes: []int{1}},
			},
		},
	}
	fs := &stubSelector{}
	fd := &stubDatabase{results: map[string][]int{
		"range(RA,0,10) and range(Dec,-60,-30) or range(Dec,-60,-30)": {12},
	}}

	ids, err := g.ProposalFields(fd, fs)
	require.NoError(t, err)

	// The first group's explicit "and" comes before the implicit "or"
	// joining it to the next group.
	assert.Equal(t, []int{12}, ids)
	require.Len(t, fs.combined, 1)
	assert.Equal(t, []string{"and", "or"}, fs.combined[0])
}

func TestProposalFieldsGalacticSelection(t *testing.T) {
	g := &General{
		SkyRegion: SkyRegion{
			Selections: map[int]Selection{
				0: {LimitType: "GP", MinimumLimit: 0, MaximumLimit: 10, BoundsLimit: 90},
			},
		},
	}
	fs := &stubSelector{}
	fd := &stubDatabase{results: map[string][]int{
		"gp(10,0,90)": {4, 2},
	}}

	ids, err := g.ProposalFields(fd, fs)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, ids)
}

func TestProposalFieldsNonGalacticExclusionIgnored(t *testing.T) {
	g := &General{
		SkyRegion: SkyRegion{
			Selections: map[int]Selection{
				0: {LimitType: "RA", MinimumLimit: 0, MaximumLimit: 10},
			},
		},
		SkyExclusion: SkyExclusion{
			Selections: map[int]Selection{
				0: {LimitType: "Dec", MinimumLimit: -90, MaximumLimit: -61},
			},
		},
	}
	fs := &stubSelector{}
	fd := &stubDatabase{results: map[string][]int{
		"range(RA,0,10)": {1, 2},
	}}

	ids, err := g.ProposalFields(fd, fs)
	require.NoError(t, err)

	// A Dec exclusion is carried in the record but never subtracts fields.
	assert.Equal(t, []int{1, 2}, ids)
	assert.Len(t, fd.queries, 1)
}
