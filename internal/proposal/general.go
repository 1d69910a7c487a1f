package proposal

import (
	"maps"
	"slices"
	"strings"
)

// FieldSelector composes queries over the field database. Implemented by
// fields.Selector; tests substitute stubs.
type FieldSelector interface {
	// SelectRegion builds a min/max range query for one coordinate limit type.
	SelectRegion(limitType string, minLimit, maxLimit float64) string
	// GalacticRegion builds a galactic-plane band query tapering from maxB at
	// the galactic center to minB at longitude endL.
	GalacticRegion(maxB, minB, endL float64) string
	// CombineQueries joins queries with the given combine operators. Requires
	// len(combiners) == len(queries)-1.
	CombineQueries(queries, combiners []string) (string, error)
}

// FieldDatabase executes a composed query and returns the matching field IDs.
type FieldDatabase interface {
	GetFieldSet(query string) ([]int, error)
}

// regionCuts normalizes both sky region forms into one ordered selection list
// plus one combine-operator list.
//
// For the time-range-indexed form, each mapping group contributes its
// selections in index order, then the group's explicit combiner when the
// combiner list reaches that group, then an implicit "or" joining it to the
// next group. The "or" models "any of several cuts active for a sub-interval"
// without the author spelling out every combiner.
func (g *General) regionCuts() ([]Selection, []string) {
	var cuts []Selection
	var combine []string

	region := g.SkyRegion
	if len(region.SelectionMapping) > 0 {
		groups := slices.Sorted(maps.Keys(region.SelectionMapping))
		numGroups := len(groups)
		for _, key := range groups {
			for _, index := range region.SelectionMapping[key].Indexes {
				cuts = append(cuts, region.Selections[index])
			}
			if key < len(region.Combiners) {
				combine = append(combine, region.Combiners[key])
			}
			if key < numGroups-1 {
				combine = append(combine, "or")
			}
		}
		return cuts, combine
	}

	for _, key := range slices.Sorted(maps.Keys(region.Selections)) {
		cuts = append(cuts, region.Selections[key])
	}
	combine = append(combine, region.Combiners...)
	return cuts, combine
}

// ProposalFields returns the proposal's candidate field IDs: one query per
// normalized region selection, combined and executed against the field
// database, minus the fields matched by a galactic-plane exclusion when one
// is configured. The result is ascending and de-duplicated.
func (g *General) ProposalFields(fd FieldDatabase, fs FieldSelector) ([]int, error) {
	cuts, combine := g.regionCuts()

	queries := make([]string, 0, len(cuts))
	for _, cut := range cuts {
		if cut.LimitType == LimitTypeGalacticPlane {
			queries = append(queries, fs.GalacticRegion(cut.MaximumLimit, cut.MinimumLimit, cut.BoundsLimit))
		} else {
			queries = append(queries, fs.SelectRegion(cut.LimitType, cut.MinimumLimit, cut.MaximumLimit))
		}
	}

	// Only a galactic-plane exclusion is evaluated. Other exclusion types are
	// encoded on the wire record but do not subtract fields here.
	var exclusionQuery string
	for _, key := range slices.Sorted(maps.Keys(g.SkyExclusion.Selections)) {
		cut := g.SkyExclusion.Selections[key]
		if cut.LimitType == LimitTypeGalacticPlane {
			exclusionQuery = fs.GalacticRegion(cut.MaximumLimit, cut.MinimumLimit, cut.BoundsLimit)
		}
	}

	query, err := fs.CombineQueries(queries, combine)
	if err != nil {
		return nil, err
	}
	matched, err := fd.GetFieldSet(query)
	if err != nil {
		return nil, err
	}

	ids := make(map[int]struct{}, len(matched))
	for _, id := range matched {
		ids[id] = struct{}{}
	}

	if exclusionQuery != "" {
		equery, err := fs.CombineQueries([]string{exclusionQuery}, nil)
		if err != nil {
			return nil, err
		}
		excluded, err := fd.GetFieldSet(equery)
		if err != nil {
			return nil, err
		}
		for _, id := range excluded {
			delete(ids, id)
		}
	}

	out := make([]int, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out, nil
}

// Encode flattens the proposal into its wire record. The record's PropID is
// left zero; the publisher assigns it.
func (g *General) Encode() (*GeneralRecord, error) {
	rec := &GeneralRecord{Name: g.Name}
	if rec.Name == "" {
		rec.Name = "None"
	}

	rec.TwilightBoundary = g.SkyNightlyBounds.TwilightBoundary
	rec.DeltaLST = g.SkyNightlyBounds.DeltaLST
	rec.DecWindow = g.SkyExclusion.DecWindow
	rec.MaxAirmass = g.SkyConstraints.MaxAirmass
	rec.MaxCloud = g.SkyConstraints.MaxCloud
	rec.MinDistanceMoon = g.SkyConstraints.MinDistanceMoon
	rec.ExcludePlanets = g.SkyConstraints.ExcludePlanets

	if err := g.encodeRegion(rec); err != nil {
		return nil, err
	}
	if err := g.encodeExclusion(rec); err != nil {
		return nil, err
	}
	if err := g.encodeFilters(rec); err != nil {
		return nil, err
	}

	s := g.Scheduling
	rec.MaxNumTargets = s.MaxNumTargets
	rec.AcceptSerendipity = s.AcceptSerendipity
	rec.AcceptConsecutiveVisits = s.AcceptConsecutiveVisits
	rec.AirmassBonus = s.AirmassBonus
	rec.HourAngleBonus = s.HourAngleBonus
	rec.HourAngleMax = s.HourAngleMax
	rec.RestrictGroupedVisits = s.RestrictGroupedVisits
	rec.TimeInterval = s.TimeInterval
	rec.TimeWindowStart = s.TimeWindowStart
	rec.TimeWindowMax = s.TimeWindowMax
	rec.TimeWindowEnd = s.TimeWindowEnd
	rec.TimeWeight = s.TimeWeight
	rec.FieldRevisitLimit = s.FieldRevisitLimit

	return rec, nil
}

func (g *General) encodeRegion(rec *GeneralRecord) error {
	region := g.SkyRegion

	rec.NumRegionSelections = len(region.Selections)
	if err := checkCapacity("region selections", rec.NumRegionSelections, MaxRegionSelections); err != nil {
		return err
	}
	if rec.NumRegionSelections > 0 {
		limitTypes := make([]string, 0, rec.NumRegionSelections)
		for i, key := range slices.Sorted(maps.Keys(region.Selections)) {
			sel := region.Selections[key]
			limitTypes = append(limitTypes, sel.LimitType)
			rec.RegionMinimums[i] = sel.MinimumLimit
			rec.RegionMaximums[i] = sel.MaximumLimit
			rec.RegionBounds[i] = sel.BoundsLimit
		}
		rec.RegionTypes = strings.Join(limitTypes, ",")
	}
	rec.RegionCombiners = strings.Join(region.Combiners, ",")

	rec.NumTimeRanges = len(region.TimeRanges)
	if err := checkCapacity("time ranges", rec.NumTimeRanges, MaxTimeRanges); err != nil {
		return err
	}
	for i, key := range slices.Sorted(maps.Keys(region.TimeRanges)) {
		tr := region.TimeRanges[key]
		rec.TimeRangeStarts[i] = tr.Start
		rec.TimeRangeEnds[i] = tr.End
	}

	if len(region.SelectionMapping) > MaxTimeRanges {
		return &CapacityError{Field: "selection mapping groups", Count: len(region.SelectionMapping), Max: MaxTimeRanges}
	}
	selectionIndex := 0
	for i, key := range slices.Sorted(maps.Keys(region.SelectionMapping)) {
		mapping := region.SelectionMapping[key]
		rec.NumSelectionMappings[i] = len(mapping.Indexes)
		if err := checkCapacity("selection mappings", selectionIndex+len(mapping.Indexes), MaxSelectionMappings); err != nil {
			return err
		}
		for _, index := range mapping.Indexes {
			rec.SelectionMappings[selectionIndex] = index
			selectionIndex++
		}
	}
	return nil
}

func (g *General) encodeExclusion(rec *GeneralRecord) error {
	rec.NumExclusionSelections = len(g.SkyExclusion.Selections)
	if err := checkCapacity("exclusion selections", rec.NumExclusionSelections, MaxExclusionSelections); err != nil {
		return err
	}
	if rec.NumExclusionSelections == 0 {
		return nil
	}
	limitTypes := make([]string, 0, rec.NumExclusionSelections)
	for i, key := range slices.Sorted(maps.Keys(g.SkyExclusion.Selections)) {
		sel := g.SkyExclusion.Selections[key]
		limitTypes = append(limitTypes, sel.LimitType)
		rec.ExclusionMinimums[i] = sel.MinimumLimit
		rec.ExclusionMaximums[i] = sel.MaximumLimit
		rec.ExclusionBounds[i] = sel.BoundsLimit
	}
	rec.ExclusionTypes = strings.Join(limitTypes, ",")
	return nil
}

func (g *General) encodeFilters(rec *GeneralRecord) error {
	rec.NumFilters = len(g.Filters)
	if err := checkCapacity("filters", rec.NumFilters, MaxFilters); err != nil {
		return err
	}
	if rec.NumFilters == 0 {
		return nil
	}
	names := make([]string, 0, rec.NumFilters)
	expIndex := 0
	for i, key := range slices.Sorted(maps.Keys(g.Filters)) {
		f := g.Filters[key]
		names = append(names, f.Name)
		rec.NumVisits[i] = f.NumVisits
		rec.NumGroupedVisits[i] = f.NumGroupedVisits
		rec.MaxGroupedVisits[i] = f.MaxGroupedVisits
		rec.BrightLimit[i] = f.BrightLimit
		rec.DarkLimit[i] = f.DarkLimit
		rec.MaxSeeing[i] = f.MaxSeeing
		rec.NumFilterExposures[i] = len(f.Exposures)
		if err := checkCapacity("exposures", expIndex+len(f.Exposures), MaxExposures); err != nil {
			return err
		}
		for _, exposure := range f.Exposures {
			rec.Exposures[expIndex] = exposure
			expIndex++
		}
	}
	rec.FilterNames = strings.Join(names, ",")
	return nil
}
