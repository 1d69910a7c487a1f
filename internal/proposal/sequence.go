package proposal

import (
	"maps"
	"slices"
	"strings"
)

// ProposalFields returns the proposal's field IDs: sequence proposals name
// their fields directly, so this is just the user region list in ascending
// order.
func (s *Sequence) ProposalFields() []int {
	out := append([]int{}, s.SkyUserRegions...)
	slices.Sort(out)
	return out
}

// Encode flattens the proposal into its wire record. Three index domains
// advance independently: top-level sub-sequences, master sub-sequences, and
// the nested sub-sequences flattened across all masters. The record's PropID
// is left zero; the publisher assigns it.
func (s *Sequence) Encode() (*SequenceRecord, error) {
	rec := &SequenceRecord{Name: s.Name}
	if rec.Name == "" {
		rec.Name = "None"
	}

	rec.TwilightBoundary = s.SkyNightlyBounds.TwilightBoundary
	rec.DeltaLST = s.SkyNightlyBounds.DeltaLST
	rec.DecWindow = s.SkyExclusion.DecWindow
	rec.MaxAirmass = s.SkyConstraints.MaxAirmass
	rec.MaxCloud = s.SkyConstraints.MaxCloud
	rec.MinDistanceMoon = s.SkyConstraints.MinDistanceMoon
	rec.ExcludePlanets = s.SkyConstraints.ExcludePlanets

	rec.NumUserRegions = len(s.SkyUserRegions)
	if err := checkCapacity("user regions", rec.NumUserRegions, MaxUserRegions); err != nil {
		return nil, err
	}
	for i, region := range s.SkyUserRegions {
		rec.UserRegionIDs[i] = region
	}

	if err := s.encodeSubSequences(rec); err != nil {
		return nil, err
	}
	if err := s.encodeMasterSubSequences(rec); err != nil {
		return nil, err
	}
	if err := s.encodeFilters(rec); err != nil {
		return nil, err
	}

	sch := s.Scheduling
	rec.MaxNumTargets = sch.MaxNumTargets
	rec.AcceptSerendipity = sch.AcceptSerendipity
	rec.AcceptConsecutiveVisits = sch.AcceptConsecutiveVisits
	rec.AirmassBonus = sch.AirmassBonus
	rec.HourAngleBonus = sch.HourAngleBonus
	rec.HourAngleMax = sch.HourAngleMax
	rec.RestartLostSequences = sch.RestartLostSequences
	rec.RestartCompleteSequences = sch.RestartCompleteSequences
	rec.MaxVisitsGoal = sch.MaxVisitsGoal

	return rec, nil
}

func (s *Sequence) encodeSubSequences(rec *SequenceRecord) error {
	rec.NumSubSequences = len(s.SubSequences)
	if err := checkCapacity("sub-sequences", rec.NumSubSequences, MaxSubSequences); err != nil {
		return err
	}
	if rec.NumSubSequences == 0 {
		return nil
	}

	names := make([]string, 0, rec.NumSubSequences)
	filters := make([]string, 0, rec.NumSubSequences)
	filterVisitIndex := 0
	for i, key := range slices.Sorted(maps.Keys(s.SubSequences)) {
		sub := s.SubSequences[key]
		names = append(names, sub.Name)
		filters = append(filters, sub.FilterString())
		rec.NumSubSequenceFilters[i] = len(sub.Filters)
		if err := checkCapacity("sub-sequence filter visits", filterVisitIndex+len(sub.VisitsPerFilter), MaxFilterVisits); err != nil {
			return err
		}
		for _, visits := range sub.VisitsPerFilter {
			rec.NumSubSequenceFilterVisits[filterVisitIndex] = visits
			filterVisitIndex++
		}
		rec.NumSubSequenceEvents[i] = sub.NumEvents
		rec.NumSubSequenceMaxMissed[i] = sub.NumMaxMissed
		rec.SubSequenceTimeIntervals[i] = sub.TimeInterval
		rec.SubSequenceTimeWindowStarts[i] = sub.TimeWindowStart
		rec.SubSequenceTimeWindowMaximums[i] = sub.TimeWindowMax
		rec.SubSequenceTimeWindowEnds[i] = sub.TimeWindowEnd
		rec.SubSequenceTimeWeights[i] = sub.TimeWeight
	}
	rec.SubSequenceNames = strings.Join(names, ",")
	rec.SubSequenceFilters = strings.Join(filters, ",")
	return nil
}

func (s *Sequence) encodeMasterSubSequences(rec *SequenceRecord) error {
	rec.NumMasterSubSequences = len(s.MasterSubSequences)
	if err := checkCapacity("master sub-sequences", rec.NumMasterSubSequences, MaxMasterSubSequences); err != nil {
		return err
	}
	if rec.NumMasterSubSequences == 0 {
		return nil
	}

	masterNames := make([]string, 0, rec.NumMasterSubSequences)
	var nestedNames []string
	var nestedFilters []string
	nestedIndex := 0
	filterVisitIndex := 0
	for i, key := range slices.Sorted(maps.Keys(s.MasterSubSequences)) {
		master := s.MasterSubSequences[key]
		masterNames = append(masterNames, master.Name)
		rec.NumNestedSubSequences[i] = len(master.SubSequences)
		rec.NumMasterSubSequenceEvents[i] = master.NumEvents
		rec.NumMasterSubSequenceMaxMissed[i] = master.NumMaxMissed
		rec.MasterSubSequenceTimeIntervals[i] = master.TimeInterval
		rec.MasterSubSequenceTimeWindowStarts[i] = master.TimeWindowStart
		rec.MasterSubSequenceTimeWindowMaximums[i] = master.TimeWindowMax
		rec.MasterSubSequenceTimeWindowEnds[i] = master.TimeWindowEnd
		rec.MasterSubSequenceTimeWeights[i] = master.TimeWeight

		for _, nestedKey := range slices.Sorted(maps.Keys(master.SubSequences)) {
			sub := master.SubSequences[nestedKey]
			if err := checkCapacity("nested sub-sequences", nestedIndex+1, MaxNestedSubSequences); err != nil {
				return err
			}
			nestedNames = append(nestedNames, sub.Name)
			nestedFilters = append(nestedFilters, sub.FilterString())
			rec.NumNestedSubSequenceFilters[nestedIndex] = len(sub.Filters)
			if err := checkCapacity("nested filter visits", filterVisitIndex+len(sub.VisitsPerFilter), MaxNestedFilterVisits); err != nil {
				return err
			}
			for _, visits := range sub.VisitsPerFilter {
				rec.NumNestedSubSequenceFilterVisits[filterVisitIndex] = visits
				filterVisitIndex++
			}
			rec.NumNestedSubSequenceEvents[nestedIndex] = sub.NumEvents
			rec.NumNestedSubSequenceMaxMissed[nestedIndex] = sub.NumMaxMissed
			rec.NestedSubSequenceTimeIntervals[nestedIndex] = sub.TimeInterval
			rec.NestedSubSequenceTimeWindowStarts[nestedIndex] = sub.TimeWindowStart
			rec.NestedSubSequenceTimeWindowMaximums[nestedIndex] = sub.TimeWindowMax
			rec.NestedSubSequenceTimeWindowEnds[nestedIndex] = sub.TimeWindowEnd
			rec.NestedSubSequenceTimeWeights[nestedIndex] = sub.TimeWeight
			nestedIndex++
		}
	}
	rec.MasterSubSequenceNames = strings.Join(masterNames, ",")
	rec.NestedSubSequenceNames = strings.Join(nestedNames, ",")
	rec.NestedSubSequenceFilters = strings.Join(nestedFilters, ",")
	return nil
}

func (s *Sequence) encodeFilters(rec *SequenceRecord) error {
	rec.NumFilters = len(s.Filters)
	if err := checkCapacity("filters", rec.NumFilters, MaxFilters); err != nil {
		return err
	}
	if rec.NumFilters == 0 {
		return nil
	}
	names := make([]string, 0, rec.NumFilters)
	expIndex := 0
	for i, key := range slices.Sorted(maps.Keys(s.Filters)) {
		f := s.Filters[key]
		names = append(names, f.Name)
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
