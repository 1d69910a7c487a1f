package proposal

import "fmt"

// Wire record capacities. The channel's record layout is positional: parallel
// fixed-size arrays indexed by entry, joined strings for categorical
// attributes, and count fields as the sole source of truth for how many
// leading slots are valid.
const (
	MaxRegionSelections    = 20
	MaxTimeRanges          = 20
	MaxSelectionMappings   = 100
	MaxExclusionSelections = 20
	MaxFilters             = 10
	MaxExposures           = 50
	MaxUserRegions         = 2000
	MaxSubSequences        = 20
	MaxFilterVisits        = 100
	MaxMasterSubSequences  = 20
	MaxNestedSubSequences  = 100
	MaxNestedFilterVisits  = 500
)

// CapacityError reports a proposal that does not fit its wire record.
type CapacityError struct {
	Field string
	Count int
	Max   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("proposal: %d %s exceeds record capacity %d", e.Count, e.Field, e.Max)
}

func checkCapacity(field string, count, max int) error {
	if count > max {
		return &CapacityError{Field: field, Count: count, Max: max}
	}
	return nil
}

// GeneralRecord is the flattened wire form of a General proposal.
type GeneralRecord struct {
	PropID int    `json:"propId"`
	Name   string `json:"name"`

	TwilightBoundary float64 `json:"twilightBoundary"`
	DeltaLST         float64 `json:"deltaLst"`
	DecWindow        float64 `json:"decWindow"`
	MaxAirmass       float64 `json:"maxAirmass"`
	MaxCloud         float64 `json:"maxCloud"`
	MinDistanceMoon  float64 `json:"minDistanceMoon"`
	ExcludePlanets   bool    `json:"excludePlanets"`

	NumRegionSelections int                          `json:"numRegionSelections"`
	RegionTypes         string                       `json:"regionTypes"`
	RegionMinimums      [MaxRegionSelections]float64 `json:"regionMinimums"`
	RegionMaximums      [MaxRegionSelections]float64 `json:"regionMaximums"`
	RegionBounds        [MaxRegionSelections]float64 `json:"regionBounds"`
	RegionCombiners     string                       `json:"regionCombiners"`

	NumTimeRanges        int                       `json:"numTimeRanges"`
	TimeRangeStarts      [MaxTimeRanges]int        `json:"timeRangeStarts"`
	TimeRangeEnds        [MaxTimeRanges]int        `json:"timeRangeEnds"`
	NumSelectionMappings [MaxTimeRanges]int        `json:"numSelectionMappings"`
	SelectionMappings    [MaxSelectionMappings]int `json:"selectionMappings"`

	NumExclusionSelections int                             `json:"numExclusionSelections"`
	ExclusionTypes         string                          `json:"exclusionTypes"`
	ExclusionMinimums      [MaxExclusionSelections]float64 `json:"exclusionMinimums"`
	ExclusionMaximums      [MaxExclusionSelections]float64 `json:"exclusionMaximums"`
	ExclusionBounds        [MaxExclusionSelections]float64 `json:"exclusionBounds"`

	NumFilters         int                   `json:"numFilters"`
	FilterNames        string                `json:"filterNames"`
	NumVisits          [MaxFilters]int       `json:"numVisits"`
	NumGroupedVisits   [MaxFilters]int       `json:"numGroupedVisits"`
	MaxGroupedVisits   [MaxFilters]int       `json:"maxGroupedVisits"`
	BrightLimit        [MaxFilters]float64   `json:"brightLimit"`
	DarkLimit          [MaxFilters]float64   `json:"darkLimit"`
	MaxSeeing          [MaxFilters]float64   `json:"maxSeeing"`
	NumFilterExposures [MaxFilters]int       `json:"numFilterExposures"`
	Exposures          [MaxExposures]float64 `json:"exposures"`

	MaxNumTargets           int     `json:"maxNumTargets"`
	AcceptSerendipity       bool    `json:"acceptSerendipity"`
	AcceptConsecutiveVisits bool    `json:"acceptConsecutiveVisits"`
	AirmassBonus            float64 `json:"airmassBonus"`
	HourAngleBonus          float64 `json:"hourAngleBonus"`
	HourAngleMax            float64 `json:"hourAngleMax"`
	RestrictGroupedVisits   bool    `json:"restrictGroupedVisits"`
	TimeInterval            float64 `json:"timeInterval"`
	TimeWindowStart         float64 `json:"timeWindowStart"`
	TimeWindowMax           float64 `json:"timeWindowMax"`
	TimeWindowEnd           float64 `json:"timeWindowEnd"`
	TimeWeight              float64 `json:"timeWeight"`
	FieldRevisitLimit       int     `json:"fieldRevisitLimit"`
}

// SequenceRecord is the flattened wire form of a Sequence proposal.
type SequenceRecord struct {
	PropID int    `json:"propId"`
	Name   string `json:"name"`

	TwilightBoundary float64 `json:"twilightBoundary"`
	DeltaLST         float64 `json:"deltaLst"`
	DecWindow        float64 `json:"decWindow"`
	MaxAirmass       float64 `json:"maxAirmass"`
	MaxCloud         float64 `json:"maxCloud"`
	MinDistanceMoon  float64 `json:"minDistanceMoon"`
	ExcludePlanets   bool    `json:"excludePlanets"`

	NumUserRegions int                 `json:"numUserRegions"`
	UserRegionIDs  [MaxUserRegions]int `json:"userRegionIds"`

	NumSubSequences               int                      `json:"numSubSequences"`
	SubSequenceNames              string                   `json:"subSequenceNames"`
	SubSequenceFilters            string                   `json:"subSequenceFilters"`
	NumSubSequenceFilters         [MaxSubSequences]int     `json:"numSubSequenceFilters"`
	NumSubSequenceFilterVisits    [MaxFilterVisits]int     `json:"numSubSequenceFilterVisits"`
	NumSubSequenceEvents          [MaxSubSequences]int     `json:"numSubSequenceEvents"`
	NumSubSequenceMaxMissed       [MaxSubSequences]int     `json:"numSubSequenceMaxMissed"`
	SubSequenceTimeIntervals      [MaxSubSequences]float64 `json:"subSequenceTimeIntervals"`
	SubSequenceTimeWindowStarts   [MaxSubSequences]float64 `json:"subSequenceTimeWindowStarts"`
	SubSequenceTimeWindowMaximums [MaxSubSequences]float64 `json:"subSequenceTimeWindowMaximums"`
	SubSequenceTimeWindowEnds     [MaxSubSequences]float64 `json:"subSequenceTimeWindowEnds"`
	SubSequenceTimeWeights        [MaxSubSequences]float64 `json:"subSequenceTimeWeights"`

	NumMasterSubSequences               int                            `json:"numMasterSubSequences"`
	MasterSubSequenceNames              string                         `json:"masterSubSequenceNames"`
	NumNestedSubSequences               [MaxMasterSubSequences]int     `json:"numNestedSubSequences"`
	NumMasterSubSequenceEvents          [MaxMasterSubSequences]int     `json:"numMasterSubSequenceEvents"`
	NumMasterSubSequenceMaxMissed       [MaxMasterSubSequences]int     `json:"numMasterSubSequenceMaxMissed"`
	MasterSubSequenceTimeIntervals      [MaxMasterSubSequences]float64 `json:"masterSubSequenceTimeIntervals"`
	MasterSubSequenceTimeWindowStarts   [MaxMasterSubSequences]float64 `json:"masterSubSequenceTimeWindowStarts"`
	MasterSubSequenceTimeWindowMaximums [MaxMasterSubSequences]float64 `json:"masterSubSequenceTimeWindowMaximums"`
	MasterSubSequenceTimeWindowEnds     [MaxMasterSubSequences]float64 `json:"masterSubSequenceTimeWindowEnds"`
	MasterSubSequenceTimeWeights        [MaxMasterSubSequences]float64 `json:"masterSubSequenceTimeWeights"`

	NestedSubSequenceNames              string                         `json:"nestedSubSequenceNames"`
	NestedSubSequenceFilters            string                         `json:"nestedSubSequenceFilters"`
	NumNestedSubSequenceFilters         [MaxNestedSubSequences]int     `json:"numNestedSubSequenceFilters"`
	NumNestedSubSequenceFilterVisits    [MaxNestedFilterVisits]int     `json:"numNestedSubSequenceFilterVisits"`
	NumNestedSubSequenceEvents          [MaxNestedSubSequences]int     `json:"numNestedSubSequenceEvents"`
	NumNestedSubSequenceMaxMissed       [MaxNestedSubSequences]int     `json:"numNestedSubSequenceMaxMissed"`
	NestedSubSequenceTimeIntervals      [MaxNestedSubSequences]float64 `json:"nestedSubSequenceTimeIntervals"`
	NestedSubSequenceTimeWindowStarts   [MaxNestedSubSequences]float64 `json:"nestedSubSequenceTimeWindowStarts"`
	NestedSubSequenceTimeWindowMaximums [MaxNestedSubSequences]float64 `json:"nestedSubSequenceTimeWindowMaximums"`
	NestedSubSequenceTimeWindowEnds     [MaxNestedSubSequences]float64 `json:"nestedSubSequenceTimeWindowEnds"`
	NestedSubSequenceTimeWeights        [MaxNestedSubSequences]float64 `json:"nestedSubSequenceTimeWeights"`

	NumFilters         int                   `json:"numFilters"`
	FilterNames        string                `json:"filterNames"`
	BrightLimit        [MaxFilters]float64   `json:"brightLimit"`
	DarkLimit          [MaxFilters]float64   `json:"darkLimit"`
	MaxSeeing          [MaxFilters]float64   `json:"maxSeeing"`
	NumFilterExposures [MaxFilters]int       `json:"numFilterExposures"`
	Exposures          [MaxExposures]float64 `json:"exposures"`

	MaxNumTargets            int     `json:"maxNumTargets"`
	AcceptSerendipity        bool    `json:"acceptSerendipity"`
	AcceptConsecutiveVisits  bool    `json:"acceptConsecutiveVisits"`
	AirmassBonus             float64 `json:"airmassBonus"`
	HourAngleBonus           float64 `json:"hourAngleBonus"`
	HourAngleMax             float64 `json:"hourAngleMax"`
	RestartLostSequences     bool    `json:"restartLostSequences"`
	RestartCompleteSequences bool    `json:"restartCompleteSequences"`
	MaxVisitsGoal            int     `json:"maxVisitsGoal"`
}
