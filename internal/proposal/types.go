// Package proposal models scheduling proposals and flattens them into the
// fixed-capacity wire records the scheduler's configuration channel carries.
//
// Two proposal variants exist. General proposals (area-distribution,
// time-domain and hybrid surveys) select their target fields through sky
// region queries against the field database. Sequence proposals name their
// fields directly and add sub-sequence and master-sub-sequence cadence
// structure.
package proposal

import "strings"

// LimitTypeGalacticPlane marks a selection evaluated with the galactic-region
// query instead of a plain min/max range query.
const LimitTypeGalacticPlane = "GP"

// Selection is a single sky cut: a coordinate limit type (RA, Dec, GL, GB,
// EL, EB or GP) with minimum/maximum limits. BoundsLimit is only meaningful
// for GP cuts, where it sets the galactic longitude taper.
type Selection struct {
	LimitType    string  `yaml:"limit_type"`
	MinimumLimit float64 `yaml:"minimum_limit"`
	MaximumLimit float64 `yaml:"maximum_limit"`
	BoundsLimit  float64 `yaml:"bounds_limit"`
}

// TimeRange is a survey sub-interval, in days from survey start.
type TimeRange struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// SelectionList names the selections active for one time range, as indexes
// into the region's flat selection set.
type SelectionList struct {
	Indexes []int `yaml:"indexes"`
}

// SkyRegion selects sky area for a General proposal. It has two forms: a
// flat one (Selections plus Combiners, where len(Combiners) must be one less
// than the number of selections combined) and a time-range-indexed one
// (TimeRanges plus SelectionMapping, each time range activating one or more
// selections). Integer-keyed maps iterate in ascending key order.
type SkyRegion struct {
	Selections       map[int]Selection     `yaml:"selections"`
	Combiners        []string              `yaml:"combiners"`
	TimeRanges       map[int]TimeRange     `yaml:"time_ranges"`
	SelectionMapping map[int]SelectionList `yaml:"selection_mapping"`
}

// SkyExclusion removes sky area from a proposal. Only galactic-plane
// exclusions take part in field selection; other limit types are carried on
// the wire but not applied.
type SkyExclusion struct {
	DecWindow  float64           `yaml:"dec_window"`
	Selections map[int]Selection `yaml:"selections"`
}

// SkyNightlyBounds sets the per-night observability window.
type SkyNightlyBounds struct {
	TwilightBoundary float64 `yaml:"twilight_boundary"`
	DeltaLST         float64 `yaml:"delta_lst"`
}

// SkyConstraints sets the observing condition limits for a proposal.
type SkyConstraints struct {
	MaxAirmass      float64 `yaml:"max_airmass"`
	MaxCloud        float64 `yaml:"max_cloud"`
	MinDistanceMoon float64 `yaml:"min_distance_moon"`
	ExcludePlanets  bool    `yaml:"exclude_planets"`
}

// GeneralFilter is a band filter for a General proposal, carrying the visit
// goal counts that sequence proposals express through sub-sequences instead.
type GeneralFilter struct {
	Name             string    `yaml:"name"`
	NumVisits        int       `yaml:"num_visits"`
	NumGroupedVisits int       `yaml:"num_grouped_visits"`
	MaxGroupedVisits int       `yaml:"max_grouped_visits"`
	BrightLimit      float64   `yaml:"bright_limit"`
	DarkLimit        float64   `yaml:"dark_limit"`
	MaxSeeing        float64   `yaml:"max_seeing"`
	Exposures        []float64 `yaml:"exposures"`
}

// Filter is a band filter for a Sequence proposal.
type Filter struct {
	Name        string    `yaml:"name"`
	BrightLimit float64   `yaml:"bright_limit"`
	DarkLimit   float64   `yaml:"dark_limit"`
	MaxSeeing   float64   `yaml:"max_seeing"`
	Exposures   []float64 `yaml:"exposures"`
}

// GeneralScheduling holds the cadence parameters for a General proposal.
type GeneralScheduling struct {
	MaxNumTargets           int     `yaml:"max_num_targets"`
	AcceptSerendipity       bool    `yaml:"accept_serendipity"`
	AcceptConsecutiveVisits bool    `yaml:"accept_consecutive_visits"`
	AirmassBonus            float64 `yaml:"airmass_bonus"`
	HourAngleBonus          float64 `yaml:"hour_angle_bonus"`
	HourAngleMax            float64 `yaml:"hour_angle_max"`
	RestrictGroupedVisits   bool    `yaml:"restrict_grouped_visits"`
	TimeInterval            float64 `yaml:"time_interval"`
	TimeWindowStart         float64 `yaml:"time_window_start"`
	TimeWindowMax           float64 `yaml:"time_window_max"`
	TimeWindowEnd           float64 `yaml:"time_window_end"`
	TimeWeight              float64 `yaml:"time_weight"`
	FieldRevisitLimit       int     `yaml:"field_revisit_limit"`
}

// SequenceScheduling holds the cadence parameters for a Sequence proposal.
type SequenceScheduling struct {
	MaxNumTargets            int     `yaml:"max_num_targets"`
	AcceptSerendipity        bool    `yaml:"accept_serendipity"`
	AcceptConsecutiveVisits  bool    `yaml:"accept_consecutive_visits"`
	AirmassBonus             float64 `yaml:"airmass_bonus"`
	HourAngleBonus           float64 `yaml:"hour_angle_bonus"`
	HourAngleMax             float64 `yaml:"hour_angle_max"`
	RestartLostSequences     bool    `yaml:"restart_lost_sequences"`
	RestartCompleteSequences bool    `yaml:"restart_complete_sequences"`
	MaxVisitsGoal            int     `yaml:"max_visits_goal"`
}

// SubSequence is a repeated observation pattern: an ordered filter list with
// one visit count per filter, an event budget, and a time window.
type SubSequence struct {
	Name            string   `yaml:"name"`
	Filters         []string `yaml:"filters"`
	VisitsPerFilter []int    `yaml:"visits_per_filter"`
	NumEvents       int      `yaml:"num_events"`
	NumMaxMissed    int      `yaml:"num_max_missed"`
	TimeInterval    float64  `yaml:"time_interval"`
	TimeWindowStart float64  `yaml:"time_window_start"`
	TimeWindowMax   float64  `yaml:"time_window_max"`
	TimeWindowEnd   float64  `yaml:"time_window_end"`
	TimeWeight      float64  `yaml:"time_weight"`
}

// FilterString returns the sub-sequence's encoded filter descriptor. Counts
// on the wire record, not delimiters, separate one sub-sequence's filters
// from the next.
func (s SubSequence) FilterString() string {
	return strings.Join(s.Filters, ",")
}

// MasterSubSequence groups nested sub-sequences under its own event budget
// and time window.
type MasterSubSequence struct {
	Name            string              `yaml:"name"`
	SubSequences    map[int]SubSequence `yaml:"sub_sequences"`
	NumEvents       int                 `yaml:"num_events"`
	NumMaxMissed    int                 `yaml:"num_max_missed"`
	TimeInterval    float64             `yaml:"time_interval"`
	TimeWindowStart float64             `yaml:"time_window_start"`
	TimeWindowMax   float64             `yaml:"time_window_max"`
	TimeWindowEnd   float64             `yaml:"time_window_end"`
	TimeWeight      float64             `yaml:"time_weight"`
}

// General is an area-distribution, time-domain or hybrid proposal.
type General struct {
	Name             string                   `yaml:"name"`
	SkyRegion        SkyRegion                `yaml:"sky_region"`
	SkyExclusion     SkyExclusion             `yaml:"sky_exclusion"`
	SkyNightlyBounds SkyNightlyBounds         `yaml:"sky_nightly_bounds"`
	SkyConstraints   SkyConstraints           `yaml:"sky_constraints"`
	Filters          map[string]GeneralFilter `yaml:"filters"`
	Scheduling       GeneralScheduling        `yaml:"scheduling"`
}

// Sequence is a sequence proposal: explicit user regions plus sub-sequence
// cadence structure, optionally nested one level under master sub-sequences.
type Sequence struct {
	Name               string                    `yaml:"name"`
	SkyUserRegions     []int                     `yaml:"sky_user_regions"`
	SkyExclusion       SkyExclusion              `yaml:"sky_exclusion"`
	SkyNightlyBounds   SkyNightlyBounds          `yaml:"sky_nightly_bounds"`
	SkyConstraints     SkyConstraints            `yaml:"sky_constraints"`
	SubSequences       map[int]SubSequence       `yaml:"sub_sequences"`
	MasterSubSequences map[int]MasterSubSequence `yaml:"master_sub_sequences"`
	Filters            map[string]Filter         `yaml:"filters"`
	Scheduling         SequenceScheduling        `yaml:"scheduling"`
}
