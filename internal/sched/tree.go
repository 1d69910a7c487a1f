// Package sched holds the scheduler's hierarchical runtime configuration
// tree. The confcomm aggregator populates it section by section during
// acquisition; afterwards it is read-only.
package sched

import "github.com/obs-scheduling/schedconf/internal/proposal"

// Tree is the complete runtime configuration.
type Tree struct {
	Survey        Survey
	Driver        Driver
	ObservingSite ObservingSite
	Observatory   Observatory
	Science       Science
}

// Survey is the top-level survey section.
type Survey struct {
	// Duration is the survey length in days.
	Duration float64
}

// Driver configures the scheduling driver's cost model.
type Driver struct {
	CoaddValues           bool
	TimeBalancing         bool
	TimecostTimeMax       float64
	TimecostTimeRef       float64
	TimecostCostRef       float64
	TimecostWeight        float64
	FiltercostWeight      float64
	PropboostWeight       float64
	NightBoundary         float64
	NewMoonPhaseThreshold float64
	IgnoreSkyBrightness   bool
	IgnoreAirmass         bool
	IgnoreClouds          bool
	IgnoreSeeing          bool
	LookaheadWindowSize   int
	LookaheadBonusWeight  float64
}

// ObservingSite describes the observatory location and ambient conditions.
type ObservingSite struct {
	Name             string
	Latitude         float64
	Longitude        float64
	Height           float64
	Pressure         float64
	Temperature      float64
	RelativeHumidity float64
}

// Observatory groups the instrument sections.
type Observatory struct {
	Telescope      Telescope
	Dome           Dome
	Rotator        Rotator
	Camera         Camera
	Slew           Slew
	OpticsLoopCorr OpticsLoopCorr
	Park           Park
}

// Telescope holds mount kinematic limits.
type Telescope struct {
	AltitudeMinpos   float64
	AltitudeMaxpos   float64
	AltitudeMaxspeed float64
	AltitudeAccel    float64
	AltitudeDecel    float64
	AzimuthMinpos    float64
	AzimuthMaxpos    float64
	AzimuthMaxspeed  float64
	AzimuthAccel     float64
	AzimuthDecel     float64
	SettleTime       float64
}

// Dome holds dome kinematic limits.
type Dome struct {
	AltitudeMaxspeed  float64
	AltitudeAccel     float64
	AltitudeDecel     float64
	AltitudeFreerange float64
	AzimuthMaxspeed   float64
	AzimuthAccel      float64
	AzimuthDecel      float64
	AzimuthFreerange  float64
	SettleTime        float64
}

// Rotator holds instrument rotator limits and tracking behavior.
type Rotator struct {
	Minpos          float64
	Maxpos          float64
	FilterChangePos float64
	Maxspeed        float64
	Accel           float64
	Decel           float64
	FollowSky       bool
	ResumeAngle     bool
}

// Camera holds exposure timing and the filter carousel state.
type Camera struct {
	ReadoutTime               float64
	ShutterTime               float64
	FilterMountTime           float64
	FilterChangeTime          float64
	FilterMaxChangesBurstNum  int
	FilterMaxChangesBurstTime float64
	FilterMaxChangesAvgNum    float64
	FilterMaxChangesAvgTime   float64
	FilterMounted             []string
	FilterPos                 string
	FilterRemovable           []string
	FilterUnmounted           []string
}

// Slew holds the activity prerequisite lists of the slew model.
type Slew struct {
	PrereqDomaz               []string
	PrereqTelalt              []string
	PrereqTelaz               []string
	PrereqTelOpticsOpenLoop   []string
	PrereqTelOpticsClosedLoop []string
	PrereqTelRot              []string
	PrereqFilter              []string
	PrereqADC                 []string
	PrereqInsOptics           []string
	PrereqGuiderPos           []string
	PrereqGuiderAdq           []string
	PrereqTelSettle           []string
	PrereqDomazSettle         []string
	PrereqExposures           []string
	PrereqReadout             []string
}

// OpticsLoopCorr holds the optics loop correction parameters.
type OpticsLoopCorr struct {
	TelOpticsOlSlope    float64
	TelOpticsClAltLimit float64
	TelOpticsClDelay    float64
}

// Park is the telescope park position.
type Park struct {
	TelescopeAltitude float64
	TelescopeAzimuth  float64
	TelescopeRotator  float64
	DomeAltitude      float64
	DomeAzimuth       float64
	FilterPosition    string
}

// Topology is the survey topology handshake: how many proposals of each kind
// the authority will configure, and their names.
type Topology struct {
	// NumProposals is the total used for proposal-ID assignment.
	NumProposals int
	General      []string
	Sequence     []string
}

// Science holds the proposal configuration.
type Science struct {
	Topology      Topology
	GeneralProps  []proposal.General
	SequenceProps []proposal.Sequence
}
