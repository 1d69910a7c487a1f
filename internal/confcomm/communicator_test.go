package confcomm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obs-scheduling/schedconf/internal/bus"
)

func seedAllTopics(tt *bus.TestTransport) {
	tt.Set("scheduler/schedulerConfig", &SchedulerSample{SurveyDuration: 10})
	tt.Set("scheduler/driverConfig", &DriverSample{
		CoaddValues: 1, TimeBalancing: 0,
		TimecostTimeMax: 150, TimecostTimeRef: 5, TimecostCostRef: 0.3,
		TimecostWeight: 1, FiltercostWeight: 1, PropboostWeight: 1,
		NightBoundary: -12, NewMoonPhaseThreshold: 20,
		IgnoreSkyBrightness: 0, IgnoreAirmass: 1, IgnoreClouds: 0, IgnoreSeeing: 1,
		LookaheadWindowSize: 240, LookaheadBonusWeight: 0.5,
	})
	tt.Set("scheduler/obsSiteConfig", &ObsSiteSample{
		Name: "Cerro Pachon", Latitude: -30.24, Longitude: -70.74, Height: 2650,
	})
	tt.Set("scheduler/telescopeConfig", &TelescopeSample{
		AltitudeMinpos: 20, AltitudeMaxpos: 86.5, AltitudeMaxspeed: 3.5,
		AzimuthMinpos: -270, AzimuthMaxpos: 270, SettleTime: 3,
	})
	tt.Set("scheduler/domeConfig", &DomeSample{AltitudeMaxspeed: 1.75, AzimuthMaxspeed: 1.5, SettleTime: 1})
	tt.Set("scheduler/rotatorConfig", &RotatorSample{
		Minpos: -90, Maxpos: 90, Maxspeed: 3.5, FollowSky: 1, ResumeAngle: 0,
	})
	tt.Set("scheduler/cameraConfig", &CameraSample{
		ReadoutTime: 2, ShutterTime: 1, FilterChangeTime: 120,
		FilterMaxChangesBurstNum: 1,
		FilterMounted:            "g,r,i,z,y",
		FilterPos:                "r",
		FilterRemovable:          "y,z",
		FilterUnmounted:          "u",
	})
	tt.Set("scheduler/slewConfig", &SlewSample{
		PrereqExposures: "telSettle,domazSettle",
		PrereqReadout:   "exposures",
	})
	tt.Set("scheduler/opticsLoopCorrConfig", &OpticsLoopCorrSample{
		TelOpticsOlSlope: 1.0 / 3.5, TelOpticsClAltLimit: 9.0, TelOpticsClDelay: 20,
	})
	tt.Set("scheduler/parkConfig", &ParkSample{
		TelescopeAltitude: 86.5, TelescopeAzimuth: 0, DomeAltitude: 90, FilterPosition: "z",
	})
	tt.Set("scheduler/surveyTopology", &TopologySample{
		NumGeneralProps: 2, NumSeqProps: 1,
		GeneralPropos:  "WideFastDeep,NorthEclipticSpur",
		SequencePropos: "DeepDrilling",
	})
}

func TestConfigure(t *testing.T) {
	tt := bus.NewTestTransport()
	seedAllTopics(tt)

	comm := NewCommunicator(NewLiveSource(tt, time.Second), "scheduler")
	tree, err := comm.Configure()
	require.NoError(t, err)

	assert.Equal(t, 10.0, tree.Survey.Duration)

	// Integer flags coerce to booleans during normalization.
	assert.True(t, tree.Driver.CoaddValues)
	assert.False(t, tree.Driver.TimeBalancing)
	assert.True(t, tree.Driver.IgnoreAirmass)
	assert.False(t, tree.Driver.IgnoreClouds)
	assert.Equal(t, 240, tree.Driver.LookaheadWindowSize)

	assert.Equal(t, "Cerro Pachon", tree.ObservingSite.Name)
	assert.Equal(t, 20.0, tree.Observatory.Telescope.AltitudeMinpos)
	assert.Equal(t, 1.75, tree.Observatory.Dome.AltitudeMaxspeed)
	assert.True(t, tree.Observatory.Rotator.FollowSky)
	assert.False(t, tree.Observatory.Rotator.ResumeAngle)

	assert.Equal(t, []string{"g", "r", "i", "z", "y"}, tree.Observatory.Camera.FilterMounted)
	assert.Equal(t, []string{"u"}, tree.Observatory.Camera.FilterUnmounted)
	assert.Equal(t, 1, tree.Observatory.Camera.FilterMaxChangesBurstNum)

	assert.Equal(t, []string{"telSettle", "domazSettle"}, tree.Observatory.Slew.PrereqExposures)
	assert.Equal(t, 86.5, tree.Observatory.Park.TelescopeAltitude)

	assert.Equal(t, 3, tree.Science.Topology.NumProposals)
	assert.Equal(t, []string{"WideFastDeep", "NorthEclipticSpur"}, tree.Science.Topology.General)
	assert.Equal(t, []string{"DeepDrilling"}, tree.Science.Topology.Sequence)
}

func TestConfigureEmptyListsDecodeEmpty(t *testing.T) {
	tt := bus.NewTestTransport()
	seedAllTopics(tt)
	tt.Set("scheduler/cameraConfig", &CameraSample{
		ReadoutTime:   2,
		FilterMounted: "g", FilterUnmounted: "",
	})

	comm := NewCommunicator(NewLiveSource(tt, time.Second), "scheduler")
	tree, err := comm.Configure()
	require.NoError(t, err)

	// An empty delimited field is an empty list, not [""].
	assert.Equal(t, []string{}, tree.Observatory.Camera.FilterUnmounted)
	assert.Equal(t, []string{"g"}, tree.Observatory.Camera.FilterMounted)
}

func TestConfigureAbortsOnFirstTimeout(t *testing.T) {
	tt := bus.NewTestTransport()
	seedAllTopics(tt)
	tt.Clear("scheduler/cameraConfig")

	comm := NewCommunicator(NewLiveSource(tt, 10*time.Millisecond), "scheduler")
	tree, err := comm.Configure()

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "scheduler/cameraConfig", timeoutErr.Topic)
	assert.Nil(t, tree)

	// Topics after the failed one are never touched.
	assert.NotContains(t, tt.Subscribed(), "scheduler/slewConfig")
	assert.NotContains(t, tt.Subscribed(), "scheduler/surveyTopology")
	assert.Zero(t, tt.Polls("scheduler/slewConfig"))
}

func TestConfigureSynthetic(t *testing.T) {
	src := &SyntheticSource{Samples: map[string]any{
		"scheduler/schedulerConfig": &SchedulerSample{SurveyDuration: 1},
		"scheduler/surveyTopology": &TopologySample{
			NumGeneralProps: 1, GeneralPropos: "WideFastDeep",
		},
	}}

	comm := NewCommunicator(src, "scheduler")
	tree, err := comm.Configure()
	require.NoError(t, err)

	assert.Equal(t, 1.0, tree.Survey.Duration)
	assert.Equal(t, 1, tree.Science.Topology.NumProposals)
	// Topics without canned samples come back zero-valued.
	assert.Equal(t, 0.0, tree.Observatory.Camera.ReadoutTime)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{}, splitList(""))
	assert.Equal(t, []string{"one"}, splitList("one"))
	assert.Equal(t, []string{"a", "b", "c"}, splitList("a,b,c"))
}
