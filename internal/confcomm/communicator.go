package confcomm

import (
	"strings"

	"github.com/obs-scheduling/schedconf/internal/events"
	"github.com/obs-scheduling/schedconf/internal/sched"
)

// Communicator acquires the scheduler's runtime configuration from the
// authority, one topic at a time, and assembles the configuration tree.
type Communicator struct {
	source Source
	prefix string
}

// NewCommunicator builds a communicator acquiring through source, with
// topics namespaced under prefix.
func NewCommunicator(source Source, prefix string) *Communicator {
	return &Communicator{source: source, prefix: prefix}
}

// Configure runs the eleven acquisitions in their fixed order and returns
// the assembled tree. The first error aborts the sequence; later topics are
// never polled. Each step returns its section value, so a partially
// populated tree never escapes.
func (c *Communicator) Configure() (*sched.Tree, error) {
	events.Emit("info", "confcomm.started", "acquiring scheduler configuration", nil)

	survey, err := c.configureScheduler()
	if err != nil {
		return nil, err
	}
	driver, err := c.configureDriver()
	if err != nil {
		return nil, err
	}
	site, err := c.configureObservingSite()
	if err != nil {
		return nil, err
	}
	telescope, err := c.configureTelescope()
	if err != nil {
		return nil, err
	}
	dome, err := c.configureDome()
	if err != nil {
		return nil, err
	}
	rotator, err := c.configureRotator()
	if err != nil {
		return nil, err
	}
	camera, err := c.configureCamera()
	if err != nil {
		return nil, err
	}
	slew, err := c.configureSlew()
	if err != nil {
		return nil, err
	}
	optics, err := c.configureOpticsLoopCorr()
	if err != nil {
		return nil, err
	}
	park, err := c.configurePark()
	if err != nil {
		return nil, err
	}
	topology, err := c.configureTopology()
	if err != nil {
		return nil, err
	}

	tree := &sched.Tree{
		Survey:        survey,
		Driver:        driver,
		ObservingSite: site,
		Observatory: sched.Observatory{
			Telescope:      telescope,
			Dome:           dome,
			Rotator:        rotator,
			Camera:         camera,
			Slew:           slew,
			OpticsLoopCorr: optics,
			Park:           park,
		},
		Science: sched.Science{Topology: topology},
	}
	events.Emit("info", "confcomm.configured", "scheduler configuration complete", map[string]interface{}{
		"num_proposals": topology.NumProposals,
	})
	return tree, nil
}

func (c *Communicator) acquire(name string, sample Sample) error {
	return c.source.Acquire(topicPath(c.prefix, name), sample)
}

// splitList decodes a comma-delimited field. An empty source string decodes
// to an empty list, never a single empty-string element.
func splitList(s string) []string {
	if len(s) == 0 {
		return []string{}
	}
	return strings.Split(s, ",")
}

func (c *Communicator) configureScheduler() (sched.Survey, error) {
	var s SchedulerSample
	if err := c.acquire(TopicScheduler, &s); err != nil {
		return sched.Survey{}, err
	}
	return sched.Survey{Duration: s.SurveyDuration}, nil
}

func (c *Communicator) configureDriver() (sched.Driver, error) {
	var s DriverSample
	if err := c.acquire(TopicDriver, &s); err != nil {
		return sched.Driver{}, err
	}
	return sched.Driver{
		CoaddValues:           s.CoaddValues != 0,
		TimeBalancing:         s.TimeBalancing != 0,
		TimecostTimeMax:       s.TimecostTimeMax,
		TimecostTimeRef:       s.TimecostTimeRef,
		TimecostCostRef:       s.TimecostCostRef,
		TimecostWeight:        s.TimecostWeight,
		FiltercostWeight:      s.FiltercostWeight,
		PropboostWeight:       s.PropboostWeight,
		NightBoundary:         s.NightBoundary,
		NewMoonPhaseThreshold: s.NewMoonPhaseThreshold,
		IgnoreSkyBrightness:   s.IgnoreSkyBrightness != 0,
		IgnoreAirmass:         s.IgnoreAirmass != 0,
		IgnoreClouds:          s.IgnoreClouds != 0,
		IgnoreSeeing:          s.IgnoreSeeing != 0,
		LookaheadWindowSize:   int(s.LookaheadWindowSize),
		LookaheadBonusWeight:  s.LookaheadBonusWeight,
	}, nil
}

func (c *Communicator) configureObservingSite() (sched.ObservingSite, error) {
	var s ObsSiteSample
	if err := c.acquire(TopicObsSite, &s); err != nil {
		return sched.ObservingSite{}, err
	}
	return sched.ObservingSite{
		Name:             s.Name,
		Latitude:         s.Latitude,
		Longitude:        s.Longitude,
		Height:           s.Height,
		Pressure:         s.Pressure,
		Temperature:      s.Temperature,
		RelativeHumidity: s.RelativeHumidity,
	}, nil
}

func (c *Communicator) configureTelescope() (sched.Telescope, error) {
	var s TelescopeSample
	if err := c.acquire(TopicTelescope, &s); err != nil {
		return sched.Telescope{}, err
	}
	return sched.Telescope{
		AltitudeMinpos:   s.AltitudeMinpos,
		AltitudeMaxpos:   s.AltitudeMaxpos,
		AltitudeMaxspeed: s.AltitudeMaxspeed,
		AltitudeAccel:    s.AltitudeAccel,
		AltitudeDecel:    s.AltitudeDecel,
		AzimuthMinpos:    s.AzimuthMinpos,
		AzimuthMaxpos:    s.AzimuthMaxpos,
		AzimuthMaxspeed:  s.AzimuthMaxspeed,
		AzimuthAccel:     s.AzimuthAccel,
		AzimuthDecel:     s.AzimuthDecel,
		SettleTime:       s.SettleTime,
	}, nil
}

func (c *Communicator) configureDome() (sched.Dome, error) {
	var s DomeSample
	if err := c.acquire(TopicDome, &s); err != nil {
		return sched.Dome{}, err
	}
	return sched.Dome{
		AltitudeMaxspeed:  s.AltitudeMaxspeed,
		AltitudeAccel:     s.AltitudeAccel,
		AltitudeDecel:     s.AltitudeDecel,
		AltitudeFreerange: s.AltitudeFreerange,
		AzimuthMaxspeed:   s.AzimuthMaxspeed,
		AzimuthAccel:      s.AzimuthAccel,
		AzimuthDecel:      s.AzimuthDecel,
		AzimuthFreerange:  s.AzimuthFreerange,
		SettleTime:        s.SettleTime,
	}, nil
}

func (c *Communicator) configureRotator() (sched.Rotator, error) {
	var s RotatorSample
	if err := c.acquire(TopicRotator, &s); err != nil {
		return sched.Rotator{}, err
	}
	return sched.Rotator{
		Minpos:          s.Minpos,
		Maxpos:          s.Maxpos,
		FilterChangePos: s.FilterChangePos,
		Maxspeed:        s.Maxspeed,
		Accel:           s.Accel,
		Decel:           s.Decel,
		FollowSky:       s.FollowSky != 0,
		ResumeAngle:     s.ResumeAngle != 0,
	}, nil
}

func (c *Communicator) configureCamera() (sched.Camera, error) {
	var s CameraSample
	if err := c.acquire(TopicCamera, &s); err != nil {
		return sched.Camera{}, err
	}
	return sched.Camera{
		ReadoutTime:               s.ReadoutTime,
		ShutterTime:               s.ShutterTime,
		FilterMountTime:           s.FilterMountTime,
		FilterChangeTime:          s.FilterChangeTime,
		FilterMaxChangesBurstNum:  int(s.FilterMaxChangesBurstNum),
		FilterMaxChangesBurstTime: s.FilterMaxChangesBurstTime,
		FilterMaxChangesAvgNum:    s.FilterMaxChangesAvgNum,
		FilterMaxChangesAvgTime:   s.FilterMaxChangesAvgTime,
		FilterMounted:             splitList(s.FilterMounted),
		FilterPos:                 s.FilterPos,
		FilterRemovable:           splitList(s.FilterRemovable),
		FilterUnmounted:           splitList(s.FilterUnmounted),
	}, nil
}

func (c *Communicator) configureSlew() (sched.Slew, error) {
	var s SlewSample
	if err := c.acquire(TopicSlew, &s); err != nil {
		return sched.Slew{}, err
	}
	return sched.Slew{
		PrereqDomaz:               splitList(s.PrereqDomaz),
		PrereqTelalt:              splitList(s.PrereqTelalt),
		PrereqTelaz:               splitList(s.PrereqTelaz),
		PrereqTelOpticsOpenLoop:   splitList(s.PrereqTelOpticsOpenLoop),
		PrereqTelOpticsClosedLoop: splitList(s.PrereqTelOpticsClosedLoop),
		PrereqTelRot:              splitList(s.PrereqTelRot),
		PrereqFilter:              splitList(s.PrereqFilter),
		PrereqADC:                 splitList(s.PrereqAdc),
		PrereqInsOptics:           splitList(s.PrereqInsOptics),
		PrereqGuiderPos:           splitList(s.PrereqGuiderPos),
		PrereqGuiderAdq:           splitList(s.PrereqGuiderAdq),
		PrereqTelSettle:           splitList(s.PrereqTelSettle),
		PrereqDomazSettle:         splitList(s.PrereqDomazSettle),
		PrereqExposures:           splitList(s.PrereqExposures),
		PrereqReadout:             splitList(s.PrereqReadout),
	}, nil
}

func (c *Communicator) configureOpticsLoopCorr() (sched.OpticsLoopCorr, error) {
	var s OpticsLoopCorrSample
	if err := c.acquire(TopicOpticsLoopCorr, &s); err != nil {
		return sched.OpticsLoopCorr{}, err
	}
	return sched.OpticsLoopCorr{
		TelOpticsOlSlope:    s.TelOpticsOlSlope,
		TelOpticsClAltLimit: s.TelOpticsClAltLimit,
		TelOpticsClDelay:    s.TelOpticsClDelay,
	}, nil
}

func (c *Communicator) configurePark() (sched.Park, error) {
	var s ParkSample
	if err := c.acquire(TopicPark, &s); err != nil {
		return sched.Park{}, err
	}
	return sched.Park{
		TelescopeAltitude: s.TelescopeAltitude,
		TelescopeAzimuth:  s.TelescopeAzimuth,
		TelescopeRotator:  s.TelescopeRotator,
		DomeAltitude:      s.DomeAltitude,
		DomeAzimuth:       s.DomeAzimuth,
		FilterPosition:    s.FilterPosition,
	}, nil
}

func (c *Communicator) configureTopology() (sched.Topology, error) {
	var s TopologySample
	if err := c.acquire(TopicSurveyTopology, &s); err != nil {
		return sched.Topology{}, err
	}
	return sched.Topology{
		NumProposals: s.NumGeneralProps + s.NumSeqProps,
		General:      splitList(s.GeneralPropos),
		Sequence:     splitList(s.SequencePropos),
	}, nil
}
