package confcomm

// Topic sample types. The bus always yields a structurally valid,
// zero-initialized sample even when the authority has published nothing, so
// every sample carries a Valid predicate distinguishing real data from
// defaults. Field names mirror the authority's wire schema.

// Sample is one topic snapshot.
type Sample interface {
	// Valid reports whether the sample holds real published data rather than
	// transport defaults.
	Valid() bool
}

// SchedulerSample is the top-level survey configuration.
type SchedulerSample struct {
	SurveyDuration float64 `json:"surveyDuration"`
}

func (s *SchedulerSample) Valid() bool { return s.SurveyDuration != 0 }

// DriverSample is the scheduling driver configuration. Boolean semantic
// fields arrive as integer flags and are coerced during normalization.
type DriverSample struct {
	CoaddValues           int     `json:"coaddValues"`
	TimeBalancing         int     `json:"timeBalancing"`
	TimecostTimeMax       float64 `json:"timecostTimeMax"`
	TimecostTimeRef       float64 `json:"timecostTimeRef"`
	TimecostCostRef       float64 `json:"timecostCostRef"`
	TimecostWeight        float64 `json:"timecostWeight"`
	FiltercostWeight      float64 `json:"filtercostWeight"`
	PropboostWeight       float64 `json:"propboostWeight"`
	NightBoundary         float64 `json:"nightBoundary"`
	NewMoonPhaseThreshold float64 `json:"newMoonPhaseThreshold"`
	IgnoreSkyBrightness   int     `json:"ignoreSkyBrightness"`
	IgnoreAirmass         int     `json:"ignoreAirmass"`
	IgnoreClouds          int     `json:"ignoreClouds"`
	IgnoreSeeing          int     `json:"ignoreSeeing"`
	LookaheadWindowSize   float64 `json:"lookaheadWindowSize"`
	LookaheadBonusWeight  float64 `json:"lookaheadBonusWeight"`
}

func (s *DriverSample) Valid() bool { return s.TimecostTimeMax > 0 }

// ObsSiteSample is the observing site configuration.
type ObsSiteSample struct {
	Name             string  `json:"name"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Height           float64 `json:"height"`
	Pressure         float64 `json:"pressure"`
	Temperature      float64 `json:"temperature"`
	RelativeHumidity float64 `json:"relativeHumidity"`
}

func (s *ObsSiteSample) Valid() bool { return s.Name != "" }

// TelescopeSample is the telescope kinematics configuration.
type TelescopeSample struct {
	AltitudeMinpos   float64 `json:"altitudeMinpos"`
	AltitudeMaxpos   float64 `json:"altitudeMaxpos"`
	AltitudeMaxspeed float64 `json:"altitudeMaxspeed"`
	AltitudeAccel    float64 `json:"altitudeAccel"`
	AltitudeDecel    float64 `json:"altitudeDecel"`
	AzimuthMinpos    float64 `json:"azimuthMinpos"`
	AzimuthMaxpos    float64 `json:"azimuthMaxpos"`
	AzimuthMaxspeed  float64 `json:"azimuthMaxspeed"`
	AzimuthAccel     float64 `json:"azimuthAccel"`
	AzimuthDecel     float64 `json:"azimuthDecel"`
	SettleTime       float64 `json:"settleTime"`
}

func (s *TelescopeSample) Valid() bool { return s.AltitudeMinpos >= 0 }

// DomeSample is the dome kinematics configuration.
type DomeSample struct {
	AltitudeMaxspeed  float64 `json:"altitudeMaxspeed"`
	AltitudeAccel     float64 `json:"altitudeAccel"`
	AltitudeDecel     float64 `json:"altitudeDecel"`
	AltitudeFreerange float64 `json:"altitudeFreerange"`
	AzimuthMaxspeed   float64 `json:"azimuthMaxspeed"`
	AzimuthAccel      float64 `json:"azimuthAccel"`
	AzimuthDecel      float64 `json:"azimuthDecel"`
	AzimuthFreerange  float64 `json:"azimuthFreerange"`
	SettleTime        float64 `json:"settleTime"`
}

func (s *DomeSample) Valid() bool { return s.AltitudeMaxspeed >= 0 }

// RotatorSample is the instrument rotator configuration.
type RotatorSample struct {
	Minpos          float64 `json:"minpos"`
	Maxpos          float64 `json:"maxpos"`
	FilterChangePos float64 `json:"filterChangePos"`
	Maxspeed        float64 `json:"maxspeed"`
	Accel           float64 `json:"accel"`
	Decel           float64 `json:"decel"`
	FollowSky       int     `json:"followsky"`
	ResumeAngle     int     `json:"resumeAngle"`
}

func (s *RotatorSample) Valid() bool { return s.Maxspeed >= 0 }

// CameraSample is the camera configuration. The filter lists arrive as
// comma-delimited strings.
type CameraSample struct {
	ReadoutTime               float64 `json:"readoutTime"`
	ShutterTime               float64 `json:"shutterTime"`
	FilterMountTime           float64 `json:"filterMountTime"`
	FilterChangeTime          float64 `json:"filterChangeTime"`
	FilterMaxChangesBurstNum  float64 `json:"filterMaxChangesBurstNum"`
	FilterMaxChangesBurstTime float64 `json:"filterMaxChangesBurstTime"`
	FilterMaxChangesAvgNum    float64 `json:"filterMaxChangesAvgNum"`
	FilterMaxChangesAvgTime   float64 `json:"filterMaxChangesAvgTime"`
	FilterMounted             string  `json:"filterMounted"`
	FilterPos                 string  `json:"filterPos"`
	FilterRemovable           string  `json:"filterRemovable"`
	FilterUnmounted           string  `json:"filterUnmounted"`
}

func (s *CameraSample) Valid() bool { return s.ReadoutTime > 0 }

// SlewSample is the slew model configuration: fifteen comma-delimited
// activity prerequisite lists.
type SlewSample struct {
	PrereqDomaz               string `json:"prereqDomaz"`
	PrereqTelalt              string `json:"prereqTelalt"`
	PrereqTelaz               string `json:"prereqTelaz"`
	PrereqTelOpticsOpenLoop   string `json:"prereqTelOpticsOpenLoop"`
	PrereqTelOpticsClosedLoop string `json:"prereqTelOpticsClosedLoop"`
	PrereqTelRot              string `json:"prereqTelRot"`
	PrereqFilter              string `json:"prereqFilter"`
	PrereqAdc                 string `json:"prereqAdc"`
	PrereqInsOptics           string `json:"prereqInsOptics"`
	PrereqGuiderPos           string `json:"prereqGuiderPos"`
	PrereqGuiderAdq           string `json:"prereqGuiderAdq"`
	PrereqTelSettle           string `json:"prereqTelSettle"`
	PrereqDomazSettle         string `json:"prereqDomazSettle"`
	PrereqExposures           string `json:"prereqExposures"`
	PrereqReadout             string `json:"prereqReadout"`
}

func (s *SlewSample) Valid() bool { return s.PrereqExposures != "" }

// OpticsLoopCorrSample is the optics loop correction configuration.
type OpticsLoopCorrSample struct {
	TelOpticsOlSlope    float64 `json:"telOpticsOlSlope"`
	TelOpticsClAltLimit float64 `json:"telOpticsClAltLimit"`
	TelOpticsClDelay    float64 `json:"telOpticsClDelay"`
}

func (s *OpticsLoopCorrSample) Valid() bool { return s.TelOpticsOlSlope > 0 }

// ParkSample is the telescope park position.
type ParkSample struct {
	TelescopeAltitude float64 `json:"telescopeAltitude"`
	TelescopeAzimuth  float64 `json:"telescopeAzimuth"`
	TelescopeRotator  float64 `json:"telescopeRotator"`
	DomeAltitude      float64 `json:"domeAltitude"`
	DomeAzimuth       float64 `json:"domeAzimuth"`
	FilterPosition    string  `json:"filterPosition"`
}

func (s *ParkSample) Valid() bool { return s.TelescopeAltitude > 0 }

// TopologySample is the survey topology handshake.
type TopologySample struct {
	NumGeneralProps int    `json:"numGeneralProps"`
	NumSeqProps     int    `json:"numSeqProps"`
	GeneralPropos   string `json:"generalPropos"`
	SequencePropos  string `json:"sequencePropos"`
}

func (s *TopologySample) Valid() bool {
	return s.NumGeneralProps > 0 || s.NumSeqProps > 0
}
