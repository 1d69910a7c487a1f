// Package confcomm synchronizes the scheduler's runtime configuration with
// the remote configuration authority over the bus. It acquires eleven
// configuration topics in a fixed order, normalizes each sample into the
// sched.Tree, and publishes the flattened proposal records back out.
package confcomm

// Topic names on the configuration channel, relative to the bus prefix.
const (
	TopicScheduler      = "schedulerConfig"
	TopicDriver         = "driverConfig"
	TopicObsSite        = "obsSiteConfig"
	TopicTelescope      = "telescopeConfig"
	TopicDome           = "domeConfig"
	TopicRotator        = "rotatorConfig"
	TopicCamera         = "cameraConfig"
	TopicSlew           = "slewConfig"
	TopicOpticsLoopCorr = "opticsLoopCorrConfig"
	TopicPark           = "parkConfig"
	TopicSurveyTopology = "surveyTopology"

	TopicGeneralProp  = "generalPropConfig"
	TopicSequenceProp = "sequencePropConfig"
)

func topicPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
