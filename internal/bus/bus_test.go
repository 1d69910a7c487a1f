package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoSample struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func TestTestTransportPollLatest(t *testing.T) {
	tt := NewTestTransport()

	sub, err := tt.Subscribe("scheduler/obsSiteConfig")
	require.NoError(t, err)

	var sample echoSample
	assert.Equal(t, CodeNoData, sub.PollLatest(&sample))

	tt.Set("scheduler/obsSiteConfig", &echoSample{Name: "site", Value: 2650})
	assert.Equal(t, CodeOK, sub.PollLatest(&sample))
	assert.Equal(t, "site", sample.Name)
	assert.Equal(t, 2650.0, sample.Value)

	tt.Clear("scheduler/obsSiteConfig")
	assert.Equal(t, CodeNoData, sub.PollLatest(&sample))
}

func TestTestTransportSubscribeIdempotent(t *testing.T) {
	tt := NewTestTransport()

	first, err := tt.Subscribe("a")
	require.NoError(t, err)
	second, err := tt.Subscribe("a")
	require.NoError(t, err)

	assert.Same(t, first.(*testSubscription), second.(*testSubscription))
	assert.Equal(t, []string{"a"}, tt.Subscribed())
}

func TestTestTransportPublishFeedsPolls(t *testing.T) {
	tt := NewTestTransport()
	require.NoError(t, tt.Publish("scheduler/generalPropConfig", &echoSample{Name: "prop"}))

	sub, err := tt.Subscribe("scheduler/generalPropConfig")
	require.NoError(t, err)

	var sample echoSample
	assert.Equal(t, CodeOK, sub.PollLatest(&sample))
	assert.Equal(t, "prop", sample.Name)

	published := tt.Published()
	require.Len(t, published, 1)
	assert.Equal(t, "scheduler/generalPropConfig", published[0].Topic)
}

func TestSubjectMapping(t *testing.T) {
	assert.Equal(t, "scheduler.driverConfig", subject("scheduler/driverConfig"))
	assert.Equal(t, "surveyTopology", subject("surveyTopology"))
}
