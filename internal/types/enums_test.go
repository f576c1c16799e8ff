package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeOfDayOf(t *testing.T) {
	tests := []struct {
		hour int
		want TimeOfDay
	}{
		{0, Morning},
		{11, Morning},
		{12, Afternoon},
		{16, Afternoon},
		{17, Evening},
		{23, Evening},
	}
	for _, tt := range tests {
		ts := time.Date(2024, 3, 1, tt.hour, 30, 0, 0, time.UTC)
		assert.Equal(t, tt.want, TimeOfDayOf(ts), "hour %d", tt.hour)
	}
}

func TestTimeOfDayOfUsesUTCHour(t *testing.T) {
	// 09:00 in UTC-5 is 14:00 UTC.
	loc := time.FixedZone("EST", -5*60*60)
	ts := time.Date(2024, 3, 1, 9, 0, 0, 0, loc)
	assert.Equal(t, Afternoon, TimeOfDayOf(ts))
	assert.Equal(t, Afternoon, CallRecord{StartOfCall: ts}.TimeOfDay())
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay(" evening ")
	require.NoError(t, err)
	assert.Equal(t, Evening, tod)

	tod, err = ParseTimeOfDay("MORNING")
	require.NoError(t, err)
	assert.Equal(t, Morning, tod)

	_, err = ParseTimeOfDay("night")
	require.ErrorIs(t, err, ErrUnknownTimeOfDay)
}

func TestParseTopicField(t *testing.T) {
	f, err := ParseTopicField("Secondary")
	require.NoError(t, err)
	assert.Equal(t, SecondaryTopic, f)

	_, err = ParseTopicField("tertiary")
	require.ErrorIs(t, err, ErrUnknownTopicField)
}

func TestCallRecordTopic(t *testing.T) {
	r := CallRecord{PrimaryTopic: "Billing", SecondaryTopic: "Refund"}
	assert.Equal(t, "Billing", r.Topic(PrimaryTopic))
	assert.Equal(t, "Refund", r.Topic(SecondaryTopic))
	assert.Equal(t, "Billing", r.Topic(""))
}

func TestTopicDistributionHelpers(t *testing.T) {
	d := TopicDistribution{
		Topics: []TopicCount{{"Billing", 3}, {"Technical", 1}},
		Total:  4,
	}
	assert.Equal(t, 3, d.Count("Billing"))
	assert.Equal(t, 0, d.Count("Sales"))
	top, ok := d.Top()
	require.True(t, ok)
	assert.Equal(t, "Billing", top.Topic)
	assert.InDelta(t, 0.75, d.Share(top), 1e-9)

	_, ok = TopicDistribution{}.Top()
	assert.False(t, ok)
	assert.Zero(t, TopicDistribution{}.Share(TopicCount{Count: 1}))
}
