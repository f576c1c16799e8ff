package actionable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"call-insights-go/internal/pipeline"
	"call-insights-go/internal/selector"
	"call-insights-go/internal/types"
)

func report(t *testing.T, records []types.CallRecord, count int) pipeline.Report {
	t.Helper()
	rep, err := pipeline.TopicTrends(records, pipeline.Query{
		Start:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		SkillGroup: "Support",
		Selection:  selector.Request{Count: count, Mode: types.RecentMode},
	})
	require.NoError(t, err)
	return rep
}

func at(hour int, topic string) types.CallRecord {
	return types.CallRecord{
		CallID:       topic,
		StartOfCall:  time.Date(2024, 3, 1, hour, 0, 0, 0, time.UTC),
		SkillGroup:   "Support",
		PrimaryTopic: topic,
	}
}

func TestGenerateNoMatches(t *testing.T) {
	rep := report(t, []types.CallRecord{{SkillGroup: "Support"}}, 5)
	cards := Generate(rep)
	require.Len(t, cards, 1)
	assert.Equal(t, Warning, cards[0].Severity)
	assert.Contains(t, cards[0].Insight, "No calls matched")
}

func TestGenerateTopicAndBucketCards(t *testing.T) {
	records := []types.CallRecord{
		at(8, "Billing"), at(9, "Billing"), at(10, "Billing"),
		at(18, "Technical"), at(19, "Technical"),
	}
	cards := Generate(report(t, records, 5))
	require.Len(t, cards, 4)

	assert.Equal(t, Info, cards[0].Severity)
	assert.Equal(t, "Top topic is Billing (60% of 5 calls)", cards[0].Insight)
	assert.Equal(t, "Review Billing calls for a shared root cause", cards[0].Action)

	assert.Equal(t, "Morning is led by Billing (3 of 3 calls)", cards[1].Insight)

	assert.Equal(t, Warning, cards[2].Severity)
	assert.Equal(t, "Evening has only 2 calls", cards[2].Insight)

	assert.Equal(t, Warning, cards[3].Severity)
	assert.Contains(t, cards[3].Insight, "Showing all 3 calls in Morning")
}

func TestGenerateSpreadTopicsAreMonitored(t *testing.T) {
	var records []types.CallRecord
	for _, topic := range []string{"A", "B", "C", "D", "E"} {
		records = append(records, at(9, topic))
	}
	cards := Generate(report(t, records, 5))
	require.NotEmpty(t, cards)
	assert.Equal(t, "Monitor and collect more data", cards[0].Action)
}

func TestTopicLabel(t *testing.T) {
	assert.Equal(t, "(no topic)", topicLabel(""))
	assert.Equal(t, "Billing", topicLabel("Billing"))
}
