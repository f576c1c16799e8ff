package render

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"call-insights-go/internal/actionable"
	"call-insights-go/internal/aggregator"
	"call-insights-go/internal/dataset"
	"call-insights-go/internal/pipeline"
	"call-insights-go/internal/selector"
	"call-insights-go/internal/types"
)

func init() {
	color.NoColor = true
}

func calls() []types.CallRecord {
	ts := func(hour int) time.Time { return time.Date(2024, 3, 1, hour, 0, 0, 0, time.UTC) }
	return []types.CallRecord{
		{CallID: "CA1", StartOfCall: ts(8), SkillGroup: "Support", PrimaryTopic: "Billing", Summary: "refund, please", AgentName: "Ana", TalkTime: 90},
		{CallID: "CA2", StartOfCall: ts(9), SkillGroup: "Support", PrimaryTopic: "Billing", Summary: "late fee"},
		{CallID: "CA3", StartOfCall: ts(10), SkillGroup: "Support", PrimaryTopic: "", Summary: "dropped"},
		{CallID: "CA4", StartOfCall: ts(19), SkillGroup: "Support", PrimaryTopic: "Technical"},
	}
}

func TestFields(t *testing.T) {
	basic := Fields(types.BasicColumns)
	require.Len(t, basic, 4)
	assert.Equal(t, "call_id", basic[0].Key)
	assert.Equal(t, "raw_transcript", basic[3].Key)

	detailed := Fields(types.DetailedColumns)
	assert.Greater(t, len(detailed), len(basic))
	keys := map[string]bool{}
	for _, f := range detailed {
		keys[f.Key] = true
	}
	for _, k := range []string{"secondary_topic", "agent_name", "talk_time", "intent_score"} {
		assert.True(t, keys[k], k)
	}
}

func TestReportText(t *testing.T) {
	rep, err := pipeline.TopicTrends(calls(), pipeline.Query{
		Start:              time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:                time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		SkillGroup:         "Support",
		IncludeEmptyTopics: true,
		Selection:          selector.Request{Count: 5, Mode: types.RecentMode},
		Columns:            types.BasicColumns,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Report(&buf, rep, actionable.Generate(rep)))
	out := buf.String()

	assert.Contains(t, out, "Topic Trends: Support, 2024-03-01 to 2024-03-02 (4 calls)")
	assert.Contains(t, out, "Skipping Evening: only 1 calls, need at least 3.")
	assert.Contains(t, out, "Topic Distribution for Morning")
	assert.Contains(t, out, "(no topic)")
	assert.Contains(t, out, "SUPPRESSED")
	assert.Contains(t, out, "CA3")
	assert.Contains(t, out, "Insights")
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, calls()[:2], types.BasicColumns))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"call_id", "primary_topic", "summary", "raw_transcript"}, rows[0])
	assert.Equal(t, []string{"CA1", "Billing", "refund, please", ""}, rows[1])
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, map[string]int{"calls": 4}))
	assert.Equal(t, "{\n  \"calls\": 4\n}\n", buf.String())
}

func TestAgentsAndSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Agents(&buf, aggregator.AgentPerformance(calls())))
	assert.Contains(t, buf.String(), "Ana")

	buf.Reset()
	dup := append(calls(), calls()[0])
	require.NoError(t, Summary(&buf, dataset.Summarize(dup)))
	assert.Contains(t, buf.String(), "5 calls from 2024-03-01 to 2024-03-01")
	assert.Contains(t, buf.String(), "CA1")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "a b", truncate("a\n  b", 10))
	long := strings.Repeat("x", 100)
	got := truncate(long, 20)
	assert.Len(t, got, 20)
	assert.True(t, strings.HasSuffix(got, "..."))
}
