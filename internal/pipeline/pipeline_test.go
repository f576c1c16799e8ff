package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"call-insights-go/internal/selector"
	"call-insights-go/internal/types"
)

func trendsData() []types.CallRecord {
	return []types.CallRecord{
		rec("m1", at(1, 8), "Support", "Billing"),
		rec("m2", at(1, 9), "Support", "Billing"),
		rec("m3", at(1, 10), "Support", "Billing"),
		rec("e1", at(1, 18), "Support", "Technical"),
		rec("e2", at(1, 19), "Support", "Technical"),
		rec("x1", at(1, 9), "Billing", "Refund"),
	}
}

func baseQuery() Query {
	return Query{
		Start:      at(1, 0),
		End:        at(2, 0),
		SkillGroup: "Support",
		Selection:  selector.Request{Count: 5, Mode: types.RecentMode, Seed: selector.DefaultSeed},
	}
}

func TestTopicTrends(t *testing.T) {
	rep, err := TopicTrends(trendsData(), baseQuery())
	require.NoError(t, err)

	assert.Equal(t, 5, rep.Matched)
	assert.Equal(t, "2024-03-01", rep.Start)
	assert.Equal(t, "2024-03-02", rep.End)
	assert.Equal(t, []types.TopicCount{{Topic: "Billing", Count: 3}, {Topic: "Technical", Count: 2}}, rep.Distribution.Topics)

	assert.Equal(t, []types.TimeOfDay{types.Morning}, rep.Selectable)
	assert.Equal(t, types.Morning, rep.TimeOfDay)
	assert.Contains(t, rep.Warnings, "Skipping Evening: only 2 calls, need at least 3.")

	require.NotNil(t, rep.BucketTopics)
	assert.Equal(t, 3, rep.BucketTopics.Count("Billing"))

	require.NotNil(t, rep.Selection)
	assert.True(t, rep.Selection.Insufficient)
	assert.Len(t, rep.Selection.Records, 3)
	assert.Contains(t, rep.Warnings, "Only 3 of 5 requested calls available in Morning.")
	assert.Equal(t, types.DetailedColumns, rep.Columns)
}

func TestTopicTrendsSuppressedDrillIn(t *testing.T) {
	q := baseQuery()
	q.TimeOfDay = "evening"
	rep, err := TopicTrends(trendsData(), q)
	require.NoError(t, err)

	assert.Equal(t, types.Evening, rep.TimeOfDay)
	require.NotNil(t, rep.Selection)
	assert.True(t, rep.Selection.Suppressed)
	assert.Empty(t, rep.Selection.Records)
	assert.Nil(t, rep.BucketTopics)
	assert.Contains(t, rep.Warnings, "Not enough calls in Evening to show details (2).")
}

func TestTopicTrendsNoSelectableBucket(t *testing.T) {
	q := baseQuery()
	q.SkillGroup = "Billing"
	rep, err := TopicTrends(trendsData(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Matched)
	assert.Empty(t, rep.Selectable)
	assert.Nil(t, rep.Selection)
	assert.Empty(t, string(rep.TimeOfDay))
}

func TestTopicTrendsEmptySubsetWarnings(t *testing.T) {
	q := baseQuery()
	q.SkillGroup = "Sales"
	rep, err := TopicTrends(trendsData(), q)
	require.NoError(t, err)
	assert.True(t, rep.UnknownSkillGroup)
	assert.Zero(t, rep.Matched)
	assert.Contains(t, rep.Warnings, `Skill group "Sales" does not appear in the dataset.`)

	q = baseQuery()
	q.Start, q.End = at(2, 0), at(1, 0)
	rep, err = TopicTrends(trendsData(), q)
	require.NoError(t, err)
	assert.True(t, rep.RangeInverted)
	assert.Zero(t, rep.Matched)
	assert.Empty(t, rep.Distribution.Topics)
}

func TestTopicTrendsRejectsBadRequest(t *testing.T) {
	q := baseQuery()
	q.Selection.Count = 7
	_, err := TopicTrends(trendsData(), q)
	require.ErrorIs(t, err, selector.ErrInvalidSelectionCount)

	q = baseQuery()
	q.TimeOfDay = "night"
	_, err = TopicTrends(trendsData(), q)
	require.ErrorIs(t, err, types.ErrUnknownTimeOfDay)
}

func TestTopicTrendsMinValues(t *testing.T) {
	q := baseQuery()
	q.MinValuesRequired = 2
	rep, err := TopicTrends(trendsData(), q)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeOfDay{types.Morning, types.Evening}, rep.Selectable)
	assert.Equal(t, 2, rep.Buckets.MinValuesRequired)
}

func TestTopicTrendsSampleVariant(t *testing.T) {
	var records []types.CallRecord
	for i := 0; i < 20; i++ {
		records = append(records, rec(fmt.Sprintf("c%02d", i), at(1, 13), "Support", fmt.Sprintf("T%d", i%12)))
	}
	q := baseQuery()
	FancyVariant.Apply(&q)
	q.Selection.Count = 10

	first, err := TopicTrends(records, q)
	require.NoError(t, err)
	second, err := TopicTrends(records, q)
	require.NoError(t, err)

	assert.Len(t, first.Distribution.Topics, 10)
	require.NotNil(t, first.Selection)
	assert.Equal(t, types.SampleMode, first.Selection.Mode)
	assert.Equal(t, first.Selection.Records, second.Selection.Records)
	assert.Len(t, first.Selection.Records, 10)
}
