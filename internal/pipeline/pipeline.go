// Package pipeline narrows the call table and composes the topic-trends view.
package pipeline

import (
	"fmt"
	"time"

	"call-insights-go/internal/aggregator"
	"call-insights-go/internal/selector"
	"call-insights-go/internal/types"
)

// Query carries the parameters of one topic-trends interaction.
type Query struct {
	Start              time.Time
	End                time.Time
	SkillGroup         string
	TopicField         types.TopicField
	IncludeEmptyTopics bool
	TopK               int
	MinValuesRequired  int
	// TimeOfDay is the bucket to drill into; empty picks the first selectable one.
	TimeOfDay types.TimeOfDay
	Selection selector.Request
	Columns   types.ColumnSet
}

// Report is everything a caller needs to render the topic-trends screen.
type Report struct {
	Start             string                  `json:"start"`
	End               string                  `json:"end"`
	SkillGroup        string                  `json:"skill_group"`
	Matched           int                     `json:"matched"`
	RangeInverted     bool                    `json:"range_inverted,omitempty"`
	UnknownSkillGroup bool                    `json:"unknown_skill_group,omitempty"`
	Distribution      types.TopicDistribution `json:"distribution"`
	Buckets           aggregator.BucketTable  `json:"buckets"`
	Selectable        []types.TimeOfDay       `json:"selectable"`
	TimeOfDay         types.TimeOfDay         `json:"time_of_day,omitempty"`
	// BucketTopics is nil when the drilled-into bucket is suppressed or none was available.
	BucketTopics *types.TopicDistribution `json:"bucket_topics,omitempty"`
	Selection    *selector.Selection      `json:"selection,omitempty"`
	Columns      types.ColumnSet          `json:"columns"`
	Warnings     []string                 `json:"warnings"`
}

// TopicTrends runs filter, topic aggregation, time bucketing and record
// selection over records. Small or empty inputs produce warnings rather than
// errors; only an out-of-contract selection request fails.
func TopicTrends(records []types.CallRecord, q Query) (Report, error) {
	if err := q.Selection.Validate(); err != nil {
		return Report{}, err
	}
	if q.TimeOfDay != "" {
		tod, err := types.ParseTimeOfDay(string(q.TimeOfDay))
		if err != nil {
			return Report{}, err
		}
		q.TimeOfDay = tod
	}
	minValues := q.MinValuesRequired
	if minValues <= 0 {
		minValues = aggregator.DefaultMinValuesRequired
	}
	columns := q.Columns
	if columns == "" {
		columns = types.DetailedColumns
	}

	filtered := Filter(records, q.Start, q.End, q.SkillGroup)
	rep := Report{
		Start:             filtered.Start.Format(DateLayout),
		End:               filtered.End.Format(DateLayout),
		SkillGroup:        q.SkillGroup,
		Matched:           len(filtered.Records),
		RangeInverted:     filtered.RangeInverted,
		UnknownSkillGroup: filtered.UnknownSkillGroup,
		Columns:           columns,
		Warnings:          []string{},
	}
	if filtered.RangeInverted {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("Start date %s is after end date %s.", rep.Start, rep.End))
	}
	if filtered.UnknownSkillGroup {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("Skill group %q does not appear in the dataset.", q.SkillGroup))
	}

	rep.Distribution = aggregator.Topics(filtered.Records, aggregator.TopicOptions{
		Field:        q.TopicField,
		IncludeEmpty: q.IncludeEmptyTopics,
		TopK:         q.TopK,
	})
	rep.Buckets = aggregator.BucketByTime(filtered.Records, minValues)
	rep.Selectable = rep.Buckets.Selectable()
	if rep.Selectable == nil {
		rep.Selectable = []types.TimeOfDay{}
	}
	for _, b := range rep.Buckets.Suppressed() {
		if b.Total == 0 {
			continue
		}
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("Skipping %s: only %d calls, need at least %d.", b.TimeOfDay, b.Total, minValues))
	}

	rep.TimeOfDay = q.TimeOfDay
	if rep.TimeOfDay == "" && len(rep.Selectable) > 0 {
		rep.TimeOfDay = rep.Selectable[0]
	}
	if rep.TimeOfDay == "" {
		return rep, nil
	}

	bucket, _ := rep.Buckets.Bucket(rep.TimeOfDay)
	req := q.Selection
	req.MinValues = minValues
	sel, err := selector.Select(bucket.Records, req)
	if err != nil {
		return Report{}, err
	}
	rep.Selection = &sel
	if sel.Suppressed {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("Not enough calls in %s to show details (%d).", rep.TimeOfDay, sel.Available))
		return rep, nil
	}
	topics := bucket.Topics
	rep.BucketTopics = &topics
	if sel.Insufficient {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("Only %d of %d requested calls available in %s.", sel.Available, sel.Requested, rep.TimeOfDay))
	}
	return rep, nil
}
