package aggregator

import "call-insights-go/internal/types"

// DefaultMinValuesRequired is the smallest bucket that still gets a chart.
const DefaultMinValuesRequired = 3

// BucketResult is one time-of-day slice of a subset.
type BucketResult struct {
	TimeOfDay  types.TimeOfDay         `json:"time_of_day"`
	Records    []types.CallRecord      `json:"-"`
	Total      int                     `json:"total"`
	Topics     types.TopicDistribution `json:"topics"`
	Suppressed bool                    `json:"suppressed"`
}

// BucketTable holds one BucketResult per time of day, in display order.
type BucketTable struct {
	Buckets           []BucketResult `json:"buckets"`
	MinValuesRequired int            `json:"min_values_required"`
}

// BucketByTime partitions records by time of day and counts primary topics
// per bucket. Buckets with fewer than minValues records are flagged
// suppressed; their distribution is still computed.
func BucketByTime(records []types.CallRecord, minValues int) BucketTable {
	if minValues <= 0 {
		minValues = DefaultMinValuesRequired
	}
	parts := make(map[types.TimeOfDay][]types.CallRecord, len(types.TimesOfDay))
	for _, r := range records {
		tod := r.TimeOfDay()
		parts[tod] = append(parts[tod], r)
	}

	table := BucketTable{MinValuesRequired: minValues}
	for _, tod := range types.TimesOfDay {
		recs := parts[tod]
		table.Buckets = append(table.Buckets, BucketResult{
			TimeOfDay:  tod,
			Records:    recs,
			Total:      len(recs),
			Topics:     Topics(recs, TopicOptions{Field: types.PrimaryTopic, IncludeEmpty: true}),
			Suppressed: len(recs) < minValues,
		})
	}
	return table
}

// Bucket returns the result for tod.
func (t BucketTable) Bucket(tod types.TimeOfDay) (BucketResult, bool) {
	for _, b := range t.Buckets {
		if b.TimeOfDay == tod {
			return b, true
		}
	}
	return BucketResult{}, false
}

// Selectable lists the buckets that can be drilled into.
func (t BucketTable) Selectable() []types.TimeOfDay {
	var out []types.TimeOfDay
	for _, b := range t.Buckets {
		if !b.Suppressed {
			out = append(out, b.TimeOfDay)
		}
	}
	return out
}

// Suppressed lists the buckets below the minimum sample size.
func (t BucketTable) Suppressed() []BucketResult {
	var out []BucketResult
	for _, b := range t.Buckets {
		if b.Suppressed {
			out = append(out, b)
		}
	}
	return out
}

// Count returns the cross-tabulated count for (tod, topic).
func (t BucketTable) Count(tod types.TimeOfDay, topic string) int {
	b, ok := t.Bucket(tod)
	if !ok {
		return 0
	}
	return b.Topics.Count(topic)
}
