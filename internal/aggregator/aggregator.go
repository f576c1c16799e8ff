package aggregator

import (
	"sort"

	"call-insights-go/internal/types"
)

// TopicOptions controls topic aggregation.
type TopicOptions struct {
	Field types.TopicField
	// IncludeEmpty counts empty topics under types.NoTopic instead of skipping them.
	IncludeEmpty bool
	// TopK keeps only the k highest counts; 0 keeps everything.
	TopK int
}

// Topics counts the records per topic, highest first.
func Topics(records []types.CallRecord, opts TopicOptions) types.TopicDistribution {
	field := opts.Field
	if field == "" {
		field = types.PrimaryTopic
	}
	counts := map[string]int{}
	var order []string
	for _, r := range records {
		topic := r.Topic(field)
		if topic == types.NoTopic && !opts.IncludeEmpty {
			continue
		}
		if _, seen := counts[topic]; !seen {
			order = append(order, topic)
		}
		counts[topic]++
	}

	out := make([]types.TopicCount, 0, len(order))
	for _, topic := range order {
		out = append(out, types.TopicCount{Topic: topic, Count: counts[topic]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if opts.TopK > 0 && len(out) > opts.TopK {
		out = out[:opts.TopK]
	}

	total := 0
	for _, tc := range out {
		total += tc.Count
	}
	return types.TopicDistribution{Field: field, Topics: out, Total: total}
}
