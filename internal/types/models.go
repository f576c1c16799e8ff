package types

import "time"

// CallRecord is one transcribed call as loaded from the dataset.
// Timestamps are UTC-normalized by the loader.
type CallRecord struct {
	CallID            string    `json:"call_id"`
	StartOfCall       time.Time `json:"start_of_call"`
	SkillGroup        string    `json:"skill_group"`
	PrimaryTopic      string    `json:"primary_topic,omitempty"`
	SecondaryTopic    string    `json:"secondary_topic,omitempty"`
	Summary           string    `json:"summary,omitempty"`
	RawTranscript     string    `json:"raw_transcript,omitempty"`
	AgentName         string    `json:"agent_name,omitempty"`
	AgentManager      string    `json:"agent_manager,omitempty"`
	TalkTime          float64   `json:"talk_time"`
	HoldTime          float64   `json:"hold_time"`
	AfterCallWorkTime float64   `json:"after_call_work_time"`
	UserResponse      string    `json:"user_response,omitempty"`
	Intent            string    `json:"intent,omitempty"`
	IntentScore       float64   `json:"intent_score"`
}

// Topic returns the value of the requested topic field.
func (r CallRecord) Topic(field TopicField) string {
	if field == SecondaryTopic {
		return r.SecondaryTopic
	}
	return r.PrimaryTopic
}

// TimeOfDay derives the record's bucket from its start time.
func (r CallRecord) TimeOfDay() TimeOfDay {
	return TimeOfDayOf(r.StartOfCall)
}

// TopicCount is a single entry of a TopicDistribution.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// TopicDistribution holds topic counts ordered by descending count.
// Ties keep the order in which topics were first encountered.
type TopicDistribution struct {
	Field  TopicField   `json:"field"`
	Topics []TopicCount `json:"topics"`
	Total  int          `json:"total"`
}

// Count returns the count recorded for topic, or 0.
func (d TopicDistribution) Count(topic string) int {
	for _, tc := range d.Topics {
		if tc.Topic == topic {
			return tc.Count
		}
	}
	return 0
}

// Top returns the highest-count entry, if any.
func (d TopicDistribution) Top() (TopicCount, bool) {
	if len(d.Topics) == 0 {
		return TopicCount{}, false
	}
	return d.Topics[0], true
}

// Share returns the fraction of Total held by tc.
func (d TopicDistribution) Share(tc TopicCount) float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(tc.Count) / float64(d.Total)
}
