package render

import (
	"strconv"

	"call-insights-go/internal/types"
)

// Field is one labelled value of a call detail panel.
type Field struct {
	Label string
	Key   string
	Value func(types.CallRecord) string
}

func seconds(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

var (
	fieldCallID    = Field{"Call SID", "call_id", func(r types.CallRecord) string { return r.CallID }}
	fieldPrimary   = Field{"Primary Topic", "primary_topic", func(r types.CallRecord) string { return r.PrimaryTopic }}
	fieldSecondary = Field{"Secondary Topic", "secondary_topic", func(r types.CallRecord) string { return r.SecondaryTopic }}
	fieldSkill     = Field{"Destination Skill Group", "skill_group", func(r types.CallRecord) string { return r.SkillGroup }}
	fieldAgent     = Field{"Agent", "agent_name", func(r types.CallRecord) string { return r.AgentName }}
	fieldManager   = Field{"Manager", "agent_manager", func(r types.CallRecord) string { return r.AgentManager }}
	fieldTalk      = Field{"Talk Time", "talk_time", func(r types.CallRecord) string { return seconds(r.TalkTime) }}
	fieldHold      = Field{"Hold Time", "hold_time", func(r types.CallRecord) string { return seconds(r.HoldTime) }}
	fieldACW       = Field{"After Call Work Time", "after_call_work_time", func(r types.CallRecord) string { return seconds(r.AfterCallWorkTime) }}
	fieldUtterance = Field{"User Utterance To IVR", "user_response", func(r types.CallRecord) string { return r.UserResponse }}
	fieldIntent    = Field{"Intent Identified (IVR)", "intent", func(r types.CallRecord) string { return r.Intent }}
	fieldScore     = Field{"Intent Confidence Score (IVR)", "intent_score", func(r types.CallRecord) string {
		return strconv.FormatFloat(r.IntentScore, 'f', 2, 64)
	}}
	fieldStarted    = Field{"Start Of Call", "start_of_call", func(r types.CallRecord) string { return r.StartOfCall.Format("2006-01-02 15:04:05Z07:00") }}
	fieldSummary    = Field{"Summary", "summary", func(r types.CallRecord) string { return r.Summary }}
	fieldTranscript = Field{"Raw Transcription", "raw_transcript", func(r types.CallRecord) string { return r.RawTranscript }}
)

// Fields returns the detail fields shown for a column set.
func Fields(set types.ColumnSet) []Field {
	if set == types.BasicColumns {
		return []Field{fieldCallID, fieldPrimary, fieldSummary, fieldTranscript}
	}
	return []Field{
		fieldCallID, fieldStarted, fieldPrimary, fieldSecondary, fieldSkill, fieldAgent, fieldManager,
		fieldTalk, fieldHold, fieldACW,
		fieldUtterance, fieldIntent, fieldScore,
		fieldSummary, fieldTranscript,
	}
}
