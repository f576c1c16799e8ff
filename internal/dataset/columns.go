package dataset

import "strings"

type column string

const (
	colCallID         column = "call_id"
	colStartOfCall    column = "start_of_call"
	colSkillGroup     column = "skill_group"
	colPrimaryTopic   column = "primary_topic"
	colSecondaryTopic column = "secondary_topic"
	colSummary        column = "summary"
	colTranscript     column = "raw_transcript"
	colAgentName      column = "agent_name"
	colAgentManager   column = "agent_manager"
	colTalkTime       column = "talk_time"
	colHoldTime       column = "hold_time"
	colACWTime        column = "after_call_work_time"
	colUserResponse   column = "user_response"
	colIntent         column = "intent"
	colIntentScore    column = "intent_score"
)

// headerAliases maps normalized header names (lowercase, no separators) to columns.
// Both the analytics export names and our own names are accepted.
var headerAliases = map[string]column{
	"callsid":                 colCallID,
	"callid":                  colCallID,
	"startofcall":             colStartOfCall,
	"skillgroupname":          colSkillGroup,
	"skillgroup":              colSkillGroup,
	"primaryestimatedtopic":   colPrimaryTopic,
	"primarytopic":            colPrimaryTopic,
	"secondaryestimatedtopic": colSecondaryTopic,
	"secondarytopic":          colSecondaryTopic,
	"cleansummary":            colSummary,
	"summary":                 colSummary,
	"outputtext":              colTranscript,
	"rawtranscript":           colTranscript,
	"transcript":              colTranscript,
	"workername":              colAgentName,
	"agentname":               colAgentName,
	"workermanager":           colAgentManager,
	"agentmanager":            colAgentManager,
	"talktime":                colTalkTime,
	"holdtime":                colHoldTime,
	"acwtime":                 colACWTime,
	"aftercallworktime":       colACWTime,
	"userresponse":            colUserResponse,
	"intent":                  colIntent,
	"intentscore":             colIntentScore,
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		switch r {
		case '_', ' ', '-', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// mapColumns returns the index of each recognized column; the first match wins.
func mapColumns(header []string) map[column]int {
	cols := map[column]int{}
	for i, h := range header {
		c, ok := headerAliases[normalizeHeader(h)]
		if !ok {
			continue
		}
		if _, dup := cols[c]; !dup {
			cols[c] = i
		}
	}
	return cols
}
