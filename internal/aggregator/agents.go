package aggregator

import (
	"sort"

	"call-insights-go/internal/types"
)

// AgentStats summarizes the calls handled by one agent.
type AgentStats struct {
	Agent                string  `json:"agent"`
	Manager              string  `json:"manager"`
	Calls                int     `json:"calls"`
	AvgTalkTime          float64 `json:"avg_talk_time"`
	AvgHoldTime          float64 `json:"avg_hold_time"`
	AvgAfterCallWorkTime float64 `json:"avg_after_call_work_time"`
	AvgHandleTime        float64 `json:"avg_handle_time"` // talk + hold + acw
	TopTopic             string  `json:"top_topic"`
}

// AgentPerformance groups records by agent, busiest first.
func AgentPerformance(records []types.CallRecord) []AgentStats {
	type acc struct {
		stats        AgentStats
		talk, hold   float64
		acw          float64
		agentRecords []types.CallRecord
	}
	byAgent := map[string]*acc{}
	var order []string
	for _, r := range records {
		a, ok := byAgent[r.AgentName]
		if !ok {
			a = &acc{stats: AgentStats{Agent: r.AgentName, Manager: r.AgentManager}}
			byAgent[r.AgentName] = a
			order = append(order, r.AgentName)
		}
		a.stats.Calls++
		a.talk += r.TalkTime
		a.hold += r.HoldTime
		a.acw += r.AfterCallWorkTime
		a.agentRecords = append(a.agentRecords, r)
	}

	out := make([]AgentStats, 0, len(order))
	for _, name := range order {
		a := byAgent[name]
		n := float64(a.stats.Calls)
		s := a.stats
		s.AvgTalkTime = a.talk / n
		s.AvgHoldTime = a.hold / n
		s.AvgAfterCallWorkTime = a.acw / n
		s.AvgHandleTime = s.AvgTalkTime + s.AvgHoldTime + s.AvgAfterCallWorkTime
		if top, ok := Topics(a.agentRecords, TopicOptions{Field: types.PrimaryTopic}).Top(); ok {
			s.TopTopic = top.Topic
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Calls > out[j].Calls })
	return out
}
