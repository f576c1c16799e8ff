package dataset

import (
	"time"

	"call-insights-go/internal/types"
)

type SkillGroupCount struct {
	SkillGroup string `json:"skill_group"`
	Calls      int    `json:"calls"`
}

type Summary struct {
	TotalCalls       int                     `json:"total_calls"`
	SkillGroups      []SkillGroupCount       `json:"skill_groups"`
	Earliest         time.Time               `json:"earliest"`
	Latest           time.Time               `json:"latest"`
	ByTimeOfDay      map[types.TimeOfDay]int `json:"by_time_of_day"`
	DuplicateCallIDs []string                `json:"duplicate_call_ids"`
}

// Summarize produces the dataset facts shown before any filtering.
func Summarize(records []types.CallRecord) Summary {
	s := Summary{
		TotalCalls:       len(records),
		SkillGroups:      []SkillGroupCount{},
		ByTimeOfDay:      map[types.TimeOfDay]int{},
		DuplicateCallIDs: []string{},
	}
	for _, tod := range types.TimesOfDay {
		s.ByTimeOfDay[tod] = 0
	}

	groupIdx := map[string]int{}
	idCount := map[string]int{}
	for i, r := range records {
		if i == 0 || r.StartOfCall.Before(s.Earliest) {
			s.Earliest = r.StartOfCall
		}
		if i == 0 || r.StartOfCall.After(s.Latest) {
			s.Latest = r.StartOfCall
		}
		if idx, ok := groupIdx[r.SkillGroup]; ok {
			s.SkillGroups[idx].Calls++
		} else {
			groupIdx[r.SkillGroup] = len(s.SkillGroups)
			s.SkillGroups = append(s.SkillGroups, SkillGroupCount{SkillGroup: r.SkillGroup, Calls: 1})
		}
		s.ByTimeOfDay[r.TimeOfDay()]++

		idCount[r.CallID]++
		// report each duplicate once, at its second sighting
		if idCount[r.CallID] == 2 {
			s.DuplicateCallIDs = append(s.DuplicateCallIDs, r.CallID)
		}
	}
	return s
}
