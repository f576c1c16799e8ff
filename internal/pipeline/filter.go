package pipeline

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"call-insights-go/internal/types"
)

// DateLayout is the calendar date format accepted from callers.
const DateLayout = "2006-01-02"

// FilterResult is the date/skill-group subset plus flags callers may warn on.
type FilterResult struct {
	Records           []types.CallRecord
	Start             time.Time
	End               time.Time
	SkillGroup        string
	RangeInverted     bool
	UnknownSkillGroup bool
}

// DateOf drops the time of day from t and returns UTC midnight of its calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// Filter keeps the records with start ≤ StartOfCall ≤ end and an exact
// skill-group match. Both bounds are UTC midnight of their dates. An inverted
// range or a skill group absent from records yields an empty subset.
func Filter(records []types.CallRecord, start, end time.Time, skillGroup string) FilterResult {
	res := FilterResult{
		Records:    []types.CallRecord{},
		Start:      DateOf(start),
		End:        DateOf(end),
		SkillGroup: skillGroup,
	}
	if res.Start.After(res.End) {
		res.RangeInverted = true
		return res
	}
	if !slices.Contains(SkillGroups(records), skillGroup) {
		res.UnknownSkillGroup = true
		return res
	}
	for _, r := range records {
		t := r.StartOfCall.UTC()
		if t.Before(res.Start) || t.After(res.End) {
			continue
		}
		if r.SkillGroup != skillGroup {
			continue
		}
		res.Records = append(res.Records, r)
	}
	return res
}

// SkillGroups returns the distinct skill groups in first-seen order.
func SkillGroups(records []types.CallRecord) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, r := range records {
		if seen[r.SkillGroup] {
			continue
		}
		seen[r.SkillGroup] = true
		out = append(out, r.SkillGroup)
	}
	return out
}

// FindCalls returns every record carrying callID. Call ids are not
// guaranteed unique, so more than one match is possible.
func FindCalls(records []types.CallRecord, callID string) []types.CallRecord {
	var out []types.CallRecord
	for _, r := range records {
		if r.CallID == callID {
			out = append(out, r)
		}
	}
	return out
}
