package actionable

import (
	"fmt"

	"call-insights-go/internal/pipeline"
)

// Severity of a card, used by renderers for colour.
const (
	Info    = "info"
	Warning = "warning"
)

type ActionCard struct {
	Severity string `json:"severity"`
	Insight  string `json:"insight"`
	Action   string `json:"action"`
}

// dominantShare is the share above which a single topic is called out as dominant.
const dominantShare = 0.35

func Generate(rep pipeline.Report) []ActionCard {
	if rep.Matched == 0 {
		return []ActionCard{{
			Severity: Warning,
			Insight:  "No calls matched the selected dates and skill group",
			Action:   "Widen the date range or pick another skill group",
		}}
	}

	var cards []ActionCard
	if top, ok := rep.Distribution.Top(); ok {
		share := rep.Distribution.Share(top)
		card := ActionCard{
			Severity: Info,
			Insight:  fmt.Sprintf("Top topic is %s (%.0f%% of %d calls)", topicLabel(top.Topic), share*100, rep.Distribution.Total),
			Action:   "Monitor and collect more data",
		}
		if share >= dominantShare {
			card.Action = fmt.Sprintf("Review %s calls for a shared root cause", topicLabel(top.Topic))
		}
		cards = append(cards, card)
	}

	for _, b := range rep.Buckets.Buckets {
		if b.Total == 0 {
			continue
		}
		if b.Suppressed {
			cards = append(cards, ActionCard{
				Severity: Warning,
				Insight:  fmt.Sprintf("%s has only %d calls", b.TimeOfDay, b.Total),
				Action:   fmt.Sprintf("Not enough data to chart %s (need %d)", b.TimeOfDay, rep.Buckets.MinValuesRequired),
			})
			continue
		}
		if top, ok := b.Topics.Top(); ok {
			cards = append(cards, ActionCard{
				Severity: Info,
				Insight:  fmt.Sprintf("%s is led by %s (%d of %d calls)", b.TimeOfDay, topicLabel(top.Topic), top.Count, b.Total),
				Action:   fmt.Sprintf("Staff %s shifts for %s", b.TimeOfDay, topicLabel(top.Topic)),
			})
		}
	}

	if sel := rep.Selection; sel != nil {
		switch {
		case sel.Suppressed:
			cards = append(cards, ActionCard{
				Severity: Warning,
				Insight:  fmt.Sprintf("Call details withheld for %s (%d calls)", rep.TimeOfDay, sel.Available),
				Action:   "Pick another time of day",
			})
		case sel.Insufficient:
			cards = append(cards, ActionCard{
				Severity: Warning,
				Insight:  fmt.Sprintf("Showing all %d calls in %s; %d were requested", sel.Available, rep.TimeOfDay, sel.Requested),
				Action:   "Lower the number of summaries or widen the date range",
			})
		}
	}
	return cards
}

func topicLabel(topic string) string {
	if topic == "" {
		return "(no topic)"
	}
	return topic
}
