// Package render writes analytics results for terminals and exports.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"

	"call-insights-go/internal/actionable"
	"call-insights-go/internal/aggregator"
	"call-insights-go/internal/dataset"
	"call-insights-go/internal/pipeline"
	"call-insights-go/internal/types"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	warnColor    = color.New(color.FgYellow)
	okColor      = color.New(color.FgGreen)
	badColor     = color.New(color.FgRed, color.Bold)
)

// labelWidth reserves room for the field column and table borders of a detail panel.
const labelWidth = 40

// valueWidth sizes free text in detail panels to the terminal, 80 columns when unknown.
func valueWidth() int {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	return min(max(width-labelWidth, 30), 120)
}

// Report renders the whole topic-trends screen as text.
func Report(w io.Writer, rep pipeline.Report, cards []actionable.ActionCard) error {
	headingColor.Fprintf(w, "Topic Trends: %s, %s to %s (%d calls)\n", rep.SkillGroup, rep.Start, rep.End, rep.Matched)
	for _, msg := range rep.Warnings {
		warnColor.Fprintf(w, "⚠️  %s\n", msg)
	}

	headingColor.Fprintln(w, "\nTopic Distribution")
	if err := Distribution(w, rep.Distribution); err != nil {
		return err
	}

	headingColor.Fprintln(w, "\nTopics By Time Of Day")
	if err := Buckets(w, rep.Buckets); err != nil {
		return err
	}

	if rep.BucketTopics != nil {
		headingColor.Fprintf(w, "\nTopic Distribution for %s\n", rep.TimeOfDay)
		if err := Distribution(w, *rep.BucketTopics); err != nil {
			return err
		}
	}

	if rep.Selection != nil && len(rep.Selection.Records) > 0 {
		headingColor.Fprintln(w, "\nSummaries With Original Transcriptions")
		for _, r := range rep.Selection.Records {
			if err := CallDetail(w, r, rep.Columns); err != nil {
				return err
			}
		}
	}

	if len(cards) > 0 {
		headingColor.Fprintln(w, "\nInsights")
		Cards(w, cards)
	}
	return nil
}

// Distribution writes a ranked topic table.
func Distribution(w io.Writer, dist types.TopicDistribution) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Topic", "Count", "Share"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for i, tc := range dist.Topics {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			topicLabel(tc.Topic),
			strconv.Itoa(tc.Count),
			fmt.Sprintf("%.1f%%", dist.Share(tc)*100),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// Buckets writes one row per time of day with its status.
func Buckets(w io.Writer, bt aggregator.BucketTable) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Time Of Day", "Calls", "Top Topic", "Status"})
	var data [][]string
	for _, b := range bt.Buckets {
		top := "-"
		if tc, ok := b.Topics.Top(); ok {
			top = fmt.Sprintf("%s (%d)", topicLabel(tc.Topic), tc.Count)
		}
		status := okColor.Sprint("OK")
		if b.Suppressed {
			status = badColor.Sprintf("SUPPRESSED (<%d)", bt.MinValuesRequired)
		}
		data = append(data, []string{string(b.TimeOfDay), strconv.Itoa(b.Total), top, status})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// CallDetail writes a two-column panel for one call.
func CallDetail(w io.Writer, r types.CallRecord, set types.ColumnSet) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Field", "Value"})
	width := valueWidth()
	var data [][]string
	for _, f := range Fields(set) {
		data = append(data, []string{f.Label, truncate(f.Value(r), width)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// Agents writes the agent performance table.
func Agents(w io.Writer, stats []aggregator.AgentStats) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Agent", "Manager", "Calls", "Avg Talk", "Avg Hold", "Avg ACW", "Avg Handle", "Top Topic"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, s := range stats {
		data = append(data, []string{
			s.Agent,
			s.Manager,
			strconv.Itoa(s.Calls),
			fmt.Sprintf("%.1f", s.AvgTalkTime),
			fmt.Sprintf("%.1f", s.AvgHoldTime),
			fmt.Sprintf("%.1f", s.AvgAfterCallWorkTime),
			fmt.Sprintf("%.1f", s.AvgHandleTime),
			topicLabel(s.TopTopic),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// Summary writes the dataset overview.
func Summary(w io.Writer, s dataset.Summary) error {
	headingColor.Fprintf(w, "%d calls from %s to %s\n", s.TotalCalls,
		s.Earliest.Format(pipeline.DateLayout), s.Latest.Format(pipeline.DateLayout))
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Skill Group", "Calls"})
	var data [][]string
	for _, g := range s.SkillGroups {
		data = append(data, []string{g.SkillGroup, strconv.Itoa(g.Calls)})
	}
	for _, tod := range types.TimesOfDay {
		data = append(data, []string{"(" + string(tod) + ")", strconv.Itoa(s.ByTimeOfDay[tod])})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if len(s.DuplicateCallIDs) > 0 {
		warnColor.Fprintf(w, "⚠️  %d call ids appear more than once: %s\n", len(s.DuplicateCallIDs), strings.Join(s.DuplicateCallIDs, ", "))
	}
	return nil
}

// Cards writes insight cards, warnings in yellow.
func Cards(w io.Writer, cards []actionable.ActionCard) {
	for _, c := range cards {
		paint := okColor
		if c.Severity == actionable.Warning {
			paint = warnColor
		}
		paint.Fprintf(w, "• %s\n", c.Insight)
		_, _ = fmt.Fprintf(w, "  → %s\n", c.Action)
	}
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// CSV writes records with the columns of set.
func CSV(w io.Writer, records []types.CallRecord, set types.ColumnSet) error {
	cw := csv.NewWriter(w)
	fields := Fields(set)
	header := make([]string, 0, len(fields))
	for _, f := range fields {
		header = append(header, f.Key)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := make([]string, 0, len(fields))
		for _, f := range fields {
			row = append(row, f.Value(r))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func topicLabel(topic string) string {
	if topic == types.NoTopic {
		return "(no topic)"
	}
	return topic
}

func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
