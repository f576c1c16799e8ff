package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"call-insights-go/internal/actionable"
	"call-insights-go/internal/dataset"
	"call-insights-go/internal/pipeline"
	"call-insights-go/internal/render"
	"call-insights-go/internal/selector"
	"call-insights-go/internal/types"
)

// Output formats accepted by --output.
const (
	textOut    = "text"
	jsonOut    = "json"
	csvOut     = "csv"
	parquetOut = "parquet"
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show topic trends for one skill group and date range.",
	Long: `Filter calls by date range and skill group, rank their topics, split them
into Morning, Afternoon and Evening, and show a selection of calls from one
time of day.

Examples:
  # Topic trends for billing calls in the first week of March
  calltrends trends --skill-group Billing --start 2024-03-01 --end 2024-03-08

  # Randomized sample of 10 evening calls with full details
  calltrends trends --variant fancy --time-of-day evening --count 10

  # Export the selected calls for a spreadsheet
  calltrends trends --output csv --output-file calls.csv`,
	Args: cobra.NoArgs,
	RunE: runTrends,
}

func init() {
	f := trendsCmd.Flags()
	f.String("start", "", "Start date (YYYY-MM-DD), inclusive; defaults to the first call")
	f.String("end", "", "End date (YYYY-MM-DD) at midnight; defaults to the day after the last call")
	f.String("skill-group", "", "Skill group to analyze; defaults to the first in the dataset")
	f.String("variant", "", "Preset: classic or filtered or fancy")
	f.Int("top-k", 0, "Keep only the top K topics (0 = all)")
	f.String("topic-field", "", "Topic column: primary or secondary")
	f.Bool("include-empty", true, "Count calls with no topic")
	f.String("time-of-day", "", "Bucket to drill into: Morning or Afternoon or Evening")
	f.Int("count", 0, "Calls to select: 5 or 10 or 15")
	f.String("mode", "", "Selection mode: recent or sample")
	f.Int64("seed", selector.DefaultSeed, "Seed for sample mode")
	f.String("output", textOut, "Output format: text or json or csv or parquet")
	f.String("output-file", "", "Optional path to write output to")
}

type trendsOutput struct {
	pipeline.Report
	Cards []actionable.ActionCard `json:"cards"`
}

func runTrends(cmd *cobra.Command, _ []string) error {
	started := time.Now()
	q, err := trendsQuery(cmd.Flags())
	if err != nil {
		return err
	}
	rep, err := pipeline.TopicTrends(state.records, q)
	if err != nil {
		return err
	}
	state.log.WithField("matched", rep.Matched).
		WithField("duration_ms", time.Since(started).Milliseconds()).
		Debug("topic trends computed")

	format, _ := cmd.Flags().GetString("output")
	outFile, _ := cmd.Flags().GetString("output-file")
	return withOutput(cmd.OutOrStdout(), outFile, func(w io.Writer) error {
		cards := actionable.Generate(rep)
		var selected []types.CallRecord
		if rep.Selection != nil {
			selected = rep.Selection.Records
		}
		switch format {
		case textOut:
			return render.Report(w, rep, cards)
		case jsonOut:
			return render.JSON(w, trendsOutput{Report: rep, Cards: cards})
		case csvOut:
			return render.CSV(w, selected, rep.Columns)
		case parquetOut:
			return dataset.WriteParquet(w, selected)
		default:
			return fmt.Errorf("unknown output format %q", format)
		}
	})
}

// trendsQuery layers config defaults, then the variant preset, then flags the user set.
func trendsQuery(flags *pflag.FlagSet) (pipeline.Query, error) {
	cfg := state.cfg
	q := pipeline.Query{
		TopicField:         cfg.TopicField,
		IncludeEmptyTopics: cfg.IncludeEmptyTopics,
		TopK:               cfg.TopK,
		MinValuesRequired:  cfg.MinValuesRequired,
		Columns:            types.DetailedColumns,
		Selection: selector.Request{
			Count: cfg.SelectionCount,
			Mode:  cfg.SelectionMode,
			Seed:  cfg.SelectionSeed,
		},
	}

	start, _ := flags.GetString("start")
	end, _ := flags.GetString("end")
	var err error
	if q.Start, q.End, err = dateRange(start, end); err != nil {
		return q, err
	}

	q.SkillGroup, _ = flags.GetString("skill-group")
	if q.SkillGroup == "" {
		if groups := pipeline.SkillGroups(state.records); len(groups) > 0 {
			q.SkillGroup = groups[0]
		}
	}

	if name, _ := flags.GetString("variant"); name != "" {
		variant, err := pipeline.LookupVariant(name)
		if err != nil {
			return q, err
		}
		variant.Apply(&q)
	}

	if flags.Changed("top-k") {
		q.TopK, _ = flags.GetInt("top-k")
		if q.TopK < 0 {
			return q, fmt.Errorf("--top-k cannot be negative (received %d)", q.TopK)
		}
	}
	if flags.Changed("topic-field") {
		v, _ := flags.GetString("topic-field")
		if q.TopicField, err = types.ParseTopicField(v); err != nil {
			return q, err
		}
	}
	if flags.Changed("include-empty") {
		q.IncludeEmptyTopics, _ = flags.GetBool("include-empty")
	}
	if v, _ := flags.GetString("time-of-day"); v != "" {
		if q.TimeOfDay, err = types.ParseTimeOfDay(v); err != nil {
			return q, err
		}
	}
	if flags.Changed("count") {
		q.Selection.Count, _ = flags.GetInt("count")
	}
	if v, _ := flags.GetString("mode"); v != "" {
		if q.Selection.Mode, err = selector.ParseMode(v); err != nil {
			return q, err
		}
	}
	if flags.Changed("seed") {
		q.Selection.Seed, _ = flags.GetInt64("seed")
	}
	return q, nil
}

// dateRange defaults to the dataset span, ending at midnight after the last call.
func dateRange(start, end string) (time.Time, time.Time, error) {
	from := pipeline.DateOf(state.summary.Earliest)
	to := pipeline.DateOf(state.summary.Latest).AddDate(0, 0, 1)
	var err error
	if start != "" {
		if from, err = pipeline.ParseDate(start); err != nil {
			return from, to, fmt.Errorf("--start: %w", err)
		}
	}
	if end != "" {
		if to, err = pipeline.ParseDate(end); err != nil {
			return from, to, fmt.Errorf("--end: %w", err)
		}
	}
	return from, to, nil
}

// withOutput runs write against stdout, or against the named file when path is set.
func withOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	state.log.WithField("path", path).Info("output written")
	return nil
}
