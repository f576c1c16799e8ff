package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"call-insights-go/internal/aggregator"
	"call-insights-go/internal/pipeline"
	"call-insights-go/internal/render"
	"call-insights-go/internal/types"
)

var skillGroupsCmd = &cobra.Command{
	Use:   "skill-groups",
	Short: "List the skill groups in the dataset.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, g := range pipeline.SkillGroups(state.records) {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), g); err != nil {
				return err
			}
		}
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show dataset size, date span and per-group call counts.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return render.JSON(cmd.OutOrStdout(), state.summary)
		}
		return render.Summary(cmd.OutOrStdout(), state.summary)
	},
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Rank agents by calls handled with average handling times.",
	Long: `Agent Performance view: calls per agent in a skill group and date range
with average talk, hold and after-call-work times.

Examples:
  calltrends agents --skill-group Billing --start 2024-03-01 --end 2024-04-01`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		from, to, err := dateRange(start, end)
		if err != nil {
			return err
		}
		group, _ := cmd.Flags().GetString("skill-group")
		if group == "" {
			if groups := pipeline.SkillGroups(state.records); len(groups) > 0 {
				group = groups[0]
			}
		}
		filtered := pipeline.Filter(state.records, from, to, group)
		stats := aggregator.AgentPerformance(filtered.Records)

		format, _ := cmd.Flags().GetString("output")
		return withOutput(cmd.OutOrStdout(), "", func(w io.Writer) error {
			if format == jsonOut {
				return render.JSON(w, stats)
			}
			return render.Agents(w, stats)
		})
	},
}

var callCmd = &cobra.Command{
	Use:   "call <call-id>",
	Short: "Show every field of one call.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		matches := pipeline.FindCalls(state.records, args[0])
		if len(matches) == 0 {
			return fmt.Errorf("call %q not found", args[0])
		}
		for _, r := range matches {
			if err := render.CallDetail(cmd.OutOrStdout(), r, types.DetailedColumns); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	summaryCmd.Flags().Bool("json", false, "Print the summary as JSON")

	agentsCmd.Flags().String("start", "", "Start date (YYYY-MM-DD), inclusive")
	agentsCmd.Flags().String("end", "", "End date (YYYY-MM-DD) at midnight")
	agentsCmd.Flags().String("skill-group", "", "Skill group to analyze; defaults to the first in the dataset")
	agentsCmd.Flags().String("output", textOut, "Output format: text or json")
}
