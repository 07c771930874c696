package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/llm"
	"github.com/abhisek/examprep/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

func newLLMCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "llm",
		Short: "Inspect the log of LLM calls made while generating and grading questions",
	}
	c.AddCommand(newLLMListCmd(), newLLMViewCmd(), newLLMStatsCmd())
	return c
}

func newLLMListCmd() *cobra.Command {
	var opts store.QueryOpts
	c := &cobra.Command{
		Use:   "list",
		Short: "List recent LLM calls",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEvents(cmd, func(repo store.EventRepo) error {
				events, err := repo.QueryLLMEvents(cmd.Context(), opts)
				if err != nil {
					return fmt.Errorf("query events: %w", err)
				}
				writeEventTable(cmd.OutOrStdout(), events)
				return nil
			})
		},
	}
	c.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Number of calls to show")
	c.Flags().StringVarP(&opts.Purpose, "purpose", "p", "", "Only show one purpose (question-gen or evaluation)")
	return c
}

func newLLMViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <id>",
		Short: "Show the prompt and reply of one LLM call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid event id %q", args[0])
			}
			return withEvents(cmd, func(repo store.EventRepo) error {
				e, err := repo.GetLLMEvent(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("get event: %w", err)
				}
				if e == nil {
					return fmt.Errorf("no LLM call with id %d", id)
				}
				writeEvent(cmd.OutOrStdout(), e)
				return nil
			})
		},
	}
}

func newLLMStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize token usage and estimated cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEvents(cmd, func(repo store.EventRepo) error {
				byPurpose, err := repo.LLMUsageByPurpose(cmd.Context())
				if err != nil {
					return fmt.Errorf("usage by purpose: %w", err)
				}
				byModel, err := repo.LLMUsageByModel(cmd.Context())
				if err != nil {
					return fmt.Errorf("usage by model: %w", err)
				}
				writeUsage(cmd.OutOrStdout(), byPurpose, byModel)
				return nil
			})
		},
	}
}

// withEvents opens the store for the duration of fn.
func withEvents(cmd *cobra.Command, fn func(store.EventRepo) error) error {
	s, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()
	return fn(s.EventRepo())
}

func writeEventTable(out io.Writer, events []store.LLMEvent) {
	if len(events) == 0 {
		fmt.Fprintln(out, "No LLM calls recorded.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tPURPOSE\tMODEL\tIN\tOUT\tMS\tOK")
	for _, e := range events {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			e.ID, e.Timestamp.Local().Format(timeLayout), e.Purpose, e.Model,
			e.InputTokens, e.OutputTokens, e.LatencyMs, okMark(e.Success))
	}
	tw.Flush()
}

func writeEvent(out io.Writer, e *store.LLMEvent) {
	tw := tabwriter.NewWriter(out, 0, 0, 1, ' ', 0)
	fields := [][2]string{
		{"ID", strconv.Itoa(e.ID)},
		{"Time", e.Timestamp.Local().Format(timeLayout)},
		{"Provider", e.Provider},
		{"Model", e.Model},
		{"Purpose", e.Purpose},
		{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
		{"Latency", (time.Duration(e.LatencyMs) * time.Millisecond).String()},
		{"Success", strconv.FormatBool(e.Success)},
	}
	if e.ErrorMessage != "" {
		fields = append(fields, [2]string{"Error", e.ErrorMessage})
	}
	for _, f := range fields {
		fmt.Fprintf(tw, "%s:\t%s\n", f[0], f[1])
	}
	tw.Flush()

	for _, section := range [][2]string{{"Request", e.RequestBody}, {"Response", e.ResponseBody}} {
		body := section[1]
		if body == "" {
			body = "(not captured)"
		}
		fmt.Fprintf(out, "\n== %s ==\n%s\n", section[0], body)
	}
}

func writeUsage(out io.Writer, byPurpose []store.PurposeUsage, byModel []store.ModelUsage) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(out, "No LLM usage recorded yet.")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PURPOSE\tCALLS\tINPUT\tOUTPUT\tAVG MS\t")
	var calls, in, outTok int
	for _, u := range byPurpose {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t\n", u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		in += u.InputTokens
		outTok += u.OutputTokens
	}
	fmt.Fprintf(tw, "total\t%d\t%d\t%d\t\t\n", calls, in, outTok)
	tw.Flush()

	if len(byModel) == 0 {
		return
	}
	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "MODEL\tCALLS\tINPUT\tOUTPUT\tCOST (USD)\t")
	var total float64
	var unpriced []string
	for _, u := range byModel {
		cost := "?"
		if price := llm.LookupCost(u.Model); price != nil {
			c := price.Cost(u.InputTokens, u.OutputTokens)
			total += c
			cost = formatCost(c)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t\n", u.Model, u.Calls, u.InputTokens, u.OutputTokens, cost)
	}
	label := "total"
	if len(unpriced) > 0 {
		label = "total (partial)"
	}
	fmt.Fprintf(tw, "%s\t\t\t\t%s\t\n", label, formatCost(total))
	tw.Flush()

	if len(unpriced) > 0 {
		fmt.Fprintf(out, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
	}
}

func okMark(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
