package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/escuchalab/escucha/internal/ai"
	"github.com/escuchalab/escucha/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM activity",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if purpose != "" {
			events = filterByPurpose(events, purpose)
		}
		if len(events) == 0 {
			fmt.Println("No LLM events recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTIME\tPURPOSE\tMODEL\tIN\tOUT\tMS\tOK")
		for _, e := range events {
			status := "✓"
			if !e.Success {
				status = "✗"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				e.Purpose,
				e.Model,
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				status,
			)
		}
		return w.Flush()
	},
}

func filterByPurpose(events []store.LLMEvent, purpose string) []store.LLMEvent {
	var out []store.LLMEvent
	for _, e := range events {
		if e.Purpose == purpose {
			out = append(out, e)
		}
	}
	return out
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response for one event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid event id %q", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		fmt.Println(sectionStyle.Render(fmt.Sprintf("Event %d", e.ID)))
		fmt.Printf("time      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("provider  %s\n", e.Provider)
		fmt.Printf("model     %s\n", e.Model)
		fmt.Printf("purpose   %s\n", e.Purpose)
		fmt.Printf("tokens    %d in / %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Printf("latency   %dms\n", e.LatencyMs)
		if e.ErrorMessage != "" {
			fmt.Printf("error     %s\n", e.ErrorMessage)
		}

		printEventBody("Request", e.RequestBody)
		printEventBody("Response", e.ResponseBody)
		return nil
	},
}

func printEventBody(heading, body string) {
	fmt.Println()
	fmt.Println(sectionStyle.Render(heading))
	if body == "" {
		fmt.Println("(not captured)")
		return
	}
	fmt.Println(body)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregate token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		fmt.Println(sectionStyle.Render("Usage by purpose"))
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PURPOSE\tCALLS\tIN\tOUT\tTOTAL\tAVG MS")
		var calls, in, out int
		for _, st := range byPurpose {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\n",
				st.Purpose, st.Calls, st.InputTokens, st.OutputTokens,
				st.InputTokens+st.OutputTokens, st.AvgLatencyMs)
			calls += st.Calls
			in += st.InputTokens
			out += st.OutputTokens
		}
		fmt.Fprintf(w, "total\t%d\t%d\t%d\t%d\t\n", calls, in, out, in+out)
		if err := w.Flush(); err != nil {
			return err
		}

		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(byModel) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Println(sectionStyle.Render("Estimated cost"))
		w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MODEL\tCALLS\tIN\tOUT\tUSD")
		var total float64
		var unpriced []string
		for _, mu := range byModel {
			price := ai.LookupCost(mu.Model)
			if price == nil {
				unpriced = append(unpriced, mu.Model)
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t?\n",
					mu.Model, mu.Calls, mu.InputTokens, mu.OutputTokens)
				continue
			}
			usd := price.Cost(mu.InputTokens, mu.OutputTokens)
			total += usd
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n",
				mu.Model, mu.Calls, mu.InputTokens, mu.OutputTokens, formatUSD(usd))
		}
		label := "total"
		if len(unpriced) > 0 {
			label = "total (partial)"
		}
		fmt.Fprintf(w, "%s\t\t\t\t%s\n", label, formatUSD(total))
		if err := w.Flush(); err != nil {
			return err
		}

		if len(unpriced) > 0 {
			fmt.Printf("\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

func formatUSD(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only events with this purpose label")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
