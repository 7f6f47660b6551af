package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/lectern/internal/llm"
	"github.com/abhisek/lectern/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded model requests and their cost",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")
		session, _ := cmd.Flags().GetString("session")

		e, err := openEnv(cmd, envOpts{noLLM: true})
		if err != nil {
			return err
		}
		defer e.Close()

		opts := store.QueryOpts{Limit: limit, Purpose: purpose, Session: session}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		list, err := e.store.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No model requests recorded.")
			return nil
		}
		fmt.Println(eventsTable(list))
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and response of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		e, err := openEnv(cmd, envOpts{noLLM: true})
		if err != nil {
			return err
		}
		defer e.Close()

		ev, err := e.store.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if ev == nil {
			return fmt.Errorf("request %d not found", id)
		}
		fmt.Print(describeEvent(ev))
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOpts{noLLM: true})
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		events := e.store.EventRepo()
		byPurpose, err := events.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No model usage recorded yet.")
			return nil
		}
		byModel, err := events.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		fmt.Println(heading.Render("Usage by purpose"))
		fmt.Println(usageTable(byPurpose))

		costs, unpriced := costTable(byModel)
		fmt.Println()
		fmt.Println(heading.Render("Estimated cost (USD)"))
		fmt.Println(costs)
		if len(unpriced) > 0 {
			fmt.Printf("No pricing for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

var heading = lipgloss.NewStyle().Bold(true)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		BorderLeft(false).
		BorderRight(false).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			return s
		})
}

func eventsTable(list []store.LLMEvent) string {
	t := newTable("ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
	for _, ev := range list {
		ok := "yes"
		if !ev.Success {
			ok = "no"
		}
		t.Row(
			strconv.Itoa(ev.ID),
			ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
			ev.Purpose,
			truncate(ev.Model, 28),
			strconv.Itoa(ev.InputTokens),
			strconv.Itoa(ev.OutputTokens),
			strconv.FormatInt(ev.LatencyMs, 10),
			ok,
		)
	}
	return t.String()
}

func usageTable(stats []store.PurposeUsage) string {
	t := newTable("Purpose", "Calls", "Input", "Output", "Total", "Avg ms")
	var calls, in, out int
	for _, st := range stats {
		t.Row(st.Purpose, strconv.Itoa(st.Calls), strconv.Itoa(st.InputTokens),
			strconv.Itoa(st.OutputTokens), strconv.Itoa(st.InputTokens+st.OutputTokens),
			strconv.Itoa(st.AvgLatencyMs))
		calls += st.Calls
		in += st.InputTokens
		out += st.OutputTokens
	}
	t.Row("TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), strconv.Itoa(in+out), "")
	return t.String()
}

// costTable prices model usage. Models missing from the pricing table are
// listed with "?" and returned so the caller can flag a partial total.
func costTable(models []store.ModelUsage) (string, []string) {
	t := newTable("Model", "Calls", "Input", "Output", "Cost")
	var total float64
	var unpriced []string
	for _, mu := range models {
		cost := "?"
		if price := llm.LookupCost(mu.Model); price != nil {
			c := price.Cost(mu.InputTokens, mu.OutputTokens)
			total += c
			cost = formatCost(c)
		} else {
			unpriced = append(unpriced, mu.Model)
		}
		t.Row(truncate(mu.Model, 32), strconv.Itoa(mu.Calls),
			strconv.Itoa(mu.InputTokens), strconv.Itoa(mu.OutputTokens), cost)
	}

	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	t.Row(label, "", "", "", formatCost(total))
	return t.String(), unpriced
}

func describeEvent(ev *store.LLMEvent) string {
	var b strings.Builder
	field := func(name, value string) {
		fmt.Fprintf(&b, "%-9s %s\n", name+":", value)
	}
	field("ID", strconv.Itoa(ev.ID))
	field("Time", ev.Timestamp.Local().Format("2006-01-02 15:04:05"))
	field("Provider", ev.Provider)
	field("Model", ev.Model)
	field("Purpose", ev.Purpose)
	if ev.SessionID != "" {
		field("Session", ev.SessionID)
	}
	field("Tokens", fmt.Sprintf("%d in / %d out", ev.InputTokens, ev.OutputTokens))
	field("Latency", fmt.Sprintf("%dms", ev.LatencyMs))
	field("Success", strconv.FormatBool(ev.Success))
	if ev.ErrorMessage != "" {
		field("Error", ev.ErrorMessage)
	}

	section := func(title, body string) {
		if body == "" {
			body = "(not captured)\n"
		}
		fmt.Fprintf(&b, "\n%s\n%s\n%s", heading.Render(title), strings.Repeat("─", 60), body)
		if !strings.HasSuffix(body, "\n") {
			b.WriteString("\n")
		}
	}
	section("REQUEST", ev.RequestBody)
	section("RESPONSE", ev.ResponseBody)
	return b.String()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (classify, syllabus, lesson, concept, doubt, quiz, roadmap)")
	llmListCmd.Flags().Duration("since", 0, "Only show requests newer than this (e.g. 24h)")
	llmListCmd.Flags().String("session", "", "Only show requests made for this session id")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
