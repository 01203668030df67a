package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kidboard/internal/llm"
	"github.com/abhisek/kidboard/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the hint requests the coach sent to a model",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent coach requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		session, _ := cmd.Flags().GetString("session")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(),
			store.QueryOpts{Limit: limit},
			store.LLMFilter{Purpose: purpose, SessionID: session})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		printLLMEvents(cmd.OutOrStdout(), events)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one coach request with the prompt and the model's reply",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
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
		printLLMEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

var llmUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show coach requests per quiz and estimated model cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		sessions, err := s.EventRepo().LLMUsageBySession(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		models, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(w, "The coach has not asked a model for hints yet.")
			return nil
		}
		printSessionUsage(w, sessions)
		fmt.Fprintln(w)
		printModelCost(w, models)
		return nil
	},
}

// questionLine describes what the child was asked and what they said.
func questionLine(e store.LLMEventRecord) string {
	if e.Question == "" {
		return "-"
	}
	return fmt.Sprintf("%s = %d, said %d", e.Question, e.Answer, e.Submitted)
}

func shortSession(id string) string {
	if id == "" {
		return "-"
	}
	return truncate(id, 8)
}

func okMark(success bool) string {
	if success {
		return "✓"
	}
	return "✗"
}

func printLLMEvents(w io.Writer, events []store.LLMEventRecord) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No coach requests found.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-16s  %-8s  %-24s  %-20s  %7s  %6s  %s\n",
		"ID", "When", "Quiz", "Question", "Model", "Tokens", "Ms", "OK")
	fmt.Fprintln(w, strings.Repeat("─", 104))
	for _, e := range events {
		fmt.Fprintf(w, "%-5d  %-16s  %-8s  %-24s  %-20s  %7d  %6d  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			shortSession(e.SessionID),
			truncate(questionLine(e), 24),
			truncate(e.Model, 20),
			e.InputTokens+e.OutputTokens,
			e.LatencyMs,
			okMark(e.Success),
		)
	}
}

func printLLMEvent(w io.Writer, e *store.LLMEventRecord) {
	fmt.Fprintf(w, "Request %d  %s\n", e.ID, e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	if e.Question != "" {
		fmt.Fprintf(w, "Question:  %s\n", e.Question)
		fmt.Fprintf(w, "Answer:    %d (child said %d)\n", e.Answer, e.Submitted)
	}
	if e.SessionID != "" {
		fmt.Fprintf(w, "Quiz:      %s\n", e.SessionID)
	}
	fmt.Fprintf(w, "Purpose:   %s\n", e.Purpose)
	fmt.Fprintf(w, "Model:     %s via %s\n", e.Model, e.Provider)
	fmt.Fprintf(w, "Tokens:    %d in / %d out in %dms\n", e.InputTokens, e.OutputTokens, e.LatencyMs)
	if e.Success {
		fmt.Fprintln(w, "Outcome:   hint delivered")
	} else {
		fmt.Fprintf(w, "Outcome:   failed, built-in hint shown (%s)\n", e.ErrorMessage)
	}

	section := func(title, body string) {
		fmt.Fprintf(w, "\n── %s %s\n", title, strings.Repeat("─", 50-len(title)))
		if body == "" {
			body = "(not captured)"
		}
		fmt.Fprintln(w, strings.TrimRight(body, "\n"))
	}
	section("Prompt", e.RequestBody)
	section("Reply", e.ResponseBody)
}

func printSessionUsage(w io.Writer, sessions []store.LLMUsageRecord) {
	fmt.Fprintln(w, "Hints per quiz (newest first)")
	fmt.Fprintf(w, "%-36s  %5s  %6s  %8s  %7s\n", "Quiz", "Hints", "Failed", "Tokens", "Avg ms")
	fmt.Fprintln(w, strings.Repeat("─", 70))

	var calls, failed, tokens int
	for _, u := range sessions {
		id := u.SessionID
		if id == "" {
			id = "(outside a quiz)"
		}
		t := u.InputTokens + u.OutputTokens
		fmt.Fprintf(w, "%-36s  %5d  %6d  %8d  %7d\n", id, u.Calls, u.Failures, t, u.AvgLatencyMs)
		calls += u.Calls
		failed += u.Failures
		tokens += t
	}
	fmt.Fprintln(w, strings.Repeat("─", 70))
	fmt.Fprintf(w, "%-36s  %5d  %6d  %8d\n", fmt.Sprintf("%d quizzes", len(sessions)), calls, failed, tokens)
}

func printModelCost(w io.Writer, models []store.LLMUsageRecord) {
	fmt.Fprintln(w, "Estimated cost (USD)")
	fmt.Fprintf(w, "%-28s  %5s  %9s  %9s  %9s\n", "Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(w, strings.Repeat("─", 70))

	var total float64
	var unpriced []string
	for _, m := range models {
		cost := "?"
		if price := llm.LookupCost(m.Model); price != nil {
			c := price.Cost(m.InputTokens, m.OutputTokens)
			total += c
			cost = formatCost(c)
		} else {
			unpriced = append(unpriced, m.Model)
		}
		fmt.Fprintf(w, "%-28s  %5d  %9d  %9d  %9s\n", truncate(m.Model, 28), m.Calls, m.InputTokens, m.OutputTokens, cost)
	}
	fmt.Fprintln(w, strings.Repeat("─", 70))
	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-28s  %5s  %9s  %9s  %9s\n", label, "", "", "", formatCost(total))
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
	}
}

// openStore opens the configured database for read-only inspection.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, fmt.Errorf("resolve database: %w", err)
	}
	if dsn == store.MemoryDSN {
		fmt.Fprintln(os.Stderr, "History is in memory only; pass --db or --persist to inspect a saved database.")
	}
	s, err := store.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only requests with this purpose (e.g. explain)")
	llmListCmd.Flags().StringP("session", "s", "", "Only requests from this quiz session")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmUsageCmd)
}
