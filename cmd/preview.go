package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/kidboard/internal/coach"
	"github.com/abhisek/kidboard/internal/llm"
	"github.com/abhisek/kidboard/internal/quiz"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Answer quiz questions in the plain terminal (no database)",
	Long: `Generate and interactively answer Fun Math questions without the TUI.

This is a stateless developer tool: no points, no history, no profile.
Wrong answers are explained by the coach, using the configured LLM
provider when one is set. Useful for checking question and explanation
quality.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	explainer := previewExplainer(ctx)
	gen := quiz.NewSeeded(cfg.QuizSeed(time.Now()))
	scanner := bufio.NewScanner(os.Stdin)

	var correct int
	for i := 1; i <= count; i++ {
		q := gen.Generate()

		fmt.Printf("── Question %d/%d ──\n", i, count)
		fmt.Println(q.Prompt())
		for j, o := range q.Options {
			fmt.Printf("  %d) %d\n", j+1, o)
		}

		fmt.Printf("\nYour choice (1-%d): ", len(q.Options))
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		submitted, ok := parseAnswer(scanner.Text(), q)
		if !ok {
			fmt.Printf("(not a choice from 1 to %d, skipped)\n\n", len(q.Options))
			continue
		}

		res := quiz.Grade(q, submitted)
		if res.Correct {
			correct++
			fmt.Println("\033[32m✓ Correct!\033[0m")
			fmt.Println()
			continue
		}

		fmt.Printf("\033[31m✗ Not quite.\033[0m Answer: %d\n", res.CorrectAnswer)
		exp, err := explainer.Explain(ctx, coach.Input{A: q.A, B: q.B, Answer: q.Answer, Submitted: submitted})
		if err != nil {
			fmt.Fprintln(os.Stderr, "explain:", err)
		} else {
			fmt.Printf("%s\nTip: %s\n%s  (%s)\n", exp.Text, exp.Tip, exp.Cheer, exp.Source)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, count)
	return nil
}

// parseAnswer maps an option number, as shown next to each choice, to the
// value it stands for. Values typed directly are not accepted.
func parseAnswer(s string, q quiz.Question) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > len(q.Options) {
		return 0, false
	}
	return q.Options[n-1], true
}

// previewExplainer uses the LLM without event logging when configured.
func previewExplainer(ctx context.Context) coach.Explainer {
	cfg, err := llm.ConfigFromEnv()
	if err != nil || !cfg.Enabled() {
		return coach.Local{}
	}
	provider, err := llm.New(ctx, cfg, nil, zap.NewNop())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider:", err)
		return coach.Local{}
	}
	return coach.NewLLM(provider, coach.DefaultConfig(), zap.NewNop())
}
