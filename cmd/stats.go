package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show points, level, activities and achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openInspector(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		o := rt.dashboard.Overview()
		sep := strings.Repeat("─", 48)

		fmt.Printf("%s  %s %s\n", o.Username, o.Tier.Icon(), o.Tier)
		fmt.Println(sep)
		fmt.Printf("Points:    %d\n", o.State.Points)
		fmt.Printf("Level:     %d (%d%%, %d to level %d)\n",
			o.State.Level, int(o.LevelProgress*100), o.PointsToNext, o.State.Level+1)

		answers, err := rt.store.EventRepo().AnswerStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query answers: %w", err)
		}
		if answers.Attempts > 0 {
			fmt.Printf("Answers:   %d (%d correct, %.0f%%)\n",
				answers.Attempts, answers.Correct, answers.Accuracy()*100)
		}

		fmt.Println()
		fmt.Println("Activities")
		fmt.Println(sep)
		for _, a := range o.Activities {
			fmt.Printf("%s %-14s %3d%%\n", a.Kind.Emoji(), a.Title, a.Progress)
		}
		fmt.Printf("%-17s %3d%%\n", "Overall", o.OverallProgress)

		fmt.Println()
		fmt.Printf("Achievements (%d/%d)\n", o.Unlocked, o.Total)
		fmt.Println(sep)
		for _, e := range o.Achievements {
			mark := "🔒"
			if e.Unlocked {
				mark = "✓ "
			}
			fmt.Printf("%s %-18s %s\n", mark, e.Achievement.Title, e.Achievement.Description)
		}
		return nil
	},
}
