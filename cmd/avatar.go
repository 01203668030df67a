package cmd

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/kidboard/internal/avatar"
)

var avatarCmd = &cobra.Command{
	Use:   "avatar",
	Short: "Show, randomize or save the learner's avatar",
}

var avatarShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved avatar",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openInspector(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		code := rt.dashboard.Profile().Avatar
		if code == "" {
			fmt.Println("No avatar saved yet. Try: kidboard avatar random --save")
			return nil
		}
		a, err := avatar.Decode(avatar.DefaultCatalog(), code)
		if err != nil {
			return fmt.Errorf("decode saved avatar: %w", err)
		}
		printAvatar(a)
		return nil
	},
}

var avatarRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Pick a random avatar",
	RunE: func(cmd *cobra.Command, args []string) error {
		save, _ := cmd.Flags().GetBool("save")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		seed := cfg.QuizSeed(time.Now())
		a := avatar.Random(rand.New(rand.NewPCG(seed, seed>>1|1)), avatar.DefaultCatalog())
		printAvatar(a)

		if !save {
			return nil
		}
		return saveAvatar(cmd, a)
	},
}

var avatarSaveCmd = &cobra.Command{
	Use:   "save <code>",
	Short: "Save an avatar code such as face1.hair2.acc3.color1.exp2",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := avatar.Decode(avatar.DefaultCatalog(), args[0])
		if err != nil {
			return err
		}
		return saveAvatar(cmd, a)
	},
}

func saveAvatar(cmd *cobra.Command, a avatar.Avatar) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.dashboard.SaveAvatar(cmd.Context(), a); err != nil {
		return fmt.Errorf("save avatar: %w", err)
	}
	fmt.Println("Avatar saved.")
	for _, aw := range rt.dashboard.DrainAwards() {
		fmt.Printf("🏆 Unlocked: %s\n", aw.Achievement.Title)
	}
	return nil
}

func printAvatar(a avatar.Avatar) {
	catalog := avatar.DefaultCatalog()
	for _, c := range avatar.Categories() {
		label := "—"
		if opt, ok := catalog.Find(a[c]); ok {
			label = opt.Alt
		}
		fmt.Printf("%-12s %s\n", c.DisplayName(), label)
	}
	if code, err := a.Encode(); err == nil {
		fmt.Printf("%-12s %s\n", "Code", code)
	}
}

func init() {
	avatarRandomCmd.Flags().Bool("save", false, "Save the random avatar to the profile")

	avatarCmd.AddCommand(avatarShowCmd)
	avatarCmd.AddCommand(avatarRandomCmd)
	avatarCmd.AddCommand(avatarSaveCmd)
}
