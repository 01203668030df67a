// Package cmd is the kidboard command line.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/kidboard/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "kidboard",
	Short: "Learning dashboard for kids",
	Long:  "Kidboard is a terminal learning dashboard: points, levels, achievements, an avatar and a Fun Math quiz.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides KIDBOARD_DB)")
	flags.Bool("persist", false, "Keep history in the default database file")
	flags.String("profile", "", "Path to the profile YAML file (overrides KIDBOARD_PROFILE)")
	flags.String("log", "", "Path to the log file (overrides KIDBOARD_LOG)")
	flags.BoolP("verbose", "v", false, "Log at debug level")
	flags.Uint64("seed", 0, "Fix the quiz random seed")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(avatarCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment, then applies the flags that were set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DB, _ = flags.GetString("db")
	}
	if flags.Changed("persist") {
		cfg.Persist, _ = flags.GetBool("persist")
	}
	if flags.Changed("profile") {
		cfg.Profile, _ = flags.GetString("profile")
	}
	if flags.Changed("log") {
		cfg.Log, _ = flags.GetString("log")
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	return cfg, nil
}
