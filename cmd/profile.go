package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/kidboard/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit the learner profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the profile as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openInspector(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		out, err := yaml.Marshal(rt.dashboard.Profile())
		if err != nil {
			return fmt.Errorf("encode profile: %w", err)
		}
		fmt.Printf("# %s\n%s", rt.profilePath, out)
		return nil
	},
}

var profileSetNameCmd = &cobra.Command{
	Use:   "set-name <name>",
	Short: "Change the learner's name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.dashboard.SetUsername(args[0]); err != nil {
			return err
		}
		fmt.Printf("Hello, %s!\n", args[0])
		return nil
	},
}

var profileSettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Change display settings",
	Long: `Change the display settings used by the TUI. Only the flags given are
changed; run without flags to print the current settings.`,
	Example: "  kidboard profile settings --dark=false --high-contrast",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		settings, changed := applySettingFlags(cmd, rt.dashboard.Profile().Settings)
		if changed {
			if err := rt.dashboard.SaveSettings(settings); err != nil {
				return err
			}
		}
		fmt.Printf("dark mode      %s\nhigh contrast  %s\nanimations     %s\n",
			onOff(settings.DarkMode), onOff(settings.HighContrast), onOff(settings.Animations))
		return nil
	},
}

// applySettingFlags copies the settings flags the user passed onto s.
func applySettingFlags(cmd *cobra.Command, s profile.Settings) (profile.Settings, bool) {
	fields := map[string]*bool{
		"dark":          &s.DarkMode,
		"high-contrast": &s.HighContrast,
		"animations":    &s.Animations,
	}
	changed := false
	for name, field := range fields {
		if cmd.Flags().Changed(name) {
			*field, _ = cmd.Flags().GetBool(name)
			changed = true
		}
	}
	return s, changed
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func addSettingFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dark", true, "Use the palette for dark terminals")
	cmd.Flags().Bool("high-contrast", false, "Use full-strength text and borders")
	cmd.Flags().Bool("animations", true, "Play the splash animation")
}

func init() {
	addSettingFlags(profileSettingsCmd)

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetNameCmd)
	profileCmd.AddCommand(profileSettingsCmd)
}
