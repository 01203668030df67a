package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kidboard/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase history and the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Print("This erases all points, achievements and the profile. Type 'yes' to continue: ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.TrimSpace(line) != "yes" {
				fmt.Println("Nothing was changed.")
				return nil
			}
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dsn, err := cfg.DSN()
		if err != nil {
			return fmt.Errorf("resolve database: %w", err)
		}
		st, err := store.Open(dsn)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset store: %w", err)
		}

		profilePath, err := cfg.ProfilePath()
		if err != nil {
			return fmt.Errorf("resolve profile path: %w", err)
		}
		if err := os.Remove(profilePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove profile: %w", err)
		}

		fmt.Println("All learner data erased.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
