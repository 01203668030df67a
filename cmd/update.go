package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/kidboard/internal/selfupdate"
	"github.com/spf13/cobra"
)

const updateTimeout = 2 * time.Minute

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update kidboard to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		checkOnly, _ := cmd.Flags().GetBool("check")
		if selfupdate.IsDevBuild(version) {
			fmt.Println("Cannot update a development build. Install a release build first.")
			return nil
		}
		checker := selfupdate.NewChecker(selfupdate.WithTimeout(updateTimeout))

		ctx, cancel := context.WithTimeout(cmd.Context(), updateTimeout)
		defer cancel()

		res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			return err
		}
		if !res.UpdateAvailable {
			fmt.Printf("kidboard %s is up to date\n", res.CurrentVersion)
			return nil
		}
		if checkOnly {
			fmt.Printf("kidboard %s is available (running %s)\n%s\n", res.LatestVersion(), res.CurrentVersion, res.Release.URL)
			return nil
		}

		err = checker.Update(ctx, &selfupdate.UpdateInput{
			CurrentVersion: version,
			Release:        res.Release,
		}, func(p selfupdate.UpdateProgress) {
			fmt.Println(p.Message)
		})

		if errors.Is(err, os.ErrPermission) {
			return fmt.Errorf("%w\n\nTry running: sudo kidboard update", err)
		}
		return err
	},
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only report whether a newer release exists")
}
