package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtrack/rt/internal/api"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if client.Token == "" {
			FatalErrorWithHint("not signed in", "Run 'rt login', or 'rt recover' if you forgot your password")
		}

		me, err := client.Me(rootCtx)
		if err != nil {
			var apiErr *api.Error
			if errors.As(err, &apiErr) {
				return fmt.Errorf("%s", apiErr.Error())
			}
			return fmt.Errorf("could not reach %s: %w", cfg.APIURL, err)
		}

		fmt.Printf("%s <%s>\n", me.Username, me.Email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
