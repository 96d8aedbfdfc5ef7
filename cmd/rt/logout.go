package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtrack/rt/internal/credentials"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := credentials.Clear(configDir); err != nil {
			return fmt.Errorf("clearing credentials: %w", err)
		}
		fmt.Println("Signed out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
