// rt is the Routinely terminal client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rtrack/rt/internal/api"
	"github.com/rtrack/rt/internal/config"
	"github.com/rtrack/rt/internal/credentials"
	"github.com/rtrack/rt/internal/ui"
)

var (
	cfg       *config.Config
	configDir string
	client    *api.Client

	noColorFlag bool

	// Signal-aware context for graceful cancellation
	rootCtx    context.Context
	rootCancel context.CancelFunc
)

var rootCmd = &cobra.Command{
	Use:   "rt",
	Short: "Routinely from the terminal",
	Long: `rt is the terminal client for Routinely, the note-taking and
routine-tracker service.

Sign in with 'rt login', or recover a lost password with 'rt recover'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		configDir = dir

		cfg, err = config.Load(configDir)
		if err != nil {
			return err
		}
		if noColorFlag || cfg.NoColor {
			ui.DisableColor()
			color.NoColor = true
		}

		client = api.NewClient(cfg.APIURL, cfg.ClientID)
		client.HTTPClient.Timeout = cfg.RequestTimeout

		// Attach the stored session token, if any. Commands that
		// need a session check for it explicitly.
		creds, err := credentials.Load(configDir)
		if err != nil {
			WarnError("ignoring unreadable credentials: %v", err)
		} else if creds != nil {
			client = client.WithToken(creds.Token)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
}

func main() {
	rootCtx, rootCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer rootCancel()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
