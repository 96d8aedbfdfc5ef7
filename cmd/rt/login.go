package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rtrack/rt/internal/api"
	"github.com/rtrack/rt/internal/credentials"
	"github.com/rtrack/rt/internal/ui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to Routinely",
	RunE:  runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	var email, password string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&email).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("email is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password is required")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("Login cancelled.")
			return nil
		}
		return fmt.Errorf("login form: %w", err)
	}

	resp, err := client.Login(rootCtx, strings.TrimSpace(email), password)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			return fmt.Errorf("%s", apiErr.Error())
		}
		return fmt.Errorf("could not reach %s: %w", cfg.APIURL, err)
	}

	creds := credentials.Credentials{Token: resp.Token, Username: resp.Username, Email: resp.Email}
	if err := creds.Save(configDir); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("%s Signed in as %s.\n", green(ui.IconOK), resp.Username)
	return nil
}
