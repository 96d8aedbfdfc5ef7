package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rtrack/rt/internal/credentials"
	"github.com/rtrack/rt/internal/recovery"
	"github.com/rtrack/rt/internal/recoverystore"
	"github.com/rtrack/rt/internal/tui/verify"
	"github.com/rtrack/rt/internal/ui"
)

var recoverEmail string

var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Reset a forgotten password with a one-time code",
	Long: `Reset a forgotten password in three steps:

  1. We send a 6-digit code to your email or phone.
  2. You enter the code to prove it's really you.
  3. You pick a new password and are signed in.

If rt is interrupted partway through, running 'rt recover' again picks
up where you left off.`,
	RunE: runRecover,
}

func init() {
	recoverCmd.Flags().StringVar(&recoverEmail, "email", "", "Contact email to send the code to")
	rootCmd.AddCommand(recoverCmd)
}

const consentNotice = `## Account recovery

To reset your password we need to send a **one-time code** to the
email or phone number on your account. The code expires after a few
minutes and can only be used once.
`

func runRecover(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("rt recover needs an interactive terminal")
	}

	store := recoverystore.New(configDir)
	flow := recovery.NewFlow(&recoveryService{client: client}, store, nil)

	if state := flow.Resume(); state != recovery.StateRequest {
		fmt.Println(ui.MutedStyle.Render("Resuming your earlier recovery attempt..."))
		fmt.Println()
	}

	for {
		switch flow.State() {
		case recovery.StateRequest:
			if err := runRequestStage(flow); err != nil {
				return err
			}
		case recovery.StateVerify:
			if err := runVerifyStage(flow); err != nil {
				return err
			}
		case recovery.StateReset:
			if err := runResetStage(flow); err != nil {
				return err
			}
		case recovery.StateDone:
			return nil
		}
	}
}

// abortRecovery is the user backing out; not an error.
func abortRecovery() error {
	fmt.Fprintln(os.Stderr, "Recovery cancelled.")
	os.Exit(0)
	return nil
}

func runRequestStage(flow *recovery.Flow) error {
	fmt.Print(ui.RenderMarkdown(consentNotice))

	method := string(recovery.MethodEmail)
	identifier := recoverEmail
	consent := false

	for {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Send the code via").
					Options(
						huh.NewOption("Email", string(recovery.MethodEmail)),
						huh.NewOption("Phone (SMS)", string(recovery.MethodPhone)),
					).
					Value(&method),

				huh.NewInput().
					Title("Email or phone number").
					Placeholder("you@example.com").
					Value(&identifier).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("enter your email or phone number")
						}
						return nil
					}),

				huh.NewConfirm().
					Title("Send a verification code?").
					Description("We'll send a 6-digit code to verify it's really you.").
					Affirmative("Send code").
					Negative("Cancel").
					Value(&consent),
			),
		)

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return abortRecovery()
			}
			return fmt.Errorf("request form: %w", err)
		}
		if !consent {
			return abortRecovery()
		}

		err := flow.SubmitRequest(rootCtx, recovery.ContactMethod(method), identifier, consent)
		if err == nil {
			return nil
		}
		var verr *recovery.ValidationError
		if errors.As(err, &verr) {
			showInlineError(verr.Message)
			continue
		}
		showInlineError(serviceMessage(err, "We couldn't send the code. Check your connection and try again."))
	}
}

func runVerifyStage(flow *recovery.Flow) error {
	model := verify.New(rootCtx, flow.Verify())
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("verification: %w", err)
	}

	switch model.Outcome() {
	case verify.OutcomeAborted:
		return abortRecovery()
	case verify.OutcomeVerified:
		if err := flow.EnterReset(model.Payload()); err != nil {
			if errors.Is(err, recovery.ErrSessionExpired) {
				showSessionExpired()
				return nil // flow is back in StateRequest
			}
			return err
		}
		return nil
	default:
		return fmt.Errorf("verification ended unexpectedly")
	}
}

func runResetStage(flow *recovery.Flow) error {
	var password, confirm string

	for {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("New password").
					EchoMode(huh.EchoModePassword).
					Value(&password).
					DescriptionFunc(func() string {
						label := recovery.StrengthLabel(recovery.StrengthScore(password))
						if label == "" {
							return "At least 8 characters."
						}
						return "Strength: " + label
					}, &password).
					Validate(func(s string) error {
						if len(s) < recovery.MinPasswordLength {
							return fmt.Errorf("password must be at least 8 characters")
						}
						return nil
					}),

				huh.NewInput().
					Title("Confirm new password").
					EchoMode(huh.EchoModePassword).
					Value(&confirm),
			),
		)

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return abortRecovery()
			}
			return fmt.Errorf("reset form: %w", err)
		}

		creds, err := flow.SubmitReset(rootCtx, password, confirm)
		if err != nil {
			var verr *recovery.ValidationError
			if errors.As(err, &verr) {
				showInlineError(verr.Message)
				continue
			}
			if errors.Is(err, recovery.ErrSessionExpired) {
				showSessionExpired()
				return nil
			}
			// The store is untouched on failure, so another attempt
			// does not require re-verifying the OTP.
			showInlineError(serviceMessage(err, "We couldn't update your password. Try again."))
			continue
		}

		saved := credentials.Credentials{Token: creds.Token, Username: creds.Username, Email: creds.Email}
		if err := saved.Save(configDir); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}

		green := color.New(color.FgGreen).SprintFunc()
		name := creds.Username
		if name == "" {
			name = creds.Email
		}
		fmt.Printf("\n%s Password updated. You're signed in as %s.\n", green(ui.IconOK), name)
		return nil
	}
}

func showInlineError(msg string) {
	fmt.Println(ui.BadStyle.Render(ui.IconFail + " " + msg))
}

func showSessionExpired() {
	fmt.Println(ui.WarnStyle.Render(ui.IconWarn + " Your recovery session expired. Let's start over."))
	fmt.Println()
}
