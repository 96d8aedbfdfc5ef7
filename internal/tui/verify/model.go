// Package verify is the Bubbletea TUI for the OTP verification stage:
// six digit cells with declarative focus, a once-per-second countdown
// gating the resend action, and paste handling for codes copied out of
// an email or SMS.
package verify

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rtrack/rt/internal/recovery"
)

// Outcome is how the verification stage ended.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeVerified
	OutcomeAborted
)

// KeyMap defines the key bindings for the verification stage.
type KeyMap struct {
	Submit key.Binding
	Resend key.Binding
	Quit   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit code"),
		),
		Resend: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "resend code"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Resend, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Resend, k.Quit}}
}

// Model is the Bubbletea model for the verification stage. All input
// rules live in recovery.DigitCells; the model translates key events
// and runs network calls as commands.
type Model struct {
	stage *recovery.VerifyStage
	ctx   context.Context

	keys KeyMap
	help help.Model

	remaining time.Duration
	errMsg    string
	infoMsg   string
	busy      bool // a submit or resend command is outstanding
	outcome   Outcome
	payload   recovery.Payload
	width     int
}

// New creates the verification model. ctx bounds the network calls
// issued while the stage is active.
func New(ctx context.Context, stage *recovery.VerifyStage) *Model {
	h := help.New()
	h.ShowAll = false
	return &Model{
		stage:     stage,
		ctx:       ctx,
		keys:      DefaultKeyMap(),
		help:      h,
		remaining: stage.ResendRemaining(),
	}
}

// Outcome reports how the stage ended once the program returns.
func (m *Model) Outcome() Outcome { return m.outcome }

// Payload is the transition payload for the reset stage. Valid only
// when Outcome is OutcomeVerified.
func (m *Model) Payload() recovery.Payload { return m.payload }

// tickMsg drives the countdown once per second.
type tickMsg time.Time

// verifiedMsg is sent when the service accepted the code.
type verifiedMsg struct {
	payload recovery.Payload
}

// verifyFailedMsg is sent when verification failed.
type verifyFailedMsg struct {
	err error
}

// resendDoneMsg is sent when a resend attempt finished.
type resendDoneMsg struct {
	err error
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tick(), tea.SetWindowTitle("rt account recovery"))
}

func (m *Model) submit() tea.Cmd {
	return func() tea.Msg {
		payload, err := m.stage.Submit(m.ctx)
		if err != nil {
			return verifyFailedMsg{err: err}
		}
		return verifiedMsg{payload: payload}
	}
}

func (m *Model) resend() tea.Cmd {
	return func() tea.Msg {
		return resendDoneMsg{err: m.stage.Resend(m.ctx)}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		m.remaining = m.stage.ResendRemaining()
		if m.outcome != OutcomePending {
			return m, nil
		}
		return m, tick()

	case verifiedMsg:
		m.busy = false
		m.outcome = OutcomeVerified
		m.payload = msg.payload
		return m, tea.Quit

	case verifyFailedMsg:
		m.busy = false
		m.infoMsg = ""
		// On a service rejection the stage has already wiped the
		// cells and refocused cell 0; we just surface the message.
		m.errMsg = msg.err.Error()
		return m, nil

	case resendDoneMsg:
		m.busy = false
		m.remaining = m.stage.ResendRemaining()
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.infoMsg = "A new code was sent to " + m.stage.Identifier()
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.outcome = OutcomeAborted
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		if m.busy {
			return m, nil
		}
		if !m.stage.Cells.Complete() {
			m.errMsg = "enter all 6 digits"
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		m.infoMsg = ""
		return m, m.submit()

	case key.Matches(msg, m.keys.Resend):
		if m.busy || !m.stage.CanResend() {
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		m.infoMsg = ""
		return m, m.resend()
	}

	if m.busy {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyBackspace:
		m.stage.Cells.Backspace()
		m.errMsg = ""
	case tea.KeyRunes:
		if msg.Paste {
			m.stage.Cells.Paste(string(msg.Runes))
			m.errMsg = ""
			break
		}
		for _, r := range msg.Runes {
			if m.stage.Cells.Type(r) {
				m.errMsg = ""
			}
		}
	}
	return m, nil
}
