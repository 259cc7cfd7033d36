package main

import (
	"context"
	"fmt"
	"time"

	"ens-welcome-tui/config"
	"ens-welcome-tui/ens"
	"ens-welcome-tui/helpers"
	"ens-welcome-tui/rpc"
	"ens-welcome-tui/wallet"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

// initConnector builds the wallet connector for the configured network
func initConnector(cfg config.Config, dial rpc.DialFunc) tea.Cmd {
	return func() tea.Msg {
		opts, err := wallet.OptionsFromConfig(cfg, dial)
		if err != nil {
			return connectorReadyMsg{err: err}
		}
		c, err := wallet.NewConnector(opts)
		return connectorReadyMsg{connector: c, err: err}
	}
}

// connectWallet opens a session, then resolves its display name.
// The wallet prompt is not bounded by a timeout, the user may take as long as they need.
func connectWallet(c *wallet.Connector, registry common.Address) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		sess, err := c.Connect(ctx)
		if err != nil {
			return walletConnectedMsg{err: err}
		}

		name, err := displayName(ctx, sess, registry)
		if err != nil {
			sess.Close()
			return walletConnectedMsg{err: fmt.Errorf("resolve name for %s: %w", sess.Address().Hex(), err)}
		}

		return walletConnectedMsg{
			session:  sess,
			identity: wallet.Identity{Address: sess.Address(), Name: name},
		}
	}
}

// displayName looks up the primary ENS name of the session's address
func displayName(ctx context.Context, sess *wallet.Session, registry common.Address) (string, error) {
	return ens.NewResolver(sess.Client, registry).LookupAddress(ctx, sess.Address())
}

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// copyToClipboard copies text to the system clipboard
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardCopiedMsg{err: clipboard.WriteAll(text)}
	}
}

// clearClipboardMsg hides the copy feedback after a short delay
func clearClipboardMsg() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// -------------------- MODEL HELPER METHODS --------------------
// These methods help with state management and command generation

// addLog adds a log entry with timestamp and type
func (m *model) addLog(logType, message string) {
	if m.logger == nil {
		return
	}

	// Use the logger to write messages
	switch logType {
	case "info":
		m.logger.Info(message)
	case "success":
		m.logger.Info("✓", "msg", message)
	case "error":
		m.logger.Error(message)
	case "warning":
		m.logger.Warn(message)
	case "debug":
		m.logger.Debug(message)
	default:
		m.logger.Print(message)
	}

	// Update viewport content
	m.updateLogViewport()
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if !m.logReady || m.logBuffer == nil {
		return
	}

	m.logViewport.SetContent(m.logBuffer.String())
	// Scroll to bottom to show latest entries
	m.logViewport.GotoBottom()
}

// tempPassphrase receives the keystore passphrase form value
var tempPassphrase string

// createPassphraseForm prompts for the keystore passphrase
func (m *model) createPassphraseForm() {
	tempPassphrase = ""

	m.passphraseForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Keystore passphrase").
				Description("Unlocks the keystore account for this session").
				EchoMode(huh.EchoModePassword).
				Value(&tempPassphrase),
		),
	).WithTheme(huh.ThemeCatppuccin())
}

// startConnect begins a connect attempt unless one is running or the page is connected
func (m *model) startConnect() tea.Cmd {
	if m.walletConnected || m.connecting {
		return nil
	}

	if m.connector.NeedsPassphrase() {
		m.createPassphraseForm()
		return m.passphraseForm.Init()
	}

	m.connecting = true
	if p := m.connector.Provider(); p != "" {
		m.addLog("info", fmt.Sprintf("Requesting wallet connection via `%s` on %s", p, m.network))
	}
	return connectWallet(m.connector, m.registry())
}

// receiveQR renders the EIP-681 QR code for the connected address
func (m model) receiveQR() string {
	if !m.showQR || m.session == nil {
		return ""
	}
	return helpers.GenerateQRCode(helpers.EIP681(m.session.Address(), m.session.Network.ChainID))
}
