package main

import (
	"errors"
	"fmt"
	"time"

	"ens-welcome-tui/helpers"
	logview "ens-welcome-tui/views/log"
	"ens-welcome-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// -------------------- UPDATE --------------------

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Handle passphrase form updates first
	if m.passphraseForm != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			m.passphraseForm = nil
			m.addLog("info", "Passphrase prompt cancelled")
			return m, nil
		}

		form, cmd := m.passphraseForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.passphraseForm = f

			if m.passphraseForm.State == huh.StateCompleted {
				m.passphraseForm = nil
				m.connector.SetPassphrase(tempPassphrase)
				tempPassphrase = ""
				return m, tea.Batch(cmd, m.startConnect())
			}
		}
		if _, isKey := msg.(tea.KeyMsg); isKey {
			return m, cmd
		}
		// non-key messages (spinner ticks, results) still reach the page below
		next, pageCmd := m.updatePage(msg)
		return next, tea.Batch(cmd, pageCmd)
	}

	return m.updatePage(msg)
}

func (m *model) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case connectorReadyMsg:
		if msg.err != nil {
			m.addLog("error", fmt.Sprintf("Wallet connector: %v", msg.err))
		} else {
			m.connector = msg.connector
			m.network = msg.connector.Network()
		}
		// connect immediately on first render; a missing connector fails at the call site
		return m, m.startConnect()

	case walletConnectedMsg:
		m.connecting = false
		if msg.err != nil {
			if errors.Is(msg.err, wallet.ErrWrongNetwork) {
				m.alert = "Please switch the network to " + m.network.String()
			}
			m.addLog("error", fmt.Sprintf("Connect failed: %v", msg.err))
			return m, nil
		}

		if m.session != nil {
			m.session.Close()
		}
		m.session = msg.session
		if msg.identity.Name != "" {
			m.ensName = msg.identity.Name
		} else {
			m.address = msg.identity.Address.Hex()
		}
		m.walletConnected = true
		m.addLog("success", fmt.Sprintf("Connected `%s` via `%s` on %s", helpers.ShortenAddr(msg.identity.Address.Hex()), msg.session.Provider, msg.session.Network))
		if msg.identity.Name != "" {
			m.addLog("info", fmt.Sprintf("Found ENS name: %s", msg.identity.Name))
		} else {
			m.addLog("info", "No ENS name for "+helpers.ShortenAddr(msg.identity.Address.Hex()))
		}
		return m, nil

	case clipboardCopiedMsg:
		if msg.err != nil {
			m.addLog("error", fmt.Sprintf("Clipboard: %v", msg.err))
			return m, nil
		}
		m.copiedMsg = "✓ Address copied to clipboard"
		m.copiedMsgTime = time.Now()
		m.addLog("info", "Copied address to clipboard")
		return m, clearClipboardMsg()

	case clearCopiedMsg:
		if time.Since(m.copiedMsgTime) >= 2*time.Second {
			m.copiedMsg = ""
		}
		return m, nil

	case logInitMsg:
		m.logReady = true
		m.updateLogViewport()
		m.addLog("info", "Logger enabled")
		return m, nil

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height

		// Width accounts for border and padding
		m.logViewport.Width = max(0, msg.Width-6)
		m.logViewport.Height = logview.PanelHeight(msg.Height)
		if m.logReady {
			m.updateLogViewport()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		if m.logEnabled && m.logReady {
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// the alert blocks the page until dismissed
	if m.alert != "" {
		switch msg.String() {
		case "enter", "esc", " ":
			m.alert = ""
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "enter", " ":
		return m, m.startConnect()

	case "l":
		m.logEnabled = !m.logEnabled
		if m.logEnabled && !m.logReady {
			return m, tea.Batch(initLogViewport(), m.logSpinner.Tick)
		}
		return m, nil

	case "c":
		if m.walletConnected && m.session != nil {
			return m, copyToClipboard(m.session.Address().Hex())
		}

	case "r":
		if m.walletConnected {
			m.showQR = !m.showQR
		}

	case "up", "down", "pgup", "pgdown":
		if m.logEnabled && m.logReady {
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}
