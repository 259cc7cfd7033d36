package main

import (
	"strings"

	"ens-welcome-tui/helpers"
	"ens-welcome-tui/styles"
	logview "ens-welcome-tui/views/log"
	"ens-welcome-tui/views/welcome"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- VIEW --------------------

// renderAlertDialog is the blocking network-mismatch dialog with a single OK button
func (m model) renderAlertDialog() string {
	title := lipgloss.NewStyle().Foreground(cWarn).Bold(true).Render("Wrong network")
	msg := lipgloss.NewStyle().Width(50).Align(lipgloss.Center).Render(title + "\n\n" + m.alert)

	ui := lipgloss.JoinVertical(lipgloss.Center, msg, styles.DialogButtonStyle.Render("OK"))
	dialog := styles.DialogStyle.Render(ui)

	// Center the dialog on screen
	return lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

// renderPassphraseForm shows the keystore unlock prompt
func (m model) renderPassphraseForm() string {
	title := titleStyle.Render("Unlock keystore")
	hint := lipgloss.NewStyle().Foreground(cMuted).Render("Enter to submit • Esc to cancel")
	body := panelStyle.Width(min(70, max(0, m.w-4))).Render(title + "\n\n" + m.passphraseForm.View() + "\n" + hint)

	return lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		body,
	)
}

func (m *model) globalHeader() string {
	availableWidth := max(0, m.w-8) // Account for panel padding

	// Network the page expects
	netDisplay := lipgloss.NewStyle().
		Foreground(cAccent2).
		Bold(true).
		Render("Network: " + m.network.String())

	// Wallet status dot
	var statusIcon string
	var statusColor lipgloss.Color
	var statusText string

	switch {
	case m.walletConnected && m.session != nil:
		statusIcon = "●"
		statusColor = cAccent
		statusText = helpers.ShortenAddr(m.session.Address().Hex())
	case m.connecting:
		statusIcon = "○"
		statusColor = cWarn
		statusText = "Connecting..."
	default:
		statusIcon = "○"
		statusColor = styles.CDanger
		statusText = "Not connected"
	}

	walletDisplay := lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render(statusIcon + " " + statusText)

	// Center title
	titleText := lipgloss.NewStyle().
		Foreground(cAccent).
		Bold(true).
		Render(helpers.FadeString(strings.ToLower(m.cfg.Branding.Name), "#7EE787", "#82CFFD"))

	netWidth := lipgloss.Width(netDisplay)
	walletWidth := lipgloss.Width(walletDisplay)
	titleWidth := lipgloss.Width(titleText)
	totalOtherWidth := netWidth + walletWidth + titleWidth

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		// Not enough space, stack vertically
		headerLine = netDisplay + "\n" + titleText + "\n" + walletDisplay
	} else {
		// Three-column layout: Network | Title (centered) | Wallet
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding

		headerLine = netDisplay + strings.Repeat(" ", max(1, leftPadding)) + titleText + strings.Repeat(" ", max(1, rightPadding)) + walletDisplay
	}

	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + separator
}

func (m *model) View() string {
	if m.alert != "" {
		return m.renderAlertDialog()
	}
	if m.passphraseForm != nil {
		return m.renderPassphraseForm()
	}

	headerPanel := panelStyle.Width(max(0, m.w-2)).Render(m.globalHeader())

	provider := ""
	if m.session != nil {
		provider = m.session.Provider
	}
	page := welcome.Render(welcome.Props{
		Width:       max(0, m.w-8),
		Branding:    m.cfg.Branding,
		Display:     m.display(),
		Connected:   m.walletConnected,
		Connecting:  m.connecting,
		SpinnerView: m.spin.View(),
		Network:     m.network,
		Provider:    provider,
		QR:          m.receiveQR(),
		CopiedMsg:   m.copiedMsg,
	})
	pageContent := panelStyle.Width(max(0, m.w-2)).Render(page + "\n" + welcome.Footer(max(0, m.w-8), m.cfg.Branding.Footer))
	nav := welcome.Nav(max(0, m.w-2), m.walletConnected)

	sections := []string{headerPanel, pageContent, nav}
	if m.logEnabled {
		m.logViewport.Height = logview.PanelHeight(m.h)
		sections = append(sections, logview.Render(m.w, m.logReady, m.logSpinner.View(), m.logViewport))
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
