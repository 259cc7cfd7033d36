package welcome

import (
	"strings"

	"ens-welcome-tui/config"
	"ens-welcome-tui/helpers"
	"ens-welcome-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// ConnectLabel is the text of the connect button
const ConnectLabel = "Connect your wallet"

// ConnectedLabel is the static indicator shown once a signer was obtained
const ConnectedLabel = "Wallet connected"

// Props is everything the welcome page renders
type Props struct {
	Width       int
	Branding    config.Branding
	Display     string // ENS name, else the raw address, else empty
	Connected   bool
	Connecting  bool
	SpinnerView string
	Network     config.Network
	Provider    string
	QR          string
	CopiedMsg   string
}

var (
	connectedStyle = lipgloss.NewStyle().
			Foreground(styles.CAccent).
			Bold(true).
			MarginTop(1).
			MarginBottom(1)

	headingStyle = lipgloss.NewStyle().
			Foreground(styles.CText).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(styles.CMuted)
)

// Heading returns the welcome line, e.g. "Welcome to LearnWeb3 Associates vitalik.eth!"
func Heading(brand, display string) string {
	if display == "" {
		return "Welcome to " + brand + "!"
	}
	return "Welcome to " + brand + " " + display + "!"
}

// Button renders the connect control or the connected indicator
func Button(p Props) string {
	if p.Connected {
		return connectedStyle.Render("● " + ConnectedLabel)
	}
	btn := styles.ButtonStyle.Render(ConnectLabel)
	if p.Connecting {
		return lipgloss.JoinHorizontal(lipgloss.Center, btn, "  "+p.SpinnerView+mutedStyle.Render(" waiting for wallet…"))
	}
	return btn
}

// Render renders the welcome page body
func Render(p Props) string {
	lines := []string{
		headingStyle.Render(Heading(p.Branding.Name, p.Display)),
		mutedStyle.Render(p.Branding.Tagline),
		Button(p),
	}

	if p.Connected {
		status := mutedStyle.Render("Network: ") + p.Network.String()
		if p.Provider != "" {
			status += mutedStyle.Render("   Provider: ") + p.Provider
		}
		lines = append(lines, status)
		if p.CopiedMsg != "" {
			lines = append(lines, lipgloss.NewStyle().Foreground(styles.CAccent).Render(p.CopiedMsg))
		}
		if p.QR != "" {
			lines = append(lines, "", p.QR)
		}
	}

	body := strings.Join(lines, "\n")
	return lipgloss.NewStyle().Width(helpers.Max(0, p.Width)).Render(body)
}

// Footer renders the page footer
func Footer(width int, footer string) string {
	return lipgloss.NewStyle().
		Width(helpers.Max(0, width)).
		Align(lipgloss.Center).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(styles.CBorder).
		Foreground(styles.CMuted).
		Padding(1, 0).
		Render(footer)
}

// Nav returns the navigation bar for the welcome page
func Nav(width int, connected bool) string {
	var keys []string
	if connected {
		keys = []string{
			styles.Key("c") + " copy address",
			styles.Key("r") + " receive QR",
		}
	} else {
		keys = []string{styles.Key("Enter") + " connect"}
	}
	keys = append(keys,
		styles.Key("l")+" console",
		styles.Key("q")+" quit",
	)
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}
