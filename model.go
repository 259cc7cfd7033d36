package main

import (
	"io"
	"os"
	"strings"
	"time"

	"ens-welcome-tui/config"
	"ens-welcome-tui/rpc"
	"ens-welcome-tui/styles"
	"ens-welcome-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- MODEL --------------------

// model is the welcome page controller following The Elm Architecture
type model struct {
	w, h int

	cfg     config.Config
	network config.Network
	dial    rpc.DialFunc

	// wallet connector, built lazily on first render and kept for the program's lifetime
	connector *wallet.Connector
	session   *wallet.Session

	// page state
	walletConnected bool
	connecting      bool   // a connect attempt is in flight
	ensName         string // set when the address has a primary ENS name
	address         string // fallback display when no name resolves

	// blocking network-mismatch dialog; empty when hidden
	alert string

	// keystore passphrase prompt
	passphraseForm *huh.Form

	spin spinner.Model

	// receive panel
	showQR bool

	// clipboard feedback
	copiedMsg     string
	copiedMsgTime time.Time

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *strings.Builder
	logOut      io.Closer
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// -------------------- INIT --------------------

// newModel creates the page controller. A nil dial uses go-ethereum's transports.
func newModel(cfg config.Config, dial rpc.DialFunc) model {
	network, _ := cfg.ExpectedNetwork()

	// spinner
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	// Initialize log viewport
	vp := viewport.New(0, 8) // Will be resized in Update on first WindowSizeMsg
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	// Initialize log spinner
	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	m := model{
		cfg:         cfg,
		network:     network,
		dial:        dial,
		spin:        sp,
		logEnabled:  cfg.Logger,
		logBuffer:   &strings.Builder{},
		logViewport: vp,
		logSpinner:  logSpin,
	}
	m.logger = m.newLogger()

	return m
}

// newLogger writes into the console buffer, and into the log file when one is configured
func (m *model) newLogger() *log.Logger {
	var out io.Writer = m.logBuffer
	var fileErr error
	if m.cfg.LogFile != "" {
		f, err := os.OpenFile(m.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			fileErr = err
		} else {
			m.logOut = f
			out = io.MultiWriter(m.logBuffer, f)
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "",
	})
	// Set log level and styling
	logger.SetLevel(log.DebugLevel)
	logger.SetStyles(&log.Styles{
		Timestamp: lipgloss.NewStyle().Foreground(cMuted),
		Caller:    lipgloss.NewStyle().Faint(true),
		Prefix:    lipgloss.NewStyle().Bold(true).Foreground(cAccent2),
		Message:   lipgloss.NewStyle().Foreground(cText),
		Key:       lipgloss.NewStyle().Foreground(cAccent),
		Value:     lipgloss.NewStyle().Foreground(cText),
		Separator: lipgloss.NewStyle().Faint(true),
		Levels: map[log.Level]lipgloss.Style{
			log.DebugLevel: lipgloss.NewStyle().Foreground(cMuted).SetString("DEBUG"),
			log.InfoLevel:  lipgloss.NewStyle().Foreground(cAccent2).SetString("INFO"),
			log.WarnLevel:  lipgloss.NewStyle().Foreground(cWarn).SetString("WARN"),
			log.ErrorLevel: lipgloss.NewStyle().Foreground(styles.CDanger).SetString("ERROR"),
		},
	})
	if fileErr != nil {
		logger.Warn("Log file disabled", "err", fileErr)
	}
	return logger
}

// Init implements tea.Model interface and returns initial commands
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}
	// build the connector on first render unless already connected
	if !m.walletConnected {
		cmds = append(cmds, initConnector(m.cfg, m.dial))
	}
	return tea.Batch(cmds...)
}

// registry returns the configured ENS registry address
func (m model) registry() common.Address {
	if common.IsHexAddress(m.cfg.ENSRegistry) {
		return common.HexToAddress(m.cfg.ENSRegistry)
	}
	return common.HexToAddress(config.DefaultENSRegistry)
}

// display returns what the welcome heading greets
func (m model) display() string {
	if m.ensName != "" {
		return m.ensName
	}
	return m.address
}

// close releases the session and the log file
func (m *model) close() {
	if m.session != nil {
		m.session.Close()
		m.session = nil
	}
	if m.logOut != nil {
		_ = m.logOut.Close()
		m.logOut = nil
	}
}
