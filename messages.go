package main

import (
	"ens-welcome-tui/wallet"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// connectorReadyMsg carries the connector built on first render
type connectorReadyMsg struct {
	connector *wallet.Connector
	err       error
}

// walletConnectedMsg contains the result of a connect attempt.
// On success the session is authenticated and the display name step has run.
type walletConnectedMsg struct {
	session  *wallet.Session
	identity wallet.Identity
	err      error
}

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct {
	err error
}

// clearCopiedMsg hides the clipboard feedback
type clearCopiedMsg struct{}

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}
