package wallet

import (
	"errors"
	"fmt"

	"ens-welcome-tui/config"
)

var (
	// ErrConnectorUnavailable is returned when there is no connector or no provider to connect through
	ErrConnectorUnavailable = errors.New("wallet connector unavailable")
	// ErrWrongNetwork is matched by NetworkMismatchError
	ErrWrongNetwork = errors.New("wrong network")
	// ErrUserRejected is returned when the wallet prompt was dismissed
	ErrUserRejected = errors.New("user rejected the connection request")
	// ErrNoAccounts is returned when the wallet exposes no account
	ErrNoAccounts = errors.New("wallet exposed no accounts")
)

// NetworkMismatchError reports the chain the wallet is on versus the one required
type NetworkMismatchError struct {
	Want config.Network
	Got  config.Network
}

func (e *NetworkMismatchError) Error() string {
	return fmt.Sprintf("wrong network: wallet is on %s (chain %d), expected %s (chain %d)",
		e.Got, e.Got.ChainID, e.Want, e.Want.ChainID)
}

// Is lets errors.Is(err, ErrWrongNetwork) match
func (e *NetworkMismatchError) Is(target error) bool {
	return target == ErrWrongNetwork
}
