// Package wallet negotiates a connection with a wallet and produces an authenticated session.
package wallet

import (
	"context"
	"fmt"
	"strings"

	"ens-welcome-tui/config"
	"ens-welcome-tui/rpc"

	"github.com/ethereum/go-ethereum/common"
)

// Options configures a Connector
type Options struct {
	// Network is the only network a session may be opened on
	Network config.Network

	// InjectedURL is the wallet endpoint; ignored when DisableInjected is set
	InjectedURL     string
	DisableInjected bool

	// Keystore enables the local keystore provider when Dir is set
	Keystore config.KeystoreConfig

	// Provider picks a provider by name; empty means the first available
	Provider string

	Dial rpc.DialFunc
}

// OptionsFromConfig maps the file config onto connector options
func OptionsFromConfig(cfg config.Config, dial rpc.DialFunc) (Options, error) {
	network, err := cfg.ExpectedNetwork()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Network:         network,
		InjectedURL:     cfg.WalletURL,
		DisableInjected: cfg.DisableInjected,
		Keystore:        cfg.Keystore,
		Provider:        cfg.Provider,
		Dial:            dial,
	}, nil
}

// Connector holds the providers available for the program's lifetime
type Connector struct {
	network   config.Network
	providers []Provider
	selected  Provider
}

// NewConnector builds a connector for a single fixed network
func NewConnector(opts Options) (*Connector, error) {
	if opts.Network.ChainID <= 0 {
		return nil, fmt.Errorf("invalid expected chain id %d", opts.Network.ChainID)
	}

	c := &Connector{network: opts.Network}
	if !opts.DisableInjected && strings.TrimSpace(opts.InjectedURL) != "" {
		c.providers = append(c.providers, &injectedProvider{url: opts.InjectedURL, dial: opts.Dial})
	}
	if opts.Keystore.Dir != "" {
		c.providers = append(c.providers, &keystoreProvider{
			dir:        opts.Keystore.Dir,
			account:    opts.Keystore.Account,
			nodeURL:    opts.Keystore.NodeURL,
			passphrase: opts.Keystore.Passphrase,
			dial:       opts.Dial,
		})
	}
	if len(c.providers) == 0 {
		return nil, fmt.Errorf("%w: no provider configured", ErrConnectorUnavailable)
	}

	c.selected = c.providers[0]
	if opts.Provider != "" {
		p := c.find(opts.Provider)
		if p == nil {
			return nil, fmt.Errorf("%w: provider %q not configured", ErrConnectorUnavailable, opts.Provider)
		}
		c.selected = p
	}
	return c, nil
}

func (c *Connector) find(name string) Provider {
	for _, p := range c.providers {
		if strings.EqualFold(p.Name(), name) {
			return p
		}
	}
	return nil
}

// Network returns the expected network
func (c *Connector) Network() config.Network {
	return c.network
}

// Provider returns the name of the provider Connect will use
func (c *Connector) Provider() string {
	if c == nil || c.selected == nil {
		return ""
	}
	return c.selected.Name()
}

// NeedsPassphrase reports whether the selected provider still lacks a passphrase
func (c *Connector) NeedsPassphrase() bool {
	if c == nil {
		return false
	}
	ks, ok := c.selected.(*keystoreProvider)
	return ok && ks.passphrase == ""
}

// SetPassphrase supplies the keystore passphrase
func (c *Connector) SetPassphrase(passphrase string) {
	if c == nil {
		return
	}
	if ks, ok := c.selected.(*keystoreProvider); ok {
		ks.passphrase = passphrase
	}
}

// Connect opens an authenticated session on the expected network
func (c *Connector) Connect(ctx context.Context) (*Session, error) {
	if c == nil || c.selected == nil {
		return nil, ErrConnectorUnavailable
	}

	client, err := c.selected.Open(ctx)
	if err != nil {
		return nil, err
	}

	chainID, err := client.ChainIDInt64(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("read network: %w", err)
	}
	if chainID != c.network.ChainID {
		client.Close()
		return nil, &NetworkMismatchError{Want: c.network, Got: config.NetworkByChainID(chainID)}
	}

	signer, err := c.selected.Signer(ctx, client)
	if err != nil {
		client.Close()
		return nil, err
	}

	return &Session{
		Client:   client,
		Network:  c.network,
		Signer:   signer,
		Provider: c.selected.Name(),
	}, nil
}

// Session is an authenticated connection to the expected network
type Session struct {
	Client   *rpc.Client
	Network  config.Network
	Signer   Signer
	Provider string
}

// Address returns the signer's address
func (s *Session) Address() common.Address {
	return s.Signer.Address()
}

// Close releases the underlying connection
func (s *Session) Close() {
	if s != nil && s.Client != nil {
		s.Client.Close()
	}
}

// Identity is what the welcome page shows for a session
type Identity struct {
	Address common.Address
	Name    string
}
