package wallet

import (
	"context"
	"errors"
	"fmt"

	"ens-welcome-tui/config"
	"ens-welcome-tui/rpc"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
)

// Provider hands out a network-aware client and, on request, a signer
type Provider interface {
	Name() string
	Open(ctx context.Context) (*rpc.Client, error)
	Signer(ctx context.Context, client *rpc.Client) (Signer, error)
}

// Signer is the authenticated handle for the connected address.
// It only reports the address; nothing on the welcome page signs.
type Signer interface {
	Address() common.Address
}

type addressSigner struct {
	addr common.Address
}

func (s addressSigner) Address() common.Address { return s.addr }

// injectedProvider talks to a wallet endpoint that owns the keys (Frame, a node with unlocked accounts)
type injectedProvider struct {
	url  string
	dial rpc.DialFunc
}

func (p *injectedProvider) Name() string { return config.ProviderInjected }

func (p *injectedProvider) Open(ctx context.Context) (*rpc.Client, error) {
	result := rpc.Connect(p.url, p.dial)
	if result.Error != nil {
		return nil, fmt.Errorf("dial wallet %s: %w", p.url, result.Error)
	}
	return result.Client, nil
}

func (p *injectedProvider) Signer(ctx context.Context, client *rpc.Client) (Signer, error) {
	accs, err := client.RequestAccounts(ctx)
	if err != nil {
		if rpc.IsUserRejected(err) {
			return nil, fmt.Errorf("%w: %v", ErrUserRejected, err)
		}
		return nil, fmt.Errorf("request accounts: %w", err)
	}
	if len(accs) == 0 {
		return nil, ErrNoAccounts
	}
	return addressSigner{addr: accs[0]}, nil
}

// keystoreProvider keeps the key locally and uses a node only for chain queries
type keystoreProvider struct {
	dir        string
	account    string
	nodeURL    string
	passphrase string
	dial       rpc.DialFunc

	// opened on the first attempt, unlocked accounts stay unlocked for the program's lifetime
	ks *keystore.KeyStore
}

func (p *keystoreProvider) Name() string { return config.ProviderKeystore }

func (p *keystoreProvider) Open(ctx context.Context) (*rpc.Client, error) {
	if p.nodeURL == "" {
		return nil, errors.New("keystore provider has no node URL")
	}
	result := rpc.Connect(p.nodeURL, p.dial)
	if result.Error != nil {
		return nil, fmt.Errorf("dial node %s: %w", p.nodeURL, result.Error)
	}
	return result.Client, nil
}

func (p *keystoreProvider) Signer(ctx context.Context, client *rpc.Client) (Signer, error) {
	ks := p.keyStore()

	all := ks.Accounts()
	if len(all) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoAccounts, p.dir)
	}

	acc := all[0]
	if p.account != "" {
		if !common.IsHexAddress(p.account) {
			return nil, fmt.Errorf("invalid keystore account %q", p.account)
		}
		found, err := ks.Find(accounts.Account{Address: common.HexToAddress(p.account)})
		if err != nil {
			return nil, fmt.Errorf("keystore account %s: %w", p.account, err)
		}
		acc = found
	}

	if err := ks.Unlock(acc, p.passphrase); err != nil {
		// ask again on the next attempt
		p.passphrase = ""
		return nil, fmt.Errorf("unlock %s: %w", acc.Address.Hex(), err)
	}
	return addressSigner{addr: acc.Address}, nil
}

func (p *keystoreProvider) keyStore() *keystore.KeyStore {
	if p.ks == nil {
		p.ks = keystore.NewKeyStore(p.dir, keystore.StandardScryptN, keystore.StandardScryptP)
	}
	return p.ks
}
