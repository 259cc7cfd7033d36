package wallet

import (
	"context"
	"errors"
	"testing"

	"ens-welcome-tui/config"
	"ens-welcome-tui/ethtest"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	goerli = config.Network{Name: "goerli", Label: "Goerli", ChainID: 5}
	alice  = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
)

func injectedConnector(t *testing.T, node *ethtest.Node) *Connector {
	t.Helper()
	c, err := NewConnector(Options{Network: goerli, InjectedURL: "http://wallet", Dial: node.Dial})
	require.NoError(t, err)
	return c
}

func TestConnectInjected(t *testing.T) {
	node := ethtest.NewNode(5, alice)
	defer node.Close()

	c := injectedConnector(t, node)
	assert.Equal(t, config.ProviderInjected, c.Provider())

	sess, err := c.Connect(context.Background())
	require.NoError(t, err)
	defer sess.Close()

	assert.Equal(t, alice, sess.Address())
	assert.Equal(t, goerli, sess.Network)
	assert.Equal(t, config.ProviderInjected, sess.Provider)
	assert.Equal(t, 1, node.Requests())
}

func TestConnectWrongNetwork(t *testing.T) {
	node := ethtest.NewNode(1, alice)
	defer node.Close()

	_, err := injectedConnector(t, node).Connect(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrongNetwork)

	var mismatch *NetworkMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, int64(5), mismatch.Want.ChainID)
	assert.Equal(t, int64(1), mismatch.Got.ChainID)
	assert.Equal(t, "Ethereum Mainnet", mismatch.Got.Label)

	// the signer is never requested on the wrong network
	assert.Equal(t, 0, node.Requests())
}

func TestConnectUserRejected(t *testing.T) {
	node := ethtest.NewNode(5, alice)
	defer node.Close()
	node.RejectRequests(true)

	_, err := injectedConnector(t, node).Connect(context.Background())
	assert.ErrorIs(t, err, ErrUserRejected)
	assert.NotErrorIs(t, err, ErrWrongNetwork)
}

func TestConnectPlainNodeFallsBackToAccounts(t *testing.T) {
	node := ethtest.NewNode(5, alice)
	defer node.Close()
	node.Plain(true)

	sess, err := injectedConnector(t, node).Connect(context.Background())
	require.NoError(t, err)
	defer sess.Close()
	assert.Equal(t, alice, sess.Address())
}

func TestConnectNoAccounts(t *testing.T) {
	node := ethtest.NewNode(5)
	defer node.Close()

	_, err := injectedConnector(t, node).Connect(context.Background())
	assert.ErrorIs(t, err, ErrNoAccounts)
}

func TestConnectDialError(t *testing.T) {
	dialErr := errors.New("connection refused")
	c, err := NewConnector(Options{
		Network:     goerli,
		InjectedURL: "http://wallet",
		Dial: func(ctx context.Context, url string) (*gethrpc.Client, error) {
			return nil, dialErr
		},
	})
	require.NoError(t, err)

	_, err = c.Connect(context.Background())
	assert.ErrorIs(t, err, dialErr)
}

func TestNilConnector(t *testing.T) {
	var c *Connector
	_, err := c.Connect(context.Background())
	assert.ErrorIs(t, err, ErrConnectorUnavailable)
	assert.False(t, c.NeedsPassphrase())
	assert.Empty(t, c.Provider())
}

func TestNewConnectorValidation(t *testing.T) {
	_, err := NewConnector(Options{InjectedURL: "http://wallet"})
	assert.Error(t, err, "zero chain id")

	_, err = NewConnector(Options{Network: goerli})
	assert.ErrorIs(t, err, ErrConnectorUnavailable)

	_, err = NewConnector(Options{Network: goerli, InjectedURL: "http://wallet", DisableInjected: true})
	assert.ErrorIs(t, err, ErrConnectorUnavailable, "injected disabled and nothing else configured")

	_, err = NewConnector(Options{Network: goerli, InjectedURL: "http://wallet", Provider: "ledger"})
	assert.ErrorIs(t, err, ErrConnectorUnavailable)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Provider = config.ProviderKeystore
	cfg.Keystore.Dir = "/keys"

	opts, err := OptionsFromConfig(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), opts.Network.ChainID)
	assert.Equal(t, cfg.WalletURL, opts.InjectedURL)
	assert.Equal(t, config.ProviderKeystore, opts.Provider)
	assert.Equal(t, "/keys", opts.Keystore.Dir)

	_, err = OptionsFromConfig(config.Config{Network: "nowhere"}, nil)
	assert.Error(t, err)
}

func newKeystoreAccount(t *testing.T, passphrase string) (string, common.Address) {
	t.Helper()
	dir := t.TempDir()
	ks := keystore.NewKeyStore(dir, keystore.LightScryptN, keystore.LightScryptP)
	acc, err := ks.NewAccount(passphrase)
	require.NoError(t, err)
	return dir, acc.Address
}

func TestConnectKeystore(t *testing.T) {
	dir, addr := newKeystoreAccount(t, "correct horse")
	node := ethtest.NewNode(5)
	defer node.Close()

	c, err := NewConnector(Options{
		Network:         goerli,
		DisableInjected: true,
		Keystore:        config.KeystoreConfig{Dir: dir, NodeURL: "http://node"},
		Dial:            node.Dial,
	})
	require.NoError(t, err)
	assert.Equal(t, config.ProviderKeystore, c.Provider())
	assert.True(t, c.NeedsPassphrase())

	c.SetPassphrase("wrong")
	assert.False(t, c.NeedsPassphrase())
	_, err = c.Connect(context.Background())
	assert.ErrorIs(t, err, keystore.ErrDecrypt)
	assert.True(t, c.NeedsPassphrase(), "a failed unlock asks again")

	c.SetPassphrase("correct horse")
	sess, err := c.Connect(context.Background())
	require.NoError(t, err)
	defer sess.Close()
	assert.Equal(t, addr, sess.Address())
	assert.Equal(t, config.ProviderKeystore, sess.Provider)

	ksp, ok := c.selected.(*keystoreProvider)
	require.True(t, ok)
	first := ksp.ks
	require.NotNil(t, first)

	again, err := c.Connect(context.Background())
	require.NoError(t, err)
	defer again.Close()
	assert.Same(t, first, ksp.ks, "the keystore is opened once per provider")
}

func TestConnectKeystoreSelectsAccount(t *testing.T) {
	dir, _ := newKeystoreAccount(t, "pw")
	ks := keystore.NewKeyStore(dir, keystore.LightScryptN, keystore.LightScryptP)
	second, err := ks.NewAccount("pw")
	require.NoError(t, err)

	node := ethtest.NewNode(5)
	defer node.Close()

	c, err := NewConnector(Options{
		Network:     goerli,
		InjectedURL: "http://wallet",
		Provider:    config.ProviderKeystore,
		Keystore: config.KeystoreConfig{
			Dir:        dir,
			Account:    second.Address.Hex(),
			NodeURL:    "http://node",
			Passphrase: "pw",
		},
		Dial: node.Dial,
	})
	require.NoError(t, err)

	sess, err := c.Connect(context.Background())
	require.NoError(t, err)
	defer sess.Close()
	assert.Equal(t, second.Address, sess.Address())
}

func TestConnectKeystoreWithoutNodeURL(t *testing.T) {
	dir, _ := newKeystoreAccount(t, "pw")
	c, err := NewConnector(Options{
		Network:  goerli,
		Keystore: config.KeystoreConfig{Dir: dir, Passphrase: "pw"},
	})
	require.NoError(t, err)

	_, err = c.Connect(context.Background())
	assert.Error(t, err)
}
