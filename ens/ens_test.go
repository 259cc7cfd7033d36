package ens

import (
	"context"
	"errors"
	"testing"

	"ens-welcome-tui/ethtest"
	"ens-welcome-tui/rpc"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
)

func newResolver(t *testing.T, node *ethtest.Node) *Resolver {
	t.Helper()
	raw, err := node.Dial(context.Background(), "inproc")
	require.NoError(t, err)
	client := rpc.NewClient(raw, "inproc")
	t.Cleanup(client.Close)
	return NewResolver(client, ethtest.Registry)
}

func TestNameHash(t *testing.T) {
	h, err := NameHash("eth")
	require.NoError(t, err)
	assert.Equal(t, "0x93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae", h.Hex())

	h, err = NameHash("foo.eth")
	require.NoError(t, err)
	assert.Equal(t, "0xde9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f", h.Hex())
}

func TestReverseName(t *testing.T) {
	addr := common.HexToAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
	assert.Equal(t, "d8da6bf26964af9d7eed9e03e53415d37aa96045.addr.reverse", ReverseName(addr))
}

func TestLookupAddress(t *testing.T) {
	node := ethtest.NewNode(5)
	defer node.Close()
	node.SetName(alice, "alice.eth")

	r := newResolver(t, node)

	name, err := r.LookupAddress(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, "alice.eth", name)

	name, err = r.LookupAddress(context.Background(), bob)
	require.NoError(t, err)
	assert.Empty(t, name, "address without reverse record")
}

func TestLookupAddressRequiresForwardMatch(t *testing.T) {
	node := ethtest.NewNode(5)
	defer node.Close()

	// bob claims alice's name but alice.eth points to alice
	node.SetName(alice, "alice.eth")
	node.SetReverse(bob, "alice.eth")

	r := newResolver(t, node)
	name, err := r.LookupAddress(context.Background(), bob)
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestLookupAddressReverseWithoutForward(t *testing.T) {
	node := ethtest.NewNode(5)
	defer node.Close()
	node.SetReverse(alice, "ghost.eth")

	r := newResolver(t, node)
	name, err := r.LookupAddress(context.Background(), alice)
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestLookupAddressTransportError(t *testing.T) {
	node := ethtest.NewNode(5)
	defer node.Close()
	node.SetName(alice, "alice.eth")
	node.FailCalls(errors.New("upstream unavailable"))

	r := newResolver(t, node)
	_, err := r.LookupAddress(context.Background(), alice)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream unavailable")
}

func TestResolveName(t *testing.T) {
	node := ethtest.NewNode(5)
	defer node.Close()
	node.SetForward("bob.eth", bob)

	r := newResolver(t, node)

	addr, err := r.ResolveName(context.Background(), "bob.eth")
	require.NoError(t, err)
	assert.Equal(t, bob, addr)

	addr, err = r.ResolveName(context.Background(), "nobody.eth")
	require.NoError(t, err)
	assert.Equal(t, common.Address{}, addr)
}

func TestNoRegistryCode(t *testing.T) {
	node := ethtest.NewNode(5)
	defer node.Close()
	node.SetName(alice, "alice.eth")

	raw, err := node.Dial(context.Background(), "inproc")
	require.NoError(t, err)
	client := rpc.NewClient(raw, "inproc")
	defer client.Close()

	// a registry address with no code returns empty data
	r := NewResolver(client, common.HexToAddress("0x1111111111111111111111111111111111111111"))
	name, err := r.LookupAddress(context.Background(), alice)
	require.NoError(t, err)
	assert.Empty(t, name)
}
