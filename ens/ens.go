// Package ens resolves Ethereum addresses to their primary ENS names.
package ens

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	goens "github.com/wealdtech/go-ens/v3"
)

const registryABIJSON = `[{"name":"resolver","type":"function","stateMutability":"view","inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"address"}]}]`

const resolverABIJSON = `[
	{"name":"name","type":"function","stateMutability":"view","inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"string"}]},
	{"name":"addr","type":"function","stateMutability":"view","inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"address"}]}
]`

var (
	registryABI = mustABI(registryABIJSON)
	resolverABI = mustABI(resolverABIJSON)
)

func mustABI(s string) abi.ABI {
	a, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return a
}

// Resolver queries the ENS registry through any contract caller (an ethclient, a session)
type Resolver struct {
	caller   ethereum.ContractCaller
	registry common.Address
}

// NewResolver creates a resolver against the given registry address
func NewResolver(caller ethereum.ContractCaller, registry common.Address) *Resolver {
	return &Resolver{caller: caller, registry: registry}
}

// ReverseName returns the reverse-registrar name for an address
func ReverseName(addr common.Address) string {
	return fmt.Sprintf("%x.addr.reverse", addr.Bytes())
}

// NameHash computes the EIP-137 namehash of a normalized name
func NameHash(name string) (common.Hash, error) {
	h, err := goens.NameHash(name)
	if err != nil {
		return common.Hash{}, err
	}
	return common.Hash(h), nil
}

// LookupAddress returns the primary name of addr, or "" when none is set.
// The reverse record only counts when the name resolves back to addr.
func (r *Resolver) LookupAddress(ctx context.Context, addr common.Address) (string, error) {
	node, err := NameHash(ReverseName(addr))
	if err != nil {
		return "", err
	}

	resolver, err := r.resolverFor(ctx, node)
	if err != nil || resolver == (common.Address{}) {
		return "", err
	}

	out, err := r.call(ctx, resolver, resolverABI, "name", node)
	if err != nil || out == nil {
		return "", err
	}
	name, _ := out[0].(string)
	if name == "" {
		return "", nil
	}

	resolved, err := r.ResolveName(ctx, name)
	if err != nil {
		return "", err
	}
	if resolved != addr {
		return "", nil
	}
	return name, nil
}

// ResolveName returns the address a name points to, zero when unset
func (r *Resolver) ResolveName(ctx context.Context, name string) (common.Address, error) {
	node, err := NameHash(name)
	if err != nil {
		// unnormalizable names never resolve
		return common.Address{}, nil
	}

	resolver, err := r.resolverFor(ctx, node)
	if err != nil || resolver == (common.Address{}) {
		return common.Address{}, err
	}

	out, err := r.call(ctx, resolver, resolverABI, "addr", node)
	if err != nil || out == nil {
		return common.Address{}, err
	}
	a, _ := out[0].(common.Address)
	return a, nil
}

func (r *Resolver) resolverFor(ctx context.Context, node common.Hash) (common.Address, error) {
	out, err := r.call(ctx, r.registry, registryABI, "resolver", node)
	if err != nil || out == nil {
		return common.Address{}, err
	}
	a, _ := out[0].(common.Address)
	return a, nil
}

// call packs, executes and unpacks a view call. An empty return (no code) yields nil results.
func (r *Resolver) call(ctx context.Context, to common.Address, a abi.ABI, method string, node common.Hash) ([]interface{}, error) {
	data, err := a.Pack(method, [32]byte(node))
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	out, err := r.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s on %s: %w", method, to.Hex(), err)
	}
	if len(out) == 0 {
		return nil, nil
	}

	res, err := a.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(res) == 0 {
		return nil, nil
	}
	return res, nil
}
