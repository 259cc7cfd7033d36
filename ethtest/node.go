// Package ethtest provides an in-process wallet endpoint for tests.
//
// The node speaks enough JSON-RPC for the connect flow: eth_chainId,
// eth_requestAccounts, eth_accounts and eth_call against an ENS registry
// and a single resolver.
package ethtest

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"ens-welcome-tui/config"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	ens "github.com/wealdtech/go-ens/v3"
)

var (
	// Registry is the address the fake serves the ENS registry at
	Registry = common.HexToAddress(config.DefaultENSRegistry)
	// Resolver is the address of the fake's only resolver
	Resolver = common.HexToAddress("0x4976fb03C32e5B8cfe2b6cCB31c09Ba78EBaBa41")
)

const ensABI = `[
	{"name":"resolver","type":"function","stateMutability":"view","inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"address"}]},
	{"name":"name","type":"function","stateMutability":"view","inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"string"}]},
	{"name":"addr","type":"function","stateMutability":"view","inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"address"}]}
]`

var parsedABI = func() abi.ABI {
	a, err := abi.JSON(strings.NewReader(ensABI))
	if err != nil {
		panic(err)
	}
	return a
}()

// Node is a fake wallet endpoint
type Node struct {
	mu       sync.Mutex
	chainID  int64
	accounts []common.Address
	reject   bool
	plain    bool
	callErr  error
	reverse  map[[32]byte]string
	forward  map[[32]byte]common.Address
	requests int

	server *rpc.Server
}

// NewNode starts a fake node reporting the given chain ID
func NewNode(chainID int64, accounts ...common.Address) *Node {
	n := &Node{
		chainID:  chainID,
		accounts: accounts,
		reverse:  make(map[[32]byte]string),
		forward:  make(map[[32]byte]common.Address),
		server:   rpc.NewServer(),
	}
	if err := n.server.RegisterName("eth", &ethService{n: n}); err != nil {
		panic(err)
	}
	return n
}

// Dial satisfies rpc.DialFunc; the URL is ignored
func (n *Node) Dial(ctx context.Context, url string) (*rpc.Client, error) {
	return rpc.DialInProc(n.server), nil
}

// Close stops the in-process server
func (n *Node) Close() {
	n.server.Stop()
}

// SetChainID switches the reported network
func (n *Node) SetChainID(id int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.chainID = id
}

// RejectRequests makes eth_requestAccounts fail as if the user dismissed the prompt
func (n *Node) RejectRequests(reject bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reject = reject
}

// Plain makes the node behave like a bare node without eth_requestAccounts
func (n *Node) Plain(plain bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.plain = plain
}

// FailCalls makes every eth_call return err
func (n *Node) FailCalls(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.callErr = err
}

// Requests returns how many account requests the node has served
func (n *Node) Requests() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.requests
}

// SetName registers both the reverse record and the matching forward record
func (n *Node) SetName(addr common.Address, name string) {
	n.SetReverse(addr, name)
	n.SetForward(name, addr)
}

// SetReverse registers only the reverse record addr -> name
func (n *Node) SetReverse(addr common.Address, name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reverse[mustHash(fmt.Sprintf("%x.addr.reverse", addr.Bytes()))] = name
}

// SetForward registers only the forward record name -> addr
func (n *Node) SetForward(name string, addr common.Address) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.forward[mustHash(name)] = addr
}

func mustHash(name string) [32]byte {
	h, err := ens.NameHash(name)
	if err != nil {
		panic(err)
	}
	return h
}

// codedError carries a JSON-RPC error code back to the client
type codedError struct {
	code int
	msg  string
}

func (e *codedError) Error() string  { return e.msg }
func (e *codedError) ErrorCode() int { return e.code }

type callArgs struct {
	From  *common.Address `json:"from"`
	To    *common.Address `json:"to"`
	Data  hexutil.Bytes   `json:"data"`
	Input hexutil.Bytes   `json:"input"`
}

func (a callArgs) calldata() []byte {
	if len(a.Input) > 0 {
		return a.Input
	}
	return a.Data
}

type ethService struct {
	n *Node
}

func (s *ethService) ChainId() *hexutil.Big {
	s.n.mu.Lock()
	defer s.n.mu.Unlock()
	return (*hexutil.Big)(big.NewInt(s.n.chainID))
}

func (s *ethService) Accounts() []common.Address {
	s.n.mu.Lock()
	defer s.n.mu.Unlock()
	return append([]common.Address{}, s.n.accounts...)
}

func (s *ethService) RequestAccounts() ([]common.Address, error) {
	s.n.mu.Lock()
	defer s.n.mu.Unlock()
	if s.n.plain {
		return nil, &codedError{code: -32601, msg: "the method eth_requestAccounts does not exist/is not available"}
	}
	s.n.requests++
	if s.n.reject {
		return nil, &codedError{code: 4001, msg: "User rejected the request."}
	}
	return append([]common.Address{}, s.n.accounts...), nil
}

func (s *ethService) Call(args callArgs, block string) (hexutil.Bytes, error) {
	s.n.mu.Lock()
	defer s.n.mu.Unlock()

	if s.n.callErr != nil {
		return nil, s.n.callErr
	}
	data := args.calldata()
	if args.To == nil || len(data) < 4 {
		return hexutil.Bytes{}, nil
	}

	method, err := parsedABI.MethodById(data[:4])
	if err != nil {
		return hexutil.Bytes{}, nil
	}
	in, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, err
	}
	node := in[0].([32]byte)

	switch {
	case *args.To == Registry && method.Name == "resolver":
		_, hasName := s.n.reverse[node]
		_, hasAddr := s.n.forward[node]
		if hasName || hasAddr {
			return method.Outputs.Pack(Resolver)
		}
		return method.Outputs.Pack(common.Address{})
	case *args.To == Resolver && method.Name == "name":
		return method.Outputs.Pack(s.n.reverse[node])
	case *args.To == Resolver && method.Name == "addr":
		return method.Outputs.Pack(s.n.forward[node])
	}
	// no code at the target
	return hexutil.Bytes{}, nil
}
