package rpc

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// EIP-1193 and JSON-RPC error codes
const (
	codeUserRejected   = 4001
	codeMethodNotFound = -32601
)

// DialFunc opens a raw JSON-RPC connection
type DialFunc func(ctx context.Context, url string) (*gethrpc.Client, error)

// Client wraps an Ethereum RPC client
type Client struct {
	*ethclient.Client
	URL string
}

// ConnectResult holds the result of an RPC connection attempt
type ConnectResult struct {
	Client *Client
	Error  error
}

// Connect attempts to connect to an Ethereum RPC endpoint.
// A nil dial uses go-ethereum's transport selection (http, ws, ipc).
func Connect(url string, dial DialFunc) ConnectResult {
	return ConnectWithTimeout(url, dial, 8*time.Second)
}

// ConnectWithTimeout attempts to connect with a custom timeout
func ConnectWithTimeout(url string, dial DialFunc, timeout time.Duration) ConnectResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if dial == nil {
		dial = gethrpc.DialContext
	}

	raw, err := dial(ctx, url)
	if err != nil {
		return ConnectResult{Client: nil, Error: err}
	}

	return ConnectResult{
		Client: NewClient(raw, url),
		Error:  nil,
	}
}

// NewClient wraps an already open raw connection
func NewClient(raw *gethrpc.Client, url string) *Client {
	return &Client{
		Client: ethclient.NewClient(raw),
		URL:    url,
	}
}

// ChainIDInt64 reads the active chain ID
func (c *Client) ChainIDInt64(ctx context.Context) (int64, error) {
	id, err := c.ChainID(ctx)
	if err != nil {
		return 0, err
	}
	if !id.IsInt64() {
		return 0, errors.New("chain id out of range: " + id.String())
	}
	return id.Int64(), nil
}

// RequestAccounts asks the wallet to expose its accounts.
// Endpoints without eth_requestAccounts (plain nodes) are asked for eth_accounts instead.
func (c *Client) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	err := c.Client.Client().CallContext(ctx, &accounts, "eth_requestAccounts")
	if err != nil && IsMethodNotFound(err) {
		accounts = nil
		err = c.Client.Client().CallContext(ctx, &accounts, "eth_accounts")
	}
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// IsUserRejected reports whether the wallet refused the request (EIP-1193 code 4001)
func IsUserRejected(err error) bool {
	return errorCode(err) == codeUserRejected
}

// IsMethodNotFound reports whether the endpoint does not implement the method
func IsMethodNotFound(err error) bool {
	return errorCode(err) == codeMethodNotFound
}

func errorCode(err error) int {
	var rpcErr gethrpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.ErrorCode()
	}
	return 0
}
