package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Network identifies an EVM chain
type Network struct {
	Name    string
	Label   string
	ChainID int64
}

func (n Network) String() string {
	if n.Label != "" {
		return n.Label
	}
	if n.Name != "" {
		return n.Name
	}
	return "chain " + strconv.FormatInt(n.ChainID, 10)
}

// KnownNetworks lists the networks that can be selected by name
var KnownNetworks = []Network{
	{Name: "mainnet", Label: "Ethereum Mainnet", ChainID: 1},
	{Name: "goerli", Label: "Goerli", ChainID: 5},
	{Name: "sepolia", Label: "Sepolia", ChainID: 11155111},
	{Name: "holesky", Label: "Holesky", ChainID: 17000},
}

// NetworkByName looks up a known network, case-insensitively
func NetworkByName(name string) (Network, bool) {
	for _, n := range KnownNetworks {
		if strings.EqualFold(n.Name, name) {
			return n, true
		}
	}
	return Network{}, false
}

// NetworkByChainID looks up a known network, returning a bare one for unknown IDs
func NetworkByChainID(id int64) Network {
	for _, n := range KnownNetworks {
		if n.ChainID == id {
			return n
		}
	}
	return Network{ChainID: id}
}

// ExpectedNetwork returns the one network the wallet must be connected to.
// An explicit chain_id overrides the chain ID of the named network.
func (c Config) ExpectedNetwork() (Network, error) {
	if c.Network == "" {
		if c.ChainID <= 0 {
			return Network{}, fmt.Errorf("no network configured")
		}
		return NetworkByChainID(c.ChainID), nil
	}

	n, ok := NetworkByName(c.Network)
	if !ok {
		if c.ChainID <= 0 {
			return Network{}, fmt.Errorf("unknown network %q: set chain_id", c.Network)
		}
		return Network{Name: c.Network, Label: c.Network, ChainID: c.ChainID}, nil
	}
	if c.ChainID > 0 {
		n.ChainID = c.ChainID
	}
	return n, nil
}
