package main

import (
	"fmt"
	"os"

	"ens-welcome-tui/config"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// -------------------- MAIN --------------------

type flags struct {
	configPath string
	network    string
	chainID    int64
	walletURL  string
	keystore   string
	account    string
	provider   string
	logger     bool
	logFile    string
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "ens-welcome",
		Short: "Connect a wallet and greet it by its ENS name",
		Long: `ens-welcome is a terminal welcome page. It connects to a wallet on the
configured network and greets the account by its primary ENS name.

Example:
  ens-welcome --wallet-url http://127.0.0.1:1248
  ens-welcome --network sepolia --keystore ~/.ethereum/keystore`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig(cmd, f)
			if _, err := cfg.ExpectedNetwork(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVar(&f.configPath, "config", "", "config file (default ~/.ens-welcome-config.json, .yaml also accepted)")
	cmd.Flags().StringVar(&f.network, "network", "", "expected network name, e.g. goerli or sepolia")
	cmd.Flags().Int64Var(&f.chainID, "chain-id", 0, "expected chain ID, overrides the network's own")
	cmd.Flags().StringVar(&f.walletURL, "wallet-url", "", "wallet JSON-RPC endpoint (ETH_WALLET_URL)")
	cmd.Flags().StringVar(&f.keystore, "keystore", "", "go-ethereum keystore directory")
	cmd.Flags().StringVar(&f.account, "account", "", "keystore account address")
	cmd.Flags().StringVar(&f.provider, "provider", "", "preferred provider: injected or keystore")
	cmd.Flags().BoolVar(&f.logger, "log", false, "show the console panel on start")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "also append console output to this file")

	return cmd
}

// loadConfig reads the config file, then applies the environment and explicitly set flags
func loadConfig(cmd *cobra.Command, f flags) config.Config {
	var cfg config.Config
	if f.configPath == "" {
		cfg = config.LoadOrCreate(config.DefaultPath())
	} else {
		cfg = config.Load(f.configPath)
	}
	cfg.ApplyEnv(os.Getenv)

	changed := cmd.Flags().Changed
	if changed("network") {
		cfg.Network = f.network
		if !changed("chain-id") {
			cfg.ChainID = 0
		}
	}
	if changed("chain-id") {
		cfg.ChainID = f.chainID
	}
	if changed("wallet-url") {
		cfg.WalletURL = f.walletURL
	}
	if changed("keystore") {
		cfg.Keystore.Dir = f.keystore
	}
	if changed("account") {
		cfg.Keystore.Account = f.account
	}
	if changed("provider") {
		cfg.Provider = f.provider
	}
	if changed("log") {
		cfg.Logger = f.logger
	}
	if changed("log-file") {
		cfg.LogFile = f.logFile
	}
	return cfg
}

func run(cfg config.Config) error {
	m := newModel(cfg, nil)
	defer m.close()

	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
