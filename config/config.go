package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultENSRegistry is the ENS registry address shared by mainnet and the public testnets
const DefaultENSRegistry = "0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"

// Provider names
const (
	ProviderInjected = "injected"
	ProviderKeystore = "keystore"
)

// Config represents the application configuration
type Config struct {
	Network         string         `json:"network" yaml:"network"`
	ChainID         int64          `json:"chain_id,omitempty" yaml:"chain_id,omitempty"`
	Provider        string         `json:"provider,omitempty" yaml:"provider,omitempty"`
	WalletURL       string         `json:"wallet_url" yaml:"wallet_url"`
	DisableInjected bool           `json:"disable_injected_provider" yaml:"disable_injected_provider"`
	Keystore        KeystoreConfig `json:"keystore" yaml:"keystore"`
	ENSRegistry     string         `json:"ens_registry,omitempty" yaml:"ens_registry,omitempty"`
	Branding        Branding       `json:"branding" yaml:"branding"`
	Logger          bool           `json:"logger" yaml:"logger"`
	LogFile         string         `json:"log_file,omitempty" yaml:"log_file,omitempty"`
}

// KeystoreConfig points at a go-ethereum keystore directory
type KeystoreConfig struct {
	Dir     string `json:"dir,omitempty" yaml:"dir,omitempty"`
	Account string `json:"account,omitempty" yaml:"account,omitempty"`
	NodeURL string `json:"node_url,omitempty" yaml:"node_url,omitempty"`

	// Passphrase is never written to disk
	Passphrase string `json:"-" yaml:"-"`
}

// Branding holds the welcome page copy
type Branding struct {
	Name    string `json:"name" yaml:"name"`
	Tagline string `json:"tagline" yaml:"tagline"`
	Footer  string `json:"footer" yaml:"footer"`
}

// isYAML reports whether the path should be read and written as YAML
func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func decode(path string, data []byte, cfg *Config) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, cfg)
	}
	return json.Unmarshal(data, cfg)
}

func encode(path string, cfg Config) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(cfg)
	}
	return json.MarshalIndent(cfg, "", "  ")
}

// Load reads the config from the specified path.
// Missing or unreadable files yield the defaults.
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig()
	}

	var cfg Config
	if err := decode(path, data, &cfg); err != nil {
		return DefaultConfig()
	}

	return cfg.withDefaults()
}

// Save writes the config to the specified path
func Save(path string, cfg Config) error {
	data, err := encode(path, cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Network:     "goerli",
		WalletURL:   "http://127.0.0.1:1248",
		ENSRegistry: DefaultENSRegistry,
		Branding: Branding{
			Name:    "LearnWeb3 Associates",
			Tagline: "It's an NFT collection for LearnWeb3Associates.",
			Footer:  "Made with ❤ by LearnWeb3 Associates",
		},
		Logger: false,
	}
}

// LoadOrCreate loads config from path, or creates a default one if not found
func LoadOrCreate(path string) Config {
	// Try to read existing config
	data, err := os.ReadFile(path)
	if err != nil {
		// File doesn't exist, create default
		cfg := DefaultConfig()
		_ = Save(path, cfg)
		return cfg
	}

	var cfg Config
	if err := decode(path, data, &cfg); err != nil {
		// Invalid config, return default
		return DefaultConfig()
	}

	return cfg.withDefaults()
}

// withDefaults fills fields a partial config file left empty
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Network == "" && c.ChainID == 0 {
		c.Network = def.Network
	}
	if c.ENSRegistry == "" {
		c.ENSRegistry = def.ENSRegistry
	}
	if c.Branding.Name == "" {
		c.Branding.Name = def.Branding.Name
	}
	if c.Branding.Tagline == "" {
		c.Branding.Tagline = def.Branding.Tagline
	}
	if c.Branding.Footer == "" {
		c.Branding.Footer = def.Branding.Footer
	}
	return c
}

// ApplyEnv overlays environment variables on top of the file config.
// ETH_WALLET_URL wins over ETH_RPC_URL, which only fills an empty wallet URL.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv("ETH_WALLET_URL")); v != "" {
		c.WalletURL = v
	} else if v := strings.TrimSpace(getenv("ETH_RPC_URL")); v != "" && c.WalletURL == "" {
		c.WalletURL = v
	}
	if v := strings.TrimSpace(getenv("ETH_RPC_URL")); v != "" && c.Keystore.NodeURL == "" {
		c.Keystore.NodeURL = v
	}
	if v := getenv("KEYSTORE_PASSPHRASE"); v != "" {
		c.Keystore.Passphrase = v
	}
}

// DefaultPath returns the config location in the user's home directory
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".ens-welcome-config.json")
}
