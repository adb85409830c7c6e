// Package config handles wallet configuration.
//
// Settings are resolved in order: defaults, the .conf file in the data
// directory, then command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/Klingon-tech/klingnet-wallet/internal/wallet"
	"github.com/Klingon-tech/klingnet-wallet/pkg/types"
)

// NetworkType identifies mainnet or testnet.
type NetworkType = types.Network

const (
	Mainnet = types.Mainnet
	Testnet = types.Testnet
)

// Output formats for command results.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// ConfigFileName is the config file name inside the data directory.
const ConfigFileName = "klingnet-wallet.conf"

// Config holds wallet runtime configuration.
type Config struct {
	// Core
	Network NetworkType `conf:"network"`
	DataDir string      `conf:"datadir"`

	// Wallet
	Wallet WalletConfig

	// Node RPC, used by the balance command
	RPC RPCConfig

	// Output
	Output OutputConfig

	// Logging
	Log LogConfig
}

// WalletConfig holds key derivation and encryption settings.
type WalletConfig struct {
	KeyType wallet.KeyType `conf:"wallet.keytype"`
	Argon   ArgonConfig
}

// ArgonConfig holds the Argon2id parameters used when sealing new wallets.
type ArgonConfig struct {
	Memory      uint32 `conf:"wallet.argon.memory"` // KiB
	Iterations  uint32 `conf:"wallet.argon.iterations"`
	Parallelism uint8  `conf:"wallet.argon.parallelism"`
}

// Params converts the settings to wallet encryption parameters.
func (a ArgonConfig) Params() wallet.EncryptionParams {
	return wallet.EncryptionParams{
		Memory:      a.Memory,
		Iterations:  a.Iterations,
		Parallelism: a.Parallelism,
	}
}

// RPCConfig points at a klingnetd JSON-RPC endpoint.
type RPCConfig struct {
	URL     string `conf:"rpc.url"`
	Timeout int    `conf:"rpc.timeout"` // seconds
}

// OutputConfig controls how command results are printed.
type OutputConfig struct {
	Format string `conf:"output.format"` // table or json
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.klingnet-wallet
//	macOS:   ~/Library/Application Support/KlingnetWallet
//	Windows: %APPDATA%\KlingnetWallet
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".klingnet-wallet"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "KlingnetWallet")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "KlingnetWallet")
		}
		return filepath.Join(home, "AppData", "Roaming", "KlingnetWallet")
	default:
		return filepath.Join(home, ".klingnet-wallet")
	}
}

// NetworkDataDir returns the network-specific data directory.
func (c *Config) NetworkDataDir() string {
	return filepath.Join(c.DataDir, string(c.Network))
}

// KeystoreDir returns the keystore database directory.
func (c *Config) KeystoreDir() string {
	return filepath.Join(c.NetworkDataDir(), "keystore")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, ConfigFileName)
}
