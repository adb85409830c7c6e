package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Klingon-tech/klingnet-wallet/internal/wallet"
)

// Version is the wallet release version.
const Version = "0.1.0"

// Flags holds parsed global command-line flags.
type Flags struct {
	// Commands
	Help    bool
	Version bool

	// Core
	Network string
	Testnet bool
	DataDir string
	Config  string

	// Wallet
	KeyType string

	// RPC
	RPCURL string

	// Output
	Format string

	// Logging
	LogLevel string
	LogFile  string
	LogJSON  bool

	// Args holds the subcommand and its arguments.
	Args []string

	// Explicitly-set bool flags (for true/false overrides).
	SetLogJSON bool
}

// ParseFlags parses the global flags in args. Parsing stops at the first
// non-flag argument, which is the subcommand.
func ParseFlags(args []string, stderr io.Writer) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet("klingnet-wallet", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Commands
	fs.BoolVar(&f.Help, "help", false, "Show help message")
	fs.BoolVar(&f.Help, "h", false, "Show help message (shorthand)")
	fs.BoolVar(&f.Version, "version", false, "Show version information")
	fs.BoolVar(&f.Version, "v", false, "Show version (shorthand)")

	// Core
	fs.StringVar(&f.Network, "network", "", "Network type (mainnet or testnet)")
	fs.BoolVar(&f.Testnet, "testnet", false, "Use testnet (shorthand for --network=testnet)")
	fs.StringVar(&f.DataDir, "datadir", "", "Data directory path")
	fs.StringVar(&f.Config, "config", "", "Config file path")
	fs.StringVar(&f.Config, "c", "", "Config file path (shorthand)")

	// Wallet
	fs.StringVar(&f.KeyType, "key-type", "", "Key type: ed25519, secp256k1 or bip32")

	// RPC
	fs.StringVar(&f.RPCURL, "rpc", "", "Node JSON-RPC URL (balance command)")

	// Output
	fs.StringVar(&f.Format, "format", "", "Output format: table or json")

	// Logging
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFile, "log-file", "", "Log file path")
	fs.BoolVar(&f.LogJSON, "log-json", false, "Output logs as JSON")

	fs.Usage = func() { PrintUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if f.Testnet {
		if f.Network != "" && !strings.EqualFold(f.Network, string(Testnet)) {
			return nil, fmt.Errorf("--testnet conflicts with --network=%s", f.Network)
		}
		f.Network = string(Testnet)
	}
	f.SetLogJSON = isFlagSet(fs, "log-json")
	f.Args = fs.Args()
	return f, nil
}

// ApplyFlags applies command-line flags to cfg.
func ApplyFlags(cfg *Config, f *Flags) {
	// Core
	if f.Network != "" {
		cfg.Network = NetworkType(strings.ToLower(f.Network))
	}
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}

	// Wallet
	if f.KeyType != "" {
		cfg.Wallet.KeyType = wallet.KeyType(strings.ToLower(f.KeyType))
	}

	// RPC
	if f.RPCURL != "" {
		cfg.RPC.URL = f.RPCURL
	}

	// Output
	if f.Format != "" {
		cfg.Output.Format = strings.ToLower(f.Format)
	}

	// Logging
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.SetLogJSON {
		cfg.Log.JSON = f.LogJSON
	}
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// PrintUsage writes the top-level help text.
func PrintUsage(w io.Writer) {
	usage := `Klingnet Wallet - restore keys from mobile wallet recovery phrases

Usage:
  klingnet-wallet [global options] <command> [command options]

Commands:
  restore    Restore a wallet from a 12-word phrase and store it encrypted
  inspect    Decode a phrase and show its entropy and address (nothing stored)
  list       List stored wallets
  info       Show a stored wallet's public details
  sign       Sign a message with a stored wallet
  delete     Remove a stored wallet
  balance    Query a node for a wallet's or address's balance

Global Options:
  --help, -h      Show this help message
  --version, -v   Show version information
  --network       Network type: mainnet (default) or testnet
  --testnet       Shorthand for --network=testnet
  --datadir       Data directory (default: ~/.klingnet-wallet)
  --config, -c    Config file path (default: <datadir>/klingnet-wallet.conf)
  --key-type      Key type: ed25519 (default), secp256k1 or bip32
  --rpc           Node RPC URL (mainnet: http://127.0.0.1:8545, testnet: :8645)
  --format        Output format: table (default) or json
  --log-level     Log level: debug, info, warn, error (default: warn)
  --log-file      Also write logs to this file
  --log-json      Output logs as JSON

Examples:
  # Restore a wallet, reading the phrase from the terminal
  klingnet-wallet restore --name main

  # Check a phrase without storing anything
  klingnet-wallet inspect --words "catc poet clog inta scar jack thro palm ille buye allo figu"

  # Derive a BIP-32 account on testnet
  klingnet-wallet --testnet --key-type bip32 restore --name hd --account 1

Run 'klingnet-wallet <command> --help' for command options.
`
	fmt.Fprint(w, usage)
}

// Load resolves configuration from defaults, the config file and flags.
// The data directory and a default config file are created on first use.
func Load(args []string, stderr io.Writer) (*Config, *Flags, error) {
	flags, err := ParseFlags(args, stderr)
	if err != nil {
		return nil, nil, err
	}
	if flags.Help || flags.Version {
		return nil, flags, nil
	}

	network := Mainnet
	if strings.EqualFold(flags.Network, string(Testnet)) {
		network = Testnet
	}

	cfg := Default(network)
	if flags.DataDir != "" {
		cfg.DataDir = flags.DataDir
	}

	if err := EnsureDataDirs(cfg); err != nil {
		return nil, nil, fmt.Errorf("ensuring data dirs: %w", err)
	}

	configPath := flags.Config
	if configPath == "" {
		configPath = cfg.ConfigFile()
	}
	fileValues, err := LoadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config file: %w", err)
	}

	// Network defaults follow the file when no flag picks the network.
	if flags.Network == "" && strings.EqualFold(fileValues["network"], string(Testnet)) {
		dataDir := cfg.DataDir
		cfg = Default(Testnet)
		cfg.DataDir = dataDir
	}
	if err := ApplyFileConfig(cfg, fileValues); err != nil {
		return nil, nil, fmt.Errorf("applying config file: %w", err)
	}

	ApplyFlags(cfg, flags)
	if err := Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, flags, nil
}

// EnsureDataDirs creates the data directory and a default config file if
// they don't already exist. The network directory is created when the
// keystore is opened.
func EnsureDataDirs(cfg *Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return fmt.Errorf("creating directory %s: %w", cfg.DataDir, err)
	}

	configPath := cfg.ConfigFile()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := WriteDefaultConfig(configPath, cfg.Network); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}
	}
	return nil
}
