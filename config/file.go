package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Klingon-tech/klingnet-wallet/internal/wallet"
)

// LoadFile loads configuration values from a .conf file.
// Format: key = value (one per line, # for comments).
// A missing file yields an empty map.
func LoadFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: invalid format (expected key = value)", lineNum)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		values[key] = value
	}

	return values, scanner.Err()
}

// ApplyFileConfig applies file values to cfg.
func ApplyFileConfig(cfg *Config, values map[string]string) error {
	for key, value := range values {
		if err := setConfigValue(cfg, key, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

func setConfigValue(cfg *Config, key, value string) error {
	switch key {
	// Core
	case "network":
		cfg.Network = NetworkType(strings.ToLower(value))
	case "datadir":
		cfg.DataDir = value

	// Wallet
	case "wallet.keytype":
		cfg.Wallet.KeyType = wallet.KeyType(strings.ToLower(value))
	case "wallet.argon.memory":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return err
		}
		cfg.Wallet.Argon.Memory = uint32(n)
	case "wallet.argon.iterations":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return err
		}
		cfg.Wallet.Argon.Iterations = uint32(n)
	case "wallet.argon.parallelism":
		n, err := strconv.ParseUint(value, 10, 8)
		if err != nil {
			return err
		}
		cfg.Wallet.Argon.Parallelism = uint8(n)

	// RPC
	case "rpc.url":
		cfg.RPC.URL = value
	case "rpc.timeout":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.RPC.Timeout = n

	// Output
	case "output.format":
		cfg.Output.Format = strings.ToLower(value)

	// Logging
	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	case "log.json":
		cfg.Log.JSON = parseBool(value)

	default:
		// Unknown keys are ignored
	}
	return nil
}

func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// WriteDefaultConfig writes a commented default configuration file.
func WriteDefaultConfig(path string, network NetworkType) error {
	d := wallet.DefaultParams()
	content := `# Klingnet Wallet Configuration

# Network: mainnet or testnet
network = ` + string(network) + `

# Data directory (default: ~/.klingnet-wallet)
# datadir = ~/.klingnet-wallet

# ============================================================================
# Wallet
# ============================================================================

# Key derived from a restored phrase: ed25519, secp256k1 or bip32
wallet.keytype = ` + string(wallet.DefaultKeyType) + `

# Argon2id parameters for newly stored wallets (memory in KiB)
wallet.argon.memory = ` + strconv.FormatUint(uint64(d.Memory), 10) + `
wallet.argon.iterations = ` + strconv.FormatUint(uint64(d.Iterations), 10) + `
wallet.argon.parallelism = ` + strconv.FormatUint(uint64(d.Parallelism), 10) + `

# ============================================================================
# Node RPC (balance command)
# ============================================================================

# Defaults to the local node for the active network.
# rpc.url = ` + defaultRPCURL(network) + `
# rpc.timeout = 10

# ============================================================================
# Output
# ============================================================================

# table or json
output.format = table

# ============================================================================
# Logging
# ============================================================================

log.level = warn
# log.file =
log.json = false
`
	return os.WriteFile(path, []byte(content), 0600)
}

func defaultRPCURL(network NetworkType) string {
	return Default(network).RPC.URL
}
