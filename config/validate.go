package config

import (
	"fmt"
	"net/url"

	"github.com/Klingon-tech/klingnet-wallet/internal/log"
	"github.com/Klingon-tech/klingnet-wallet/internal/wallet"
	"github.com/Klingon-tech/klingnet-wallet/pkg/types"
)

// Validate checks cfg for operator mistakes and normalizes enum values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	network, err := types.ParseNetwork(string(cfg.Network))
	if err != nil {
		return err
	}
	cfg.Network = network

	if cfg.DataDir == "" {
		return fmt.Errorf("datadir must not be empty")
	}

	kt, err := wallet.ParseKeyType(string(cfg.Wallet.KeyType))
	if err != nil {
		return fmt.Errorf("wallet.keytype: %w", err)
	}
	cfg.Wallet.KeyType = kt

	if err := cfg.Wallet.Argon.Params().Validate(); err != nil {
		return fmt.Errorf("wallet.argon: %w", err)
	}

	if cfg.RPC.URL != "" {
		u, err := url.Parse(cfg.RPC.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("rpc.url must be an http(s) URL, got %q", cfg.RPC.URL)
		}
	}
	if cfg.RPC.Timeout <= 0 {
		return fmt.Errorf("rpc.timeout must be positive")
	}

	switch cfg.Output.Format {
	case "":
		cfg.Output.Format = FormatTable
	case FormatTable, FormatJSON:
	default:
		return fmt.Errorf("output.format must be %q or %q", FormatTable, FormatJSON)
	}

	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level %q is not a valid level", cfg.Log.Level)
	}
	return nil
}
