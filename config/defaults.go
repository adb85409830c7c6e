package config

import "github.com/Klingon-tech/klingnet-wallet/internal/wallet"

// DefaultMainnet returns the default configuration for mainnet.
func DefaultMainnet() *Config {
	params := wallet.DefaultParams()
	return &Config{
		Network: Mainnet,
		DataDir: DefaultDataDir(),
		Wallet: WalletConfig{
			KeyType: wallet.DefaultKeyType,
			Argon: ArgonConfig{
				Memory:      params.Memory,
				Iterations:  params.Iterations,
				Parallelism: params.Parallelism,
			},
		},
		RPC: RPCConfig{
			URL:     "http://127.0.0.1:8545",
			Timeout: 10,
		},
		Output: OutputConfig{
			Format: FormatTable,
		},
		Log: LogConfig{
			Level: "warn",
			JSON:  false,
		},
	}
}

// DefaultTestnet returns the default configuration for testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Testnet
	cfg.RPC.URL = "http://127.0.0.1:8645"
	return cfg
}

// Default returns the default configuration for the given network.
func Default(network NetworkType) *Config {
	switch network {
	case Testnet:
		return DefaultTestnet()
	default:
		return DefaultMainnet()
	}
}
