package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Klingon-tech/klingnet-wallet/internal/wallet"
)

func TestDefault(t *testing.T) {
	mainCfg := Default(Mainnet)
	if mainCfg.Network != Mainnet {
		t.Errorf("Network = %s, want mainnet", mainCfg.Network)
	}
	if mainCfg.Wallet.KeyType != wallet.KeyEd25519 {
		t.Errorf("KeyType = %s, want ed25519", mainCfg.Wallet.KeyType)
	}
	if mainCfg.Wallet.Argon.Params() != wallet.DefaultParams() {
		t.Errorf("Argon = %+v, want defaults", mainCfg.Wallet.Argon)
	}
	if err := Validate(mainCfg); err != nil {
		t.Errorf("Validate(default mainnet) error: %v", err)
	}

	test := Default(Testnet)
	if test.Network != Testnet {
		t.Errorf("Network = %s, want testnet", test.Network)
	}
	if test.RPC.URL != "http://127.0.0.1:8645" {
		t.Errorf("testnet RPC.URL = %s", test.RPC.URL)
	}
	if err := Validate(test); err != nil {
		t.Errorf("Validate(default testnet) error: %v", err)
	}
}

func TestConfig_Paths(t *testing.T) {
	cfg := Default(Testnet)
	cfg.DataDir = "/data"
	if got := cfg.KeystoreDir(); got != filepath.Join("/data", "testnet", "keystore") {
		t.Errorf("KeystoreDir() = %s", got)
	}
	if got := cfg.ConfigFile(); got != filepath.Join("/data", ConfigFileName) {
		t.Errorf("ConfigFile() = %s", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.conf")
	content := `# comment
network = testnet
wallet.keytype = "BIP32"
wallet.argon.memory = 1024
output.format = 'json'

log.json = yes
unknown.key = ignored
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	values, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if values["wallet.keytype"] != "BIP32" || values["output.format"] != "json" {
		t.Errorf("quotes not stripped: %v", values)
	}

	cfg := Default(Mainnet)
	if err := ApplyFileConfig(cfg, values); err != nil {
		t.Fatalf("ApplyFileConfig() error: %v", err)
	}
	if cfg.Network != Testnet {
		t.Errorf("Network = %s, want testnet", cfg.Network)
	}
	if cfg.Wallet.KeyType != wallet.KeyBIP32 {
		t.Errorf("KeyType = %s, want bip32", cfg.Wallet.KeyType)
	}
	if cfg.Wallet.Argon.Memory != 1024 {
		t.Errorf("Argon.Memory = %d, want 1024", cfg.Wallet.Argon.Memory)
	}
	if cfg.Output.Format != FormatJSON || !cfg.Log.JSON {
		t.Errorf("output/log not applied: %+v %+v", cfg.Output, cfg.Log)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	values, err := LoadFile(filepath.Join(t.TempDir(), "nope.conf"))
	if err != nil {
		t.Fatalf("LoadFile(missing) error: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("LoadFile(missing) = %v, want empty", values)
	}
}

func TestLoadFile_BadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.conf")
	if err := os.WriteFile(path, []byte("network testnet\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() should reject a line without '='")
	}
}

func TestApplyFileConfig_BadNumber(t *testing.T) {
	cfg := Default(Mainnet)
	for _, kv := range []map[string]string{
		{"wallet.argon.memory": "lots"},
		{"wallet.argon.parallelism": "300"},
	} {
		if err := ApplyFileConfig(cfg, kv); err == nil {
			t.Errorf("ApplyFileConfig(%v) should fail", kv)
		}
	}
}

func TestWriteDefaultConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := WriteDefaultConfig(path, Testnet); err != nil {
		t.Fatalf("WriteDefaultConfig() error: %v", err)
	}
	values, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg := Default(Mainnet)
	if err := ApplyFileConfig(cfg, values); err != nil {
		t.Fatal(err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	want := Default(Testnet)
	if cfg.Network != want.Network || cfg.Wallet != want.Wallet || cfg.Output != want.Output || cfg.Log != want.Log {
		t.Errorf("default file config = %+v, want %+v", cfg, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(*Config) {}, false},
		{"network case", func(c *Config) { c.Network = "TestNet" }, false},
		{"bad network", func(c *Config) { c.Network = "devnet" }, true},
		{"empty datadir", func(c *Config) { c.DataDir = "" }, true},
		{"empty key type", func(c *Config) { c.Wallet.KeyType = "" }, false},
		{"bad key type", func(c *Config) { c.Wallet.KeyType = "rsa" }, true},
		{"zero iterations", func(c *Config) { c.Wallet.Argon.Iterations = 0 }, true},
		{"empty format", func(c *Config) { c.Output.Format = "" }, false},
		{"bad format", func(c *Config) { c.Output.Format = "yaml" }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"rpc https", func(c *Config) { c.RPC.URL = "https://node.example.com/rpc" }, false},
		{"rpc empty", func(c *Config) { c.RPC.URL = "" }, false},
		{"rpc no scheme", func(c *Config) { c.RPC.URL = "127.0.0.1:8545" }, true},
		{"rpc zero timeout", func(c *Config) { c.RPC.Timeout = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(Mainnet)
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if err := Validate(nil); err == nil {
		t.Error("Validate(nil) should fail")
	}
}

func TestValidate_Normalizes(t *testing.T) {
	cfg := Default(Mainnet)
	cfg.Network = "TESTNET"
	cfg.Wallet.KeyType = ""
	cfg.Output.Format = ""
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Network != Testnet || cfg.Wallet.KeyType != wallet.KeyEd25519 || cfg.Output.Format != FormatTable {
		t.Errorf("not normalized: %+v", cfg)
	}
}

func TestParseFlags(t *testing.T) {
	f, err := ParseFlags([]string{"--testnet", "--key-type", "bip32", "--log-json", "restore", "--name", "x"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseFlags() error: %v", err)
	}
	if f.Network != "testnet" {
		t.Errorf("Network = %q, want testnet", f.Network)
	}
	if f.KeyType != "bip32" || !f.LogJSON || !f.SetLogJSON {
		t.Errorf("flags = %+v", f)
	}
	if len(f.Args) != 3 || f.Args[0] != "restore" || f.Args[1] != "--name" {
		t.Errorf("Args = %v, want subcommand args untouched", f.Args)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	if _, err := ParseFlags([]string{"--bogus"}, io.Discard); err == nil {
		t.Error("unknown flag should fail")
	}
	if _, err := ParseFlags([]string{"--testnet", "--network", "mainnet"}, io.Discard); err == nil {
		t.Error("--testnet with --network=mainnet should fail")
	}
	if _, err := ParseFlags([]string{"-h"}, io.Discard); err != nil {
		t.Errorf("-h error = %v", err)
	}
	if _, err := ParseFlags([]string{"--help=maybe"}, io.Discard); err == nil || errors.Is(err, flag.ErrHelp) {
		t.Errorf("bad bool value error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(conf, []byte("output.format = json\nwallet.keytype = secp256k1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, flags, err := Load([]string{"--datadir", dir, "--key-type", "bip32", "--rpc", "http://10.0.0.1:9000", "list"}, io.Discard)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("Format = %s, want json from file", cfg.Output.Format)
	}
	if cfg.Wallet.KeyType != wallet.KeyBIP32 {
		t.Errorf("KeyType = %s, flag should override file", cfg.Wallet.KeyType)
	}
	if cfg.RPC.URL != "http://10.0.0.1:9000" {
		t.Errorf("RPC.URL = %s, want flag value", cfg.RPC.URL)
	}
	if len(flags.Args) != 1 || flags.Args[0] != "list" {
		t.Errorf("Args = %v", flags.Args)
	}
}

func TestLoad_FileNetworkDefaults(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(conf, []byte("network = testnet\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := Load([]string{"--datadir", dir, "list"}, io.Discard)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Network != Testnet {
		t.Errorf("Network = %s, want testnet from file", cfg.Network)
	}
	if want := Default(Testnet).RPC.URL; cfg.RPC.URL != want {
		t.Errorf("RPC.URL = %s, want testnet default %s", cfg.RPC.URL, want)
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir = %s, want %s", cfg.DataDir, dir)
	}

	cfg, _, err = Load([]string{"--datadir", dir, "--network", "mainnet", "list"}, io.Discard)
	if err != nil {
		t.Fatalf("Load(--network mainnet) error: %v", err)
	}
	if cfg.Network != Mainnet {
		t.Errorf("Network = %s, flag should override file", cfg.Network)
	}
}

func TestLoad_CreatesDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fresh")
	cfg, _, err := Load([]string{"--datadir", dir, "--testnet"}, io.Discard)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Network != Testnet {
		t.Errorf("Network = %s, want testnet", cfg.Network)
	}
	if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err != nil {
		t.Errorf("default config not written: %v", err)
	}
}

func TestLoad_HelpSkipsConfig(t *testing.T) {
	cfg, flags, err := Load([]string{"--version"}, io.Discard)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != nil || !flags.Version {
		t.Errorf("Load(--version) = %v, %+v", cfg, flags)
	}
}
