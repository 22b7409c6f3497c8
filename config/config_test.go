package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName+".yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func TestDefault_Networks(t *testing.T) {
	tests := []struct {
		network NetworkType
		chainID string
	}{
		{Mainnet, "1"},
		{Devnet, "D"},
		{Testnet, "T"},
	}
	for _, tt := range tests {
		t.Run(string(tt.network), func(t *testing.T) {
			cfg := Default(tt.network)
			if cfg == nil {
				t.Fatal("Default() returned nil")
			}
			if cfg.ChainID != tt.chainID {
				t.Errorf("ChainID = %s, want %s", cfg.ChainID, tt.chainID)
			}
			if cfg.HRP != "erd" {
				t.Errorf("HRP = %s, want erd", cfg.HRP)
			}
			if err := Validate(cfg); err != nil {
				t.Errorf("default config should validate: %v", err)
			}
			if !strings.HasPrefix(GatewayURL(tt.network), "https://") {
				t.Errorf("GatewayURL() = %q", GatewayURL(tt.network))
			}
		})
	}

	if Default("localnet") != nil {
		t.Error("unknown network should have no defaults")
	}
}

func TestConfig_Paths(t *testing.T) {
	cfg := DefaultDevnet()
	if got := cfg.WalletFile(); got != filepath.Join("wallet_data", "wallet.json") {
		t.Errorf("WalletFile() = %s", got)
	}
	if got := cfg.SignedTxFile(); got != filepath.Join("transactions", "signed_transaction.json") {
		t.Errorf("SignedTxFile() = %s", got)
	}
}

func TestLoad_NoFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(NewViper(), "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Network != Devnet || cfg.ChainID != "D" {
		t.Errorf("network/chain = %s/%s, want devnet/D", cfg.Network, cfg.ChainID)
	}
	if cfg.GasLimit != 50000 || cfg.GasPrice != 1000000000 || cfg.TxVersion != 1 {
		t.Errorf("gas defaults = %d/%d/%d", cfg.GasLimit, cfg.GasPrice, cfg.TxVersion)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
network: mainnet
gas_limit: 70000
wallet_dir: keys
proxy: http://localhost:7950
timeout: 3s
log:
  level: debug
  json: true
`)

	cfg, err := Load(NewViper(), path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Network != Mainnet || cfg.ChainID != "1" {
		t.Errorf("network/chain = %s/%s, want mainnet/1", cfg.Network, cfg.ChainID)
	}
	if cfg.GasLimit != 70000 {
		t.Errorf("GasLimit = %d, want 70000", cfg.GasLimit)
	}
	if cfg.WalletDir != "keys" || cfg.TxDir != "transactions" {
		t.Errorf("dirs = %s/%s", cfg.WalletDir, cfg.TxDir)
	}
	if cfg.Proxy != "http://localhost:7950" || cfg.Timeout != 3*time.Second {
		t.Errorf("proxy/timeout = %s/%s", cfg.Proxy, cfg.Timeout)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.JSON {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoad_FileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "network: testnet\n")
	chdir(t, dir)

	cfg, err := Load(NewViper(), "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ChainID != "T" {
		t.Errorf("ChainID = %s, want T", cfg.ChainID)
	}
}

func TestLoad_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MVXW_NETWORK", "testnet")
	t.Setenv("MVXW_GAS_PRICE", "2000000000")
	t.Setenv("MVXW_LOG_LEVEL", "warn")

	cfg, err := Load(NewViper(), "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Network != Testnet || cfg.ChainID != "T" {
		t.Errorf("network/chain = %s/%s", cfg.Network, cfg.ChainID)
	}
	if cfg.GasPrice != 2000000000 {
		t.Errorf("GasPrice = %d", cfg.GasPrice)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %s", cfg.Log.Level)
	}
}

func TestLoad_ChainIDOverride(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "network: devnet\nchain_id: local-testnet\n")

	cfg, err := Load(NewViper(), path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ChainID != "local-testnet" {
		t.Errorf("ChainID = %s", cfg.ChainID)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(NewViper(), filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("explicit missing config file should fail")
	}

	bad := writeConfig(t, dir, "network: moonnet\n")
	if _, err := Load(NewViper(), bad); err == nil {
		t.Error("unknown network should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("gas_limit: 0\n"), 0600)
	if _, err := Load(NewViper(), invalid); err == nil {
		t.Error("zero gas limit should fail validation")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown network", func(c *Config) { c.Network = "x" }},
		{"empty hrp", func(c *Config) { c.HRP = "" }},
		{"upper-case hrp", func(c *Config) { c.HRP = "ERD" }},
		{"empty chain id", func(c *Config) { c.ChainID = "" }},
		{"zero gas price", func(c *Config) { c.GasPrice = 0 }},
		{"zero gas limit", func(c *Config) { c.GasLimit = 0 }},
		{"zero version", func(c *Config) { c.TxVersion = 0 }},
		{"empty wallet dir", func(c *Config) { c.WalletDir = "" }},
		{"empty tx dir", func(c *Config) { c.TxDir = "" }},
		{"proxy without scheme", func(c *Config) { c.Proxy = "localhost:7950" }},
		{"ftp proxy", func(c *Config) { c.Proxy = "ftp://example.com" }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultDevnet()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}

	if err := Validate(nil); err == nil {
		t.Error("nil config should fail")
	}
}
