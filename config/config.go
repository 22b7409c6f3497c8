// Package config handles application configuration.
//
// Settings come from, in increasing priority: per-network defaults, an
// optional mvx-wallet.yaml file, MVXW_* environment variables and command
// line flags bound by the CLI.
package config

import (
	"path/filepath"
	"time"
)

// NetworkType identifies a MultiversX network.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Devnet  NetworkType = "devnet"
	Testnet NetworkType = "testnet"
)

// File names written by the CLI.
const (
	WalletFileName   = "wallet.json"
	SignedTxFileName = "signed_transaction.json"
)

// Config holds CLI runtime configuration.
type Config struct {
	// Core
	Network NetworkType `mapstructure:"network"`
	HRP     string      `mapstructure:"hrp"`

	// Transaction defaults
	ChainID   string `mapstructure:"chain_id"`
	GasPrice  uint64 `mapstructure:"gas_price"`
	GasLimit  uint64 `mapstructure:"gas_limit"`
	TxVersion uint32 `mapstructure:"tx_version"`

	// Output locations
	WalletDir string `mapstructure:"wallet_dir"`
	TxDir     string `mapstructure:"tx_dir"`

	// Gateway (read-only queries)
	Proxy   string        `mapstructure:"proxy"`
	Timeout time.Duration `mapstructure:"timeout"`

	// Logging
	Log LogConfig `mapstructure:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
	JSON  bool   `mapstructure:"json"`
}

// WalletFile returns the default wallet file path.
func (c *Config) WalletFile() string {
	return filepath.Join(c.WalletDir, WalletFileName)
}

// SignedTxFile returns the default signed-transaction file path.
func (c *Config) SignedTxFile() string {
	return filepath.Join(c.TxDir, SignedTxFileName)
}
