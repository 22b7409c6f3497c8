package config

import (
	"fmt"
	"net/url"
	"strings"
)

var logLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true,
	"error": true, "fatal": true, "panic": true, "disabled": true,
}

// Validate checks runtime config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if Default(cfg.Network) == nil {
		return fmt.Errorf("network must be %q, %q or %q", Mainnet, Devnet, Testnet)
	}
	if cfg.HRP == "" || strings.ToLower(cfg.HRP) != cfg.HRP {
		return fmt.Errorf("hrp must be a non-empty lower-case string")
	}
	if cfg.ChainID == "" {
		return fmt.Errorf("chain_id must not be empty")
	}
	if cfg.GasPrice == 0 {
		return fmt.Errorf("gas_price must be positive")
	}
	if cfg.GasLimit == 0 {
		return fmt.Errorf("gas_limit must be positive")
	}
	if cfg.TxVersion == 0 {
		return fmt.Errorf("tx_version must be at least 1")
	}
	if cfg.WalletDir == "" {
		return fmt.Errorf("wallet_dir must not be empty")
	}
	if cfg.TxDir == "" {
		return fmt.Errorf("tx_dir must not be empty")
	}
	if cfg.Proxy != "" {
		u, err := url.Parse(cfg.Proxy)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("proxy must be an http(s) URL, got %q", cfg.Proxy)
		}
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if level := strings.ToLower(cfg.Log.Level); level != "" && !logLevels[level] {
		return fmt.Errorf("log.level %q is not a known level", cfg.Log.Level)
	}
	return nil
}
