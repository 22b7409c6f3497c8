package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config file and environment naming.
const (
	FileName  = "mvx-wallet"
	EnvPrefix = "MVXW"
)

// NewViper returns a viper instance reading MVXW_* environment variables.
// Dots and dashes in keys map to underscores (log.level -> MVXW_LOG_LEVEL).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load resolves the configuration. If path is empty, mvx-wallet.yaml is
// looked up in the working directory and may be absent; an explicit path
// must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	network := NetworkType(strings.ToLower(v.GetString("network")))
	if network == "" {
		network = Devnet
	}
	defaults := Default(network)
	if defaults == nil {
		return nil, fmt.Errorf("unknown network %q", network)
	}
	setDefaults(v, defaults)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Network = network
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("network", string(d.Network))
	v.SetDefault("hrp", d.HRP)
	v.SetDefault("chain_id", d.ChainID)
	v.SetDefault("gas_price", d.GasPrice)
	v.SetDefault("gas_limit", d.GasLimit)
	v.SetDefault("tx_version", d.TxVersion)
	v.SetDefault("wallet_dir", d.WalletDir)
	v.SetDefault("tx_dir", d.TxDir)
	v.SetDefault("proxy", d.Proxy)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.json", d.Log.JSON)
}
