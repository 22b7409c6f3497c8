package config

import "time"

// Shared defaults.
const (
	DefaultHRP       = "erd"
	DefaultGasPrice  = 1_000_000_000
	DefaultGasLimit  = 50_000
	DefaultTxVersion = 1
	DefaultWalletDir = "wallet_data"
	DefaultTxDir     = "transactions"
	DefaultTimeout   = 10 * time.Second
)

// Public gateways, used when a query is requested without an explicit proxy.
var gateways = map[NetworkType]string{
	Mainnet: "https://gateway.multiversx.com",
	Devnet:  "https://devnet-gateway.multiversx.com",
	Testnet: "https://testnet-gateway.multiversx.com",
}

// DefaultMainnet returns the default configuration for mainnet.
func DefaultMainnet() *Config {
	return base(Mainnet, "1")
}

// DefaultDevnet returns the default configuration for devnet.
func DefaultDevnet() *Config {
	return base(Devnet, "D")
}

// DefaultTestnet returns the default configuration for testnet.
func DefaultTestnet() *Config {
	return base(Testnet, "T")
}

// Default returns the default config for the given network, or nil if the
// network is unknown.
func Default(network NetworkType) *Config {
	switch network {
	case Mainnet:
		return DefaultMainnet()
	case Devnet:
		return DefaultDevnet()
	case Testnet:
		return DefaultTestnet()
	default:
		return nil
	}
}

// GatewayURL returns the public gateway of a network ("" if unknown).
func GatewayURL(network NetworkType) string {
	return gateways[network]
}

func base(network NetworkType, chainID string) *Config {
	return &Config{
		Network:   network,
		HRP:       DefaultHRP,
		ChainID:   chainID,
		GasPrice:  DefaultGasPrice,
		GasLimit:  DefaultGasLimit,
		TxVersion: DefaultTxVersion,
		WalletDir: DefaultWalletDir,
		TxDir:     DefaultTxDir,
		Timeout:   DefaultTimeout,
		Log: LogConfig{
			Level: "warn",
		},
	}
}
