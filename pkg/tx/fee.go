package tx

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Default gas schedule of the MultiversX networks.
const (
	DefaultMinGasLimit    uint64 = 50_000
	DefaultGasPerDataByte uint64 = 1_500
	DefaultGasPrice       uint64 = 1_000_000_000
)

// GasConfig is the part of the network configuration used to cost a
// transaction.
type GasConfig struct {
	MinGasLimit      uint64
	GasPerDataByte   uint64
	GasPriceModifier decimal.Decimal
}

// DefaultGasConfig returns the gas schedule used when no gateway is queried.
func DefaultGasConfig() GasConfig {
	return GasConfig{
		MinGasLimit:      DefaultMinGasLimit,
		GasPerDataByte:   DefaultGasPerDataByte,
		GasPriceModifier: decimal.RequireFromString("0.01"),
	}
}

// MoveBalanceGas returns the gas consumed by a plain transfer carrying
// dataLen bytes of data.
func (c GasConfig) MoveBalanceGas(dataLen int) uint64 {
	return c.MinGasLimit + uint64(dataLen)*c.GasPerDataByte
}

// ComputeFee returns the fee charged for a transaction. Gas above the
// move-balance cost is priced at gasPrice * GasPriceModifier; the result is
// truncated to an integer.
func (c GasConfig) ComputeFee(transaction *Transaction) (*big.Int, error) {
	moveBalance := c.MoveBalanceGas(len(transaction.Data))
	if transaction.GasLimit < moveBalance {
		return nil, fmt.Errorf("%w: gas limit %d, need %d", ErrNotEnoughGas, transaction.GasLimit, moveBalance)
	}

	price := new(big.Int).SetUint64(transaction.GasPrice)
	base := new(big.Int).Mul(new(big.Int).SetUint64(moveBalance), price)
	extra := new(big.Int).Mul(new(big.Int).SetUint64(transaction.GasLimit-moveBalance), price)

	fee := decimal.NewFromBigInt(base, 0).
		Add(decimal.NewFromBigInt(extra, 0).Mul(c.GasPriceModifier)).
		Truncate(0)
	return fee.BigInt(), nil
}

// ComputeFee prices a transaction with the default gas schedule.
func ComputeFee(transaction *Transaction) (*big.Int, error) {
	return DefaultGasConfig().ComputeFee(transaction)
}
