package tx

import (
	"fmt"
	"math/big"

	"github.com/Klingon-tech/mvx-wallet/pkg/crypto"
	"github.com/Klingon-tech/mvx-wallet/pkg/types"
)

// Transaction defaults.
const (
	DefaultChainID = "D"
	DefaultVersion = 1
)

// Builder constructs transactions incrementally.
type Builder struct {
	tx *Transaction
}

// NewBuilder creates a transfer of zero value from sender to receiver with
// the default gas price, gas limit, chain ID and version.
func NewBuilder(sender, receiver types.Address) *Builder {
	return &Builder{
		tx: &Transaction{
			Sender:   sender,
			Receiver: receiver,
			Value:    new(big.Int),
			GasPrice: DefaultGasPrice,
			GasLimit: DefaultMinGasLimit,
			ChainID:  DefaultChainID,
			Version:  DefaultVersion,
		},
	}
}

// SetNonce sets the sender nonce.
func (b *Builder) SetNonce(nonce uint64) *Builder {
	b.tx.Nonce = nonce
	return b
}

// SetValue sets the transferred amount in the smallest denomination.
func (b *Builder) SetValue(value *big.Int) *Builder {
	b.tx.Value = new(big.Int)
	if value != nil {
		b.tx.Value.Set(value)
	}
	return b
}

// SetGasPrice sets the gas price.
func (b *Builder) SetGasPrice(price uint64) *Builder {
	b.tx.GasPrice = price
	return b
}

// SetGasLimit sets the gas limit.
func (b *Builder) SetGasLimit(limit uint64) *Builder {
	b.tx.GasLimit = limit
	return b
}

// SetData sets the data field.
func (b *Builder) SetData(data []byte) *Builder {
	b.tx.Data = append([]byte(nil), data...)
	return b
}

// SetChainID sets the chain ID.
func (b *Builder) SetChainID(chainID string) *Builder {
	b.tx.ChainID = chainID
	return b
}

// SetVersion sets the transaction version.
func (b *Builder) SetVersion(version uint32) *Builder {
	b.tx.Version = version
	return b
}

// SetOptions sets the option bits.
func (b *Builder) SetOptions(options uint32) *Builder {
	b.tx.Options = options
	return b
}

// SetUsernames sets the optional sender and receiver usernames.
func (b *Builder) SetUsernames(sender, receiver string) *Builder {
	b.tx.SenderUsername = sender
	b.tx.ReceiverUsername = receiver
	return b
}

// SetGuardian marks the transaction as guarded by guardian. This raises the
// version to 2 and sets the guarded option.
func (b *Builder) SetGuardian(guardian types.Address) *Builder {
	b.tx.Guardian = guardian
	b.tx.Options |= OptionGuarded
	if b.tx.Version < 2 {
		b.tx.Version = 2
	}
	return b
}

// Sign signs the transaction with the sender key.
func (b *Builder) Sign(key crypto.Signer) error {
	if err := b.tx.Sign(key); err != nil {
		return fmt.Errorf("builder: %w", err)
	}
	return nil
}

// Build returns the constructed transaction.
// Does NOT validate; call tx.Validate() separately.
func (b *Builder) Build() *Transaction {
	return b.tx
}
