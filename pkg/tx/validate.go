package tx

import (
	"errors"
	"fmt"

	"github.com/Klingon-tech/mvx-wallet/pkg/crypto"
)

// Validation errors.
var (
	ErrMissingSender    = errors.New("transaction has no sender")
	ErrMissingReceiver  = errors.New("transaction has no receiver")
	ErrMissingChainID   = errors.New("transaction has no chain ID")
	ErrInvalidVersion   = errors.New("invalid transaction version")
	ErrOptionsNeedV2    = errors.New("transaction options require version 2")
	ErrNegativeValue    = errors.New("transaction value is negative")
	ErrNotEnoughGas     = errors.New("gas limit below move-balance cost")
	ErrZeroGasPrice     = errors.New("gas price is zero")
	ErrGuardianNoOption = errors.New("guardian set without the guarded option")
	ErrMissingSignature = errors.New("transaction is not signed")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrSignatureSize    = errors.New("signature has wrong length")
)

// Validate checks transaction structure against the default gas schedule.
func (tx *Transaction) Validate() error {
	return tx.ValidateGas(DefaultGasConfig())
}

// ValidateGas checks transaction structure and that the gas limit covers the
// move-balance cost under cfg.
func (tx *Transaction) ValidateGas(cfg GasConfig) error {
	if tx.Sender.IsZero() {
		return ErrMissingSender
	}
	if tx.Receiver.IsZero() {
		return ErrMissingReceiver
	}
	if tx.ChainID == "" {
		return ErrMissingChainID
	}
	if tx.Version < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidVersion, tx.Version)
	}
	if tx.Options != 0 && tx.Version < 2 {
		return fmt.Errorf("%w: options %d, version %d", ErrOptionsNeedV2, tx.Options, tx.Version)
	}
	if tx.IsGuarded() && tx.Options&OptionGuarded == 0 {
		return ErrGuardianNoOption
	}
	if tx.Value != nil && tx.Value.Sign() < 0 {
		return ErrNegativeValue
	}
	if tx.GasPrice == 0 {
		return ErrZeroGasPrice
	}
	if need := cfg.MoveBalanceGas(len(tx.Data)); tx.GasLimit < need {
		return fmt.Errorf("%w: gas limit %d, need %d", ErrNotEnoughGas, tx.GasLimit, need)
	}
	return nil
}

// VerifySignature checks the sender signature over the signing bytes.
func (tx *Transaction) VerifySignature() error {
	if len(tx.Signature) == 0 {
		return ErrMissingSignature
	}
	if len(tx.Signature) != crypto.SignatureSize {
		return fmt.Errorf("%w: %d bytes", ErrSignatureSize, len(tx.Signature))
	}
	if !crypto.VerifySignature(tx.BytesForSigning(), tx.Signature, tx.Sender[:]) {
		return ErrInvalidSignature
	}
	return nil
}
