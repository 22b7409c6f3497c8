// Package signer builds, signs and stores transfer transactions for a
// wallet.
package signer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/Klingon-tech/mvx-wallet/internal/gateway"
	klog "github.com/Klingon-tech/mvx-wallet/internal/log"
	"github.com/Klingon-tech/mvx-wallet/internal/wallet"
	"github.com/Klingon-tech/mvx-wallet/pkg/tx"
	"github.com/Klingon-tech/mvx-wallet/pkg/types"
)

// Request errors.
var (
	ErrNoReceiver  = errors.New("receiver address is required")
	ErrInvalidData = errors.New("transaction data must be valid UTF-8")
)

// TransferRequest describes a transfer. Zero values take defaults: gas price
// 1000000000, gas limit = move-balance cost of Data (50000 without data),
// chain ID "D", version 1.
type TransferRequest struct {
	Receiver string
	Value    *big.Int
	Nonce    uint64
	GasPrice uint64
	GasLimit uint64
	ChainID  string
	Version  uint32
	Options  uint32
	Data     []byte
	Guardian string

	SenderUsername   string
	ReceiverUsername string

	// Gas is the fee schedule; nil means tx.DefaultGasConfig().
	Gas *tx.GasConfig
}

// Signed is a signed transaction plus derived facts.
type Signed struct {
	Tx   *tx.Transaction
	Hash types.Hash
	Fee  *big.Int
}

// SignTransfer builds the transfer from the wallet's address, validates it
// and signs it with the wallet key.
func SignTransfer(w *wallet.Wallet, req TransferRequest) (*Signed, error) {
	key, err := w.Signer()
	if err != nil {
		return nil, fmt.Errorf("wallet key: %w", err)
	}
	defer key.Zero()

	if req.Receiver == "" {
		return nil, ErrNoReceiver
	}
	// The signed file stores data as a JSON string.
	if !utf8.Valid(req.Data) {
		return nil, ErrInvalidData
	}
	receiver, err := types.ParseAddress(req.Receiver)
	if err != nil {
		return nil, fmt.Errorf("receiver: %w", err)
	}

	gas := tx.DefaultGasConfig()
	if req.Gas != nil {
		gas = *req.Gas
	}

	b := tx.NewBuilder(key.Address(), receiver).
		SetNonce(req.Nonce).
		SetData(req.Data).
		SetOptions(req.Options).
		SetUsernames(req.SenderUsername, req.ReceiverUsername).
		SetGasLimit(gas.MoveBalanceGas(len(req.Data)))
	if req.Value != nil {
		b.SetValue(req.Value)
	}
	if req.GasPrice != 0 {
		b.SetGasPrice(req.GasPrice)
	}
	if req.GasLimit != 0 {
		b.SetGasLimit(req.GasLimit)
	}
	if req.ChainID != "" {
		b.SetChainID(req.ChainID)
	}
	if req.Version != 0 {
		b.SetVersion(req.Version)
	}
	if req.Guardian != "" {
		guardian, err := types.ParseAddress(req.Guardian)
		if err != nil {
			return nil, fmt.Errorf("guardian: %w", err)
		}
		b.SetGuardian(guardian)
	}

	transaction := b.Build()
	if err := transaction.ValidateGas(gas); err != nil {
		return nil, err
	}
	if err := b.Sign(key); err != nil {
		return nil, err
	}
	fee, err := gas.ComputeFee(transaction)
	if err != nil {
		return nil, err
	}

	signed := &Signed{Tx: transaction, Hash: transaction.Hash(), Fee: fee}
	klog.Tx.Debug().
		Str("sender", transaction.Sender.String()).
		Str("receiver", transaction.Receiver.String()).
		Str("value", transaction.Value.String()).
		Uint64("nonce", transaction.Nonce).
		Str("hash", signed.Hash.String()).
		Msg("transaction signed")
	return signed, nil
}

// NetworkSource is the read-only gateway surface used to fill a request.
type NetworkSource interface {
	GetNonce(ctx context.Context, addr types.Address) (uint64, error)
	GetNetworkConfig(ctx context.Context) (*gateway.NetworkConfig, error)
}

// ApplyNetwork fills the nonce, chain ID, minimum gas price and fee schedule
// of req from the network. A gas price already above the network minimum is
// kept.
func ApplyNetwork(ctx context.Context, src NetworkSource, sender types.Address, req *TransferRequest) error {
	nc, err := src.GetNetworkConfig(ctx)
	if err != nil {
		return err
	}
	nonce, err := src.GetNonce(ctx, sender)
	if err != nil {
		return err
	}
	gas, err := nc.GasConfig()
	if err != nil {
		return err
	}

	req.Nonce = nonce
	req.Gas = &gas
	if nc.ChainID != "" {
		req.ChainID = nc.ChainID
	}
	if req.GasPrice < nc.MinGasPrice {
		req.GasPrice = nc.MinGasPrice
	}
	klog.Gateway.Info().
		Uint64("nonce", nonce).
		Str("chain_id", req.ChainID).
		Msg("network parameters applied")
	return nil
}

// WriteSigned writes a signed transaction as indented JSON, creating the
// directory if needed. The file is replaced atomically, so a failure leaves
// no partial file behind.
func WriteSigned(path string, transaction *tx.Transaction) error {
	if !transaction.IsSigned() {
		return tx.ErrMissingSignature
	}
	data, err := json.MarshalIndent(transaction, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal transaction: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create transaction dir: %w", err)
	}
	f, err := os.CreateTemp(dir, ".signed-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write transaction: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write transaction: %w", err)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		return fmt.Errorf("chmod transaction: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename transaction: %w", err)
	}
	return nil
}

// ReadSigned reads a signed-transaction file.
func ReadSigned(path string) (*tx.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transaction: %w", err)
	}
	var transaction tx.Transaction
	if err := json.Unmarshal(data, &transaction); err != nil {
		return nil, fmt.Errorf("parse transaction: %w", err)
	}
	return &transaction, nil
}
