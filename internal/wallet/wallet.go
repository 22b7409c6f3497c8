package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Klingon-tech/mvx-wallet/pkg/crypto"
	"github.com/Klingon-tech/mvx-wallet/pkg/types"
)

// Wallet loading errors.
var (
	ErrMissingPrivateKey = errors.New("wallet file does not contain a private key")
	ErrAddressMismatch   = errors.New("wallet address does not match private key")
)

// Wallet is the on-disk wallet record. The mnemonic is only present for
// wallets created by Generate or FromMnemonic.
type Wallet struct {
	Mnemonic   string `json:"mnemonic,omitempty"`
	PrivateKey string `json:"private_key"`
	Address    string `json:"address,omitempty"`
}

// Generate creates a new wallet: fresh mnemonic, key at the given address
// index, and its bech32 address.
func Generate(words int, index uint32) (*Wallet, error) {
	mnemonic, err := GenerateMnemonic(words)
	if err != nil {
		return nil, err
	}
	return FromMnemonic(mnemonic, index)
}

// FromMnemonic derives the wallet at m/44'/508'/0'/0'/index'.
func FromMnemonic(mnemonic string, index uint32) (*Wallet, error) {
	mnemonic = NormalizeMnemonic(mnemonic)
	seed, err := SeedFromMnemonic(mnemonic, "")
	if err != nil {
		return nil, err
	}
	defer zero(seed)

	master, err := NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("derive master key: %w", err)
	}
	node, err := master.DeriveAccount(0, index)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	key, err := node.Signer()
	if err != nil {
		return nil, err
	}

	w := FromPrivateKey(key)
	w.Mnemonic = mnemonic
	return w, nil
}

// FromPrivateKey builds a wallet record for an existing key.
func FromPrivateKey(key *crypto.PrivateKey) *Wallet {
	return &Wallet{
		PrivateKey: key.Hex(),
		Address:    key.Address().String(),
	}
}

// FromPrivateKeyHex builds a wallet record from a 64-char hex secret.
func FromPrivateKeyHex(privateKeyHex string) (*Wallet, error) {
	key, err := crypto.PrivateKeyFromHex(privateKeyHex)
	if err != nil {
		return nil, err
	}
	return FromPrivateKey(key), nil
}

// LoadFile reads a wallet JSON file. The address is always re-derived from
// the private key; a stored address that disagrees is an error.
func LoadFile(path string) (*Wallet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wallet: %w", err)
	}
	var stored Wallet
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("parse wallet: %w", err)
	}
	if stored.PrivateKey == "" {
		return nil, ErrMissingPrivateKey
	}

	w, err := FromPrivateKeyHex(stored.PrivateKey)
	if err != nil {
		return nil, err
	}
	if stored.Address != "" && stored.Address != w.Address {
		return nil, fmt.Errorf("%w: file has %s, key derives %s", ErrAddressMismatch, stored.Address, w.Address)
	}
	w.Mnemonic = stored.Mnemonic
	return w, nil
}

// Save writes the wallet as indented JSON, creating parent directories and
// overwriting any existing file.
func (w *Wallet) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create wallet dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(w, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal wallet: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write wallet: %w", err)
	}
	return nil
}

// Signer parses the wallet's private key.
func (w *Wallet) Signer() (*crypto.PrivateKey, error) {
	return crypto.PrivateKeyFromHex(w.PrivateKey)
}

// AccountAddress returns the parsed address of the wallet.
func (w *Wallet) AccountAddress() (types.Address, error) {
	key, err := w.Signer()
	if err != nil {
		return types.Address{}, err
	}
	return key.Address(), nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
