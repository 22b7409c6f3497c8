// Package crypto provides the Ed25519 key and signature primitives used by
// MultiversX accounts.
package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/Klingon-tech/mvx-wallet/pkg/types"
)

// SecretKeySize is the length of a raw secret key (the Ed25519 seed).
const SecretKeySize = ed25519.SeedSize

// SignatureSize is the length of an Ed25519 signature.
const SignatureSize = ed25519.SignatureSize

// ErrInvalidSecretKey is returned when secret key material cannot be parsed.
var ErrInvalidSecretKey = errors.New("invalid secret key")

// Signer signs messages with an account key.
type Signer interface {
	// Sign produces an Ed25519 signature over the full message.
	Sign(message []byte) ([]byte, error)
	// PublicKey returns the 32-byte public key.
	PublicKey() []byte
}

// PrivateKey wraps an Ed25519 key derived from a 32-byte secret.
type PrivateKey struct {
	key ed25519.PrivateKey
}

// GenerateKey creates a new random key.
func GenerateKey() (*PrivateKey, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromBytes creates a PrivateKey from a 32-byte secret.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != SecretKeySize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidSecretKey, SecretKeySize, len(b))
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(b)}, nil
}

// PrivateKeyFromHex parses a 64-char hex secret. Surrounding whitespace is
// ignored.
func PrivateKeyFromHex(s string) (*PrivateKey, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecretKey, err)
	}
	return PrivateKeyFromBytes(b)
}

// Sign produces an Ed25519 signature over message. Ed25519 is deterministic:
// the same key and message always yield the same signature.
func (pk *PrivateKey) Sign(message []byte) ([]byte, error) {
	if len(pk.key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("sign: %w", ErrInvalidSecretKey)
	}
	return ed25519.Sign(pk.key, message), nil
}

// PublicKey returns the 32-byte public key.
func (pk *PrivateKey) PublicKey() []byte {
	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, pk.key[SecretKeySize:])
	return pub
}

// Address returns the account address of this key.
func (pk *PrivateKey) Address() types.Address {
	var addr types.Address
	copy(addr[:], pk.key[SecretKeySize:])
	return addr
}

// Serialize returns the 32-byte secret.
func (pk *PrivateKey) Serialize() []byte {
	return pk.key.Seed()
}

// Hex returns the hex-encoded 32-byte secret.
func (pk *PrivateKey) Hex() string {
	return hex.EncodeToString(pk.key.Seed())
}

// Zero wipes the key material.
func (pk *PrivateKey) Zero() {
	for i := range pk.key {
		pk.key[i] = 0
	}
}

// VerifySignature checks an Ed25519 signature against a message and a 32-byte
// public key. Returns false on any malformed input.
func VerifySignature(message, signature, publicKey []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize || len(signature) != SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature)
}
