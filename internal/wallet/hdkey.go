package wallet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/anyproto/go-slip10"

	"github.com/Klingon-tech/mvx-wallet/pkg/crypto"
	"github.com/Klingon-tech/mvx-wallet/pkg/types"
)

// HardenedOffset marks a hardened child index.
const HardenedOffset = slip10.FirstHardenedIndex

// SLIP-0010 derivation path constants.
// Full path: m/44'/508'/account'/0'/index' (every level hardened).
const (
	PurposeBIP44       = HardenedOffset + 44
	CoinTypeMultiversX = HardenedOffset + 508
	ChangeExternal     = HardenedOffset + 0
)

// HDKey is a SLIP-0010 Ed25519 extended private key. Ed25519 only supports
// hardened derivation, so there is no public-only variant.
type HDKey struct {
	node slip10.Node
}

// NewMasterKey creates a master key from a seed of 16 to 64 bytes.
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) < 16 || len(seed) > SeedSize {
		return nil, fmt.Errorf("seed must be 16-%d bytes, got %d", SeedSize, len(seed))
	}
	node, err := slip10.NewMasterNode(seed)
	if err != nil {
		return nil, err
	}
	return &HDKey{node: node}, nil
}

// DeriveChild derives the hardened child at index. Indices below
// HardenedOffset are rejected.
func (k *HDKey) DeriveChild(index uint32) (*HDKey, error) {
	if index < HardenedOffset {
		return nil, fmt.Errorf("derive child %d: ed25519 supports hardened derivation only", index)
	}
	child, err := k.node.Derive(index)
	if err != nil {
		return nil, fmt.Errorf("derive child %d: %w", index, err)
	}
	return &HDKey{node: child}, nil
}

// DerivePath derives a key along a sequence of indices.
func (k *HDKey) DerivePath(indices ...uint32) (*HDKey, error) {
	current := k
	for _, idx := range indices {
		child, err := current.DeriveChild(idx)
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// DeriveAccount derives the key at m/44'/508'/account'/0'/index'.
func (k *HDKey) DeriveAccount(account, index uint32) (*HDKey, error) {
	return k.DerivePath(AccountPath(account, index)...)
}

// AccountPath returns the MultiversX derivation indices for an account and
// address index.
func AccountPath(account, index uint32) []uint32 {
	return []uint32{
		PurposeBIP44,
		CoinTypeMultiversX,
		HardenedOffset + account,
		ChangeExternal,
		HardenedOffset + index,
	}
}

// FormatPath renders derivation indices as "m/44'/508'/...".
func FormatPath(indices []uint32) string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, idx := range indices {
		sb.WriteString("/")
		if idx >= HardenedOffset {
			sb.WriteString(strconv.FormatUint(uint64(idx-HardenedOffset), 10))
			sb.WriteString("'")
		} else {
			sb.WriteString(strconv.FormatUint(uint64(idx), 10))
		}
	}
	return sb.String()
}

// PrivateKeyBytes returns a copy of the raw 32-byte secret.
func (k *HDKey) PrivateKeyBytes() []byte {
	_, priv := k.node.Keypair()
	return priv.Seed()
}

// Signer returns the Ed25519 signing key for this node.
func (k *HDKey) Signer() (*crypto.PrivateKey, error) {
	return crypto.PrivateKeyFromBytes(k.PrivateKeyBytes())
}

// Address derives the account address of this node.
func (k *HDKey) Address() (types.Address, error) {
	sk, err := k.Signer()
	if err != nil {
		return types.Address{}, err
	}
	return sk.Address(), nil
}
