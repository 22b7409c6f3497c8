package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/scrypt"

	"github.com/Klingon-tech/mvx-wallet/pkg/crypto"
)

// Keystore constants.
const (
	KeystoreVersion = 4
	KindSecretKey   = "secretKey"
	KindMnemonic    = "mnemonic"

	keystoreCipher = "aes-128-ctr"
	keystoreKDF    = "scrypt"
	saltSize       = 32
	ivSize         = aes.BlockSize
)

// ErrWrongPassword is returned when the keystore MAC does not match.
var ErrWrongPassword = errors.New("wrong password or corrupted keystore")

// ScryptParams holds scrypt cost parameters.
type ScryptParams struct {
	N     int
	R     int
	P     int
	DKLen int
}

// DefaultScryptParams returns the parameters written by MultiversX wallets.
func DefaultScryptParams() ScryptParams {
	return ScryptParams{N: 4096, R: 8, P: 1, DKLen: 32}
}

// KeyFile is the JSON keystore format (version 4).
type KeyFile struct {
	Version int           `json:"version"`
	Kind    string        `json:"kind"`
	ID      string        `json:"id"`
	Address string        `json:"address,omitempty"` // hex public key, secretKey kind only
	Bech32  string        `json:"bech32,omitempty"`
	Crypto  cryptoSection `json:"crypto"`
}

type cryptoSection struct {
	Ciphertext   string       `json:"ciphertext"`
	CipherParams cipherParams `json:"cipherparams"`
	Cipher       string       `json:"cipher"`
	KDF          string       `json:"kdf"`
	KDFParams    kdfParams    `json:"kdfparams"`
	MAC          string       `json:"mac"`
}

type cipherParams struct {
	IV string `json:"iv"`
}

type kdfParams struct {
	DKLen int    `json:"dklen"`
	Salt  string `json:"salt"`
	N     int    `json:"n"`
	R     int    `json:"r"`
	P     int    `json:"p"`
}

// EncryptKey seals a secret key. The plaintext is secret || public.
func EncryptKey(key *crypto.PrivateKey, password []byte, params ScryptParams) (*KeyFile, error) {
	plain := append(key.Serialize(), key.PublicKey()...)
	defer zero(plain)

	kf, err := seal(plain, password, params)
	if err != nil {
		return nil, err
	}
	kf.Kind = KindSecretKey
	kf.Address = hex.EncodeToString(key.PublicKey())
	kf.Bech32 = key.Address().String()
	return kf, nil
}

// EncryptMnemonic seals a mnemonic phrase.
func EncryptMnemonic(mnemonic string, password []byte, params ScryptParams) (*KeyFile, error) {
	mnemonic = NormalizeMnemonic(mnemonic)
	if !ValidateMnemonic(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	kf, err := seal([]byte(mnemonic), password, params)
	if err != nil {
		return nil, err
	}
	kf.Kind = KindMnemonic
	return kf, nil
}

// DecryptKey opens a secretKey keystore.
func (kf *KeyFile) DecryptKey(password []byte) (*crypto.PrivateKey, error) {
	if kf.Kind != KindSecretKey {
		return nil, fmt.Errorf("keystore kind is %q, not %q", kf.Kind, KindSecretKey)
	}
	plain, err := kf.open(password)
	if err != nil {
		return nil, err
	}
	defer zero(plain)
	if len(plain) < crypto.SecretKeySize {
		return nil, fmt.Errorf("keystore payload is %d bytes", len(plain))
	}
	return crypto.PrivateKeyFromBytes(plain[:crypto.SecretKeySize])
}

// DecryptMnemonic opens a mnemonic keystore.
func (kf *KeyFile) DecryptMnemonic(password []byte) (string, error) {
	if kf.Kind != KindMnemonic {
		return "", fmt.Errorf("keystore kind is %q, not %q", kf.Kind, KindMnemonic)
	}
	plain, err := kf.open(password)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// SaveKeyFile writes a keystore as indented JSON (mode 0600).
func SaveKeyFile(path string, kf *KeyFile) error {
	data, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal keystore: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write keystore: %w", err)
	}
	return nil
}

// ReadKeyFile parses a keystore file.
func ReadKeyFile(path string) (*KeyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keystore: %w", err)
	}
	var kf KeyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("parse keystore: %w", err)
	}
	if kf.Version != KeystoreVersion {
		return nil, fmt.Errorf("unsupported keystore version: %d", kf.Version)
	}
	if kf.Crypto.Cipher != keystoreCipher || kf.Crypto.KDF != keystoreKDF {
		return nil, fmt.Errorf("unsupported keystore cipher %q / kdf %q", kf.Crypto.Cipher, kf.Crypto.KDF)
	}
	return &kf, nil
}

// LoadKeystore opens a keystore file of either kind. For mnemonic keystores
// the key at the given address index is derived.
func LoadKeystore(path string, password []byte, index uint32) (*Wallet, error) {
	kf, err := ReadKeyFile(path)
	if err != nil {
		return nil, err
	}
	switch kf.Kind {
	case KindSecretKey:
		key, err := kf.DecryptKey(password)
		if err != nil {
			return nil, err
		}
		return FromPrivateKey(key), nil
	case KindMnemonic:
		mnemonic, err := kf.DecryptMnemonic(password)
		if err != nil {
			return nil, err
		}
		return FromMnemonic(mnemonic, index)
	default:
		return nil, fmt.Errorf("unsupported keystore kind %q", kf.Kind)
	}
}

func seal(plain, password []byte, params ScryptParams) (*KeyFile, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("generate iv: %w", err)
	}

	derived, err := scrypt.Key(password, salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	defer zero(derived)

	ciphertext, err := ctr(derived[:16], iv, plain)
	if err != nil {
		return nil, err
	}

	return &KeyFile{
		Version: KeystoreVersion,
		ID:      uuid.NewString(),
		Crypto: cryptoSection{
			Ciphertext:   hex.EncodeToString(ciphertext),
			CipherParams: cipherParams{IV: hex.EncodeToString(iv)},
			Cipher:       keystoreCipher,
			KDF:          keystoreKDF,
			KDFParams: kdfParams{
				DKLen: params.DKLen,
				Salt:  hex.EncodeToString(salt),
				N:     params.N,
				R:     params.R,
				P:     params.P,
			},
			MAC: hex.EncodeToString(mac(derived[16:32], ciphertext)),
		},
	}, nil
}

func (kf *KeyFile) open(password []byte) ([]byte, error) {
	c := kf.Crypto
	salt, err := hex.DecodeString(c.KDFParams.Salt)
	if err != nil {
		return nil, fmt.Errorf("keystore salt: %w", err)
	}
	iv, err := hex.DecodeString(c.CipherParams.IV)
	if err != nil || len(iv) != ivSize {
		return nil, fmt.Errorf("keystore iv is invalid")
	}
	ciphertext, err := hex.DecodeString(c.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("keystore ciphertext: %w", err)
	}
	wantMAC, err := hex.DecodeString(c.MAC)
	if err != nil {
		return nil, fmt.Errorf("keystore mac: %w", err)
	}
	if c.KDFParams.DKLen < 32 {
		return nil, fmt.Errorf("keystore dklen %d is too short", c.KDFParams.DKLen)
	}

	derived, err := scrypt.Key(password, salt, c.KDFParams.N, c.KDFParams.R, c.KDFParams.P, c.KDFParams.DKLen)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	defer zero(derived)

	if !hmac.Equal(mac(derived[16:32], ciphertext), wantMAC) {
		return nil, ErrWrongPassword
	}
	return ctr(derived[:16], iv, ciphertext)
}

// ctr applies AES-128-CTR; encryption and decryption are the same operation.
func ctr(key, iv, in []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	out := make([]byte, len(in))
	cipher.NewCTR(block, iv).XORKeyStream(out, in)
	return out, nil
}

func mac(key, ciphertext []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(ciphertext)
	return h.Sum(nil)
}
