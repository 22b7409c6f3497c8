package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

// Secret key of the "alice" account from the MultiversX SDK test wallets.
const (
	aliceSecretHex = "413f42575f7f26fad3317a778771212fdb80245850981e48b58a4f25e344e8f9"
	alicePubHex    = "0139472eff6886771a982f3083da5d421f24c29181e63888228dc81ca60d69e1"
	aliceBech32    = "erd1qyu5wthldzr8wx5c9ucg8kjagg0jfs53s8nr3zpz3hypefsdd8ssycr6th"
)

func TestGenerateKey(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	if len(key.PublicKey()) != 32 {
		t.Errorf("PublicKey() length = %d, want 32", len(key.PublicKey()))
	}
	if len(key.Serialize()) != SecretKeySize {
		t.Errorf("Serialize() length = %d, want %d", len(key.Serialize()), SecretKeySize)
	}
}

func TestGenerateKey_Unique(t *testing.T) {
	k1, _ := GenerateKey()
	k2, _ := GenerateKey()
	if bytes.Equal(k1.Serialize(), k2.Serialize()) {
		t.Error("two generated keys should not be identical")
	}
}

func TestPrivateKeyFromHex_KnownAccount(t *testing.T) {
	key, err := PrivateKeyFromHex(aliceSecretHex)
	if err != nil {
		t.Fatalf("PrivateKeyFromHex() error: %v", err)
	}
	if got := hex.EncodeToString(key.PublicKey()); got != alicePubHex {
		t.Errorf("PublicKey() = %s, want %s", got, alicePubHex)
	}
	if got := key.Address().String(); got != aliceBech32 {
		t.Errorf("Address() = %s, want %s", got, aliceBech32)
	}
	if key.Hex() != aliceSecretHex {
		t.Errorf("Hex() = %s, want %s", key.Hex(), aliceSecretHex)
	}
}

func TestPrivateKeyFromHex_Whitespace(t *testing.T) {
	key, err := PrivateKeyFromHex("  " + aliceSecretHex + "\n")
	if err != nil {
		t.Fatalf("PrivateKeyFromHex() error: %v", err)
	}
	if key.Hex() != aliceSecretHex {
		t.Error("whitespace should be trimmed")
	}
}

func TestPrivateKeyFromHex_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not hex", "zz" + aliceSecretHex[2:]},
		{"too short", aliceSecretHex[:62]},
		{"too long", aliceSecretHex + "00"},
		{"secret and public", aliceSecretHex + alicePubHex},
		{"odd length", aliceSecretHex[:63]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PrivateKeyFromHex(tt.input)
			if !errors.Is(err, ErrInvalidSecretKey) {
				t.Errorf("expected ErrInvalidSecretKey, got %v", err)
			}
		})
	}
}

func TestSignVerify(t *testing.T) {
	key, _ := PrivateKeyFromHex(aliceSecretHex)
	msg := []byte("hello")

	sig, err := key.Sign(msg)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	if len(sig) != SignatureSize {
		t.Fatalf("signature length = %d, want %d", len(sig), SignatureSize)
	}
	if !VerifySignature(msg, sig, key.PublicKey()) {
		t.Error("valid signature should verify")
	}
	if VerifySignature([]byte("other"), sig, key.PublicKey()) {
		t.Error("signature should not verify for a different message")
	}

	other, _ := GenerateKey()
	if VerifySignature(msg, sig, other.PublicKey()) {
		t.Error("signature should not verify under a different key")
	}
}

func TestSign_Deterministic(t *testing.T) {
	key, _ := PrivateKeyFromHex(aliceSecretHex)
	s1, _ := key.Sign([]byte("payload"))
	s2, _ := key.Sign([]byte("payload"))
	if !bytes.Equal(s1, s2) {
		t.Error("Ed25519 signatures should be deterministic")
	}
}

func TestVerifySignature_Malformed(t *testing.T) {
	key, _ := PrivateKeyFromHex(aliceSecretHex)
	sig, _ := key.Sign([]byte("x"))

	if VerifySignature([]byte("x"), sig[:10], key.PublicKey()) {
		t.Error("short signature should not verify")
	}
	if VerifySignature([]byte("x"), sig, key.PublicKey()[:31]) {
		t.Error("short public key should not verify")
	}
	if !VerifySignature([]byte("x"), sig, key.PublicKey()) {
		t.Error("valid signature should verify")
	}
}

func TestZero(t *testing.T) {
	key, _ := PrivateKeyFromHex(aliceSecretHex)
	key.Zero()
	if strings.Trim(key.Hex(), "0") != "" {
		t.Error("Zero() should wipe the secret")
	}
}

func TestSignMessage(t *testing.T) {
	key, _ := PrivateKeyFromHex(aliceSecretHex)
	msg := []byte("hello world")

	sig, err := SignMessage(key, msg)
	if err != nil {
		t.Fatalf("SignMessage() error: %v", err)
	}
	if !VerifyMessage(msg, sig, key.PublicKey()) {
		t.Error("signed message should verify")
	}
	if VerifyMessage([]byte("hello worle"), sig, key.PublicKey()) {
		t.Error("tampered message should not verify")
	}
	// A message signature is not a signature over the raw bytes.
	if VerifySignature(msg, sig, key.PublicKey()) {
		t.Error("message signature must not verify as a raw signature")
	}
}

func TestMessageHash_LengthPrefixed(t *testing.T) {
	if len(MessageHash(nil)) != 32 {
		t.Fatal("keccak256 digest should be 32 bytes")
	}
	if bytes.Equal(MessageHash([]byte("a")), MessageHash([]byte("1a"))) {
		t.Error("different messages should hash differently")
	}
}

func TestKeccak256(t *testing.T) {
	// Keccak-256 of the empty input (pre-NIST padding).
	want := "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	if got := hex.EncodeToString(Keccak256()); got != want {
		t.Errorf("Keccak256() = %s, want %s", got, want)
	}
	if hex.EncodeToString(Keccak256([]byte("ab"), []byte("c"))) != hex.EncodeToString(Keccak256([]byte("abc"))) {
		t.Error("Keccak256 should hash the concatenation of its inputs")
	}
}
