package wallet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// fastScrypt keeps keystore tests quick.
var fastScrypt = ScryptParams{N: 1024, R: 8, P: 1, DKLen: 32}

func TestEncryptKey_RoundTrip(t *testing.T) {
	key := aliceKey(t)
	password := []byte("correct horse")

	kf, err := EncryptKey(key, password, fastScrypt)
	if err != nil {
		t.Fatalf("EncryptKey() error: %v", err)
	}
	if kf.Version != KeystoreVersion || kf.Kind != KindSecretKey {
		t.Errorf("version/kind = %d/%s", kf.Version, kf.Kind)
	}
	if kf.Address != alicePubHex {
		t.Errorf("Address = %s, want %s", kf.Address, alicePubHex)
	}
	if kf.Bech32 != aliceAddress {
		t.Errorf("Bech32 = %s, want %s", kf.Bech32, aliceAddress)
	}
	if kf.ID == "" {
		t.Error("keystore should carry an id")
	}
	// secret || public, hex encoded.
	if len(kf.Crypto.Ciphertext) != 128 {
		t.Errorf("ciphertext length = %d, want 128", len(kf.Crypto.Ciphertext))
	}

	got, err := kf.DecryptKey(password)
	if err != nil {
		t.Fatalf("DecryptKey() error: %v", err)
	}
	if got.Hex() != aliceSecretHex {
		t.Errorf("decrypted key = %s", got.Hex())
	}
}

func TestEncryptKey_FreshSalt(t *testing.T) {
	key := aliceKey(t)
	a, _ := EncryptKey(key, []byte("pw"), fastScrypt)
	b, _ := EncryptKey(key, []byte("pw"), fastScrypt)

	if a.Crypto.KDFParams.Salt == b.Crypto.KDFParams.Salt {
		t.Error("two encryptions should not share a salt")
	}
	if a.Crypto.Ciphertext == b.Crypto.Ciphertext {
		t.Error("two encryptions should not share a ciphertext")
	}
	if a.ID == b.ID {
		t.Error("two keystores should not share an id")
	}
}

func TestDecryptKey_WrongPassword(t *testing.T) {
	kf, _ := EncryptKey(aliceKey(t), []byte("right"), fastScrypt)

	if _, err := kf.DecryptKey([]byte("wrong")); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("err = %v, want ErrWrongPassword", err)
	}
}

func TestDecryptKey_Tampered(t *testing.T) {
	kf, _ := EncryptKey(aliceKey(t), []byte("pw"), fastScrypt)

	ct := []byte(kf.Crypto.Ciphertext)
	if ct[0] == '0' {
		ct[0] = '1'
	} else {
		ct[0] = '0'
	}
	kf.Crypto.Ciphertext = string(ct)

	if _, err := kf.DecryptKey([]byte("pw")); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("err = %v, want ErrWrongPassword", err)
	}
}

func TestEncryptMnemonic_RoundTrip(t *testing.T) {
	kf, err := EncryptMnemonic(aliceMnemonic, []byte("pw"), fastScrypt)
	if err != nil {
		t.Fatalf("EncryptMnemonic() error: %v", err)
	}
	if kf.Kind != KindMnemonic {
		t.Errorf("Kind = %s, want %s", kf.Kind, KindMnemonic)
	}
	if kf.Address != "" || kf.Bech32 != "" {
		t.Error("mnemonic keystore should not carry an address")
	}

	got, err := kf.DecryptMnemonic([]byte("pw"))
	if err != nil {
		t.Fatalf("DecryptMnemonic() error: %v", err)
	}
	if got != aliceMnemonic {
		t.Errorf("DecryptMnemonic() = %q", got)
	}

	if _, err := kf.DecryptKey([]byte("pw")); err == nil {
		t.Error("DecryptKey on a mnemonic keystore should fail")
	}
}

func TestEncryptMnemonic_Invalid(t *testing.T) {
	if _, err := EncryptMnemonic("nope", []byte("pw"), fastScrypt); !errors.Is(err, ErrInvalidMnemonic) {
		t.Errorf("err = %v, want ErrInvalidMnemonic", err)
	}
}

func TestLoadKeystore(t *testing.T) {
	dir := t.TempDir()
	password := []byte("pw")

	keyPath := filepath.Join(dir, "key.json")
	kf, _ := EncryptKey(aliceKey(t), password, fastScrypt)
	if err := SaveKeyFile(keyPath, kf); err != nil {
		t.Fatalf("SaveKeyFile() error: %v", err)
	}

	mnemonicPath := filepath.Join(dir, "mnemonic.json")
	mkf, _ := EncryptMnemonic(aliceMnemonic, password, fastScrypt)
	if err := SaveKeyFile(mnemonicPath, mkf); err != nil {
		t.Fatalf("SaveKeyFile() error: %v", err)
	}

	for _, path := range []string{keyPath, mnemonicPath} {
		w, err := LoadKeystore(path, password, 0)
		if err != nil {
			t.Fatalf("LoadKeystore(%s) error: %v", filepath.Base(path), err)
		}
		if w.Address != aliceAddress {
			t.Errorf("LoadKeystore(%s) address = %s", filepath.Base(path), w.Address)
		}
	}

	info, _ := os.Stat(keyPath)
	if info.Mode().Perm() != 0600 {
		t.Errorf("keystore mode = %o, want 600", info.Mode().Perm())
	}
}

func TestReadKeyFile_Unsupported(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"bad json", "{"},
		{"old version", `{"version":3,"kind":"secretKey","crypto":{"cipher":"aes-128-ctr","kdf":"scrypt"}}`},
		{"other cipher", `{"version":4,"kind":"secretKey","crypto":{"cipher":"aes-256-gcm","kdf":"scrypt"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			writeFile(t, path, tt.content)
			if _, err := ReadKeyFile(path); err == nil {
				t.Error("ReadKeyFile() should fail")
			}
		})
	}
}
