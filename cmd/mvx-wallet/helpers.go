package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/Klingon-tech/mvx-wallet/internal/wallet"
)

// Environment variables for non-interactive use.
const (
	envPassword = "MVXW_PASSWORD"
	envMnemonic = "MVXW_MNEMONIC"
)

// ── Secret input ────────────────────────────────────────────────────────

// readPassword reads a password without echo.
func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

// password returns MVXW_PASSWORD if set, otherwise prompts. With confirm the
// prompt is repeated and both entries must match.
func password(confirm bool) ([]byte, error) {
	if p, ok := os.LookupEnv(envPassword); ok {
		return []byte(p), nil
	}
	pw, err := readPassword("Password: ")
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	if len(pw) == 0 {
		return nil, fmt.Errorf("password must not be empty")
	}
	if confirm {
		again, err := readPassword("Repeat password: ")
		if err != nil {
			return nil, fmt.Errorf("read password: %w", err)
		}
		if !bytes.Equal(pw, again) {
			return nil, fmt.Errorf("passwords do not match")
		}
	}
	return pw, nil
}

// mnemonic returns MVXW_MNEMONIC if set, otherwise prompts without echo.
func mnemonic() (string, error) {
	if m, ok := os.LookupEnv(envMnemonic); ok {
		return wallet.NormalizeMnemonic(m), nil
	}
	phrase, err := readPassword("Mnemonic: ")
	if err != nil {
		return "", fmt.Errorf("read mnemonic: %w", err)
	}
	return wallet.NormalizeMnemonic(string(phrase)), nil
}

// ── Output ──────────────────────────────────────────────────────────────

func printWallet(w io.Writer, wl *wallet.Wallet) {
	fmt.Fprintln(w, "\nWallet Information:")
	fmt.Fprintf(w, "Address: %s\n", wl.Address)
	fmt.Fprintf(w, "Private Key: %s\n", wl.PrivateKey)
}

func printSecurityWarning(w io.Writer) {
	fmt.Fprintln(w, "\nIMPORTANT: Keep your private key and mnemonic phrase secure!")
	fmt.Fprintln(w, "Anyone with access to these can control your wallet and funds.")
}

// countSet reports how many of the given flags are set.
func countSet(values ...bool) int {
	n := 0
	for _, v := range values {
		if v {
			n++
		}
	}
	return n
}
