// derive_key.go prints the derivation path, secret key, public key and address
// for the first addresses of a mnemonic read from a file.
// Usage: go run scripts/derive_key.go <mnemonic-file> [count]
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/Klingon-tech/mvx-wallet/internal/wallet"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: derive_key <mnemonic-file> [count]")
		os.Exit(1)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	count := 1
	if len(os.Args) > 2 {
		if count, err = strconv.Atoi(os.Args[2]); err != nil || count < 1 {
			fmt.Fprintln(os.Stderr, "count must be a positive integer")
			os.Exit(1)
		}
	}

	mnemonic := wallet.NormalizeMnemonic(string(data))
	seed, err := wallet.SeedFromMnemonic(mnemonic, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	master, err := wallet.NewMasterKey(seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for i := 0; i < count; i++ {
		path := wallet.AccountPath(0, uint32(i))
		node, err := master.DerivePath(path...)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		key, err := node.Signer()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("path=%s\n", wallet.FormatPath(path))
		fmt.Printf("secret=%s\n", key.Hex())
		fmt.Printf("pubkey=%s\n", hex.EncodeToString(key.PublicKey()))
		fmt.Printf("address=%s\n", key.Address())
	}
}
