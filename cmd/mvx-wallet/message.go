package main

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/mvx-wallet/internal/wallet"
	"github.com/Klingon-tech/mvx-wallet/pkg/crypto"
	"github.com/Klingon-tech/mvx-wallet/pkg/types"
)

var errBadMessageSignature = errors.New("signature does not match message and address")

func (a *app) signMessageCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "sign-message <message>",
		Short: "Sign an arbitrary message with a wallet key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = a.cfg.WalletFile()
			}
			wl, err := wallet.LoadFile(file)
			if err != nil {
				return err
			}
			key, err := wl.Signer()
			if err != nil {
				return err
			}
			defer key.Zero()

			sig, err := crypto.SignMessage(key, []byte(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Address: %s\n", wl.Address)
			fmt.Fprintf(cmd.OutOrStdout(), "Signature: %s\n", hex.EncodeToString(sig))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "wallet file (default <wallet_dir>/wallet.json)")
	return cmd
}

func (a *app) verifyMessageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-message <address> <message> <signature>",
		Short: "Verify a message signature against an address",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := types.ParseAddress(args[0])
			if err != nil {
				return err
			}
			sig, err := hex.DecodeString(args[2])
			if err != nil {
				return fmt.Errorf("decode signature: %w", err)
			}
			if !crypto.VerifyMessage([]byte(args[1]), sig, addr.Bytes()) {
				return errBadMessageSignature
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signature is valid.")
			return nil
		},
	}
}
