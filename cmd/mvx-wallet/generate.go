package main

import (
	"fmt"

	"github.com/spf13/cobra"

	klog "github.com/Klingon-tech/mvx-wallet/internal/log"
	"github.com/Klingon-tech/mvx-wallet/internal/wallet"
)

func (a *app) generateCmd() *cobra.Command {
	var (
		words int
		index uint32
		out   string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new wallet from a fresh mnemonic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Generating a new MultiversX wallet...")

			wl, err := wallet.Generate(words, index)
			if err != nil {
				return err
			}

			fmt.Fprintln(w, "\nWallet Information:")
			fmt.Fprintf(w, "Address: %s\n", wl.Address)
			fmt.Fprintf(w, "Private Key: %s\n", wl.PrivateKey)
			fmt.Fprintf(w, "Mnemonic Phrase: %s\n", wl.Mnemonic)

			path := out
			if path == "" {
				path = a.cfg.WalletFile()
			}
			if err := wl.Save(path); err != nil {
				return err
			}
			klog.Wallet.Info().Str("address", wl.Address).Str("path", path).Msg("wallet generated")

			fmt.Fprintf(w, "Wallet saved to %s\n", path)
			printSecurityWarning(w)
			return nil
		},
	}
	cmd.Flags().IntVar(&words, "words", wallet.MnemonicWords24, "mnemonic length (12 or 24)")
	cmd.Flags().Uint32Var(&index, "index", 0, "address index")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <wallet_dir>/wallet.json)")
	return cmd
}
