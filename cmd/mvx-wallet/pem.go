package main

import (
	"fmt"

	"github.com/spf13/cobra"

	klog "github.com/Klingon-tech/mvx-wallet/internal/log"
	"github.com/Klingon-tech/mvx-wallet/internal/wallet"
)

func (a *app) pemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pem",
		Short: "PEM key files",
	}
	cmd.AddCommand(a.pemExportCmd())
	return cmd
}

func (a *app) pemExportCmd() *cobra.Command {
	var file, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the wallet key as an unencrypted PEM file",
		Args:  cobra.NoArgs,
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

			if err := wallet.SavePEM(out, key); err != nil {
				return err
			}
			klog.Wallet.Info().Str("address", wl.Address).Str("path", out).Msg("pem written")

			fmt.Fprintf(cmd.OutOrStdout(), "Address: %s\n", wl.Address)
			fmt.Fprintf(cmd.OutOrStdout(), "PEM saved to %s\n", out)
			printSecurityWarning(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "wallet file (default <wallet_dir>/wallet.json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "PEM file to write")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
