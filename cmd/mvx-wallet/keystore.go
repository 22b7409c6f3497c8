package main

import (
	"fmt"

	"github.com/spf13/cobra"

	klog "github.com/Klingon-tech/mvx-wallet/internal/log"
	"github.com/Klingon-tech/mvx-wallet/internal/wallet"
)

func (a *app) keystoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keystore",
		Short: "Password-protected JSON keystores",
	}
	cmd.AddCommand(a.keystoreExportCmd())
	return cmd
}

func (a *app) keystoreExportCmd() *cobra.Command {
	var file, out, kind string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Encrypt a wallet into a JSON keystore",
		Long: `Encrypt a wallet into a JSON keystore (version 4).

The password is read from MVXW_PASSWORD or prompted for twice.
--kind mnemonic stores the wallet's mnemonic instead of its secret key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = a.cfg.WalletFile()
			}
			wl, err := wallet.LoadFile(file)
			if err != nil {
				return err
			}
			pw, err := password(true)
			if err != nil {
				return err
			}

			kf, err := encryptWallet(wl, kind, pw)
			if err != nil {
				return err
			}
			if err := wallet.SaveKeyFile(out, kf); err != nil {
				return err
			}
			klog.Keystore.Info().Str("kind", kf.Kind).Str("id", kf.ID).Str("path", out).Msg("keystore written")

			fmt.Fprintf(cmd.OutOrStdout(), "Address: %s\n", wl.Address)
			fmt.Fprintf(cmd.OutOrStdout(), "Keystore saved to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "wallet file (default <wallet_dir>/wallet.json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "keystore file to write")
	cmd.Flags().StringVar(&kind, "kind", wallet.KindSecretKey, "what to encrypt: secretKey or mnemonic")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func encryptWallet(wl *wallet.Wallet, kind string, pw []byte) (*wallet.KeyFile, error) {
	defer klog.Benchmark("keystore encrypt")()

	switch kind {
	case wallet.KindSecretKey:
		key, err := wl.Signer()
		if err != nil {
			return nil, err
		}
		defer key.Zero()
		return wallet.EncryptKey(key, pw, wallet.DefaultScryptParams())
	case wallet.KindMnemonic:
		if wl.Mnemonic == "" {
			return nil, fmt.Errorf("wallet has no mnemonic")
		}
		return wallet.EncryptMnemonic(wl.Mnemonic, pw, wallet.DefaultScryptParams())
	default:
		return nil, fmt.Errorf("unknown keystore kind %q", kind)
	}
}
